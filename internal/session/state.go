package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/cinematch/internal/quiz"
)

// Phase represents where a quiz run currently is.
type Phase int

const (
	PhaseAnswering  Phase = iota // Walking through questions
	PhaseWarning                 // Submit rejected, missing answers listed
	PhaseClassified              // Result available
)

// State tracks one run through the quiz. The answer set only grows or
// changes through Select and Clear, and is discarded when the run ends.
type State struct {
	// ID is the UUID for this run.
	ID string

	// Config is the question table being answered.
	Config *quiz.Config

	// Answers holds the choices made so far.
	Answers quiz.AnswerSet

	// Current is the index of the question on screen.
	Current int

	// Phase is the current phase.
	Phase Phase

	// Missing lists unanswered question ids after a rejected submit.
	Missing []string

	// Result is set once the run is classified.
	Result *quiz.Result

	// StartTime is when the run began.
	StartTime time.Time
}

// NewState starts a fresh run over cfg with a new id.
func NewState(cfg *quiz.Config) *State {
	return &State{
		ID:        uuid.NewString(),
		Config:    cfg,
		Answers:   quiz.NewAnswerSet(),
		Phase:     PhaseAnswering,
		StartTime: time.Now(),
	}
}

// Question returns the question on screen.
func (s *State) Question() quiz.Question {
	return s.Config.Questions[s.Current]
}

// Selected returns the index of the recorded choice for the current
// question, or -1 when it is unanswered.
func (s *State) Selected() int {
	q := s.Question()
	choice, ok := s.Answers.Choice(q.ID)
	if !ok {
		return -1
	}
	for i, c := range q.Choices {
		if c.Text == choice {
			return i
		}
	}
	return -1
}

// Select records choice index i for the current question.
func (s *State) Select(i int) {
	q := s.Question()
	if i < 0 || i >= len(q.Choices) {
		return
	}
	s.Answers = s.Answers.With(q.ID, q.Choices[i].Text)
	if s.Phase == PhaseWarning {
		s.Missing = s.Config.Missing(s.Answers)
		if len(s.Missing) == 0 {
			s.Phase = PhaseAnswering
		}
	}
}

// Clear removes the answer to the current question.
func (s *State) Clear() {
	s.Answers = s.Answers.With(s.Question().ID, "")
}

// Next moves to the following question. It reports false on the last one.
func (s *State) Next() bool {
	if s.Current >= len(s.Config.Questions)-1 {
		return false
	}
	s.Current++
	return true
}

// Prev moves to the previous question. It reports false on the first one.
func (s *State) Prev() bool {
	if s.Current == 0 {
		return false
	}
	s.Current--
	return true
}

// Jump moves to the question with the given id.
func (s *State) Jump(id string) bool {
	for i, q := range s.Config.Questions {
		if q.ID == id {
			s.Current = i
			return true
		}
	}
	return false
}

// DismissWarning returns to answering, landing on the first missing question.
func (s *State) DismissWarning() {
	if s.Phase != PhaseWarning {
		return
	}
	if len(s.Missing) > 0 {
		s.Jump(s.Missing[0])
	}
	s.Phase = PhaseAnswering
}
