package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/session"
)

// QuestionView is one question as served to clients. Choice categories
// stay server-side.
type QuestionView struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices"`
}

// QuestionsResponse is the body of GET /api/v1/questions.
type QuestionsResponse struct {
	Questions []QuestionView `json:"questions"`
}

// ClassifyResponse is the body of a successful classify.
type ClassifyResponse struct {
	SessionID string      `json:"session_id"`
	Result    quiz.Result `json:"result"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) questions(w http.ResponseWriter, r *http.Request) {
	cfg := s.engine.Config()
	out := QuestionsResponse{Questions: make([]QuestionView, len(cfg.Questions))}
	for i, q := range cfg.Questions {
		out.Questions[i] = QuestionView{ID: q.ID, Prompt: q.Prompt, Choices: q.ChoiceTexts()}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := decode(r, w, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, err.Error(), nil)
		return
	}
	res, ok := s.classifyAnswers(w, req.Answers)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, ClassifyResponse{SessionID: uuid.NewString(), Result: res})
}

func (s *Server) recommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := decode(r, w, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, err.Error(), nil)
		return
	}
	res, ok := s.classifyAnswers(w, req.Answers)
	if !ok {
		return
	}

	limit := s.defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	rec, err := s.recommender.Recommend(r.Context(), uuid.NewString(), res, limit)
	if err != nil {
		respondCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// classifyAnswers writes the error response itself and reports false when
// the answers cannot be classified.
func (s *Server) classifyAnswers(w http.ResponseWriter, raw map[string]string) (quiz.Result, bool) {
	answers, err := answerSet(s.engine.Config(), raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidAnswer, err.Error(), nil)
		return quiz.Result{}, false
	}

	res, err := session.Classify(s.engine, answers)
	if err != nil {
		var missing *quiz.MissingAnswersError
		if errors.As(err, &missing) {
			respondMissing(w, missing.QuestionIDs)
			return quiz.Result{}, false
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "classification failed", err)
		return quiz.Result{}, false
	}
	return res, true
}
