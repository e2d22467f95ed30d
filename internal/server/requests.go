package server

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/session"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// ClassifyRequest is the body of POST /api/v1/classify. An empty choice
// counts as unanswered.
type ClassifyRequest struct {
	Answers map[string]string `json:"answers" validate:"required"`
}

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	Answers map[string]string `json:"answers" validate:"required"`
	Limit   *int              `json:"limit,omitempty" validate:"omitnil,min=1,max=20"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// decode reads a JSON body into v and validates its tags.
func decode(r *http.Request, w http.ResponseWriter, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	if err := getValidator().Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "max":
		return fmt.Sprintf("%s must be between 1 and %d", field, session.MaxLimit)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// answerSet checks every submitted pair against the table, in sorted order
// so the reported error is stable.
func answerSet(cfg *quiz.Config, raw map[string]string) (quiz.AnswerSet, error) {
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if raw[id] == "" {
			continue
		}
		if err := cfg.CheckChoice(id, raw[id]); err != nil {
			return quiz.AnswerSet{}, err
		}
	}
	return quiz.AnswersFrom(raw), nil
}
