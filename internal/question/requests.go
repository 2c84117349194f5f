package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FlexInt decodes from a JSON number or a numeric string such as "3".
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid integer %s", b)
	}
	*f = FlexInt(n)
	return nil
}

// CreateQuestionInput is the body of POST /questions.
type CreateQuestionInput struct {
	Question   string   `json:"question" validate:"required"`
	Answer     string   `json:"answer" validate:"required"`
	Category   *FlexInt `json:"category" validate:"required"`
	Difficulty *FlexInt `json:"difficulty" validate:"required"`
}

// Validate trims the text fields and checks every field is present.
func (in *CreateQuestionInput) Validate() error {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	return validate.Struct(in)
}

// SearchRequest is the body of POST /questions/search. An empty term is valid.
type SearchRequest struct {
	SearchTerm *string `json:"searchTerm" validate:"required"`
}

func (r *SearchRequest) Validate() error {
	return validate.Struct(r)
}

// QuizCategory identifies the category a quiz draws from.
type QuizCategory struct {
	ID   *FlexInt `json:"id" validate:"required"`
	Type string   `json:"type,omitempty"`
}

// QuizRequest is the body of POST /quizzes. PreviousQuestions may be absent.
type QuizRequest struct {
	PreviousQuestions []FlexInt     `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
}

func (r *QuizRequest) Validate() error {
	return validate.Struct(r)
}

// PreviousIDs converts the previously asked ids to plain ints.
func (r *QuizRequest) PreviousIDs() []int {
	ids := make([]int, len(r.PreviousQuestions))
	for i, id := range r.PreviousQuestions {
		ids[i] = int(id)
	}
	return ids
}
