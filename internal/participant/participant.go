package participant

import (
	"errors"
	"time"
)

// Answer is a single response to a catalog question. The value is stored
// verbatim; it is not checked against the question's declared choices.
type Answer struct {
	QuestionID int    `json:"questionId"`
	Value      string `json:"value"`
}

// Participant is the durable record of one completed play-through. It is
// written exactly once at submission time and never mutated afterwards.
type Participant struct {
	Name        string    `json:"name"`
	Answers     []Answer  `json:"answers"`
	CompletedAt time.Time `json:"completedAt"`
}

var ErrMissingName = errors.New("participant name is required")

// Validate applies the presence checks required before submission.
func (p Participant) Validate() error {
	if p.Name == "" {
		return ErrMissingName
	}
	return nil
}
