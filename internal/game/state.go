package game

import (
	"errors"
	"strings"

	"github.com/farewellhq/farewell-quiz/internal/participant"
)

// Play-through lifecycle states.
const (
	StatusInProgress = "in_progress"
	StatusSubmitting = "submitting"
	StatusCompleted  = "completed"
)

var (
	ErrSubmitInFlight   = errors.New("a submission is already in flight")
	ErrAlreadyCompleted = errors.New("game is already completed")
)

// State is the mutable, session-local progress of one in-flight play-through.
// It accumulates answers keyed by question id, tracks the current position in
// the question sequence, and tracks the completion lifecycle.
type State struct {
	CurrentIndex    int                  `json:"current_index"`
	ParticipantName string               `json:"participant_name"`
	Answers         []participant.Answer `json:"answers"`
	Status          string               `json:"status"`
}

// NewState returns the documented initial state.
func NewState() State {
	return State{Status: StatusInProgress}
}

// SetParticipantName stores the trimmed name. Non-emptiness is enforced by
// the caller.
func (s *State) SetParticipantName(name string) {
	s.ParticipantName = strings.TrimSpace(name)
}

// SaveAnswer upserts the answer for questionID, last write wins. The slot
// keeps the order in which the question was first answered. The value is not
// validated against the question's declared choices; free-form values for
// multiple-choice questions are accepted on purpose.
func (s *State) SaveAnswer(questionID int, value string) {
	for i, a := range s.Answers {
		if a.QuestionID == questionID {
			s.Answers[i].Value = value
			return
		}
	}
	s.Answers = append(s.Answers, participant.Answer{QuestionID: questionID, Value: value})
}

// Answer returns the stored value for questionID, if any.
func (s *State) Answer(questionID int) (string, bool) {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return a.Value, true
		}
	}
	return "", false
}

// Next advances the position unconditionally. There is no upper bound at this
// layer: an index past the last question is legal and must be rendered as
// "no question" by the presentation layer.
func (s *State) Next() {
	s.CurrentIndex++
}

// Previous moves the position back one question, floored at 0.
func (s *State) Previous() {
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
}

// BeginSubmit transitions InProgress -> Submitting. It rejects re-entrant
// submissions and submissions after completion.
func (s *State) BeginSubmit() error {
	switch s.Status {
	case StatusSubmitting:
		return ErrSubmitInFlight
	case StatusCompleted:
		return ErrAlreadyCompleted
	}
	s.Status = StatusSubmitting
	return nil
}

// FinishSubmit marks the play-through completed. Called once the durable
// write finished, regardless of which storage tier took it.
func (s *State) FinishSubmit() {
	s.Status = StatusCompleted
}

// AbortSubmit returns to InProgress after a failed durable write so the
// participant can try again.
func (s *State) AbortSubmit() {
	s.Status = StatusInProgress
}

// IsCompleted reports whether the play-through reached the completed state.
func (s *State) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// Reset restores the exact initial state.
func (s *State) Reset() {
	*s = NewState()
}
