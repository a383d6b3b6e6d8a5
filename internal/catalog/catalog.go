// Package catalog holds the static, ordered question set presented to every
// participant. The set is parsed once at process start and is immutable
// afterwards.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

// Question types.
const (
	TypeMultipleChoice   = "multiple-choice"
	TypeShortAnswer      = "short-answer"
	TypeCreativeResponse = "creative-response"
)

// namePlaceholder is replaced with the configured honoree name in prompts.
const namePlaceholder = "[Name]"

//go:embed questions.json
var questionsJSON []byte

// Question is a single entry of the catalog. Choices are present only for
// multiple-choice questions.
type Question struct {
	ID      int      `json:"id"`
	Type    string   `json:"type"`
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices,omitempty"`
}

// Catalog is the ordered, read-only question set.
type Catalog struct {
	questions []Question
	byID      map[int]Question
}

// Load parses the embedded question set and substitutes the honoree name
// into every prompt.
func Load(honoreeName string) (*Catalog, error) {
	var questions []Question
	if err := json.Unmarshal(questionsJSON, &questions); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}

	byID := make(map[int]Question, len(questions))
	for i, q := range questions {
		if q.ID <= 0 {
			return nil, fmt.Errorf("question at position %d has invalid id %d", i, q.ID)
		}
		if _, exists := byID[q.ID]; exists {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		switch q.Type {
		case TypeMultipleChoice, TypeShortAnswer, TypeCreativeResponse:
		default:
			return nil, fmt.Errorf("question %d has unknown type %q", q.ID, q.Type)
		}
		q.Prompt = strings.ReplaceAll(q.Prompt, namePlaceholder, honoreeName)
		questions[i] = q
		byID[q.ID] = q
	}

	return &Catalog{questions: questions, byID: byID}, nil
}

// Questions returns the full catalog in presentation order.
func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// At returns the question at the given zero-based position. ok is false when
// the position is past the end of the catalog; callers must render that as
// "no question" rather than failing.
func (c *Catalog) At(index int) (Question, bool) {
	if index < 0 || index >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[index], true
}

// ByID looks a question up by its id.
func (c *Catalog) ByID(id int) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Len reports the number of questions in the catalog.
func (c *Catalog) Len() int {
	return len(c.questions)
}
