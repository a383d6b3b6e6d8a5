// Package report reduces participant lists into the figures and artifacts
// the admin surface presents: summary stats, name search, CSV and PDF
// exports.
package report

import (
	"math"
	"strings"

	"github.com/farewellhq/farewell-quiz/internal/participant"
)

// Summary aggregates a participant list for display.
type Summary struct {
	Participants   int `json:"participants"`
	TotalResponses int `json:"total_responses"`
	// CompletionRate is a rounded percentage; 0 when there are no
	// participants.
	CompletionRate int `json:"completion_rate"`
}

// Summarize computes display figures from the full participant list. It is a
// pure, stateless reduction.
func Summarize(list []participant.Participant, questionCount int) Summary {
	total := 0
	for _, p := range list {
		total += len(p.Answers)
	}

	rate := 0
	if len(list) > 0 && questionCount > 0 {
		rate = int(math.Round(float64(total) / float64(len(list)*questionCount) * 100))
	}
	return Summary{
		Participants:   len(list),
		TotalResponses: total,
		CompletionRate: rate,
	}
}

// FilterByName returns the participants whose name contains the term,
// case-insensitively. An empty term matches everything.
func FilterByName(list []participant.Participant, term string) []participant.Participant {
	if term == "" {
		return list
	}
	needle := strings.ToLower(term)
	out := make([]participant.Participant, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}
