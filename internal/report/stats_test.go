package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farewellhq/farewell-quiz/internal/participant"
)

func answers(n int) []participant.Answer {
	out := make([]participant.Answer, n)
	for i := range out {
		out[i] = participant.Answer{QuestionID: i + 1, Value: "x"}
	}
	return out
}

func TestSummarizeEmptyListIsZeroNotNaN(t *testing.T) {
	summary := Summarize(nil, 10)

	assert.Equal(t, 0, summary.Participants)
	assert.Equal(t, 0, summary.TotalResponses)
	assert.Equal(t, 0, summary.CompletionRate)
}

func TestSummarizeCompletionRate(t *testing.T) {
	list := []participant.Participant{
		{Name: "Ann", Answers: answers(10)},
		{Name: "Ben", Answers: answers(5)},
	}

	summary := Summarize(list, 10)
	assert.Equal(t, 2, summary.Participants)
	assert.Equal(t, 15, summary.TotalResponses)
	assert.Equal(t, 75, summary.CompletionRate)
}

func TestSummarizeRoundsRate(t *testing.T) {
	list := []participant.Participant{
		{Name: "Ann", Answers: answers(1)},
		{Name: "Ben", Answers: answers(1)},
		{Name: "Cam", Answers: answers(0)},
	}

	// 2 of 30 = 6.67%, rounded to 7.
	summary := Summarize(list, 10)
	assert.Equal(t, 7, summary.CompletionRate)
}

func TestFilterByNameCaseInsensitive(t *testing.T) {
	list := []participant.Participant{
		{Name: "Ann Mwangi"},
		{Name: "Ben"},
		{Name: "Joanna"},
	}

	matched := FilterByName(list, "AN")
	assert.Len(t, matched, 2)
	assert.Equal(t, "Ann Mwangi", matched[0].Name)
	assert.Equal(t, "Joanna", matched[1].Name)

	assert.Len(t, FilterByName(list, ""), 3)
	assert.Empty(t, FilterByName(list, "zoe"))
}
