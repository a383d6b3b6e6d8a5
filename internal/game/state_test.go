package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAnswerLastWriteWins(t *testing.T) {
	state := NewState()

	state.SaveAnswer(3, "Romans 8:28")
	state.SaveAnswer(3, "Isaiah 41:10")

	require.Len(t, state.Answers, 1)
	assert.Equal(t, 3, state.Answers[0].QuestionID)
	assert.Equal(t, "Isaiah 41:10", state.Answers[0].Value)
}

func TestSaveAnswerKeepsFirstInsertionOrder(t *testing.T) {
	state := NewState()

	state.SaveAnswer(1, "a")
	state.SaveAnswer(2, "b")
	state.SaveAnswer(1, "c")

	require.Len(t, state.Answers, 2)
	assert.Equal(t, 1, state.Answers[0].QuestionID)
	assert.Equal(t, "c", state.Answers[0].Value)
	assert.Equal(t, 2, state.Answers[1].QuestionID)
}

func TestPreviousFlooredAtZero(t *testing.T) {
	state := NewState()

	state.Previous()
	assert.Equal(t, 0, state.CurrentIndex)

	state.Next()
	state.Previous()
	state.Previous()
	assert.Equal(t, 0, state.CurrentIndex)
}

func TestNextIsUnbounded(t *testing.T) {
	// Ten-question catalog: nine advances land on the last valid index, a
	// tenth produces an index with no corresponding question.
	state := NewState()
	for i := 0; i < 9; i++ {
		state.Next()
	}
	assert.Equal(t, 9, state.CurrentIndex)

	state.Next()
	assert.Equal(t, 10, state.CurrentIndex)
}

func TestResetRestoresInitialState(t *testing.T) {
	state := NewState()
	state.SetParticipantName("  Ann  ")
	state.SaveAnswer(1, "x")
	state.Next()
	require.NoError(t, state.BeginSubmit())
	state.FinishSubmit()

	state.Reset()
	assert.Equal(t, NewState(), state)
}

func TestSetParticipantNameTrims(t *testing.T) {
	state := NewState()
	state.SetParticipantName("  Ann  ")
	assert.Equal(t, "Ann", state.ParticipantName)
}

func TestSubmitLifecycle(t *testing.T) {
	state := NewState()
	assert.False(t, state.IsCompleted())

	require.NoError(t, state.BeginSubmit())
	assert.Equal(t, StatusSubmitting, state.Status)

	// Re-entrant submit is rejected while one is in flight.
	assert.ErrorIs(t, state.BeginSubmit(), ErrSubmitInFlight)

	state.FinishSubmit()
	assert.True(t, state.IsCompleted())
	assert.ErrorIs(t, state.BeginSubmit(), ErrAlreadyCompleted)
}

func TestAbortSubmitReturnsToInProgress(t *testing.T) {
	state := NewState()
	require.NoError(t, state.BeginSubmit())

	state.AbortSubmit()
	assert.Equal(t, StatusInProgress, state.Status)
	require.NoError(t, state.BeginSubmit())
}
