package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farewellhq/farewell-quiz/internal/participant"
)

func TestFileStoreMissingFileIsEmptyList(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "participants.json"))

	list, err := fs.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFileStoreAppendKeepsInsertionOrder(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "participants.json"))
	ctx := context.Background()

	base := time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC)
	require.NoError(t, fs.Append(ctx, record("Ann", base.Add(time.Hour))))
	require.NoError(t, fs.Append(ctx, record("Ben", base)))

	// Insertion order, not completedAt order.
	list, err := fs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ann", list[0].Name)
	assert.Equal(t, "Ben", list[1].Name)
}

func TestFileStoreSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "participants.json")
	ctx := context.Background()

	p := record("Ann", time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC))
	require.NoError(t, NewFileStore(path).Append(ctx, p))

	list, err := NewFileStore(path).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p, list[0])
}

func TestFileStoreRoundTripsRecord(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "participants.json"))
	ctx := context.Background()

	p := participant.Participant{
		Name: "Ann",
		Answers: []participant.Answer{
			{QuestionID: 1, Value: "With a warm smile and greeting"},
			{QuestionID: 3, Value: "Barnabas, always encouraging"},
		},
		CompletedAt: time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC),
	}
	require.NoError(t, fs.Append(ctx, p))

	list, err := fs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p, list[0])
}
