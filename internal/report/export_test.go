package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farewellhq/farewell-quiz/internal/catalog"
	"github.com/farewellhq/farewell-quiz/internal/participant"
)

func exportFixtures(t *testing.T) (*catalog.Catalog, []participant.Participant) {
	t.Helper()
	cat, err := catalog.Load("Alex")
	require.NoError(t, err)

	list := []participant.Participant{
		{
			Name: "Ann",
			Answers: []participant.Answer{
				{QuestionID: 1, Value: "With a warm smile and greeting"},
				{QuestionID: 3, Value: "Barnabas, always encouraging"},
			},
			CompletedAt: time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC),
		},
		{
			Name:        "Ben",
			Answers:     nil,
			CompletedAt: time.Date(2026, 8, 28, 19, 30, 0, 0, time.UTC),
		},
	}
	return cat, list
}

func TestWriteCSVLayout(t *testing.T) {
	cat, list := exportFixtures(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cat, list))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per participant")

	header := rows[0]
	require.Len(t, header, cat.Len()+2)
	assert.Equal(t, "Participant Name", header[0])
	assert.Equal(t, "Completion Date", header[1])
	assert.True(t, strings.HasPrefix(header[2], "Q1: "))

	ann := rows[1]
	assert.Equal(t, "Ann", ann[0])
	assert.Equal(t, "2026-08-28T18:00:00Z", ann[1])
	assert.Equal(t, "With a warm smile and greeting", ann[2])
	assert.Equal(t, "Barnabas, always encouraging", ann[4])
}

func TestWriteCSVFillsUnansweredCells(t *testing.T) {
	cat, list := exportFixtures(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cat, list))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	ben := rows[2]
	assert.Equal(t, "Ben", ben[0])
	for _, cell := range ben[2:] {
		assert.Equal(t, "No answer", cell)
	}
}

func TestWriteCSVEmptyListStillHasHeader(t *testing.T) {
	cat, _ := exportFixtures(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cat, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestWritePDFProducesDocument(t *testing.T) {
	cat, list := exportFixtures(t)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, cat, list, "Farewell Quiz - Alex"))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output must be a PDF document")
	assert.Greater(t, buf.Len(), 1000)
}
