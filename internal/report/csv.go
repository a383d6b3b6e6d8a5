package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/farewellhq/farewell-quiz/internal/catalog"
	"github.com/farewellhq/farewell-quiz/internal/participant"
)

const noAnswer = "No answer"

// WriteCSV renders the participant list as delimited text: one column per
// catalog question, one row per participant, answers in catalog order.
func WriteCSV(w io.Writer, cat *catalog.Catalog, list []participant.Participant) error {
	cw := csv.NewWriter(w)

	questions := cat.Questions()
	header := make([]string, 0, len(questions)+2)
	header = append(header, "Participant Name", "Completion Date")
	for _, q := range questions {
		header = append(header, fmt.Sprintf("Q%d: %s", q.ID, q.Prompt))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, p := range list {
		row := make([]string, 0, len(header))
		row = append(row, p.Name, p.CompletedAt.Format(time.RFC3339))
		for _, q := range questions {
			row = append(row, answerFor(p, q.ID))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func answerFor(p participant.Participant, questionID int) string {
	for _, a := range p.Answers {
		if a.QuestionID == questionID {
			return a.Value
		}
	}
	return noAnswer
}
