package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/farewellhq/farewell-quiz/internal/catalog"
	"github.com/farewellhq/farewell-quiz/internal/participant"
)

// WritePDF renders the participant list as a paginated document: a title
// page header with totals, then one section per participant with each
// answered question's prompt and answer in catalog order.
func WritePDF(w io.Writer, cat *catalog.Catalog, list []participant.Participant, title string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(44, 82, 130)
	pdf.MultiCell(0, 9, title, "", "L", false)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total participants: %d", len(list)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2 Jan 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	for i, p := range list {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(44, 82, 130)
		pdf.MultiCell(0, 7, fmt.Sprintf("%d. %s", i+1, p.Name), "", "L", false)

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 5, fmt.Sprintf("Completed: %s", p.CompletedAt.Format(time.RFC1123)), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		for _, a := range p.Answers {
			q, ok := cat.ByID(a.QuestionID)
			if !ok {
				continue
			}
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(0, 0, 0)
			pdf.MultiCell(0, 5, fmt.Sprintf("Q%d: %s", q.ID, q.Prompt), "", "L", false)

			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(60, 60, 60)
			pdf.MultiCell(0, 5, fmt.Sprintf("A: %s", a.Value), "", "L", false)
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	return pdf.Output(w)
}
