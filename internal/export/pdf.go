package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

// PDF renders the task as a single-page PDF document. The creation date is
// pinned to the task's own timestamp so output stays byte-identical across
// requests.
func PDF(task *domain.Task) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(task.CreatedAt.UTC())
	doc.SetTitle(heading, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, heading, "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	for _, line := range infoLines(task) {
		doc.MultiCell(0, 6, line, "", "L", false)
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "BU", 14)
	doc.CellFormat(0, 8, descriptionHeading, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(0, 6, description(task), "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
