package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

const (
	fontFamily = "Helvetica"
	pageWidth  = 190.0 // A4 minus 10mm margins
)

// Renderer writes the breach report as PDF.
type Renderer struct{}

var _ breach.ReportRenderer = (*Renderer)(nil)

func NewRenderer() *Renderer { return &Renderer{} }

func (*Renderer) Extension() string { return "pdf" }

func (r *Renderer) RenderReport(in breach.ReportInput, path string) error {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle("Breach Report for "+in.Account, true)
	doc.SetCreator("pwncheck", true)
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont(fontFamily, "I", 8)
		doc.CellFormat(0, 10, fmt.Sprintf("Page %d", doc.PageNo()), "", 0, "C", false, 0, "")
	})
	doc.AddPage()

	doc.SetFont(fontFamily, "B", 18)
	doc.CellFormat(0, 12, tr("Breach Report for "+in.Account), "", 1, "C", false, 0, "")
	doc.SetFont(fontFamily, "", 9)
	meta := "Generated " + in.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")
	if in.LookupID != "" {
		meta += " | Lookup " + in.LookupID
	}
	doc.CellFormat(0, 6, meta, "", 1, "C", false, 0, "")
	doc.Ln(4)

	section(doc, "Summary")
	doc.SetFont(fontFamily, "", 11)
	doc.MultiCell(0, 6, tr(in.Summary), "", "L", false)
	doc.Ln(4)

	section(doc, fmt.Sprintf("Breaches (%d)", len(in.Rows)))
	breachTable(doc, tr, in.Rows)
	doc.Ln(4)

	section(doc, "Compromised Data Classes")
	for _, row := range in.Rows {
		doc.SetFont(fontFamily, "B", 11)
		doc.CellFormat(0, 6, tr(row.Name), "", 1, "L", false, 0, "")
		doc.SetFont(fontFamily, "", 10)
		doc.MultiCell(0, 5, tr(row.DataClassesText()), "", "L", false)
		doc.Ln(2)
	}

	if in.ChartPath != "" {
		doc.AddPage()
		section(doc, "Data Classes per Breach")
		doc.ImageOptions(in.ChartPath, 10, doc.GetY()+2, pageWidth, 0, false,
			fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func section(doc *fpdf.Fpdf, title string) {
	doc.SetFont(fontFamily, "B", 14)
	doc.CellFormat(0, 9, title, "B", 1, "L", false, 0, "")
	doc.Ln(2)
}

func breachTable(doc *fpdf.Fpdf, tr func(string) string, rows []breach.Row) {
	widths := []float64{60, 35, 25, 70}
	headers := []string{"Name", "Breach Date", "Verified", "Data Class Count"}

	doc.SetFont(fontFamily, "B", 10)
	doc.SetFillColor(230, 230, 230)
	for i, h := range headers {
		doc.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont(fontFamily, "", 9)
	for _, row := range rows {
		classes := strconv.Itoa(len(row.DataClasses))
		cells := []string{tr(row.Name), row.BreachDate, yesNo(row.IsVerified), classes}
		for i, c := range cells {
			doc.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
