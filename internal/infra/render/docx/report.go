package docx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gingfrederik/docx"

	"github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

const divider = "--------------------------------------------------"

// Renderer writes the breach report as a Word document. Images are not
// supported by the docx writer, so the chart is referenced by file name.
type Renderer struct{}

var _ breach.ReportRenderer = (*Renderer)(nil)

func NewRenderer() *Renderer { return &Renderer{} }

func (*Renderer) Extension() string { return "docx" }

func (r *Renderer) RenderReport(in breach.ReportInput, path string) error {
	f := docx.NewFile()

	// Header
	p := f.AddParagraph()
	run := p.AddText("Breach Report for " + in.Account)
	run.Size(20)

	p = f.AddParagraph()
	run = p.AddText("Generated " + in.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))
	run.Size(10)
	run.Color("808080")

	f.AddParagraph() // Spacer

	p = f.AddParagraph()
	p.AddText("Summary").Size(16)
	f.AddParagraph().AddText(in.Summary)

	f.AddParagraph() // Spacer
	f.AddParagraph().AddText(divider)
	f.AddParagraph() // Spacer

	p = f.AddParagraph()
	p.AddText(fmt.Sprintf("Breaches (%d)", len(in.Rows))).Size(16)
	for _, row := range in.Rows {
		p = f.AddParagraph()
		p.AddText(row.Name).Size(14)

		verified := "unverified"
		if row.IsVerified {
			verified = "verified"
		}
		p = f.AddParagraph()
		run = p.AddText(fmt.Sprintf("Breach date: %s | %s", row.BreachDate, verified))
		run.Size(10)
		run.Color("808080")

		f.AddParagraph().AddText("Data classes: " + row.DataClassesText())
	}

	if in.ChartPath != "" {
		f.AddParagraph() // Spacer
		p = f.AddParagraph()
		run = p.AddText("Chart: " + filepath.Base(in.ChartPath))
		run.Color("0000FF")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return f.Save(path)
}
