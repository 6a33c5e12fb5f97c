package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

var barColor = color.RGBA{R: 0x4c, G: 0x72, B: 0xb0, A: 0xff}

// Renderer draws a bar chart of data classes per breach.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

var _ breach.ChartRenderer = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{Width: 10 * vg.Inch, Height: 6 * vg.Inch}
}

// RenderChart writes a PNG to path and returns it. No points, no file.
func (r *Renderer) RenderChart(points []breach.ChartPoint, path string) (string, error) {
	if len(points) == 0 {
		return "", nil
	}

	values := make(plotter.Values, len(points))
	names := make([]string, len(points))
	for i, p := range points {
		values[i] = float64(p.Count)
		names[i] = p.Name
	}

	p := plot.New()
	p.Title.Text = "Data Breaches by Compromised Data Classes"
	p.X.Label.Text = "Breach"
	p.Y.Label.Text = "Number of Data Classes"
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return "", fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	if len(names) > 4 {
		p.X.Tick.Label.Rotation = math.Pi / 4
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := p.Save(r.Width, r.Height, path); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}
	return path, nil
}
