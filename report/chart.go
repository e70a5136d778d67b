package report

import (
	"image/color"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultTop is how many itemsets PlotTop draws when n <= 0.
const DefaultTop = 10

var barColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// PlotTop draws the n highest-support rows of t as a horizontal bar chart and
// saves it to path. The format follows the extension (.png, .svg, .pdf, ...).
// The highest-support itemset is drawn at the top.
func PlotTop(t Table, n int, path string) error {
	if n <= 0 {
		n = DefaultTop
	}
	rows := t.Head(n)
	if len(rows) == 0 {
		return errors.NewValueError("report.PlotTop", "table "+t.Name+" has no rows")
	}
	if filepath.Ext(path) == "" {
		return errors.NewValueError("report.PlotTop", "chart path needs an extension such as .png or .svg")
	}

	// NominalY puts the first label at the bottom, so rows go in reversed.
	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		j := len(rows) - 1 - i
		values[j] = r.Support
		labels[j] = r.Itemset
	}

	p := plot.New()
	p.Title.Text = "Top " + strings.ToLower(t.Name) + " itemsets"
	p.X.Label.Text = "support"
	p.X.Min = 0

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return errors.Wrap(err, "report: building bar chart")
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalY(labels...)

	height := vg.Length(len(rows))*vg.Points(22) + 1.5*vg.Inch
	if err := p.Save(8*vg.Inch, height, path); err != nil {
		return errors.Wrapf(err, "report: saving chart to %s", path)
	}
	return nil
}
