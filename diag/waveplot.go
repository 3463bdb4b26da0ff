// DESCRIPTION
//   waveplot.go renders one scanline's analog waveform to a PNG, so a
//   human can eyeball sync/burst/active-video timing without building a
//   viewer.
//
// AUTHOR
//   crtcore contributors

package diag

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotLine renders one scanline's composite waveform to path as a PNG.
func PlotLine(line []int8, path string) error {
	p := plot.New()
	p.Title.Text = "composite waveform"
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "IRE"

	pts := make(plotter.XYs, len(line))
	for i, s := range line {
		pts[i].X = float64(i)
		pts[i].Y = float64(s)
	}

	lineplot, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(lineplot)

	return p.Save(8*vg.Inch, 2*vg.Inch, path)
}
