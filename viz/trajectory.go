// Package viz renders the study's figures with gonum/plot: the per-encounter trajectory panels
// and the ROC comparison overlay. All renderers write PNG files.
package viz

import (
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// featureGrid presents a [timestep][variable] feature matrix as a heatmap grid, with timesteps
// along X and variables along Y.
type featureGrid struct {
	rows [][]float64
}

func (g featureGrid) Dims() (c, r int) {
	if len(g.rows) == 0 {
		return 0, 0
	}
	return len(g.rows), len(g.rows[0])
}

func (g featureGrid) Z(c, r int) float64 { return g.rows[c][r] }
func (g featureGrid) X(c int) float64    { return float64(c) }
func (g featureGrid) Y(r int) float64    { return float64(r) }

// Trajectory renders one encounter as two stacked panels: a heatmap of the input features over
// time, and the predicted survival probability at each timestep.
func Trajectory(path string, features [][]float64, survival []float64) error {
	if len(features) == 0 {
		return errors.Errorf("no feature timesteps given")
	} else if len(survival) != len(features) {
		return errors.Errorf("features and survival differ in length (%d != %d)", len(features), len(survival))
	}

	top := plot.New()
	top.Title.Text = "Observed variables"
	top.X.Label.Text = "Timestep"
	top.Y.Label.Text = "Variable"
	top.Add(plotter.NewHeatMap(featureGrid{features}, moreland.SmoothBlueRed().Palette(255)))

	pts := make(plotter.XYs, len(survival))
	for t := range survival {
		pts[t].X = float64(t)
		pts[t].Y = survival[t]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrapf(err, "Failed to build survival line")
	}

	bottom := plot.New()
	bottom.Title.Text = "Predicted survival"
	bottom.X.Label.Text = "Timestep"
	bottom.Y.Label.Text = "P(survival)"
	bottom.Y.Min, bottom.Y.Max = 0, 1
	bottom.Add(line)

	img := vgimg.New(18*vg.Centimeter, 14*vg.Centimeter)
	dc := draw.New(img)

	plots := [][]*plot.Plot{{top}, {bottom}}
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: 2 * vg.Millimeter}

	canvases := plot.Align(plots, tiles, dc)
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])

	return writePNG(path, img)
}

func writePNG(path string, img *vgimg.Canvas) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create %q", path)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return errors.Wrapf(err, "Failed to write %q", path)
	}

	return nil
}
