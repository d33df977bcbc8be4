package viz

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/fredyulie123/deep-machine-learning/metrics"
)

// NamedCurve is a ROC curve with the classifier's display name.
type NamedCurve struct {
	Name  string
	Curve metrics.Curve
}

// ROCOverlay renders the given ROC curves on shared axes, with each classifier's AUC in the
// legend and the chance diagonal for reference.
func ROCOverlay(path string, curves []NamedCurve) error {
	if len(curves) == 0 {
		return errors.Errorf("no curves given")
	}

	p := plot.New()
	p.Title.Text = "ROC comparison"
	p.X.Label.Text = "False positive rate"
	p.Y.Label.Text = "True positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.Legend.Top = false
	p.Legend.Left = false

	for i, c := range curves {
		pts := make(plotter.XYs, len(c.Curve.FPR))
		for k := range pts {
			pts[k].X = c.Curve.FPR[k]
			pts[k].Y = c.Curve.TPR[k]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrapf(err, "Failed to build line for %q", c.Name)
		}
		line.Color = plotutil.Color(i)

		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%s (AUC %.3f)", c.Name, c.Curve.AUC), line)
	}

	diag, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return errors.Wrapf(err, "Failed to build chance diagonal")
	}
	diag.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(diag)

	if err := p.Save(15*vg.Centimeter, 15*vg.Centimeter, path); err != nil {
		return errors.Wrapf(err, "Failed to save %q", path)
	}

	return nil
}
