// Package metrics computes ROC curves and their area under the curve for binary classifier
// scores, delegating the threshold sweep to gonum.
package metrics

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Curve is a receiver operating characteristic curve: paired false- and true-positive rates for
// every decision threshold, in ascending FPR order with endpoints (0,0) and (1,1), and the area
// under it.
type Curve struct {
	FPR, TPR []float64
	AUC      float64
}

// ROC computes the ROC curve and AUC for the given scores and ground-truth labels. Both classes
// must be present; otherwise no threshold sweep is meaningful and an error is returned.
func ROC(scores []float64, labels []bool) (Curve, error) {
	if len(scores) != len(labels) {
		return Curve{}, errors.Errorf("scores and labels differ in length (%d != %d)", len(scores), len(labels))
	} else if len(scores) == 0 {
		return Curve{}, errors.Errorf("no scores given")
	}

	var pos int
	for _, l := range labels {
		if l {
			pos++
		}
	}
	if pos == 0 || pos == len(labels) {
		return Curve{}, errors.Errorf("only one class present (%d of %d positive)", pos, len(labels))
	}

	// stat.ROC requires its inputs sorted by score; copy so the caller's order survives
	y := make([]float64, len(scores))
	classes := make([]bool, len(labels))
	copy(y, scores)
	copy(classes, labels)
	stat.SortWeightedLabeled(y, classes, nil)

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)

	// orient the sweep from (0,0) to (1,1)
	if !sort.Float64sAreSorted(fpr) {
		reverse(fpr)
		reverse(tpr)
	}

	return Curve{
		FPR: fpr,
		TPR: tpr,
		AUC: integrate.Trapezoidal(fpr, tpr),
	}, nil
}

func reverse(xs []float64) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}
