package score

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/bathy.report/internal/photon"
)

// ClassScore is the confusion matrix for one class.
type ClassScore struct {
	Class  photon.Class    `json:"class"`
	Matrix ConfusionMatrix `json:"matrix"`
}

// Report holds per-class matrices and their support-weighted scores.
type Report struct {
	Class   photon.Class `json:"class"`
	Classes []ClassScore `json:"classes"`

	WeightedAccuracy         float64 `json:"weighted_accuracy"`
	WeightedF1               float64 `json:"weighted_f1"`
	WeightedBalancedAccuracy float64 `json:"weighted_balanced_accuracy"`
}

// ScoreClass scores predictions of cls. Every label other than cls counts as
// 0, so the report always has exactly two rows: 0 and cls.
func ScoreClass(points []photon.Photon, cls photon.Class) Report {
	keys := []photon.Class{photon.Unclassified, cls}
	if cls == photon.Unclassified {
		keys = keys[:1]
	}
	collapse := func(c photon.Class) photon.Class {
		if c != cls {
			return photon.Unclassified
		}
		return cls
	}

	matrices := make([]ConfusionMatrix, len(keys))
	for i := range points {
		actual := collapse(points[i].ManualLabel)
		pred := collapse(points[i].Prediction)
		for k, key := range keys {
			matrices[k].Update(actual == key, pred == key)
		}
	}

	r := Report{Class: cls}
	for k, key := range keys {
		r.Classes = append(r.Classes, ClassScore{Class: key, Matrix: matrices[k]})
	}
	sort.Slice(r.Classes, func(a, b int) bool { return r.Classes[a].Class < r.Classes[b].Class })

	r.WeightedAccuracy = weighted(r.Classes, ConfusionMatrix.Accuracy)
	r.WeightedF1 = weighted(r.Classes, ConfusionMatrix.F1)
	r.WeightedBalancedAccuracy = weighted(r.Classes, ConfusionMatrix.BalancedAccuracy)
	return r
}

// weighted sums metric*support/total over the classes, skipping classes
// where the metric is undefined.
func weighted(classes []ClassScore, metric func(ConfusionMatrix) float64) float64 {
	var values, weights []float64
	for _, c := range classes {
		v := metric(c.Matrix)
		if math.IsNaN(v) || c.Matrix.Total() == 0 {
			continue
		}
		values = append(values, v)
		weights = append(weights, float64(c.Matrix.Support())/float64(c.Matrix.Total()))
	}
	if len(values) == 0 {
		return 0
	}
	return floats.Dot(values, weights)
}

// WriteTable prints the report as a tab-aligned table followed by the
// weighted scores.
func (r Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	fmt.Fprintln(tw, "cls\tacc\tF1\tbal_acc\ttp\ttn\tfp\tfn\tsupport\ttotal")
	for _, c := range r.Classes {
		m := c.Matrix
		fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.3f\t%d\t%d\t%d\t%d\t%d\t%d\n",
			uint16(c.Class), m.Accuracy(), m.F1(), m.BalancedAccuracy(),
			m.TP, m.TN, m.FP, m.FN, m.Support(), m.Total())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "weighted_accuracy = %.3f\nweighted_F1 = %.3f\nweighted_bal_acc = %.3f\n",
		r.WeightedAccuracy, r.WeightedF1, r.WeightedBalancedAccuracy)
	return err
}
