package score

import "math"

// ConfusionMatrix counts binary outcomes for one class.
type ConfusionMatrix struct {
	TP int64 `json:"tp"`
	TN int64 `json:"tn"`
	FP int64 `json:"fp"`
	FN int64 `json:"fn"`
}

// Update records one sample.
func (m *ConfusionMatrix) Update(present, predicted bool) {
	switch {
	case present && predicted:
		m.TP++
	case present:
		m.FN++
	case predicted:
		m.FP++
	default:
		m.TN++
	}
}

// Support is the number of samples where the class is present.
func (m ConfusionMatrix) Support() int64 { return m.TP + m.FN }

// Total is the number of samples recorded.
func (m ConfusionMatrix) Total() int64 { return m.TP + m.TN + m.FP + m.FN }

func ratio(num, den int64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}

// Accuracy is (TP+TN)/Total, NaN when empty.
func (m ConfusionMatrix) Accuracy() float64 {
	return ratio(m.TP+m.TN, m.Total())
}

// F1 is 2TP/(2TP+FP+FN), NaN when the class never appears in either labels
// or predictions.
func (m ConfusionMatrix) F1() float64 {
	return ratio(2*m.TP, 2*m.TP+m.FP+m.FN)
}

// BalancedAccuracy is the mean of the true positive and true negative rates.
// It is NaN unless both rates are defined.
func (m ConfusionMatrix) BalancedAccuracy() float64 {
	tpr := ratio(m.TP, m.TP+m.FN)
	tnr := ratio(m.TN, m.TN+m.FP)
	return (tpr + tnr) / 2
}
