// Package score compares predicted classes against manual labels.
//
// Scores are binary per class: labels are collapsed to {0, cls} and a
// confusion matrix is kept for each of the two. The weighted figures average
// the per-class scores by support.
package score
