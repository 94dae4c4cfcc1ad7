package ensemble

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ersilia-os/ensemble-tabpfn/pkg/errors"
)

// Result accumulates the raw per-(member, feature-group) probability
// arrays of one predict call and aggregates them into final class
// probabilities and labels. It lives for the duration of a single call;
// nothing aggregated is stored on the estimator.
type Result struct {
	raw []*mat.Dense
}

// NewResult creates an empty accumulator.
func NewResult() *Result {
	return &Result{}
}

// Append adds one raw probability array (rows × classes).
func (r *Result) Append(probs *mat.Dense) {
	r.raw = append(r.raw, probs)
}

// Len returns the number of collected arrays.
func (r *Result) Len() int {
	return len(r.raw)
}

// Aggregate reduces the collected arrays to a single probability matrix
// (element-wise mean) and a label index per row (arg-max over the averaged
// probabilities, ties broken by the lowest class index). Every collected
// array must share the same shape; a mismatch fails with a dimension error
// naming the offending axis.
func (r *Result) Aggregate() (probs *mat.Dense, labels []int, err error) {
	if len(r.raw) == 0 {
		return nil, nil, errors.NewValueError("Result.Aggregate", "no predictions collected")
	}

	nRows, nClasses := r.raw[0].Dims()
	for _, p := range r.raw[1:] {
		pr, pc := p.Dims()
		if pr != nRows {
			return nil, nil, errors.NewDimensionError("Result.Aggregate", nRows, pr, 0)
		}
		if pc != nClasses {
			return nil, nil, errors.NewDimensionError("Result.Aggregate", nClasses, pc, 1)
		}
	}

	probs = mat.NewDense(nRows, nClasses, nil)
	for _, p := range r.raw {
		probs.Add(probs, p)
	}
	probs.Scale(1/float64(len(r.raw)), probs)

	labels = make([]int, nRows)
	for i := 0; i < nRows; i++ {
		best := 0
		for j := 1; j < nClasses; j++ {
			if probs.At(i, j) > probs.At(i, best) {
				best = j
			}
		}
		labels[i] = best
	}

	return probs, labels, nil
}
