package sampler

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/ersilia-os/ensemble-tabpfn/pkg/errors"
)

// TrainValSplit shuffles the rows of X and y with rng and splits off the
// given fraction as a validation set. Both sides are guaranteed at least
// one row. trainIndices maps each train-partition row back to its row in
// X, so sub-samples drawn from the train partition can be recorded as
// indices into the original matrix.
func TrainValSplit(X mat.Matrix, y *mat.VecDense, valFraction float64, rng *rand.Rand) (XTrain *mat.Dense, yTrain *mat.VecDense, XVal *mat.Dense, yVal *mat.VecDense, trainIndices []int, err error) {
	nRows, _, err := checkSampleInput(X, y)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	if valFraction <= 0 || valFraction >= 1 {
		return nil, nil, nil, nil, nil, errors.NewValidationError("val_fraction", "must be in (0, 1)", valFraction)
	}
	if nRows < 2 {
		return nil, nil, nil, nil, nil, errors.NewValueError("TrainValSplit", "need at least 2 rows to split")
	}

	nVal := int(float64(nRows) * valFraction)
	if nVal < 1 {
		nVal = 1
	}
	if nVal >= nRows {
		nVal = nRows - 1
	}

	perm := rng.Perm(nRows)
	XVal, yVal = TakeRows(X, y, perm[:nVal])
	trainIndices = perm[nVal:]
	XTrain, yTrain = TakeRows(X, y, trainIndices)
	return XTrain, yTrain, XVal, yVal, trainIndices, nil
}
