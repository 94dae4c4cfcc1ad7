package sampler

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/ersilia-os/ensemble-tabpfn/pkg/errors"
)

// FeatureSampler splits the column space of a matrix into groups no wider
// than the configured cap. A partitioning covers every column exactly once,
// so no feature is lost; the grouping is a random permutation chunked into
// ceil(nCols/cap) groups, reproducible from the rng state.
//
// Partition computes a fresh grouping; Replay applies a stored grouping to
// another matrix with the same column count, which keeps training and
// inference feature spaces aligned per ensemble member.
type FeatureSampler struct {
	nFeatures int
}

// NewFeatureSampler creates a FeatureSampler with the given per-group
// column cap.
func NewFeatureSampler(nFeatures int) (*FeatureSampler, error) {
	if nFeatures <= 0 {
		return nil, errors.NewValidationError("n_features", "must be positive", nFeatures)
	}
	return &FeatureSampler{nFeatures: nFeatures}, nil
}

// Partition splits the columns of X into capped groups and returns the
// grouping together with one column-restricted copy of X per group.
func (fs *FeatureSampler) Partition(X mat.Matrix, rng *rand.Rand) ([][]int, []*mat.Dense, error) {
	nRows, nCols := X.Dims()
	if nRows == 0 || nCols == 0 {
		return nil, nil, errors.NewValueError("Partition", "empty matrix")
	}

	perm := rng.Perm(nCols)
	nGroups := (nCols + fs.nFeatures - 1) / fs.nFeatures

	groups := make([][]int, 0, nGroups)
	for start := 0; start < nCols; start += fs.nFeatures {
		end := start + fs.nFeatures
		if end > nCols {
			end = nCols
		}
		group := make([]int, end-start)
		copy(group, perm[start:end])
		groups = append(groups, group)
	}

	reduced, err := fs.Replay(X, groups)
	if err != nil {
		return nil, nil, err
	}
	return groups, reduced, nil
}

// Replay applies a previously computed grouping to X, producing one reduced
// matrix per group in the stored order. X must have at least as many
// columns as the grouping references.
func (fs *FeatureSampler) Replay(X mat.Matrix, groups [][]int) ([]*mat.Dense, error) {
	nRows, nCols := X.Dims()
	if nRows == 0 || nCols == 0 {
		return nil, errors.NewValueError("Replay", "empty matrix")
	}

	reduced := make([]*mat.Dense, len(groups))
	for g, group := range groups {
		sub := mat.NewDense(nRows, len(group), nil)
		for j, col := range group {
			if col < 0 || col >= nCols {
				return nil, errors.NewDimensionError("Replay", col+1, nCols, 1)
			}
			for i := 0; i < nRows; i++ {
				sub.Set(i, j, X.At(i, col))
			}
		}
		reduced[g] = sub
	}
	return reduced, nil
}
