// Package sampler provides the data reduction primitives behind the
// ensemble: row-sampling strategies that shrink a training set to the
// classifier's row cap, a feature partitioner that splits the column space
// into capped groups, and a train/validation splitter for the fit loop.
//
// All randomness flows through a *rand.Rand owned by the caller, so a fixed
// seed reproduces the exact same sequence of sub-samples and partitions.
package sampler

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/ersilia-os/ensemble-tabpfn/pkg/errors"
)

// Strategy selects a row-sampling strategy. The set is closed: strategies
// are compiled in, not looked up by name at runtime.
type Strategy int

const (
	// Bootstrap draws rows uniformly with replacement. The default.
	Bootstrap Strategy = iota

	// Stratified draws rows without replacement, allocating the sample
	// across classes in proportion to their frequency.
	Stratified
)

// String returns the canonical name of the strategy.
func (s Strategy) String() string {
	switch s {
	case Bootstrap:
		return "bootstrap"
	case Stratified:
		return "stratified"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a canonical name back to a Strategy. Used when
// restoring a persisted estimator.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "bootstrap":
		return Bootstrap, nil
	case "stratified":
		return Stratified, nil
	default:
		return 0, errors.NewValidationError("data_sampler", "unknown sampling strategy", name)
	}
}

// DataSampler draws a reproducible row sub-sample from a training set.
//
// Sample returns the selected rows and targets in sampling order
// (duplicates preserved where the strategy permits them) together with the
// drawn row indices. The index set always has exactly the configured number
// of entries, each in [0, nRows).
type DataSampler interface {
	Sample(X mat.Matrix, y *mat.VecDense, rng *rand.Rand) (subX *mat.Dense, subY *mat.VecDense, indices []int, err error)
	Strategy() Strategy
}

// New creates a DataSampler drawing nSamples rows per call.
func New(strategy Strategy, nSamples int) (DataSampler, error) {
	if nSamples <= 0 {
		return nil, errors.NewValidationError("n_samples", "must be positive", nSamples)
	}
	switch strategy {
	case Bootstrap:
		return &bootstrapSampler{nSamples: nSamples}, nil
	case Stratified:
		return &stratifiedSampler{nSamples: nSamples}, nil
	default:
		return nil, errors.NewValidationError("data_sampler", "unknown sampling strategy", strategy)
	}
}

// bootstrapSampler draws rows uniformly at random with replacement.
type bootstrapSampler struct {
	nSamples int
}

func (b *bootstrapSampler) Strategy() Strategy { return Bootstrap }

func (b *bootstrapSampler) Sample(X mat.Matrix, y *mat.VecDense, rng *rand.Rand) (*mat.Dense, *mat.VecDense, []int, error) {
	nRows, _, err := checkSampleInput(X, y)
	if err != nil {
		return nil, nil, nil, err
	}

	indices := make([]int, b.nSamples)
	for i := range indices {
		indices[i] = rng.Intn(nRows)
	}

	subX, subY := TakeRows(X, y, indices)
	return subX, subY, indices, nil
}

// stratifiedSampler draws rows without replacement, keeping the class
// proportions of the input.
type stratifiedSampler struct {
	nSamples int
}

func (s *stratifiedSampler) Strategy() Strategy { return Stratified }

func (s *stratifiedSampler) Sample(X mat.Matrix, y *mat.VecDense, rng *rand.Rand) (*mat.Dense, *mat.VecDense, []int, error) {
	nRows, _, err := checkSampleInput(X, y)
	if err != nil {
		return nil, nil, nil, err
	}
	if s.nSamples > nRows {
		return nil, nil, nil, errors.NewValueError("Stratified.Sample",
			"cannot sample without replacement more rows than the input has")
	}

	// Bucket row indices by label. Classes are visited in sorted label
	// order so the draw depends only on the rng state.
	byClass := make(map[float64][]int)
	for i := 0; i < nRows; i++ {
		label := y.AtVec(i)
		byClass[label] = append(byClass[label], i)
	}
	labels := make([]float64, 0, len(byClass))
	for label := range byClass {
		labels = append(labels, label)
	}
	sort.Float64s(labels)

	// Proportional quota per class, floor first, then hand out the
	// remainder in label order.
	quotas := make([]int, len(labels))
	total := 0
	for i, label := range labels {
		quotas[i] = int(math.Floor(float64(len(byClass[label])) * float64(s.nSamples) / float64(nRows)))
		total += quotas[i]
	}
	for i := 0; total < s.nSamples; i = (i + 1) % len(labels) {
		if quotas[i] < len(byClass[labels[i]]) {
			quotas[i]++
			total++
		}
	}

	indices := make([]int, 0, s.nSamples)
	for i, label := range labels {
		rows := byClass[label]
		rng.Shuffle(len(rows), func(a, b int) { rows[a], rows[b] = rows[b], rows[a] })
		indices = append(indices, rows[:quotas[i]]...)
	}

	subX, subY := TakeRows(X, y, indices)
	return subX, subY, indices, nil
}

// checkSampleInput validates the matrix/target pair shared by all
// strategies.
func checkSampleInput(X mat.Matrix, y *mat.VecDense) (nRows, nCols int, err error) {
	nRows, nCols = X.Dims()
	if nRows == 0 || nCols == 0 {
		return 0, 0, errors.NewValueError("Sample", "empty matrix")
	}
	if y.Len() != nRows {
		return 0, 0, errors.NewDimensionError("Sample", nRows, y.Len(), 0)
	}
	return nRows, nCols, nil
}

// TakeRows copies the selected rows of X and y, in index order. Duplicate
// indices yield duplicate rows, which is what bootstrap replay needs.
func TakeRows(X mat.Matrix, y *mat.VecDense, indices []int) (*mat.Dense, *mat.VecDense) {
	_, nCols := X.Dims()
	subX := mat.NewDense(len(indices), nCols, nil)
	subY := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		for j := 0; j < nCols; j++ {
			subX.Set(i, j, X.At(idx, j))
		}
		subY.SetVec(i, y.AtVec(idx))
	}
	return subX, subY
}
