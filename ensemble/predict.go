package ensemble

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ersilia-os/ensemble-tabpfn/core/parallel"
	"github.com/ersilia-os/ensemble-tabpfn/metrics"
	"github.com/ersilia-os/ensemble-tabpfn/pkg/errors"
	"github.com/ersilia-os/ensemble-tabpfn/pkg/log"
	"github.com/ersilia-os/ensemble-tabpfn/sampler"
)

// Predict returns the predicted class label for each row of X, an n×1
// matrix. Every retained member is replayed: its training rows are
// reconstructed from the stored indices, the classifier is retrained per
// feature group, and the per-class probabilities are averaged before
// taking the arg-max (ties go to the lowest class).
func (e *EnsembleTabPFN) Predict(X mat.Matrix) (mat.Matrix, error) {
	result, err := e.predictAll(X, "Predict")
	if err != nil {
		return nil, err
	}

	probs, labelIdx, err := result.Aggregate()
	if err != nil {
		return nil, err
	}
	_, nClasses := probs.Dims()
	if nClasses != len(e.classes_) {
		return nil, errors.NewDimensionError("EnsembleTabPFN.Predict", len(e.classes_), nClasses, 1)
	}

	out := mat.NewDense(len(labelIdx), 1, nil)
	for i, idx := range labelIdx {
		out.Set(i, 0, e.classes_[idx])
	}
	return out, nil
}

// PredictProba returns the aggregated probability estimates for each row
// of X: an n×k matrix with one column per class in ascending label order,
// rows summing to 1. It performs the same retrain-and-aggregate work as
// Predict; nothing is cached between the two.
func (e *EnsembleTabPFN) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	result, err := e.predictAll(X, "PredictProba")
	if err != nil {
		return nil, err
	}

	probs, _, err := result.Aggregate()
	if err != nil {
		return nil, err
	}
	return probs, nil
}

// Score returns the mean accuracy of Predict on the given test data.
func (e *EnsembleTabPFN) Score(X, y mat.Matrix) (float64, error) {
	preds, err := e.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, preds)
}

// predictAll evaluates every retained member against X and collects the
// raw per-(member, group) probability arrays in retention order. Members
// are independent, so they are evaluated in parallel; each worker draws
// its own classifier instance from the factory and writes into its own
// slot, keeping the collected order deterministic.
func (e *EnsembleTabPFN) predictAll(X mat.Matrix, op string) (*Result, error) {
	if !e.state.IsFitted() || len(e.ensembles_) == 0 {
		return nil, errors.NewNotFittedError("EnsembleTabPFN", op)
	}

	nRows, nCols := X.Dims()
	if nRows == 0 || nCols == 0 {
		return nil, errors.NewValueError("EnsembleTabPFN."+op, "empty input matrix")
	}
	expectedCols, _ := e.state.GetDimensions()
	if nCols != expectedCols {
		return nil, errors.NewDimensionError("EnsembleTabPFN."+op, expectedCols, nCols, 1)
	}

	start := time.Now()

	perMember := make([][]*mat.Dense, len(e.ensembles_))
	memberErrs := make([]error, len(e.ensembles_))
	parallel.Parallelize(len(e.ensembles_), func(s, t int) {
		for i := s; i < t; i++ {
			perMember[i], memberErrs[i] = e.evaluateMember(e.ensembles_[i], X)
		}
	})

	result := NewResult()
	for i := range perMember {
		if memberErrs[i] != nil {
			return nil, errors.Wrapf(memberErrs[i], "ensemble member %d", i)
		}
		for _, p := range perMember[i] {
			result.Append(p)
		}
	}

	e.logger.Debug("ensemble prediction collected",
		log.ModelNameKey, "EnsembleTabPFN",
		log.OperationKey, op,
		log.SamplesKey, nRows,
		log.MembersKey, len(e.ensembles_),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// evaluateMember retrains the classifier on one member's configuration and
// returns one probability array per feature group, aligned between the
// reconstructed training rows and the test matrix by replaying the stored
// partitioning against both.
func (e *EnsembleTabPFN) evaluateMember(m Member, X mat.Matrix) ([]*mat.Dense, error) {
	subX, subY := sampler.TakeRows(e.trainX, e.trainY, m.Indices)

	trainGroups, err := e.featureSampler.Replay(subX, m.Groups)
	if err != nil {
		return nil, err
	}
	testGroups, err := e.featureSampler.Replay(X, m.Groups)
	if err != nil {
		return nil, err
	}

	clf := e.factory(e.nEnsembleConfigurations)
	preds := make([]*mat.Dense, 0, len(m.Groups))
	for g := range m.Groups {
		if err := clf.Fit(trainGroups[g], subY); err != nil {
			return nil, err
		}
		p, err := clf.PredictProba(testGroups[g])
		if err != nil {
			return nil, err
		}
		preds = append(preds, mat.DenseCopyOf(p))
	}
	return preds, nil
}
