// Package ensemble implements an ensemble estimator that applies a bounded
// tabular classifier to datasets exceeding its row and feature caps.
//
// Fit partitions the training set into many row/feature sub-samples small
// enough for the classifier, validates each candidate on a held-out split,
// and retains one ensemble member per iteration until early stopping or the
// iteration budget ends the loop. Predict replays every retained member:
// the classifier is retrained on the member's rows and feature groups and
// its per-class probability estimates are averaged into one prediction per
// input row.
package ensemble

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ersilia-os/ensemble-tabpfn/core/model"
	"github.com/ersilia-os/ensemble-tabpfn/metrics"
	"github.com/ersilia-os/ensemble-tabpfn/pkg/errors"
	"github.com/ersilia-os/ensemble-tabpfn/pkg/log"
	"github.com/ersilia-os/ensemble-tabpfn/sampler"
)

// validationFraction is the share of the training data held out for the
// early-stopping validation split.
const validationFraction = 0.2

// EnsembleTabPFN wraps a bounded classifier capability behind a
// sub-sampling ensemble, exposing the usual estimator surface: Fit,
// Predict, PredictProba, Score, Save/Load.
type EnsembleTabPFN struct {
	state *model.StateManager

	// Hyperparameters
	maxIters                int              // Iteration budget of the fit loop
	samplerStrategy         sampler.Strategy // Row-sampling strategy
	nSamples                int              // Rows per sub-sample, <= MaxInputSize
	nFeatures               int              // Columns per feature group, <= MaxFeatureSize
	randomState             int64            // Seed; < 0 means non-reproducible
	earlyStoppingRounds     int              // Patience in non-improving rounds
	tolerance               float64          // Minimum score improvement
	nEnsembleConfigurations int              // Classifier-internal ensembling knob

	dataSampler    sampler.DataSampler
	featureSampler *sampler.FeatureSampler
	factory        ClassifierFactory
	logger         log.Logger

	// Fitted attributes
	ensembles_ []Member
	classes_   []float64
	trainX     *mat.Dense
	trainY     *mat.VecDense
}

// New creates an EnsembleTabPFN around the given classifier factory.
// Configuration errors (caps exceeded, non-positive budgets, unknown
// strategy) fail here, before any data is seen.
func New(factory ClassifierFactory, opts ...Option) (*EnsembleTabPFN, error) {
	if factory == nil {
		return nil, errors.NewValidationError("factory", "classifier factory is required", nil)
	}

	e := &EnsembleTabPFN{
		state:                   model.NewStateManager(),
		maxIters:                100,
		samplerStrategy:         sampler.Bootstrap,
		nSamples:                MaxInputSize,
		nFeatures:               MaxFeatureSize,
		randomState:             -1,
		earlyStoppingRounds:     5,
		tolerance:               1e-4,
		nEnsembleConfigurations: 4,
		factory:                 factory,
		logger:                  log.GetLogger(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.nSamples > MaxInputSize {
		return nil, errors.NewValidationError("n_samples",
			"must be less than or equal to the classifier's row cap (1000)", e.nSamples)
	}
	if e.nFeatures > MaxFeatureSize {
		return nil, errors.NewValidationError("n_features",
			"must be less than or equal to the classifier's feature cap (100)", e.nFeatures)
	}
	if e.maxIters <= 0 {
		return nil, errors.NewValidationError("max_iters", "must be positive", e.maxIters)
	}
	if e.earlyStoppingRounds <= 0 {
		return nil, errors.NewValidationError("early_stopping_rounds", "must be positive", e.earlyStoppingRounds)
	}
	if e.tolerance < 0 {
		return nil, errors.NewValidationError("tolerance", "must be non-negative", e.tolerance)
	}
	if e.nEnsembleConfigurations <= 0 {
		return nil, errors.NewValidationError("n_ensemble_configurations", "must be positive", e.nEnsembleConfigurations)
	}

	ds, err := sampler.New(e.samplerStrategy, e.nSamples)
	if err != nil {
		return nil, err
	}
	e.dataSampler = ds

	fs, err := sampler.NewFeatureSampler(e.nFeatures)
	if err != nil {
		return nil, err
	}
	e.featureSampler = fs

	return e, nil
}

// Fit generates the ensemble members used during prediction.
//
// The training data is split 80/20 into train and validation partitions.
// Each iteration draws a row sub-sample, partitions the column space,
// trains the classifier per feature group and scores it on the validation
// partition. One member is retained per successful iteration; the loop
// stops once the validation accuracy has not improved by more than the
// tolerance for early_stopping_rounds consecutive rounds, or when the
// iteration budget is exhausted.
//
// Iterations whose classifier fails to train are skipped, reported through
// the warning hook, and still consume budget and patience. Fit fails only
// when every iteration failed.
func (e *EnsembleTabPFN) Fit(X, y mat.Matrix) error {
	start := time.Now()

	nRows, nCols := X.Dims()
	if nRows == 0 || nCols == 0 {
		return errors.NewValueError("EnsembleTabPFN.Fit", "empty training matrix")
	}
	yRows, yCols := y.Dims()
	if yCols != 1 {
		return errors.NewValueError("EnsembleTabPFN.Fit", "y must be a column vector (n×1 matrix)")
	}
	if yRows != nRows {
		return errors.NewDimensionError("EnsembleTabPFN.Fit", nRows, yRows, 0)
	}

	// Members store row indices into this copy; prediction reconstructs
	// training tables from it.
	e.trainX = mat.DenseCopyOf(X)
	e.trainY = mat.NewVecDense(nRows, nil)
	for i := 0; i < nRows; i++ {
		e.trainY.SetVec(i, y.At(i, 0))
	}
	e.classes_ = extractClasses(e.trainY)
	e.ensembles_ = nil
	e.state.Reset()

	logger := e.logger.With(log.ModelNameKey, "EnsembleTabPFN")
	logger.Info("training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nRows,
		log.FeaturesKey, nCols,
		log.RandomSeedKey, e.randomState,
	)

	rng := e.newRNG()
	XTrain, yTrain, XVal, yVal, trainIdx, err := sampler.TrainValSplit(e.trainX, e.trainY, validationFraction, rng)
	if err != nil {
		return err
	}

	bestScore := math.Inf(-1)
	noImprovement := 0
	var lastErr error

	for iter := 0; iter < e.maxIters; iter++ {
		member, scores, err := e.runIteration(XTrain, yTrain, XVal, yVal, trainIdx, rng)
		if err != nil {
			// Contained: the iteration is lost but the fit goes on. The
			// failure still consumes budget and patience so a broken
			// classifier cannot spin forever.
			lastErr = errors.NewIterationError("EnsembleTabPFN.Fit", iter, err)
			errors.Warn(lastErr)
			logger.Warn("iteration failed, skipping",
				log.IterationKey, iter,
				"error", lastErr,
			)
			noImprovement++
			if noImprovement >= e.earlyStoppingRounds {
				break
			}
			continue
		}

		// Validation scores are folded in sequential group order so
		// early-stopping decisions are deterministic for a fixed seed.
		// The patience counter advances once per round: an iteration
		// counts as improving when any of its feature groups beats the
		// running best by more than the tolerance.
		improved := false
		for _, score := range scores {
			if score > bestScore+e.tolerance {
				bestScore = score
				improved = true
			}
		}
		if improved {
			noImprovement = 0
		} else {
			noImprovement++
		}

		e.ensembles_ = append(e.ensembles_, member)

		logger.Debug("iteration complete",
			log.IterationKey, iter,
			log.GroupsKey, len(member.Groups),
			log.BestScoreKey, bestScore,
			log.NoImprovementKey, noImprovement,
		)

		if noImprovement >= e.earlyStoppingRounds {
			logger.Info("early stopping",
				log.IterationKey, iter,
				log.BestScoreKey, bestScore,
			)
			break
		}
	}

	if len(e.ensembles_) == 0 {
		return errors.NewModelError("EnsembleTabPFN.Fit", "every iteration failed", lastErr)
	}

	e.state.SetDimensions(nCols, nRows)
	e.state.SetFitted()

	logger.Info("training complete",
		log.MembersKey, len(e.ensembles_),
		log.BestScoreKey, bestScore,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// runIteration executes one pass of the fit loop: sub-sample rows from the
// train partition, partition the columns, then train and score the
// classifier per feature group. The returned member records the drawn rows
// as indices into the original training matrix. scores holds one
// validation accuracy per feature group, in group order.
func (e *EnsembleTabPFN) runIteration(XTrain *mat.Dense, yTrain *mat.VecDense, XVal *mat.Dense, yVal *mat.VecDense, trainIdx []int, rng *rand.Rand) (Member, []float64, error) {
	subX, subY, drawn, err := e.dataSampler.Sample(XTrain, yTrain, rng)
	if err != nil {
		return Member{}, nil, err
	}

	groups, trainGroups, err := e.featureSampler.Partition(subX, rng)
	if err != nil {
		return Member{}, nil, err
	}
	valGroups, err := e.featureSampler.Replay(XVal, groups)
	if err != nil {
		return Member{}, nil, err
	}

	clf := e.factory(e.nEnsembleConfigurations)
	scores := make([]float64, 0, len(groups))
	for g := range groups {
		if err := clf.Fit(trainGroups[g], subY); err != nil {
			return Member{}, nil, err
		}
		yHat, err := clf.Predict(valGroups[g])
		if err != nil {
			return Member{}, nil, err
		}
		score, err := metrics.AccuracyMatrix(yVal, yHat)
		if err != nil {
			return Member{}, nil, err
		}
		scores = append(scores, score)
	}

	// Map the drawn indices from train-partition space back to rows of
	// the original matrix.
	indices := make([]int, len(drawn))
	for i, idx := range drawn {
		indices[i] = trainIdx[idx]
	}

	return Member{Indices: indices, Groups: groups}, scores, nil
}

// Members returns the retained ensemble members, in retention order.
func (e *EnsembleTabPFN) Members() []Member {
	return e.ensembles_
}

// Classes returns the distinct class labels seen during Fit, ascending.
func (e *EnsembleTabPFN) Classes() []float64 {
	return e.classes_
}

// IsFitted reports whether Fit has completed successfully.
func (e *EnsembleTabPFN) IsFitted() bool {
	return e.state.IsFitted()
}

// GetParams returns the hyperparameters, keyed by their canonical names.
func (e *EnsembleTabPFN) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"max_iters":                 e.maxIters,
		"data_sampler":              e.samplerStrategy.String(),
		"n_samples":                 e.nSamples,
		"n_features":                e.nFeatures,
		"random_state":              e.randomState,
		"early_stopping_rounds":     e.earlyStoppingRounds,
		"tolerance":                 e.tolerance,
		"n_ensemble_configurations": e.nEnsembleConfigurations,
	}
}

// newRNG creates the random source for one fit call. A non-negative seed
// reproduces the exact same ensemble sequence across fits.
func (e *EnsembleTabPFN) newRNG() *rand.Rand {
	if e.randomState >= 0 {
		return rand.New(rand.NewSource(e.randomState))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

// extractClasses returns the distinct labels in y, ascending.
func extractClasses(y *mat.VecDense) []float64 {
	seen := make(map[float64]bool)
	for i := 0; i < y.Len(); i++ {
		seen[y.AtVec(i)] = true
	}
	classes := make([]float64, 0, len(seen))
	for label := range seen {
		classes = append(classes, label)
	}
	sort.Float64s(classes)
	return classes
}
