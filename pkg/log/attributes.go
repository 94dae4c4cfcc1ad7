package log

// Standard attribute keys for structured logging. Shared keys keep log
// records consistent across the estimator and its samplers.

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "EnsembleTabPFN".
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "predict", "predict_proba", "score".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns being processed.
	FeaturesKey = "data.features"

	// GroupsKey is the number of feature groups in a partitioning.
	GroupsKey = "data.feature_groups"

	// MembersKey is the number of retained ensemble members.
	MembersKey = "ensemble.members"
)

// Training progress.
const (
	// IterationKey is the current iteration of the fit loop.
	IterationKey = "training.iteration"

	// AccuracyKey is a validation accuracy value.
	AccuracyKey = "metrics.accuracy"

	// BestScoreKey is the running best validation score.
	BestScoreKey = "training.best_score"

	// NoImprovementKey is the early-stopping patience counter.
	NoImprovementKey = "training.no_improvement"

	// DurationMsKey is the elapsed time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// RandomSeedKey is the seed in use, for reproducibility tracking.
	RandomSeedKey = "config.random_seed"
)

// Standard operation values.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationPredictProba = "predict_proba"
	OperationScore        = "score"
)
