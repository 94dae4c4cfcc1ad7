package ensemble

import (
	"github.com/ersilia-os/ensemble-tabpfn/pkg/log"
	"github.com/ersilia-os/ensemble-tabpfn/sampler"
)

// Option is a functional option for EnsembleTabPFN. Values set here are
// validated by New; invalid settings fail construction.
type Option func(*EnsembleTabPFN)

// WithMaxIters sets the iteration budget of the fit loop (default 100).
// More iterations mean more candidate members and slower prediction.
func WithMaxIters(n int) Option {
	return func(e *EnsembleTabPFN) {
		e.maxIters = n
	}
}

// WithDataSampler selects the row-sampling strategy (default
// sampler.Bootstrap).
func WithDataSampler(s sampler.Strategy) Option {
	return func(e *EnsembleTabPFN) {
		e.samplerStrategy = s
	}
}

// WithNSamples sets the number of rows per sub-sample (default 1000, must
// not exceed MaxInputSize).
func WithNSamples(n int) Option {
	return func(e *EnsembleTabPFN) {
		e.nSamples = n
	}
}

// WithNFeatures sets the column cap per feature group (default 100, must
// not exceed MaxFeatureSize).
func WithNFeatures(n int) Option {
	return func(e *EnsembleTabPFN) {
		e.nFeatures = n
	}
}

// WithRandomState sets the seed for row sampling, feature partitioning and
// the validation split. Fits with the same seed and configuration produce
// identical ensembles. Negative means non-reproducible (the default).
func WithRandomState(seed int64) Option {
	return func(e *EnsembleTabPFN) {
		e.randomState = seed
	}
}

// WithEarlyStoppingRounds sets the patience: the number of consecutive
// non-improving rounds after which the fit loop stops (default 5).
func WithEarlyStoppingRounds(rounds int) Option {
	return func(e *EnsembleTabPFN) {
		e.earlyStoppingRounds = rounds
	}
}

// WithTolerance sets the minimum validation-accuracy improvement that
// resets the patience counter (default 1e-4).
func WithTolerance(tol float64) Option {
	return func(e *EnsembleTabPFN) {
		e.tolerance = tol
	}
}

// WithNEnsembleConfigurations sets the classifier-internal ensembling knob
// passed to the factory (default 4). Higher values slow prediction down.
func WithNEnsembleConfigurations(n int) Option {
	return func(e *EnsembleTabPFN) {
		e.nEnsembleConfigurations = n
	}
}

// WithLogger injects the logger used by the fit and predict loops. The
// default is the process-wide logger from pkg/log.
func WithLogger(l log.Logger) Option {
	return func(e *EnsembleTabPFN) {
		e.logger = l
	}
}
