package ensemble

import "gonum.org/v1/gonum/mat"

// Input caps of the bounded classifier. Sub-samples handed to the
// capability never exceed MaxInputSize rows or MaxFeatureSize columns, and
// the estimator's n_samples / n_features settings are validated against
// these at construction.
const (
	MaxInputSize   = 1000
	MaxFeatureSize = 100
)

// Classifier is the bounded classifier capability the ensemble wraps. It
// is a black box that trains fast on small tables; the ensemble never
// inspects its internals.
//
// Fit replaces any previous training state on the instance, so the same
// instance can be retrained configuration after configuration. Instances
// are not safe for concurrent Fit calls; the estimator obtains a fresh
// instance per concurrent unit of work through its ClassifierFactory.
//
// Predict returns an n×1 matrix of class labels. PredictProba returns an
// n×k probability matrix with one column per distinct label seen by Fit,
// in ascending label order, each row summing to 1. Both require a prior
// successful Fit on the same instance.
type Classifier interface {
	Fit(X, y mat.Matrix) error
	Predict(X mat.Matrix) (mat.Matrix, error)
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// ClassifierFactory produces a fresh, independent Classifier instance.
// The argument is the estimator's n_ensemble_configurations setting, an
// internal ensembling knob of TabPFN-style classifiers; implementations
// may ignore it. Injecting the capability here replaces any process-global
// device or backend selection.
type ClassifierFactory func(nEnsembleConfigurations int) Classifier
