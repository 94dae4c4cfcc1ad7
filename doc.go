// Package ensembletabpfn makes a bounded tabular classifier usable on
// datasets that exceed its input limits.
//
// TabPFN-style classifiers accept at most 1000 training rows and 100
// features per call. This module wraps such a classifier behind an
// ensemble: the training set is repeatedly subsampled (rows) and
// partitioned (features) into pieces the classifier can ingest, each
// candidate configuration is validated on a held-out split, and the
// retained configurations are replayed at prediction time, retraining the
// classifier per configuration and averaging the per-class probability
// estimates into a single prediction.
//
// The module is organized as follows:
//
//   - ensemble: the EnsembleTabPFN estimator (fit/predict loops, early
//     stopping, result aggregation, persistence)
//   - sampler: row-sampling strategies, the feature partitioner, and the
//     train/validation split
//   - metrics: classification metrics used by the fit loop
//   - core/model, core/parallel: estimator state management and the
//     goroutine helper used for per-member prediction
//   - pkg/errors, pkg/log: structured errors and logging
//
// Quick start:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/ersilia-os/ensemble-tabpfn/ensemble"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    clf, err := ensemble.New(newTabPFN, ensemble.WithRandomState(42))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//	    labels, err := clf.Predict(XTest)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Formatted(labels))
//	}
//
// newTabPFN above is an ensemble.ClassifierFactory producing the bounded
// classifier; the ensemble never looks inside it.
package ensembletabpfn
