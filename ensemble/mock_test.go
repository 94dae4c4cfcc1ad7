package ensemble

import (
	"fmt"
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/mat"
)

// callCounters tracks capability usage across every classifier instance a
// factory hands out, so tests can assert how often the estimator touched
// the capability.
type callCounters struct {
	factory int64
	fit     int64
	predict int64
	proba   int64
}

// mockClassifier is a deterministic stand-in for the bounded classifier.
// Predict always answers the first class; PredictProba derives a
// row-stochastic matrix from the input values and the mean target seen at
// Fit, so probabilities depend on the training configuration and
// round-trip tests are meaningful.
type mockClassifier struct {
	nClasses int
	counters *callCounters
	failFit  func() bool

	fitted  bool
	fitMean float64
}

func newMockFactory(nClasses int, counters *callCounters) ClassifierFactory {
	return newFailingMockFactory(nClasses, counters, nil)
}

func newFailingMockFactory(nClasses int, counters *callCounters, failFit func() bool) ClassifierFactory {
	return func(nEnsembleConfigurations int) Classifier {
		if counters != nil {
			atomic.AddInt64(&counters.factory, 1)
		}
		return &mockClassifier{nClasses: nClasses, counters: counters, failFit: failFit}
	}
}

func (m *mockClassifier) Fit(X, y mat.Matrix) error {
	if m.counters != nil {
		atomic.AddInt64(&m.counters.fit, 1)
	}
	if m.failFit != nil && m.failFit() {
		return fmt.Errorf("synthetic training failure")
	}

	rows, _ := y.Dims()
	sum := 0.0
	for i := 0; i < rows; i++ {
		sum += y.At(i, 0)
	}
	m.fitMean = sum / float64(rows)
	m.fitted = true
	return nil
}

func (m *mockClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if m.counters != nil {
		atomic.AddInt64(&m.counters.predict, 1)
	}
	if !m.fitted {
		return nil, fmt.Errorf("mock classifier not fitted")
	}

	rows, _ := X.Dims()
	return mat.NewDense(rows, 1, nil), nil
}

func (m *mockClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if m.counters != nil {
		atomic.AddInt64(&m.counters.proba, 1)
	}
	if !m.fitted {
		return nil, fmt.Errorf("mock classifier not fitted")
	}

	rows, _ := X.Dims()
	out := mat.NewDense(rows, m.nClasses, nil)
	for i := 0; i < rows; i++ {
		total := 0.0
		for j := 0; j < m.nClasses; j++ {
			v := 1 + math.Mod(math.Abs(X.At(i, 0)+m.fitMean*float64(j+1)), 1)
			out.Set(i, j, v)
			total += v
		}
		for j := 0; j < m.nClasses; j++ {
			out.Set(i, j, out.At(i, j)/total)
		}
	}
	return out, nil
}

// makeDataset builds a deterministic labeled dataset with nClasses classes.
func makeDataset(nRows, nCols, nClasses int) (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(nRows, nCols, nil)
	y := mat.NewDense(nRows, 1, nil)
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			X.Set(i, j, math.Sin(float64(i*nCols+j)))
		}
		y.Set(i, 0, float64(i%nClasses))
	}
	return X, y
}
