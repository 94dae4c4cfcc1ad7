package ensemble

import (
	"encoding/gob"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/ersilia-os/ensemble-tabpfn/pkg/errors"
	"github.com/ersilia-os/ensemble-tabpfn/sampler"
)

// formatVersion identifies the persisted record layout. Bump it whenever
// modelRecord changes incompatibly.
const formatVersion = 1

// modelRecord is the explicit, versioned persistence format: the
// hyperparameters, the retained members, and the training data the members
// index into. The classifier capability does not serialize meaningfully,
// so it is re-bound through the factory argument of Load.
//
// The record is gob-encoded: training matrices may contain non-finite
// values (missing entries), which gob round-trips and JSON cannot.
type modelRecord struct {
	Version int
	Config  configRecord
	Classes []float64
	Members []Member
	TrainX  matrixRecord
	TrainY  []float64
}

type configRecord struct {
	MaxIters                int
	DataSampler             string
	NSamples                int
	NFeatures               int
	RandomState             int64
	EarlyStoppingRounds     int
	Tolerance               float64
	NEnsembleConfigurations int
}

type matrixRecord struct {
	Rows, Cols int
	Data       []float64
}

// Save serializes the fitted estimator to w. Saving an unfitted estimator
// fails with a not-fitted error.
func (e *EnsembleTabPFN) Save(w io.Writer) error {
	if !e.state.IsFitted() {
		return errors.NewNotFittedError("EnsembleTabPFN", "Save")
	}

	nRows, nCols := e.trainX.Dims()
	rec := modelRecord{
		Version: formatVersion,
		Config: configRecord{
			MaxIters:                e.maxIters,
			DataSampler:             e.samplerStrategy.String(),
			NSamples:                e.nSamples,
			NFeatures:               e.nFeatures,
			RandomState:             e.randomState,
			EarlyStoppingRounds:     e.earlyStoppingRounds,
			Tolerance:               e.tolerance,
			NEnsembleConfigurations: e.nEnsembleConfigurations,
		},
		Classes: e.classes_,
		Members: e.ensembles_,
		TrainX: matrixRecord{
			Rows: nRows,
			Cols: nCols,
			Data: e.trainX.RawMatrix().Data,
		},
		TrainY: e.trainY.RawVector().Data,
	}

	if err := gob.NewEncoder(w).Encode(&rec); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// SaveFile serializes the fitted estimator to a file.
func (e *EnsembleTabPFN) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer f.Close()

	return e.Save(f)
}

// Load restores an estimator from r, re-binding the classifier capability
// through factory. The returned estimator is fitted and ready to predict.
func Load(r io.Reader, factory ClassifierFactory) (*EnsembleTabPFN, error) {
	var rec modelRecord
	if err := gob.NewDecoder(r).Decode(&rec); err != nil {
		return nil, errors.Wrap(err, "failed to decode model")
	}
	if rec.Version != formatVersion {
		return nil, errors.NewValidationError("version", "unsupported model format version", rec.Version)
	}

	strategy, err := sampler.ParseStrategy(rec.Config.DataSampler)
	if err != nil {
		return nil, err
	}

	e, err := New(factory,
		WithMaxIters(rec.Config.MaxIters),
		WithDataSampler(strategy),
		WithNSamples(rec.Config.NSamples),
		WithNFeatures(rec.Config.NFeatures),
		WithRandomState(rec.Config.RandomState),
		WithEarlyStoppingRounds(rec.Config.EarlyStoppingRounds),
		WithTolerance(rec.Config.Tolerance),
		WithNEnsembleConfigurations(rec.Config.NEnsembleConfigurations),
	)
	if err != nil {
		return nil, err
	}

	if len(rec.Members) == 0 {
		return nil, errors.NewValidationError("members", "persisted model holds no ensemble members", len(rec.Members))
	}
	if len(rec.TrainX.Data) != rec.TrainX.Rows*rec.TrainX.Cols {
		return nil, errors.NewDimensionError("Load", rec.TrainX.Rows*rec.TrainX.Cols, len(rec.TrainX.Data), 0)
	}
	if len(rec.TrainY) != rec.TrainX.Rows {
		return nil, errors.NewDimensionError("Load", rec.TrainX.Rows, len(rec.TrainY), 0)
	}

	e.classes_ = rec.Classes
	e.ensembles_ = rec.Members
	e.trainX = mat.NewDense(rec.TrainX.Rows, rec.TrainX.Cols, rec.TrainX.Data)
	e.trainY = mat.NewVecDense(len(rec.TrainY), rec.TrainY)
	e.state.SetDimensions(rec.TrainX.Cols, rec.TrainX.Rows)
	e.state.SetFitted()

	return e, nil
}

// LoadFile restores an estimator from a file written by SaveFile.
func LoadFile(path string, factory ClassifierFactory) (*EnsembleTabPFN, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()

	return Load(f, factory)
}
