package sampler

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestTrainValSplitSizes(t *testing.T) {
	X, y := makeData(100, 3)

	XTrain, yTrain, XVal, yVal, trainIdx, err := TrainValSplit(X, y, 0.2, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("TrainValSplit failed: %v", err)
	}

	trainRows, _ := XTrain.Dims()
	valRows, _ := XVal.Dims()
	if valRows != 20 {
		t.Errorf("validation rows = %d, want 20", valRows)
	}
	if trainRows != 80 {
		t.Errorf("train rows = %d, want 80", trainRows)
	}
	if yTrain.Len() != trainRows || yVal.Len() != valRows {
		t.Errorf("target lengths (%d, %d) do not match matrix rows (%d, %d)",
			yTrain.Len(), yVal.Len(), trainRows, valRows)
	}
	if len(trainIdx) != trainRows {
		t.Errorf("len(trainIdx) = %d, want %d", len(trainIdx), trainRows)
	}

	// trainIdx must map train rows back to the original matrix.
	for i, idx := range trainIdx {
		if XTrain.At(i, 0) != X.At(idx, 0) {
			t.Fatalf("train row %d does not match original row %d", i, idx)
		}
	}
}

func TestTrainValSplitReproducible(t *testing.T) {
	X, y := makeData(30, 2)

	_, _, _, _, first, err := TrainValSplit(X, y, 0.2, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatalf("TrainValSplit failed: %v", err)
	}
	_, _, _, _, second, err := TrainValSplit(X, y, 0.2, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatalf("TrainValSplit failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different splits")
	}
}

func TestTrainValSplitValidation(t *testing.T) {
	X, y := makeData(10, 2)
	rng := rand.New(rand.NewSource(1))

	if _, _, _, _, _, err := TrainValSplit(X, y, 0, rng); err == nil {
		t.Error("expected error for fraction 0")
	}
	if _, _, _, _, _, err := TrainValSplit(X, y, 1, rng); err == nil {
		t.Error("expected error for fraction 1")
	}

	tiny, tinyY := makeData(1, 2)
	if _, _, _, _, _, err := TrainValSplit(tiny, tinyY, 0.2, rng); err == nil {
		t.Error("expected error for single-row input")
	}
}

func TestTrainValSplitTinyInputKeepsBothSides(t *testing.T) {
	X, y := makeData(3, 2)

	XTrain, _, XVal, _, _, err := TrainValSplit(X, y, 0.2, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("TrainValSplit failed: %v", err)
	}

	trainRows, _ := XTrain.Dims()
	valRows, _ := XVal.Dims()
	if trainRows < 1 || valRows < 1 {
		t.Errorf("split left a side empty: train=%d val=%d", trainRows, valRows)
	}
	if trainRows+valRows != 3 {
		t.Errorf("split lost rows: train=%d val=%d", trainRows, valRows)
	}
}
