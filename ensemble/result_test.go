package ensemble

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ersilia-os/ensemble-tabpfn/pkg/errors"
)

func TestAggregateMeansRowStochasticInputs(t *testing.T) {
	r := NewResult()
	r.Append(mat.NewDense(2, 3, []float64{
		0.5, 0.3, 0.2,
		0.1, 0.1, 0.8,
	}))
	r.Append(mat.NewDense(2, 3, []float64{
		0.3, 0.3, 0.4,
		0.5, 0.4, 0.1,
	}))

	probs, labels, err := r.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	want := mat.NewDense(2, 3, []float64{
		0.4, 0.3, 0.3,
		0.3, 0.25, 0.45,
	})
	if !mat.EqualApprox(probs, want, 1e-12) {
		t.Errorf("aggregated probabilities = %v, want %v",
			mat.Formatted(probs), mat.Formatted(want))
	}

	// Rows of the mean stay row-stochastic.
	rows, cols := probs.Dims()
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			sum += probs.At(i, j)
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("row %d sums to %v, want 1", i, sum)
		}
	}

	if labels[0] != 0 || labels[1] != 2 {
		t.Errorf("labels = %v, want [0 2]", labels)
	}
}

func TestAggregateTieBreaksToLowestClass(t *testing.T) {
	r := NewResult()
	r.Append(mat.NewDense(1, 3, []float64{0.4, 0.4, 0.2}))

	_, labels, err := r.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if labels[0] != 0 {
		t.Errorf("tie broke to class %d, want lowest index 0", labels[0])
	}
}

func TestAggregateShapeMismatch(t *testing.T) {
	tests := []struct {
		name   string
		second *mat.Dense
	}{
		{name: "row mismatch", second: mat.NewDense(3, 2, nil)},
		{name: "column mismatch", second: mat.NewDense(2, 4, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResult()
			r.Append(mat.NewDense(2, 2, []float64{0.5, 0.5, 0.5, 0.5}))
			r.Append(tt.second)

			_, _, err := r.Aggregate()
			if err == nil {
				t.Fatal("Aggregate expected shape-mismatch error, got nil")
			}
			var derr *errors.DimensionError
			if !errors.As(err, &derr) {
				t.Errorf("Aggregate error = %v, want DimensionError", err)
			}
		})
	}
}

func TestAggregateEmpty(t *testing.T) {
	r := NewResult()
	if _, _, err := r.Aggregate(); err == nil {
		t.Error("Aggregate on empty accumulator expected error")
	}
}
