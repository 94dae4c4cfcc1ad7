package errors

import (
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "not fitted",
			err:  NewNotFittedError("EnsembleTabPFN", "Predict"),
			want: []string{"EnsembleTabPFN", "not fitted", "Predict()"},
		},
		{
			name: "dimension rows",
			err:  NewDimensionError("Fit", 10, 7, 0),
			want: []string{"Fit", "axis 0", "rows", "Expected 10", "got 7"},
		},
		{
			name: "dimension features",
			err:  NewDimensionError("Predict", 5, 3, 1),
			want: []string{"axis 1", "features", "Expected 5", "got 3"},
		},
		{
			name: "validation",
			err:  NewValidationError("n_samples", "must be positive", -1),
			want: []string{"n_samples", "must be positive", "-1"},
		},
		{
			name: "value",
			err:  NewValueError("Fit", "empty training matrix"),
			want: []string{"Fit", "empty training matrix"},
		},
		{
			name: "model with cause",
			err:  NewModelError("Fit", "every iteration failed", New("boom")),
			want: []string{"Fit", "every iteration failed", "boom"},
		},
		{
			name: "iteration",
			err:  NewIterationError("Fit", 3, New("training diverged")),
			want: []string{"iteration 3", "training diverged"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, fragment := range tt.want {
				if !strings.Contains(msg, fragment) {
					t.Errorf("error message %q missing %q", msg, fragment)
				}
			}
		})
	}
}

func TestAsUnwrapsStackedErrors(t *testing.T) {
	err := Wrap(NewNotFittedError("EnsembleTabPFN", "Score"), "scoring")

	var nferr *NotFittedError
	if !As(err, &nferr) {
		t.Fatal("As failed to find NotFittedError through the wrap chain")
	}
	if nferr.Method != "Score" {
		t.Errorf("Method = %q, want %q", nferr.Method, "Score")
	}
}

func TestIterationErrorUnwrap(t *testing.T) {
	cause := New("synthetic failure")
	err := NewIterationError("Fit", 0, cause)

	if !Is(err, cause) {
		t.Error("Is failed to match the iteration error's cause")
	}
	var iterErr *IterationError
	if !As(err, &iterErr) {
		t.Fatal("As failed to find IterationError")
	}
	if iterErr.Iteration != 0 {
		t.Errorf("Iteration = %d, want 0", iterErr.Iteration)
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	w := New("something soft went wrong")
	Warn(w)

	if captured == nil || captured.Error() != w.Error() {
		t.Errorf("handler captured %v, want %v", captured, w)
	}
}
