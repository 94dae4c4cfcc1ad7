package ensemble

// Member is the immutable record of one retained sub-sample
// configuration: which training rows were drawn and how the column space
// was partitioned. Together with the training matrix kept by the
// estimator, a Member is sufficient to regenerate the exact training
// tables of its iteration; the trained model itself is never stored,
// retraining being cheap relative to keeping classifier state around.
//
// Members are created once per retained fit iteration and never mutated.
type Member struct {
	// Indices are the drawn row indices into the original training
	// matrix, in sampling order, duplicates preserved.
	Indices []int

	// Groups is the feature partitioning of the iteration: disjoint
	// column-index groups covering every original column exactly once,
	// each no wider than the configured feature cap.
	Groups [][]int
}
