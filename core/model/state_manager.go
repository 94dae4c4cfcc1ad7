// Package model provides fitted-state management for estimators.
package model

import "fmt"

// StateManager tracks whether an estimator has been fitted and the data
// dimensions it was fitted on. Estimators hold one by composition and
// consult it before any predict-family work is attempted.
//
// Fields are exported so persistence code can serialize the state.
type StateManager struct {
	Fitted bool

	// Dimensions of the training data seen by Fit.
	NFeatures int
	NSamples  int
}

// NewStateManager creates an unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted reports whether the estimator has been fitted.
func (s *StateManager) IsFitted() bool {
	return s.Fitted
}

// SetFitted marks the estimator as fitted.
func (s *StateManager) SetFitted() {
	s.Fitted = true
}

// Reset returns the estimator to the unfitted state.
func (s *StateManager) Reset() {
	s.Fitted = false
	s.NFeatures = 0
	s.NSamples = 0
}

// SetDimensions records the training data shape seen during Fit.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.NFeatures = nFeatures
	s.NSamples = nSamples
}

// GetDimensions returns the training data shape seen during Fit.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	return s.NFeatures, s.NSamples
}

// RequireFitted returns an error when the estimator has not been fitted.
func (s *StateManager) RequireFitted() error {
	if !s.IsFitted() {
		return fmt.Errorf("model has not been fitted yet. Call Fit() first")
	}
	return nil
}
