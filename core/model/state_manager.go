// Package model provides state management shared by basketmine estimators.
package model

import (
	"sync"

	"github.com/YuminosukeSato/basketmine/pkg/errors"
)

// StateManager tracks whether an estimator has been fitted and the data shape
// it was fitted on. Safe for concurrent use.
type StateManager struct {
	mu     sync.RWMutex
	fitted bool

	nTransactions int
	nItems        int
}

// NewStateManager creates a new, unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the estimator has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the estimator as fitted with the given shape.
func (s *StateManager) SetFitted(nTransactions, nItems int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nTransactions = nTransactions
	s.nItems = nItems
}

// Reset returns to the unfitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nTransactions = 0
	s.nItems = 0
}

// Dimensions returns the shape seen during fitting.
func (s *StateManager) Dimensions() (nTransactions, nItems int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nTransactions, s.nItems
}

// RequireFitted returns a NotFittedError naming the estimator and method when
// Fit has not been called yet.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}
