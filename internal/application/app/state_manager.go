package app

import (
	"sync"

	"github.com/penwyp/go-stampwatch/internal/core/model"
)

// StateManager manages interaction state in a thread-safe manner
type StateManager struct {
	mu sync.RWMutex

	interactionState model.InteractionState
}

// NewStateManager creates a new StateManager instance
func NewStateManager() *StateManager {
	return &StateManager{}
}

// GetInteractionState returns a copy of the interaction state
func (sm *StateManager) GetInteractionState() model.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.interactionState
}

// SetInteractionState replaces the interaction state
func (sm *StateManager) SetInteractionState(state model.InteractionState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.interactionState = state
}

// UpdateInteractionState updates specific fields of interaction state
func (sm *StateManager) UpdateInteractionState(updateFunc func(*model.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	updateFunc(&sm.interactionState)
}

// SetStatus sets the footer status message
func (sm *StateManager) SetStatus(message string) {
	sm.UpdateInteractionState(func(s *model.InteractionState) {
		s.StatusMessage = message
	})
}
