// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package statemachine

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrInvalidTransition is wrapped by every rejected transition.
var ErrInvalidTransition = errors.New("invalid state transition")

// StateHook is triggered when entering a state.
type StateHook[T comparable] func(state T) error

// TransitionValidator can veto an otherwise allowed transition.
type TransitionValidator[T comparable] func(from, to T) error

// StateMachine is a small generic finite state machine. The transition table is
// the source of truth; persisted records are checked against it with CanTransit
// and moved with a conditional update in the store.
type StateMachine[T comparable] struct {
	mu sync.RWMutex

	current          T
	validTransitions map[T][]T
	onEnter          map[T][]StateHook[T]
	validators       []TransitionValidator[T]
}

// New creates an empty StateMachine.
func New[T comparable]() *StateMachine[T] {
	return &StateMachine[T]{
		validTransitions: make(map[T][]T),
		onEnter:          make(map[T][]StateHook[T]),
	}
}

// NewWithState creates a StateMachine positioned at initial.
func NewWithState[T comparable](initial T) *StateMachine[T] {
	sm := New[T]()
	sm.current = initial
	return sm
}

// Allow registers from → to for every target.
func (sm *StateMachine[T]) Allow(from T, to ...T) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for _, t := range to {
		if !slices.Contains(sm.validTransitions[from], t) {
			sm.validTransitions[from] = append(sm.validTransitions[from], t)
		}
	}
	return sm
}

// OnEnter registers a hook fired after the machine enters state.
func (sm *StateMachine[T]) OnEnter(state T, h StateHook[T]) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.onEnter[state] = append(sm.onEnter[state], h)
	return sm
}

// AddValidator registers a validator run before every transition.
func (sm *StateMachine[T]) AddValidator(v TransitionValidator[T]) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.validators = append(sm.validators, v)
	return sm
}

// CanTransit reports whether from → to is in the table.
func (sm *StateMachine[T]) CanTransit(from, to T) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return slices.Contains(sm.validTransitions[from], to)
}

// GetValidNextStates returns the targets reachable from state.
func (sm *StateMachine[T]) GetValidNextStates(from T) []T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return slices.Clone(sm.validTransitions[from])
}

// IsFinal reports whether no transition leaves state.
func (sm *StateMachine[T]) IsFinal(state T) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.validTransitions[state]) == 0
}

// Current returns the current state.
func (sm *StateMachine[T]) Current() T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

// SetCurrent positions the machine without running hooks, e.g. from a loaded record.
func (sm *StateMachine[T]) SetCurrent(state T) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.current = state
}

// Transit validates from → to, runs validators, moves and fires OnEnter hooks.
func (sm *StateMachine[T]) Transit(from, to T) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !slices.Contains(sm.validTransitions[from], to) {
		return fmt.Errorf("%w: %v → %v", ErrInvalidTransition, from, to)
	}
	for _, v := range sm.validators {
		if err := v(from, to); err != nil {
			return fmt.Errorf("%w: %v → %v: %w", ErrInvalidTransition, from, to, err)
		}
	}

	sm.current = to

	for _, h := range sm.onEnter[to] {
		if err := h(to); err != nil {
			return fmt.Errorf("enter hook failed for state %v: %w", to, err)
		}
	}
	return nil
}

// TransitTo moves from the current state to to.
func (sm *StateMachine[T]) TransitTo(to T) error {
	return sm.Transit(sm.Current(), to)
}

// Is reports whether the machine is in state.
func (sm *StateMachine[T]) Is(state T) bool {
	return sm.Current() == state
}
