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
	"testing"
)

type light string

const (
	red    light = "red"
	green  light = "green"
	yellow light = "yellow"
)

func newLight() *StateMachine[light] {
	return NewWithState(red).
		Allow(red, green).
		Allow(green, yellow).
		Allow(yellow, red)
}

func TestStateMachine_Transit(t *testing.T) {
	sm := newLight()

	if err := sm.TransitTo(green); err != nil {
		t.Fatalf("red -> green should be valid: %v", err)
	}
	if !sm.Is(green) {
		t.Errorf("expected state %v, got %v", green, sm.Current())
	}

	err := sm.TransitTo(red)
	if err == nil {
		t.Fatal("green -> red should be invalid")
	}
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if sm.Current() != green {
		t.Errorf("failed transition must not move the machine, got %v", sm.Current())
	}
}

func TestStateMachine_AllowIsIdempotent(t *testing.T) {
	sm := New[light]().Allow(red, green, green).Allow(red, green)

	if got := sm.GetValidNextStates(red); len(got) != 1 {
		t.Errorf("expected a single target, got %v", got)
	}
	if !sm.IsFinal(green) {
		t.Error("green has no outgoing transitions and should be final")
	}
}

func TestStateMachine_ValidatorAndHooks(t *testing.T) {
	sm := newLight()

	var entered []light
	sm.OnEnter(green, func(s light) error {
		entered = append(entered, s)
		return nil
	})
	sm.AddValidator(func(from, to light) error {
		if to == yellow {
			return errors.New("yellow disabled")
		}
		return nil
	})

	if err := sm.TransitTo(green); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entered) != 1 || entered[0] != green {
		t.Errorf("OnEnter hook should have fired once, got %v", entered)
	}

	if err := sm.TransitTo(yellow); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("validator veto should wrap ErrInvalidTransition, got %v", err)
	}
}

func TestInvitationStatus_Transitions(t *testing.T) {
	tests := []struct {
		from InvitationStatus
		to   InvitationStatus
		want bool
	}{
		{InvitationPending, InvitationAccepted, true},
		{InvitationPending, InvitationExpired, true},
		{InvitationPending, InvitationCancelled, true},
		{InvitationAccepted, InvitationPending, false},
		{InvitationExpired, InvitationAccepted, false},
		{InvitationCancelled, InvitationAccepted, false},
		{InvitationAccepted, InvitationExpired, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitTo(tt.to); got != tt.want {
				t.Errorf("CanTransitTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvitationStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   InvitationStatus
		expected bool
	}{
		{InvitationPending, false},
		{InvitationAccepted, true},
		{InvitationExpired, true},
		{InvitationCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMaintenanceStatus_Transitions(t *testing.T) {
	tests := []struct {
		from MaintenanceStatus
		to   MaintenanceStatus
		want bool
	}{
		{MaintenancePending, MaintenanceInProgress, true},
		{MaintenancePending, MaintenanceCancelled, true},
		{MaintenancePending, MaintenanceCompleted, false},
		{MaintenanceInProgress, MaintenanceCompleted, true},
		{MaintenanceInProgress, MaintenanceCancelled, true},
		{MaintenanceInProgress, MaintenancePending, false},
		{MaintenanceCompleted, MaintenanceInProgress, false},
		{MaintenanceCompleted, MaintenanceCancelled, false},
		{MaintenanceCancelled, MaintenancePending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitTo(tt.to); got != tt.want {
				t.Errorf("CanTransitTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaintenanceStatus_StatusAfterAssignment(t *testing.T) {
	tests := []struct {
		status   MaintenanceStatus
		expected MaintenanceStatus
	}{
		{MaintenancePending, MaintenanceInProgress},
		{MaintenanceInProgress, MaintenanceInProgress},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.StatusAfterAssignment(); got != tt.expected {
				t.Errorf("StatusAfterAssignment() = %v, want %v", got, tt.expected)
			}
		})
	}

	if !MaintenanceCompleted.IsTerminal() || !MaintenanceCancelled.IsTerminal() {
		t.Error("completed and cancelled must be terminal")
	}
	if MaintenanceInProgress.IsTerminal() {
		t.Error("in_progress must not be terminal")
	}
}

func TestMaintenancePriority_IsValid(t *testing.T) {
	for _, p := range []MaintenancePriority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.IsValid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if MaintenancePriority("urgent").IsValid() {
		t.Error("urgent should not be a valid priority")
	}
}

func TestVacateStatus_Transitions(t *testing.T) {
	if !VacatePending.CanTransitTo(VacateApproved) || !VacatePending.CanTransitTo(VacateRejected) {
		t.Error("pending should move to approved or rejected")
	}
	if VacateApproved.CanTransitTo(VacateRejected) {
		t.Error("approved is terminal")
	}
}
