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

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
)

var maintenanceTransitions = NewMaintenanceStateMachine()

// IsTerminal 判断是否为终止状态，终止状态的工单不能再被指派
func (s MaintenanceStatus) IsTerminal() bool {
	return s == MaintenanceCompleted || s == MaintenanceCancelled
}

func (s MaintenanceStatus) IsValid() bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled:
		return true
	}
	return false
}

// IsOpen reports whether work is still expected on the ticket.
func (s MaintenanceStatus) IsOpen() bool {
	return s == MaintenancePending || s == MaintenanceInProgress
}

// CanTransitTo checks the maintenance transition table.
func (s MaintenanceStatus) CanTransitTo(to MaintenanceStatus) bool {
	return maintenanceTransitions.CanTransit(s, to)
}

// StatusAfterAssignment is the status a ticket takes when it gets an assignee.
func (s MaintenanceStatus) StatusAfterAssignment() MaintenanceStatus {
	if s == MaintenancePending {
		return MaintenanceInProgress
	}
	return s
}

func (p MaintenancePriority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// NewMaintenanceStateMachine 创建工单状态机
func NewMaintenanceStateMachine() *StateMachine[MaintenanceStatus] {
	return NewWithState(MaintenancePending).
		Allow(MaintenancePending, MaintenanceInProgress, MaintenanceCancelled).
		Allow(MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled)
}
