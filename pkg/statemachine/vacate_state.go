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

type VacateStatus string

const (
	VacatePending  VacateStatus = "pending"
	VacateApproved VacateStatus = "approved"
	VacateRejected VacateStatus = "rejected"
)

var vacateTransitions = NewVacateStateMachine()

func (s VacateStatus) IsTerminal() bool {
	return s == VacateApproved || s == VacateRejected
}

func (s VacateStatus) CanTransitTo(to VacateStatus) bool {
	return vacateTransitions.CanTransit(s, to)
}

// NewVacateStateMachine 创建退租申请状态机
func NewVacateStateMachine() *StateMachine[VacateStatus] {
	return NewWithState(VacatePending).
		Allow(VacatePending, VacateApproved, VacateRejected)
}
