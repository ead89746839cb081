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

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationExpired   InvitationStatus = "expired"
	InvitationCancelled InvitationStatus = "cancelled"
)

var invitationTransitions = NewInvitationStateMachine()

// IsTerminal 判断是否为终止状态
func (s InvitationStatus) IsTerminal() bool {
	return s == InvitationAccepted || s == InvitationExpired || s == InvitationCancelled
}

func (s InvitationStatus) IsValid() bool {
	return s == InvitationPending || s.IsTerminal()
}

// CanTransitTo checks the invitation transition table.
func (s InvitationStatus) CanTransitTo(to InvitationStatus) bool {
	return invitationTransitions.CanTransit(s, to)
}

// NewInvitationStateMachine 创建邀请状态机，离开 pending 是单向的
func NewInvitationStateMachine() *StateMachine[InvitationStatus] {
	return NewWithState(InvitationPending).
		Allow(InvitationPending, InvitationAccepted, InvitationExpired, InvitationCancelled)
}
