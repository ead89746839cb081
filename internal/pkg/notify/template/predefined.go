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

package template

// InvitationData feeds TenantInvitation.
type InvitationData struct {
	LandlordName     string
	PropertyName     string
	UnitId           string
	Message          string
	ExpiresAt        string
	CreateAccountURL string
	ApproveURL       string
}

// TenantInvitation is mailed when a landlord invites a prospective tenant.
var TenantInvitation = &Template{
	ID:      "tenant_invitation",
	Subject: `Invitation to rent unit {{.UnitId}} at {{title .PropertyName}}`,
	Content: `Hello,

{{.LandlordName}} has invited you to become the tenant of unit {{.UnitId}} at {{title .PropertyName}}.
{{- if .Message}}

Message from your landlord:
{{.Message}}
{{- end}}

New to the platform? Create your account:
{{.CreateAccountURL}}

Already have an account? Approve the invitation:
{{.ApproveURL}}

This invitation expires on {{.ExpiresAt}}.
`,
}
