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

package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assignRequest struct {
	AssigneeName  string `json:"assigneeName" validate:"required"`
	AssigneePhone string `json:"assigneePhone" validate:"omitempty,phone"`
	Scheduled     string `json:"scheduledDate" validate:"omitempty,date"`
	Priority      string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		req        assignRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  assignRequest{AssigneeName: "Bob", AssigneePhone: "+1 555-123-4567", Scheduled: "2025-03-01", Priority: "high"},
		},
		{
			name:       "missing name",
			req:        assignRequest{},
			wantFields: []string{"assigneeName"},
		},
		{
			name:       "bad phone",
			req:        assignRequest{AssigneeName: "Bob", AssigneePhone: "call me"},
			wantFields: []string{"assigneePhone"},
		},
		{
			name:       "short phone",
			req:        assignRequest{AssigneeName: "Bob", AssigneePhone: "12345"},
			wantFields: []string{"assigneePhone"},
		},
		{
			name:       "bad date and priority",
			req:        assignRequest{AssigneeName: "Bob", Scheduled: "03/01/2025", Priority: "urgent"},
			wantFields: []string{"scheduledDate", "priority"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsKind(err, ValidationFailed))

			e, ok := AsError(err)
			require.True(t, ok)
			for _, f := range tt.wantFields {
				assert.Contains(t, e.Fields, f)
			}
		})
	}
}

func TestPhonePattern(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"5551234", true},
		{"+44 20 7946 0958", true},
		{"555-123-4567", true},
		{"123456", false},
		{"555.123.4567", false},
		{"123456789012345678901", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, PhonePattern.MatchString(tt.phone))
		})
	}
}

func TestError_Kinds(t *testing.T) {
	err := NewConflict("unit is already occupied")
	assert.True(t, IsKind(err, Conflict))
	assert.False(t, IsKind(err, NotFound))
	assert.Equal(t, "unit is already occupied", err.Error())
	assert.Equal(t, 409, err.Kind.Status)

	forbidden := NewForbidden("landlord role required")
	assert.ErrorIs(t, forbidden, ErrForbidden)

	assert.Equal(t, 404, StatusOf(UserNotExist.Code))
	assert.Equal(t, 500, StatusOf(99999))
}
