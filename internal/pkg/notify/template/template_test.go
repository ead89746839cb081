package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvitation(t *testing.T) {
	e := NewTemplateEngine()
	data := InvitationData{
		LandlordName:     "Lan Lord",
		PropertyName:     "sunset villas",
		UnitId:           "U101",
		ExpiresAt:        "2026-01-08",
		CreateAccountURL: "http://app/accept-invitation/abc?action=create_account",
		ApproveURL:       "http://app/accept-invitation/abc?action=approve",
	}

	subject, body, err := e.RenderTemplate(TenantInvitation, data)
	require.NoError(t, err)
	assert.Equal(t, "Invitation to rent unit U101 at Sunset Villas", subject)
	assert.Contains(t, body, data.CreateAccountURL)
	assert.Contains(t, body, data.ApproveURL)
	assert.NotContains(t, body, "Message from your landlord")

	data.Message = "Welcome!"
	_, body, err = e.RenderTemplate(TenantInvitation, data)
	require.NoError(t, err)
	assert.Contains(t, body, "Message from your landlord:\nWelcome!")
}

func TestRender_Errors(t *testing.T) {
	e := NewTemplateEngine()
	_, err := e.Render("{{.Missing", nil)
	assert.Error(t, err)

	_, err = e.Render("{{.missing}}", map[string]any{})
	assert.Error(t, err)
}
