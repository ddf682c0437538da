package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInviteTemplate(t *testing.T) {
	ts := NewTemplateService()

	html, err := ts.RenderTemplate("org_invite", map[string]interface{}{
		"OrgName":     "Willow Creek Sanctuary",
		"InviterName": "Dana Reyes",
		"RoleName":    "Caretaker",
		"ExpiresAt":   "2026-09-04",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Willow Creek Sanctuary")
	assert.Contains(t, html, "Dana Reyes")
	assert.Contains(t, html, "Caretaker")
	assert.Contains(t, html, "2026-09-04")
}

func TestRenderReviewTemplates(t *testing.T) {
	ts := NewTemplateService()

	approved, err := ts.RenderTemplate("request_approved", map[string]interface{}{
		"Name":    "Sam",
		"OrgName": "Otter Haven",
	})
	require.NoError(t, err)
	assert.Contains(t, approved, "approved")
	assert.Contains(t, approved, "Otter Haven")

	rejected, err := ts.RenderTemplate("request_rejected", map[string]interface{}{
		"Name":    "Sam",
		"OrgName": "Otter Haven",
	})
	require.NoError(t, err)
	assert.Contains(t, rejected, "not approved")
}

func TestRenderUnknownTemplate(t *testing.T) {
	ts := NewTemplateService()

	_, err := ts.RenderTemplate("no_such_template", nil)
	assert.Error(t, err)
}

func TestRenderEscapesHTML(t *testing.T) {
	ts := NewTemplateService()

	html, err := ts.RenderTemplate("org_invite", map[string]interface{}{
		"OrgName":     "<script>alert(1)</script>",
		"InviterName": "x",
		"RoleName":    "x",
		"ExpiresAt":   "x",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}
