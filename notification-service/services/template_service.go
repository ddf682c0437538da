package services

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"
)

// TemplateService renders the built-in email templates. Parsed templates
// are cached after first use.
type TemplateService struct {
	cache map[string]*template.Template
	mutex sync.RWMutex
}

// NewTemplateService creates a new template service
func NewTemplateService() *TemplateService {
	return &TemplateService{
		cache: make(map[string]*template.Template),
	}
}

const orgInviteTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>You have been invited to {{.OrgName}}</h2>
  <p>Hi,</p>
  <p>{{.InviterName}} invited you to join <strong>{{.OrgName}}</strong> as {{.RoleName}}.</p>
  <p>Sign in with this email address to accept the invitation from your invitations page.</p>
  <p>This invitation expires on {{.ExpiresAt}}.</p>
  <p>If you were not expecting this, you can safely ignore this email.</p>
</body>
</html>`

const requestApprovedTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Your organization is ready</h2>
  <p>Hi {{.Name}},</p>
  <p>Your request to create <strong>{{.OrgName}}</strong> was approved. The organization has been created and you are its administrator.</p>
</body>
</html>`

const requestRejectedTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Organization request update</h2>
  <p>Hi {{.Name}},</p>
  <p>Your request to create <strong>{{.OrgName}}</strong> was not approved. You can contact support if you believe this is a mistake.</p>
</body>
</html>`

var builtinTemplates = map[string]string{
	"org_invite":       orgInviteTemplate,
	"request_approved": requestApprovedTemplate,
	"request_rejected": requestRejectedTemplate,
}

// RenderTemplate renders a built-in template with the provided data
func (ts *TemplateService) RenderTemplate(templateID string, data map[string]interface{}) (string, error) {
	ts.mutex.RLock()
	tmpl, exists := ts.cache[templateID]
	ts.mutex.RUnlock()

	if !exists {
		source, ok := builtinTemplates[templateID]
		if !ok {
			return "", fmt.Errorf("unknown template: %s", templateID)
		}

		var err error
		tmpl, err = template.New(templateID).Parse(source)
		if err != nil {
			return "", fmt.Errorf("failed to parse template %s: %v", templateID, err)
		}

		ts.mutex.Lock()
		ts.cache[templateID] = tmpl
		ts.mutex.Unlock()
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %v", templateID, err)
	}

	return rendered.String(), nil
}
