package services

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"paddock-backend/shared/config"
)

// EmailRequest represents an outgoing email
type EmailRequest struct {
	To           []string               `json:"to" binding:"required"`
	Subject      string                 `json:"subject" binding:"required"`
	Body         string                 `json:"body"`
	IsHTML       bool                   `json:"is_html"`
	TemplateID   string                 `json:"template_id,omitempty"`
	TemplateVars map[string]interface{} `json:"template_vars,omitempty"`
}

// EmailResponse represents the response after sending an email
type EmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	SentAt  string `json:"sent_at"`
}

// EmailService sends email over SMTP
type EmailService struct {
	config          *config.Config
	templateService *TemplateService
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config:          cfg,
		templateService: NewTemplateService(),
	}
}

// SendEmail renders the template if one is set and sends the email
func (es *EmailService) SendEmail(request EmailRequest) (*EmailResponse, error) {
	startTime := time.Now()

	if len(request.To) == 0 {
		return nil, fmt.Errorf("recipient list cannot be empty")
	}
	if request.Subject == "" {
		return nil, fmt.Errorf("subject cannot be empty")
	}

	if request.TemplateID != "" {
		renderedBody, err := es.templateService.RenderTemplate(request.TemplateID, request.TemplateVars)
		if err != nil {
			return nil, fmt.Errorf("failed to render template: %v", err)
		}
		request.Body = renderedBody
		request.IsHTML = true
	}

	if request.Body == "" {
		return nil, fmt.Errorf("body cannot be empty")
	}

	if err := es.sendSMTPEmail(request); err != nil {
		log.Printf("❌ Failed to send email to %v: %v", request.To, err)
		return &EmailResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to send email: %v", err),
			SentAt:  startTime.Format(time.RFC3339),
		}, err
	}

	log.Printf("📧 Email sent to %v", request.To)
	return &EmailResponse{
		Success: true,
		Message: "Email sent successfully",
		SentAt:  startTime.Format(time.RFC3339),
	}, nil
}

// SendInviteEmail mails an organization invitation
func (es *EmailService) SendInviteEmail(to, orgName, inviterName, roleName, expiresAt string) (*EmailResponse, error) {
	return es.SendEmail(EmailRequest{
		To:         []string{to},
		Subject:    fmt.Sprintf("Invitation to join %s", orgName),
		TemplateID: "org_invite",
		TemplateVars: map[string]interface{}{
			"OrgName":     orgName,
			"InviterName": inviterName,
			"RoleName":    roleName,
			"ExpiresAt":   expiresAt,
		},
	})
}

// SendRequestReviewedEmail mails the outcome of an organization request
func (es *EmailService) SendRequestReviewedEmail(to, name, orgName string, approved bool) (*EmailResponse, error) {
	templateID := "request_rejected"
	subject := fmt.Sprintf("Your request for %s was not approved", orgName)
	if approved {
		templateID = "request_approved"
		subject = fmt.Sprintf("Your organization %s is ready", orgName)
	}

	return es.SendEmail(EmailRequest{
		To:         []string{to},
		Subject:    subject,
		TemplateID: templateID,
		TemplateVars: map[string]interface{}{
			"Name":    name,
			"OrgName": orgName,
		},
	})
}

func (es *EmailService) sendSMTPEmail(request EmailRequest) error {
	message := es.buildEmailMessage(request)

	host := es.config.SMTPHost
	port := es.config.SMTPPort
	username := es.config.SMTPUsername
	password := es.config.SMTPPassword
	from := es.config.EmailFrom

	if host == "" || username == "" || password == "" {
		return fmt.Errorf("SMTP configuration is incomplete")
	}

	auth := smtp.PlainAuth("", username, password, host)
	addr := fmt.Sprintf("%s:%s", host, port)

	// Port 465 uses implicit TLS, other ports may use STARTTLS
	if port == "465" || es.config.SMTPUseTLS {
		return es.sendWithTLS(addr, auth, from, request.To, []byte(message))
	}

	return smtp.SendMail(addr, auth, from, request.To, []byte(message))
}

func (es *EmailService) sendWithTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	host := strings.Split(addr, ":")[0]

	conn, err := tls.Dial("tcp", addr, &tls.Config{
		ServerName: host,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		return err
	}
	if err = client.Mail(from); err != nil {
		return err
	}
	for _, recipient := range to {
		if err = client.Rcpt(recipient); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = w.Write(msg)
	return err
}

func (es *EmailService) buildEmailMessage(request EmailRequest) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", es.config.EmailFromName, es.config.EmailFrom))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(request.To, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", request.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if request.IsHTML {
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	} else {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	}

	msg.WriteString("\r\n")
	msg.WriteString(request.Body)

	return msg.String()
}
