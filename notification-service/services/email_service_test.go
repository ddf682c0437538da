package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paddock-backend/shared/config"
)

func TestBuildEmailMessageHeaders(t *testing.T) {
	config.LoadConfig()
	es := NewEmailService(config.GetConfig())

	msg := es.buildEmailMessage(EmailRequest{
		To:      []string{"keeper@example.com"},
		Subject: "Feeding schedule",
		Body:    "<p>hello</p>",
		IsHTML:  true,
	})

	assert.Contains(t, msg, "To: keeper@example.com")
	assert.Contains(t, msg, "Subject: Feeding schedule")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "<p>hello</p>")
}

func TestSendEmailValidation(t *testing.T) {
	config.LoadConfig()
	es := NewEmailService(config.GetConfig())

	_, err := es.SendEmail(EmailRequest{Subject: "x", Body: "y"})
	require.Error(t, err)

	_, err = es.SendEmail(EmailRequest{To: []string{"a@b.c"}, Body: "y"})
	require.Error(t, err)

	_, err = es.SendEmail(EmailRequest{To: []string{"a@b.c"}, Subject: "x"})
	require.Error(t, err)
}
