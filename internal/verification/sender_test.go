package verification

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmate-app/travelmate-client/config"
)

func emailConfig(provider config.EmailProvider) config.EmailConfig {
	return config.EmailConfig{
		Provider:     provider,
		FromAddress:  "no-reply@travelmate.app",
		FromName:     "TravelMate",
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPPassword: "app-password",
		ResendAPIKey: "re_test",
	}
}

func TestNewSenderFromConfig(t *testing.T) {
	sender, err := NewSenderFromConfig(emailConfig(config.EmailProviderSMTP))
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, sender)

	sender, err = NewSenderFromConfig(emailConfig(config.EmailProviderResend))
	require.NoError(t, err)
	assert.IsType(t, &ResendSender{}, sender)

	sender, err = NewSenderFromConfig(emailConfig(config.EmailProviderMock))
	require.NoError(t, err)
	assert.IsType(t, &MockSender{}, sender)

	_, err = NewSenderFromConfig(emailConfig("pigeon"))
	require.Error(t, err)
}

func TestSMTPSenderMessage(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  []byte
		gotAuth smtp.Auth
	)

	s := NewSMTPSender(emailConfig(config.EmailProviderSMTP))
	s.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, auth, from, to, msg
		return nil
	}

	require.NoError(t, s.Send(context.Background(), "alice@example.com", "483920"))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "no-reply@travelmate.app", gotFrom)
	assert.Equal(t, []string{"alice@example.com"}, gotTo)
	assert.NotNil(t, gotAuth, "password set, PLAIN auth expected")

	body := string(gotMsg)
	assert.Contains(t, body, "Subject: TravelMate - Email Verification Code")
	assert.Contains(t, body, "Content-Type: text/html")
	assert.Contains(t, body, "483920")
	assert.Contains(t, body, "expire in 10 minutes")
}

func TestSMTPSenderNoPasswordSkipsAuth(t *testing.T) {
	cfg := emailConfig(config.EmailProviderSMTP)
	cfg.SMTPPassword = ""

	var gotAuth smtp.Auth = smtp.PlainAuth("", "x", "x", "x")
	s := NewSMTPSender(cfg)
	s.send = func(_ string, auth smtp.Auth, _ string, _ []string, _ []byte) error {
		gotAuth = auth
		return nil
	}

	require.NoError(t, s.Send(context.Background(), "alice@example.com", "111111"))
	assert.Nil(t, gotAuth)
}

func TestMockSenderRecordsLastCode(t *testing.T) {
	m := NewMockSender()

	_, ok := m.LastCode("alice@example.com")
	assert.False(t, ok)

	require.NoError(t, m.Send(context.Background(), "alice@example.com", "111111"))
	require.NoError(t, m.Send(context.Background(), "alice@example.com", "222222"))

	code, ok := m.LastCode("alice@example.com")
	require.True(t, ok)
	assert.Equal(t, "222222", code)
}

func TestVerificationTemplateIsValidHTML(t *testing.T) {
	assert.True(t, strings.Contains(verificationEmailTemplate, "{{.Code}}"))
	assert.True(t, strings.HasPrefix(verificationEmailTemplate, "<!DOCTYPE html>"))
}
