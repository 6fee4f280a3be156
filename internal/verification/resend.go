package verification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"github.com/travelmate-app/travelmate-client/config"
	"github.com/travelmate-app/travelmate-client/logger"
)

// ResendSender delivers verification codes through the Resend API.
type ResendSender struct {
	client   *resend.Client
	from     string
	fromName string
}

// NewResendSender builds a sender from the email config.
func NewResendSender(cfg config.EmailConfig) *ResendSender {
	return &ResendSender{
		client:   resend.NewClient(cfg.ResendAPIKey),
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
	}
}

// Send delivers the code as an HTML email via Resend.
func (s *ResendSender) Send(_ context.Context, email, code string) error {
	log := logger.GetLogger()

	tmpl, err := template.New("verification").Parse(verificationEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var htmlContent bytes.Buffer
	if err := tmpl.Execute(&htmlContent, map[string]string{"Code": code}); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.from),
		To:      []string{email},
		Subject: "TravelMate - Email Verification Code",
		Html:    htmlContent.String(),
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		log.Errorw("Failed to send verification email",
			"email", logger.MaskEmail(email),
			"error", err)
		return fmt.Errorf("email send failed: %w", err)
	}

	log.Infow("Verification email sent",
		"email", logger.MaskEmail(email))
	return nil
}
