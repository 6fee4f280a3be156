package verification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/travelmate-app/travelmate-client/config"
	"github.com/travelmate-app/travelmate-client/logger"
)

// SMTPSender delivers verification codes over plain SMTP with STARTTLS.
type SMTPSender struct {
	host     string
	port     int
	from     string
	fromName string
	password string
	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender builds a sender from the email config.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		password: cfg.SMTPPassword,
		send:     smtp.SendMail,
	}
}

// Send delivers the code as an HTML email.
func (s *SMTPSender) Send(_ context.Context, email, code string) error {
	log := logger.GetLogger()

	tmpl, err := template.New("verification").Parse(verificationEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var htmlContent bytes.Buffer
	if err := tmpl.Execute(&htmlContent, map[string]string{"Code": code}); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.fromName, s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", email)
	fmt.Fprintf(&msg, "Subject: TravelMate - Email Verification Code\r\n")
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	fmt.Fprintf(&msg, "\r\n")
	msg.Write(htmlContent.Bytes())

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	var auth smtp.Auth
	if s.password != "" {
		auth = smtp.PlainAuth("", s.from, s.password, s.host)
	}

	if err := s.send(addr, auth, s.from, []string{email}, msg.Bytes()); err != nil {
		log.Errorw("Failed to send verification email",
			"email", logger.MaskEmail(email),
			"smtp_host", s.host,
			"error", err)
		return fmt.Errorf("email send failed: %w", err)
	}

	log.Infow("Verification email sent",
		"email", logger.MaskEmail(email))
	return nil
}

// Template constants
const verificationEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>TravelMate Email Verification</title>
</head>
<body style="font-family: sans-serif; color: #333333; text-align: center;">
    <h2>TravelMate Email Verification</h2>
    <p>Your verification code is:</p>
    <h1 style="color: #1976d2; font-size: 32px; letter-spacing: 5px;">{{.Code}}</h1>
    <p>This code will expire in 10 minutes.</p>
    <p>If you didn't request this code, please ignore this email.</p>
    <br>
    <p>Best regards,<br>TravelMate Team</p>
</body>
</html>`
