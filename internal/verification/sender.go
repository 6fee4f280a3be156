// Package verification issues and checks the short-lived numeric codes that
// gate email confirmation. Delivery is pluggable: SMTP, Resend, or an
// in-memory mock, selected by configuration rather than silently substituted.
package verification

import (
	"context"
	"fmt"
	"sync"

	"github.com/travelmate-app/travelmate-client/config"
	"github.com/travelmate-app/travelmate-client/errors"
	"github.com/travelmate-app/travelmate-client/logger"
)

// Sender delivers a verification code to an email address.
type Sender interface {
	Send(ctx context.Context, email, code string) error
}

// NewSenderFromConfig selects the delivery backend named by the config.
func NewSenderFromConfig(cfg config.EmailConfig) (Sender, error) {
	switch cfg.Provider {
	case config.EmailProviderSMTP:
		return NewSMTPSender(cfg), nil
	case config.EmailProviderResend:
		return NewResendSender(cfg), nil
	case config.EmailProviderMock:
		return NewMockSender(), nil
	default:
		return nil, errors.ValidationFailed("invalid email config",
			fmt.Sprintf("unknown provider %q", cfg.Provider))
	}
}

// MockSender records codes in memory instead of delivering them. Used in
// development and tests.
type MockSender struct {
	mu    sync.Mutex
	codes map[string]string // email -> last code "sent"
}

// NewMockSender creates an empty mock sender.
func NewMockSender() *MockSender {
	return &MockSender{codes: make(map[string]string)}
}

// Send stores the code and logs the delivery.
func (m *MockSender) Send(_ context.Context, email, code string) error {
	m.mu.Lock()
	m.codes[email] = code
	m.mu.Unlock()

	logger.GetLogger().Infow("Mock verification email sent",
		"email", logger.MaskEmail(email),
		"code", code)
	return nil
}

// LastCode returns the most recent code "sent" to an address.
func (m *MockSender) LastCode(email string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[email]
	return code, ok
}
