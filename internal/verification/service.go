package verification

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/travelmate-app/travelmate-client/config"
	"github.com/travelmate-app/travelmate-client/errors"
	"github.com/travelmate-app/travelmate-client/logger"
)

type serviceMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	issuedCount prometheus.Counter
}

// record is one outstanding code for an email address.
type record struct {
	code     string
	issuedAt time.Time
}

// Service issues and checks verification codes. Codes are single-use,
// expire after the configured TTL, and issuing a new code for an address
// silently invalidates the previous one.
type Service struct {
	sender     Sender
	ttl        time.Duration
	codeLength int
	metrics    *serviceMetrics

	mu    sync.Mutex
	codes map[string]record
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the service's time source. Used in expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a verification service delivering codes via sender.
func NewService(sender Sender, cfg config.VerificationConfig, opts ...Option) *Service {
	return NewServiceWithRegistry(sender, cfg, prometheus.DefaultRegisterer, opts...)
}

// NewServiceWithRegistry is NewService with an explicit metrics registry,
// so tests don't collide on the default one.
func NewServiceWithRegistry(sender Sender, cfg config.VerificationConfig, reg prometheus.Registerer, opts ...Option) *Service {
	metrics := &serviceMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "travelmate_verification_send_duration_seconds",
			Help:    "Time taken to send verification emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travelmate_verification_errors_total",
			Help: "Total number of verification send failures",
		}),
		issuedCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travelmate_verification_codes_issued_total",
			Help: "Total number of verification codes issued",
		}),
	}
	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.issuedCount)

	s := &Service{
		sender:     sender,
		ttl:        time.Duration(cfg.CodeTTLSeconds) * time.Second,
		codeLength: cfg.CodeLength,
		metrics:    metrics,
		codes:      make(map[string]record),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateCode returns a string of uniform random digits. Not
// cryptographically hardened; the TTL and single-use delete bound the
// guessing window, and the code is never the auth credential itself.
func (s *Service) GenerateCode() string {
	var b strings.Builder
	for i := 0; i < s.codeLength; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}

// Send issues a fresh code for the address and delivers it. Any previous
// outstanding code for the same address is overwritten, not appended.
func (s *Service) Send(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", errors.ValidationFailed("invalid email", "email is required")
	}

	code := s.GenerateCode()
	start := time.Now()

	if err := s.sender.Send(ctx, email, code); err != nil {
		s.metrics.errorCount.Inc()
		return "", errors.Wrap(err, errors.ServerError, "failed to send verification email")
	}
	s.metrics.sendLatency.Observe(time.Since(start).Seconds())
	s.metrics.issuedCount.Inc()

	s.mu.Lock()
	s.codes[email] = record{code: code, issuedAt: s.now()}
	s.mu.Unlock()

	logger.GetLogger().Infow("Verification code issued",
		"email", logger.MaskEmail(email))
	return code, nil
}

// Verify checks the submitted code. A code is accepted iff it matches the
// outstanding record and its age does not exceed the TTL; acceptance
// deletes the record (single use). An expired record is also deleted.
func (s *Service) Verify(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.codes[email]
	if !ok {
		return errors.NotFound("verification code", email)
	}

	if s.now().Sub(rec.issuedAt) > s.ttl {
		delete(s.codes, email)
		return errors.CodeExpired(email)
	}

	if rec.code != code {
		return errors.CodeMismatch(email)
	}

	delete(s.codes, email)
	logger.GetLogger().Infow("Email verified",
		"email", logger.MaskEmail(email))
	return nil
}

// HasPendingCode reports whether an unconsumed code is on record for the
// address.
func (s *Service) HasPendingCode(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.codes[email]
	return ok
}
