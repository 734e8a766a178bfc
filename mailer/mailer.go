// Package mailer composes rendered HTML templates into outbound messages for
// each authentication notification kind and hands them to a mail transport.
// Dispatch is synchronous: the lifecycle step that requested a notification
// waits for the send to resolve or fail, and there is no retry queue.
package mailer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-auth-starter/template"
)

// Message is one outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Transport is the outbound mail delivery mechanism. Implementations own
// their connection management and must be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, msg Message) error
	Verify(ctx context.Context) error
	Close() error
}

// Renderer is the template surface the mailer consumes.
type Renderer interface {
	Render(name string, vars template.Variables) (string, error)
}

// Logger is the minimal logging surface the mailer needs.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Expiry copy baked into each notification kind.
const (
	otpExpiry          = "10 minutes"
	twoFactorExpiry    = "5 minutes"
	verificationExpiry = "24 hours"
	resetExpiry        = "1 hour"
)

// Mailer dispatches transactional authentication emails. One instance is
// shared by all concurrent requests; it holds no per-send state beyond the
// transport health flag.
type Mailer struct {
	transport Transport
	renderer  Renderer
	logger    Logger

	from     string
	fromName string
	appName  string

	verified atomic.Bool
}

// Option customizes a Mailer.
type Option func(*Mailer)

// WithFrom sets the sender address and display name.
func WithFrom(address, name string) Option {
	return func(m *Mailer) {
		m.from = address
		m.fromName = name
	}
}

// WithAppName sets the application display name used in template footers.
func WithAppName(name string) Option {
	return func(m *Mailer) {
		m.appName = name
	}
}

// WithLogger overrides the default logger.
func WithLogger(l Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// New builds a Mailer over the given transport and renderer.
func New(transport Transport, renderer Renderer, opts ...Option) *Mailer {
	m := &Mailer{
		transport: transport,
		renderer:  renderer,
		logger:    nopLogger{},
		from:      "no-reply@localhost",
		appName:   "Auth Starter",
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.fromName == "" {
		m.fromName = m.appName
	}
	return m
}

// Probe runs the transport connectivity check. Callers should treat a probe
// failure at startup as fatal; a half-initialized service must not come up.
func (m *Mailer) Probe(ctx context.Context) error {
	if err := m.transport.Verify(ctx); err != nil {
		return err
	}
	m.verified.Store(true)
	return nil
}

// Close releases the transport. Best effort, pending sends may be dropped.
func (m *Mailer) Close() error {
	return m.transport.Close()
}

// SendVerificationOTP delivers a one-time code whose copy depends on the
// lifecycle moment that requested it.
func (m *Mailer) SendVerificationOTP(ctx context.Context, email, otp string, flavor OTPFlavor) error {
	c := copyForFlavor(flavor)

	html, err := m.renderer.Render("otp-email", m.vars(template.Variables{
		"TITLE":        c.Subject,
		"ICON":         c.Icon,
		"HEADER_TITLE": c.Title,
		"MESSAGE":      c.Message,
		"OTP_CODE":     otp,
		"EXPIRY_TIME":  otpExpiry,
	}))
	if err != nil {
		return err
	}

	return m.send(ctx, email, c.Subject, html, "Failed to send verification email")
}

// SendVerificationEmail delivers an address-ownership verification link.
func (m *Mailer) SendVerificationEmail(ctx context.Context, email, verificationURL, name string) error {
	html, err := m.renderer.Render("verification-email", m.vars(template.Variables{
		"GREETING":         greeting(name),
		"VERIFICATION_URL": verificationURL,
		"EXPIRY_TIME":      verificationExpiry,
	}))
	if err != nil {
		return err
	}

	return m.send(ctx, email, "Verify Your Email Address", html, "Failed to send verification email")
}

// SendTwoFactorOTP delivers a two-factor challenge code.
func (m *Mailer) SendTwoFactorOTP(ctx context.Context, email, otp string) error {
	subject := "Your Two-Factor Authentication Code"

	html, err := m.renderer.Render("otp-email", m.vars(template.Variables{
		"TITLE":        subject,
		"ICON":         "🔐",
		"HEADER_TITLE": "Two-Factor Authentication",
		"MESSAGE":      "Your two-factor authentication code is:",
		"OTP_CODE":     otp,
		"EXPIRY_TIME":  twoFactorExpiry,
	}))
	if err != nil {
		return err
	}

	return m.send(ctx, email, subject, html, "Failed to send two-factor authentication email")
}

// SendPasswordResetEmail delivers a password reset link.
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, resetURL, name string) error {
	subject := "Reset Your Password"

	message := "You requested to reset your password. Click the button below to reset your password:"
	if name != "" {
		message = fmt.Sprintf("Hi %s, you requested to reset your password. Click the button below to reset your password:", name)
	}

	html, err := m.renderer.Render("password-reset-email", m.vars(template.Variables{
		"TITLE":        subject,
		"ICON":         "🔑",
		"HEADER_TITLE": "Password Reset",
		"MESSAGE":      message,
		"EXPIRY_TIME":  resetExpiry,
		"RESET_URL":    resetURL,
	}))
	if err != nil {
		return err
	}

	return m.send(ctx, email, subject, html, "Failed to send password reset email")
}

// SendPasswordChangedEmail confirms a completed password change.
func (m *Mailer) SendPasswordChangedEmail(ctx context.Context, email, name string) error {
	html, err := m.renderer.Render("password-change-success", m.vars(template.Variables{
		"GREETING": greeting(name),
	}))
	if err != nil {
		return err
	}

	return m.send(ctx, email, "Your Password Has Been Changed Successfully", html, "Failed to send password change notification")
}

// vars appends the variables every template expects.
func (m *Mailer) vars(vars template.Variables) template.Variables {
	vars["CURRENT_YEAR"] = time.Now().Year()
	vars["APP_NAME"] = m.appName
	return vars
}

func (m *Mailer) send(ctx context.Context, to, subject, html, failureMessage string) error {
	if !m.verified.Load() {
		m.logger.Info("transport not verified, sending best-effort to %s", to)
	}

	msg := Message{
		From:    fmt.Sprintf("%q <%s>", m.fromName, m.from),
		To:      to,
		Subject: subject,
		HTML:    html,
	}

	if err := m.transport.Send(ctx, msg); err != nil {
		m.logger.Error("mail send failed to %s: %v", to, err)
		return deliveryFailed(failureMessage, err)
	}

	m.logger.Debug("mail sent to %s: %s", to, subject)
	return nil
}

func greeting(name string) string {
	if name == "" {
		return "Hello,"
	}
	return fmt.Sprintf("Hi %s,", name)
}
