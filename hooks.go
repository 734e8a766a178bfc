package starter

import (
	"context"

	"github.com/goliatone/go-auth-starter/mailer"
)

// NotificationDispatcher is the outbound notification surface the trigger
// bindings call into. *mailer.Mailer satisfies it.
type NotificationDispatcher interface {
	SendVerificationOTP(ctx context.Context, email, otp string, flavor mailer.OTPFlavor) error
	SendVerificationEmail(ctx context.Context, email, verificationURL, name string) error
	SendTwoFactorOTP(ctx context.Context, email, otp string) error
	SendPasswordResetEmail(ctx context.Context, email, resetURL, name string) error
	SendPasswordChangedEmail(ctx context.Context, email, name string) error
}

// Bindings maps the authentication lifecycle moments that produce email to
// exactly one dispatcher call each. Every binding is a synchronous gate: the
// engine step that fired it must not proceed until the send resolves, and a
// send failure fails the enclosing operation.
type Bindings struct {
	dispatcher NotificationDispatcher
	logger     Logger
}

// NewBindings wires the trigger bindings to a dispatcher.
func NewBindings(dispatcher NotificationDispatcher, opts ...BindingsOption) *Bindings {
	b := &Bindings{
		dispatcher: dispatcher,
		logger:     defLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BindingsOption customizes Bindings.
type BindingsOption func(*Bindings)

// WithBindingsLogger overrides the default logger.
func WithBindingsLogger(l Logger) BindingsOption {
	return func(b *Bindings) {
		if l != nil {
			b.logger = l
		}
	}
}

// OnSignUp fires when a new account registers and must prove ownership of
// its address before it can sign in.
func (b *Bindings) OnSignUp(ctx context.Context, email, verificationURL, name string) error {
	b.logger.Debug("lifecycle sign-up: verification email to %s", email)
	return b.dispatcher.SendVerificationEmail(ctx, email, verificationURL, name)
}

// OnEmailVerificationRequested fires when an existing account asks for a
// fresh verification link.
func (b *Bindings) OnEmailVerificationRequested(ctx context.Context, email, verificationURL, name string) error {
	b.logger.Debug("lifecycle verification requested: email to %s", email)
	return b.dispatcher.SendVerificationEmail(ctx, email, verificationURL, name)
}

// OnOTPRequested fires when the engine issues a one-time code. The flavor
// tells the dispatcher which copy to use.
func (b *Bindings) OnOTPRequested(ctx context.Context, email, otp string, flavor mailer.OTPFlavor) error {
	b.logger.Debug("lifecycle otp requested (%s): code to %s", flavor, email)
	return b.dispatcher.SendVerificationOTP(ctx, email, otp, flavor)
}

// OnTwoFactorChallenge fires when a sign in needs a second factor.
func (b *Bindings) OnTwoFactorChallenge(ctx context.Context, email, otp string) error {
	b.logger.Debug("lifecycle two-factor challenge: code to %s", email)
	return b.dispatcher.SendTwoFactorOTP(ctx, email, otp)
}

// OnPasswordResetRequested fires when an account starts a password reset.
func (b *Bindings) OnPasswordResetRequested(ctx context.Context, email, resetURL, name string) error {
	b.logger.Debug("lifecycle reset requested: link to %s", email)
	return b.dispatcher.SendPasswordResetEmail(ctx, email, resetURL, name)
}

// OnPasswordReset fires after a password reset completes, confirming the
// change to the account owner.
func (b *Bindings) OnPasswordReset(ctx context.Context, email, name string) error {
	b.logger.Debug("lifecycle password reset: confirmation to %s", email)
	return b.dispatcher.SendPasswordChangedEmail(ctx, email, name)
}
