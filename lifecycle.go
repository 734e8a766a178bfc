package starter

import (
	"context"
	"net/http"
)

// Engine error codes understood by the normalizer. Engines are free to emit
// codes outside this set; those resolve to 400.
const (
	CodeInvalidEmailOrPassword = "INVALID_EMAIL_OR_PASSWORD"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeInvalidPassword        = "INVALID_PASSWORD"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeEmailAlreadyExists     = "EMAIL_ALREADY_EXISTS"
	CodeConflict               = "CONFLICT"
	CodeEmailNotVerified       = "EMAIL_NOT_VERIFIED"
	CodeUserSuspended          = "USER_SUSPENDED"
	CodeForbidden              = "FORBIDDEN"
	CodeBadRequest             = "BAD_REQUEST"
	CodeInvalidEmail           = "INVALID_EMAIL"
	CodePasswordTooWeak        = "PASSWORD_TOO_WEAK"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeRateLimitExceeded      = "RATE_LIMIT_EXCEEDED"
	CodeTooManyRequests        = "TOO_MANY_REQUESTS"
	CodeInternalServerError    = "INTERNAL_SERVER_ERROR"
)

// EngineError is the error-result shape the authentication engine reports for
// a failed lifecycle pass. It is created by the engine and read-only here.
type EngineError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *EngineError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// NewEngineError builds an engine domain error. Mostly useful for engine
// adapters and tests; the engine itself owns these values at runtime.
func NewEngineError(code, message string) *EngineError {
	return &EngineError{Code: code, Message: message}
}

// EngineRequest carries one inbound authentication request into the engine.
type EngineRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Engine is the external authentication subsystem. It owns credentials,
// sessions, OTP generation and verification state; this package only
// observes its terminal results. Handle runs exactly one lifecycle pass:
// the returned payload is the raw engine output, the error (when non-nil)
// the engine's domain failure.
type Engine interface {
	Handle(ctx context.Context, req *EngineRequest) (any, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, req *EngineRequest) (any, error)

func (f EngineFunc) Handle(ctx context.Context, req *EngineRequest) (any, error) {
	return f(ctx, req)
}

// LifecycleEvent is one pass through the engine for one inbound request,
// carrying its raw outcome. Produced once per request, consumed exactly once
// by the normalizer, never persisted.
type LifecycleEvent struct {
	Method string
	Path   string
	Result any
}
