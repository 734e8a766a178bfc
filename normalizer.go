package starter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// errorStatusCodes resolves engine error codes to HTTP status codes. This
// table is authoritative and exhaustive: any code absent from it resolves
// to 400.
var errorStatusCodes = map[string]int{
	CodeInvalidEmailOrPassword: http.StatusUnauthorized,
	CodeInvalidCredentials:     http.StatusUnauthorized,
	CodeInvalidPassword:        http.StatusUnauthorized,
	CodeUnauthorized:           http.StatusUnauthorized,

	CodeUserNotFound: http.StatusNotFound,

	CodeEmailAlreadyExists: http.StatusConflict,
	CodeConflict:           http.StatusConflict,

	CodeEmailNotVerified: http.StatusForbidden,
	CodeUserSuspended:    http.StatusForbidden,
	CodeForbidden:        http.StatusForbidden,

	CodeBadRequest:       http.StatusBadRequest,
	CodeInvalidEmail:     http.StatusBadRequest,
	CodePasswordTooWeak:  http.StatusBadRequest,
	CodeInvalidInput:     http.StatusBadRequest,
	CodeValidationFailed: http.StatusBadRequest,

	CodeRateLimitExceeded: http.StatusTooManyRequests,
	CodeTooManyRequests:   http.StatusTooManyRequests,

	CodeInternalServerError: http.StatusInternalServerError,
}

// StatusForCode resolves an engine error code through the lookup table,
// defaulting to 400 for unrecognized codes.
func StatusForCode(code string) int {
	if status, ok := errorStatusCodes[code]; ok {
		return status
	}
	return http.StatusBadRequest
}

type successRoute struct {
	fragment string
	message  string
	status   int
}

// successRoutes maps known authentication sub-paths to response copy.
// Matched in order; unmatched paths get a generic 200 Success.
var successRoutes = []successRoute{
	{"/sign-up", "User registered successfully", http.StatusCreated},
	{"/sign-in", "User signed in successfully", http.StatusOK},
	{"/change-password", "Password changed successfully", http.StatusOK},
	{"/verify-email", "Email verified successfully", http.StatusOK},
	{"/forget-password", "Password reset email sent successfully", http.StatusOK},
	{"/reset-password", "Password reset successfully", http.StatusOK},
	{"/sign-out", "User signed out successfully", http.StatusOK},
}

const genericErrorMessage = "An error occurred"

// Normalizer rewrites the engine's heterogeneous lifecycle results into the
// uniform envelope shape. It is pure per call and never fails past its own
// boundary: malformed results degrade to a generic 400 envelope.
type Normalizer struct {
	logger Logger
}

// NormalizerOption customizes a Normalizer.
type NormalizerOption func(*Normalizer)

// WithNormalizerLogger overrides the default logger.
func WithNormalizerLogger(l Logger) NormalizerOption {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// NewNormalizer builds a Normalizer.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{logger: defLogger{}}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize classifies one lifecycle event and produces its envelope. The
// second return is false when the event should pass through unchanged:
// only mutating (POST) passes are normalized, read-only engine endpoints
// already produce acceptable shapes.
func (n *Normalizer) Normalize(ev LifecycleEvent) (Envelope, bool) {
	if !strings.EqualFold(ev.Method, http.MethodPost) {
		return Envelope{}, false
	}

	if engErr, failed := classifyError(ev.Result); failed {
		return n.normalizeError(ev, engErr), true
	}

	message, status := successCopyForPath(ev.Path)
	return Success(ev.Result, message, status, ev.Path), true
}

func (n *Normalizer) normalizeError(ev LifecycleEvent, engErr *EngineError) Envelope {
	if engErr == nil || engErr.Message == "" {
		// Result carried an error marker we could not take apart. Degrade
		// rather than let a construction failure escape the pipeline.
		n.logger.Debug("malformed engine result on %s, downgrading to 400", ev.Path)
		return Error(genericErrorMessage, http.StatusBadRequest, []ErrorDetail{
			{Message: genericErrorMessage},
		}, ev.Path)
	}

	status := StatusForCode(engErr.Code)
	return Error(engErr.Message, status, []ErrorDetail{
		{Code: engErr.Code, Message: engErr.Message},
	}, ev.Path)
}

// classifyError reports whether the raw result is an engine failure. The
// second return distinguishes "not an error at all" from "an error we could
// extract": a true with a nil EngineError means the result was error-like
// but malformed.
func classifyError(result any) (*EngineError, bool) {
	switch r := result.(type) {
	case nil:
		return nil, false
	case *EngineError:
		return r, true
	case error:
		var engErr *EngineError
		if errors.As(r, &engErr) {
			return engErr, true
		}
		// Exception-like value without an engine shape.
		return &EngineError{Code: CodeBadRequest, Message: r.Error()}, true
	case map[string]any:
		if marker, ok := r["error"]; !ok || marker == nil || marker == false {
			return nil, false
		}
		return engineErrorFromMap(r), true
	default:
		return nil, false
	}
}

func engineErrorFromMap(r map[string]any) *EngineError {
	message, _ := r["message"].(string)
	if message == "" {
		if s, ok := r["error"].(string); ok {
			message = s
		}
	}
	if message == "" {
		return nil
	}

	code := CodeBadRequest
	switch c := r["code"].(type) {
	case string:
		if c != "" {
			code = c
		}
	case fmt.Stringer:
		code = c.String()
	}

	return &EngineError{Code: code, Message: message}
}

func successCopyForPath(path string) (string, int) {
	for _, route := range successRoutes {
		if strings.Contains(path, route.fragment) {
			return route.message, route.status
		}
	}
	return "Success", http.StatusOK
}
