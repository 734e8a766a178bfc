package starter

import (
	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by the rich errors below so callers can branch on a
// stable identifier instead of matching message strings.
const (
	TextCodeSessionNotFound    = "SESSION_NOT_FOUND"
	TextCodeSessionDecodeError = "SESSION_DECODE_ERROR"
	TextCodeSessionExpired     = "SESSION_EXPIRED"
)

// ErrSessionNotFound is returned when a request carries no session token.
var ErrSessionNotFound = goerrors.New("unable to find session", goerrors.CategoryAuth).
	WithTextCode(TextCodeSessionNotFound).
	WithCode(goerrors.CodeUnauthorized)

// ErrSessionDecode is returned when a session token cannot be decoded or
// does not resolve to a stored session.
var ErrSessionDecode = goerrors.New("unable to decode session", goerrors.CategoryAuth).
	WithTextCode(TextCodeSessionDecodeError).
	WithCode(goerrors.CodeUnauthorized)

// ErrSessionExpired is returned for sessions past their expiry.
var ErrSessionExpired = goerrors.New("session expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeSessionExpired).
	WithCode(goerrors.CodeUnauthorized)

// IsSessionError reports whether err carries one of the session text codes.
func IsSessionError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	switch richErr.TextCode {
	case TextCodeSessionNotFound, TextCodeSessionDecodeError, TextCodeSessionExpired:
		return true
	}
	return false
}
