package starter

import (
	"encoding/json"
	"net/http"
	"time"
)

// timestampLayout matches the ISO-8601 shape API consumers already parse,
// millisecond precision, always UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrorDetail describes a single failure inside an error envelope.
type ErrorDetail struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Envelope is the uniform response shape every API consumer depends on.
// Exactly one of Data or Errors is meaningfully populated on a terminal
// response; Timestamp is stamped at construction and never propagated
// from upstream.
type Envelope struct {
	StatusCode int           `json:"statusCode"`
	Message    string        `json:"message"`
	Data       any           `json:"data,omitempty"`
	Errors     []ErrorDetail `json:"errors,omitempty"`
	Timestamp  string        `json:"timestamp"`
	Path       string        `json:"path,omitempty"`
}

// MarshalJSON keeps the errors key present whenever Errors is non-nil.
// Error envelopes carry an empty array rather than dropping the key, so
// consumers can index errors without probing for it first.
func (e Envelope) MarshalJSON() ([]byte, error) {
	type envelope Envelope
	out := struct {
		envelope
		Errors *[]ErrorDetail `json:"errors,omitempty"`
	}{envelope: envelope(e)}
	if e.Errors != nil {
		out.Errors = &e.Errors
	}
	return json.Marshal(out)
}

func stamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

// Success builds a success envelope. An empty message defaults to "Success",
// a zero status to 200.
func Success(data any, message string, statusCode int, path string) Envelope {
	if message == "" {
		message = "Success"
	}
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	return Envelope{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
		Timestamp:  stamp(),
		Path:       path,
	}
}

// Error builds an error envelope. A zero status defaults to 400. Errors is
// never nil so the serialized shape always carries an errors array.
func Error(message string, statusCode int, errs []ErrorDetail, path string) Envelope {
	if statusCode == 0 {
		statusCode = http.StatusBadRequest
	}
	if errs == nil {
		errs = []ErrorDetail{}
	}
	return Envelope{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
		Timestamp:  stamp(),
		Path:       path,
	}
}

// ValidationError builds the 400 envelope used for request validation
// failures, one ErrorDetail per offending field.
func ValidationError(message string, errs []ErrorDetail, path string) Envelope {
	if message == "" {
		message = "Validation failed"
	}
	return Error(message, http.StatusBadRequest, errs, path)
}

// Unauthorized builds a 401 envelope.
func Unauthorized(message, path string) Envelope {
	if message == "" {
		message = "Unauthorized"
	}
	return Error(message, http.StatusUnauthorized, nil, path)
}

// Forbidden builds a 403 envelope.
func Forbidden(message, path string) Envelope {
	if message == "" {
		message = "Forbidden"
	}
	return Error(message, http.StatusForbidden, nil, path)
}

// NotFound builds a 404 envelope.
func NotFound(message, path string) Envelope {
	if message == "" {
		message = "Not found"
	}
	return Error(message, http.StatusNotFound, nil, path)
}

// InternalServerError builds a 500 envelope.
func InternalServerError(message, path string) Envelope {
	if message == "" {
		message = "Internal server error"
	}
	return Error(message, http.StatusInternalServerError, nil, path)
}
