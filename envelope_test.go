package starter_test

import (
	"encoding/json"
	"testing"
	"time"

	starter "github.com/goliatone/go-auth-starter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelope(t *testing.T) {
	tests := []struct {
		name           string
		data           any
		message        string
		statusCode     int
		path           string
		expectedMsg    string
		expectedStatus int
	}{
		{
			name:           "explicit values",
			data:           map[string]any{"id": "u1"},
			message:        "User registered successfully",
			statusCode:     201,
			path:           "/api/auth/sign-up",
			expectedMsg:    "User registered successfully",
			expectedStatus: 201,
		},
		{
			name:           "defaults applied",
			data:           nil,
			expectedMsg:    "Success",
			expectedStatus: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := starter.Success(tt.data, tt.message, tt.statusCode, tt.path)
			assert.Equal(t, tt.expectedStatus, env.StatusCode)
			assert.Equal(t, tt.expectedMsg, env.Message)
			assert.Equal(t, tt.data, env.Data)
			assert.Equal(t, tt.path, env.Path)
			assert.Nil(t, env.Errors)
			assertFreshTimestamp(t, env.Timestamp)
		})
	}
}

func TestErrorEnvelope(t *testing.T) {
	errs := []starter.ErrorDetail{{Code: "USER_NOT_FOUND", Message: "no such user"}}

	env := starter.Error("no such user", 404, errs, "/api/auth/sign-in")
	assert.Equal(t, 404, env.StatusCode)
	assert.Equal(t, "no such user", env.Message)
	assert.Equal(t, errs, env.Errors)
	assert.Nil(t, env.Data)
	assertFreshTimestamp(t, env.Timestamp)
}

func TestErrorEnvelopeDefaults(t *testing.T) {
	env := starter.Error("boom", 0, nil, "")
	assert.Equal(t, 400, env.StatusCode)
	require.NotNil(t, env.Errors, "errors array must be present even when empty")
	assert.Empty(t, env.Errors)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"errors":[]`, "empty errors array must survive serialization")
}

func TestEnvelopeSerializationShape(t *testing.T) {
	t.Run("error envelope keeps errors key", func(t *testing.T) {
		env := starter.Error("no such user", 404, []starter.ErrorDetail{
			{Code: "USER_NOT_FOUND", Message: "no such user"},
		}, "/api/auth/sign-in")

		raw, err := json.Marshal(env)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))
		require.Contains(t, decoded, "errors")
		errs, ok := decoded["errors"].([]any)
		require.True(t, ok)
		require.Len(t, errs, 1)
	})

	t.Run("success envelope omits errors key", func(t *testing.T) {
		env := starter.Success(map[string]any{"id": "u1"}, "", 0, "/api/auth/sign-in")

		raw, err := json.Marshal(env)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.NotContains(t, decoded, "errors")
		assert.Contains(t, decoded, "data")
	})
}

func TestValidationErrorEnvelope(t *testing.T) {
	errs := []starter.ErrorDetail{
		{Path: "email", Message: "must be a valid email", Code: "invalid_string"},
	}

	env := starter.ValidationError("", errs, "/api/users")
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Equal(t, errs, env.Errors)
}

func TestStatusEnvelopeDefaults(t *testing.T) {
	tests := []struct {
		name           string
		build          func(message, path string) starter.Envelope
		expectedStatus int
		expectedMsg    string
	}{
		{"unauthorized", starter.Unauthorized, 401, "Unauthorized"},
		{"forbidden", starter.Forbidden, 403, "Forbidden"},
		{"not found", starter.NotFound, 404, "Not found"},
		{"internal server error", starter.InternalServerError, 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := tt.build("", "/somewhere")
			assert.Equal(t, tt.expectedStatus, env.StatusCode)
			assert.Equal(t, tt.expectedMsg, env.Message)
			assert.Equal(t, "/somewhere", env.Path)
			assert.Nil(t, env.Data)
			require.NotNil(t, env.Errors, "status builders produce error envelopes with an errors array")
			assert.Empty(t, env.Errors)
			assertFreshTimestamp(t, env.Timestamp)

			custom := tt.build("custom message", "")
			assert.Equal(t, "custom message", custom.Message)
		})
	}
}

func assertFreshTimestamp(t *testing.T, ts string) {
	t.Helper()

	parsed, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err, "timestamp must parse as ISO-8601")
	assert.WithinDuration(t, time.Now().UTC(), parsed, 5*time.Second)
}
