package starter_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	starter "github.com/goliatone/go-auth-starter"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(sessionSecret)
	require.NoError(t, err)
	return signed
}

func TestSessionObject(t *testing.T) {
	userID := uuid.New().String()
	now := time.Now()

	session := &starter.SessionObject{
		UserID:         userID,
		Email:          "a@b.com",
		Issuer:         "test-issuer",
		IssuedAt:       &now,
		ExpirationDate: &now,
	}

	assert.Equal(t, userID, session.GetUserID())

	parsed, err := session.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed.String())

	assert.True(t, session.Expired(now.Add(time.Minute)))
	assert.False(t, session.Expired(now.Add(-time.Minute)))
}

func TestResolveJWT(t *testing.T) {
	userID := uuid.New().String()
	now := time.Now()

	resolver := starter.NewSessionResolver(sessionSecret, nil,
		starter.WithSessionIssuer("test-issuer"),
	)

	t.Run("valid token", func(t *testing.T) {
		raw := signToken(t, jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "test-issuer",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})

		session, err := resolver.Resolve(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, userID, session.UserID)
		assert.Equal(t, "test-issuer", session.Issuer)
	})

	t.Run("expired token", func(t *testing.T) {
		raw := signToken(t, jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "test-issuer",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		})

		_, err := resolver.Resolve(context.Background(), raw)
		require.Error(t, err)
		assert.True(t, starter.IsSessionError(err))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		raw := signToken(t, jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})

		_, err := resolver.Resolve(context.Background(), raw)
		require.Error(t, err)
		assert.True(t, starter.IsSessionError(err))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "a.b.c")
		require.Error(t, err)
		assert.True(t, starter.IsSessionError(err))
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "  ")
		require.Error(t, err)
		assert.True(t, starter.IsSessionError(err))
	})
}

func TestResolveOpaqueTokenWithoutStore(t *testing.T) {
	resolver := starter.NewSessionResolver(sessionSecret, nil)

	_, err := resolver.Resolve(context.Background(), "opaque-session-token")
	require.Error(t, err)
	assert.True(t, starter.IsSessionError(err))
}
