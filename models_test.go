package starter_test

import (
	"testing"
	"time"

	starter "github.com/goliatone/go-auth-starter"
	"github.com/stretchr/testify/assert"
)

func TestUserAddMetadata(t *testing.T) {
	user := &starter.User{}

	user.AddMetadata("source", "import").AddMetadata("batch", 42)

	assert.Equal(t, "import", user.Metadata["source"])
	assert.Equal(t, 42, user.Metadata["batch"])
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	expiry := now.Add(time.Hour)

	session := &starter.Session{ExpiresAt: &expiry}

	assert.False(t, session.Expired(now))
	assert.True(t, session.Expired(now.Add(2*time.Hour)))

	assert.False(t, (&starter.Session{}).Expired(now))
}

func TestVerificationUsable(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name     string
		token    starter.Verification
		expected bool
	}{
		{
			name:     "live token",
			token:    starter.Verification{ExpiresAt: &future},
			expected: true,
		},
		{
			name:     "expired token",
			token:    starter.Verification{ExpiresAt: &past},
			expected: false,
		},
		{
			name:     "consumed token",
			token:    starter.Verification{ExpiresAt: &future, ConsumedAt: &past},
			expected: false,
		},
		{
			name:     "no expiry",
			token:    starter.Verification{},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.token.Usable(now))
		})
	}
}
