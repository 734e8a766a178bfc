package starter_test

import (
	"context"
	"testing"

	starter "github.com/goliatone/go-auth-starter"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionContext(t *testing.T) {
	session := &starter.SessionObject{UserID: uuid.New().String()}

	ctx := starter.WithSession(context.Background(), session)

	got, ok := starter.SessionFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, session, got)

	_, ok = starter.SessionFrom(context.Background())
	assert.False(t, ok)
}

func TestUserContext(t *testing.T) {
	user := &starter.User{ID: uuid.New(), Email: "a@b.com"}

	ctx := starter.WithUser(context.Background(), user)

	got, ok := starter.UserFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, user, got)

	_, ok = starter.UserFrom(context.Background())
	assert.False(t, ok)
}
