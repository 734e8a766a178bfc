package starter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// SessionObject is the resolved identity attached to an authenticated
// request.
type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Email          string     `json:"email,omitempty"`
	Issuer         string     `json:"issuer,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

// Expired reports whether the session's expiry has passed.
func (s *SessionObject) Expired(now time.Time) bool {
	return s.ExpirationDate != nil && s.ExpirationDate.Before(now)
}

func (s SessionObject) String() string {
	issuedAt := "<nil>"
	if s.IssuedAt != nil {
		issuedAt = s.IssuedAt.Format(time.RFC1123)
	}
	return fmt.Sprintf("user=%s iss=%s iat=%s", s.UserID, s.Issuer, issuedAt)
}

// SessionResolver turns bearer tokens into sessions. Tokens that look like a
// JWT are decoded locally; opaque tokens resolve against the sessions table.
type SessionResolver struct {
	secret   []byte
	issuer   string
	sessions repository.Repository[*Session]
	now      func() time.Time
}

// SessionResolverOption customizes a SessionResolver.
type SessionResolverOption func(*SessionResolver)

// WithSessionIssuer sets the expected JWT issuer. Empty skips the check.
func WithSessionIssuer(issuer string) SessionResolverOption {
	return func(r *SessionResolver) {
		r.issuer = issuer
	}
}

// WithSessionClock overrides the clock, for tests.
func WithSessionClock(now func() time.Time) SessionResolverOption {
	return func(r *SessionResolver) {
		if now != nil {
			r.now = now
		}
	}
}

// NewSessionResolver builds a resolver over a signing secret and the session
// store.
func NewSessionResolver(secret []byte, sessions repository.Repository[*Session], opts ...SessionResolverOption) *SessionResolver {
	r := &SessionResolver{
		secret:   secret,
		sessions: sessions,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve validates a bearer token and returns the session it represents.
func (r *SessionResolver) Resolve(ctx context.Context, token string) (*SessionObject, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrSessionNotFound
	}

	if strings.Count(token, ".") == 2 {
		return r.resolveJWT(token)
	}

	return r.resolveStored(ctx, token)
}

func (r *SessionResolver) resolveJWT(raw string) (*SessionObject, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	}, jwt.WithTimeFunc(r.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "unable to decode session token").
			WithTextCode(TextCodeSessionDecodeError).
			WithCode(goerrors.CodeUnauthorized)
	}

	if r.issuer != "" && claims.Issuer != r.issuer {
		return nil, ErrSessionDecode
	}

	session := &SessionObject{
		UserID: claims.Subject,
		Issuer: claims.Issuer,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = &claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpirationDate = &claims.ExpiresAt.Time
	}

	if !parsed.Valid {
		return nil, ErrSessionDecode
	}

	return session, nil
}

func (r *SessionResolver) resolveStored(ctx context.Context, token string) (*SessionObject, error) {
	if r.sessions == nil {
		return nil, ErrSessionNotFound
	}

	record, err := r.sessions.GetByIdentifier(ctx, token)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to load session")
	}

	if record.Expired(r.now()) {
		return nil, ErrSessionExpired
	}

	session := &SessionObject{
		IssuedAt:       record.CreatedAt,
		ExpirationDate: record.ExpiresAt,
	}
	if record.UserID != nil {
		session.UserID = record.UserID.String()
	}
	if record.User != nil {
		session.Email = record.User.Email
	}

	return session, nil
}
