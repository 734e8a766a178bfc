package starter

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AccountStatus is the lifecycle state of a user account
type AccountStatus = string

const (
	// StatusActive is a live account
	StatusActive AccountStatus = "active"
	// StatusInactive is an account that has not completed verification
	StatusInactive AccountStatus = "inactive"
	// StatusSuspended is an account blocked by an operator
	StatusSuspended AccountStatus = "suspended"
)

// User is the user model
type User struct {
	bun.BaseModel    `bun:"table:users,alias:usr"`
	ID               uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name             string         `bun:"name,notnull" json:"name,omitempty"`
	Email            string         `bun:"email,notnull,unique" json:"email,omitempty"`
	EmailVerified    bool           `bun:"email_verified,notnull" json:"email_verified,omitempty"`
	Image            string         `bun:"image" json:"image,omitempty"`
	Status           AccountStatus  `bun:"status,notnull,default:'active'" json:"status,omitempty"`
	TwoFactorEnabled bool           `bun:"two_factor_enabled" json:"two_factor_enabled,omitempty"`
	Metadata         map[string]any `bun:"metadata" json:"metadata,omitempty"`
	CreatedAt        *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt        *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt        *time.Time     `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// AddMetadata will append information to a metadata attribute
func (u *User) AddMetadata(key string, val any) *User {
	if u.Metadata == nil {
		u.Metadata = make(map[string]any)
	}
	u.Metadata[key] = val
	return u
}

// Session is a persisted login session. Bearer tokens that are not JWTs
// resolve against this table.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:ses"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        *uuid.UUID `bun:"user_id,notnull" json:"user_id,omitempty"`
	User          *User      `bun:"rel:has-one,join:user_id=id" json:"user,omitempty"`
	Token         string     `bun:"token,notnull,unique" json:"-"`
	ExpiresAt     *time.Time `bun:"expires_at,notnull" json:"expires_at,omitempty"`
	IPAddress     string     `bun:"ip_address" json:"ip_address,omitempty"`
	UserAgent     string     `bun:"user_agent" json:"user_agent,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Expired reports whether the session's expiry has passed.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// Account links a user to a credential provider. The password hash for the
// credential provider and OAuth tokens for social providers live here, not
// on the user row.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        *uuid.UUID `bun:"user_id,notnull" json:"user_id,omitempty"`
	User          *User      `bun:"rel:has-one,join:user_id=id" json:"user,omitempty"`
	ProviderID    string     `bun:"provider_id,notnull" json:"provider_id,omitempty"`
	AccountID     string     `bun:"account_id,notnull" json:"account_id,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	AccessToken   string     `bun:"access_token" json:"-"`
	RefreshToken  string     `bun:"refresh_token" json:"-"`
	ExpiresAt     *time.Time `bun:"expires_at,nullzero" json:"expires_at,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// VerificationPurpose classifies what a verification token unlocks
type VerificationPurpose = string

const (
	// PurposeEmailVerification proves ownership of an address
	PurposeEmailVerification VerificationPurpose = "email-verification"
	// PurposePasswordReset authorizes a password reset
	PurposePasswordReset VerificationPurpose = "password-reset"
	// PurposeOTP is a short lived one-time code
	PurposeOTP VerificationPurpose = "otp"
)

// Verification is a single-use token handed out by the engine (email
// verification links, reset links, OTP codes).
type Verification struct {
	bun.BaseModel `bun:"table:verifications,alias:vrf"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Identifier    string     `bun:"identifier,notnull" json:"identifier,omitempty"`
	Value         string     `bun:"value,notnull" json:"-"`
	Purpose       string     `bun:"purpose,notnull" json:"purpose,omitempty"`
	ExpiresAt     *time.Time `bun:"expires_at,notnull" json:"expires_at,omitempty"`
	ConsumedAt    *time.Time `bun:"consumed_at,nullzero" json:"consumed_at,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Usable reports whether the token can still be redeemed.
func (v *Verification) Usable(now time.Time) bool {
	if v.ConsumedAt != nil {
		return false
	}
	return v.ExpiresAt == nil || v.ExpiresAt.After(now)
}
