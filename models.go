package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleCustomer is the default account role
	RoleCustomer UserRole = "customer"
	// RoleAdmin can manage other accounts
	RoleAdmin UserRole = "admin"
)

// User is the account model. The token subsystem only needs its id and
// password hash; everything else belongs to the surrounding application.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	ConfirmedAt   *time.Time `bun:"confirmed_at,nullzero" json:"confirmed_at,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Confirmed reports whether the account finished email confirmation.
func (u *User) Confirmed() bool {
	return u != nil && u.ConfirmedAt != nil
}

// Session ties a jti to a user. It is the durable join point for
// revocation: at most one live row per user, enforced by the unique
// user_id constraint plus delete-then-insert at login.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:ses"`
	JTI           uuid.UUID     `bun:"jti,pk,type:uuid" json:"jti,omitempty"`
	UserID        uuid.UUID     `bun:"user_id,notnull,unique,type:uuid" json:"user_id,omitempty"`
	User          *User         `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	RefreshToken  *RefreshToken `bun:"rel:has-one,join:jti=jti" json:"refresh_token,omitempty"`
	RevokedToken  *RevokedToken `bun:"rel:has-one,join:jti=jti" json:"revoked_token,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Revoked reports whether a blacklist marker exists for this session.
// Requires the RevokedToken relation to be loaded.
func (s *Session) Revoked() bool {
	return s != nil && s.RevokedToken != nil
}

// RefreshToken stores the keyed hash of a session's refresh secret. The
// raw secret is never persisted. Not rotated on use; it lives until its
// own expiry or until the session is revoked or superseded.
type RefreshToken struct {
	bun.BaseModel `bun:"table:refresh_tokens,alias:rft"`
	JTI           uuid.UUID  `bun:"jti,pk,type:uuid" json:"jti,omitempty"`
	Session       *Session   `bun:"rel:belongs-to,join:jti=jti" json:"session,omitempty"`
	HashedToken   string     `bun:"hashed_token,notnull,unique" json:"-"`
	ExpiresAt     time.Time  `bun:"expires_at,notnull" json:"expires_at,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Expired reports whether the credential is past its expiry at the given
// instant.
func (r *RefreshToken) Expired(now time.Time) bool {
	return r != nil && now.After(r.ExpiresAt)
}

// RevokedToken marks a session's access token family as permanently
// revoked. Presence alone signals revocation; ExpiresAt bounds how long
// the marker is semantically meaningful and drives maintenance purges.
type RevokedToken struct {
	bun.BaseModel `bun:"table:revoked_tokens,alias:rvt"`
	JTI           uuid.UUID  `bun:"jti,pk,type:uuid" json:"jti,omitempty"`
	Session       *Session   `bun:"rel:belongs-to,join:jti=jti" json:"session,omitempty"`
	ExpiresAt     time.Time  `bun:"expires_at,notnull" json:"expires_at,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
