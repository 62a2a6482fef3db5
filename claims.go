package auth

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// AccessTokenClaims is the payload of a signed access token. Only the
// registered identity fields are carried: sub (user id), jti (session
// id), iat, exp, and iss. Scopes or roles are deliberately absent.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
}

// NewAccessTokenClaims builds the claims for a session, dated at now with
// the given lifetime.
func NewAccessTokenClaims(userID, jti uuid.UUID, issuer string, now time.Time, ttl time.Duration) *AccessTokenClaims {
	return &AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        jti.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// SessionID returns the jti claim.
func (c *AccessTokenClaims) SessionID() string {
	return c.RegisteredClaims.ID
}

// UserID returns the sub claim.
func (c *AccessTokenClaims) UserID() string {
	return c.RegisteredClaims.Subject
}

// UserUUID parses the sub claim as a UUID.
func (c *AccessTokenClaims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.RegisteredClaims.Subject)
}

// SessionUUID parses the jti claim as a UUID.
func (c *AccessTokenClaims) SessionUUID() (uuid.UUID, error) {
	return uuid.Parse(c.RegisteredClaims.ID)
}

// Expires returns the expiration time.
func (c *AccessTokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// Validate enforces the structural constraints independent of signature
// validity: jti and iss non-empty, sub a parseable UUID, iat and exp
// present as integer timestamps. Applied both before signing and after
// decoding.
func (c *AccessTokenClaims) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.ID, validation.Required, is.UUID),
		validation.Field(&c.Issuer, validation.Required),
		validation.Field(&c.Subject, validation.Required, is.UUID),
	)
	if err == nil && c.RegisteredClaims.IssuedAt == nil {
		err = validation.Errors{"iat": fmt.Errorf("cannot be blank")}
	}
	if err == nil && c.RegisteredClaims.ExpiresAt == nil {
		err = validation.Errors{"exp": fmt.Errorf("cannot be blank")}
	}

	if err != nil {
		return errors.Wrap(err, ErrInvalidClaims.Category, ErrInvalidClaims.Message).
			WithTextCode(ErrInvalidClaims.TextCode).
			WithCode(errors.CodeBadRequest)
	}

	return nil
}
