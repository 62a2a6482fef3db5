package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenCodec is the symmetric encode/decode pair for access tokens. Pure:
// no storage access, no side effects. Signing key and issuer are captured
// once at construction and immutable thereafter.
type TokenCodec struct {
	signingKey      []byte
	issuer          string
	tokenExpiration int
	logger          Logger
}

// NewTokenCodec creates a codec from the process configuration.
func NewTokenCodec(cfg Config, logger Logger) *TokenCodec {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenCodec{
		signingKey:      []byte(cfg.GetSigningKey()),
		issuer:          cfg.GetIssuer(),
		tokenExpiration: cfg.GetTokenExpiration(),
		logger:          logger,
	}
}

// TokenTTL is the configured access token lifetime.
func (tc *TokenCodec) TokenTTL() time.Duration {
	return time.Duration(tc.tokenExpiration) * time.Hour
}

// Issuer is the configured issuer string.
func (tc *TokenCodec) Issuer() string {
	return tc.issuer
}

// EncodeForSession builds freshly dated claims for the (user, session)
// pair and signs them.
func (tc *TokenCodec) EncodeForSession(userID, jti uuid.UUID) (string, *AccessTokenClaims, error) {
	claims := NewAccessTokenClaims(userID, jti, tc.issuer, time.Now(), tc.TokenTTL())
	token, err := tc.Encode(claims)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Encode validates the structural constraints and signs the claims with
// HS256.
func (tc *TokenCodec) Encode(claims *AccessTokenClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	if err := claims.Validate(); err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(tc.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign access token")
	}

	return signed, nil
}

// Decode parses and verifies a raw token string. Signature, issuer, and
// expiry are checked by the parser; structural constraints are enforced
// on the decoded claims afterwards.
func (tc *TokenCodec) Decode(raw string) (*AccessTokenClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &AccessTokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			tc.logger.Error("TokenCodec decode encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tc.signingKey, nil
	}, jwt.WithIssuer(tc.issuer))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, ErrIssuerMismatch
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	claims, ok := token.Claims.(*AccessTokenClaims)
	if !ok || !token.Valid {
		tc.logger.Error("TokenCodec decode could not recover claims")
		return nil, ErrTokenMalformed
	}

	if err := claims.Validate(); err != nil {
		return nil, err
	}

	return claims, nil
}
