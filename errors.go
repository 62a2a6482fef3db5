package auth

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidAccessToken  = "auth_invalid_access_token"
	TextCodeInvalidRefreshToken = "auth_invalid_refresh_token"
	TextCodeTokenAlreadyRevoked = "auth_token_already_revoked"
	TextCodeInvalidUser         = "auth_invalid_user"
	TextCodeInvalidCredentials  = "auth_invalid_credentials"
	TextCodeInvalidClaims       = "auth_invalid_claims"
	TextCodeTokenMalformed      = "auth_token_malformed"
	TextCodeBadSignature        = "auth_bad_signature"
	TextCodeIssuerMismatch      = "auth_issuer_mismatch"
)

// ErrInvalidAccessToken is the single externally visible error for any
// unusable bearer credential: malformed header, bad signature, unknown
// user, unknown or revoked session. The specific reason is never exposed.
var ErrInvalidAccessToken = errors.New("invalid access token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidAccessToken).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidRefreshToken covers both unknown and expired refresh secrets;
// callers cannot distinguish the two cases.
var ErrInvalidRefreshToken = errors.New("invalid refresh token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidRefreshToken).
	WithCode(errors.CodeUnauthorized)

// ErrTokenAlreadyRevoked is returned on a second revocation of the same
// session. Differentiated so clients can detect replayed logout calls.
var ErrTokenAlreadyRevoked = errors.New("token already revoked", errors.CategoryConflict).
	WithTextCode(TextCodeTokenAlreadyRevoked).
	WithCode(errors.CodeConflict)

// ErrInvalidUser is a programmer error: issuance attempted without a user.
var ErrInvalidUser = errors.New("invalid user", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidUser).
	WithCode(errors.CodeBadRequest)

// ErrInvalidCredentials is returned on login when the email is unknown or
// the password does not match; the two cases are not differentiated.
var ErrInvalidCredentials = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidClaims signals claims that fail structural validation, before
// signing or after decoding.
var ErrInvalidClaims = errors.New("invalid token claims", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidClaims).
	WithCode(errors.CodeBadRequest)

// ErrTokenMalformed signals input that does not parse as a signed token.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired signals an access token past its exp claim.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode("auth_token_expired").
	WithCode(errors.CodeUnauthorized)

// ErrBadSignature signals a token whose signature does not verify under
// the configured signing secret.
var ErrBadSignature = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeBadSignature).
	WithCode(errors.CodeUnauthorized)

// ErrIssuerMismatch signals a decoded issuer different from the configured
// issuer.
var ErrIssuerMismatch = errors.New("token issuer mismatch", errors.CategoryAuth).
	WithTextCode(TextCodeIssuerMismatch).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the normalized bcrypt mismatch error.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)
