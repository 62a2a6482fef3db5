package auth

import (
	"context"
	"regexp"

	"github.com/goliatone/go-errors"
)

// bearerTokenPattern is the strict shape of an acceptable Authorization
// header value: the scheme followed by three dot-separated base64url
// segments and nothing else.
var bearerTokenPattern = regexp.MustCompile(`^Bearer\s([\w-]+\.[\w-]+\.[\w-]+)$`)

// AuthenticatedSession is the result of a successful per-request check:
// the resolved user plus the decoded claims for the rest of the request.
type AuthenticatedSession struct {
	User   *User
	Claims *AccessTokenClaims
}

// Auther is the per-request gate and the password login entry point. On
// every authenticated request it decodes the access token and then
// cross-checks the session registry and blacklist; a signed token alone
// is never sufficient.
type Auther struct {
	repo   RepositoryManager
	codec  *TokenCodec
	issuer *Issuer
	logger Logger
}

// NewAuther wires the authenticator from the process configuration.
func NewAuther(repo RepositoryManager, cfg Config, logger Logger) *Auther {
	if logger == nil {
		logger = defLogger{}
	}
	return &Auther{
		repo:   repo,
		codec:  NewTokenCodec(cfg, logger),
		issuer: NewIssuer(repo, cfg, logger),
		logger: logger,
	}
}

// Codec exposes the token codec used by this authenticator.
func (s *Auther) Codec() *TokenCodec {
	return s.codec
}

// Login verifies the email/password pair and issues a fresh credential
// pair. Unknown email and wrong password fail identically.
func (s *Auther) Login(ctx context.Context, email, password string) (*Credentials, error) {
	user, err := s.repo.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			s.logger.Info("login failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			s.logger.Info("login failed: password mismatch", "user_id", user.ID)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issuer.Issue(ctx, user)
}

// ExtractBearerToken pulls the raw access token out of an Authorization
// header value; anything that does not match the strict bearer shape is
// rejected.
func ExtractBearerToken(header string) (string, error) {
	matches := bearerTokenPattern.FindStringSubmatch(header)
	if matches == nil {
		return "", ErrInvalidAccessToken
	}
	return matches[1], nil
}

// Authenticate admits or rejects a request based on its raw Authorization
// header value. All credential-level failures, header shape, signature,
// issuer, unknown user, unknown or revoked session, collapse into
// ErrInvalidAccessToken; only storage failures surface separately.
func (s *Auther) Authenticate(ctx context.Context, authorization string) (*AuthenticatedSession, error) {
	raw, err := ExtractBearerToken(authorization)
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	claims, err := s.codec.Decode(raw)
	if err != nil {
		if isStorageErr(err) {
			return nil, err
		}
		s.logger.Debug("token decode rejected", "reason", err)
		return nil, ErrInvalidAccessToken
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	jti, err := claims.SessionUUID()
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	exists, err := s.repo.Users().Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Debug("token references missing user", "user_id", userID)
		return nil, ErrInvalidAccessToken
	}

	// Both identifiers must match; a jti alone could be replayed against
	// another user's account.
	session, err := s.repo.Sessions().Get(ctx, jti, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidAccessToken
		}
		return nil, err
	}

	if session.Revoked() {
		s.logger.Debug("token for revoked session rejected", "jti", jti)
		return nil, ErrInvalidAccessToken
	}

	return &AuthenticatedSession{
		User:   session.User,
		Claims: claims,
	}, nil
}

func isStorageErr(err error) bool {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryInternal
	}
	return false
}
