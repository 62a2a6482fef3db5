package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// Refresher exchanges a valid refresh secret for a freshly dated access
// token. The session identity is unchanged: same jti, same stored secret.
// This is deliberately not a rotating scheme; a refresh extends access
// token validity and nothing else.
type Refresher struct {
	repo       RepositoryManager
	codec      *TokenCodec
	signingKey []byte
	logger     Logger
}

// NewRefresher creates a Refresher from the process configuration.
func NewRefresher(repo RepositoryManager, cfg Config, logger Logger) *Refresher {
	if logger == nil {
		logger = defLogger{}
	}
	return &Refresher{
		repo:       repo,
		codec:      NewTokenCodec(cfg, logger),
		signingKey: []byte(cfg.GetSigningKey()),
		logger:     logger,
	}
}

// Refresh validates the raw secret and returns a new access token plus
// the caller's refresh token, byte-identical. Unknown and expired secrets
// fail the same way so the two cases cannot be told apart.
func (r *Refresher) Refresh(ctx context.Context, rawSecret string) (*Credentials, error) {
	hashed := HashRefreshSecret(rawSecret, r.signingKey)

	credential, err := r.repo.Sessions().GetRefreshTokenByHash(ctx, hashed)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if credential.Expired(time.Now()) {
		return nil, ErrInvalidRefreshToken
	}

	if credential.Session == nil {
		r.logger.Error("refresh credential has no session loaded", "jti", credential.JTI)
		return nil, errors.New("refresh credential missing session", errors.CategoryInternal)
	}

	accessToken, _, err := r.codec.EncodeForSession(credential.Session.UserID, credential.JTI)
	if err != nil {
		return nil, err
	}

	return &Credentials{
		AccessToken:  accessToken,
		RefreshToken: rawSecret,
	}, nil
}
