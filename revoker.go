package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Revoker terminates a session's usability: the refresh credential is
// deleted and a blacklist marker is inserted, so the still-signed access
// token is rejected on every later request until it expires naturally.
// There is no way back from revoked.
type Revoker struct {
	repo            RepositoryManager
	tokenExpiration int
	logger          Logger
}

// NewRevoker creates a Revoker from the process configuration.
func NewRevoker(repo RepositoryManager, cfg Config, logger Logger) *Revoker {
	if logger == nil {
		logger = defLogger{}
	}
	return &Revoker{
		repo:            repo,
		tokenExpiration: cfg.GetTokenExpiration(),
		logger:          logger,
	}
}

// Revoke blacklists the session named by jti. Unknown sessions fail the
// same as invalid credentials so session ids cannot be probed. A second
// revoke fails with ErrTokenAlreadyRevoked; callers may want to detect
// replayed logout calls rather than have them silently succeed.
func (r *Revoker) Revoke(ctx context.Context, jti uuid.UUID) error {
	session, err := r.repo.Sessions().GetByJTI(ctx, jti)
	if err != nil {
		if errors.IsNotFound(err) {
			return ErrInvalidAccessToken
		}
		return err
	}

	if session.Revoked() {
		return ErrTokenAlreadyRevoked
	}

	expiresAt := time.Now().Add(time.Duration(r.tokenExpiration) * time.Hour)

	return r.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := r.repo.Sessions().DeleteRefreshTokenTx(ctx, tx, session.JTI); err != nil {
			return err
		}

		_, err := r.repo.Sessions().AttachRevokedTokenTx(ctx, tx, session.JTI, expiresAt)
		return err
	})
}
