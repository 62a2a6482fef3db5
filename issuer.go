package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Issuer is the login-time flow: it creates the session, stores the
// hashed refresh credential, and signs the first access token, all inside
// one transaction. The caller has already verified the password.
type Issuer struct {
	repo              RepositoryManager
	codec             *TokenCodec
	signingKey        []byte
	refreshExpiration int
	logger            Logger
}

// NewIssuer creates an Issuer from the process configuration.
func NewIssuer(repo RepositoryManager, cfg Config, logger Logger) *Issuer {
	if logger == nil {
		logger = defLogger{}
	}
	return &Issuer{
		repo:              repo,
		codec:             NewTokenCodec(cfg, logger),
		signingKey:        []byte(cfg.GetSigningKey()),
		refreshExpiration: cfg.GetRefreshTokenExpiration(),
		logger:            logger,
	}
}

// RefreshTTL is the configured refresh credential lifetime.
func (i *Issuer) RefreshTTL() time.Duration {
	return time.Duration(i.refreshExpiration) * 24 * time.Hour
}

// Issue creates a fresh session for the user and returns the credential
// pair. Any prior session for the user is destroyed in the same
// transaction, so at most one session is live per user. The raw refresh
// secret is returned exactly once and never persisted.
func (i *Issuer) Issue(ctx context.Context, user *User) (*Credentials, error) {
	if user == nil || user.ID == uuid.Nil {
		i.logger.Error("Issue called without a user")
		return nil, ErrInvalidUser
	}

	rawSecret, err := GenerateRefreshSecret()
	if err != nil {
		return nil, err
	}
	hashedSecret := HashRefreshSecret(rawSecret, i.signingKey)

	var accessToken string
	err = i.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		session, err := i.repo.Sessions().CreateTx(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		expiresAt := time.Now().Add(i.RefreshTTL())
		if _, err := i.repo.Sessions().AttachRefreshTokenTx(ctx, tx, session.JTI, hashedSecret, expiresAt); err != nil {
			return err
		}

		accessToken, _, err = i.codec.EncodeForSession(user.ID, session.JTI)
		return err
	})

	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "session issuance failed")
	}

	return &Credentials{
		AccessToken:  accessToken,
		RefreshToken: rawSecret,
	}, nil
}
