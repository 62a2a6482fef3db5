package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// PurgeExpiredTokensMessage asks for registry cleanup: sessions whose
// blacklist marker or refresh credential has expired are removed along
// with their attached rows. Zero Before means "now".
type PurgeExpiredTokensMessage struct {
	Before time.Time `json:"before"`
}

func (e PurgeExpiredTokensMessage) Type() string { return "auth.purge_expired_tokens" }

// PurgeExpiredTokensHandler runs the cleanup; meant to be scheduled
// periodically by the host application.
type PurgeExpiredTokensHandler struct {
	repo   RepositoryManager
	logger Logger
}

// NewPurgeExpiredTokensHandler builds the handler over a repository manager.
func NewPurgeExpiredTokensHandler(repo RepositoryManager, logger Logger) *PurgeExpiredTokensHandler {
	if logger == nil {
		logger = defLogger{}
	}
	return &PurgeExpiredTokensHandler{repo: repo, logger: logger}
}

func (h *PurgeExpiredTokensHandler) Execute(ctx context.Context, event PurgeExpiredTokensMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during token purge",
		)
	default:
	}

	before := event.Before
	if before.IsZero() {
		before = time.Now()
	}

	removed, err := h.repo.Sessions().PurgeExpired(ctx, before)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "token purge failed")
	}

	h.logger.Info("purged expired session state", "sessions", removed, "before", before)
	return nil
}
