package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Sessions is the session registry: one consistent unit over the session
// row, its refresh credential, and its blacklist marker. State-mutating
// operations take a bun.IDB so callers can scope them to a transaction.
type Sessions interface {
	Create(ctx context.Context, userID uuid.UUID) (*Session, error)
	CreateTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) (*Session, error)

	// Get requires both identifiers to match, preventing cross-user
	// session confusion. Dependent rows are eagerly loaded.
	Get(ctx context.Context, jti, userID uuid.UUID) (*Session, error)
	GetByJTI(ctx context.Context, jti uuid.UUID) (*Session, error)

	AttachRefreshTokenTx(ctx context.Context, tx bun.IDB, jti uuid.UUID, hashedToken string, expiresAt time.Time) (*RefreshToken, error)
	AttachRevokedTokenTx(ctx context.Context, tx bun.IDB, jti uuid.UUID, expiresAt time.Time) (*RevokedToken, error)

	GetRefreshTokenByHash(ctx context.Context, hashedToken string) (*RefreshToken, error)
	DeleteRefreshTokenTx(ctx context.Context, tx bun.IDB, jti uuid.UUID) error

	DeleteForUser(ctx context.Context, userID uuid.UUID) error
	DeleteForUserTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) error

	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}

type sessions struct {
	db *bun.DB
}

var _ Sessions = (*sessions)(nil)

// NewSessionsRepository builds the session registry over a bun.DB.
func NewSessionsRepository(db *bun.DB) Sessions {
	return &sessions{db: db}
}

func (r *sessions) Create(ctx context.Context, userID uuid.UUID) (*Session, error) {
	var record *Session
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		record, err = r.CreateTx(ctx, tx, userID)
		return err
	})
	return record, err
}

// CreateTx destroys any prior session for the user, dependents included,
// then inserts a fresh row. The unique constraint on user_id backs this
// up under concurrent logins: two racing transactions cannot both commit
// a live row, the loser surfaces a constraint violation.
func (r *sessions) CreateTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) (*Session, error) {
	if err := r.DeleteForUserTx(ctx, tx, userID); err != nil {
		return nil, err
	}

	record := &Session{
		JTI:    uuid.New(),
		UserID: userID,
	}

	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create session")
	}

	return record, nil
}

func (r *sessions) Get(ctx context.Context, jti, userID uuid.UUID) (*Session, error) {
	record := &Session{}
	err := r.db.NewSelect().
		Model(record).
		Relation("User").
		Relation("RefreshToken").
		Relation("RevokedToken").
		Where("?TableAlias.jti = ? AND ?TableAlias.user_id = ?", jti.String(), userID.String()).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, wrapSessionLookupErr(err, jti)
	}

	return record, nil
}

func (r *sessions) GetByJTI(ctx context.Context, jti uuid.UUID) (*Session, error) {
	record := &Session{}
	err := r.db.NewSelect().
		Model(record).
		Relation("User").
		Relation("RefreshToken").
		Relation("RevokedToken").
		Where("?TableAlias.jti = ?", jti.String()).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, wrapSessionLookupErr(err, jti)
	}

	return record, nil
}

func (r *sessions) AttachRefreshTokenTx(ctx context.Context, tx bun.IDB, jti uuid.UUID, hashedToken string, expiresAt time.Time) (*RefreshToken, error) {
	record := &RefreshToken{
		JTI:         jti,
		HashedToken: hashedToken,
		ExpiresAt:   expiresAt,
	}

	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to store refresh credential")
	}

	return record, nil
}

// AttachRevokedTokenTx inserts the blacklist marker. At most one per
// session; a duplicate attempt fails with ErrTokenAlreadyRevoked.
func (r *sessions) AttachRevokedTokenTx(ctx context.Context, tx bun.IDB, jti uuid.UUID, expiresAt time.Time) (*RevokedToken, error) {
	count, err := tx.NewSelect().
		Model((*RevokedToken)(nil)).
		Where("?TableAlias.jti = ?", jti.String()).
		Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check blacklist marker")
	}

	if count > 0 {
		return nil, ErrTokenAlreadyRevoked
	}

	record := &RevokedToken{
		JTI:       jti,
		ExpiresAt: expiresAt,
	}

	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to store blacklist marker")
	}

	return record, nil
}

func (r *sessions) GetRefreshTokenByHash(ctx context.Context, hashedToken string) (*RefreshToken, error) {
	record := &RefreshToken{}
	err := r.db.NewSelect().
		Model(record).
		Relation("Session").
		Relation("Session.User").
		Where("?TableAlias.hashed_token = ?", hashedToken).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(err, errors.CategoryNotFound, "refresh credential not found")
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load refresh credential")
	}

	return record, nil
}

func (r *sessions) DeleteRefreshTokenTx(ctx context.Context, tx bun.IDB, jti uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*RefreshToken)(nil)).
		Where("?TableAlias.jti = ?", jti.String()).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete refresh credential")
	}
	return nil
}

func (r *sessions) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return r.DeleteForUserTx(ctx, tx, userID)
	})
}

// DeleteForUserTx cascades at the application level, mirroring the
// ownership contract: dependents first, then the session row.
func (r *sessions) DeleteForUserTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) error {
	var jtis []uuid.UUID
	err := tx.NewSelect().
		Model((*Session)(nil)).
		Column("jti").
		Where("?TableAlias.user_id = ?", userID.String()).
		Scan(ctx, &jtis)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(err, errors.CategoryInternal, "failed to find sessions for user")
	}

	if len(jtis) == 0 {
		return nil
	}

	if _, err := tx.NewDelete().
		Model((*RefreshToken)(nil)).
		Where("?TableAlias.jti IN (?)", bun.In(jtiStrings(jtis))).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete refresh credentials")
	}

	if _, err := tx.NewDelete().
		Model((*RevokedToken)(nil)).
		Where("?TableAlias.jti IN (?)", bun.In(jtiStrings(jtis))).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete blacklist markers")
	}

	if _, err := tx.NewDelete().
		Model((*Session)(nil)).
		Where("?TableAlias.user_id = ?", userID.String()).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete sessions")
	}

	return nil
}

// PurgeExpired is the explicit maintenance pass: sessions whose blacklist
// marker expired are dead weight and are removed with their dependents,
// as are orphan-expiry refresh credentials. Returns the number of
// sessions removed.
func (r *sessions) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	purged := 0

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var jtis []uuid.UUID
		err := tx.NewSelect().
			Model((*RevokedToken)(nil)).
			Column("jti").
			Where("?TableAlias.expires_at < ?", now).
			Scan(ctx, &jtis)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return errors.Wrap(err, errors.CategoryInternal, "failed to find expired blacklist markers")
		}

		if len(jtis) > 0 {
			ids := jtiStrings(jtis)

			if _, err := tx.NewDelete().
				Model((*RefreshToken)(nil)).
				Where("?TableAlias.jti IN (?)", bun.In(ids)).
				Exec(ctx); err != nil {
				return errors.Wrap(err, errors.CategoryInternal, "failed to purge refresh credentials")
			}

			if _, err := tx.NewDelete().
				Model((*RevokedToken)(nil)).
				Where("?TableAlias.jti IN (?)", bun.In(ids)).
				Exec(ctx); err != nil {
				return errors.Wrap(err, errors.CategoryInternal, "failed to purge blacklist markers")
			}

			if _, err := tx.NewDelete().
				Model((*Session)(nil)).
				Where("?TableAlias.jti IN (?)", bun.In(ids)).
				Exec(ctx); err != nil {
				return errors.Wrap(err, errors.CategoryInternal, "failed to purge sessions")
			}

			purged = len(ids)
		}

		if _, err := tx.NewDelete().
			Model((*RefreshToken)(nil)).
			Where("?TableAlias.expires_at < ?", now).
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to purge expired refresh credentials")
		}

		return nil
	})

	return purged, err
}

func wrapSessionLookupErr(err error, jti uuid.UUID) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(err, errors.CategoryNotFound, "session not found").
			WithMetadata(map[string]any{"jti": jti.String()})
	}
	return errors.Wrap(err, errors.CategoryInternal, "failed to load session")
}

func jtiStrings(jtis []uuid.UUID) []string {
	out := make([]string, len(jtis))
	for i, id := range jtis {
		out[i] = id.String()
	}
	return out
}
