package auth

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserHandler(t *testing.T) {
	repo, cleanup := setupRepoManager(t)
	defer cleanup()

	ctx := context.Background()
	handler := NewRegisterUserHandler(repo)

	err := handler.Execute(ctx, RegisterUserMessage{
		Email:    "ada@example.com",
		Password: "sup3rs3cret!",
	})
	require.NoError(t, err)

	user, err := repo.Users().GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, user.Role)
	require.NoError(t, ComparePasswordAndHash("sup3rs3cret!", user.PasswordHash))

	t.Run("empty password rejected", func(t *testing.T) {
		err := handler.Execute(ctx, RegisterUserMessage{
			Email: "grace@example.com",
		})
		require.Error(t, err)

		_, err = repo.Users().GetByEmail(ctx, "grace@example.com")
		require.Error(t, err)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		err := handler.Execute(ctx, RegisterUserMessage{
			Email:    "ada@example.com",
			Password: "another-password",
		})
		require.Error(t, err)
	})

	t.Run("hashid derives a stable id", func(t *testing.T) {
		err := handler.Execute(ctx, RegisterUserMessage{
			Email:     "stable@example.com",
			Password:  "sup3rs3cret!",
			UseHashid: true,
		})
		require.NoError(t, err)

		expected, err := hashid.NewUUID("stable@example.com")
		require.NoError(t, err)

		user, err := repo.Users().GetByEmail(ctx, "stable@example.com")
		require.NoError(t, err)
		assert.Equal(t, expected, user.ID)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		err := handler.Execute(cancelled, RegisterUserMessage{
			Email:    "late@example.com",
			Password: "sup3rs3cret!",
		})
		require.Error(t, err)
	})
}

func TestPurgeExpiredTokensHandler(t *testing.T) {
	repo, cleanup := setupRepoManager(t)
	defer cleanup()

	ctx := context.Background()
	cfg := testConfig()
	issuer := NewIssuer(repo, cfg, nil)
	revoker := NewRevoker(repo, cfg, nil)
	codec := NewTokenCodec(cfg, nil)
	handler := NewPurgeExpiredTokensHandler(repo, nil)

	user := seedUser(t, repo, "ada@example.com")

	creds, err := issuer.Issue(ctx, user)
	require.NoError(t, err)

	claims, err := codec.Decode(creds.AccessToken)
	require.NoError(t, err)
	jti, err := claims.SessionUUID()
	require.NoError(t, err)

	require.NoError(t, revoker.Revoke(ctx, jti))

	// marker not yet expired, nothing to purge
	require.NoError(t, handler.Execute(ctx, PurgeExpiredTokensMessage{}))
	_, err = repo.Sessions().GetByJTI(ctx, jti)
	require.NoError(t, err)

	// once the marker lapses the whole session row goes away
	future := time.Now().Add(time.Duration(cfg.GetTokenExpiration()+1) * time.Hour)
	require.NoError(t, handler.Execute(ctx, PurgeExpiredTokensMessage{Before: future}))

	_, err = repo.Sessions().GetByJTI(ctx, jti)
	require.Error(t, err)
}
