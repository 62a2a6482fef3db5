package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() SimpleConfig {
	return SimpleConfig{
		SigningKey: "test-signing-key",
		Issuer:     "test-app",
	}
}

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := NewTokenCodec(testConfig(), nil)

	userID := uuid.New()
	jti := uuid.New()

	token, claims, err := codec.EncodeForSession(userID, jti)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Len(t, strings.Split(token, "."), 3)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), decoded.UserID())
	assert.Equal(t, jti.String(), decoded.SessionID())
	assert.Equal(t, "test-app", decoded.Issuer)
	assert.WithinDuration(t, claims.Expires(), decoded.Expires(), time.Second)
}

func TestTokenCodecEncodeRejectsBadClaims(t *testing.T) {
	codec := NewTokenCodec(testConfig(), nil)

	t.Run("nil claims", func(t *testing.T) {
		_, err := codec.Encode(nil)
		require.Error(t, err)
	})

	t.Run("structurally invalid claims", func(t *testing.T) {
		claims := NewAccessTokenClaims(uuid.New(), uuid.New(), "", time.Now(), time.Hour)
		_, err := codec.Encode(claims)
		require.Error(t, err)
	})
}

func TestTokenCodecDecodeRejections(t *testing.T) {
	codec := NewTokenCodec(testConfig(), nil)

	token, _, err := codec.EncodeForSession(uuid.New(), uuid.New())
	require.NoError(t, err)

	t.Run("malformed input", func(t *testing.T) {
		_, err := codec.Decode("not-a-token")
		require.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("tampered signature", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)

		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)

		_, err := codec.Decode(tampered)
		require.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewTokenCodec(SimpleConfig{SigningKey: "another-key", Issuer: "test-app"}, nil)
		_, err := other.Decode(token)
		require.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		other := NewTokenCodec(SimpleConfig{SigningKey: "test-signing-key", Issuer: "another-app"}, nil)
		_, err := other.Decode(token)
		require.ErrorIs(t, err, ErrIssuerMismatch)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := NewAccessTokenClaims(uuid.New(), uuid.New(), "test-app", time.Now().Add(-2*time.Hour), time.Hour)
		expired, err := codec.Encode(claims)
		require.NoError(t, err)

		_, err = codec.Decode(expired)
		require.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestTokenCodecTTLFromConfig(t *testing.T) {
	codec := NewTokenCodec(SimpleConfig{SigningKey: "k", Issuer: "i", TokenExpiration: 2}, nil)
	assert.Equal(t, 2*time.Hour, codec.TokenTTL())

	fallback := NewTokenCodec(SimpleConfig{SigningKey: "k", Issuer: "i"}, nil)
	assert.Equal(t, time.Duration(DefaultTokenExpiration)*time.Hour, fallback.TokenTTL())
}
