// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/viralboost/internal/config"
	"github.com/carterperez-dev/viralboost/internal/core"
)

var testJWTConfig = config.JWTConfig{
	AccessTokenExpire:  15 * time.Minute,
	RefreshTokenExpire: 7 * 24 * time.Hour,
	Issuer:             "viralboost-test",
	Audience:           "viralboost-api",
}

func newTestJWT(t *testing.T) *JWTManager {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	m, err := NewJWTManagerFromKey(key, testJWTConfig)
	require.NoError(t, err)
	return m
}

type staticRevocations map[string]bool

func (s staticRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	return s[jti], nil
}

type failingRevocations struct{}

func (failingRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("dial tcp 127.0.0.1:1: connect: connection refused")
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestJWT(t)

	access, err := m.CreateAccessToken("user-1", "user")
	require.NoError(t, err)
	assert.NotEmpty(t, access.ID)

	claims, err := m.VerifyAccessToken(context.Background(), access.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, access.ID, claims.TokenID)
	assert.WithinDuration(t, access.ExpiresAt, claims.ExpiresAt, time.Second)
}

func TestVerifyAccessTokenRejects(t *testing.T) {
	m := newTestJWT(t)

	t.Run("garbage", func(t *testing.T) {
		_, err := m.VerifyAccessToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, core.ErrTokenInvalid)
	})

	t.Run("other key", func(t *testing.T) {
		access, err := newTestJWT(t).CreateAccessToken("user-1", "user")
		require.NoError(t, err)

		_, err = m.VerifyAccessToken(context.Background(), access.Token)
		assert.ErrorIs(t, err, core.ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		m.now = func() time.Time { return time.Now().Add(-time.Hour) }
		t.Cleanup(func() { m.now = time.Now })

		access, err := m.CreateAccessToken("user-1", "user")
		require.NoError(t, err)

		m.now = time.Now
		_, err = m.VerifyAccessToken(context.Background(), access.Token)
		assert.ErrorIs(t, err, core.ErrTokenExpired)
	})

	t.Run("revoked", func(t *testing.T) {
		access, err := m.CreateAccessToken("user-1", "user")
		require.NoError(t, err)

		m.WithRevocations(staticRevocations{access.ID: true})
		t.Cleanup(func() { m.revoked = nil })

		_, err = m.VerifyAccessToken(context.Background(), access.Token)
		assert.ErrorIs(t, err, core.ErrTokenRevoked)
	})

	t.Run("revocation store down accepts token", func(t *testing.T) {
		access, err := m.CreateAccessToken("user-1", "user")
		require.NoError(t, err)

		m.WithRevocations(failingRevocations{})
		t.Cleanup(func() { m.revoked = nil })

		claims, err := m.VerifyAccessToken(context.Background(), access.Token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
	})
}

func TestCreateRefreshTokenKeepsFamily(t *testing.T) {
	m := newTestJWT(t)

	first, err := m.CreateRefreshToken("")
	require.NoError(t, err)
	assert.NotEmpty(t, first.FamilyID)
	assert.Equal(t, core.HashToken(first.Token), first.Hash)

	next, err := m.CreateRefreshToken(first.FamilyID)
	require.NoError(t, err)
	assert.Equal(t, first.FamilyID, next.FamilyID)
	assert.NotEqual(t, first.Token, next.Token)
}

func TestJWKSHandler(t *testing.T) {
	m := newTestJWT(t)

	rec := httptest.NewRecorder()
	m.JWKSHandler(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Keys, 1)
	assert.Equal(t, "EC", body.Keys[0]["kty"])
	assert.NotContains(t, body.Keys[0], "d")
}

func TestEnsurePrivateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "private.pem")

	created, err := EnsurePrivateKey(path)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsurePrivateKey(path)
	require.NoError(t, err)
	assert.False(t, created)

	cfg := testJWTConfig
	cfg.PrivateKeyPath = path
	_, err = NewJWTManager(cfg)
	assert.NoError(t, err)
}

func TestNewJWTManagerMissingKey(t *testing.T) {
	cfg := testJWTConfig
	cfg.PrivateKeyPath = filepath.Join(t.TempDir(), "missing.pem")

	_, err := NewJWTManager(cfg)
	require.Error(t, err)
	assert.False(t, errors.Is(err, core.ErrTokenInvalid))
}
