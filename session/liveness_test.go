package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-shortlink-client/session"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestIsLiveAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("token expiring in the future is live", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
		require.True(t, session.IsLiveAt(token, now))
	})

	t.Run("expired token is not live", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": now.Add(-10 * time.Second).Unix()})
		require.False(t, session.IsLiveAt(token, now))
	})

	t.Run("expiry exactly now is not live", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": now.Unix()})
		require.False(t, session.IsLiveAt(token, now))
	})

	t.Run("empty token is not live", func(t *testing.T) {
		require.False(t, session.IsLiveAt("", now))
		require.False(t, session.IsLiveAt("   ", now))
	})

	t.Run("malformed token degrades to not live", func(t *testing.T) {
		require.False(t, session.IsLiveAt("not-a-jwt", now))
		require.False(t, session.IsLiveAt("a.b", now))
		require.False(t, session.IsLiveAt("a.%%%.c", now))
	})

	t.Run("token without an exp claim is not live", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": "user-1"})
		require.False(t, session.IsLiveAt(token, now))
	})
}
