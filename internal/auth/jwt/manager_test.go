package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(accessExpiry time.Duration) *Manager {
	return NewManager("test-secret-at-least-32-characters!!", "mailgate", accessExpiry, 24*time.Hour)
}

func TestManager(t *testing.T) {
	t.Run("令牌对可签发并验证", func(t *testing.T) {
		m := newTestManager(15 * time.Minute)
		pair, err := m.GenerateTokenPair("acct-1", "jdoe@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, int64(900), pair.ExpiresIn)

		claims, err := m.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "acct-1", claims.AccountID())
		assert.Equal(t, "jdoe@example.com", claims.Email)
		assert.Equal(t, "mailgate", claims.Issuer)
	})

	t.Run("刷新令牌不能当访问令牌用", func(t *testing.T) {
		m := newTestManager(15 * time.Minute)
		pair, err := m.GenerateTokenPair("acct-1", "jdoe@example.com")
		require.NoError(t, err)

		_, err = m.ValidateToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrWrongTokenUse)
	})

	t.Run("访问令牌不能用于刷新", func(t *testing.T) {
		m := newTestManager(15 * time.Minute)
		pair, err := m.GenerateTokenPair("acct-1", "jdoe@example.com")
		require.NoError(t, err)

		_, err = m.RefreshAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrWrongTokenUse)
	})

	t.Run("刷新得到新的有效访问令牌", func(t *testing.T) {
		m := newTestManager(15 * time.Minute)
		pair, err := m.GenerateTokenPair("acct-1", "jdoe@example.com")
		require.NoError(t, err)

		accessToken, err := m.RefreshAccessToken(pair.RefreshToken)
		require.NoError(t, err)

		claims, err := m.ValidateToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, "acct-1", claims.AccountID())
	})

	t.Run("过期令牌被拒绝", func(t *testing.T) {
		m := newTestManager(-time.Minute)
		pair, err := m.GenerateTokenPair("acct-1", "jdoe@example.com")
		require.NoError(t, err)

		_, err = m.ValidateToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("伪造令牌被拒绝", func(t *testing.T) {
		m := newTestManager(15 * time.Minute)
		other := NewManager("another-secret-also-32-characters!!!", "mailgate", 15*time.Minute, 24*time.Hour)
		pair, err := other.GenerateTokenPair("acct-1", "jdoe@example.com")
		require.NoError(t, err)

		_, err = m.ValidateToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)

		_, err = m.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
