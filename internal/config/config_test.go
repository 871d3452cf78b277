package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSecret(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Setenv("MAILGATE_JWT_SECRET", "unit-test-secret-with-enough-length!!")
}

func TestLoad(t *testing.T) {
	t.Run("默认配置", func(t *testing.T) {
		setSecret(t)
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "http://localhost:9090", cfg.Bridge.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Bridge.Timeout)
		assert.Equal(t, 5*time.Second, cfg.Discovery.Timeout)
		assert.Equal(t, time.Hour, cfg.Discovery.CacheTTL)
		assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
		assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
		assert.Equal(t, 1.0, cfg.RateLimit.LoginRPS)
		assert.Equal(t, 5, cfg.RateLimit.LoginBurst)
		assert.Empty(t, cfg.Log.File)
	})

	t.Run("环境变量覆盖默认值", func(t *testing.T) {
		setSecret(t)
		t.Setenv("MAILGATE_SERVER_PORT", "9999")
		t.Setenv("MAILGATE_BRIDGE_BASE_URL", "https://bridge.internal:8443")
		t.Setenv("MAILGATE_DISCOVERY_CACHE_TTL", "30m")
		t.Setenv("MAILGATE_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("MAILGATE_LOG_FILE", "/var/log/mailgate/server.log")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9999, cfg.Server.Port)
		assert.Equal(t, "https://bridge.internal:8443", cfg.Bridge.BaseURL)
		assert.Equal(t, 30*time.Minute, cfg.Discovery.CacheTTL)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
		assert.Equal(t, "/var/log/mailgate/server.log", cfg.Log.File)
	})

	t.Run("拒绝默认密钥", func(t *testing.T) {
		viper.Reset()
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SECURITY ERROR")
	})

	t.Run("拒绝过短密钥", func(t *testing.T) {
		viper.Reset()
		t.Setenv("MAILGATE_JWT_SECRET", "short")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32")
	})

	t.Run("拒绝非法桥接地址", func(t *testing.T) {
		setSecret(t)
		t.Setenv("MAILGATE_BRIDGE_BASE_URL", "bridge.internal:9090")
		_, err := Load()
		require.Error(t, err)
	})
}
