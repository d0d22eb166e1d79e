package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/access")
	t.Setenv("TOKEN_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, "8080", cfg.HTTPPort)
	require.Equal(t, time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, 5*time.Minute, cfg.LicenseCacheTTL)
	require.Equal(t, 600, cfg.RateLimitRPM)
	require.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/access")
	t.Setenv("TOKEN_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("LICENSE_CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_RPM", "120")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.payaid.test, https://admin.payaid.test")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 30*time.Second, cfg.LicenseCacheTTL)
	require.Equal(t, 120, cfg.RateLimitRPM)
	require.Equal(t, []string{"https://app.payaid.test", "https://admin.payaid.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TOKEN_SECRET", "0123456789abcdef0123456789abcdef")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadRequiresStrongSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/access")
	t.Setenv("TOKEN_SECRET", "short")

	_, err := config.Load()
	require.Error(t, err)
}
