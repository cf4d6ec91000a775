package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/scribe")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("JWT_TTL", "2h")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/scribe", cfg.Database.URL)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr())
	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "./media", cfg.Media.Root)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/scribe")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Metrics.Enabled)
	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_RequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/scribe")
	t.Setenv("JWT_SECRET", "")

	_, err := load(viper.New())
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_RejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/scribe")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := load(viper.New())
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got, err := LogConfig{Level: tt.level}.SlogLevel()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLogLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
