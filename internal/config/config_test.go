package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv はテストに影響する環境変数を空にする
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT", "GIN_MODE", "SHUTDOWN_TIMEOUT", "SUBTITLE", "NAME",
		"LOG_LEVEL", "LOG_FORMAT", "TRACING_ENABLED", "OTEL_SERVICE_NAME",
	} {
		t.Setenv(key, "")
	}
}

// TestConfigLoad は設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err, "設定の読み込みに失敗しました")
	require.NotNil(t, cfg)

	// デフォルト値の検証
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.True(t, cfg.Server.ReadTimeout > 0)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DefaultSubtitle, cfg.Page.Subtitle)
	assert.Equal(t, UnknownValue, cfg.Page.PodName)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Telemetry.Enabled)
}

// TestPortFromEnvironment はPORTの解釈をテストする
func TestPortFromEnvironment(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected int
	}{
		{"未設定", "", 3000},
		{"数値", "8080", 8080},
		{"数値以外", "notanumber", 3000},
		{"数値の後ろにゴミ", "8080abc", 3000},
		{"範囲外", "99999", 3000},
		{"ゼロ", "0", 3000},
		{"負数", "-1", 3000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", tc.value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg.Server.Port)
		})
	}
}

// TestSubtitleFromEnvironment はSUBTITLEの解釈をテストする
func TestSubtitleFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUBTITLE", "X")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "X", cfg.Page.Subtitle)
}

// TestEnvironmentVariables は環境変数の処理をテストする
func TestEnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "test.example.com")
	t.Setenv("PORT", "9999")
	t.Setenv("NAME", "web-7c9d")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("TRACING_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test.example.com", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "web-7c9d", cfg.Page.PodName)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Telemetry.Enabled)
}

// TestInvalidShutdownTimeoutFallsBack は不正なSHUTDOWN_TIMEOUTがデフォルトに戻ることをテストする
func TestInvalidShutdownTimeoutFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

// TestInvalidEnvironmentFallsBack は不正な環境変数がエラーにならずデフォルトに戻ることをテストする
func TestInvalidEnvironmentFallsBack(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
		get   func(c *Config) string
		want  string
	}{
		{"ログレベル", "LOG_LEVEL", "loud", func(c *Config) string { return c.Log.Level }, "info"},
		{"ログフォーマット", "LOG_FORMAT", "xml", func(c *Config) string { return c.Log.Format }, "json"},
		{"ginモード", "GIN_MODE", "fast", func(c *Config) string { return c.Server.Mode }, "release"},
		{"有効なginモード", "GIN_MODE", "debug", func(c *Config) string { return c.Server.Mode }, "debug"},
		{"有効なログレベル", "LOG_LEVEL", "warn", func(c *Config) string { return c.Log.Level }, "warn"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tc.want, tc.get(cfg))
		})
	}
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Host: "localhost", Port: 8080, Mode: "release", ShutdownTimeout: time.Second},
			Log:    LogConfig{Level: "info", Format: "json"},
		}
	}

	testCases := []struct {
		name      string
		mutate    func(c *Config)
		expectErr bool
	}{
		{"正常な設定", func(c *Config) {}, false},
		{"無効なポート番号", func(c *Config) { c.Server.Port = 99999 }, true},
		{"ポート番号ゼロ", func(c *Config) { c.Server.Port = 0 }, true},
		{"不明なginモード", func(c *Config) { c.Server.Mode = "fast" }, true},
		{"タイムアウトなし", func(c *Config) { c.Server.ShutdownTimeout = 0 }, true},
		{"不明なログレベル", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"不明なログフォーマット", func(c *Config) { c.Log.Format = "xml" }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestServerAddress はサーバーアドレスの生成をテストする
func TestServerAddress(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Host: "192.168.1.100",
			Port: 9090,
		},
	}

	assert.Equal(t, "192.168.1.100:9090", cfg.ServerAddress())
}
