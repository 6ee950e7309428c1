package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultPort は PORT が未設定または不正な場合に使うポート番号
	DefaultPort = 3000
	// DefaultSubtitle は SUBTITLE が未設定の場合に表示するサブタイトル
	DefaultSubtitle = "Kubernetes Workshop Example Application"
	// UnknownValue はホスト名やPod名が取得できない場合の値
	UnknownValue = "unknown"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Page      PageConfig      `yaml:"page"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号
	Mode string `yaml:"mode"` // ginのモード (release, debug, test)

	// タイムアウト設定
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // 読み込みタイムアウト
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // 書き込みタイムアウト
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // 処理中リクエストの待ち時間
}

// PageConfig はページに表示する値の設定
type PageConfig struct {
	Subtitle string `yaml:"subtitle"`
	PodName  string `yaml:"pod_name"` // Downward APIで渡されるPod名
}

// LogConfig はロガーの設定
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// TelemetryConfig はトレースの設定
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`      // 標準出力へのトレース出力
	ServiceName string `yaml:"service_name"` // span に付与するサービス名
}

// Load は設定を読み込む
// カレントディレクトリに .env があれば先に読み込むが、既存の環境変数が優先される
// 環境変数の不正な値はエラーにせず、デフォルト値に置き換える
func Load() (*Config, error) {
	// .env は任意なので読み込みエラーは無視する
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvOrDefault("HOST", "0.0.0.0"),
			Port:            getPortOrDefault("PORT", DefaultPort),
			Mode:            getEnvOneOfOrDefault("GIN_MODE", "release", "release", "debug", "test"),
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: getEnvAsDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Page: PageConfig{
			Subtitle: getEnvOrDefault("SUBTITLE", DefaultSubtitle),
			PodName:  getEnvOrDefault("NAME", UnknownValue),
		},
		Log: LogConfig{
			Level:  getLogLevelOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOneOfOrDefault("LOG_FORMAT", "json", "json", "console"),
		},
		Telemetry: TelemetryConfig{
			Enabled:     getEnvAsBoolOrDefault("TRACING_ENABLED", false),
			ServiceName: getEnvOrDefault("OTEL_SERVICE_NAME", "workshopapp"),
		},
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "release", "debug", "test":
	default:
		return fmt.Errorf("無効なginモード: %q", c.Server.Mode)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("無効なシャットダウンタイムアウト: %s", c.Server.ShutdownTimeout)
	}

	// ログ設定の検証
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("無効なログレベル: %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("無効なログフォーマット: %q", c.Log.Format)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getPortOrDefault は環境変数をポート番号として取得する
// 数値として解釈できない値や範囲外の値はデフォルト値に置き換える
func getPortOrDefault(key string, defaultValue int) int {
	port := getEnvAsIntOrDefault(key, defaultValue)
	if port < 1 || port > 65535 {
		return defaultValue
	}
	return port
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault は環境変数を time.Duration として取得する
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

// getLogLevelOrDefault はzapが解釈できるログレベルを返す
func getLogLevelOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		if _, err := zapcore.ParseLevel(value); err == nil {
			return value
		}
	}
	return defaultValue
}

// getEnvOneOfOrDefault は環境変数が allowed のいずれかであればその値を、それ以外はデフォルト値を返す
func getEnvOneOfOrDefault(key, defaultValue string, allowed ...string) string {
	value := os.Getenv(key)
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
