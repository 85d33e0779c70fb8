package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/janhq/jan-translator/internal/utils/redact"
)

// Config holds the environment driven configuration for the translator client.
//
// Loading order (highest to lowest priority):
//  1. Environment variables
//  2. .env file (if present, overlaid by the command entrypoint)
//  3. Default values from struct tags
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"jan-translator"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	APIBaseURL  string        `env:"API_BASE_URL" envDefault:"http://127.0.0.1:8000"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"60s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
	// LogContent is the redaction level of user text in sandbox logs:
	// none, hashed or full.
	LogContent string `env:"LOG_CONTENT" envDefault:"hashed"`

	// SessionStorePath is the bolt file holding the persisted auth token.
	// Empty means $HOME/.jan-translator/session.db.
	SessionStorePath string `env:"SESSION_STORE_PATH"`

	RecorderCommand  string `env:"RECORDER_COMMAND" envDefault:"ffmpeg -loglevel quiet -f pulse -i default -f webm -"`
	TTSPlayerCommand string `env:"TTS_PLAYER_COMMAND"`

	// StatusCloseDelay is how long a settings panel keeps its success status
	// before it reports itself closed.
	StatusCloseDelay time.Duration `env:"STATUS_CLOSE_DELAY" envDefault:"1500ms"`

	EnableTracing bool   `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`

	SandboxHTTPPort  int           `env:"SANDBOX_HTTP_PORT" envDefault:"8000"`
	SandboxJWTSecret string        `env:"SANDBOX_JWT_SECRET"`
	SandboxTokenTTL  time.Duration `env:"SANDBOX_TOKEN_TTL" envDefault:"30m"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}
	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if _, err := redact.ParseLevel(cfg.LogContent); err != nil {
		return nil, fmt.Errorf("LOG_CONTENT: %w", err)
	}
	if cfg.EnableTracing && strings.TrimSpace(cfg.OTLPEndpoint) == "" {
		return nil, fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required when ENABLE_TRACING is true")
	}

	if strings.TrimSpace(cfg.SessionStorePath) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.SessionStorePath = filepath.Join(home, ".jan-translator", "session.db")
	}

	return cfg, nil
}

// SandboxAddr returns the listen address of the local sandbox backend.
func (c *Config) SandboxAddr() string {
	return fmt.Sprintf(":%d", c.SandboxHTTPPort)
}
