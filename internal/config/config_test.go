package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_STORE_PATH", "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.StatusCloseDelay)
	assert.Equal(t, ":8000", cfg.SandboxAddr())
	assert.Equal(t, "session.db", filepath.Base(cfg.SessionStorePath))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://translator.example.com/ ")
	t.Setenv("SESSION_STORE_PATH", "/tmp/custom.db")
	t.Setenv("SANDBOX_HTTP_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://translator.example.com", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/custom.db", cfg.SessionStorePath)
	assert.Equal(t, ":9100", cfg.SandboxAddr())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"relative base url", map[string]string{"API_BASE_URL": "localhost:8000"}},
		{"negative timeout", map[string]string{"HTTP_TIMEOUT": "-1s"}},
		{"tracing without endpoint", map[string]string{"ENABLE_TRACING": "true", "OTEL_EXPORTER_OTLP_ENDPOINT": ""}},
		{"bad duration", map[string]string{"HTTP_TIMEOUT": "soon"}},
		{"unknown log content level", map[string]string{"LOG_CONTENT": "partial"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
