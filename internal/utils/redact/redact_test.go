package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"none", LevelNone},
		{" Hashed ", LevelHashed},
		{"FULL", LevelFull},
		{"", LevelHashed},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("partial")
	assert.Error(t, err)
}

func TestTextNone(t *testing.T) {
	r := New(LevelNone, "salt")
	assert.Equal(t, "[REDACTED]", r.Text("bonjour"))
	assert.Equal(t, "", r.Text(""))
}

func TestTextFull(t *testing.T) {
	r := New(LevelFull, "salt")
	input := "write to ada@example.com"
	assert.Equal(t, input, r.Text(input))
}

func TestTextHashed(t *testing.T) {
	r := New(LevelHashed, "salt")

	tests := []struct {
		name    string
		input   string
		hidden  string
		marker  string
		context string
	}{
		{"email", "write to ada@example.com today", "ada@example.com", "[EMAIL:", "today"},
		{"phone", "call 555-123-4567 now", "555-123-4567", "[PHONE:", "now"},
		{"api key", "my key is sk-abcdef123456", "sk-abcdef123456", "[KEY:REDACTED]", "my key is"},
		{"token", "Bearer eyJhbGciOi.eyJzdWIiOi.c2lnbmF0dXJl", "eyJhbGciOi", "[TOKEN:REDACTED]", "Bearer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Text(tt.input)
			assert.NotContains(t, got, tt.hidden)
			assert.Contains(t, got, tt.marker)
			assert.Contains(t, got, tt.context)
		})
	}
}

func TestHashIsStablePerSalt(t *testing.T) {
	a := New(LevelHashed, "one")
	b := New(LevelHashed, "two")

	assert.Equal(t, a.Text("ada@example.com"), a.Text("ada@example.com"))
	assert.NotEqual(t, a.Text("ada@example.com"), b.Text("ada@example.com"))
}

func TestSecret(t *testing.T) {
	r := New(LevelFull, "")
	assert.Equal(t, "****3456", r.Secret("sk-abcdef123456"))
	assert.Equal(t, "*****", r.Secret("short"))
	assert.Equal(t, "", r.Secret(""))
}
