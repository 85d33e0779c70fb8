package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-translator/internal/config"
	"github.com/janhq/jan-translator/internal/domain/backend"
	"github.com/janhq/jan-translator/internal/infrastructure/auth"
	"github.com/janhq/jan-translator/internal/infrastructure/repository/sandbox"
	"github.com/janhq/jan-translator/internal/interfaces/httpserver"
)

// startBackend serves an in-memory backend and points the CLI at it.
func startBackend(t *testing.T) *backend.Service {
	t.Helper()
	cfg := &config.Config{
		ServiceName:      "translator-cli-test",
		SandboxJWTSecret: "cli-secret",
		SandboxTokenTTL:  time.Minute,
		ShutdownTimeout:  time.Second,
	}
	log := zerolog.Nop()
	validator, err := auth.NewValidator(cfg, log)
	require.NoError(t, err)
	service := backend.NewService(sandbox.NewInMemoryRepository(), validator, nil, log)
	server := httptest.NewServer(httpserver.New(cfg, log, service, validator).Handler())
	t.Cleanup(server.Close)

	t.Setenv("API_BASE_URL", server.URL)
	t.Setenv("SESSION_STORE_PATH", filepath.Join(t.TempDir(), "session.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ENABLE_TRACING", "false")
	t.Setenv("RECORDER_COMMAND", "")
	t.Setenv("TTS_PLAYER_COMMAND", "")
	return service
}

// run executes one CLI invocation with fresh flag values.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	if teardownErr := teardownApp(context.Background()); err == nil {
		err = teardownErr
	}
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func TestTranslationSession(t *testing.T) {
	startBackend(t)

	out, err := run(t, "", "status", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)
	assert.Contains(t, out, `"logged_in": false`)

	out, err = run(t, "", "register", "-u", "alice", "-p", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered alice")

	_, err = run(t, "", "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")

	out, err = run(t, "secret1\n", "login", "-u", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice")

	out, err = run(t, "", "whoami", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"username": "alice"`)

	_, err = run(t, "", "setting", "set", "openai_api_key", "sk-test")
	require.NoError(t, err)

	out, err = run(t, "", "conversation", "create", "Trip", "to", "Paris", "-o", "json")
	require.NoError(t, err)
	var conv struct {
		ID         int64  `json:"id"`
		Title      string `json:"title"`
		UseContext bool   `json:"use_context"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &conv))
	assert.Equal(t, "Trip to Paris", conv.Title)
	assert.True(t, conv.UseContext)
	id := itoa(conv.ID)

	out, err = run(t, "", "message", "send", id, "where", "is", "the", "station?", "--to", "fr", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"translated_text": "[French] where is the station?"`)
	assert.Contains(t, out, `"status": "complete"`)

	out, err = run(t, "", "conversation", "show", id, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Trip to Paris")
	assert.Contains(t, out, "where is the station?")

	out, err = run(t, "", "conversation", "export", id, "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Conversation Title: Trip to Paris")
	assert.Contains(t, out, "[User]: where is the station?")

	out, err = run(t, "", "conversation", "settings", id, "--use-context=false", "--custom-prompt", "Be formal", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"use_context": false`)
	assert.Contains(t, out, `"custom_prompt": "Be formal"`)

	out, err = run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	_, err = run(t, "", "conversation", "list")
	require.Error(t, err)
}

func TestArchiveAndSearch(t *testing.T) {
	startBackend(t)
	signInCLI(t)

	for _, title := range []string{"Groceries", "Hotel booking"} {
		_, err := run(t, "", "conversation", "create", title)
		require.NoError(t, err)
	}
	out, err := run(t, "", "conversation", "list", "-s", "hotel", "-o", "json")
	require.NoError(t, err)
	var items []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Hotel booking", items[0].Title)

	_, err = run(t, "", "conversation", "archive", itoa(items[0].ID))
	require.NoError(t, err)

	out, err = run(t, "", "conversation", "list", "-o", "table")
	require.NoError(t, err)
	assert.NotContains(t, out, "Hotel booking")
	assert.Contains(t, out, "Groceries")

	out, err = run(t, "", "conversation", "list", "--archived", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Hotel booking")
}

func TestLibraryCommands(t *testing.T) {
	startBackend(t)
	signInCLI(t)

	out, err := run(t, "", "prompt", "create", "--title", "Formal", "--content", "Use formal register", "-o", "json")
	require.NoError(t, err)
	_, err = run(t, "", "prompt", "default", itoa(decodeID(t, out)))
	require.NoError(t, err)
	out, err = run(t, "", "prompt", "list", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"is_default": true`)

	_, err = run(t, "", "dictionary", "add", "hello", "greetings")
	require.NoError(t, err)
	_, err = run(t, "", "dictionary", "add", "hello", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Source text already exists in the dictionary.")

	_, err = run(t, "", "setting", "set", "openai_api_key", "sk-test")
	require.NoError(t, err)
	id := createConversation(t, "Dictionary")
	out, err = run(t, "", "message", "send", id, "hello", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "[English] greetings")
}

func TestSettingsPanels(t *testing.T) {
	startBackend(t)
	signInCLI(t)

	out, err := run(t, "", "settings", "models", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"tts_voice": "alloy"`)

	_, err = run(t, "", "settings", "models", "--tts-voice", "nova")
	require.NoError(t, err)
	out, err = run(t, "", "setting", "get", "tts_voice", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "nova")

	_, err = run(t, "", "settings", "models", "--tts-voice", "robot")
	require.Error(t, err)

	_, err = run(t, "", "settings", "profile", "--email", "not-an-email")
	require.Error(t, err)

	out, err = run(t, "", "settings", "profile", "--full-name", "Ada Lovelace", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"full_name": "Ada Lovelace"`)

	_, err = run(t, "", "settings", "prompts")
	require.Error(t, err)
}

func TestNotesAndMessages(t *testing.T) {
	startBackend(t)
	signInCLI(t)
	_, err := run(t, "", "setting", "set", "openai_api_key", "sk-test")
	require.NoError(t, err)
	id := createConversation(t, "Notes")

	out, err := run(t, "", "note", "add", id, "remember", "the", "tickets", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"content": "remember the tickets"`)

	out, err = run(t, "", "message", "send", id, "bonjour", "-o", "json")
	require.NoError(t, err)
	msgID := itoa(decodeID(t, out))

	out, err = run(t, "", "message", "edit", id, msgID, "bonsoir", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"translated_text": "[English] bonsoir"`)

	_, err = run(t, "", "message", "delete", id, msgID)
	require.NoError(t, err)
	_, err = run(t, "", "message", "delete", id, msgID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Message not found")

	_, err = run(t, "", "note", "list", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")
}

func TestRegisterPromptsForPassword(t *testing.T) {
	startBackend(t)

	_, err := run(t, "pw-one\npw-two\n", "register", "-u", "bob")
	require.Error(t, err)

	out, err := run(t, "secret9\nsecret9\n", "register", "-u", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered bob")
}

func TestSeedAccount(t *testing.T) {
	service := backend.NewService(sandbox.NewInMemoryRepository(), staticTokens{}, nil, zerolog.Nop())
	ctx := context.Background()

	require.Error(t, seedAccount(ctx, service, "no-colon", ""))
	require.NoError(t, seedAccount(ctx, service, "demo:demo123", "sk-demo"))

	user, err := service.UserByUsername(ctx, "demo")
	require.NoError(t, err)
	s := service.GetSetting(ctx, user.ID, "openai_api_key")
	require.NotNil(t, s.Value)
	assert.Equal(t, "sk-demo", *s.Value)
}

type staticTokens struct{}

func (staticTokens) Issue(username string) (string, error) { return "token-" + username, nil }

func signInCLI(t *testing.T) {
	t.Helper()
	_, err := run(t, "", "register", "-u", "alice", "-p", "secret1")
	require.NoError(t, err)
	_, err = run(t, "", "login", "-u", "alice", "-p", "secret1")
	require.NoError(t, err)
}

// createConversation runs conversation create and returns the new id.
func createConversation(t *testing.T, title string) string {
	t.Helper()
	out, err := run(t, "", "conversation", "create", title, "-o", "json")
	require.NoError(t, err)
	return itoa(decodeID(t, out))
}

func decodeID(t *testing.T, out string) int64 {
	t.Helper()
	var v struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	return v.ID
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
