package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/janhq/jan-translator/internal/config"
	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/auth"
	"github.com/janhq/jan-translator/internal/domain/backend"
	"github.com/janhq/jan-translator/internal/domain/conversation"
	"github.com/janhq/jan-translator/internal/domain/dictionary"
	"github.com/janhq/jan-translator/internal/domain/prompt"
	"github.com/janhq/jan-translator/internal/domain/session"
	"github.com/janhq/jan-translator/internal/domain/setting"
	authinfra "github.com/janhq/jan-translator/internal/infrastructure/auth"
	"github.com/janhq/jan-translator/internal/infrastructure/repository/sandbox"
	"github.com/janhq/jan-translator/internal/infrastructure/tokenstore"
	"github.com/janhq/jan-translator/internal/interfaces/httpserver"
)

func newSandbox(t *testing.T) *Client {
	t.Helper()
	cfg := &config.Config{
		ServiceName:      "translator-sandbox-test",
		Environment:      "test",
		SandboxJWTSecret: "test-secret",
		SandboxTokenTTL:  time.Minute,
		ShutdownTimeout:  time.Second,
	}
	log := zerolog.Nop()
	validator, err := authinfra.NewValidator(cfg, log)
	require.NoError(t, err)
	service := backend.NewService(sandbox.NewInMemoryRepository(), validator, nil, log)
	server := httptest.NewServer(httpserver.New(cfg, log, service, validator).Handler())
	t.Cleanup(server.Close)

	return New(Config{BaseURL: server.URL + "/", Timeout: 5 * time.Second}, log)
}

// signIn registers alice and attaches the issued token.
func signIn(t *testing.T, c *Client) auth.User {
	t.Helper()
	ctx := context.Background()
	_, err := c.Register(ctx, auth.Registration{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	token, err := c.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	c.SetAuthToken(token.AccessToken)
	user, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	return user
}

func withAPIKey(t *testing.T, c *Client) {
	t.Helper()
	_, err := c.UpsertSetting(context.Background(), setting.KeyOpenAIAPIKey, "sk-test")
	require.NoError(t, err)
}

func TestLoginFailures(t *testing.T) {
	c := newSandbox(t)
	ctx := context.Background()
	signIn(t, c)

	_, err := c.Login(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	assert.Equal(t, "Incorrect username or password", apperr.Message(err, ""))

	_, err = c.Register(ctx, auth.Registration{Username: "alice", Password: "other1"})
	var apiErr *apperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestValidationDetailsAreJoined(t *testing.T) {
	c := newSandbox(t)
	_, err := c.Register(context.Background(), auth.Registration{})

	var apiErr *apperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Field required; Field required", apiErr.Message)
}

func TestLogoutClearsAuthorizationHeader(t *testing.T) {
	c := newSandbox(t)
	ctx := context.Background()
	_, err := c.Register(ctx, auth.Registration{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	store := tokenstore.NewMemoryStore()
	sess := session.New(c, store, zerolog.Nop())
	user, err := sess.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, c.AuthToken())

	require.NoError(t, sess.Logout())
	assert.Empty(t, c.AuthToken())
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = c.CurrentUser(ctx)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	assert.Equal(t, "Not authenticated", apperr.Message(err, ""))
}

func TestSettingsRoundTrip(t *testing.T) {
	c := newSandbox(t)
	ctx := context.Background()
	signIn(t, c)

	saved, err := c.UpsertSetting(ctx, setting.KeyTTSVoice, "nova")
	require.NoError(t, err)
	assert.Equal(t, "nova", saved.ValueOr(""))

	got, err := c.GetSetting(ctx, setting.KeyTTSVoice)
	require.NoError(t, err)
	assert.Equal(t, "nova", got.ValueOr(""))

	unset, err := c.GetSetting(ctx, setting.KeyTTSModel)
	require.NoError(t, err)
	assert.Equal(t, setting.KeyTTSModel, unset.Key)
	assert.Nil(t, unset.Value)
}

func TestProfileIsCreatedOnFirstRead(t *testing.T) {
	c := newSandbox(t)
	ctx := context.Background()
	signIn(t, c)

	p, err := c.GetProfile(ctx)
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Nil(t, p.FullName)

	name := "Alice Doe"
	p.FullName = &name
	updated, err := c.UpdateProfile(ctx, p)
	require.NoError(t, err)
	require.NotNil(t, updated.FullName)
	assert.Equal(t, name, *updated.FullName)
}

func TestArchiveMovesConversationBetweenLists(t *testing.T) {
	c := newSandbox(t)
	ctx := context.Background()
	signIn(t, c)

	conv, err := c.CreateConversation(ctx, "Trip")
	require.NoError(t, err)

	archived, err := c.ArchiveConversation(ctx, conv.ID, true)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)

	active, err := c.ListConversations(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
	archivedList, err := c.ListArchivedConversations(ctx)
	require.NoError(t, err)
	require.Len(t, archivedList, 1)
	assert.Equal(t, conv.ID, archivedList[0].ID)

	_, err = c.ArchiveConversation(ctx, conv.ID, false)
	require.NoError(t, err)
	active, err = c.ListConversations(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestTranslateExportAndEdit(t *testing.T) {
	c := newSandbox(t)
	ctx := context.Background()
	signIn(t, c)

	conv, err := c.CreateConversation(ctx, "Test")
	require.NoError(t, err)

	_, err = c.Translate(ctx, conv.ID, conversation.TranslateRequest{TextToTranslate: "hello", TargetLanguage: "English"})
	require.Error(t, err)
	assert.Equal(t, "OpenAI API key is not set in settings.", apperr.Message(err, ""))

	withAPIKey(t, c)
	msg, err := c.Translate(ctx, conv.ID, conversation.TranslateRequest{TextToTranslate: "hello", TargetLanguage: "English"})
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.OriginalText)
	assert.Equal(t, "[English] hello", msg.TranslatedText)

	full, err := c.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, full.Messages, 1)
	assert.Equal(t, msg.ID, full.Messages[0].ID)

	text, err := c.ExportConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Conversation Title: Test\n"))
	assert.Contains(t, text, "[User]: hello\n[Assistant]: [English] hello\n---\n")
	assert.True(t, strings.HasSuffix(text, "\n---\n"), "transcript must keep its trailing newline")

	edited, err := c.EditMessage(ctx, msg.ID, "good morning")
	require.NoError(t, err)
	assert.Equal(t, "[English] good morning", edited.TranslatedText)

	require.NoError(t, c.DeleteMessage(ctx, msg.ID))
	err = c.DeleteMessage(ctx, msg.ID)
	assert.Equal(t, "Message not found", apperr.Message(err, ""))
}

func TestConversationSettingsAndRename(t *testing.T) {
	c := newSandbox(t)
	ctx := context.Background()
	signIn(t, c)

	conv, err := c.CreateConversation(ctx, "Draft")
	require.NoError(t, err)
	assert.True(t, conv.UseContext)

	off := false
	custom := "Be formal"
	updated, err := c.UpdateConversationSettings(ctx, conv.ID, conversation.SettingsUpdate{UseContext: &off, CustomPrompt: &custom})
	require.NoError(t, err)
	assert.False(t, updated.UseContext)
	require.NotNil(t, updated.CustomPrompt)
	assert.Equal(t, custom, *updated.CustomPrompt)

	renamed, err := c.RenameConversation(ctx, conv.ID, "Final")
	require.NoError(t, err)
	assert.Equal(t, "Final", renamed.Title)
	assert.False(t, renamed.UseContext)

	require.NoError(t, c.DeleteConversation(ctx, conv.ID))
	_, err = c.GetConversation(ctx, conv.ID)
	assert.Equal(t, "Conversation not found", apperr.Message(err, ""))
}

func TestDictionaryAppliesToTranslations(t *testing.T) {
	c := newSandbox(t)
	ctx := context.Background()
	signIn(t, c)
	withAPIKey(t, c)

	entry, err := c.CreateDictionaryEntry(ctx, "bonjour", "hello there")
	require.NoError(t, err)
	_, err = c.CreateDictionaryEntry(ctx, "bonjour", "hi")
	assert.Equal(t, "Source text already exists in the dictionary.", apperr.Message(err, ""))

	target := "greetings"
	updated, err := c.UpdateDictionaryEntry(ctx, entry.ID, dictionary.Params{TargetText: &target})
	require.NoError(t, err)
	assert.Equal(t, "greetings", updated.TargetText)

	conv, err := c.CreateConversation(ctx, "Dict")
	require.NoError(t, err)
	msg, err := c.Translate(ctx, conv.ID, conversation.TranslateRequest{TextToTranslate: "bonjour", TargetLanguage: "French"})
	require.NoError(t, err)
	assert.Equal(t, "[French] greetings", msg.TranslatedText)

	require.NoError(t, c.DeleteDictionaryEntry(ctx, entry.ID))
	entries, err := c.ListDictionaryEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPromptsAndNotes(t *testing.T) {
	c := newSandbox(t)
	ctx := context.Background()
	signIn(t, c)

	first, err := c.CreatePrompt(ctx, "Formal", "Use a formal register")
	require.NoError(t, err)
	second, err := c.CreatePrompt(ctx, "Casual", "Keep it casual")
	require.NoError(t, err)

	prompts, err := c.ListPrompts(ctx)
	require.NoError(t, err)
	require.Len(t, prompts, 2)
	assert.Equal(t, second.ID, prompts[0].ID)

	title := "Very formal"
	updated, err := c.UpdatePrompt(ctx, first.ID, prompt.Params{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Very formal", updated.Title)
	assert.Equal(t, "Use a formal register", updated.Content)

	require.NoError(t, c.DeletePrompt(ctx, first.ID))
	_, err = c.GetPrompt(ctx, first.ID)
	assert.Equal(t, "Prompt not found", apperr.Message(err, ""))

	conv, err := c.CreateConversation(ctx, "Notes")
	require.NoError(t, err)
	note, err := c.CreateNote(ctx, conv.ID, "remember the venue")
	require.NoError(t, err)
	note, err = c.UpdateNote(ctx, note.ID, "remember the hotel")
	require.NoError(t, err)
	notes, err := c.ListNotes(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "remember the hotel", notes[0].Content)

	require.NoError(t, c.DeleteNote(ctx, note.ID))
	notes, err = c.ListNotes(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestSpeechTranscribesBack(t *testing.T) {
	c := newSandbox(t)
	ctx := context.Background()
	signIn(t, c)
	withAPIKey(t, c)

	audio, err := c.TextToSpeech(ctx, "see you tomorrow")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(audio), "ID3"))

	text, err := c.Transcribe(ctx, "", audio)
	require.NoError(t, err)
	assert.Equal(t, "see you tomorrow", text)

	_, err = c.Transcribe(ctx, "clip.webm", nil)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestErrorWithoutDetailUsesCallerFallback(t *testing.T) {
	bodies := map[string]string{
		"html":      "<html><body>Bad Gateway</body></html>",
		"no detail": `{"status":"down"}`,
		"empty":     "",
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			c := New(Config{BaseURL: server.URL, Timeout: time.Second}, zerolog.Nop())
			_, err := c.ListConversations(context.Background())
			require.Error(t, err)

			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusBadGateway, appErr.StatusCode)
			assert.Equal(t, apperr.KindDomain, appErr.Kind)
			assert.Equal(t, "Failed to load conversations.", apperr.Message(err, "Failed to load conversations."))
			assert.Equal(t, "request failed with status 502", err.Error())
		})
	}
}

func TestTransportErrors(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := New(Config{BaseURL: url, Timeout: time.Second}, zerolog.Nop())
	_, err := c.ListConversations(context.Background())
	assert.Equal(t, apperr.KindTransport, apperr.KindOf(err))
}

func TestHealth(t *testing.T) {
	c := newSandbox(t)

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "Welcome to the Intelligent Translator Backend!", health.Message)
	assert.False(t, strings.HasSuffix(health.URL, "/"))

	health, err = c.WaitHealthy(context.Background(), time.Second, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func TestTraceContextIsPropagated(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(noop.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
		_ = tp.Shutdown(context.Background())
	})

	var traceparent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(server.Close)

	c := New(Config{BaseURL: server.URL, Timeout: time.Second}, zerolog.Nop())
	_, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`, traceparent)
}

func TestWaitHealthyTimesOut(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := New(Config{BaseURL: url, Timeout: 100 * time.Millisecond}, zerolog.Nop())
	_, err := c.WaitHealthy(context.Background(), 150*time.Millisecond, 20*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend not healthy")
}

func TestUploadName(t *testing.T) {
	detected := mimetype.Detect([]byte("ID3\x04\x00\x00\x00\x00\x00\x00hello"))
	tests := []struct {
		filename string
		want     string
	}{
		{"", "recording.mp3"},
		{"voice", "voice.mp3"},
		{"/tmp/clip.webm", "clip.webm"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, uploadName(tt.filename, detected))
	}
}
