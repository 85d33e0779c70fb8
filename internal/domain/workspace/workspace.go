// Package workspace is the view-model of one open conversation: the message
// timeline, the composer, the voice capture flow and the per-conversation
// actions around them.
package workspace

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/conversation"
	"github.com/janhq/jan-translator/internal/domain/language"
	"github.com/janhq/jan-translator/internal/domain/prompt"
	"github.com/janhq/jan-translator/internal/infrastructure/metrics"
)

// API is the part of the backend client a workspace calls.
type API interface {
	Transcriber

	GetConversation(ctx context.Context, id int64) (conversation.Conversation, error)
	Translate(ctx context.Context, id int64, request conversation.TranslateRequest) (conversation.Message, error)
	EditMessage(ctx context.Context, id int64, originalText string) (conversation.Message, error)
	DeleteMessage(ctx context.Context, id int64) error
	ExportConversation(ctx context.Context, id int64) (string, error)
	TextToSpeech(ctx context.Context, text string) ([]byte, error)
	UpdateConversationSettings(ctx context.Context, id int64, update conversation.SettingsUpdate) (conversation.Conversation, error)
	ListPrompts(ctx context.Context) ([]prompt.Prompt, error)

	ListNotes(ctx context.Context, conversationID int64) ([]conversation.Note, error)
	CreateNote(ctx context.Context, conversationID int64, content string) (conversation.Note, error)
	UpdateNote(ctx context.Context, id int64, content string) (conversation.Note, error)
	DeleteNote(ctx context.Context, id int64) error
}

// ErrSwapAuto is returned when swapping languages while the source is detected.
var ErrSwapAuto = apperr.New(apperr.KindValidation, "pick a source language before swapping")

// Option customises a Workspace.
type Option func(*Workspace)

// WithClock overrides the clock used to timestamp optimistic rows.
func WithClock(now func() time.Time) Option {
	return func(w *Workspace) { w.now = now }
}

// WithAuthFailureHandler registers a callback run on every failed call; it
// typically logs the session out when the token was rejected.
func WithAuthFailureHandler(handler func(error) bool) Option {
	return func(w *Workspace) { w.onAuthFailure = handler }
}

// Workspace holds the state of one open conversation.
type Workspace struct {
	api            API
	conversationID int64
	log            zerolog.Logger
	now            func() time.Time
	onAuthFailure  func(error) bool

	timeline *Timeline
	composer *Composer
	voice    *Voice

	mu           sync.Mutex
	conversation conversation.Conversation
	notes        []conversation.Note
	source       string
	target       string
	status       string
}

// New creates a workspace for conversationID. recorder may be nil.
func New(api API, recorder Recorder, conversationID int64, log zerolog.Logger, opts ...Option) *Workspace {
	log = log.With().Str("component", "workspace").Int64("conversation_id", conversationID).Logger()
	composer := &Composer{}
	w := &Workspace{
		api:            api,
		conversationID: conversationID,
		log:            log,
		now:            time.Now,
		timeline:       NewTimeline(),
		composer:       composer,
		voice:          NewVoice(recorder, api, composer, log),
		source:         language.Auto,
		target:         "en",
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ConversationID returns the id of the open conversation.
func (w *Workspace) ConversationID() int64 { return w.conversationID }

// Timeline returns the message timeline.
func (w *Workspace) Timeline() *Timeline { return w.timeline }

// Composer returns the text input.
func (w *Workspace) Composer() *Composer { return w.composer }

// Voice returns the voice capture flow.
func (w *Workspace) Voice() *Voice { return w.voice }

// Load fetches the conversation and replaces the timeline with its messages.
func (w *Workspace) Load(ctx context.Context) error {
	conv, err := w.api.GetConversation(ctx, w.conversationID)
	if err != nil {
		return w.fail(err, "Failed to load the conversation.")
	}
	w.timeline.Reset(conv.Messages)

	w.mu.Lock()
	conv.Messages = nil
	w.conversation = conv
	w.mu.Unlock()
	return nil
}

// Conversation returns the loaded conversation without its messages.
func (w *Workspace) Conversation() conversation.Conversation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conversation
}

// Status returns the transient status line.
func (w *Workspace) Status() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// ClearStatus dismisses the status line.
func (w *Workspace) ClearStatus() {
	w.setStatus("")
}

// Languages returns the selected source and target codes.
func (w *Workspace) Languages() (source, target string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.source, w.target
}

// SetSourceLanguage selects the source language; "auto" enables detection.
func (w *Workspace) SetSourceLanguage(code string) error {
	code = strings.TrimSpace(code)
	if code != language.Auto {
		lang, ok := language.Lookup(code)
		if !ok {
			return apperr.Validation("unknown source language %q", code)
		}
		code = lang.Code
	}
	w.mu.Lock()
	w.source = code
	w.mu.Unlock()
	return nil
}

// SetTargetLanguage selects the translation target.
func (w *Workspace) SetTargetLanguage(code string) error {
	lang, ok := language.Lookup(code)
	if !ok {
		return apperr.Validation("unknown target language %q", code)
	}
	w.mu.Lock()
	w.target = lang.Code
	w.mu.Unlock()
	return nil
}

// SwapLanguages exchanges source and target. It is refused while the
// source is auto detected.
func (w *Workspace) SwapLanguages() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.source == language.Auto {
		return ErrSwapAuto
	}
	w.source, w.target = w.target, w.source
	return nil
}

// Ticket is a send already shown in the timeline and waiting for Dispatch.
type Ticket struct {
	Entry   Entry
	request conversation.TranslateRequest
}

// BeginSend takes the composer text, appends a pending row and clears the
// composer. A blank composer is a no-op and returns a nil ticket. Every
// ticket must be passed to Dispatch.
func (w *Workspace) BeginSend() (*Ticket, error) {
	text, err := w.composer.take()
	if errors.Is(err, errNothingToSend) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	_, target := w.Languages()
	request := conversation.TranslateRequest{
		TextToTranslate: text,
		TargetLanguage:  language.NameFor(target),
	}
	entry := w.timeline.AddPending(w.conversationID, request, w.now())
	w.setStatus("")
	w.log.Debug().Str("local_id", entry.LocalID).Str("target_language", request.TargetLanguage).Msg("send started")
	return &Ticket{Entry: entry, request: request}, nil
}

// Dispatch sends the ticket to the backend and settles or fails its row.
// A response is applied even when the timeline was reloaded meanwhile.
func (w *Workspace) Dispatch(ctx context.Context, ticket *Ticket) (Entry, error) {
	defer w.composer.done()

	message, err := w.api.Translate(ctx, w.conversationID, ticket.request)
	if err != nil {
		metrics.RecordSend("error")
		entry, _ := w.timeline.Fail(ticket.Entry.LocalID)
		return entry, w.fail(err, "Failed to send the message.")
	}

	metrics.RecordSend("settled")
	entry, ok := w.timeline.Settle(ticket.Entry.LocalID, message)
	if !ok {
		w.log.Debug().Str("local_id", ticket.Entry.LocalID).Msg("settled send has no pending row")
		entry = Entry{LocalID: ticket.Entry.LocalID, Message: message.Settled()}
	}
	return entry, nil
}

// Send runs BeginSend and Dispatch back to back. A blank composer returns a
// zero Entry and no error.
func (w *Workspace) Send(ctx context.Context) (Entry, error) {
	ticket, err := w.BeginSend()
	if err != nil || ticket == nil {
		return Entry{}, err
	}
	return w.Dispatch(ctx, ticket)
}

// EditMessage replaces the original text of a settled message.
func (w *Workspace) EditMessage(ctx context.Context, id int64, text string) (Entry, error) {
	if strings.TrimSpace(text) == "" {
		return Entry{}, apperr.Validation("message text is required")
	}
	message, err := w.api.EditMessage(ctx, id, text)
	if err != nil {
		return Entry{}, w.fail(err, "Failed to edit the message.")
	}
	w.timeline.Replace(message)
	entry, _ := w.timeline.Find(message.ID)
	return entry, nil
}

// DeleteMessage removes a settled message.
func (w *Workspace) DeleteMessage(ctx context.Context, id int64) error {
	if err := w.api.DeleteMessage(ctx, id); err != nil {
		return w.fail(err, "Failed to delete the message.")
	}
	w.timeline.Remove(id)
	return nil
}

// Export is a downloaded transcript.
type Export struct {
	Filename string
	Content  string
}

// Export downloads the plain text transcript of the conversation.
func (w *Workspace) Export(ctx context.Context) (Export, error) {
	content, err := w.api.ExportConversation(ctx, w.conversationID)
	if err != nil {
		return Export{}, w.fail(err, "Failed to export the conversation.")
	}
	return Export{Filename: w.Conversation().ExportFilename(), Content: content}, nil
}

// Speak synthesises text to mp3 audio.
func (w *Workspace) Speak(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("nothing to read aloud")
	}
	audio, err := w.api.TextToSpeech(ctx, text)
	if err != nil {
		return nil, w.fail(err, "Failed to generate the audio.")
	}
	return audio, nil
}

// PromptLibrary lists the prompts a custom prompt can be picked from.
func (w *Workspace) PromptLibrary(ctx context.Context) ([]prompt.Prompt, error) {
	prompts, err := w.api.ListPrompts(ctx)
	if err != nil {
		return nil, w.fail(err, "Failed to load the prompt library.")
	}
	return prompts, nil
}

// SaveSettings stores the conversation's context flag and custom prompt.
func (w *Workspace) SaveSettings(ctx context.Context, useContext bool, customPrompt string) error {
	update := conversation.SettingsUpdate{UseContext: &useContext, CustomPrompt: &customPrompt}
	conv, err := w.api.UpdateConversationSettings(ctx, w.conversationID, update)
	if err != nil {
		return w.fail(err, "Failed to save the settings.")
	}
	w.mu.Lock()
	conv.Messages = nil
	w.conversation = conv
	w.status = "Settings saved."
	w.mu.Unlock()
	return nil
}

// Notes returns the notes loaded by LoadNotes.
func (w *Workspace) Notes() []conversation.Note {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]conversation.Note, len(w.notes))
	copy(out, w.notes)
	return out
}

// LoadNotes fetches the notes of the conversation.
func (w *Workspace) LoadNotes(ctx context.Context) ([]conversation.Note, error) {
	notes, err := w.api.ListNotes(ctx, w.conversationID)
	if err != nil {
		return nil, w.fail(err, "Failed to load the notes.")
	}
	w.mu.Lock()
	w.notes = notes
	w.mu.Unlock()
	return w.Notes(), nil
}

// AddNote attaches a note to the conversation.
func (w *Workspace) AddNote(ctx context.Context, content string) (conversation.Note, error) {
	if strings.TrimSpace(content) == "" {
		return conversation.Note{}, apperr.Validation("note content is required")
	}
	note, err := w.api.CreateNote(ctx, w.conversationID, content)
	if err != nil {
		return conversation.Note{}, w.fail(err, "Failed to add the note.")
	}
	w.mu.Lock()
	w.notes = append(w.notes, note)
	w.mu.Unlock()
	return note, nil
}

// UpdateNote rewrites a note.
func (w *Workspace) UpdateNote(ctx context.Context, id int64, content string) (conversation.Note, error) {
	if strings.TrimSpace(content) == "" {
		return conversation.Note{}, apperr.Validation("note content is required")
	}
	note, err := w.api.UpdateNote(ctx, id, content)
	if err != nil {
		return conversation.Note{}, w.fail(err, "Failed to update the note.")
	}
	w.mu.Lock()
	for i := range w.notes {
		if w.notes[i].ID == id {
			w.notes[i] = note
		}
	}
	w.mu.Unlock()
	return note, nil
}

// DeleteNote removes a note.
func (w *Workspace) DeleteNote(ctx context.Context, id int64) error {
	if err := w.api.DeleteNote(ctx, id); err != nil {
		return w.fail(err, "Failed to delete the note.")
	}
	w.mu.Lock()
	for i := range w.notes {
		if w.notes[i].ID == id {
			w.notes = append(w.notes[:i], w.notes[i+1:]...)
			break
		}
	}
	w.mu.Unlock()
	return nil
}

// ToggleRecording drives the voice flow and reports failures in the status.
func (w *Workspace) ToggleRecording(ctx context.Context) error {
	w.setStatus("")
	if err := w.voice.Toggle(ctx); err != nil {
		return w.fail(err, "Failed to transcribe the audio.")
	}
	return nil
}

// TranscribeFile uploads an audio file and appends its text to the composer.
func (w *Workspace) TranscribeFile(ctx context.Context, filename string, audio []byte) (string, error) {
	w.setStatus("")
	text, err := w.voice.TranscribeFile(ctx, filename, audio)
	if err != nil {
		return "", w.fail(err, "Failed to transcribe the audio.")
	}
	return text, nil
}

// Close releases the microphone if a recording is still running.
func (w *Workspace) Close() error {
	return w.voice.Close()
}

// fail turns err into the status line and returns it unchanged.
func (w *Workspace) fail(err error, fallback string) error {
	if w.onAuthFailure != nil && w.onAuthFailure(err) {
		w.setStatus("Your session has expired. Please log in again.")
		return err
	}
	w.setStatus(apperr.Message(err, fallback))
	w.log.Debug().Err(err).Str("status", fallback).Msg("workspace action failed")
	return err
}

func (w *Workspace) setStatus(status string) {
	w.mu.Lock()
	w.status = status
	w.mu.Unlock()
}
