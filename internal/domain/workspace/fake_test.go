package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/conversation"
	"github.com/janhq/jan-translator/internal/domain/prompt"
)

type fakeAPI struct {
	mu sync.Mutex

	conversation conversation.Conversation
	nextID       int64
	translate    func(request conversation.TranslateRequest) (conversation.Message, error)
	transcribe   func(audio []byte) (string, error)

	translateCalls  int
	transcribeCalls int
	notes           []conversation.Note
}

func newFakeAPI(conv conversation.Conversation) *fakeAPI {
	return &fakeAPI{conversation: conv, nextID: 100}
}

func (f *fakeAPI) GetConversation(_ context.Context, id int64) (conversation.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.conversation.ID {
		return conversation.Conversation{}, &apperr.Error{Kind: apperr.KindDomain, Message: "Conversation not found", StatusCode: 404}
	}
	return f.conversation, nil
}

func (f *fakeAPI) Translate(_ context.Context, id int64, request conversation.TranslateRequest) (conversation.Message, error) {
	f.mu.Lock()
	f.translateCalls++
	hook := f.translate
	f.nextID++
	msgID := f.nextID
	f.mu.Unlock()

	if hook != nil {
		return hook(request)
	}
	return conversation.Message{
		ID:             msgID,
		ConversationID: id,
		OriginalText:   request.TextToTranslate,
		TranslatedText: "[" + request.TargetLanguage + "] " + request.TextToTranslate,
		CreatedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeAPI) EditMessage(_ context.Context, id int64, text string) (conversation.Message, error) {
	return conversation.Message{ID: id, OriginalText: text, TranslatedText: "edited: " + text}, nil
}

func (f *fakeAPI) DeleteMessage(context.Context, int64) error { return nil }

func (f *fakeAPI) ExportConversation(context.Context, int64) (string, error) {
	return "transcript", nil
}

func (f *fakeAPI) TextToSpeech(_ context.Context, text string) ([]byte, error) {
	return []byte("ID3" + text), nil
}

func (f *fakeAPI) UpdateConversationSettings(_ context.Context, _ int64, update conversation.SettingsUpdate) (conversation.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if update.UseContext != nil {
		f.conversation.UseContext = *update.UseContext
	}
	f.conversation.CustomPrompt = update.CustomPrompt
	return f.conversation, nil
}

func (f *fakeAPI) ListPrompts(context.Context) ([]prompt.Prompt, error) {
	return []prompt.Prompt{{ID: 1, Title: "Formal", Content: "Be formal."}}, nil
}

func (f *fakeAPI) ListNotes(context.Context, int64) ([]conversation.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]conversation.Note(nil), f.notes...), nil
}

func (f *fakeAPI) CreateNote(_ context.Context, conversationID int64, content string) (conversation.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	note := conversation.Note{ID: f.nextID, ConversationID: conversationID, Content: content}
	f.notes = append(f.notes, note)
	return note, nil
}

func (f *fakeAPI) UpdateNote(_ context.Context, id int64, content string) (conversation.Note, error) {
	return conversation.Note{ID: id, Content: content}, nil
}

func (f *fakeAPI) DeleteNote(context.Context, int64) error { return nil }

func (f *fakeAPI) Transcribe(_ context.Context, _ string, audio []byte) (string, error) {
	f.mu.Lock()
	f.transcribeCalls++
	hook := f.transcribe
	f.mu.Unlock()
	if hook != nil {
		return hook(audio)
	}
	return "transcribed", nil
}

func (f *fakeAPI) calls() (translate, transcribe int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.translateCalls, f.transcribeCalls
}

type fakeRecorder struct {
	mu     sync.Mutex
	audio  []byte
	err    error
	starts int
	open   int
}

func (r *fakeRecorder) Start(context.Context) (Capture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.starts++
	r.open++
	return &fakeCapture{recorder: r}, nil
}

func (r *fakeRecorder) counts() (starts, open int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.starts, r.open
}

type fakeCapture struct {
	recorder *fakeRecorder
}

func (c *fakeCapture) Stop() ([]byte, error) {
	c.recorder.mu.Lock()
	defer c.recorder.mu.Unlock()
	c.recorder.open--
	return c.recorder.audio, nil
}
