package workspace

import (
	"strings"
	"sync"
	"time"

	"github.com/janhq/jan-translator/internal/domain/conversation"
	"github.com/janhq/jan-translator/internal/utils/localid"
)

// Text shown in place of a translation while a send is unsettled.
const (
	PlaceholderTranslation = "Translating..."
	FailedTranslation      = "Translation failed"
)

// Entry is one row of the timeline. LocalID is set for rows created by an
// optimistic send and kept after settlement so callers can follow the row.
type Entry struct {
	LocalID              string `json:"local_id,omitempty" yaml:"local_id,omitempty"`
	conversation.Message `yaml:",inline"`
}

// PendingSend is an in-flight optimistic send.
type PendingSend struct {
	LocalID   string
	Request   conversation.TranslateRequest
	StartedAt time.Time
}

// Timeline is the ordered message list of a workspace together with the
// table of sends still waiting for the backend.
type Timeline struct {
	mu      sync.Mutex
	entries []Entry
	pending map[string]PendingSend
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{pending: make(map[string]PendingSend)}
}

// Reset replaces the timeline with server messages. Pending sends are
// forgotten; their late responses no longer have a row to settle.
func (t *Timeline) Reset(messages []conversation.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = make([]Entry, 0, len(messages))
	for _, m := range messages {
		t.entries = append(t.entries, Entry{Message: m.Settled()})
	}
	t.pending = make(map[string]PendingSend)
}

// AddPending appends an optimistic row for request and registers it in the
// pending table under a fresh local id.
func (t *Timeline) AddPending(conversationID int64, request conversation.TranslateRequest, now time.Time) Entry {
	entry := Entry{
		LocalID: localid.New(),
		Message: conversation.Message{
			ConversationID: conversationID,
			OriginalText:   request.TextToTranslate,
			TranslatedText: PlaceholderTranslation,
			CreatedAt:      now,
			Status:         conversation.MessageStatusPending,
		},
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	t.pending[entry.LocalID] = PendingSend{LocalID: entry.LocalID, Request: request, StartedAt: now}
	return entry
}

// Settle replaces the pending row in place with the server record.
// It reports false when localID is not pending.
func (t *Timeline) Settle(localID string, message conversation.Message) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.pending[localID]; !ok {
		return Entry{}, false
	}
	delete(t.pending, localID)

	i := t.indexLocal(localID)
	if i < 0 {
		return Entry{}, false
	}
	t.entries[i] = Entry{LocalID: localID, Message: message.Settled()}
	return t.entries[i], true
}

// Fail marks the pending row as failed and keeps it in the timeline.
func (t *Timeline) Fail(localID string) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.pending[localID]; !ok {
		return Entry{}, false
	}
	delete(t.pending, localID)

	i := t.indexLocal(localID)
	if i < 0 {
		return Entry{}, false
	}
	t.entries[i].Status = conversation.MessageStatusError
	t.entries[i].TranslatedText = FailedTranslation
	return t.entries[i], true
}

// Replace swaps the settled row holding message.ID for message.
func (t *Timeline) Replace(message conversation.Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexServer(message.ID)
	if i < 0 {
		return false
	}
	t.entries[i].Message = message.Settled()
	return true
}

// Remove drops the settled row holding the server id.
func (t *Timeline) Remove(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexServer(id)
	if i < 0 {
		return false
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	return true
}

// Find returns the settled row holding the server id.
func (t *Timeline) Find(id int64) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexServer(id)
	if i < 0 {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Entries returns a snapshot of the timeline in display order.
func (t *Timeline) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Search returns the rows whose original or translated text contains query,
// case-insensitively. An empty query returns every row.
func (t *Timeline) Search(query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	entries := t.Entries()
	if query == "" {
		return entries
	}
	out := entries[:0]
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.OriginalText), query) ||
			strings.Contains(strings.ToLower(e.TranslatedText), query) {
			out = append(out, e)
		}
	}
	return out
}

// Pending returns the in-flight sends.
func (t *Timeline) Pending() []PendingSend {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]PendingSend, 0, len(t.pending))
	for _, p := range t.pending {
		out = append(out, p)
	}
	return out
}

// Len returns the number of rows.
func (t *Timeline) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func (t *Timeline) indexLocal(localID string) int {
	for i := range t.entries {
		if t.entries[i].LocalID == localID {
			return i
		}
	}
	return -1
}

// indexServer skips unsettled rows, whose zero id is not a server id.
func (t *Timeline) indexServer(id int64) int {
	for i := range t.entries {
		e := t.entries[i]
		if e.Status == conversation.MessageStatusPending || e.Status == conversation.MessageStatusError {
			continue
		}
		if e.ID == id {
			return i
		}
	}
	return -1
}
