// Package conversationlist is the view-model of the conversation sidebar:
// the active and archived buckets, title search and the CRUD actions.
package conversationlist

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/conversation"
	"github.com/janhq/jan-translator/internal/domain/validation"
)

// Mode selects which bucket the list shows.
type Mode string

const (
	ModeActive   Mode = "active"
	ModeArchived Mode = "archived"
)

// API is the part of the backend client the list calls.
type API interface {
	ListConversations(ctx context.Context) ([]conversation.Conversation, error)
	ListArchivedConversations(ctx context.Context) ([]conversation.Conversation, error)
	CreateConversation(ctx context.Context, title string) (conversation.Conversation, error)
	RenameConversation(ctx context.Context, id int64, title string) (conversation.Conversation, error)
	ArchiveConversation(ctx context.Context, id int64, archived bool) (conversation.Conversation, error)
	DeleteConversation(ctx context.Context, id int64) error
}

type titleForm struct {
	Title string `validate:"nonblank" label:"title"`
}

// List holds the conversations of one bucket.
type List struct {
	api           API
	log           zerolog.Logger
	onAuthFailure func(error) bool

	mu     sync.Mutex
	mode   Mode
	items  []conversation.Conversation
	query  string
	status string
}

// New returns an empty list in active mode. Call Refresh to load it.
func New(api API, log zerolog.Logger, onAuthFailure func(error) bool) *List {
	return &List{
		api:           api,
		log:           log.With().Str("component", "conversation_list").Logger(),
		onAuthFailure: onAuthFailure,
		mode:          ModeActive,
	}
}

// Mode returns the bucket shown.
func (l *List) Mode() Mode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

// SetMode switches bucket and reloads.
func (l *List) SetMode(ctx context.Context, mode Mode) error {
	if mode != ModeActive && mode != ModeArchived {
		return apperr.Validation("unknown list mode %q", mode)
	}
	l.mu.Lock()
	l.mode = mode
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// Refresh reloads the current bucket.
func (l *List) Refresh(ctx context.Context) error {
	mode := l.Mode()
	var (
		items []conversation.Conversation
		err   error
	)
	if mode == ModeArchived {
		items, err = l.api.ListArchivedConversations(ctx)
	} else {
		items, err = l.api.ListConversations(ctx)
	}
	if err != nil {
		return l.fail(err, fmt.Sprintf("Failed to load the %s conversations.", mode))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mode != mode {
		// the bucket changed while loading; the newer refresh wins
		return nil
	}
	l.items = items
	l.status = ""
	return nil
}

// SetQuery filters Items by title.
func (l *List) SetQuery(query string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = query
}

// Query returns the search text.
func (l *List) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Items returns the conversations of the bucket whose title contains the
// query, case-insensitively.
func (l *List) Items() []conversation.Conversation {
	l.mu.Lock()
	defer l.mu.Unlock()

	query := strings.ToLower(l.query)
	out := make([]conversation.Conversation, 0, len(l.items))
	for _, c := range l.items {
		if query == "" || strings.Contains(strings.ToLower(c.Title), query) {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether the loaded bucket holds id, ignoring the query.
func (l *List) Contains(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index(id) >= 0
}

// Status returns the transient status line.
func (l *List) Status() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Create starts a conversation. It is listed first in the active bucket.
func (l *List) Create(ctx context.Context, title string) (conversation.Conversation, error) {
	if err := validation.Struct(titleForm{Title: title}); err != nil {
		return conversation.Conversation{}, err
	}
	created, err := l.api.CreateConversation(ctx, title)
	if err != nil {
		return conversation.Conversation{}, l.fail(err, "Failed to create the conversation.")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mode == ModeActive {
		l.items = append([]conversation.Conversation{created}, l.items...)
	}
	return created, nil
}

// Rename changes a conversation title.
func (l *List) Rename(ctx context.Context, id int64, title string) error {
	if err := validation.Struct(titleForm{Title: title}); err != nil {
		return err
	}
	if _, err := l.api.RenameConversation(ctx, id, title); err != nil {
		return l.fail(err, "Failed to rename the conversation.")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		l.items[i].Title = title
	}
	return nil
}

// Delete removes a conversation and its messages.
func (l *List) Delete(ctx context.Context, id int64) error {
	if err := l.api.DeleteConversation(ctx, id); err != nil {
		return l.fail(err, "Failed to delete the conversation.")
	}
	l.drop(id)
	return nil
}

// Archive moves a conversation into the archived bucket.
func (l *List) Archive(ctx context.Context, id int64) error {
	return l.setArchived(ctx, id, true)
}

// Unarchive moves a conversation back into the active bucket.
func (l *List) Unarchive(ctx context.Context, id int64) error {
	return l.setArchived(ctx, id, false)
}

// ToggleArchive moves a conversation out of whichever bucket is shown.
func (l *List) ToggleArchive(ctx context.Context, id int64) error {
	return l.setArchived(ctx, id, l.Mode() == ModeActive)
}

func (l *List) setArchived(ctx context.Context, id int64, archived bool) error {
	if _, err := l.api.ArchiveConversation(ctx, id, archived); err != nil {
		verb := "unarchive"
		if archived {
			verb = "archive"
		}
		return l.fail(err, fmt.Sprintf("Failed to %s the conversation.", verb))
	}
	l.drop(id)
	return nil
}

func (l *List) drop(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
	}
}

func (l *List) index(id int64) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *List) fail(err error, fallback string) error {
	if l.onAuthFailure != nil && l.onAuthFailure(err) {
		l.setStatus("Your session has expired. Please log in again.")
		return err
	}
	l.setStatus(apperr.Message(err, fallback))
	l.log.Debug().Err(err).Msg(fallback)
	return err
}

func (l *List) setStatus(status string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status = status
}
