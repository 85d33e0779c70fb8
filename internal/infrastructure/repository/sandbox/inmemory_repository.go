package sandbox

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/janhq/jan-translator/internal/domain/backend"
	"github.com/janhq/jan-translator/internal/domain/conversation"
	"github.com/janhq/jan-translator/internal/domain/dictionary"
	"github.com/janhq/jan-translator/internal/domain/profile"
	"github.com/janhq/jan-translator/internal/domain/prompt"
)

type owned[T any] struct {
	owner int64
	value T
}

type conversationRow struct {
	owner     int64
	value     conversation.Conversation
	updatedAt time.Time
}

// InMemoryRepository is a thread-safe backend.Repository. Records live for
// the lifetime of the process.
type InMemoryRepository struct {
	mu     sync.RWMutex
	now    func() time.Time
	nextID int64

	accounts      map[int64]backend.Account
	settings      map[int64]map[string]*string
	profiles      map[int64]profile.Profile
	conversations map[int64]conversationRow
	messages      map[int64]owned[conversation.Message]
	prompts       map[int64]owned[prompt.Prompt]
	dictionary    map[int64]owned[dictionary.Entry]
	notes         map[int64]owned[conversation.Note]
}

var _ backend.Repository = (*InMemoryRepository)(nil)

// NewInMemoryRepository returns an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		now:           func() time.Time { return time.Now().UTC() },
		accounts:      make(map[int64]backend.Account),
		settings:      make(map[int64]map[string]*string),
		profiles:      make(map[int64]profile.Profile),
		conversations: make(map[int64]conversationRow),
		messages:      make(map[int64]owned[conversation.Message]),
		prompts:       make(map[int64]owned[prompt.Prompt]),
		dictionary:    make(map[int64]owned[dictionary.Entry]),
		notes:         make(map[int64]owned[conversation.Note]),
	}
}

// id hands out ids from one sequence shared by every table. Callers hold mu.
func (r *InMemoryRepository) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *InMemoryRepository) CreateAccount(ctx context.Context, account backend.Account) (backend.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account.User.ID = r.id()
	r.accounts[account.User.ID] = account
	return account, nil
}

func (r *InMemoryRepository) AccountByUsername(ctx context.Context, username string) (backend.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.User.Username == username {
			return a, true
		}
	}
	return backend.Account{}, false
}

func (r *InMemoryRepository) AccountByEmail(ctx context.Context, email string) (backend.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.User.Email != nil && strings.EqualFold(*a.User.Email, email) {
			return a, true
		}
	}
	return backend.Account{}, false
}

func (r *InMemoryRepository) UpdateAccount(ctx context.Context, account backend.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.User.ID] = account
	return nil
}

func (r *InMemoryRepository) Setting(ctx context.Context, owner int64, key string) (*string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.settings[owner][key]
	if !ok || value == nil {
		return nil, ok
	}
	v := *value
	return &v, true
}

func (r *InMemoryRepository) PutSetting(ctx context.Context, owner int64, key string, value *string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settings[owner] == nil {
		r.settings[owner] = make(map[string]*string)
	}
	if value != nil {
		v := *value
		value = &v
	}
	r.settings[owner][key] = value
}

func (r *InMemoryRepository) Profile(ctx context.Context, owner int64) (profile.Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[owner]
	return p, ok
}

func (r *InMemoryRepository) PutProfile(ctx context.Context, owner int64, p profile.Profile) profile.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[owner]; ok {
		p.ID = existing.ID
	} else {
		p.ID = r.id()
	}
	r.profiles[owner] = p
	return p
}

func (r *InMemoryRepository) Conversations(ctx context.Context, owner int64) []conversation.Conversation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]conversationRow, 0)
	for _, row := range r.conversations {
		if row.owner == owner {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].updatedAt.Equal(rows[j].updatedAt) {
			return rows[i].value.ID > rows[j].value.ID
		}
		return rows[i].updatedAt.After(rows[j].updatedAt)
	})
	out := make([]conversation.Conversation, len(rows))
	for i, row := range rows {
		out[i] = row.value
	}
	return out
}

func (r *InMemoryRepository) Conversation(ctx context.Context, owner, id int64) (conversation.Conversation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.conversations[id]
	if !ok || row.owner != owner {
		return conversation.Conversation{}, false
	}
	return row.value, true
}

func (r *InMemoryRepository) SaveConversation(ctx context.Context, owner int64, c conversation.Conversation) conversation.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.id()
	}
	c.Messages = nil
	r.conversations[c.ID] = conversationRow{owner: owner, value: c, updatedAt: r.now()}
	return c
}

func (r *InMemoryRepository) DeleteConversation(ctx context.Context, owner, id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.conversations[id]
	if !ok || row.owner != owner {
		return false
	}
	delete(r.conversations, id)
	for mid, m := range r.messages {
		if m.value.ConversationID == id {
			delete(r.messages, mid)
		}
	}
	for nid, n := range r.notes {
		if n.value.ConversationID == id {
			delete(r.notes, nid)
		}
	}
	return true
}

// touch bumps the conversation to the top of the list. Callers hold mu.
func (r *InMemoryRepository) touch(id int64) {
	if row, ok := r.conversations[id]; ok {
		row.updatedAt = r.now()
		r.conversations[id] = row
	}
}

func (r *InMemoryRepository) Messages(ctx context.Context, owner, conversationID int64) []conversation.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]conversation.Message, 0)
	for _, m := range r.messages {
		if m.owner == owner && m.value.ConversationID == conversationID {
			out = append(out, m.value)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *InMemoryRepository) Message(ctx context.Context, owner, id int64) (conversation.Message, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.messages[id]
	if !ok || m.owner != owner {
		return conversation.Message{}, false
	}
	return m.value, true
}

func (r *InMemoryRepository) SaveMessage(ctx context.Context, owner int64, m conversation.Message) conversation.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == 0 {
		m.ID = r.id()
	}
	r.messages[m.ID] = owned[conversation.Message]{owner: owner, value: m}
	r.touch(m.ConversationID)
	return m
}

func (r *InMemoryRepository) DeleteMessage(ctx context.Context, owner, id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok || m.owner != owner {
		return false
	}
	delete(r.messages, id)
	r.touch(m.value.ConversationID)
	return true
}

func (r *InMemoryRepository) Prompts(ctx context.Context, owner int64) []prompt.Prompt {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]prompt.Prompt, 0)
	for _, p := range r.prompts {
		if p.owner == owner {
			out = append(out, p.value)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *InMemoryRepository) Prompt(ctx context.Context, owner, id int64) (prompt.Prompt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prompts[id]
	if !ok || p.owner != owner {
		return prompt.Prompt{}, false
	}
	return p.value, true
}

func (r *InMemoryRepository) SavePrompt(ctx context.Context, owner int64, p prompt.Prompt) prompt.Prompt {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.id()
	}
	r.prompts[p.ID] = owned[prompt.Prompt]{owner: owner, value: p}
	return p
}

func (r *InMemoryRepository) DeletePrompt(ctx context.Context, owner, id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prompts[id]
	if !ok || p.owner != owner {
		return false
	}
	delete(r.prompts, id)
	return true
}

func (r *InMemoryRepository) DictionaryEntries(ctx context.Context, owner int64) []dictionary.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]dictionary.Entry, 0)
	for _, e := range r.dictionary {
		if e.owner == owner {
			out = append(out, e.value)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourceText < out[j].SourceText })
	return out
}

func (r *InMemoryRepository) DictionaryEntry(ctx context.Context, owner, id int64) (dictionary.Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.dictionary[id]
	if !ok || e.owner != owner {
		return dictionary.Entry{}, false
	}
	return e.value, true
}

func (r *InMemoryRepository) SaveDictionaryEntry(ctx context.Context, owner int64, e dictionary.Entry) dictionary.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == 0 {
		e.ID = r.id()
	}
	r.dictionary[e.ID] = owned[dictionary.Entry]{owner: owner, value: e}
	return e
}

func (r *InMemoryRepository) DeleteDictionaryEntry(ctx context.Context, owner, id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.dictionary[id]
	if !ok || e.owner != owner {
		return false
	}
	delete(r.dictionary, id)
	return true
}

func (r *InMemoryRepository) Notes(ctx context.Context, owner, conversationID int64) []conversation.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]conversation.Note, 0)
	for _, n := range r.notes {
		if n.owner == owner && n.value.ConversationID == conversationID {
			out = append(out, n.value)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *InMemoryRepository) Note(ctx context.Context, owner, id int64) (conversation.Note, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.notes[id]
	if !ok || n.owner != owner {
		return conversation.Note{}, false
	}
	return n.value, true
}

func (r *InMemoryRepository) SaveNote(ctx context.Context, owner int64, n conversation.Note) conversation.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == 0 {
		n.ID = r.id()
	}
	r.notes[n.ID] = owned[conversation.Note]{owner: owner, value: n}
	return n
}

func (r *InMemoryRepository) DeleteNote(ctx context.Context, owner, id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.owner != owner {
		return false
	}
	delete(r.notes, id)
	return true
}
