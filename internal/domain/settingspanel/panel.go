// Package settingspanel implements the settings dialogs as a tagged variant:
// one Kind per panel, each with its own typed load and save contract.
package settingspanel

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/dictionary"
	"github.com/janhq/jan-translator/internal/domain/profile"
	"github.com/janhq/jan-translator/internal/domain/prompt"
	"github.com/janhq/jan-translator/internal/domain/setting"
)

// Kind identifies a settings panel.
type Kind string

const (
	KindProfile    Kind = "profile"
	KindAPIKey     Kind = "api-key"
	KindModels     Kind = "models"
	KindAudio      Kind = "audio"
	KindPrompts    Kind = "prompts"
	KindDictionary Kind = "dictionary"
)

// Kinds returns every panel in menu order.
func Kinds() []Kind {
	return []Kind{KindProfile, KindAPIKey, KindModels, KindAudio, KindPrompts, KindDictionary}
}

// ParseKind resolves a panel name.
func ParseKind(value string) (Kind, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, k := range Kinds() {
		if string(k) == value {
			return k, nil
		}
	}
	return "", apperr.Validation("unknown settings panel %q", value)
}

// API is the part of the backend client the panels call.
type API interface {
	GetSetting(ctx context.Context, key string) (setting.Setting, error)
	UpsertSetting(ctx context.Context, key, value string) (setting.Setting, error)

	GetProfile(ctx context.Context) (profile.Profile, error)
	UpdateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error)

	ListPrompts(ctx context.Context) ([]prompt.Prompt, error)
	CreatePrompt(ctx context.Context, title, content string) (prompt.Prompt, error)
	UpdatePrompt(ctx context.Context, id int64, params prompt.Params) (prompt.Prompt, error)
	DeletePrompt(ctx context.Context, id int64) error

	ListDictionaryEntries(ctx context.Context) ([]dictionary.Entry, error)
	CreateDictionaryEntry(ctx context.Context, sourceText, targetText string) (dictionary.Entry, error)
	UpdateDictionaryEntry(ctx context.Context, id int64, params dictionary.Params) (dictionary.Entry, error)
	DeleteDictionaryEntry(ctx context.Context, id int64) error
}

// Panel is implemented by every variant.
type Panel interface {
	Kind() Kind
	// Load fetches the current values from the backend.
	Load(ctx context.Context) error
	// Status returns the transient status line.
	Status() string
	// Closed reports whether a successful save has been shown long enough
	// for the panel to close itself.
	Closed(now time.Time) bool
}

// Form is a panel edited as a whole and submitted with Save.
type Form interface {
	Panel
	Validate() error
	Save(ctx context.Context) (Outcome, error)
}

// Outcome is the result of a successful save. The panel reports itself
// closed once CloseAfter has elapsed.
type Outcome struct {
	Status     string
	CloseAfter time.Duration
}

// DefaultCloseDelay is how long a success status stays visible.
const DefaultCloseDelay = 1500 * time.Millisecond

// Service opens panels against one backend.
type Service struct {
	api        API
	log        zerolog.Logger
	closeDelay time.Duration
}

// NewService creates a panel factory. A non-positive closeDelay uses
// DefaultCloseDelay.
func NewService(api API, log zerolog.Logger, closeDelay time.Duration) *Service {
	if closeDelay <= 0 {
		closeDelay = DefaultCloseDelay
	}
	return &Service{
		api:        api,
		log:        log.With().Str("component", "settings").Logger(),
		closeDelay: closeDelay,
	}
}

// New returns an unloaded panel of the given kind.
func (s *Service) New(kind Kind) (Panel, error) {
	b := &base{api: s.api, log: s.log.With().Str("panel", string(kind)).Logger(), closeDelay: s.closeDelay}
	switch kind {
	case KindProfile:
		return &ProfilePanel{base: b}, nil
	case KindAPIKey:
		return &APIKeyPanel{base: b}, nil
	case KindModels:
		return &ModelsPanel{base: b}, nil
	case KindAudio:
		return &AudioPanel{base: b}, nil
	case KindPrompts:
		return &PromptsPanel{base: b}, nil
	case KindDictionary:
		return &DictionaryPanel{base: b}, nil
	default:
		return nil, apperr.Validation("unknown settings panel %q", kind)
	}
}

// Open returns a panel of the given kind with its values loaded.
func (s *Service) Open(ctx context.Context, kind Kind) (Panel, error) {
	panel, err := s.New(kind)
	if err != nil {
		return nil, err
	}
	if err := panel.Load(ctx); err != nil {
		return panel, err
	}
	return panel, nil
}

// base carries what every variant shares.
type base struct {
	api        API
	log        zerolog.Logger
	closeDelay time.Duration

	mu      sync.Mutex
	status  string
	closeAt time.Time
}

func (b *base) Status() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *base) Closed(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closeAt.IsZero() && !now.Before(b.closeAt)
}

func (b *base) setStatus(status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
}

// reopen clears a pending close, e.g. after a failed retry.
func (b *base) reopen() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closeAt = time.Time{}
}

func (b *base) fail(err error, fallback string) error {
	b.reopen()
	b.setStatus(apperr.Message(err, fallback))
	b.log.Debug().Err(err).Msg(fallback)
	return err
}

// succeed ends a form save: the status is shown and the panel closes
// after the close delay.
func (b *base) succeed(status string) Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
	b.closeAt = time.Now().Add(b.closeDelay)
	return Outcome{Status: status, CloseAfter: b.closeDelay}
}

// invalid records a validation failure as the status and returns it.
func (b *base) invalid(err error) error {
	if err != nil {
		b.reopen()
		b.setStatus(err.Error())
	}
	return err
}

var validationError = apperr.Validation

func stringPtr(s string) *string {
	return &s
}
