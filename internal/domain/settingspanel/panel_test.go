package settingspanel

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/dictionary"
	"github.com/janhq/jan-translator/internal/domain/profile"
	"github.com/janhq/jan-translator/internal/domain/prompt"
	"github.com/janhq/jan-translator/internal/domain/setting"
)

type memoryAPI struct {
	mu         sync.Mutex
	settings   map[string]string
	profile    profile.Profile
	prompts    map[int64]prompt.Prompt
	entries    map[int64]dictionary.Entry
	nextID     int64
	upserts    int
	failUpsert error
}

func newMemoryAPI() *memoryAPI {
	return &memoryAPI{
		settings: make(map[string]string),
		prompts:  make(map[int64]prompt.Prompt),
		entries:  make(map[int64]dictionary.Entry),
	}
}

func (m *memoryAPI) GetSetting(_ context.Context, key string) (setting.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.settings[key]; ok {
		return setting.Setting{Key: key, Value: &v}, nil
	}
	return setting.Setting{Key: key}, nil
}

func (m *memoryAPI) UpsertSetting(_ context.Context, key, value string) (setting.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.failUpsert != nil {
		return setting.Setting{}, m.failUpsert
	}
	m.settings[key] = value
	return setting.Setting{Key: key, Value: &value}, nil
}

func (m *memoryAPI) GetProfile(context.Context) (profile.Profile, error) {
	return m.profile, nil
}

func (m *memoryAPI) UpdateProfile(_ context.Context, p profile.Profile) (profile.Profile, error) {
	p.ID = 1
	m.profile = p
	return p, nil
}

func (m *memoryAPI) ListPrompts(context.Context) ([]prompt.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]prompt.Prompt, 0, len(m.prompts))
	for _, p := range m.prompts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryAPI) CreatePrompt(_ context.Context, title, content string) (prompt.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p := prompt.Prompt{ID: m.nextID, Title: title, Content: content}
	m.prompts[p.ID] = p
	return p, nil
}

func (m *memoryAPI) UpdatePrompt(_ context.Context, id int64, params prompt.Params) (prompt.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prompts[id]
	if !ok {
		return p, &apperr.Error{Kind: apperr.KindDomain, Message: "Prompt not found", StatusCode: 404}
	}
	if params.Title != nil {
		p.Title = *params.Title
	}
	if params.Content != nil {
		p.Content = *params.Content
	}
	m.prompts[id] = p
	return p, nil
}

func (m *memoryAPI) DeletePrompt(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.prompts, id)
	return nil
}

func (m *memoryAPI) ListDictionaryEntries(context.Context) ([]dictionary.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]dictionary.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourceText < out[j].SourceText })
	return out, nil
}

func (m *memoryAPI) CreateDictionaryEntry(_ context.Context, source, target string) (dictionary.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e := dictionary.Entry{ID: m.nextID, SourceText: source, TargetText: target}
	m.entries[e.ID] = e
	return e, nil
}

func (m *memoryAPI) UpdateDictionaryEntry(_ context.Context, id int64, params dictionary.Params) (dictionary.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entries[id]
	e.SourceText, e.TargetText = *params.SourceText, *params.TargetText
	m.entries[id] = e
	return e, nil
}

func (m *memoryAPI) DeleteDictionaryEntry(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func newService(api API) *Service {
	return NewService(api, zerolog.Nop(), 0)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(" " + string(k) + " ")
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("appearance")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestEveryKindOpens(t *testing.T) {
	svc := newService(newMemoryAPI())
	for _, k := range Kinds() {
		panel, err := svc.Open(context.Background(), k)
		require.NoError(t, err, k)
		assert.Equal(t, k, panel.Kind())
	}
}

func TestModelsPanelDefaultsAndVoiceRoundTrip(t *testing.T) {
	api := newMemoryAPI()
	svc := newService(api)
	ctx := context.Background()

	panel, err := svc.Open(ctx, KindModels)
	require.NoError(t, err)
	models := panel.(*ModelsPanel)
	assert.Equal(t, "gpt-4o-mini", models.TranslationModel)
	assert.Equal(t, "tts-1", models.TTSModel)
	assert.Equal(t, "alloy", models.TTSVoice)

	models.TTSVoice = "nova"
	outcome, err := models.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultCloseDelay, outcome.CloseAfter)
	assert.Equal(t, "Settings saved.", models.Status())

	got, err := api.GetSetting(ctx, setting.KeyTTSVoice)
	require.NoError(t, err)
	assert.Equal(t, "nova", got.ValueOr(""))

	reopened, err := svc.Open(ctx, KindModels)
	require.NoError(t, err)
	assert.Equal(t, "nova", reopened.(*ModelsPanel).TTSVoice)
}

func TestModelsPanelRejectsUnknownVoice(t *testing.T) {
	api := newMemoryAPI()
	panel, err := newService(api).Open(context.Background(), KindModels)
	require.NoError(t, err)
	models := panel.(*ModelsPanel)

	models.TTSVoice = "robot"
	_, err = models.Save(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, models.Status(), "voice must be one of")
	assert.Zero(t, api.upserts)
}

func TestAPIKeyPanel(t *testing.T) {
	api := newMemoryAPI()
	svc := NewService(api, zerolog.Nop(), 10*time.Millisecond)
	panel, err := svc.Open(context.Background(), KindAPIKey)
	require.NoError(t, err)
	key := panel.(*APIKeyPanel)

	key.Key = "  "
	_, err = key.Save(context.Background())
	assert.EqualError(t, err, "API key is required")

	key.Key = "sk-test"
	outcome, err := key.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, outcome.CloseAfter)
	assert.Empty(t, key.Key)
	assert.Equal(t, "sk-test", api.settings[setting.KeyOpenAIAPIKey])
}

func TestFormClosesAfterDelay(t *testing.T) {
	api := newMemoryAPI()
	svc := NewService(api, zerolog.Nop(), time.Second)
	panel, err := svc.Open(context.Background(), KindAPIKey)
	require.NoError(t, err)
	key := panel.(*APIKeyPanel)
	assert.False(t, key.Closed(time.Now().Add(time.Hour)))

	key.Key = "sk-test"
	saved := time.Now()
	_, err = key.Save(context.Background())
	require.NoError(t, err)
	assert.False(t, key.Closed(saved))
	assert.True(t, key.Closed(time.Now().Add(time.Second)))

	api.failUpsert = &apperr.Error{Kind: apperr.KindTransport, Message: "backend unavailable"}
	key.Key = "sk-other"
	_, err = key.Save(context.Background())
	require.Error(t, err)
	assert.False(t, key.Closed(time.Now().Add(time.Hour)))
}

func TestListPanelsStayOpen(t *testing.T) {
	panel, err := newService(newMemoryAPI()).Open(context.Background(), KindDictionary)
	require.NoError(t, err)
	dict := panel.(*DictionaryPanel)

	_, err = dict.Add(context.Background(), "hola", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Entry saved.", dict.Status())
	assert.False(t, dict.Closed(time.Now().Add(time.Hour)))
}

func TestAPIKeyPanelSurfacesBackendDetail(t *testing.T) {
	api := newMemoryAPI()
	api.failUpsert = &apperr.Error{Kind: apperr.KindDomain, Message: "value too long", StatusCode: 422}
	panel, err := newService(api).Open(context.Background(), KindAPIKey)
	require.NoError(t, err)
	key := panel.(*APIKeyPanel)

	key.Key = "sk-test"
	_, err = key.Save(context.Background())
	require.Error(t, err)
	assert.Equal(t, "value too long", key.Status())
	assert.Equal(t, "sk-test", key.Key)
}

func TestAudioPanel(t *testing.T) {
	api := newMemoryAPI()
	panel, err := newService(api).Open(context.Background(), KindAudio)
	require.NoError(t, err)
	audio := panel.(*AudioPanel)
	assert.Equal(t, "auto", audio.TranscriptionLanguage)

	audio.TranscriptionLanguage = "xx"
	_, err = audio.Save(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	audio.TranscriptionLanguage = "tr"
	_, err = audio.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tr", api.settings[setting.KeyTranscriptionLanguage])
}

func TestProfilePanel(t *testing.T) {
	api := newMemoryAPI()
	panel, err := newService(api).Open(context.Background(), KindProfile)
	require.NoError(t, err)
	p := panel.(*ProfilePanel)

	require.NoError(t, p.Set("full_name", "Amira Haddad"))
	require.NoError(t, p.Set("email", "not-an-email"))
	assert.Error(t, p.Set("nickname", "x"))
	_, err = p.Save(context.Background())
	assert.EqualError(t, err, "email must be a valid email address")

	require.NoError(t, p.Set("email", ""))
	_, err = p.Save(context.Background())
	require.NoError(t, err)
	require.NotNil(t, api.profile.FullName)
	assert.Equal(t, "Amira Haddad", *api.profile.FullName)
	assert.Nil(t, api.profile.Email)
}

func TestPromptsPanelDefault(t *testing.T) {
	api := newMemoryAPI()
	ctx := context.Background()
	panel, err := newService(api).Open(ctx, KindPrompts)
	require.NoError(t, err)
	prompts := panel.(*PromptsPanel)

	_, err = prompts.Create(ctx, "Formal", " ")
	assert.EqualError(t, err, "content is required")

	formal, err := prompts.Create(ctx, "Formal", "Translate formally.")
	require.NoError(t, err)
	casual, err := prompts.Create(ctx, "Casual", "Translate casually.")
	require.NoError(t, err)
	require.Len(t, prompts.Prompts, 2)

	require.NoError(t, prompts.SetDefault(ctx, formal.ID))
	def, ok := prompts.Default()
	require.True(t, ok)
	assert.Equal(t, "Formal", def.Title)

	require.NoError(t, prompts.Delete(ctx, casual.ID))
	assert.True(t, prompts.IsDefault(formal.ID))

	require.NoError(t, prompts.Delete(ctx, formal.ID))
	assert.Nil(t, prompts.DefaultID)
	assert.Equal(t, "", api.settings[setting.KeyDefaultPromptID])
	assert.Empty(t, prompts.Prompts)
}

func TestPromptsPanelIgnoresMalformedDefault(t *testing.T) {
	api := newMemoryAPI()
	api.settings[setting.KeyDefaultPromptID] = "abc"
	panel, err := newService(api).Open(context.Background(), KindPrompts)
	require.NoError(t, err)
	assert.Nil(t, panel.(*PromptsPanel).DefaultID)
}

func TestDictionaryPanel(t *testing.T) {
	api := newMemoryAPI()
	ctx := context.Background()
	panel, err := newService(api).Open(ctx, KindDictionary)
	require.NoError(t, err)
	dict := panel.(*DictionaryPanel)

	_, err = dict.Add(ctx, "Intelligent Translator", "")
	assert.EqualError(t, err, "both the source and target text are required")

	entry, err := dict.Add(ctx, "Intelligent Translator", "Traducteur intelligent")
	require.NoError(t, err)
	_, err = dict.Add(ctx, "App", "Application")
	require.NoError(t, err)
	require.Len(t, dict.Entries, 2)
	assert.Equal(t, "App", dict.Entries[0].SourceText)

	_, err = dict.Update(ctx, entry.ID, "Intelligent Translator", "Le traducteur")
	require.NoError(t, err)
	assert.Equal(t, "Le traducteur", dict.Entries[1].TargetText)

	require.NoError(t, dict.Delete(ctx, entry.ID))
	assert.Len(t, dict.Entries, 1)
	assert.Equal(t, "Entry deleted.", dict.Status())
}
