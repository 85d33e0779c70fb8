package setting

// Setting is a user-global key/value pair. A nil Value means unset.
type Setting struct {
	Key   string  `json:"key" yaml:"key"`
	Value *string `json:"value" yaml:"value"`
}

// Well known setting keys consumed by the backend.
const (
	KeyOpenAIAPIKey          = "openai_api_key"
	KeyTranslationModel      = "translation_model"
	KeyTTSModel              = "tts_model"
	KeyTTSVoice              = "tts_voice"
	KeyTranscriptionLanguage = "transcription_language"
	KeyDefaultPromptID       = "default_prompt_id"
)

// Defaults applied when a setting has never been saved.
const (
	DefaultTranslationModel      = "gpt-4o-mini"
	DefaultTTSModel              = "tts-1"
	DefaultTTSVoice              = "alloy"
	DefaultTranscriptionLanguage = "auto"
)

// ValueOr returns the setting value, or fallback when it is unset or empty.
func (s Setting) ValueOr(fallback string) string {
	if s.Value == nil || *s.Value == "" {
		return fallback
	}
	return *s.Value
}
