// Package language lists the languages offered by the workspace selectors.
package language

import "strings"

// Language pairs a selector code with the name sent to the backend.
type Language struct {
	Code string
	Name string
}

// Auto is the source selector value that lets the backend detect the language.
const Auto = "auto"

var targets = []Language{
	{Code: "en", Name: "English"},
	{Code: "ar", Name: "Arabic"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "es", Name: "Spanish"},
}

// Targets returns the selectable translation targets.
func Targets() []Language {
	out := make([]Language, len(targets))
	copy(out, targets)
	return out
}

// Sources returns the selectable source languages, auto detection first.
func Sources() []Language {
	return append([]Language{{Code: Auto, Name: "Auto detect"}}, Targets()...)
}

// Lookup finds a target language by code or name, case-insensitively.
func Lookup(value string) (Language, bool) {
	value = strings.TrimSpace(value)
	for _, lang := range targets {
		if strings.EqualFold(lang.Code, value) || strings.EqualFold(lang.Name, value) {
			return lang, true
		}
	}
	return Language{}, false
}

// NameFor returns the backend name for a target code, English when unknown.
func NameFor(code string) string {
	if lang, ok := Lookup(code); ok {
		return lang.Name
	}
	return "English"
}

// Transcription languages accepted by the audio settings panel.
var transcription = []string{Auto, "ar", "en", "fr", "de", "es", "tr"}

// IsTranscriptionLanguage reports whether code is offered by the audio panel.
func IsTranscriptionLanguage(code string) bool {
	for _, c := range transcription {
		if c == code {
			return true
		}
	}
	return false
}
