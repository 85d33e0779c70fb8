// Package redact scrubs user content before it reaches the logs.
package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// Level controls how much user content a Redactor lets through.
type Level string

const (
	// LevelNone replaces all content with a placeholder.
	LevelNone Level = "none"
	// LevelHashed keeps the text but hashes emails, phone numbers and credentials.
	LevelHashed Level = "hashed"
	// LevelFull logs content verbatim.
	LevelFull Level = "full"
)

// ParseLevel resolves a level name. Unknown names are an error.
func ParseLevel(value string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(value))); l {
	case LevelNone, LevelHashed, LevelFull:
		return l, nil
	case "":
		return LevelHashed, nil
	default:
		return "", fmt.Errorf("unknown redaction level %q (use none, hashed or full)", value)
	}
}

// Redactor scrubs log fields. The zero value is not usable; use New.
type Redactor struct {
	level Level
	salt  string

	email  *regexp.Regexp
	phone  *regexp.Regexp
	apiKey *regexp.Regexp
	jwt    *regexp.Regexp
}

// New returns a Redactor. salt keeps hashes stable within one deployment.
func New(level Level, salt string) *Redactor {
	return &Redactor{
		level:  level,
		salt:   salt,
		email:  regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		phone:  regexp.MustCompile(`\+?\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		apiKey: regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{6,}`),
		jwt:    regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
	}
}

// Level returns the configured level.
func (r *Redactor) Level() Level {
	return r.level
}

// Text scrubs free text such as a message or a transcription.
func (r *Redactor) Text(input string) string {
	switch r.level {
	case LevelNone:
		if input == "" {
			return ""
		}
		return "[REDACTED]"
	case LevelFull:
		return input
	default:
		return r.hashed(input)
	}
}

func (r *Redactor) hashed(input string) string {
	out := r.apiKey.ReplaceAllString(input, "[KEY:REDACTED]")
	out = r.jwt.ReplaceAllString(out, "[TOKEN:REDACTED]")
	out = r.email.ReplaceAllStringFunc(out, func(m string) string {
		return "[EMAIL:" + r.hash(m) + "]"
	})
	return r.phone.ReplaceAllStringFunc(out, func(m string) string {
		return "[PHONE:" + r.hash(m) + "]"
	})
}

// Secret masks a credential whatever the level, keeping the last four
// characters so keys can be told apart.
func (r *Redactor) Secret(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return "****" + value[len(value)-4:]
}

func (r *Redactor) hash(data string) string {
	sum := sha256.Sum256([]byte(data + r.salt))
	return hex.EncodeToString(sum[:])[:8]
}
