package workspace

import (
	"errors"
	"strings"
	"sync"

	"github.com/janhq/jan-translator/internal/domain/apperr"
)

// ErrSendInFlight is returned when the composer already has a send waiting
// for the backend.
var ErrSendInFlight = apperr.New(apperr.KindValidation, "a message is already being sent")

// Composer is the text input of a workspace.
type Composer struct {
	mu      sync.Mutex
	text    string
	sending bool
}

// Text returns the current input.
func (c *Composer) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// SetText replaces the current input.
func (c *Composer) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
}

// Append adds text after the current input, separated by one space when the
// input is not blank.
func (c *Composer) Append(text string) {
	if text == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(c.text) == "" {
		c.text = text
		return
	}
	c.text = c.text + " " + text
}

// Sending reports whether a send from this composer is in flight.
func (c *Composer) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

var errNothingToSend = errors.New("nothing to send")

// take clears the input and marks a send in flight.
func (c *Composer) take() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(c.text) == "" {
		return "", errNothingToSend
	}
	if c.sending {
		return "", ErrSendInFlight
	}
	text := c.text
	c.text = ""
	c.sending = true
	return text, nil
}

func (c *Composer) done() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sending = false
}
