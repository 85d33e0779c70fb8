package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/janhq/jan-translator/internal/domain/apperr"
)

// ProcessPlayer plays audio by piping it into a command's stdin.
type ProcessPlayer struct {
	command []string
}

// NewProcessPlayer parses a whitespace separated command line.
func NewProcessPlayer(command string) (*ProcessPlayer, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, errors.New("player command is empty")
	}
	return &ProcessPlayer{command: args}, nil
}

// Play blocks until the player exits or ctx is done.
func (p *ProcessPlayer) Play(ctx context.Context, audio []byte) error {
	if len(audio) == 0 {
		return apperr.Validation("no audio to play")
	}
	cmd := exec.CommandContext(ctx, p.command[0], p.command[1:]...)
	cmd.Stdin = bytes.NewReader(audio)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return apperr.Wrap(apperr.KindPermission, fmt.Sprintf("audio playback failed: %s", detail), err)
	}
	return nil
}
