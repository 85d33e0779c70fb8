// Package audio runs the external processes used for microphone capture and
// speech playback.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/workspace"
)

const (
	defaultStartupGrace = 300 * time.Millisecond
	defaultStopTimeout  = 3 * time.Second
)

// ProcessRecorder captures audio by running a command that writes the
// recording to stdout until it receives an interrupt.
type ProcessRecorder struct {
	command      []string
	log          zerolog.Logger
	startupGrace time.Duration
	stopTimeout  time.Duration
}

// NewProcessRecorder parses a whitespace separated command line.
func NewProcessRecorder(command string, log zerolog.Logger) (*ProcessRecorder, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, errors.New("recorder command is empty")
	}
	return &ProcessRecorder{
		command:      args,
		log:          log.With().Str("component", "recorder").Logger(),
		startupGrace: defaultStartupGrace,
		stopTimeout:  defaultStopTimeout,
	}, nil
}

// Start launches the recorder. A command that is missing or exits with an
// error during the startup grace period is reported as a denied device.
// Cancelling ctx interrupts the recorder like Stop does, so the audio
// written so far is still returned by Stop.
func (r *ProcessRecorder) Start(ctx context.Context) (workspace.Capture, error) {
	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...)
	c := &processCapture{ctx: ctx, cmd: cmd, done: make(chan struct{}), stopTimeout: r.stopTimeout, log: r.log}
	cmd.Stdout = &c.stdout
	cmd.Stderr = &c.stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = r.stopTimeout

	if err := cmd.Start(); err != nil {
		return nil, apperr.Wrap(apperr.KindPermission, fmt.Sprintf("cannot start the audio recorder %q", r.command[0]), err)
	}
	go func() {
		c.waitErr = cmd.Wait()
		close(c.done)
	}()

	select {
	case <-c.done:
		if c.waitErr != nil {
			detail := strings.TrimSpace(c.stderr.String())
			if detail == "" {
				detail = c.waitErr.Error()
			}
			return nil, apperr.Wrap(apperr.KindPermission, "could not access the microphone: "+detail, c.waitErr)
		}
	case <-time.After(r.startupGrace):
	}

	r.log.Debug().Int("pid", cmd.Process.Pid).Msg("recording started")
	return c, nil
}

type processCapture struct {
	ctx         context.Context
	cmd         *exec.Cmd
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	done        chan struct{}
	waitErr     error
	stopTimeout time.Duration
	log         zerolog.Logger

	once    sync.Once
	audio   []byte
	stopErr error
}

// Stop interrupts the recorder, waits for it to exit and returns what it
// wrote. The process is killed when it ignores the interrupt.
func (c *processCapture) Stop() ([]byte, error) {
	c.once.Do(func() {
		signalled := false
		select {
		case <-c.done:
		default:
			signalled = true
			if err := c.cmd.Process.Signal(os.Interrupt); err != nil {
				_ = c.cmd.Process.Kill()
			}
			select {
			case <-c.done:
			case <-time.After(c.stopTimeout):
				c.log.Warn().Msg("recorder ignored interrupt, killing it")
				_ = c.cmd.Process.Kill()
				<-c.done
			}
		}

		// A cancelled ctx interrupted the recorder through cmd.Cancel. Wait
		// then reports the context error when the recorder exited cleanly.
		cancelled := c.ctx.Err() != nil
		var exitErr *exec.ExitError
		interrupted := (signalled || cancelled) && errors.As(c.waitErr, &exitErr)
		if cancelled && errors.Is(c.waitErr, c.ctx.Err()) {
			interrupted = true
		}
		if c.waitErr != nil && !interrupted {
			c.stopErr = fmt.Errorf("recorder exited: %w", c.waitErr)
			return
		}
		c.audio = c.stdout.Bytes()
		c.log.Debug().Int("bytes", len(c.audio)).Msg("recording stopped")
	})
	return c.audio, c.stopErr
}
