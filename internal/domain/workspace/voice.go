package workspace

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/infrastructure/metrics"
)

// Recorder acquires the audio input device.
type Recorder interface {
	// Start begins a capture. ctx bounds the lifetime of the capture.
	Start(ctx context.Context) (Capture, error)
}

// Capture is one running recording.
type Capture interface {
	// Stop ends the recording, releases the device and returns the audio.
	Stop() ([]byte, error)
}

// Transcriber turns an audio clip into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio []byte) (string, error)
}

// VoiceState is the state of the voice capture flow.
type VoiceState int

const (
	VoiceIdle VoiceState = iota
	VoiceRecording
	VoiceTranscribing
)

func (s VoiceState) String() string {
	switch s {
	case VoiceRecording:
		return "recording"
	case VoiceTranscribing:
		return "transcribing"
	default:
		return "idle"
	}
}

var (
	// ErrTranscribing is returned when a transcription is already running.
	ErrTranscribing = apperr.New(apperr.KindValidation, "a transcription is already in progress")
	// ErrRecording is returned when a file upload is attempted mid-recording.
	ErrRecording = apperr.New(apperr.KindValidation, "stop the recording first")
	// ErrNoRecorder is returned when no audio input is configured.
	ErrNoRecorder = apperr.New(apperr.KindPermission, "audio recording is not supported here")
)

const (
	sourceMicrophone = "microphone"
	sourceUpload     = "upload"
	recordingName    = "recording.webm"
)

// Voice drives capture and transcription for one composer.
type Voice struct {
	recorder    Recorder
	transcriber Transcriber
	composer    *Composer
	log         zerolog.Logger

	mu       sync.Mutex
	state    VoiceState
	starting bool
	capture  Capture
}

// NewVoice wires a voice flow that appends transcriptions to composer.
// recorder may be nil, in which case only file uploads work.
func NewVoice(recorder Recorder, transcriber Transcriber, composer *Composer, log zerolog.Logger) *Voice {
	return &Voice{
		recorder:    recorder,
		transcriber: transcriber,
		composer:    composer,
		log:         log.With().Str("component", "voice").Logger(),
	}
}

// State returns the current state.
func (v *Voice) State() VoiceState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Toggle starts a recording when idle and stops and transcribes it when
// recording. While transcribing, or while the device is being acquired, it
// does nothing.
func (v *Voice) Toggle(ctx context.Context) error {
	v.mu.Lock()
	state, starting := v.state, v.starting
	v.mu.Unlock()

	if starting {
		return nil
	}
	switch state {
	case VoiceIdle:
		return v.StartRecording(ctx)
	case VoiceRecording:
		_, err := v.StopRecording(ctx)
		return err
	default:
		return nil
	}
}

// StartRecording acquires the device. A denied device leaves the flow idle.
func (v *Voice) StartRecording(ctx context.Context) error {
	v.mu.Lock()
	if v.state == VoiceTranscribing {
		v.mu.Unlock()
		return ErrTranscribing
	}
	if v.state == VoiceRecording || v.starting {
		v.mu.Unlock()
		return nil
	}
	if v.recorder == nil {
		v.mu.Unlock()
		return ErrNoRecorder
	}
	v.starting = true
	v.mu.Unlock()

	capture, err := v.recorder.Start(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.starting = false
	if err != nil {
		v.log.Warn().Err(err).Msg("microphone unavailable")
		if apperr.KindOf(err) != "" {
			return err
		}
		return apperr.Wrap(apperr.KindPermission, "could not access the microphone, check the permissions", err)
	}
	v.capture = capture
	v.state = VoiceRecording
	return nil
}

// StopRecording stops the capture, releases the device and transcribes the
// audio. An empty capture is discarded without a transcription call.
func (v *Voice) StopRecording(ctx context.Context) (string, error) {
	v.mu.Lock()
	switch v.state {
	case VoiceTranscribing:
		v.mu.Unlock()
		return "", ErrTranscribing
	case VoiceIdle:
		v.mu.Unlock()
		return "", nil
	}
	capture := v.capture
	v.capture = nil
	v.state = VoiceTranscribing
	v.mu.Unlock()

	audio, err := capture.Stop()
	if err != nil {
		v.setState(VoiceIdle)
		metrics.RecordTranscription(sourceMicrophone, "capture_error")
		return "", apperr.Wrap(apperr.KindPermission, "recording failed", err)
	}
	if len(audio) == 0 {
		v.setState(VoiceIdle)
		metrics.RecordTranscription(sourceMicrophone, "discarded")
		v.log.Debug().Msg("empty capture discarded")
		return "", nil
	}
	return v.transcribe(ctx, sourceMicrophone, recordingName, audio)
}

// TranscribeFile transcribes an uploaded clip through the same exclusive
// transcribing state as a recording.
func (v *Voice) TranscribeFile(ctx context.Context, filename string, audio []byte) (string, error) {
	v.mu.Lock()
	switch {
	case v.state == VoiceTranscribing:
		v.mu.Unlock()
		return "", ErrTranscribing
	case v.state == VoiceRecording || v.starting:
		v.mu.Unlock()
		return "", ErrRecording
	case len(audio) == 0:
		v.mu.Unlock()
		metrics.RecordTranscription(sourceUpload, "discarded")
		return "", nil
	}
	v.state = VoiceTranscribing
	v.mu.Unlock()

	return v.transcribe(ctx, sourceUpload, filename, audio)
}

// Close stops a running capture and drops its audio.
func (v *Voice) Close() error {
	v.mu.Lock()
	capture := v.capture
	v.capture = nil
	if v.state == VoiceRecording {
		v.state = VoiceIdle
	}
	v.mu.Unlock()

	if capture == nil {
		return nil
	}
	_, err := capture.Stop()
	return err
}

func (v *Voice) transcribe(ctx context.Context, source, filename string, audio []byte) (string, error) {
	defer v.setState(VoiceIdle)

	text, err := v.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		metrics.RecordTranscription(source, "error")
		v.log.Warn().Err(err).Str("source", source).Msg("transcription failed")
		if apperr.KindOf(err) != "" {
			return "", err
		}
		return "", apperr.Wrap(apperr.KindTransport, "could not transcribe the audio", err)
	}
	metrics.RecordTranscription(source, "success")
	v.composer.Append(text)
	return text, nil
}

func (v *Voice) setState(state VoiceState) {
	v.mu.Lock()
	v.state = state
	v.mu.Unlock()
}
