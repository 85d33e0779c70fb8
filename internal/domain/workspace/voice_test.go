package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/conversation"
)

func TestComposerAppend(t *testing.T) {
	c := &Composer{}
	c.Append("hello")
	assert.Equal(t, "hello", c.Text())
	c.Append("world")
	assert.Equal(t, "hello world", c.Text())

	c.SetText("   ")
	c.Append("again")
	assert.Equal(t, "again", c.Text())
	c.Append("")
	assert.Equal(t, "again", c.Text())
}

func TestVoiceRecordAndTranscribe(t *testing.T) {
	api := newFakeAPI(conversation.Conversation{ID: 1})
	rec := &fakeRecorder{audio: []byte("OggS audio")}
	w := New(api, rec, 1, zerolog.Nop())
	w.Composer().SetText("typed")
	ctx := context.Background()

	require.NoError(t, w.ToggleRecording(ctx))
	assert.Equal(t, VoiceRecording, w.Voice().State())
	_, open := rec.counts()
	assert.Equal(t, 1, open)

	require.NoError(t, w.ToggleRecording(ctx))
	assert.Equal(t, VoiceIdle, w.Voice().State())
	assert.Equal(t, "typed transcribed", w.Composer().Text())

	starts, open := rec.counts()
	assert.Equal(t, 1, starts)
	assert.Zero(t, open)
}

func TestVoiceToggleWhileTranscribingIsNoOp(t *testing.T) {
	api := newFakeAPI(conversation.Conversation{ID: 1})
	entered := make(chan struct{})
	release := make(chan struct{})
	api.transcribe = func([]byte) (string, error) {
		close(entered)
		<-release
		return "done", nil
	}
	rec := &fakeRecorder{audio: []byte("audio")}
	v := NewVoice(rec, api, &Composer{}, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, v.Toggle(ctx))
	stopped := make(chan error, 1)
	go func() { stopped <- v.Toggle(ctx) }()
	<-entered

	assert.Equal(t, VoiceTranscribing, v.State())
	for i := 0; i < 3; i++ {
		assert.NoError(t, v.Toggle(ctx))
	}
	_, err := v.TranscribeFile(ctx, "clip.mp3", []byte("more"))
	assert.ErrorIs(t, err, ErrTranscribing)

	close(release)
	require.NoError(t, <-stopped)

	starts, _ := rec.counts()
	assert.Equal(t, 1, starts)
	_, transcribe := api.calls()
	assert.Equal(t, 1, transcribe)
	assert.Equal(t, VoiceIdle, v.State())
}

func TestVoiceEmptyCaptureIsDiscarded(t *testing.T) {
	api := newFakeAPI(conversation.Conversation{ID: 1})
	rec := &fakeRecorder{}
	v := NewVoice(rec, api, &Composer{}, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, v.StartRecording(ctx))
	text, err := v.StopRecording(ctx)
	require.NoError(t, err)
	assert.Empty(t, text)

	text, err = v.TranscribeFile(ctx, "empty.webm", nil)
	require.NoError(t, err)
	assert.Empty(t, text)

	_, transcribe := api.calls()
	assert.Zero(t, transcribe)
	assert.Equal(t, VoiceIdle, v.State())
}

func TestVoicePermissionDenied(t *testing.T) {
	api := newFakeAPI(conversation.Conversation{ID: 1})
	rec := &fakeRecorder{err: errors.New("device busy")}
	w := New(api, rec, 1, zerolog.Nop())

	err := w.ToggleRecording(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindPermission))
	assert.Equal(t, VoiceIdle, w.Voice().State())
	assert.Contains(t, w.Status(), "microphone")

	noMic := New(api, nil, 1, zerolog.Nop())
	assert.ErrorIs(t, noMic.ToggleRecording(context.Background()), ErrNoRecorder)
}

func TestVoiceUploadRefusedWhileRecording(t *testing.T) {
	api := newFakeAPI(conversation.Conversation{ID: 1})
	rec := &fakeRecorder{audio: []byte("audio")}
	w := New(api, rec, 1, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, w.ToggleRecording(ctx))
	_, err := w.TranscribeFile(ctx, "clip.mp3", []byte("ID3"))
	assert.ErrorIs(t, err, ErrRecording)

	require.NoError(t, w.Close())
	_, open := rec.counts()
	assert.Zero(t, open)
	assert.Equal(t, VoiceIdle, w.Voice().State())

	text, err := w.TranscribeFile(ctx, "clip.mp3", []byte("ID3"))
	require.NoError(t, err)
	assert.Equal(t, "transcribed", text)
	assert.Equal(t, "transcribed", w.Composer().Text())
}

func TestVoiceTranscriptionFailureReturnsToIdle(t *testing.T) {
	api := newFakeAPI(conversation.Conversation{ID: 1})
	api.transcribe = func([]byte) (string, error) {
		return "", &apperr.Error{Kind: apperr.KindDomain, Message: "Unsupported audio format", StatusCode: 400}
	}
	w := New(api, nil, 1, zerolog.Nop())
	w.Composer().SetText("keep")

	_, err := w.TranscribeFile(context.Background(), "x.bin", []byte{1, 2, 3})
	require.Error(t, err)
	assert.Equal(t, "Unsupported audio format", w.Status())
	assert.Equal(t, "keep", w.Composer().Text())
	assert.Equal(t, VoiceIdle, w.Voice().State())
}
