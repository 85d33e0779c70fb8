package apiclient

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/janhq/jan-translator/internal/domain/apperr"
)

const defaultRecordingName = "recording.webm"

type transcriptionResponse struct {
	TranscribedText string `json:"transcribed_text"`
}

// Transcribe uploads an audio clip as multipart form data and returns the
// recognised text. The part content type is sniffed from the audio itself.
func (c *Client) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", apperr.Validation("audio clip is empty")
	}

	detected := mimetype.Detect(audio)
	filename = uploadName(filename, detected)

	req := c.request(ctx).SetMultipartField("audio_file", filename, detected.String(), bytes.NewReader(audio))
	resp, err := c.execute(ctx, "transcribe", http.MethodPost, "/transcribe", req)
	if err != nil {
		return "", err
	}
	var out transcriptionResponse
	if err := decodeJSON(resp, &out); err != nil {
		return "", err
	}
	return out.TranscribedText, nil
}

// TextToSpeech synthesises text and returns the encoded audio (audio/mpeg).
func (c *Client) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	req := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "audio/mpeg").
		SetBody(map[string]string{"text": text})
	resp, err := c.execute(ctx, "text_to_speech", http.MethodPost, "/text-to-speech", req)
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func uploadName(filename string, detected *mimetype.MIME) string {
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		if ext := detected.Extension(); ext != "" {
			return "recording" + ext
		}
		return defaultRecordingName
	}
	if filepath.Ext(filename) == "" && detected.Extension() != "" {
		return filename + detected.Extension()
	}
	return filename
}
