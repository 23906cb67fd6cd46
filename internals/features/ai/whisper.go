// internals/features/ai/whisper.go
package ai

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"snop_backend/internals/configs"
)

// WhisperClient membungkus transcription API untuk grading pronunciation
type WhisperClient struct {
	client *openai.Client
	model  string
}

func NewWhisperClient() (*WhisperClient, error) {
	if configs.OpenAIAPIKey == "" {
		return nil, errors.New("OPENAI_API_KEY belum di-set")
	}
	return &WhisperClient{
		client: openai.NewClient(configs.OpenAIAPIKey),
		model:  configs.GetEnv("WHISPER_MODEL", openai.Whisper1),
	}, nil
}

// Transcribe mengirim audio user dan mengembalikan transkrip Norwegia
func (w *WhisperClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: filename,
		Reader:   audio,
		Language: "no",
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
