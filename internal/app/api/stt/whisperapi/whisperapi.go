package whisperapi

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"healthvoice/internal/app/api/stt"
)

// RemoteTranscriber implements transcription over the OpenAI audio API.
// With OPENAI_BASE_URL pointed at a local whisper server it keeps audio
// on-machine while reusing the same wire protocol.
type RemoteTranscriber struct {
	client        *openai.Client
	initialPrompt string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, initialPrompt string) *RemoteTranscriber {
	return &RemoteTranscriber{client: client, initialPrompt: initialPrompt}
}

func (rt *RemoteTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Prompt:   rt.initialPrompt,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", &stt.TranscriptionError{Path: audioPath, Err: err}
	}
	return resp.Text, nil
}
