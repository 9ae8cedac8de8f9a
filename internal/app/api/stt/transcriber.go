package stt

import (
	"context"
	"fmt"
)

// Transcriber converts an audio file into plain text. Implementations wrap
// heavy models and may take minutes per file; callers are expected to
// serialize invocations through the shared model gate.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// TranscriptionError reports a speech-to-text failure for one audio file.
type TranscriptionError struct {
	Path string
	Err  error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription of %s failed: %v", e.Path, e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}
