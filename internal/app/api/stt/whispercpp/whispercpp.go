package whispercpp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"healthvoice/internal/app/api/stt"
)

// LocalTranscriber runs a whisper.cpp binary against a local audio file.
// The binary and model paths come from configuration; the optional initial
// prompt seeds the decoder with clinical vocabulary so drug names and exam
// terms survive transcription.
type LocalTranscriber struct {
	binaryPath    string
	modelPath     string
	language      string
	initialPrompt string
	logger        *zap.Logger
}

// NewLocalTranscriber creates a whisper.cpp backed transcriber.
func NewLocalTranscriber(binaryPath, modelPath, language, initialPrompt string, logger *zap.Logger) *LocalTranscriber {
	return &LocalTranscriber{
		binaryPath:    binaryPath,
		modelPath:     modelPath,
		language:      language,
		initialPrompt: initialPrompt,
		logger:        logger,
	}
}

func (lt *LocalTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	outputBase := filepath.Join(os.TempDir(), fmt.Sprintf("whisper-%d", os.Getpid()))

	args := []string{
		"-m", lt.modelPath,
		"-f", audioPath,
		"-otxt",
		"-of", outputBase,
	}
	if lt.language != "" {
		args = append(args, "-l", lt.language)
	}
	if lt.initialPrompt != "" {
		args = append(args, "--prompt", lt.initialPrompt)
	}

	lt.logger.Info("running whisper.cpp",
		zap.String("audio", audioPath),
		zap.String("command", lt.binaryPath+" "+strings.Join(args, " ")))

	command := exec.CommandContext(ctx, lt.binaryPath, args...)
	var stderr bytes.Buffer
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", &stt.TranscriptionError{
			Path: audioPath,
			Err:  fmt.Errorf("command execution error: %v, stderr: %s", err, stderr.String()),
		}
	}

	outputFile := outputBase + ".txt"
	defer os.Remove(outputFile)

	output, err := os.ReadFile(outputFile)
	if err != nil {
		return "", &stt.TranscriptionError{
			Path: audioPath,
			Err:  fmt.Errorf("failed to read output file: %w", err),
		}
	}
	return strings.TrimSpace(string(output)), nil
}
