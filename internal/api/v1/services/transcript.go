package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	apierrors "healthvoice/internal/api/errors"
	"healthvoice/internal/api/v1/dto"
	"healthvoice/internal/app/lifecycle"
	"healthvoice/internal/app/model"
	"healthvoice/internal/app/repository"
	"healthvoice/internal/app/storage"
)

// allowedAudioExtensions are the upload formats the transcriber can read.
var allowedAudioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".mp4":  true,
	".flac": true,
	".ogg":  true,
	".webm": true,
}

// TranscriptServiceImpl implements the TranscriptService interface
type TranscriptServiceImpl struct {
	manager *lifecycle.Manager
	audio   storage.AudioStore
}

// NewTranscriptService creates a new transcript service
func NewTranscriptService(manager *lifecycle.Manager, audio storage.AudioStore) TranscriptService {
	return &TranscriptServiceImpl{
		manager: manager,
		audio:   audio,
	}
}

// Upload stores a new audio file and queues it for transcription
func (s *TranscriptServiceImpl) Upload(ctx context.Context, filename string, audio io.Reader) (*dto.TranscriptResponse, error) {
	name := storage.SanitizeFilename(filename)
	if name == "" {
		return nil, apierrors.NewBadRequestError("Filename is required")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedAudioExtensions[ext] {
		return nil, apierrors.NewValidationError("Unsupported audio format", map[string]string{
			"file": fmt.Sprintf("extension %q is not supported", ext),
		})
	}

	storagePath, err := s.audio.Save(ctx, name, audio)
	if err != nil {
		return nil, apierrors.WrapError(err, apierrors.KindInternal, "Failed to store audio file")
	}

	t, err := s.manager.Create(ctx, name, storagePath)
	if err != nil {
		// The record is the source of truth; audio without a record is
		// an orphan.
		_ = s.audio.Remove(ctx, storagePath)
		return nil, mapTranscriptError(err)
	}

	if err := s.manager.Enqueue(ctx, t.ID); err != nil {
		return nil, mapTranscriptError(err)
	}
	t, err = s.manager.Get(ctx, t.ID)
	if err != nil {
		return nil, mapTranscriptError(err)
	}

	resp := dto.ToTranscriptResponse(t)
	return &resp, nil
}

// Record stores a browser recording under a generated filename and queues it
func (s *TranscriptServiceImpl) Record(ctx context.Context, label string, audio io.Reader) (*dto.TranscriptResponse, error) {
	stamp := time.Now().UTC().Format("20060102_150405")
	name := fmt.Sprintf("recording_%s_%s.webm", stamp, uuid.New().String()[:8])
	if label != "" {
		name = fmt.Sprintf("%s_%s.webm", storage.SanitizeFilename(label), stamp)
	}
	return s.Upload(ctx, name, audio)
}

// Get returns one transcript
func (s *TranscriptServiceImpl) Get(ctx context.Context, id string) (*dto.TranscriptResponse, error) {
	t, err := s.manager.Get(ctx, id)
	if err != nil {
		return nil, mapTranscriptError(err)
	}
	resp := dto.ToTranscriptResponse(t)
	return &resp, nil
}

// GetStatus returns the polling payload for one transcript
func (s *TranscriptServiceImpl) GetStatus(ctx context.Context, id string) (*dto.StatusResponse, error) {
	t, err := s.manager.Get(ctx, id)
	if err != nil {
		return nil, mapTranscriptError(err)
	}
	resp := dto.ToStatusResponse(t)
	return &resp, nil
}

// List returns transcripts newest first, optionally filtered by status
func (s *TranscriptServiceImpl) List(ctx context.Context, query dto.ListTranscriptsQuery) ([]dto.TranscriptResponse, error) {
	transcripts, err := s.manager.List(ctx)
	if err != nil {
		return nil, mapTranscriptError(err)
	}

	responses := dto.ToTranscriptResponses(transcripts)
	if query.Status != "" {
		filtered := responses[:0]
		for _, r := range responses {
			if r.Status == query.Status {
				filtered = append(filtered, r)
			}
		}
		responses = filtered
	}

	if query.Offset >= len(responses) {
		return []dto.TranscriptResponse{}, nil
	}
	responses = responses[query.Offset:]
	if query.Limit > 0 && query.Limit < len(responses) {
		responses = responses[:query.Limit]
	}
	return responses, nil
}

// Start queues a pending transcript for processing
func (s *TranscriptServiceImpl) Start(ctx context.Context, id string) (*dto.TranscriptResponse, error) {
	if err := s.manager.Enqueue(ctx, id); err != nil {
		return nil, mapTranscriptError(err)
	}
	return s.Get(ctx, id)
}

// GetText returns the transcript text once transcription has completed
func (s *TranscriptServiceImpl) GetText(ctx context.Context, id string) (string, error) {
	t, err := s.manager.Get(ctx, id)
	if err != nil {
		return "", mapTranscriptError(err)
	}
	if t.Status != model.StatusCompleted || t.Text == nil {
		return "", apierrors.NewConflictError("Transcript is not completed yet")
	}
	return *t.Text, nil
}

// Retry re-queues a failed transcript
func (s *TranscriptServiceImpl) Retry(ctx context.Context, id string) (*dto.TranscriptResponse, error) {
	if err := s.manager.Retry(ctx, id); err != nil {
		return nil, mapTranscriptError(err)
	}
	if err := s.manager.Enqueue(ctx, id); err != nil {
		return nil, mapTranscriptError(err)
	}
	return s.Get(ctx, id)
}

// Delete removes a transcript, its audio and all of its QA entries
func (s *TranscriptServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.manager.Delete(ctx, id); err != nil {
		return mapTranscriptError(err)
	}
	return nil
}

// mapTranscriptError translates domain errors into API errors
func mapTranscriptError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apierrors.NewNotFoundError("transcript")
	case errors.Is(err, repository.ErrDuplicateFilename):
		return apierrors.NewConflictError("A transcript with this filename already exists")
	case errors.Is(err, lifecycle.ErrInvalidState):
		return apierrors.NewConflictError(err.Error())
	default:
		return apierrors.WrapError(err, apierrors.KindInternal, "Internal server error")
	}
}
