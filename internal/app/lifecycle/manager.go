package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"healthvoice/internal/app/model"
	"healthvoice/internal/app/repository"
	"healthvoice/internal/app/storage"
)

// ErrInvalidState is returned when a requested transition is not legal
// from the transcript's current state.
var ErrInvalidState = errors.New("invalid lifecycle transition")

// Manager owns every state transition of a transcript. All transitions are
// conditional updates in the record store, so restarts and concurrent
// callers cannot observe a transcript in two states; the store decides
// every race.
type Manager struct {
	transcripts repository.TranscriptDAO
	entries     repository.QAEntryDAO
	audio       storage.AudioStore
	logger      *zap.Logger
}

// NewManager creates a lifecycle manager.
func NewManager(
	transcripts repository.TranscriptDAO,
	entries repository.QAEntryDAO,
	audio storage.AudioStore,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		transcripts: transcripts,
		entries:     entries,
		audio:       audio,
		logger:      logger,
	}
}

// Create registers a freshly uploaded or recorded audio file in the
// pending state. A live transcript with the same original filename is
// rejected as a duplicate upload.
func (m *Manager) Create(ctx context.Context, originalFilename, storagePath string) (*model.Transcript, error) {
	t := &model.Transcript{
		ID:               uuid.New().String(),
		OriginalFilename: originalFilename,
		StoragePath:      storagePath,
		Status:           model.StatusPending,
		CreatedAt:        time.Now().UTC(),
	}
	if err := m.transcripts.Create(t); err != nil {
		return nil, err
	}
	m.logger.Info("transcript created",
		zap.String("id", t.ID),
		zap.String("filename", originalFilename))
	return t, nil
}

// Enqueue moves a pending transcript into the worker queue.
func (m *Manager) Enqueue(ctx context.Context, id string) error {
	ok, err := m.transcripts.MarkQueued(id)
	if err != nil {
		return err
	}
	if !ok {
		return m.transitionRefused(id, "enqueue", model.StatusPending)
	}
	m.logger.Info("transcript queued", zap.String("id", id))
	return nil
}

// ClaimNext atomically picks the oldest queued transcript for processing.
// Returns nil when nothing is eligible or another transcript is already
// processing; exactly one concurrent caller can receive any given item.
func (m *Manager) ClaimNext(ctx context.Context) (*model.Transcript, error) {
	return m.transcripts.ClaimNext(time.Now().UTC())
}

// Complete transitions a processing transcript to completed and stores the
// text. Completing a transcript that was deleted mid-flight is a no-op so
// a late worker never crashes.
func (m *Manager) Complete(ctx context.Context, id, text string) error {
	ok, err := m.transcripts.MarkCompleted(id, text, time.Now().UTC())
	if err != nil {
		return err
	}
	if !ok {
		return m.lateTransitionRefused(id, "complete")
	}
	m.logger.Info("transcript completed", zap.String("id", id))
	return nil
}

// Fail transitions a processing transcript to failed with the reason. Like
// Complete, it is a no-op for a transcript deleted mid-flight.
func (m *Manager) Fail(ctx context.Context, id, reason string) error {
	ok, err := m.transcripts.MarkFailed(id, reason, time.Now().UTC())
	if err != nil {
		return err
	}
	if !ok {
		return m.lateTransitionRefused(id, "fail")
	}
	m.logger.Warn("transcript failed",
		zap.String("id", id),
		zap.String("reason", reason))
	return nil
}

// Retry moves a failed transcript back to pending and clears the recorded
// error. Only the failed state is retryable.
func (m *Manager) Retry(ctx context.Context, id string) error {
	ok, err := m.transcripts.MarkPending(id)
	if err != nil {
		return err
	}
	if !ok {
		return m.transitionRefused(id, "retry", model.StatusFailed)
	}
	m.logger.Info("transcript reset for retry", zap.String("id", id))
	return nil
}

// Delete removes the transcript from any state: the audio file, the record
// and every QA entry that references it. A worker still transcribing the
// audio will find its later Complete or Fail call refused and ignored.
func (m *Manager) Delete(ctx context.Context, id string) error {
	t, err := m.transcripts.Get(id)
	if err != nil {
		return err
	}
	// A vanished audio file must not block record deletion.
	if err := m.audio.Remove(ctx, t.StoragePath); err != nil {
		m.logger.Warn("failed to remove audio file",
			zap.String("id", id),
			zap.String("path", t.StoragePath),
			zap.Error(err))
	}
	if err := m.entries.DeleteByTranscript(id); err != nil {
		return err
	}
	if err := m.transcripts.Delete(id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	m.logger.Info("transcript deleted", zap.String("id", id))
	return nil
}

// Get returns one transcript.
func (m *Manager) Get(ctx context.Context, id string) (*model.Transcript, error) {
	return m.transcripts.Get(id)
}

// List returns all transcripts, newest first.
func (m *Manager) List(ctx context.Context) ([]model.Transcript, error) {
	return m.transcripts.List()
}

// transitionRefused resolves a rejected conditional update into a
// not-found or invalid-state error.
func (m *Manager) transitionRefused(id, op string, want model.Status) error {
	t, err := m.transcripts.Get(id)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: cannot %s transcript %s in state %q, want %q", ErrInvalidState, op, id, t.Status, want)
}

// lateTransitionRefused is the Complete/Fail variant: a missing record
// means the transcript was deleted while the worker ran, which is fine.
func (m *Manager) lateTransitionRefused(id, op string) error {
	t, err := m.transcripts.Get(id)
	if errors.Is(err, repository.ErrNotFound) {
		m.logger.Info("dropping late transition for deleted transcript",
			zap.String("id", id),
			zap.String("op", op))
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: cannot %s transcript %s in state %q, want %q", ErrInvalidState, op, id, t.Status, model.StatusProcessing)
}
