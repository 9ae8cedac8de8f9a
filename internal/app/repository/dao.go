package repository

import (
	"errors"
	"time"

	"healthvoice/internal/app/model"
)

var (
	// ErrNotFound is returned when no record with the given id exists.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateFilename is returned when a transcript with the same
	// original filename already exists among non-deleted rows.
	ErrDuplicateFilename = errors.New("original filename already exists")
)

// TranscriptDAO is the durable store for transcript records. State
// transitions are expressed as conditional updates: each Mark* method
// returns true only when the row was in the required source state and the
// transition was applied, so concurrent callers race on the store rather
// than on in-process state.
type TranscriptDAO interface {
	Create(t *model.Transcript) error
	Get(id string) (*model.Transcript, error)
	List() ([]model.Transcript, error)
	// ListActive returns all transcripts that are queued or processing.
	ListActive() ([]model.Transcript, error)

	// MarkQueued transitions pending -> queued.
	MarkQueued(id string) (bool, error)
	// ClaimNext atomically transitions the oldest queued transcript to
	// processing, provided no other transcript is processing. Returns nil
	// when nothing was claimed. Exactly one concurrent caller wins.
	ClaimNext(start time.Time) (*model.Transcript, error)
	// MarkCompleted transitions processing -> completed and sets the text.
	MarkCompleted(id, text string, end time.Time) (bool, error)
	// MarkFailed transitions processing -> failed and sets the error message.
	MarkFailed(id, reason string, end time.Time) (bool, error)
	// MarkPending transitions failed -> pending and clears the error message.
	MarkPending(id string) (bool, error)

	Delete(id string) error
	Close() error
}

// QAEntryDAO is the durable store for question/answer records.
type QAEntryDAO interface {
	Create(e *model.QAEntry) error
	Get(id string) (*model.QAEntry, error)
	ListByTranscript(transcriptID string) ([]model.QAEntry, error)
	UpdateAnswer(id, answer, contextUsed string) error
	Delete(id string) error
	DeleteByTranscript(transcriptID string) error
}
