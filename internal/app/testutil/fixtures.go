package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"healthvoice/internal/app/model"
	"healthvoice/internal/app/repository"
)

// SampleTranscriptText is a short clinical interview used across tests.
const SampleTranscriptText = "The patient reports chest pain since Monday. " +
	"Pain worsens on exertion and improves at rest. " +
	"No history of cardiac disease in the family. " +
	"Currently taking lisinopril ten milligrams daily. " +
	"Blood pressure today was one forty over ninety. " +
	"An ECG has been scheduled for next week."

// NewTranscript builds an unsaved transcript in the given status.
func NewTranscript(status model.Status) *model.Transcript {
	t := &model.Transcript{
		ID:               uuid.New().String(),
		OriginalFilename: uuid.New().String() + ".wav",
		StoragePath:      "/tmp/" + uuid.New().String() + ".wav",
		Status:           status,
		CreatedAt:        time.Now().UTC(),
	}
	if status == model.StatusCompleted {
		text := SampleTranscriptText
		now := time.Now().UTC()
		t.Text = &text
		t.ProcessStart = &now
		t.ProcessEnd = &now
	}
	return t
}

// MustCreate saves a transcript and fails the test on error.
func MustCreate(t *testing.T, dao repository.TranscriptDAO, tr *model.Transcript) *model.Transcript {
	t.Helper()
	if err := dao.Create(tr); err != nil {
		t.Fatalf("failed to create transcript fixture: %v", err)
	}
	return tr
}

// MustCompleted saves a transcript and walks it through the queue to the
// completed state so QA tests have real store-backed fixtures.
func MustCompleted(t *testing.T, dao repository.TranscriptDAO, text string) *model.Transcript {
	t.Helper()

	tr := NewTranscript(model.StatusPending)
	MustCreate(t, dao, tr)
	if ok, err := dao.MarkQueued(tr.ID); err != nil || !ok {
		t.Fatalf("failed to queue fixture: ok=%v err=%v", ok, err)
	}
	claimed, err := dao.ClaimNext(time.Now().UTC())
	if err != nil || claimed == nil {
		t.Fatalf("failed to claim fixture: claimed=%v err=%v", claimed, err)
	}
	if ok, err := dao.MarkCompleted(tr.ID, text, time.Now().UTC()); err != nil || !ok {
		t.Fatalf("failed to complete fixture: ok=%v err=%v", ok, err)
	}
	completed, err := dao.Get(tr.ID)
	if err != nil {
		t.Fatalf("failed to reload fixture: %v", err)
	}
	return completed
}
