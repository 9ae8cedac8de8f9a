package pg

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthvoice/internal/app/model"
	"healthvoice/internal/app/repository"
)

func TestTranscriptStore_Interface(t *testing.T) {
	var _ repository.TranscriptDAO = (*transcriptStore)(nil)
	var _ repository.QAEntryDAO = (*qaStore)(nil)
}

func newMockStore(t *testing.T) (repository.TranscriptDAO, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db).Transcripts(), mock
}

func transcriptRows(tr *model.Transcript) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "original_filename", "storage_path", "status", "text",
		"error_message", "created_at", "process_start", "process_end",
	}).AddRow(tr.ID, tr.OriginalFilename, tr.StoragePath, tr.Status, tr.Text,
		tr.ErrorMessage, tr.CreatedAt, tr.ProcessStart, tr.ProcessEnd)
}

func TestTranscriptStore_Create_Duplicate(t *testing.T) {
	dao, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO transcripts`)).
		WillReturnError(&pq.Error{Code: "23505"})

	err := dao.Create(&model.Transcript{
		ID:               "t1",
		OriginalFilename: "visit1.wav",
		StoragePath:      "/data/visit1.wav",
		Status:           model.StatusPending,
		CreatedAt:        time.Now().UTC(),
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateFilename)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranscriptStore_Get(t *testing.T) {
	dao, mock := newMockStore(t)

	tr := &model.Transcript{
		ID:               "t1",
		OriginalFilename: "visit1.wav",
		StoragePath:      "/data/visit1.wav",
		Status:           model.StatusPending,
		CreatedAt:        time.Now().UTC(),
	}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, original_filename, storage_path, status, text, error_message, created_at, process_start, process_end FROM transcripts WHERE id = $1`)).
		WithArgs("t1").
		WillReturnRows(transcriptRows(tr))

	got, err := dao.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, "visit1.wav", got.OriginalFilename)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranscriptStore_Get_NotFound(t *testing.T) {
	dao, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .* FROM transcripts WHERE id`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := dao.Get("missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTranscriptStore_MarkQueued(t *testing.T) {
	dao, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE transcripts SET status = 'queued' WHERE id = $1 AND status = 'pending'`)).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := dao.MarkQueued("t1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranscriptStore_MarkQueued_WrongState(t *testing.T) {
	dao, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE transcripts SET status = 'queued'`).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := dao.MarkQueued("t1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTranscriptStore_ClaimNext(t *testing.T) {
	dao, mock := newMockStore(t)

	start := time.Now().UTC()
	tr := &model.Transcript{
		ID:               "t1",
		OriginalFilename: "visit1.wav",
		StoragePath:      "/data/visit1.wav",
		Status:           model.StatusProcessing,
		CreatedAt:        start.Add(-time.Minute),
		ProcessStart:     &start,
	}
	mock.ExpectQuery(`UPDATE transcripts`).
		WithArgs(start).
		WillReturnRows(transcriptRows(tr))

	got, err := dao.ClaimNext(start)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.StatusProcessing, got.Status)
}

func TestTranscriptStore_ClaimNext_NothingEligible(t *testing.T) {
	dao, mock := newMockStore(t)

	start := time.Now().UTC()
	mock.ExpectQuery(`UPDATE transcripts`).
		WithArgs(start).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := dao.ClaimNext(start)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTranscriptStore_Delete_NotFound(t *testing.T) {
	dao, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM transcripts`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, dao.Delete("missing"), repository.ErrNotFound)
}
