package pg

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"healthvoice/internal/app/model"
	"healthvoice/internal/app/repository"
)

const transcriptColumns = `id, original_filename, storage_path, status, text, error_message, created_at, process_start, process_end`

type transcriptStore struct {
	db    *sql.DB
	owner *DB
}

func (s *transcriptStore) Create(t *model.Transcript) error {
	insertSQL := `INSERT INTO transcripts (` + transcriptColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.db.Exec(insertSQL,
		t.ID, t.OriginalFilename, t.StoragePath, t.Status, t.Text, t.ErrorMessage,
		t.CreatedAt, t.ProcessStart, t.ProcessEnd)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return repository.ErrDuplicateFilename
		}
		return fmt.Errorf("failed to insert transcript: %w", err)
	}
	return nil
}

func (s *transcriptStore) Get(id string) (*model.Transcript, error) {
	row := s.db.QueryRow(`SELECT `+transcriptColumns+` FROM transcripts WHERE id = $1`, id)
	return scanTranscript(row)
}

func (s *transcriptStore) List() ([]model.Transcript, error) {
	return s.query(`SELECT ` + transcriptColumns + ` FROM transcripts ORDER BY created_at DESC, id DESC`)
}

func (s *transcriptStore) ListActive() ([]model.Transcript, error) {
	return s.query(`SELECT ` + transcriptColumns + ` FROM transcripts WHERE status IN ('queued', 'processing') ORDER BY created_at ASC, id ASC`)
}

func (s *transcriptStore) MarkQueued(id string) (bool, error) {
	return s.transition(`UPDATE transcripts SET status = 'queued' WHERE id = $1 AND status = 'pending'`, id)
}

// ClaimNext uses a single conditional UPDATE ... RETURNING so that the
// queued-row selection, the no-other-processing guard and the transition
// are one atomic statement; concurrent claimers get at most one row back.
func (s *transcriptStore) ClaimNext(start time.Time) (*model.Transcript, error) {
	row := s.db.QueryRow(`
		UPDATE transcripts
		SET status = 'processing', process_start = $1
		WHERE id = (SELECT id FROM transcripts WHERE status = 'queued' ORDER BY created_at ASC, id ASC LIMIT 1 FOR UPDATE SKIP LOCKED)
		  AND NOT EXISTS (SELECT 1 FROM transcripts WHERE status = 'processing')
		RETURNING `+transcriptColumns,
		start)
	t, err := scanTranscript(row)
	if err == repository.ErrNotFound {
		return nil, nil
	}
	return t, err
}

func (s *transcriptStore) MarkCompleted(id, text string, end time.Time) (bool, error) {
	return s.transition(`UPDATE transcripts SET status = 'completed', text = $1, process_end = $2 WHERE id = $3 AND status = 'processing'`,
		text, end, id)
}

func (s *transcriptStore) MarkFailed(id, reason string, end time.Time) (bool, error) {
	return s.transition(`UPDATE transcripts SET status = 'failed', error_message = $1, process_end = $2 WHERE id = $3 AND status = 'processing'`,
		reason, end, id)
}

func (s *transcriptStore) MarkPending(id string) (bool, error) {
	return s.transition(`UPDATE transcripts SET status = 'pending', error_message = NULL, process_start = NULL, process_end = NULL WHERE id = $1 AND status = 'failed'`, id)
}

func (s *transcriptStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM transcripts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *transcriptStore) Close() error {
	return s.owner.Close()
}

func (s *transcriptStore) transition(query string, args ...interface{}) (bool, error) {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("transition update failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *transcriptStore) query(query string, args ...interface{}) ([]model.Transcript, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	transcripts := make([]model.Transcript, 0)
	for rows.Next() {
		var t model.Transcript
		err = rows.Scan(&t.ID, &t.OriginalFilename, &t.StoragePath, &t.Status, &t.Text,
			&t.ErrorMessage, &t.CreatedAt, &t.ProcessStart, &t.ProcessEnd)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		transcripts = append(transcripts, t)
	}
	return transcripts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTranscript(row rowScanner) (*model.Transcript, error) {
	var t model.Transcript
	err := row.Scan(&t.ID, &t.OriginalFilename, &t.StoragePath, &t.Status, &t.Text,
		&t.ErrorMessage, &t.CreatedAt, &t.ProcessStart, &t.ProcessEnd)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db scan failed: %w", err)
	}
	return &t, nil
}
