package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"healthvoice/internal/app/model"
	"healthvoice/internal/app/repository"
)

const transcriptColumns = `id, original_filename, storage_path, status, text, error_message, created_at, process_start, process_end`

type transcriptStore struct {
	db    *sql.DB
	owner *DB
}

func (s *transcriptStore) Create(t *model.Transcript) error {
	insertSQL := `INSERT INTO transcripts (` + transcriptColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(insertSQL,
		t.ID, t.OriginalFilename, t.StoragePath, t.Status, t.Text, t.ErrorMessage,
		t.CreatedAt, t.ProcessStart, t.ProcessEnd)
	if err != nil {
		if sqliteErr, ok := err.(sqlite3.Error); ok && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return repository.ErrDuplicateFilename
		}
		return fmt.Errorf("failed to insert transcript: %w", err)
	}
	return nil
}

func (s *transcriptStore) Get(id string) (*model.Transcript, error) {
	row := s.db.QueryRow(`SELECT `+transcriptColumns+` FROM transcripts WHERE id = ?`, id)
	return scanTranscript(row)
}

func (s *transcriptStore) List() ([]model.Transcript, error) {
	return s.query(`SELECT ` + transcriptColumns + ` FROM transcripts ORDER BY created_at DESC, id DESC`)
}

func (s *transcriptStore) ListActive() ([]model.Transcript, error) {
	return s.query(`SELECT ` + transcriptColumns + ` FROM transcripts WHERE status IN ('queued', 'processing') ORDER BY created_at ASC, id ASC`)
}

func (s *transcriptStore) MarkQueued(id string) (bool, error) {
	return s.transition(`UPDATE transcripts SET status = 'queued' WHERE id = ? AND status = 'pending'`, id)
}

// ClaimNext promotes the oldest queued transcript to processing in one
// conditional statement; the processing-count guard makes concurrent
// claimers race on the same row update, so at most one can win.
func (s *transcriptStore) ClaimNext(start time.Time) (*model.Transcript, error) {
	res, err := s.db.Exec(`
		UPDATE transcripts
		SET status = 'processing', process_start = ?
		WHERE id = (SELECT id FROM transcripts WHERE status = 'queued' ORDER BY created_at ASC, id ASC LIMIT 1)
		  AND (SELECT COUNT(*) FROM transcripts WHERE status = 'processing') = 0`,
		start)
	if err != nil {
		return nil, fmt.Errorf("claim update failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	row := s.db.QueryRow(`SELECT ` + transcriptColumns + ` FROM transcripts WHERE status = 'processing' LIMIT 1`)
	return scanTranscript(row)
}

func (s *transcriptStore) MarkCompleted(id, text string, end time.Time) (bool, error) {
	return s.transition(`UPDATE transcripts SET status = 'completed', text = ?, process_end = ? WHERE id = ? AND status = 'processing'`,
		text, end, id)
}

func (s *transcriptStore) MarkFailed(id, reason string, end time.Time) (bool, error) {
	return s.transition(`UPDATE transcripts SET status = 'failed', error_message = ?, process_end = ? WHERE id = ? AND status = 'processing'`,
		reason, end, id)
}

func (s *transcriptStore) MarkPending(id string) (bool, error) {
	return s.transition(`UPDATE transcripts SET status = 'pending', error_message = NULL, process_start = NULL, process_end = NULL WHERE id = ? AND status = 'failed'`, id)
}

func (s *transcriptStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM transcripts WHERE id = ?`, id)
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
