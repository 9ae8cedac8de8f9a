package pg

import (
	"database/sql"
	"fmt"

	"healthvoice/internal/app/model"
	"healthvoice/internal/app/repository"
)

const qaColumns = `id, transcript_id, question, answer, context_used, created_at`

type qaStore struct {
	db *sql.DB
}

func (s *qaStore) Create(e *model.QAEntry) error {
	insertSQL := `INSERT INTO qa_entries (` + qaColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.Exec(insertSQL, e.ID, e.TranscriptID, e.Question, e.Answer, e.ContextUsed, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert qa entry: %w", err)
	}
	return nil
}

func (s *qaStore) Get(id string) (*model.QAEntry, error) {
	row := s.db.QueryRow(`SELECT `+qaColumns+` FROM qa_entries WHERE id = $1`, id)
	var e model.QAEntry
	err := row.Scan(&e.ID, &e.TranscriptID, &e.Question, &e.Answer, &e.ContextUsed, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db scan failed: %w", err)
	}
	return &e, nil
}

func (s *qaStore) ListByTranscript(transcriptID string) ([]model.QAEntry, error) {
	rows, err := s.db.Query(`SELECT `+qaColumns+` FROM qa_entries WHERE transcript_id = $1 ORDER BY created_at ASC, id ASC`, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	entries := make([]model.QAEntry, 0)
	for rows.Next() {
		var e model.QAEntry
		if err := rows.Scan(&e.ID, &e.TranscriptID, &e.Question, &e.Answer, &e.ContextUsed, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *qaStore) UpdateAnswer(id, answer, contextUsed string) error {
	res, err := s.db.Exec(`UPDATE qa_entries SET answer = $1, context_used = $2 WHERE id = $3`, answer, contextUsed, id)
	if err != nil {
		return fmt.Errorf("failed to update qa entry: %w", err)
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

func (s *qaStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM qa_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete qa entry: %w", err)
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

func (s *qaStore) DeleteByTranscript(transcriptID string) error {
	_, err := s.db.Exec(`DELETE FROM qa_entries WHERE transcript_id = $1`, transcriptID)
	if err != nil {
		return fmt.Errorf("failed to delete qa entries: %w", err)
	}
	return nil
}
