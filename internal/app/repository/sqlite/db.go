package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"healthvoice/internal/app/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
	id                TEXT PRIMARY KEY,
	original_filename TEXT NOT NULL,
	storage_path      TEXT NOT NULL,
	status            TEXT NOT NULL DEFAULT 'pending',
	text              TEXT,
	error_message     TEXT,
	created_at        TIMESTAMP NOT NULL,
	process_start     TIMESTAMP,
	process_end       TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_transcripts_filename ON transcripts(original_filename);
CREATE INDEX IF NOT EXISTS idx_transcripts_status ON transcripts(status);

CREATE TABLE IF NOT EXISTS qa_entries (
	id            TEXT PRIMARY KEY,
	transcript_id TEXT NOT NULL REFERENCES transcripts(id),
	question      TEXT NOT NULL,
	answer        TEXT,
	context_used  TEXT,
	created_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_qa_entries_transcript ON qa_entries(transcript_id);
`

// DB wraps a SQLite connection holding both the transcript and QA entry
// tables. It is the default single-machine record store.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the database file and bootstraps the schema.
func Open(dbFilePath string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_fk=1", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Claim updates must not interleave across connections.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &DB{db: db}, nil
}

// Transcripts returns the transcript store backed by this connection.
func (s *DB) Transcripts() repository.TranscriptDAO {
	return &transcriptStore{db: s.db, owner: s}
}

// Entries returns the QA entry store backed by this connection.
func (s *DB) Entries() repository.QAEntryDAO {
	return &qaStore{db: s.db}
}

func (s *DB) Close() error {
	return s.db.Close()
}
