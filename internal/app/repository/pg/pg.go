package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"healthvoice/internal/app/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
	id                TEXT PRIMARY KEY,
	original_filename TEXT NOT NULL UNIQUE,
	storage_path      TEXT NOT NULL,
	status            TEXT NOT NULL DEFAULT 'pending',
	text              TEXT,
	error_message     TEXT,
	created_at        TIMESTAMPTZ NOT NULL,
	process_start     TIMESTAMPTZ,
	process_end       TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_transcripts_status ON transcripts(status);

CREATE TABLE IF NOT EXISTS qa_entries (
	id            TEXT PRIMARY KEY,
	transcript_id TEXT NOT NULL REFERENCES transcripts(id),
	question      TEXT NOT NULL,
	answer        TEXT,
	context_used  TEXT,
	created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_qa_entries_transcript ON qa_entries(transcript_id);
`

// DB is the PostgreSQL record store, for deployments where the service
// shares a database server with the rest of the clinic infrastructure.
type DB struct {
	db *sql.DB
}

// Open connects using a lib/pq connection string and bootstraps the schema.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &DB{db: db}, nil
}

// NewWithDB wraps an existing connection; used by sqlmock-backed tests.
func NewWithDB(db *sql.DB) *DB {
	return &DB{db: db}
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
