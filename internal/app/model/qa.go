package model

import (
	"time"
)

// QAEntry is one question asked about a transcript together with the
// generated answer. Answer is nil while generation is in flight; a failed
// generation stores a marked failure message, never an empty string.
type QAEntry struct {
	ID           string    `json:"id" db:"id"`
	TranscriptID string    `json:"transcript_id" db:"transcript_id"`
	Question     string    `json:"question" db:"question"`
	Answer       *string   `json:"answer" db:"answer"`
	ContextUsed  *string   `json:"context_used" db:"context_used"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
