package model

import (
	"time"
)

// Status is the lifecycle state of a transcript job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether the status is a resting state that the
// background worker will not pick up again on its own.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Transcript represents one uploaded or recorded audio interview and the
// result of transcribing it. Text is set exactly when the status is
// completed; ErrorMessage is set exactly when the status is failed.
type Transcript struct {
	ID               string     `json:"id" db:"id"`
	OriginalFilename string     `json:"original_filename" db:"original_filename"`
	StoragePath      string     `json:"storage_path" db:"storage_path"`
	Status           Status     `json:"status" db:"status"`
	Text             *string    `json:"text" db:"text"`
	ErrorMessage     *string    `json:"error_message" db:"error_message"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	ProcessStart     *time.Time `json:"process_start" db:"process_start"`
	ProcessEnd       *time.Time `json:"process_end" db:"process_end"`
}
