package services

import (
	"context"
	"io"

	"healthvoice/internal/api/v1/dto"
)

// TranscriptService defines the interface for transcript job operations
type TranscriptService interface {
	Upload(ctx context.Context, filename string, audio io.Reader) (*dto.TranscriptResponse, error)
	Record(ctx context.Context, label string, audio io.Reader) (*dto.TranscriptResponse, error)
	Get(ctx context.Context, id string) (*dto.TranscriptResponse, error)
	GetStatus(ctx context.Context, id string) (*dto.StatusResponse, error)
	GetText(ctx context.Context, id string) (string, error)
	List(ctx context.Context, query dto.ListTranscriptsQuery) ([]dto.TranscriptResponse, error)
	Start(ctx context.Context, id string) (*dto.TranscriptResponse, error)
	Retry(ctx context.Context, id string) (*dto.TranscriptResponse, error)
	Delete(ctx context.Context, id string) error
}

// QAService defines the interface for question answering operations
type QAService interface {
	Ask(ctx context.Context, transcriptID string, req *dto.AskRequest) (*dto.AskResponse, error)
	ListEntries(ctx context.Context, transcriptID string) ([]dto.QAEntryResponse, error)
	DeleteEntry(ctx context.Context, id string) error
}

// ExportService defines the interface for export operations
type ExportService interface {
	ExportEntries(ctx context.Context, transcriptID, format string, writer io.Writer) error
}
