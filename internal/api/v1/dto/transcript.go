package dto

import (
	"strings"
	"time"

	"healthvoice/internal/api/errors"
	"healthvoice/internal/app/model"
)

// TranscriptResponse represents a transcript in API responses
type TranscriptResponse struct {
	ID               string     `json:"id"`
	OriginalFilename string     `json:"original_filename"`
	StoragePath      string     `json:"storage_path"`
	Status           string     `json:"status"`
	Text             string     `json:"text,omitempty"`
	Error            string     `json:"error,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	ProcessStart     *time.Time `json:"process_start,omitempty"`
	ProcessEnd       *time.Time `json:"process_end,omitempty"`
}

// ToTranscriptResponse converts a model to response DTO
func ToTranscriptResponse(t *model.Transcript) TranscriptResponse {
	resp := TranscriptResponse{
		ID:               t.ID,
		OriginalFilename: t.OriginalFilename,
		StoragePath:      t.StoragePath,
		Status:           string(t.Status),
		CreatedAt:        t.CreatedAt,
		ProcessStart:     t.ProcessStart,
		ProcessEnd:       t.ProcessEnd,
	}
	if t.Text != nil {
		resp.Text = *t.Text
	}
	if t.ErrorMessage != nil {
		resp.Error = *t.ErrorMessage
	}
	return resp
}

// ToTranscriptResponses converts a slice of models to response DTOs
func ToTranscriptResponses(transcripts []model.Transcript) []TranscriptResponse {
	responses := make([]TranscriptResponse, 0, len(transcripts))
	for i := range transcripts {
		responses = append(responses, ToTranscriptResponse(&transcripts[i]))
	}
	return responses
}

// ListTranscriptsQuery represents query parameters for listing transcripts
type ListTranscriptsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending queued processing completed failed"`
	Limit  int    `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// RecordUploadRequest represents a browser recording upload where the
// client supplies no filename worth keeping
type RecordUploadRequest struct {
	Label string `json:"label,omitempty" binding:"omitempty,max=128"`
}

// Validate performs domain-specific validation
func (r *RecordUploadRequest) Validate() error {
	if strings.ContainsAny(r.Label, "/\\") {
		return errors.NewValidationError("Invalid recording label", map[string]string{
			"label": "must not contain path separators",
		})
	}
	return nil
}

// StatusResponse is the lightweight polling payload for a single transcript
type StatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ToStatusResponse converts a model to a status-only DTO
func ToStatusResponse(t *model.Transcript) StatusResponse {
	resp := StatusResponse{
		ID:     t.ID,
		Status: string(t.Status),
	}
	if t.ErrorMessage != nil {
		resp.Error = *t.ErrorMessage
	}
	return resp
}
