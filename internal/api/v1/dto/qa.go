package dto

import (
	"strings"
	"time"

	"healthvoice/internal/api/errors"
	"healthvoice/internal/app/model"
)

const maxQuestionsPerRequest = 20

// AskRequest represents a batch of questions against one transcript
type AskRequest struct {
	Questions []string `json:"questions" binding:"required,min=1"`
}

// Validate performs domain-specific validation
func (r *AskRequest) Validate() error {
	validationErrors := make(map[string]string)

	if len(r.Questions) > maxQuestionsPerRequest {
		validationErrors["questions"] = "too many questions in one request"
	}
	for _, q := range r.Questions {
		if strings.TrimSpace(q) == "" {
			validationErrors["questions"] = "questions must not be blank"
			break
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid question request", validationErrors)
	}

	return nil
}

// QAEntryResponse represents a question/answer pair in API responses
type QAEntryResponse struct {
	ID           string    `json:"id"`
	TranscriptID string    `json:"transcript_id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer,omitempty"`
	ContextUsed  string    `json:"context_used,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToQAEntryResponse converts a model to response DTO
func ToQAEntryResponse(e *model.QAEntry) QAEntryResponse {
	resp := QAEntryResponse{
		ID:           e.ID,
		TranscriptID: e.TranscriptID,
		Question:     e.Question,
		CreatedAt:    e.CreatedAt,
	}
	if e.Answer != nil {
		resp.Answer = *e.Answer
	}
	if e.ContextUsed != nil {
		resp.ContextUsed = *e.ContextUsed
	}
	return resp
}

// ToQAEntryResponses converts a slice of models to response DTOs
func ToQAEntryResponses(entries []model.QAEntry) []QAEntryResponse {
	responses := make([]QAEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToQAEntryResponse(&entries[i]))
	}
	return responses
}

// AskResponse represents the answers for one batch request
type AskResponse struct {
	TranscriptID string            `json:"transcript_id"`
	Entries      []QAEntryResponse `json:"entries"`
}
