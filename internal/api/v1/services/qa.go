package services

import (
	"context"
	"errors"

	apierrors "healthvoice/internal/api/errors"
	"healthvoice/internal/api/v1/dto"
	"healthvoice/internal/app/qa"
	"healthvoice/internal/app/repository"
)

// QAServiceImpl implements the QAService interface
type QAServiceImpl struct {
	engine  *qa.Engine
	entries repository.QAEntryDAO
}

// NewQAService creates a new QA service
func NewQAService(engine *qa.Engine, entries repository.QAEntryDAO) QAService {
	return &QAServiceImpl{
		engine:  engine,
		entries: entries,
	}
}

// Ask answers a batch of questions about one completed transcript
func (s *QAServiceImpl) Ask(ctx context.Context, transcriptID string, req *dto.AskRequest) (*dto.AskResponse, error) {
	answered, err := s.engine.AnswerBatch(ctx, transcriptID, req.Questions)
	if err != nil {
		return nil, mapQAError(err)
	}

	return &dto.AskResponse{
		TranscriptID: transcriptID,
		Entries:      dto.ToQAEntryResponses(answered),
	}, nil
}

// ListEntries returns every QA entry recorded against a transcript
func (s *QAServiceImpl) ListEntries(ctx context.Context, transcriptID string) ([]dto.QAEntryResponse, error) {
	entries, err := s.entries.ListByTranscript(transcriptID)
	if err != nil {
		return nil, mapQAError(err)
	}
	return dto.ToQAEntryResponses(entries), nil
}

// DeleteEntry removes a single QA entry
func (s *QAServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	if err := s.entries.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierrors.NewNotFoundError("qa entry")
		}
		return mapQAError(err)
	}
	return nil
}

// mapQAError translates domain errors into API errors
func mapQAError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apierrors.NewNotFoundError("transcript")
	case errors.Is(err, qa.ErrTranscriptNotReady):
		return apierrors.NewConflictError("Transcript is not completed yet")
	default:
		return apierrors.WrapError(err, apierrors.KindInternal, "Internal server error")
	}
}
