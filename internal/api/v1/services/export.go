package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tealeg/xlsx"

	apierrors "healthvoice/internal/api/errors"
	"healthvoice/internal/app/model"
	"healthvoice/internal/app/repository"
)

// ExportServiceImpl implements the ExportService interface
type ExportServiceImpl struct {
	transcripts repository.TranscriptDAO
	entries     repository.QAEntryDAO
}

// NewExportService creates a new export service
func NewExportService(transcripts repository.TranscriptDAO, entries repository.QAEntryDAO) ExportService {
	return &ExportServiceImpl{
		transcripts: transcripts,
		entries:     entries,
	}
}

// ExportEntries writes every QA entry of one transcript in the requested format
func (s *ExportServiceImpl) ExportEntries(ctx context.Context, transcriptID, format string, writer io.Writer) error {
	if _, err := s.transcripts.Get(transcriptID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierrors.NewNotFoundError("transcript")
		}
		return apierrors.WrapError(err, apierrors.KindInternal, "Internal server error")
	}

	entries, err := s.entries.ListByTranscript(transcriptID)
	if err != nil {
		return apierrors.WrapError(err, apierrors.KindInternal, "Failed to load qa entries")
	}

	switch format {
	case "csv":
		return s.exportCSV(entries, writer)
	case "json":
		return s.exportJSON(entries, writer)
	case "xlsx":
		return s.exportExcel(entries, writer)
	default:
		return apierrors.NewBadRequestError(fmt.Sprintf("unsupported export format: %s", format))
	}
}

func (s *ExportServiceImpl) exportCSV(entries []model.QAEntry, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	header := []string{"ID", "Transcript ID", "Question", "Answer", "Context Used", "Created At"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.ID,
			e.TranscriptID,
			e.Question,
			deref(e.Answer),
			deref(e.ContextUsed),
			e.CreatedAt.Format(time.RFC3339),
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func (s *ExportServiceImpl) exportJSON(entries []model.QAEntry, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}

func (s *ExportServiceImpl) exportExcel(entries []model.QAEntry, writer io.Writer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("QA Entries")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Transcript ID"
	headerRow.AddCell().Value = "Question"
	headerRow.AddCell().Value = "Answer"
	headerRow.AddCell().Value = "Context Used"
	headerRow.AddCell().Value = "Created At"

	for _, e := range entries {
		row := sheet.AddRow()
		row.AddCell().Value = e.ID
		row.AddCell().Value = e.TranscriptID
		row.AddCell().Value = e.Question
		row.AddCell().Value = deref(e.Answer)
		row.AddCell().Value = deref(e.ContextUsed)
		row.AddCell().Value = e.CreatedAt.Format(time.RFC3339)
	}

	return file.Write(writer)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
