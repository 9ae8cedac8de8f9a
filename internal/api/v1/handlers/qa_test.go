package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "healthvoice/internal/api/errors"
	"healthvoice/internal/api/v1/dto"
	"healthvoice/internal/api/v1/routes"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubQAService struct {
	askFn    func(ctx context.Context, transcriptID string, req *dto.AskRequest) (*dto.AskResponse, error)
	listFn   func(ctx context.Context, transcriptID string) ([]dto.QAEntryResponse, error)
	deleteFn func(ctx context.Context, entryID string) error
}

func (s *stubQAService) Ask(ctx context.Context, transcriptID string, req *dto.AskRequest) (*dto.AskResponse, error) {
	return s.askFn(ctx, transcriptID, req)
}

func (s *stubQAService) ListEntries(ctx context.Context, transcriptID string) ([]dto.QAEntryResponse, error) {
	return s.listFn(ctx, transcriptID)
}

func (s *stubQAService) DeleteEntry(ctx context.Context, entryID string) error {
	return s.deleteFn(ctx, entryID)
}

type stubExportService struct {
	exportFn func(ctx context.Context, transcriptID, format string, w io.Writer) error
}

func (s *stubExportService) ExportEntries(ctx context.Context, transcriptID, format string, w io.Writer) error {
	return s.exportFn(ctx, transcriptID, format, w)
}

func askBody(t *testing.T, questions []string) *bytes.Buffer {
	t.Helper()
	payload, err := json.Marshal(dto.AskRequest{Questions: questions})
	require.NoError(t, err)
	return bytes.NewBuffer(payload)
}

func TestQAHandler_Ask(t *testing.T) {
	svc := &stubQAService{
		askFn: func(ctx context.Context, transcriptID string, req *dto.AskRequest) (*dto.AskResponse, error) {
			entries := make([]dto.QAEntryResponse, 0, len(req.Questions))
			for _, q := range req.Questions {
				entries = append(entries, dto.QAEntryResponse{
					ID:           "e-" + q,
					TranscriptID: transcriptID,
					Question:     q,
					Answer:       "answer to " + q,
				})
			}
			return &dto.AskResponse{TranscriptID: transcriptID, Entries: entries}, nil
		},
	}
	router := setupRouter(&routes.ServiceContainer{QAService: svc})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts/t1/questions",
		askBody(t, []string{"What medication was prescribed?"}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "t1", resp.TranscriptID)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "What medication was prescribed?", resp.Entries[0].Question)
}

func TestQAHandler_Ask_EmptyQuestions(t *testing.T) {
	router := setupRouter(&routes.ServiceContainer{QAService: &stubQAService{}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts/t1/questions",
		askBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestQAHandler_Ask_BlankQuestion(t *testing.T) {
	router := setupRouter(&routes.ServiceContainer{QAService: &stubQAService{}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts/t1/questions",
		askBody(t, []string{"  "}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestQAHandler_Ask_TranscriptNotReady(t *testing.T) {
	svc := &stubQAService{
		askFn: func(ctx context.Context, transcriptID string, req *dto.AskRequest) (*dto.AskResponse, error) {
			return nil, apierrors.NewConflictError("Transcript is not completed yet")
		},
	}
	router := setupRouter(&routes.ServiceContainer{QAService: svc})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts/t1/questions",
		askBody(t, []string{"Any findings?"}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestQAHandler_List(t *testing.T) {
	svc := &stubQAService{
		listFn: func(ctx context.Context, transcriptID string) ([]dto.QAEntryResponse, error) {
			return []dto.QAEntryResponse{
				{ID: "e1", TranscriptID: transcriptID, Question: "q1", Answer: "a1"},
				{ID: "e2", TranscriptID: transcriptID, Question: "q2", Answer: "a2"},
			}, nil
		},
	}
	router := setupRouter(&routes.ServiceContainer{QAService: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcripts/t1/questions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []dto.QAEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestQAHandler_DeleteEntry_NotFound(t *testing.T) {
	svc := &stubQAService{
		deleteFn: func(ctx context.Context, entryID string) error {
			return apierrors.NewNotFoundError("qa entry")
		},
	}
	router := setupRouter(&routes.ServiceContainer{QAService: svc})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/questions/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQAHandler_Export_CSV(t *testing.T) {
	export := &stubExportService{
		exportFn: func(ctx context.Context, transcriptID, format string, w io.Writer) error {
			_, err := w.Write([]byte("question,answer\nq1,a1\n"))
			return err
		},
	}
	router := setupRouter(&routes.ServiceContainer{QAService: &stubQAService{}, ExportService: export})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcripts/t1/questions/export?format=csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(w.Header().Get("Content-Disposition"), "attachment"))
	assert.Contains(t, w.Body.String(), "question,answer")
}

func TestQAHandler_Export_UnknownFormat(t *testing.T) {
	export := &stubExportService{
		exportFn: func(ctx context.Context, transcriptID, format string, w io.Writer) error {
			return apierrors.NewBadRequestError("unsupported export format: " + format)
		},
	}
	router := setupRouter(&routes.ServiceContainer{QAService: &stubQAService{}, ExportService: export})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcripts/t1/questions/export?format=pdf", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
