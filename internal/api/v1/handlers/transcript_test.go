package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "healthvoice/internal/api/errors"
	"healthvoice/internal/api/middleware"
	"healthvoice/internal/api/v1/dto"
	"healthvoice/internal/api/v1/routes"
)

// stubTranscriptService scripts responses per method.
type stubTranscriptService struct {
	uploadFn func(ctx context.Context, filename string, audio io.Reader) (*dto.TranscriptResponse, error)
	getFn    func(ctx context.Context, id string) (*dto.TranscriptResponse, error)
	listFn   func(ctx context.Context, query dto.ListTranscriptsQuery) ([]dto.TranscriptResponse, error)
	retryFn  func(ctx context.Context, id string) (*dto.TranscriptResponse, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubTranscriptService) Upload(ctx context.Context, filename string, audio io.Reader) (*dto.TranscriptResponse, error) {
	return s.uploadFn(ctx, filename, audio)
}

func (s *stubTranscriptService) Record(ctx context.Context, label string, audio io.Reader) (*dto.TranscriptResponse, error) {
	return s.uploadFn(ctx, "recording.webm", audio)
}

func (s *stubTranscriptService) Get(ctx context.Context, id string) (*dto.TranscriptResponse, error) {
	return s.getFn(ctx, id)
}

func (s *stubTranscriptService) GetStatus(ctx context.Context, id string) (*dto.StatusResponse, error) {
	resp, err := s.getFn(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.StatusResponse{ID: resp.ID, Status: resp.Status}, nil
}

func (s *stubTranscriptService) GetText(ctx context.Context, id string) (string, error) {
	resp, err := s.getFn(ctx, id)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (s *stubTranscriptService) List(ctx context.Context, query dto.ListTranscriptsQuery) ([]dto.TranscriptResponse, error) {
	return s.listFn(ctx, query)
}

func (s *stubTranscriptService) Start(ctx context.Context, id string) (*dto.TranscriptResponse, error) {
	return s.retryFn(ctx, id)
}

func (s *stubTranscriptService) Retry(ctx context.Context, id string) (*dto.TranscriptResponse, error) {
	return s.retryFn(ctx, id)
}

func (s *stubTranscriptService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func setupRouter(container *routes.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler(discardLogger()))
	v1 := router.Group("/api/v1")
	routes.RegisterRoutes(v1, container)
	return router
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestTranscriptHandler_Upload(t *testing.T) {
	svc := &stubTranscriptService{
		uploadFn: func(ctx context.Context, filename string, audio io.Reader) (*dto.TranscriptResponse, error) {
			return &dto.TranscriptResponse{
				ID:               "t1",
				OriginalFilename: filename,
				Status:           "queued",
			}, nil
		},
	}
	router := setupRouter(&routes.ServiceContainer{TranscriptService: svc})

	body, contentType := multipartBody(t, "file", "visit1.wav", "audio bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "t1", resp["id"])
	assert.Equal(t, "queued", resp["status"])
	assert.Equal(t, "visit1.wav", resp["original_filename"])
}

func TestTranscriptHandler_Upload_MissingFile(t *testing.T) {
	router := setupRouter(&routes.ServiceContainer{TranscriptService: &stubTranscriptService{}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranscriptHandler_Upload_Duplicate(t *testing.T) {
	svc := &stubTranscriptService{
		uploadFn: func(ctx context.Context, filename string, audio io.Reader) (*dto.TranscriptResponse, error) {
			return nil, apierrors.NewConflictError("A transcript with this filename already exists")
		},
	}
	router := setupRouter(&routes.ServiceContainer{TranscriptService: svc})

	body, contentType := multipartBody(t, "file", "visit1.wav", "audio bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "conflict", resp["kind"])
}

func TestTranscriptHandler_Get_NotFound(t *testing.T) {
	svc := &stubTranscriptService{
		getFn: func(ctx context.Context, id string) (*dto.TranscriptResponse, error) {
			return nil, apierrors.NewNotFoundError("transcript")
		},
	}
	router := setupRouter(&routes.ServiceContainer{TranscriptService: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcripts/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTranscriptHandler_GetStatus(t *testing.T) {
	svc := &stubTranscriptService{
		getFn: func(ctx context.Context, id string) (*dto.TranscriptResponse, error) {
			return &dto.TranscriptResponse{ID: id, Status: "processing"}, nil
		},
	}
	router := setupRouter(&routes.ServiceContainer{TranscriptService: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcripts/t1/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "processing", resp["status"])
}

func TestTranscriptHandler_List_InvalidStatusFilter(t *testing.T) {
	svc := &stubTranscriptService{
		listFn: func(ctx context.Context, query dto.ListTranscriptsQuery) ([]dto.TranscriptResponse, error) {
			return nil, nil
		},
	}
	router := setupRouter(&routes.ServiceContainer{TranscriptService: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcripts?status=bogus", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranscriptHandler_Retry_WrongState(t *testing.T) {
	svc := &stubTranscriptService{
		retryFn: func(ctx context.Context, id string) (*dto.TranscriptResponse, error) {
			return nil, apierrors.NewConflictError("cannot retry transcript in state \"completed\"")
		},
	}
	router := setupRouter(&routes.ServiceContainer{TranscriptService: svc})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts/t1/retry", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTranscriptHandler_GetText(t *testing.T) {
	svc := &stubTranscriptService{
		getFn: func(ctx context.Context, id string) (*dto.TranscriptResponse, error) {
			return &dto.TranscriptResponse{ID: id, Status: "completed", Text: "Patient reports chest pain."}, nil
		},
	}
	router := setupRouter(&routes.ServiceContainer{TranscriptService: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcripts/t1/text", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Patient reports chest pain.", w.Body.String())
}

func TestTranscriptHandler_Delete(t *testing.T) {
	svc := &stubTranscriptService{
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}
	router := setupRouter(&routes.ServiceContainer{TranscriptService: svc})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transcripts/t1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
