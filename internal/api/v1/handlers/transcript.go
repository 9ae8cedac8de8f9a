package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"healthvoice/internal/api/errors"
	"healthvoice/internal/api/middleware"
	"healthvoice/internal/api/v1/dto"
	"healthvoice/internal/api/v1/services"
)

// TranscriptHandler handles transcript-related API endpoints
type TranscriptHandler struct {
	service services.TranscriptService
}

// NewTranscriptHandler creates a new transcript handler
func NewTranscriptHandler(service services.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{
		service: service,
	}
}

// Upload handles POST /api/v1/transcripts
// Uploads an audio file and queues it for transcription
//
// @Summary Upload an audio file
// @Description Stores the uploaded audio file and queues a transcription job for it
// @Tags transcripts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file (wav, mp3, m4a, mp4, flac, ogg, webm)"
// @Success 201 {object} dto.TranscriptResponse "Transcript created and queued"
// @Failure 400 {object} errors.APIError "Bad request - missing file"
// @Failure 409 {object} errors.APIError "A transcript with this filename already exists"
// @Failure 422 {object} errors.APIError "Unsupported audio format"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts [post]
func (h *TranscriptHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Audio file is required"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Could not read uploaded file"))
		return
	}
	defer f.Close()

	response, err := h.service.Upload(c.Request.Context(), fileHeader.Filename, f)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Record handles POST /api/v1/transcripts/record
// Uploads a browser recording without a meaningful client filename
//
// @Summary Upload a browser recording
// @Description Stores a recorded audio blob under a generated filename and queues it for transcription
// @Tags transcripts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Recorded audio blob"
// @Param label formData string false "Optional recording label"
// @Success 201 {object} dto.TranscriptResponse "Transcript created and queued"
// @Failure 400 {object} errors.APIError "Bad request - missing recording"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts/record [post]
func (h *TranscriptHandler) Record(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Recording is required"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Could not read recording"))
		return
	}
	defer f.Close()

	response, err := h.service.Record(c.Request.Context(), c.PostForm("label"), f)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get handles GET /api/v1/transcripts/:id
//
// @Summary Get transcript by ID
// @Description Retrieves a transcript record including its text once completed
// @Tags transcripts
// @Produce json
// @Param id path string true "Transcript ID"
// @Success 200 {object} dto.TranscriptResponse "Transcript details"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts/{id} [get]
func (h *TranscriptHandler) Get(c *gin.Context) {
	response, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetStatus handles GET /api/v1/transcripts/:id/status
//
// @Summary Get transcript status
// @Description Lightweight polling endpoint returning only the lifecycle state
// @Tags transcripts
// @Produce json
// @Param id path string true "Transcript ID"
// @Success 200 {object} dto.StatusResponse "Current status"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts/{id}/status [get]
func (h *TranscriptHandler) GetStatus(c *gin.Context) {
	response, err := h.service.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetText handles GET /api/v1/transcripts/:id/text
//
// @Summary Download transcript text
// @Description Returns the plain transcript text once transcription has completed
// @Tags transcripts
// @Produce plain
// @Param id path string true "Transcript ID"
// @Success 200 {string} string "Transcript text"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Failure 409 {object} errors.APIError "Transcript is not completed yet"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts/{id}/text [get]
func (h *TranscriptHandler) GetText(c *gin.Context) {
	text, err := h.service.GetText(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.String(http.StatusOK, text)
}

// Start handles POST /api/v1/transcripts/:id/start
//
// @Summary Queue a pending transcript
// @Description Moves a pending transcript into the queue for processing
// @Tags transcripts
// @Produce json
// @Param id path string true "Transcript ID"
// @Success 200 {object} dto.TranscriptResponse "Transcript queued"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Failure 409 {object} errors.APIError "Transcript is not pending"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts/{id}/start [post]
func (h *TranscriptHandler) Start(c *gin.Context) {
	response, err := h.service.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/transcripts
//
// @Summary List transcripts
// @Description Retrieves transcripts newest first with optional status filtering
// @Tags transcripts
// @Produce json
// @Param status query string false "Filter by status" Enums(pending,queued,processing,completed,failed)
// @Param limit query int false "Maximum results" default(50) minimum(1) maximum(500)
// @Param offset query int false "Results to skip" default(0) minimum(0)
// @Success 200 {array} dto.TranscriptResponse "List of transcripts"
// @Failure 400 {object} errors.APIError "Bad request - invalid query parameters"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts [get]
func (h *TranscriptHandler) List(c *gin.Context) {
	var query dto.ListTranscriptsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	responses, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// Retry handles POST /api/v1/transcripts/:id/retry
//
// @Summary Retry a failed transcript
// @Description Moves a failed transcript back into the queue for another attempt
// @Tags transcripts
// @Produce json
// @Param id path string true "Transcript ID"
// @Success 200 {object} dto.TranscriptResponse "Transcript re-queued"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Failure 409 {object} errors.APIError "Transcript is not in a failed state"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts/{id}/retry [post]
func (h *TranscriptHandler) Retry(c *gin.Context) {
	response, err := h.service.Retry(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/v1/transcripts/:id
//
// @Summary Delete a transcript
// @Description Removes the transcript record, its audio file and every QA entry that references it
// @Tags transcripts
// @Produce json
// @Param id path string true "Transcript ID"
// @Success 204 "Transcript deleted"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts/{id} [delete]
func (h *TranscriptHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
