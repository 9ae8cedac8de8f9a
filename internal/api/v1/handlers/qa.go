package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"healthvoice/internal/api/middleware"
	"healthvoice/internal/api/v1/dto"
	"healthvoice/internal/api/v1/services"
)

// QAHandler handles question answering API endpoints
type QAHandler struct {
	service services.QAService
	export  services.ExportService
}

// NewQAHandler creates a new QA handler
func NewQAHandler(service services.QAService, export services.ExportService) *QAHandler {
	return &QAHandler{
		service: service,
		export:  export,
	}
}

// Ask handles POST /api/v1/transcripts/:id/questions
//
// @Summary Ask questions about a transcript
// @Description Answers a batch of questions against one completed transcript. A failure on one question is recorded in its entry and does not abort the rest of the batch.
// @Tags qa
// @Accept json
// @Produce json
// @Param id path string true "Transcript ID"
// @Param questions body dto.AskRequest true "Questions to answer"
// @Success 200 {object} dto.AskResponse "Answers in question order"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Failure 409 {object} errors.APIError "Transcript is not completed yet"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts/{id}/questions [post]
func (h *QAHandler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Ask(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/transcripts/:id/questions
//
// @Summary List QA entries for a transcript
// @Description Retrieves every recorded question and answer for one transcript
// @Tags qa
// @Produce json
// @Param id path string true "Transcript ID"
// @Success 200 {array} dto.QAEntryResponse "QA entries"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts/{id}/questions [get]
func (h *QAHandler) List(c *gin.Context) {
	responses, err := h.service.ListEntries(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// DeleteEntry handles DELETE /api/v1/questions/:id
//
// @Summary Delete a QA entry
// @Tags qa
// @Produce json
// @Param id path string true "QA entry ID"
// @Success 204 "Entry deleted"
// @Failure 404 {object} errors.APIError "Entry not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /questions/{id} [delete]
func (h *QAHandler) DeleteEntry(c *gin.Context) {
	if err := h.service.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Export handles GET /api/v1/transcripts/:id/questions/export
//
// @Summary Export QA entries
// @Description Downloads every QA entry of one transcript as csv, json or xlsx
// @Tags qa
// @Produce octet-stream
// @Param id path string true "Transcript ID"
// @Param format query string false "Export format" default(csv) Enums(csv,json,xlsx)
// @Success 200 {file} file "Exported entries"
// @Failure 400 {object} errors.APIError "Unsupported export format"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts/{id}/questions/export [get]
func (h *QAHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	contentTypes := map[string]string{
		"csv":  "text/csv",
		"json": "application/json",
		"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
	contentType, ok := contentTypes[format]
	if !ok {
		contentType = "application/octet-stream"
	}

	filename := fmt.Sprintf("qa_export_%s.%s", time.Now().Format("20060102_150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", contentType)

	if err := h.export.ExportEntries(c.Request.Context(), c.Param("id"), format, c.Writer); err != nil {
		middleware.HandleError(c, err)
		return
	}
}
