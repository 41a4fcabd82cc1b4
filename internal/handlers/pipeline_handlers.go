package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/models"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/service"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
)

// PipelineServiceInterface defines the service methods required for document
// pipeline operations.
type PipelineServiceInterface interface {
	AcceptDocument(ctx context.Context, fileName string, content []byte) (*models.ProcessingJob, error)
	GetJob(ctx context.Context, id uuid.UUID) (*models.ProcessingJob, error)
	GetRedactedDocument(ctx context.Context, id uuid.UUID) (*service.RedactedDocument, error)
	GetRedactedText(ctx context.Context, id uuid.UUID) (string, error)
	GetSecurityStatus(ctx context.Context, id uuid.UUID) (*models.SecurityStatus, error)
	GetRedactionRecords(ctx context.Context, id uuid.UUID) ([]service.RedactionRecord, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

// PipelineHandler handles HTTP requests for the document ingestion pipeline.
type PipelineHandler struct {
	pipeline PipelineServiceInterface
}

// NewPipelineHandler creates a new PipelineHandler with the provided service.
func NewPipelineHandler(pipeline PipelineServiceInterface) *PipelineHandler {
	return &PipelineHandler{pipeline: pipeline}
}

// UploadDocument handles POST /api/upload
//
// The document is accepted for asynchronous processing; the response carries
// the job to poll on /api/status/{jobID}.
func (h *PipelineHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadSizeBytes)

	file, header, err := r.FormFile(constants.UploadFileField)
	if err != nil {
		utils.BadRequest(w, "A document file is required", map[string]string{
			constants.UploadFileField: "missing or unreadable multipart file field",
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Str("file_name", header.Filename).Msg("Failed to read uploaded file")
		utils.BadRequest(w, "The uploaded file could not be read", nil)
		return
	}
	if len(content) == 0 {
		utils.BadRequest(w, "The uploaded file is empty", nil)
		return
	}

	job, err := h.pipeline.AcceptDocument(r.Context(), header.Filename, content)
	if err != nil {
		log.Error().Err(err).Str("file_name", header.Filename).Msg("Failed to accept document")
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusAccepted, job)
}

// GetStatus handles GET /api/status/{jobID}
func (h *PipelineHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	job, err := h.pipeline.GetJob(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, job)
}

// GetRedactedDocument handles GET /api/documents/{jobID}/redacted
//
// Serves the visually redacted PDF. The artifact is decrypted and integrity
// checked on every retrieval.
func (h *PipelineHandler) GetRedactedDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	doc, err := h.pipeline.GetRedactedDocument(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("job_id", id.String()).Msg("Failed to serve redacted document")
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	w.Header().Set("X-Redaction-Variant", doc.Variant)
	utils.PDFFile(w, doc.Content, "redacted-"+id.String()+".pdf")
}

// GetRedactedText handles GET /api/documents/{jobID}/transcript
func (h *PipelineHandler) GetRedactedText(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	text, err := h.pipeline.GetRedactedText(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"redacted_text": text})
}

// GetSecurityStatus handles GET /api/documents/{jobID}/security
func (h *PipelineHandler) GetSecurityStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	status, err := h.pipeline.GetSecurityStatus(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, status)
}

// GetRedactions handles GET /api/documents/{jobID}/redactions
//
// Returns position and category records only; original values never leave
// the service layer.
func (h *PipelineHandler) GetRedactions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	records, err := h.pipeline.GetRedactionRecords(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, records)
}

// DeleteDocument handles DELETE /api/documents/{jobID}
func (h *PipelineHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	log.Info().Str("job_id", id.String()).Msg("Deleting document")
	if err := h.pipeline.DeleteDocument(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.NoContent(w)
}

// jobID parses the jobID URL parameter, writing an error response when it is
// not a valid UUID.
func (h *PipelineHandler) jobID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, constants.ParamJobID)
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.BadRequest(w, "Invalid job ID", map[string]string{
			constants.ParamJobID: "must be a UUID",
		})
		return uuid.Nil, false
	}
	return id, true
}
