// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"document-redaction-api/internal/domain"
	apperrors "document-redaction-api/pkg/errors"

	"github.com/gorilla/mux"
)

const jobTrackingMessage = "Job tracking not implemented yet"

// RedactionHandler handles PII analysis HTTP requests
type RedactionHandler struct {
	analysisService domain.AnalysisService
	maxFileSize     int64
	tempDir         string
	logger          domain.Logger
}

// NewRedactionHandler creates a new redaction handler.
// Uploads are staged in tempDir and capped at maxFileSize bytes.
func NewRedactionHandler(analysisService domain.AnalysisService, maxFileSize int64, tempDir string, logger domain.Logger) *RedactionHandler {
	return &RedactionHandler{
		analysisService: analysisService,
		maxFileSize:     maxFileSize,
		tempDir:         tempDir,
		logger:          logger,
	}
}

// Root answers the service banner
func (h *RedactionHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Document Redaction API"})
}

// AnalyzeText runs PII analysis on a JSON text body
func (h *RedactionHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req domain.TextAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", apperrors.ErrorTypeValidation)
		return
	}

	result, err := h.analysisService.AnalyzeText(r.Context(), req.Text)
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AnalyzePDF stages an uploaded PDF in a temporary file, analyzes it and
// removes the file on every path.
func (h *RedactionHandler) AnalyzePDF(w http.ResponseWriter, r *http.Request) {
	if h.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	}

	// Validate file is present
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "File too large", apperrors.ErrorTypeValidation)
			return
		}
		writeError(w, http.StatusBadRequest, "File is required", apperrors.ErrorTypeValidation)
		return
	}
	defer file.Close()
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	// Sanitize filename (strip any path components)
	originalName := strings.TrimSpace(filepath.Base(header.Filename))
	if !strings.HasSuffix(originalName, ".pdf") {
		writeError(w, http.StatusBadRequest, "Only PDF files are supported", apperrors.ErrorTypeValidation)
		return
	}

	tmp, err := os.CreateTemp(h.tempDir, "upload-*.pdf")
	if err != nil {
		writeAppError(w, r, apperrors.NewInternalError("failed to create temporary file", err), h.logger)
		return
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			h.logger.Warn("Failed to remove temporary upload", "path", tmpPath, "error", err)
		}
	}()

	size, err := io.Copy(tmp, file)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		writeAppError(w, r, apperrors.NewInternalError("failed to stage upload", err), h.logger)
		return
	}

	h.logger.Debug("Upload staged", "document", originalName, "bytes", size)

	job, err := h.analysisService.AnalyzePDF(r.Context(), originalName, tmpPath)
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// GetJobStatus reports every job as completed; jobs are never stored
func (h *RedactionHandler) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]

	writeJSON(w, http.StatusOK, domain.JobStatusResponse{
		JobID:   jobID,
		Status:  domain.JobStatusCompleted,
		Message: jobTrackingMessage,
	})
}
