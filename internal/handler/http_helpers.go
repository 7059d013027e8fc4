package handler

import (
	"encoding/json"
	"net/http"

	"document-redaction-api/internal/domain"
	apperrors "document-redaction-api/pkg/errors"

	"github.com/getsentry/sentry-go"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Detail string `json:"detail"`
	Type   string `json:"type"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, detail string, errType apperrors.ErrorType) {
	writeJSON(w, statusCode, ErrorResponse{Detail: detail, Type: string(errType)})
}

// writeAppError maps err onto the error taxonomy. Only validation messages
// reach the client; everything else gets a fixed message and the cause is
// logged and reported instead.
func writeAppError(w http.ResponseWriter, r *http.Request, err error, logger domain.Logger) {
	status := apperrors.GetStatusCode(err)
	errType := apperrors.ErrorTypeInternal
	detail := "Internal server error"
	if appErr, ok := apperrors.As(err); ok {
		errType = appErr.Type
		detail = publicMessage(appErr)
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", err, "path", r.URL.Path, "type", errType)
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.CaptureException(err)
		}
	} else {
		logger.Warn("Request rejected", "path", r.URL.Path, "type", errType, "error", err)
	}

	writeError(w, status, detail, errType)
}

func publicMessage(appErr *apperrors.AppError) string {
	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		return appErr.Message
	case apperrors.ErrorTypeExtraction:
		return "Could not extract text from PDF"
	case apperrors.ErrorTypeRemoteService:
		return "PII analysis service error"
	default:
		return "Internal server error"
	}
}
