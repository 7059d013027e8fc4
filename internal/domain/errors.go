package domain

import "errors"

// ErrDocumentRejected marks a chunk the remote service refused to analyze
var ErrDocumentRejected = errors.New("document rejected by PII service")

// DocumentError carries the per-document error reported by the PII service
type DocumentError struct {
	Code    string
	Message string
}

func (e *DocumentError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// Is lets errors.Is match ErrDocumentRejected
func (e *DocumentError) Is(target error) bool {
	return target == ErrDocumentRejected
}

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
