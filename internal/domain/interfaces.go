package domain

import (
	"context"
	"time"
)

// TextExtractor turns a document on disk into plain text
type TextExtractor interface {
	// ExtractFile returns the joined text of all non-empty pages and the
	// total page count, including pages that produced no text.
	ExtractFile(path string) (*ExtractedText, error)
	Name() string
}

// PIIRecognizer is a checked-out handle to the remote PII service.
// Callers must Close it to return it to the pool.
type PIIRecognizer interface {
	RecognizePII(ctx context.Context, chunk string) (*ChunkAnalysis, error)
	Close() error
}

// RecognizerPool hands out recognizer sessions
type RecognizerPool interface {
	Acquire(ctx context.Context) (PIIRecognizer, error)
}

// AnalysisService defines the use-case operations for PII analysis
type AnalysisService interface {
	AnalyzeText(ctx context.Context, text string) (*AnalysisResult, error)
	AnalyzePDF(ctx context.Context, documentName string, path string) (*RedactionJob, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLanguageKey() string
	GetLanguageEndpoint() string
	GetLogLevel() string
	GetMaxFileSize() int64
	GetTempDir() string
	GetMaxChunkSize() int
	GetCORSOrigin() string
	GetPDFBackend() string
	GetRedactionMerge() RedactionMerge
	GetChunkErrorPolicy() ChunkErrorPolicy
	GetMaxConcurrentAnalyses() int
	GetRemoteRateLimit() float64
	GetRemoteTimeout() time.Duration
	GetSentryDSN() string
}
