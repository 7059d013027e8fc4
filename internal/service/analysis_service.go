package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"document-redaction-api/internal/domain"
	apperrors "document-redaction-api/pkg/errors"

	"github.com/google/uuid"
)

// AnalysisService implements the PII analysis use cases
type AnalysisService struct {
	extractor    domain.TextExtractor
	pool         domain.RecognizerPool
	maxChunkSize int
	merge        domain.RedactionMerge
	chunkPolicy  domain.ChunkErrorPolicy
	logger       domain.Logger
	now          func() time.Time
}

// AnalysisOptions tune chunking and result merging
type AnalysisOptions struct {
	MaxChunkSize     int
	RedactionMerge   domain.RedactionMerge
	ChunkErrorPolicy domain.ChunkErrorPolicy
}

// NewAnalysisService creates a new analysis service instance
func NewAnalysisService(
	extractor domain.TextExtractor,
	pool domain.RecognizerPool,
	opts AnalysisOptions,
	logger domain.Logger,
) *AnalysisService {
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = DefaultMaxChunkSize
	}
	if opts.RedactionMerge == "" {
		opts.RedactionMerge = domain.RedactionMergeConcat
	}
	if opts.ChunkErrorPolicy == "" {
		opts.ChunkErrorPolicy = domain.ChunkErrorSkip
	}

	return &AnalysisService{
		extractor:    extractor,
		pool:         pool,
		maxChunkSize: opts.MaxChunkSize,
		merge:        opts.RedactionMerge,
		chunkPolicy:  opts.ChunkErrorPolicy,
		logger:       logger,
		now:          time.Now,
	}
}

// AnalyzeText chunks text and sends each chunk to the PII service in order.
//
// A chunk the service rejects is skipped (or fails the request under the
// fail policy). Any other remote failure aborts the whole request.
func (s *AnalysisService) AnalyzeText(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("Text is required")
	}

	start := s.now()
	chunks := SplitIntoChunks(text, s.maxChunkSize)

	recognizer, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer recognizer.Close()

	agg := NewAggregator(text, s.merge, start)
	for i, chunk := range chunks {
		analysis, err := recognizer.RecognizePII(ctx, chunk)
		if err != nil {
			if !errors.Is(err, domain.ErrDocumentRejected) {
				s.logger.Error("PII analysis failed", err, "chunk", i, "chunks", len(chunks))
				return nil, err
			}
			if s.chunkPolicy == domain.ChunkErrorFail {
				s.logger.Error("PII service rejected chunk", err, "chunk", i, "chunks", len(chunks))
				return nil, apperrors.NewRemoteServiceError("PII service rejected part of the text", err)
			}
			s.logger.Warn("Skipping chunk rejected by PII service", "chunk", i, "chunks", len(chunks), "error", err)
			agg.Skip(chunk)
			continue
		}
		agg.Add(i, analysis)
	}

	result := agg.Result(s.now())
	if err := result.Validate(); err != nil {
		return nil, apperrors.NewInternalError("inconsistent analysis result", err)
	}
	s.logger.Info("Text analyzed",
		"chars", len(text),
		"chunks", result.TotalChunks,
		"skipped", result.SkippedChunks,
		"entities", result.TotalEntities,
		"seconds", result.ProcessingTime,
	)
	return result, nil
}

// AnalyzePDF extracts the text of the PDF at path and analyzes it.
// The returned job is already completed and is never stored.
func (s *AnalysisService) AnalyzePDF(ctx context.Context, documentName string, path string) (*domain.RedactionJob, error) {
	extracted, err := s.extractor.ExtractFile(path)
	if err != nil {
		s.logger.Error("Failed to extract PDF text", err, "document", documentName, "backend", s.extractor.Name())
		return nil, err
	}

	if strings.TrimSpace(extracted.Content) == "" {
		return nil, apperrors.NewValidationError("No text content found in PDF")
	}

	result, err := s.AnalyzeText(ctx, extracted.Content)
	if err != nil {
		return nil, err
	}

	job := &domain.RedactionJob{
		JobID:          uuid.NewString(),
		Status:         domain.JobStatusCompleted,
		DocumentName:   documentName,
		TotalPages:     extracted.TotalPages,
		AnalysisResult: *result,
	}

	s.logger.Info("PDF analyzed", "job_id", job.JobID, "document", documentName, "pages", job.TotalPages, "entities", job.TotalEntities)
	return job, nil
}
