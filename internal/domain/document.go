package domain

import "strings"

// JobStatusCompleted is the only status a redaction job ever reports
const JobStatusCompleted = "completed"

// RedactionMerge selects how per-chunk redacted texts become one string
type RedactionMerge string

const (
	// RedactionMergeConcat joins per-chunk redacted texts with single spaces.
	RedactionMergeConcat RedactionMerge = "concat"
	// RedactionMergeLast keeps only the last successful chunk's redacted text.
	RedactionMergeLast RedactionMerge = "last"
)

// ParseRedactionMerge falls back to concat for unknown values
func ParseRedactionMerge(s string) RedactionMerge {
	if RedactionMerge(strings.ToLower(strings.TrimSpace(s))) == RedactionMergeLast {
		return RedactionMergeLast
	}
	return RedactionMergeConcat
}

// ChunkErrorPolicy decides what a rejected chunk does to the whole request
type ChunkErrorPolicy string

const (
	ChunkErrorSkip ChunkErrorPolicy = "skip"
	ChunkErrorFail ChunkErrorPolicy = "fail"
)

// ParseChunkErrorPolicy falls back to skip for unknown values
func ParseChunkErrorPolicy(s string) ChunkErrorPolicy {
	if ChunkErrorPolicy(strings.ToLower(strings.TrimSpace(s))) == ChunkErrorFail {
		return ChunkErrorFail
	}
	return ChunkErrorSkip
}

// AnalysisResult is the aggregated PII analysis of one text.
type AnalysisResult struct {
	Entities          []PIIEntity    `json:"entities"`
	RedactedText      string         `json:"redacted_text"`
	TotalEntities     int            `json:"total_entities"`
	ProcessingTime    float64        `json:"processing_time"`
	ConfidenceSummary map[string]int `json:"confidence_summary"`
	TotalChunks       int            `json:"total_chunks"`
	SkippedChunks     int            `json:"skipped_chunks"`
}

// Validate checks the counting invariants of an aggregated result
func (r *AnalysisResult) Validate() error {
	if r.TotalEntities != len(r.Entities) {
		return &ValidationError{Field: "total_entities", Message: "total entities must equal the number of entities"}
	}
	sum := 0
	for _, n := range r.ConfidenceSummary {
		sum += n
	}
	if sum != r.TotalEntities {
		return &ValidationError{Field: "confidence_summary", Message: "confidence summary must add up to total entities"}
	}
	if r.SkippedChunks < 0 || r.SkippedChunks > r.TotalChunks {
		return &ValidationError{Field: "skipped_chunks", Message: "skipped chunks must be between 0 and total chunks"}
	}
	return nil
}

// RedactionJob is the response for an analyzed PDF. It is created and
// completed within one request and never stored.
type RedactionJob struct {
	JobID        string `json:"job_id"`
	Status       string `json:"status"`
	DocumentName string `json:"document_name"`
	TotalPages   int    `json:"total_pages"`
	AnalysisResult
}

// JobStatusResponse is returned by the job-status endpoint
type JobStatusResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TextAnalysisRequest is the body of the analyze-text endpoint
type TextAnalysisRequest struct {
	Text string `json:"text"`
}
