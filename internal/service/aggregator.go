package service

import (
	"math"
	"strings"
	"time"

	"document-redaction-api/internal/domain"
)

// Aggregator merges per-chunk analyses into one AnalysisResult.
// It is not safe for concurrent use; one request owns one aggregator.
type Aggregator struct {
	input     string
	merge     domain.RedactionMerge
	startedAt time.Time

	entities      []domain.PIIEntity
	summary       map[string]int
	redacted      []string
	lastRedacted  string
	anySucceeded  bool
	totalChunks   int
	skippedChunks int
}

// NewAggregator starts the processing clock for the given input text
func NewAggregator(input string, merge domain.RedactionMerge, startedAt time.Time) *Aggregator {
	return &Aggregator{
		input:     input,
		merge:     merge,
		startedAt: startedAt,
		entities:  make([]domain.PIIEntity, 0),
		summary:   make(map[string]int),
	}
}

// Add records a successfully analyzed chunk
func (a *Aggregator) Add(chunkIndex int, analysis *domain.ChunkAnalysis) {
	a.totalChunks++
	a.anySucceeded = true
	a.lastRedacted = analysis.RedactedText
	a.redacted = append(a.redacted, analysis.RedactedText)

	for _, entity := range analysis.Entities {
		entity.ChunkIndex = chunkIndex
		a.summary[entity.ConfidenceLevel()]++
		a.entities = append(a.entities, entity)
	}
}

// Skip records a chunk whose analysis was rejected. The chunk contributes
// no entities and, under concat merging, its text passes through as-is.
func (a *Aggregator) Skip(chunk string) {
	a.totalChunks++
	a.skippedChunks++
	a.redacted = append(a.redacted, chunk)
}

// Result finalizes the aggregation and stops the processing clock
func (a *Aggregator) Result(now time.Time) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Entities:          a.entities,
		RedactedText:      a.redactedText(),
		TotalEntities:     len(a.entities),
		ProcessingTime:    roundSeconds(now.Sub(a.startedAt)),
		ConfidenceSummary: a.summary,
		TotalChunks:       a.totalChunks,
		SkippedChunks:     a.skippedChunks,
	}
}

func (a *Aggregator) redactedText() string {
	if !a.anySucceeded {
		return a.input
	}
	if a.merge == domain.RedactionMergeLast {
		return a.lastRedacted
	}
	if len(a.redacted) == 1 {
		return a.redacted[0]
	}
	return strings.Join(a.redacted, " ")
}

// roundSeconds rounds a duration to seconds with two decimals
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
