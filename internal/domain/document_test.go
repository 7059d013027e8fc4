package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// TestConfidenceLevel tests the bucket thresholds, including both boundaries.
func TestConfidenceLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.95, ConfidenceHigh},
		{0.8, ConfidenceHigh},
		{0.7999, ConfidenceMedium},
		{0.7, ConfidenceMedium},
		{0.6, ConfidenceMedium},
		{0.5999, ConfidenceLow},
		{0.4, ConfidenceLow},
		{0, ConfidenceLow},
	}

	for _, tt := range tests {
		if got := ConfidenceLevel(tt.score); got != tt.want {
			t.Errorf("ConfidenceLevel(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

// TestPIIEntity_Validate tests the ranges of entity fields.
func TestPIIEntity_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entity  PIIEntity
		wantErr bool
		errMsg  string
	}{
		{
			name:   "Valid entity",
			entity: PIIEntity{Text: "859-98-0987", Category: "USSocialSecurityNumber", ConfidenceScore: 0.85, Offset: 7, Length: 11},
		},
		{
			name:    "Missing category",
			entity:  PIIEntity{Text: "x", ConfidenceScore: 0.5},
			wantErr: true,
			errMsg:  "category: category is required",
		},
		{
			name:    "Score above one",
			entity:  PIIEntity{Category: "Person", ConfidenceScore: 1.2},
			wantErr: true,
			errMsg:  "confidence_score: confidence score must be between 0 and 1",
		},
		{
			name:    "Negative offset",
			entity:  PIIEntity{Category: "Person", ConfidenceScore: 0.9, Offset: -1},
			wantErr: true,
			errMsg:  "offset: offset cannot be negative",
		},
		{
			name:    "Negative length",
			entity:  PIIEntity{Category: "Person", ConfidenceScore: 0.9, Length: -3},
			wantErr: true,
			errMsg:  "length: length cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entity.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Fatalf("Validate() error = %v, want %v", err, tt.errMsg)
			}
		})
	}
}

// TestAnalysisResult_Validate tests the counting invariants.
func TestAnalysisResult_Validate(t *testing.T) {
	entities := []PIIEntity{
		{Category: "A", ConfidenceScore: 0.95},
		{Category: "B", ConfidenceScore: 0.7},
	}

	ok := &AnalysisResult{
		Entities:          entities,
		TotalEntities:     2,
		ConfidenceSummary: map[string]int{ConfidenceHigh: 1, ConfidenceMedium: 1},
		TotalChunks:       1,
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid result, got %v", err)
	}

	badTotal := *ok
	badTotal.TotalEntities = 3
	if err := badTotal.Validate(); err == nil {
		t.Fatalf("expected total_entities mismatch to fail")
	}

	badSummary := *ok
	badSummary.ConfidenceSummary = map[string]int{ConfidenceHigh: 1}
	if err := badSummary.Validate(); err == nil || !strings.HasPrefix(err.Error(), "confidence_summary") {
		t.Fatalf("expected confidence_summary mismatch, got %v", err)
	}

	badChunks := *ok
	badChunks.SkippedChunks = 2
	if err := badChunks.Validate(); err == nil {
		t.Fatalf("expected skipped_chunks > total_chunks to fail")
	}
}

// TestRedactionJob_JSONShape tests that the job embeds the analysis fields at top level.
func TestRedactionJob_JSONShape(t *testing.T) {
	job := RedactionJob{
		JobID:        "3f0c9a52-1f7e-4a43-9d1b-0f5c3c1f2a11",
		Status:       JobStatusCompleted,
		DocumentName: "contract.pdf",
		TotalPages:   3,
		AnalysisResult: AnalysisResult{
			Entities:          []PIIEntity{},
			RedactedText:      "***",
			ConfidenceSummary: map[string]int{},
		},
	}

	raw, err := json.Marshal(job)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"job_id", "status", "document_name", "total_pages", "entities", "redacted_text", "total_entities", "processing_time", "confidence_summary"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("expected key %q in %s", key, raw)
		}
	}
}

func TestParsePolicies(t *testing.T) {
	if ParseRedactionMerge("LAST") != RedactionMergeLast {
		t.Fatalf("expected last")
	}
	if ParseRedactionMerge("anything") != RedactionMergeConcat {
		t.Fatalf("expected concat fallback")
	}
	if ParseChunkErrorPolicy(" fail ") != ChunkErrorFail {
		t.Fatalf("expected fail")
	}
	if ParseChunkErrorPolicy("") != ChunkErrorSkip {
		t.Fatalf("expected skip fallback")
	}
}

func TestDocumentError_IsRejected(t *testing.T) {
	err := error(&DocumentError{Code: "InvalidDocument", Message: "Document text is empty."})

	if !errors.Is(err, ErrDocumentRejected) {
		t.Fatalf("expected DocumentError to match ErrDocumentRejected")
	}
	if err.Error() != "InvalidDocument: Document text is empty." {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
