package domain

// Confidence buckets
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

const (
	highConfidenceThreshold   = 0.8
	mediumConfidenceThreshold = 0.6
)

// PIIEntity is a single span the PII service classified as sensitive.
// Offset and Length are in Unicode code points relative to the chunk
// identified by ChunkIndex.
type PIIEntity struct {
	Text            string  `json:"text"`
	Category        string  `json:"category"`
	Subcategory     string  `json:"subcategory"`
	ConfidenceScore float64 `json:"confidence_score"`
	Offset          int     `json:"offset"`
	Length          int     `json:"length"`
	ChunkIndex      int     `json:"chunk_index"`
}

// ConfidenceLevel returns the bucket the entity's score falls into
func (e PIIEntity) ConfidenceLevel() string {
	return ConfidenceLevel(e.ConfidenceScore)
}

// Validate checks the ranges the PII service guarantees
func (e PIIEntity) Validate() error {
	if e.Category == "" {
		return &ValidationError{Field: "category", Message: "category is required"}
	}
	if e.ConfidenceScore < 0 || e.ConfidenceScore > 1 {
		return &ValidationError{Field: "confidence_score", Message: "confidence score must be between 0 and 1"}
	}
	if e.Offset < 0 {
		return &ValidationError{Field: "offset", Message: "offset cannot be negative"}
	}
	if e.Length < 0 {
		return &ValidationError{Field: "length", Message: "length cannot be negative"}
	}
	return nil
}

// ConfidenceLevel buckets a score: >= 0.8 high, >= 0.6 medium, otherwise low.
func ConfidenceLevel(score float64) string {
	switch {
	case score >= highConfidenceThreshold:
		return ConfidenceHigh
	case score >= mediumConfidenceThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// ChunkAnalysis is the remote service's verdict for one chunk
type ChunkAnalysis struct {
	RedactedText string
	Entities     []PIIEntity
}
