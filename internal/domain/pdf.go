package domain

// PageBreak separates the text of consecutive non-empty pages
const PageBreak = "\n\n--- Page Break ---\n\n"

// PDF backends
const (
	PDFBackendFitz   = "fitz"
	PDFBackendNative = "native"
)

// ExtractedText represents the raw extracted text of a document
type ExtractedText struct {
	Content    string `json:"content"`
	TotalPages int    `json:"total_pages"`
	// TextPages counts the pages that contributed text.
	TextPages int `json:"text_pages"`
}
