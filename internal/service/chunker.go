package service

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxChunkSize is the PII service's conservative per-document budget
const DefaultMaxChunkSize = 5000

// SplitIntoChunks packs whitespace-separated words into chunks of at most
// maxChunkSize characters (Unicode code points, the unit the PII service
// counts in). Text that already fits is returned unchanged as
// a single chunk. Each word counts its length plus one for the joining
// space. A word longer than the budget is never broken and ends up alone
// in an oversize chunk.
func SplitIntoChunks(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultMaxChunkSize
	}
	if utf8.RuneCountInString(text) <= maxChunkSize {
		return []string{text}
	}

	var chunks []string
	var current []string
	currentLength := 0

	for _, word := range strings.Fields(text) {
		wordLength := utf8.RuneCountInString(word) + 1
		if currentLength+wordLength > maxChunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{word}
			currentLength = wordLength
			continue
		}
		current = append(current, word)
		currentLength += wordLength
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
