// Command redact runs PII recognition over a PDF or, without arguments,
// over two built-in sample sentences.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"document-redaction-api/internal/config"
	"document-redaction-api/internal/domain"
	"document-redaction-api/internal/service"
	apperrors "document-redaction-api/pkg/errors"

	"github.com/joho/godotenv"
)

var sampleDocuments = []string{
	"Theemployee's SSN is 859-98-0987.",
	"The employee's phone number is 555-555-5555.",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	chunkSize := flag.Int("chunk-size", 0, "character budget per PII request (default from MAX_CHUNK_SIZE)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-chunk-size N] [file.pdf]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	container := config.NewContainer()

	analyzer := container.AnalysisService
	if *chunkSize > 0 {
		cfg := container.Config
		analyzer = service.NewAnalysisService(container.TextExtractor, container.RecognizerPool, service.AnalysisOptions{
			MaxChunkSize:     *chunkSize,
			RedactionMerge:   cfg.GetRedactionMerge(),
			ChunkErrorPolicy: cfg.GetChunkErrorPolicy(),
		}, container.Logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, flag.Args(), container.TextExtractor, analyzer, os.Stdout, os.Stderr)
	stop()
	container.Sync()
	os.Exit(code)
}

func run(ctx context.Context, args []string, extractor domain.TextExtractor, analyzer domain.AnalysisService, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stdout, "No PDF file provided. Running with example text...")
		total := 0
		for i, doc := range sampleDocuments {
			fmt.Fprintf(stdout, "\n--- Sample %d ---\n", i+1)
			result, err := analyzer.AnalyzeText(ctx, doc)
			if err != nil {
				reportAnalysisError(stderr, err)
				return 1
			}
			total += printResult(stdout, result)
		}
		fmt.Fprintf(stdout, "\nTotal PII entities found: %d\n", total)
		fmt.Fprintln(stdout, "\nUsage: redact [-chunk-size N] <path_to_pdf_file>")
		return 0
	}

	pdfPath := args[0]
	fmt.Fprintf(stdout, "Processing PDF file: %s\n", pdfPath)

	if _, err := os.Stat(pdfPath); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, "Error: PDF file '%s' not found.\n", pdfPath)
		return 1
	}

	fmt.Fprintln(stdout, "Extracting text from PDF...")
	extracted, err := extractor.ExtractFile(pdfPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error extracting text from PDF: %v\n", err)
		return 1
	}
	if strings.TrimSpace(extracted.Content) == "" {
		fmt.Fprintln(stderr, "Failed to extract text from PDF.")
		return 1
	}

	fmt.Fprintf(stdout, "Successfully extracted %d characters from %d page(s).\n", len(extracted.Content), extracted.TotalPages)
	fmt.Fprintln(stdout, "Running PII detection on extracted text...")

	result, err := analyzer.AnalyzeText(ctx, extracted.Content)
	if err != nil {
		reportAnalysisError(stderr, err)
		return 1
	}
	total := printResult(stdout, result)
	fmt.Fprintf(stdout, "\nTotal PII entities found: %d\n", total)
	return 0
}

func reportAnalysisError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if apperrors.IsType(err, apperrors.ErrorTypeRemoteService) {
		fmt.Fprintln(w, "Check LANGUAGE_KEY and LANGUAGE_ENDPOINT.")
	}
}

// printResult prints entities grouped by chunk and returns their count
func printResult(w io.Writer, result *domain.AnalysisResult) int {
	fmt.Fprintf(w, "Analyzed %d chunk(s), %d skipped.\n", result.TotalChunks, result.SkippedChunks)

	byChunk := make(map[int][]domain.PIIEntity)
	for _, e := range result.Entities {
		byChunk[e.ChunkIndex] = append(byChunk[e.ChunkIndex], e)
	}

	for i := 0; i < result.TotalChunks; i++ {
		if result.TotalChunks > 1 {
			fmt.Fprintf(w, "\n--- Chunk %d Results ---\n", i+1)
		}
		entities := byChunk[i]
		if len(entities) == 0 {
			fmt.Fprintln(w, "No PII entities found in this chunk.")
			continue
		}
		for _, e := range entities {
			fmt.Fprintf(w, "%s\tcategory=%s subcategory=%s confidence=%.2f (%s) offset=%d length=%d\n",
				e.Text, e.Category, e.Subcategory, e.ConfidenceScore, e.ConfidenceLevel(), e.Offset, e.Length)
		}
	}
	return result.TotalEntities
}
