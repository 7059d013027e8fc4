package service

import (
	"fmt"
	"io"
	"os"
	"strings"

	"document-redaction-api/internal/domain"
	apperrors "document-redaction-api/pkg/errors"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// pageDocument is the subset of an open PDF the extractor needs.
// Page indexes are 0-based.
type pageDocument interface {
	NumPage() int
	Text(pageIndex int) (string, error)
	Close() error
}

type openFunc func(path string) (pageDocument, error)

// PDFExtractor handles PDF text extraction
type PDFExtractor struct {
	backend string
	open    openFunc
	logger  domain.Logger
}

// NewPDFExtractor creates an extractor for the given backend.
// Unknown backends fall back to go-fitz.
func NewPDFExtractor(backend string, logger domain.Logger) *PDFExtractor {
	e := &PDFExtractor{backend: domain.PDFBackendFitz, open: openFitz, logger: logger}
	if backend == domain.PDFBackendNative {
		e.backend = domain.PDFBackendNative
		e.open = openNative
	}
	return e
}

// Name returns the backend in use
func (e *PDFExtractor) Name() string {
	return e.backend
}

// ExtractFile opens the PDF at path and joins the text of its non-empty
// pages with a page-break marker. TotalPages counts every page.
func (e *PDFExtractor) ExtractFile(path string) (*domain.ExtractedText, error) {
	doc, err := e.open(path)
	if err != nil {
		return nil, apperrors.NewExtractionError("failed to open PDF", err)
	}
	defer doc.Close()

	return e.extractPages(doc), nil
}

func (e *PDFExtractor) extractPages(doc pageDocument) *domain.ExtractedText {
	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)

	for pageNum := 0; pageNum < numPages; pageNum++ {
		text, err := doc.Text(pageNum)
		if err != nil {
			e.logger.Warn("Failed to extract text from page", "page", pageNum+1, "total", numPages, "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			e.logger.Debug("Skipping empty page", "page", pageNum+1, "total", numPages)
			continue
		}
		pages = append(pages, text)
	}

	e.logger.Debug("PDF text extracted", "backend", e.backend, "pages", numPages, "text_pages", len(pages))

	return &domain.ExtractedText{
		Content:    strings.Join(pages, domain.PageBreak),
		TotalPages: numPages,
		TextPages:  len(pages),
	}
}

func openFitz(path string) (pageDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// nativeDocument adapts ledongthuc/pdf, which numbers pages from 1
type nativeDocument struct {
	file   *os.File
	reader *pdf.Reader
}

func openNative(path string) (pageDocument, error) {
	return openNativeWith(path, pdf.NewReader)
}

// openNativeWith owns the file handle so it is closed on every failure,
// including a parser panic.
func openNativeWith(path string, newReader func(io.ReaderAt, int64) (*pdf.Reader, error)) (doc pageDocument, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		// The pure-Go parser panics on some malformed inputs.
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("malformed PDF: %v", r)
		}
		if err != nil {
			f.Close()
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	reader, err := newReader(f, info.Size())
	if err != nil {
		return nil, err
	}
	return &nativeDocument{file: f, reader: reader}, nil
}

func (d *nativeDocument) NumPage() int {
	return d.reader.NumPage()
}

func (d *nativeDocument) Text(pageIndex int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page %d: %v", pageIndex+1, r)
		}
	}()

	page := d.reader.Page(pageIndex + 1)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func (d *nativeDocument) Close() error {
	return d.file.Close()
}
