package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"document-redaction-api/internal/domain"
	apperrors "document-redaction-api/pkg/errors"

	"golang.org/x/time/rate"
)

const (
	apiVersion    = "2023-04-01"
	analyzePath   = "/language/:analyze-text"
	taskKind      = "PiiEntityRecognition"
	documentID    = "1"
	documentLang  = "en"
	maxErrorBytes = 64 * 1024
)

// Client calls the Azure AI Language PII recognition endpoint.
// One Client is shared by every pooled session.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     domain.Logger
}

// Options configure a Client
type Options struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	// RequestsPerSecond paces outbound calls; 0 means unlimited.
	RequestsPerSecond float64
}

// NewClient creates a new PII client. Credentials are not checked until
// the first call.
func NewClient(opts Options, logger domain.Logger) *Client {
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		endpoint:   strings.TrimRight(opts.Endpoint, "/"),
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

type analyzeRequest struct {
	Kind          string        `json:"kind"`
	AnalysisInput analysisInput `json:"analysisInput"`
	Parameters    parameters    `json:"parameters"`
}

type analysisInput struct {
	Documents []inputDocument `json:"documents"`
}

type inputDocument struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

type parameters struct {
	ModelVersion    string `json:"modelVersion"`
	StringIndexType string `json:"stringIndexType"`
}

type analyzeResponse struct {
	Results struct {
		Documents []resultDocument `json:"documents"`
		Errors    []documentError  `json:"errors"`
	} `json:"results"`
}

type resultDocument struct {
	ID           string   `json:"id"`
	RedactedText string   `json:"redactedText"`
	Entities     []entity `json:"entities"`
	Warnings     []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"warnings"`
}

type entity struct {
	Text            string  `json:"text"`
	Category        string  `json:"category"`
	Subcategory     string  `json:"subcategory"`
	Offset          int     `json:"offset"`
	Length          int     `json:"length"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

type documentError struct {
	ID    string    `json:"id"`
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code       string     `json:"code"`
	Message    string     `json:"message"`
	InnerError *errorBody `json:"innererror,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// RecognizePII submits one chunk as a single English document.
//
// Transport failures and non-2xx responses return a remote service
// AppError. A document-level rejection returns *domain.DocumentError,
// which matches domain.ErrDocumentRejected.
func (c *Client) RecognizePII(ctx context.Context, chunk string) (*domain.ChunkAnalysis, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.NewRemoteServiceError("PII service rate limit wait aborted", err)
	}

	payload, err := json.Marshal(analyzeRequest{
		Kind: taskKind,
		AnalysisInput: analysisInput{
			Documents: []inputDocument{{ID: documentID, Language: documentLang, Text: chunk}},
		},
		Parameters: parameters{ModelVersion: "latest", StringIndexType: "UnicodeCodePoint"},
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode PII request", err)
	}

	url := fmt.Sprintf("%s%s?api-version=%s", c.endpoint, analyzePath, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewRemoteServiceError("failed to build PII request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewRemoteServiceError("PII service request failed", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("PII service responded", "status", resp.StatusCode, "chars", len(chunk), "elapsed", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewRemoteServiceError("PII service returned an error", statusError(resp))
	}

	var decoded analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperrors.NewRemoteServiceError("failed to decode PII response", err)
	}

	for _, docErr := range decoded.Results.Errors {
		if docErr.ID == documentID {
			return nil, toDocumentError(docErr.Error)
		}
	}

	for _, doc := range decoded.Results.Documents {
		if doc.ID != documentID {
			continue
		}
		for _, w := range doc.Warnings {
			c.logger.Warn("PII service warning", "code", w.Code, "message", w.Message)
		}
		return c.toChunkAnalysis(doc), nil
	}

	return nil, apperrors.NewRemoteServiceError("PII service response had no result for the document", nil)
}

func (c *Client) toChunkAnalysis(doc resultDocument) *domain.ChunkAnalysis {
	entities := make([]domain.PIIEntity, 0, len(doc.Entities))
	for _, e := range doc.Entities {
		entity := domain.PIIEntity{
			Text:            e.Text,
			Category:        e.Category,
			Subcategory:     e.Subcategory,
			ConfidenceScore: e.ConfidenceScore,
			Offset:          e.Offset,
			Length:          e.Length,
		}
		if err := entity.Validate(); err != nil {
			c.logger.Warn("Dropping malformed PII entity", "category", e.Category, "error", err)
			continue
		}
		entities = append(entities, entity)
	}
	return &domain.ChunkAnalysis{RedactedText: doc.RedactedText, Entities: entities}
}

// toDocumentError prefers the inner error, which names the actual cause
// (for example InvalidDocument) rather than the generic InvalidArgument.
func toDocumentError(body errorBody) *domain.DocumentError {
	if body.InnerError != nil && body.InnerError.Code != "" {
		return &domain.DocumentError{Code: body.InnerError.Code, Message: body.InnerError.Message}
	}
	return &domain.DocumentError{Code: body.Code, Message: body.Message}
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))

	var decoded errorResponse
	if err := json.Unmarshal(raw, &decoded); err == nil && decoded.Error.Code != "" {
		return fmt.Errorf("status %d: %s: %s", resp.StatusCode, decoded.Error.Code, decoded.Error.Message)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
