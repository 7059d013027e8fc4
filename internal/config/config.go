package config

import (
	"os"
	"strconv"
	"time"

	"document-redaction-api/internal/domain"
	"document-redaction-api/internal/service"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort            string
	LanguageKey           string
	LanguageEndpoint      string
	LogLevel              string
	MaxFileSize           int64
	TempDir               string
	MaxChunkSize          int
	CORSOrigin            string
	PDFBackend            string
	RedactionMerge        domain.RedactionMerge
	ChunkErrorPolicy      domain.ChunkErrorPolicy
	MaxConcurrentAnalyses int
	RemoteRateLimit       float64
	RemoteTimeout         time.Duration
	SentryDSN             string
}

// NewConfig creates a new configuration instance with default values.
// The provider key and endpoint are not validated here; a missing value
// surfaces as an authentication failure on the first remote call.
func NewConfig() domain.Config {
	return &AppConfig{
		// PaaS platforms provide the listening port via PORT.
		ServerPort:            getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8000")),
		LanguageKey:           getEnvOrDefault("LANGUAGE_KEY", ""),
		LanguageEndpoint:      getEnvOrDefault("LANGUAGE_ENDPOINT", ""),
		LogLevel:              getEnvOrDefault("LOG_LEVEL", "info"),
		MaxFileSize:           getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		TempDir:               getEnvOrDefault("TEMP_DIR", os.TempDir()),
		MaxChunkSize:          getEnvIntOrDefault("MAX_CHUNK_SIZE", service.DefaultMaxChunkSize),
		CORSOrigin:            getEnvOrDefault("CORS_ORIGIN", "http://localhost:4200"),
		PDFBackend:            getEnvOrDefault("PDF_BACKEND", domain.PDFBackendFitz),
		RedactionMerge:        domain.ParseRedactionMerge(os.Getenv("REDACTION_MERGE")),
		ChunkErrorPolicy:      domain.ParseChunkErrorPolicy(os.Getenv("CHUNK_ERROR_POLICY")),
		MaxConcurrentAnalyses: getEnvIntOrDefault("MAX_CONCURRENT_ANALYSES", 8),
		RemoteRateLimit:       getEnvFloatOrDefault("REMOTE_RATE_LIMIT", 0),
		RemoteTimeout:         getEnvDurationOrDefault("REMOTE_TIMEOUT", 60*time.Second),
		SentryDSN:             getEnvOrDefault("SENTRY_DSN", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLanguageKey returns the PII provider key
func (c *AppConfig) GetLanguageKey() string {
	return c.LanguageKey
}

// GetLanguageEndpoint returns the PII provider endpoint URL
func (c *AppConfig) GetLanguageEndpoint() string {
	return c.LanguageEndpoint
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetTempDir returns the directory uploads are staged in
func (c *AppConfig) GetTempDir() string {
	return c.TempDir
}

// GetMaxChunkSize returns the chunk budget in characters
func (c *AppConfig) GetMaxChunkSize() int {
	return c.MaxChunkSize
}

// GetCORSOrigin returns the single browser origin allowed to call the API
func (c *AppConfig) GetCORSOrigin() string {
	return c.CORSOrigin
}

// GetPDFBackend returns the PDF extraction backend name
func (c *AppConfig) GetPDFBackend() string {
	return c.PDFBackend
}

func (c *AppConfig) GetRedactionMerge() domain.RedactionMerge {
	return c.RedactionMerge
}

func (c *AppConfig) GetChunkErrorPolicy() domain.ChunkErrorPolicy {
	return c.ChunkErrorPolicy
}

// GetMaxConcurrentAnalyses returns the size of the remote client pool
func (c *AppConfig) GetMaxConcurrentAnalyses() int {
	return c.MaxConcurrentAnalyses
}

// GetRemoteRateLimit returns outbound requests per second; 0 disables pacing
func (c *AppConfig) GetRemoteRateLimit() float64 {
	return c.RemoteRateLimit
}

func (c *AppConfig) GetRemoteTimeout() time.Duration {
	return c.RemoteTimeout
}

func (c *AppConfig) GetSentryDSN() string {
	return c.SentryDSN
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
