package config

import (
	"os"
	"testing"
	"time"

	"document-redaction-api/internal/domain"
	"document-redaction-api/internal/service"
)

const defaultMaxFileSize int64 = 50 * 1024 * 1024

var configEnvKeys = []string{
	"PORT", "SERVER_PORT", "LANGUAGE_KEY", "LANGUAGE_ENDPOINT", "LOG_LEVEL",
	"MAX_FILE_SIZE", "TEMP_DIR", "MAX_CHUNK_SIZE", "CORS_ORIGIN", "PDF_BACKEND",
	"REDACTION_MERGE", "CHUNK_ERROR_POLICY", "MAX_CONCURRENT_ANALYSES",
	"REMOTE_RATE_LIMIT", "REMOTE_TIMEOUT", "SENTRY_DSN",
}

func clearConfigEnv(t *testing.T) {
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := NewConfig()

	if cfg.GetServerPort() != "8000" {
		t.Fatalf("expected default server port 8000, got %s", cfg.GetServerPort())
	}
	if cfg.GetLanguageKey() != "" || cfg.GetLanguageEndpoint() != "" {
		t.Fatalf("expected empty provider credentials by default")
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetTempDir() != os.TempDir() {
		t.Fatalf("expected default temp dir %s, got %s", os.TempDir(), cfg.GetTempDir())
	}
	if cfg.GetMaxChunkSize() != service.DefaultMaxChunkSize {
		t.Fatalf("expected default chunk size %d, got %d", service.DefaultMaxChunkSize, cfg.GetMaxChunkSize())
	}
	if cfg.GetCORSOrigin() != "http://localhost:4200" {
		t.Fatalf("expected default cors origin, got %s", cfg.GetCORSOrigin())
	}
	if cfg.GetPDFBackend() != domain.PDFBackendFitz {
		t.Fatalf("expected fitz backend, got %s", cfg.GetPDFBackend())
	}
	if cfg.GetRedactionMerge() != domain.RedactionMergeConcat {
		t.Fatalf("expected concat merge, got %s", cfg.GetRedactionMerge())
	}
	if cfg.GetChunkErrorPolicy() != domain.ChunkErrorSkip {
		t.Fatalf("expected skip policy, got %s", cfg.GetChunkErrorPolicy())
	}
	if cfg.GetMaxConcurrentAnalyses() != 8 {
		t.Fatalf("expected 8 concurrent analyses, got %d", cfg.GetMaxConcurrentAnalyses())
	}
	if cfg.GetRemoteRateLimit() != 0 {
		t.Fatalf("expected unlimited rate, got %v", cfg.GetRemoteRateLimit())
	}
	if cfg.GetRemoteTimeout() != 60*time.Second {
		t.Fatalf("expected 60s timeout, got %v", cfg.GetRemoteTimeout())
	}
	if cfg.GetSentryDSN() != "" {
		t.Fatalf("expected empty sentry dsn")
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LANGUAGE_KEY", "test-key")
	t.Setenv("LANGUAGE_ENDPOINT", "https://example.cognitiveservices.azure.com/")
	t.Setenv("MAX_FILE_SIZE", "12345")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TEMP_DIR", "/var/tmp/uploads")
	t.Setenv("MAX_CHUNK_SIZE", "1000")
	t.Setenv("CORS_ORIGIN", "https://redact.example.com")
	t.Setenv("PDF_BACKEND", "native")
	t.Setenv("REDACTION_MERGE", "last")
	t.Setenv("CHUNK_ERROR_POLICY", "fail")
	t.Setenv("MAX_CONCURRENT_ANALYSES", "2")
	t.Setenv("REMOTE_RATE_LIMIT", "2.5")
	t.Setenv("REMOTE_TIMEOUT", "5s")
	t.Setenv("SENTRY_DSN", "https://key@sentry.example.com/1")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetLanguageKey() != "test-key" {
		t.Fatalf("expected language key test-key, got %s", cfg.GetLanguageKey())
	}
	if cfg.GetLanguageEndpoint() != "https://example.cognitiveservices.azure.com/" {
		t.Fatalf("unexpected endpoint %s", cfg.GetLanguageEndpoint())
	}
	if cfg.GetMaxFileSize() != 12345 {
		t.Fatalf("expected max file size 12345, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	if cfg.GetTempDir() != "/var/tmp/uploads" {
		t.Fatalf("unexpected temp dir %s", cfg.GetTempDir())
	}
	if cfg.GetMaxChunkSize() != 1000 {
		t.Fatalf("expected chunk size 1000, got %d", cfg.GetMaxChunkSize())
	}
	if cfg.GetCORSOrigin() != "https://redact.example.com" {
		t.Fatalf("unexpected cors origin %s", cfg.GetCORSOrigin())
	}
	if cfg.GetPDFBackend() != domain.PDFBackendNative {
		t.Fatalf("expected native backend, got %s", cfg.GetPDFBackend())
	}
	if cfg.GetRedactionMerge() != domain.RedactionMergeLast {
		t.Fatalf("expected last merge, got %s", cfg.GetRedactionMerge())
	}
	if cfg.GetChunkErrorPolicy() != domain.ChunkErrorFail {
		t.Fatalf("expected fail policy, got %s", cfg.GetChunkErrorPolicy())
	}
	if cfg.GetMaxConcurrentAnalyses() != 2 {
		t.Fatalf("expected 2 concurrent analyses, got %d", cfg.GetMaxConcurrentAnalyses())
	}
	if cfg.GetRemoteRateLimit() != 2.5 {
		t.Fatalf("expected rate 2.5, got %v", cfg.GetRemoteRateLimit())
	}
	if cfg.GetRemoteTimeout() != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", cfg.GetRemoteTimeout())
	}
	if cfg.GetSentryDSN() == "" {
		t.Fatalf("expected sentry dsn to be set")
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("MAX_CHUNK_SIZE", "-5")
	t.Setenv("MAX_CONCURRENT_ANALYSES", "zero")
	t.Setenv("REMOTE_RATE_LIMIT", "-1")
	t.Setenv("REMOTE_TIMEOUT", "soon")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetMaxChunkSize() != service.DefaultMaxChunkSize {
		t.Fatalf("expected default chunk size, got %d", cfg.GetMaxChunkSize())
	}
	if cfg.GetMaxConcurrentAnalyses() != 8 {
		t.Fatalf("expected default pool size, got %d", cfg.GetMaxConcurrentAnalyses())
	}
	if cfg.GetRemoteRateLimit() != 0 {
		t.Fatalf("expected default rate, got %v", cfg.GetRemoteRateLimit())
	}
	if cfg.GetRemoteTimeout() != 60*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.GetRemoteTimeout())
	}
}

func TestNewConfig_NonPositiveMaxFileSizeKeepsCap(t *testing.T) {
	for _, value := range []string{"0", "-1", "-52428800"} {
		t.Run(value, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv("MAX_FILE_SIZE", value)

			if got := NewConfig().GetMaxFileSize(); got != defaultMaxFileSize {
				t.Fatalf("MAX_FILE_SIZE=%s: expected default cap %d, got %d", value, defaultMaxFileSize, got)
			}
		})
	}
}
