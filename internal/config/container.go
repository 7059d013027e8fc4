package config

import (
	"document-redaction-api/internal/domain"
	"document-redaction-api/internal/infra/azure"
	"document-redaction-api/internal/service"
	"document-redaction-api/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	TextExtractor   domain.TextExtractor
	RecognizerPool  domain.RecognizerPool
	AnalysisService domain.AnalysisService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())
	return NewContainerWith(config, appLogger)
}

// NewContainerWith wires the application from an explicit config and logger
func NewContainerWith(config domain.Config, appLogger domain.Logger) *Container {
	extractor := service.NewPDFExtractor(config.GetPDFBackend(), appLogger)

	client := azure.NewClient(azure.Options{
		Endpoint:          config.GetLanguageEndpoint(),
		APIKey:            config.GetLanguageKey(),
		Timeout:           config.GetRemoteTimeout(),
		RequestsPerSecond: config.GetRemoteRateLimit(),
	}, appLogger)
	pool := azure.NewPool(client, config.GetMaxConcurrentAnalyses(), appLogger)

	analysisService := service.NewAnalysisService(extractor, pool, service.AnalysisOptions{
		MaxChunkSize:     config.GetMaxChunkSize(),
		RedactionMerge:   config.GetRedactionMerge(),
		ChunkErrorPolicy: config.GetChunkErrorPolicy(),
	}, appLogger)

	appLogger.Info("Container initialized",
		"pdf_backend", extractor.Name(),
		"pool_size", pool.Size(),
		"max_chunk_size", config.GetMaxChunkSize(),
		"redaction_merge", string(config.GetRedactionMerge()),
		"chunk_error_policy", string(config.GetChunkErrorPolicy()),
	)

	return &Container{
		Config:          config,
		Logger:          appLogger,
		TextExtractor:   extractor,
		RecognizerPool:  pool,
		AnalysisService: analysisService,
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// Sync flushes the logger if it buffers
func (c *Container) Sync() {
	if s, ok := c.Logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
