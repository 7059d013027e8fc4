package service

import (
	"context"
	"sync"

	"document-redaction-api/internal/domain"
)

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) record(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.record("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.record("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.record("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.record("WARN: " + msg)
}

func (m *MockLogger) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

// MockRecognizer answers each chunk with the next scripted response
type MockRecognizer struct {
	respond func(chunk string) (*domain.ChunkAnalysis, error)
	chunks  []string
	closed  int
}

func (m *MockRecognizer) RecognizePII(ctx context.Context, chunk string) (*domain.ChunkAnalysis, error) {
	m.chunks = append(m.chunks, chunk)
	return m.respond(chunk)
}

func (m *MockRecognizer) Close() error {
	m.closed++
	return nil
}

type MockPool struct {
	recognizer *MockRecognizer
	acquireErr error
	acquired   int
}

func (m *MockPool) Acquire(ctx context.Context) (domain.PIIRecognizer, error) {
	if m.acquireErr != nil {
		return nil, m.acquireErr
	}
	m.acquired++
	return m.recognizer, nil
}

type MockExtractor struct {
	result *domain.ExtractedText
	err    error
	paths  []string
}

func (m *MockExtractor) ExtractFile(path string) (*domain.ExtractedText, error) {
	m.paths = append(m.paths, path)
	return m.result, m.err
}

func (m *MockExtractor) Name() string {
	return "mock"
}
