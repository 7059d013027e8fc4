package azure

import (
	"context"
	"errors"
	"sync"

	"document-redaction-api/internal/domain"
	apperrors "document-redaction-api/pkg/errors"

	"golang.org/x/sync/semaphore"
)

var errSessionClosed = errors.New("PII session already closed")

// Pool bounds how many requests may talk to the PII service at once.
// Each Acquire must be paired with Close on the returned session.
type Pool struct {
	client *Client
	sem    *semaphore.Weighted
	size   int
	logger domain.Logger
}

// NewPool creates a pool of size sessions over a shared client
func NewPool(client *Client, size int, logger domain.Logger) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		client: client,
		sem:    semaphore.NewWeighted(int64(size)),
		size:   size,
		logger: logger,
	}
}

// Acquire blocks until a session is free or ctx is done
func (p *Pool) Acquire(ctx context.Context) (domain.PIIRecognizer, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		p.logger.Warn("Gave up waiting for a PII session", "pool_size", p.size, "error", err)
		return nil, apperrors.NewRemoteServiceError("no PII session available", err)
	}
	return &session{pool: p}, nil
}

// Size returns the pool capacity
func (p *Pool) Size() int {
	return p.size
}

type session struct {
	pool   *Pool
	mu     sync.Mutex
	closed bool
}

func (s *session) RecognizePII(ctx context.Context, chunk string) (*domain.ChunkAnalysis, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, apperrors.NewInternalError("PII session used after close", errSessionClosed)
	}
	return s.pool.client.RecognizePII(ctx, chunk)
}

// Close returns the session to the pool. Calling it twice is harmless.
func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.pool.sem.Release(1)
	return nil
}
