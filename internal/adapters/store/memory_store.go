// Package store provides ApplicationRepository implementations. Every
// backend enforces uniqueness on the email id; the tracker's duplicate
// handling depends on it.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/syncapply/syncapply/internal/core"
)

// MemoryStore is an in-memory implementation of the ApplicationRepository
// interface, used for tests and local development.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]core.ApplicationRecord
	logger  *zap.Logger
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]core.ApplicationRecord),
		logger:  logger,
	}
}

// GetByEmailID returns the record for an email id, or nil when absent
func (s *MemoryStore) GetByEmailID(ctx context.Context, emailID string) (*core.ApplicationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[emailID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Insert stores a new record, rejecting duplicates by email id
func (s *MemoryStore) Insert(ctx context.Context, record *core.ApplicationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.EmailID]; exists {
		return core.ErrDuplicateApplication
	}
	s.records[record.EmailID] = *record
	return nil
}

// List returns all records, unordered
func (s *MemoryStore) List(ctx context.Context) ([]core.ApplicationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]core.ApplicationRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	return records, nil
}
