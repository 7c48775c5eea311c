package memory

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/domain/model"
)

// Storage keeps the latest batch report in process memory.
type Storage struct {
	mu       sync.RWMutex
	report   *model.BatchReport
	rendered string
}

// New returns empty storage.
func New() *Storage {
	return &Storage{}
}

// SaveLatest replaces the stored report.
func (s *Storage) SaveLatest(ctx context.Context, report *model.BatchReport, rendered string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = report
	s.rendered = rendered
	return nil
}

// Latest returns the stored report or ErrNotFound before the first run.
func (s *Storage) Latest(ctx context.Context) (*model.BatchReport, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return nil, "", domainErrors.ErrNotFound
	}
	return s.report, s.rendered, nil
}
