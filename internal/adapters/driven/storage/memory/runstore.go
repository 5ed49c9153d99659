package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu      sync.RWMutex
	runs    map[string]domain.Run
	results map[string][]domain.SampleResult
}

// NewRunStore creates an empty in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs:    make(map[string]domain.Run),
		results: make(map[string][]domain.SampleResult),
	}
}

// SaveRun stores a run record together with its result rows.
func (s *RunStore) SaveRun(ctx context.Context, run *domain.Run, results []domain.SampleResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; exists {
		return fmt.Errorf("run %s: %w", run.ID, domain.ErrAlreadyExists)
	}
	s.runs[run.ID] = *run
	s.results[run.ID] = append([]domain.SampleResult(nil), results...)
	return nil
}

// GetRun retrieves a run by ID.
func (s *RunStore) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	return &run, nil
}

// GetRunResults retrieves the result rows stored for a run.
func (s *RunStore) GetRunResults(ctx context.Context, id string) ([]domain.SampleResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.runs[id]; !ok {
		return nil, fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	results := append([]domain.SampleResult(nil), s.results[id]...)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Key.Less(results[j].Key)
	})
	return results, nil
}

// ListRuns returns all stored runs, newest first.
func (s *RunStore) ListRuns(ctx context.Context) ([]domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}
