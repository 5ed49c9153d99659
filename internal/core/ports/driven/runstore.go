package driven

import (
	"context"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
)

// RunStore persists completed pipeline runs and their results for
// later audit. Backed by SQLite.
type RunStore interface {
	// SaveRun stores a run record together with its result rows.
	SaveRun(ctx context.Context, run *domain.Run, results []domain.SampleResult) error

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// GetRunResults retrieves the result rows stored for a run,
	// ordered by sample ID then date.
	GetRunResults(ctx context.Context, id string) ([]domain.SampleResult, error)

	// ListRuns returns all stored runs, newest first.
	ListRuns(ctx context.Context) ([]domain.Run, error)
}
