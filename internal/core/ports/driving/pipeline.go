package driving

import (
	"context"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
)

// PipelineOptions configures one pipeline run.
type PipelineOptions struct {
	// Parallelism bounds how many sample groups are computed
	// concurrently. Zero or negative means one worker per CPU.
	Parallelism int

	// MetadataPath, FragmentsPath and OutputPath are recorded on the
	// persisted run; the pipeline itself reads and writes through its
	// ports, not these paths.
	MetadataPath  string
	FragmentsPath string
	OutputPath    string

	// StoreRun persists the run and its results through the RunStore
	// when set.
	StoreRun bool
}

// PipelineSummary reports what a run did.
type PipelineSummary struct {
	// RunID is the persisted run's UUID, empty when StoreRun was off.
	RunID string

	// SampleCount is the number of sample groups computed.
	SampleCount int

	// Warnings are the non-fatal problems collected from the table
	// reads and the join.
	Warnings []string
}

// PipelineService runs the whole computation: read both tables, join
// on sample key, compute every sample group, emit the result table.
type PipelineService interface {
	// Run executes one computation end to end.
	Run(ctx context.Context, opts PipelineOptions) (*PipelineSummary, error)
}

// ConstantsService resolves the effective constant set: defaults
// merged with any configured overrides.
type ConstantsService interface {
	// Effective returns the constants the calculator will use.
	Effective() (domain.Constants, error)

	// SetOverride stores a constant override by its TOML key.
	SetOverride(key string, value float64) error
}
