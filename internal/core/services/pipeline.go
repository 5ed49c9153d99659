package services

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driven"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driving"
	"github.com/rhizome-labs/soilbio-cli/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// PipelineService orchestrates one computation: read both input
// tables, join fragments onto metadata by sample key, compute every
// sample group, write the result table, and optionally persist the
// run.
type PipelineService struct {
	metadata   driven.MetadataSource
	fragments  driven.FragmentSource
	sink       driven.ResultSink
	calculator driving.CalculatorService
	runStore   driven.RunStore
}

// NewPipelineService creates a pipeline over the given ports. The
// runStore parameter is optional (can be nil); runs are then never
// persisted regardless of options.
func NewPipelineService(
	metadata driven.MetadataSource,
	fragments driven.FragmentSource,
	sink driven.ResultSink,
	calculator driving.CalculatorService,
	runStore driven.RunStore,
) *PipelineService {
	return &PipelineService{
		metadata:   metadata,
		fragments:  fragments,
		sink:       sink,
		calculator: calculator,
		runStore:   runStore,
	}
}

// Run executes one computation end to end.
func (s *PipelineService) Run(ctx context.Context, opts driving.PipelineOptions) (*driving.PipelineSummary, error) {
	logger.Section("Pipeline Run")
	startedAt := time.Now()

	samples, metaWarnings, err := s.metadata.ReadMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading metadata table: %w", err)
	}
	logger.Debug("Metadata rows: %d (%d warnings)", len(samples), len(metaWarnings))

	fragments, fragWarnings, err := s.fragments.ReadFragments(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading fragment table: %w", err)
	}
	logger.Debug("Fragment groups: %d (%d warnings)", len(fragments), len(fragWarnings))

	warnings := collectWarnings("metadata", metaWarnings)
	warnings = append(warnings, collectWarnings("fragments", fragWarnings)...)

	// Left-join: every metadata row is a sample group; fragment rows
	// without a matching metadata row are reported, not computed.
	joined := make([]domain.SampleMeasurements, 0, len(samples))
	seen := make(map[domain.SampleKey]bool, len(samples))
	for _, sample := range samples {
		sample.Fragments = fragments[sample.Key]
		joined = append(joined, sample)
		seen[sample.Key] = true
	}
	for key := range fragments {
		if !seen[key] {
			warnings = append(warnings,
				fmt.Sprintf("fragments: sample (%s, %s) has no metadata row, skipped", key.ID, key.Date))
		}
	}

	results, err := s.computeAll(ctx, joined, opts.Parallelism)
	if err != nil {
		return nil, err
	}

	if err := s.sink.WriteResults(ctx, results); err != nil {
		return nil, fmt.Errorf("writing results: %w", err)
	}
	logger.Info("Computed %d samples", len(results))

	summary := &driving.PipelineSummary{
		SampleCount: len(results),
		Warnings:    warnings,
	}

	if opts.StoreRun && s.runStore != nil {
		run := &domain.Run{
			ID:            uuid.New().String(),
			StartedAt:     startedAt,
			MetadataPath:  opts.MetadataPath,
			FragmentsPath: opts.FragmentsPath,
			OutputPath:    opts.OutputPath,
			Constants:     s.calculator.Constants(),
			SampleCount:   len(results),
			WarningCount:  len(warnings),
		}
		if err := s.runStore.SaveRun(ctx, run, results); err != nil {
			return nil, fmt.Errorf("persisting run: %w", err)
		}
		summary.RunID = run.ID
		logger.Debug("Persisted run %s", run.ID)
	}

	return summary, nil
}

// computeAll maps the calculator over the sample groups. Groups are
// independent, so they are dispatched across a bounded worker pool;
// results land in their input slot, and the final table is sorted by
// sample key so output order never depends on scheduling.
func (s *PipelineService) computeAll(ctx context.Context, samples []domain.SampleMeasurements, parallelism int) ([]domain.SampleResult, error) {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	logger.Debug("Computing %d sample groups with %d workers", len(samples), parallelism)

	results := make([]domain.SampleResult, len(samples))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, sample := range samples {
		i, sample := i, sample
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.calculator.ComputeSample(sample)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("computing samples: %w", err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Key.Less(results[j].Key)
	})
	return results, nil
}

func collectWarnings(table string, ws []driven.Warning) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, fmt.Sprintf("%s row %d: %s", table, w.Row, w.Message))
	}
	return out
}
