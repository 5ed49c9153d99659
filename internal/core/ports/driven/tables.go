package driven

import (
	"context"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
)

// MetadataSource reads the per-sample metadata table: dilutions,
// field-of-view category, drops-per-mL, and the raw bacterial,
// protozoa and nematode counts.
type MetadataSource interface {
	// ReadMetadata returns one SampleMeasurements per metadata row,
	// with dilution strings and field-of-view labels already
	// normalized and Fragments left empty. Warnings carry per-cell
	// problems (unparseable numbers, unknown labels) that degraded to
	// missing values rather than failing the read.
	ReadMetadata(ctx context.Context) ([]domain.SampleMeasurements, []Warning, error)
}

// FragmentSource reads the fungal fragment table: one row per
// fragment, many rows per sample.
type FragmentSource interface {
	// ReadFragments returns the fragments grouped by sample key.
	ReadFragments(ctx context.Context) (map[domain.SampleKey][]domain.Fragment, []Warning, error)
}

// ResultSink consumes the computed result table.
type ResultSink interface {
	// WriteResults emits one row per sample, in the given order.
	// Missing metrics are rendered as the sink's NA marker.
	WriteResults(ctx context.Context, results []domain.SampleResult) error
}

// Warning is a non-fatal per-row or per-cell problem surfaced during a
// table read. Malformed data degrades to missing values; the warning
// preserves what was skipped and why.
type Warning struct {
	// Row is the 1-based row number in the source table, including
	// the header row.
	Row int

	// Message describes the problem.
	Message string
}
