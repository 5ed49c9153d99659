package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driven"
)

// Ensure FragmentReader implements the interface.
var _ driven.FragmentSource = (*FragmentReader)(nil)

// FragmentReader reads the fungal fragment table from a CSV file: one
// row per fragment, many rows per sample.
type FragmentReader struct {
	path string
}

// NewFragmentReader creates a reader over the given CSV file path.
func NewFragmentReader(path string) *FragmentReader {
	return &FragmentReader{path: path}
}

// ReadFragments returns the fragments grouped by sample key. Fragments
// with unparseable measurements are kept with the bad cell missing (the
// calculator excludes them from sums) and a warning is recorded.
func (r *FragmentReader) ReadFragments(ctx context.Context) (map[domain.SampleKey][]domain.Fragment, []driven.Warning, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening fragment table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading header: %v", domain.ErrMalformedTable, err)
	}
	idx := indexHeader(header)
	if _, err := idx.require(colSampleID); err != nil {
		return nil, nil, err
	}
	if _, err := idx.require(colDate); err != nil {
		return nil, nil, err
	}

	fragments := make(map[domain.SampleKey][]domain.Fragment)
	var warnings []driven.Warning
	for row := 2; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: row %d: %v", domain.ErrMalformedTable, row, err)
		}

		id := idx.cell(record, colSampleID)
		if id == "" {
			warnings = append(warnings, driven.Warning{Row: row, Message: "empty SampleID, row skipped"})
			continue
		}
		key := domain.SampleKey{ID: id, Date: idx.cell(record, colDate)}

		fragment := domain.Fragment{
			LengthProportion: parseOptFloat(idx, record, colLengthProportion, row, &warnings),
			DiameterUm:       parseOptFloat(idx, record, colDiameter, row, &warnings),
		}
		fragments[key] = append(fragments[key], fragment)
	}

	return fragments, warnings, nil
}
