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

// Ensure MetadataReader implements the interface.
var _ driven.MetadataSource = (*MetadataReader)(nil)

// MetadataReader reads the per-sample metadata table from a CSV file.
type MetadataReader struct {
	path string
}

// NewMetadataReader creates a reader over the given CSV file path.
func NewMetadataReader(path string) *MetadataReader {
	return &MetadataReader{path: path}
}

// ReadMetadata reads every metadata row, normalizing dilution strings
// and field-of-view labels. Cell-level problems degrade to missing
// values with a warning; structural problems are errors.
func (r *MetadataReader) ReadMetadata(ctx context.Context) ([]domain.SampleMeasurements, []driven.Warning, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening metadata table: %w", err)
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

	var (
		samples  []domain.SampleMeasurements
		warnings []driven.Warning
	)
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
		date := idx.cell(record, colDate)
		if id == "" {
			warnings = append(warnings, driven.Warning{Row: row, Message: "empty SampleID, row skipped"})
			continue
		}

		sample := domain.SampleMeasurements{
			Key:         domain.SampleKey{ID: id, Date: date},
			DropsPerML:  parseOptFloat(idx, record, colDropsPerML, row, &warnings),
			Flagellates: parseOptFloat(idx, record, colFlagellates, row, &warnings),
			Amoebae:     parseOptFloat(idx, record, colAmoebae, row, &warnings),
			Nematodes: domain.NematodeCounts{
				BacterialFeeding: parseOptFloat(idx, record, colBfNem, row, &warnings),
				FungalFeeding:    parseOptFloat(idx, record, colFfNem, row, &warnings),
				Predatory:        parseOptFloat(idx, record, colPNem, row, &warnings),
				RootFeeding:      parseOptFloat(idx, record, colRfNem, row, &warnings),
			},
		}

		sample.MainDilution = parseDilutionCell(idx, record, colMainDilution, row, &warnings)
		sample.BacterialDilution = parseDilutionCell(idx, record, colBacterialDilution, row, &warnings)

		rawFOV := idx.cell(record, colBacterialFOV)
		sample.BacterialFOV = domain.ParseFOVFraction(rawFOV)
		if rawFOV != "" && !sample.BacterialFOV.IsValid() {
			warnings = append(warnings, driven.Warning{
				Row:     row,
				Message: fmt.Sprintf("unrecognised field-of-view label %q, bacterial biomass will be missing", rawFOV),
			})
		}

		counts := make([]domain.OptFloat, 0, len(bacterialCountColumns))
		for _, col := range bacterialCountColumns {
			counts = append(counts, parseOptFloat(idx, record, col, row, &warnings))
		}
		sample.BacterialCounts = counts

		samples = append(samples, sample)
	}

	return samples, warnings, nil
}

func parseDilutionCell(idx columnIndex, record []string, name string, row int, warnings *[]driven.Warning) domain.OptFloat {
	raw := idx.cell(record, name)
	d, err := domain.ParseDilution(raw)
	if err != nil {
		*warnings = append(*warnings, driven.Warning{
			Row:     row,
			Message: fmt.Sprintf("%s %q: %v, treated as missing", name, raw, err),
		})
		return domain.Missing()
	}
	return d
}
