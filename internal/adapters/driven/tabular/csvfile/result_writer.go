package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driven"
)

// Ensure ResultWriter implements the interface.
var _ driven.ResultSink = (*ResultWriter)(nil)

// DefaultNAMarker is how missing metrics render in the output table.
const DefaultNAMarker = "NA"

// resultHeader is the output column order.
var resultHeader = []string{
	"SampleID", "Date",
	"BacBio", "FunBio", "F:B",
	"Flagellates", "Amoebae", "Protozoa",
	"BfNem", "FfNem", "PNem", "RfNem",
}

// ResultWriter writes the computed result table to a CSV file.
type ResultWriter struct {
	path     string
	naMarker string
}

// NewResultWriter creates a writer targeting the given path. An empty
// naMarker falls back to DefaultNAMarker.
func NewResultWriter(path, naMarker string) *ResultWriter {
	if naMarker == "" {
		naMarker = DefaultNAMarker
	}
	return &ResultWriter{path: path, naMarker: naMarker}
}

// WriteResults emits one row per sample in the given order.
func (w *ResultWriter) WriteResults(ctx context.Context, results []domain.SampleResult) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("creating result table: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(resultHeader); err != nil {
		return fmt.Errorf("writing result header: %w", err)
	}

	for _, result := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		record := []string{
			result.Key.ID,
			result.Key.Date,
			w.format(result.BacterialBiomass),
			w.format(result.FungalBiomass),
			w.format(result.FBRatio),
			w.format(result.Flagellates),
			w.format(result.Amoebae),
			w.format(result.Protozoa),
			w.format(result.Nematodes.BacterialFeeding),
			w.format(result.Nematodes.FungalFeeding),
			w.format(result.Nematodes.Predatory),
			w.format(result.Nematodes.RootFeeding),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing result row for %s: %w", result.Key.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing result table: %w", err)
	}
	return f.Close()
}

func (w *ResultWriter) format(v domain.OptFloat) string {
	if !v.Valid() {
		return w.naMarker
	}
	return strconv.FormatFloat(v.Value(), 'f', -1, 64)
}
