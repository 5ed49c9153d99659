package csvfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driven"
)

// Metadata table column names. Matching is case-insensitive.
const (
	colSampleID          = "SampleID"
	colDate              = "Date"
	colMainDilution      = "MainDilution"
	colBacterialDilution = "BacterialDilution"
	colBacterialFOV      = "BacterialFOV"
	colDropsPerML        = "DropsPerML"
	colFlagellates       = "Flagellates"
	colAmoebae           = "Amoebae"
	colBfNem             = "BfNem"
	colFfNem             = "FfNem"
	colPNem              = "PNem"
	colRfNem             = "RfNem"
)

// bacterialCountColumns are the five replicate count columns.
var bacterialCountColumns = []string{"BacCount1", "BacCount2", "BacCount3", "BacCount4", "BacCount5"}

// Fragment table column names.
const (
	colLengthProportion = "LengthProportion"
	colDiameter         = "Diameter"
)

// columnIndex maps lower-cased header names to their position.
type columnIndex map[string]int

func indexHeader(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

// require returns the position of a column that must exist.
func (idx columnIndex) require(name string) (int, error) {
	i, ok := idx[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: missing column %q", domain.ErrMalformedTable, name)
	}
	return i, nil
}

// cell returns the trimmed cell under the named column, or "" when the
// column is absent or the record is short.
func (idx columnIndex) cell(record []string, name string) string {
	i, ok := idx[strings.ToLower(name)]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseOptFloat reads a numeric cell. Empty cells and the usual NA
// markers are missing values; anything else unparseable is missing
// plus a warning.
func parseOptFloat(idx columnIndex, record []string, name string, row int, warnings *[]driven.Warning) domain.OptFloat {
	raw := idx.cell(record, name)
	switch strings.ToUpper(raw) {
	case "", "NA", "N/A", "NAN":
		return domain.Missing()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*warnings = append(*warnings, driven.Warning{
			Row:     row,
			Message: fmt.Sprintf("unparseable %s %q, treated as missing", name, raw),
		})
		return domain.Missing()
	}
	return domain.Float(v)
}
