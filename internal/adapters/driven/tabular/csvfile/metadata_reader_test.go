package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const metadataHeader = "SampleID,Date,MainDilution,BacterialDilution,BacterialFOV,DropsPerML," +
	"BacCount1,BacCount2,BacCount3,BacCount4,BacCount5,Flagellates,Amoebae,BfNem,FfNem,PNem,RfNem\n"

func TestMetadataReader_ReadsCompleteRow(t *testing.T) {
	path := writeTempCSV(t, metadataHeader+
		"S1,2025-03-01,1:10,1:100,Half,19,5,6,5,7,6,3,2,1,0,2,4\n")

	samples, warnings, err := NewMetadataReader(path).ReadMetadata(context.Background())

	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, samples, 1)

	s := samples[0]
	assert.Equal(t, domain.SampleKey{ID: "S1", Date: "2025-03-01"}, s.Key)
	assert.Equal(t, 10.0, s.MainDilution.Value())
	assert.Equal(t, 100.0, s.BacterialDilution.Value())
	assert.Equal(t, domain.FOVHalf, s.BacterialFOV)
	assert.Equal(t, 19.0, s.DropsPerML.Value())
	require.Len(t, s.BacterialCounts, 5)
	assert.Equal(t, 5.0, s.BacterialCounts[0].Value())
	assert.Equal(t, 6.0, s.BacterialCounts[4].Value())
	assert.Equal(t, 3.0, s.Flagellates.Value())
	assert.Equal(t, 2.0, s.Amoebae.Value())
	assert.Equal(t, 4.0, s.Nematodes.RootFeeding.Value())
	assert.Empty(t, s.Fragments)
}

func TestMetadataReader_BlankAndNACellsAreMissing(t *testing.T) {
	path := writeTempCSV(t, metadataHeader+
		"S1,2025-03-01,1:10,,Whole,NA,5,,N/A,7,6,,2,1,,2,4\n")

	samples, warnings, err := NewMetadataReader(path).ReadMetadata(context.Background())

	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, samples, 1)

	s := samples[0]
	assert.False(t, s.BacterialDilution.Valid())
	assert.False(t, s.DropsPerML.Valid())
	assert.False(t, s.BacterialCounts[1].Valid())
	assert.False(t, s.BacterialCounts[2].Valid())
	assert.False(t, s.Flagellates.Valid())
	assert.False(t, s.Nematodes.FungalFeeding.Valid())
}

func TestMetadataReader_BadCellsWarnAndDegrade(t *testing.T) {
	path := writeTempCSV(t, metadataHeader+
		"S1,2025-03-01,2:10,1:100,Third,many,5,6,5,7,6,3,2,1,0,2,4\n")

	samples, warnings, err := NewMetadataReader(path).ReadMetadata(context.Background())

	require.NoError(t, err)
	require.Len(t, samples, 1)

	s := samples[0]
	assert.False(t, s.MainDilution.Valid())
	assert.Equal(t, domain.FOVUndefined, s.BacterialFOV)
	assert.False(t, s.DropsPerML.Valid())

	// Bad dilution, unknown FOV label and unparseable drops each warn.
	require.Len(t, warnings, 3)
	for _, w := range warnings {
		assert.Equal(t, 2, w.Row)
	}
}

func TestMetadataReader_EmptySampleIDSkipsRow(t *testing.T) {
	path := writeTempCSV(t, metadataHeader+
		",2025-03-01,1:10,1:100,Half,19,5,6,5,7,6,3,2,1,0,2,4\n"+
		"S2,2025-03-01,1:10,1:100,Half,19,5,6,5,7,6,3,2,1,0,2,4\n")

	samples, warnings, err := NewMetadataReader(path).ReadMetadata(context.Background())

	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, "S2", samples[0].Key.ID)
	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Row)
}

func TestMetadataReader_MissingKeyColumnFails(t *testing.T) {
	path := writeTempCSV(t, "Date,MainDilution\n2025-03-01,1:10\n")

	_, _, err := NewMetadataReader(path).ReadMetadata(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedTable)
}

func TestMetadataReader_MissingFileFails(t *testing.T) {
	_, _, err := NewMetadataReader(filepath.Join(t.TempDir(), "nope.csv")).ReadMetadata(context.Background())
	require.Error(t, err)
}

func TestMetadataReader_HeaderMatchingIsCaseInsensitive(t *testing.T) {
	path := writeTempCSV(t, "sampleid,date,maindilution,dropsperml\nS1,2025-03-01,1:25,19\n")

	samples, _, err := NewMetadataReader(path).ReadMetadata(context.Background())

	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 25.0, samples[0].MainDilution.Value())
	assert.Equal(t, 19.0, samples[0].DropsPerML.Value())
	// Columns absent from the sheet are simply missing.
	assert.False(t, samples[0].Flagellates.Valid())
}
