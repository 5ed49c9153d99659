package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRun(id string) *domain.Run {
	return &domain.Run{
		ID:            id,
		StartedAt:     time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		MetadataPath:  "meta.csv",
		FragmentsPath: "frags.csv",
		OutputPath:    "out.csv",
		Constants:     domain.DefaultConstants(),
		SampleCount:   2,
		WarningCount:  1,
	}
}

func testResults() []domain.SampleResult {
	return []domain.SampleResult{
		{
			Key:              domain.SampleKey{ID: "S1", Date: "2025-03-01"},
			BacterialBiomass: domain.Float(14.8227816),
			FungalBiomass:    domain.Float(4.25),
			FBRatio:          domain.Missing(),
			Flagellates:      domain.Float(100),
			Amoebae:          domain.Float(50),
			Protozoa:         domain.Float(150),
			Nematodes: domain.NematodeResult{
				BacterialFeeding: domain.Float(190),
				Predatory:        domain.Missing(),
			},
		},
		{
			Key:           domain.SampleKey{ID: "S2", Date: "2025-03-01"},
			FungalBiomass: domain.Float(0),
		},
	}
}

func TestRunStore_SaveAndGetRun(t *testing.T) {
	store := newTestStore(t)
	runs := store.RunStore()
	ctx := context.Background()

	require.NoError(t, runs.SaveRun(ctx, testRun("run-1"), testResults()))

	got, err := runs.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, "meta.csv", got.MetadataPath)
	assert.Equal(t, 2, got.SampleCount)
	assert.Equal(t, 1, got.WarningCount)
	assert.Equal(t, domain.DefaultConstants(), got.Constants)
	assert.True(t, got.StartedAt.Equal(time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)))
}

func TestRunStore_GetRunResults_RoundTripsMissing(t *testing.T) {
	store := newTestStore(t)
	runs := store.RunStore()
	ctx := context.Background()

	require.NoError(t, runs.SaveRun(ctx, testRun("run-1"), testResults()))

	results, err := runs.GetRunResults(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, results, 2)

	s1 := results[0]
	assert.Equal(t, "S1", s1.Key.ID)
	require.True(t, s1.BacterialBiomass.Valid())
	assert.Equal(t, 14.8227816, s1.BacterialBiomass.Value())
	// Missing metrics come back missing, not zero.
	assert.False(t, s1.FBRatio.Valid())
	assert.False(t, s1.Nematodes.Predatory.Valid())

	s2 := results[1]
	require.True(t, s2.FungalBiomass.Valid())
	assert.Equal(t, 0.0, s2.FungalBiomass.Value())
	assert.False(t, s2.BacterialBiomass.Valid())
}

func TestRunStore_SaveDuplicateFails(t *testing.T) {
	store := newTestStore(t)
	runs := store.RunStore()
	ctx := context.Background()

	require.NoError(t, runs.SaveRun(ctx, testRun("run-1"), nil))

	err := runs.SaveRun(ctx, testRun("run-1"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRunStore_GetMissingRun(t *testing.T) {
	store := newTestStore(t)

	_, err := store.RunStore().GetRun(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.RunStore().GetRunResults(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_ListRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	runs := store.RunStore()
	ctx := context.Background()

	older := testRun("older")
	older.StartedAt = older.StartedAt.Add(-time.Hour)
	require.NoError(t, runs.SaveRun(ctx, older, nil))
	require.NoError(t, runs.SaveRun(ctx, testRun("newer"), nil))

	list, err := runs.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].ID)
	assert.Equal(t, "older", list[1].ID)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.RunStore().SaveRun(context.Background(), testRun("run-1"), testResults()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	list, err := reopened.RunStore().ListRuns(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
