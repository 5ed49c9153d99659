package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driven"
)

// Ensure runStore implements the interface.
var _ driven.RunStore = (*runStore)(nil)

// runStore provides the RunStore interface backed by the shared Store.
type runStore struct {
	store *Store
}

// SaveRun stores a run record together with its result rows, in one
// transaction.
func (r *runStore) SaveRun(ctx context.Context, run *domain.Run, results []domain.SampleResult) error {
	constantsJSON, err := json.Marshal(run.Constants)
	if err != nil {
		return fmt.Errorf("marshalling constants: %w", err)
	}

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, metadata_path, fragments_path, output_path,
			constants_json, sample_count, warning_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.MetadataPath,
		run.FragmentsPath,
		run.OutputPath,
		string(constantsJSON),
		run.SampleCount,
		run.WarningCount,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("run %s: %w", run.ID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, result := range results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_results (run_id, sample_id, sample_date,
				bac_bio, fun_bio, fb_ratio, flagellates, amoebae, protozoa,
				bf_nem, ff_nem, p_nem, rf_nem)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			result.Key.ID,
			result.Key.Date,
			toNull(result.BacterialBiomass),
			toNull(result.FungalBiomass),
			toNull(result.FBRatio),
			toNull(result.Flagellates),
			toNull(result.Amoebae),
			toNull(result.Protozoa),
			toNull(result.Nematodes.BacterialFeeding),
			toNull(result.Nematodes.FungalFeeding),
			toNull(result.Nematodes.Predatory),
			toNull(result.Nematodes.RootFeeding),
		)
		if err != nil {
			return fmt.Errorf("inserting result for %s: %w", result.Key.ID, err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run by ID.
func (r *runStore) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, started_at, metadata_path, fragments_path, output_path,
			constants_json, sample_count, warning_count
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetRunResults retrieves the result rows stored for a run, ordered by
// sample ID then date.
func (r *runStore) GetRunResults(ctx context.Context, id string) ([]domain.SampleResult, error) {
	if _, err := r.GetRun(ctx, id); err != nil {
		return nil, err
	}

	rows, err := r.store.db.QueryContext(ctx, `
		SELECT sample_id, sample_date,
			bac_bio, fun_bio, fb_ratio, flagellates, amoebae, protozoa,
			bf_nem, ff_nem, p_nem, rf_nem
		FROM run_results WHERE run_id = ?
		ORDER BY sample_id, sample_date`, id)
	if err != nil {
		return nil, fmt.Errorf("querying run results: %w", err)
	}
	defer rows.Close()

	var results []domain.SampleResult
	for rows.Next() {
		var result domain.SampleResult
		var bacBio, funBio, fbRatio, flag, amoeba, protozoa sql.NullFloat64
		var bfNem, ffNem, pNem, rfNem sql.NullFloat64
		err := rows.Scan(&result.Key.ID, &result.Key.Date,
			&bacBio, &funBio, &fbRatio, &flag, &amoeba, &protozoa,
			&bfNem, &ffNem, &pNem, &rfNem)
		if err != nil {
			return nil, fmt.Errorf("scanning run result: %w", err)
		}
		result.BacterialBiomass = fromNull(bacBio)
		result.FungalBiomass = fromNull(funBio)
		result.FBRatio = fromNull(fbRatio)
		result.Flagellates = fromNull(flag)
		result.Amoebae = fromNull(amoeba)
		result.Protozoa = fromNull(protozoa)
		result.Nematodes = domain.NematodeResult{
			BacterialFeeding: fromNull(bfNem),
			FungalFeeding:    fromNull(ffNem),
			Predatory:        fromNull(pNem),
			RootFeeding:      fromNull(rfNem),
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// ListRuns returns all stored runs, newest first.
func (r *runStore) ListRuns(ctx context.Context) ([]domain.Run, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, started_at, metadata_path, fragments_path, output_path,
			constants_json, sample_count, warning_count
		FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*domain.Run, error) {
	var (
		run           domain.Run
		startedAt     string
		constantsJSON string
	)
	err := s.Scan(&run.ID, &startedAt, &run.MetadataPath, &run.FragmentsPath,
		&run.OutputPath, &constantsJSON, &run.SampleCount, &run.WarningCount)
	if err != nil {
		return nil, err
	}

	run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing run timestamp: %w", err)
	}
	if err := json.Unmarshal([]byte(constantsJSON), &run.Constants); err != nil {
		return nil, fmt.Errorf("parsing run constants: %w", err)
	}
	return &run, nil
}

func toNull(v domain.OptFloat) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v.Value(), Valid: v.Valid()}
}

func fromNull(v sql.NullFloat64) domain.OptFloat {
	if !v.Valid {
		return domain.Missing()
	}
	return domain.Float(v.Float64)
}
