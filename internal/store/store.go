// Package store persists analysis runs and their results in SQLite so
// finished analyses survive worker restarts and stay queryable.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		mode TEXT NOT NULL,
		status TEXT NOT NULL,
		fps DOUBLE NOT NULL DEFAULT 0,
		frames BIGINT NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS buckets (
		run_id TEXT NOT NULL,
		second INTEGER NOT NULL,
		cars INTEGER NOT NULL,
		bikes INTEGER NOT NULL,
		buses INTEGER NOT NULL,
		trucks INTEGER NOT NULL,
		others INTEGER NOT NULL,
		total INTEGER NOT NULL,
		PRIMARY KEY (run_id, second),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
	CREATE TABLE IF NOT EXISTS summaries (
		run_id TEXT PRIMARY KEY,
		total_vehicles INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		rate_per_minute DOUBLE NOT NULL,
		peak_second INTEGER NOT NULL,
		peak_count INTEGER NOT NULL,
		most_common TEXT NOT NULL,
		density TEXT NOT NULL,
		mode TEXT NOT NULL,
		cars INTEGER NOT NULL,
		bikes INTEGER NOT NULL,
		buses INTEGER NOT NULL,
		trucks INTEGER NOT NULL,
		others INTEGER NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
`

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts or updates an analysis run record.
func (s *Store) SaveRun(run models.AnalysisRun) error {
	var finished *time.Time
	if run.FinishedAt != nil {
		finished = run.FinishedAt
	}
	_, err := s.db.Exec(`
		INSERT INTO runs (id, source, mode, status, fps, frames, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode = excluded.mode,
			status = excluded.status,
			fps = excluded.fps,
			frames = excluded.frames,
			error = excluded.error,
			finished_at = excluded.finished_at`,
		run.ID, run.Source, string(run.Mode), string(run.Status),
		run.FPS, run.Frames, run.Error, run.StartedAt, finished)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun loads one run by id.
func (s *Store) GetRun(id string) (models.AnalysisRun, error) {
	var run models.AnalysisRun
	var finished sql.NullTime
	err := s.db.QueryRow(`
		SELECT id, source, mode, status, fps, frames, error, started_at, finished_at
		FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &run.Source, &run.Mode, &run.Status, &run.FPS, &run.Frames,
			&run.Error, &run.StartedAt, &finished)
	if err != nil {
		return models.AnalysisRun{}, fmt.Errorf("get run %s: %w", id, err)
	}
	if finished.Valid {
		run.FinishedAt = &finished.Time
	}
	return run, nil
}

// ListRuns returns runs newest first.
func (s *Store) ListRuns(limit int) ([]models.AnalysisRun, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`
		SELECT id, source, mode, status, fps, frames, error, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.AnalysisRun
	for rows.Next() {
		var run models.AnalysisRun
		var finished sql.NullTime
		if err := rows.Scan(&run.ID, &run.Source, &run.Mode, &run.Status, &run.FPS,
			&run.Frames, &run.Error, &run.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if finished.Valid {
			run.FinishedAt = &finished.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SaveSeries replaces the bucket series for a run.
func (s *Store) SaveSeries(runID string, series []models.Bucket) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin series transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM buckets WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("clear series for run %s: %w", runID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO buckets (run_id, second, cars, bikes, buses, trucks, others, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare bucket insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range series {
		if _, err := stmt.Exec(runID, b.Second, b.Car, b.Bike, b.Bus, b.Truck, b.Other, b.Total); err != nil {
			return fmt.Errorf("insert bucket second %d: %w", b.Second, err)
		}
	}
	return tx.Commit()
}

// GetSeries loads the bucket series for a run, ordered by second.
func (s *Store) GetSeries(runID string) ([]models.Bucket, error) {
	rows, err := s.db.Query(`
		SELECT second, cars, bikes, buses, trucks, others, total
		FROM buckets WHERE run_id = ? ORDER BY second`, runID)
	if err != nil {
		return nil, fmt.Errorf("get series for run %s: %w", runID, err)
	}
	defer rows.Close()

	var series []models.Bucket
	for rows.Next() {
		var b models.Bucket
		if err := rows.Scan(&b.Second, &b.Car, &b.Bike, &b.Bus, &b.Truck, &b.Other, &b.Total); err != nil {
			return nil, fmt.Errorf("scan bucket: %w", err)
		}
		series = append(series, b)
	}
	return series, rows.Err()
}

// SaveSummary stores the finalized summary for a run.
func (s *Store) SaveSummary(runID string, sum models.Summary) error {
	_, err := s.db.Exec(`
		INSERT INTO summaries (run_id, total_vehicles, duration_seconds, rate_per_minute,
			peak_second, peak_count, most_common, density, mode, cars, bikes, buses, trucks, others)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			total_vehicles = excluded.total_vehicles,
			duration_seconds = excluded.duration_seconds,
			rate_per_minute = excluded.rate_per_minute,
			peak_second = excluded.peak_second,
			peak_count = excluded.peak_count,
			most_common = excluded.most_common,
			density = excluded.density,
			mode = excluded.mode,
			cars = excluded.cars, bikes = excluded.bikes, buses = excluded.buses,
			trucks = excluded.trucks, others = excluded.others`,
		runID, sum.TotalVehicles, sum.DurationSeconds, sum.RatePerMinute,
		sum.PeakSecond, sum.PeakCount, string(sum.MostCommon), string(sum.Density), string(sum.Mode),
		sum.CategoryTotals[models.CategoryCar], sum.CategoryTotals[models.CategoryBike],
		sum.CategoryTotals[models.CategoryBus], sum.CategoryTotals[models.CategoryTruck],
		sum.CategoryTotals[models.CategoryOther])
	if err != nil {
		return fmt.Errorf("save summary for run %s: %w", runID, err)
	}
	return nil
}

// GetSummary loads the summary for a run. Percentages are recomputed
// from the stored totals.
func (s *Store) GetSummary(runID string) (models.Summary, error) {
	var sum models.Summary
	sum.CategoryTotals = make(map[models.Category]int, len(models.CategoryPriority))
	sum.Percentages = make(map[models.Category]float64, len(models.CategoryPriority))

	var car, bike, bus, truck, other int
	err := s.db.QueryRow(`
		SELECT total_vehicles, duration_seconds, rate_per_minute, peak_second, peak_count,
			most_common, density, mode, cars, bikes, buses, trucks, others
		FROM summaries WHERE run_id = ?`, runID).
		Scan(&sum.TotalVehicles, &sum.DurationSeconds, &sum.RatePerMinute, &sum.PeakSecond,
			&sum.PeakCount, &sum.MostCommon, &sum.Density, &sum.Mode,
			&car, &bike, &bus, &truck, &other)
	if err != nil {
		return models.Summary{}, fmt.Errorf("get summary for run %s: %w", runID, err)
	}

	sum.CategoryTotals[models.CategoryCar] = car
	sum.CategoryTotals[models.CategoryBike] = bike
	sum.CategoryTotals[models.CategoryBus] = bus
	sum.CategoryTotals[models.CategoryTruck] = truck
	sum.CategoryTotals[models.CategoryOther] = other

	for _, cat := range models.CategoryPriority {
		if sum.TotalVehicles > 0 {
			sum.Percentages[cat] = float64(sum.CategoryTotals[cat]) / float64(sum.TotalVehicles) * 100
		} else {
			sum.Percentages[cat] = 0
		}
	}
	return sum, nil
}
