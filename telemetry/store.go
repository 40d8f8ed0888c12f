package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// RunInfo describes one recorded run.
type RunInfo struct {
	ID          uuid.UUID
	Seed        int64
	Population  int
	StartedAt   time.Time
	Generations int
}

// Store records runs and their generation statistics in SQLite.
// Genomes are never persisted.
type Store struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewStore creates a store backed by the database file at path.
// Call Init before use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init opens the database and creates missing tables.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening stats db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("opening stats db: %w", err)
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("creating tables: %w", err)
	}

	s.db = db
	return nil
}

// StartRun registers a new run and returns its ID.
func (s *Store) StartRun(ctx context.Context, seed int64, population int) (uuid.UUID, error) {
	db, err := s.getDB()
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, seed, population, started_at, generations)
		VALUES (?, ?, ?, ?, 0)
	`, id.String(), seed, population, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting run: %w", err)
	}
	return id, nil
}

// SaveGeneration records one generation of a run and bumps the run's
// generation count.
func (s *Store) SaveGeneration(ctx context.Context, runID uuid.UUID, st GenerationStats) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO generations (
			run_id, generation, ticks, wall_sec, population,
			fitness_best, fitness_mean, fitness_std, fitness_p10, fitness_p50, fitness_p90,
			checkpoints_mean, checkpoints_max, completed, best_time_alive,
			crashed, out_of_bounds, stuck, timed_out
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			ticks = excluded.ticks,
			wall_sec = excluded.wall_sec,
			population = excluded.population,
			fitness_best = excluded.fitness_best,
			fitness_mean = excluded.fitness_mean,
			fitness_std = excluded.fitness_std,
			fitness_p10 = excluded.fitness_p10,
			fitness_p50 = excluded.fitness_p50,
			fitness_p90 = excluded.fitness_p90,
			checkpoints_mean = excluded.checkpoints_mean,
			checkpoints_max = excluded.checkpoints_max,
			completed = excluded.completed,
			best_time_alive = excluded.best_time_alive,
			crashed = excluded.crashed,
			out_of_bounds = excluded.out_of_bounds,
			stuck = excluded.stuck,
			timed_out = excluded.timed_out
	`, runID.String(), st.Generation, st.Ticks, st.WallSec, st.Population,
		st.FitnessBest, st.FitnessMean, st.FitnessStd, st.FitnessP10, st.FitnessP50, st.FitnessP90,
		st.CheckpointsMean, st.CheckpointsMax, st.Completed, st.BestTimeAlive,
		st.Crashed, st.OutOfBounds, st.Stuck, st.TimedOut)
	if err != nil {
		return fmt.Errorf("inserting generation %d: %w", st.Generation, err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE runs SET generations = (
			SELECT COUNT(*) FROM generations WHERE run_id = ?
		) WHERE id = ?
	`, runID.String(), runID.String())
	if err != nil {
		return fmt.Errorf("updating run: %w", err)
	}

	return tx.Commit()
}

// Generations returns a run's generation rows in generation order.
func (s *Store) Generations(ctx context.Context, runID uuid.UUID) ([]GenerationStats, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT generation, ticks, wall_sec, population,
			fitness_best, fitness_mean, fitness_std, fitness_p10, fitness_p50, fitness_p90,
			checkpoints_mean, checkpoints_max, completed, best_time_alive,
			crashed, out_of_bounds, stuck, timed_out
		FROM generations WHERE run_id = ? ORDER BY generation
	`, runID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GenerationStats
	for rows.Next() {
		var st GenerationStats
		if err := rows.Scan(&st.Generation, &st.Ticks, &st.WallSec, &st.Population,
			&st.FitnessBest, &st.FitnessMean, &st.FitnessStd, &st.FitnessP10, &st.FitnessP50, &st.FitnessP90,
			&st.CheckpointsMean, &st.CheckpointsMax, &st.Completed, &st.BestTimeAlive,
			&st.Crashed, &st.OutOfBounds, &st.Stuck, &st.TimedOut); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// Run returns the metadata of one run.
func (s *Store) Run(ctx context.Context, runID uuid.UUID) (RunInfo, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return RunInfo{}, false, err
	}

	var (
		info    RunInfo
		id      string
		started string
	)
	err = db.QueryRowContext(ctx, `
		SELECT id, seed, population, started_at, generations FROM runs WHERE id = ?
	`, runID.String()).Scan(&id, &info.Seed, &info.Population, &started, &info.Generations)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunInfo{}, false, nil
		}
		return RunInfo{}, false, err
	}

	if info.ID, err = uuid.Parse(id); err != nil {
		return RunInfo{}, false, fmt.Errorf("parsing run id %q: %w", id, err)
	}
	if info.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return RunInfo{}, false, fmt.Errorf("parsing start time of run %s: %w", id, err)
	}
	return info, true, nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			population INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			generations INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL REFERENCES runs(id),
			generation INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			wall_sec REAL NOT NULL,
			population INTEGER NOT NULL,
			fitness_best REAL NOT NULL,
			fitness_mean REAL NOT NULL,
			fitness_std REAL NOT NULL,
			fitness_p10 REAL NOT NULL,
			fitness_p50 REAL NOT NULL,
			fitness_p90 REAL NOT NULL,
			checkpoints_mean REAL NOT NULL,
			checkpoints_max INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			best_time_alive INTEGER NOT NULL,
			crashed INTEGER NOT NULL,
			out_of_bounds INTEGER NOT NULL,
			stuck INTEGER NOT NULL,
			timed_out INTEGER NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
	`)
	return err
}
