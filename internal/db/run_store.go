package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/bathy.report/internal/bathy/pipeline"
	"github.com/banshee-data/bathy.report/internal/timeutil"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Run is one persisted post-processing run.
type Run struct {
	RunID         string                 `json:"run_id"`
	Source        string                 `json:"source"`
	ParamsJSON    json.RawMessage        `json:"params_json"`
	Photons       int                    `json:"photons"`
	SurfaceBefore int                    `json:"surface_before"`
	SurfaceAfter  int                    `json:"surface_after"`
	BathyBefore   int                    `json:"bathy_before"`
	BathyAfter    int                    `json:"bathy_after"`
	Changed       int                    `json:"changed"`
	Passes        []pipeline.PassSummary `json:"passes"`
	CreatedAt     int64                  `json:"created_at"`
}

// NewRun builds a Run from a pipeline result. params is marshalled as the
// run's parameter record.
func NewRun(source string, params any, res pipeline.Result) (*Run, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}
	return &Run{
		Source:        source,
		ParamsJSON:    raw,
		Photons:       res.Photons,
		SurfaceBefore: res.SurfaceBefore,
		SurfaceAfter:  res.SurfaceAfter,
		BathyBefore:   res.BathyBefore,
		BathyAfter:    res.BathyAfter,
		Changed:       res.Changed,
		Passes:        res.Passes,
	}, nil
}

// RunStore provides persistence for runs.
type RunStore struct {
	db    *sql.DB
	clock timeutil.Clock
}

// NewRunStore creates a new RunStore.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db.DB, clock: timeutil.RealClock{}}
}

// SetClock replaces the clock used to stamp CreatedAt.
func (s *RunStore) SetClock(c timeutil.Clock) {
	s.clock = timeutil.OrReal(c)
}

// Insert persists a run. If RunID is empty, a UUID is generated.
func (s *RunStore) Insert(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = s.clock.Now().UnixNano()
	}
	params := "{}"
	if len(run.ParamsJSON) > 0 {
		params = string(run.ParamsJSON)
	}
	passes, err := json.Marshal(run.Passes)
	if err != nil {
		return fmt.Errorf("marshal passes: %w", err)
	}

	return retryOnBusy(s.clock, func() error {
		_, err := s.db.Exec(`
			INSERT INTO runs (
				run_id, source, params_json, photons,
				surface_before, surface_after, bathy_before, bathy_after,
				changed, passes_json, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, run.Source, params, run.Photons,
			run.SurfaceBefore, run.SurfaceAfter, run.BathyBefore, run.BathyAfter,
			run.Changed, string(passes), run.CreatedAt,
		)
		return err
	})
}

const runColumns = `run_id, source, params_json, photons,
	surface_before, surface_after, bathy_before, bathy_after,
	changed, passes_json, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var r Run
	var params, passes string
	err := row.Scan(
		&r.RunID, &r.Source, &params, &r.Photons,
		&r.SurfaceBefore, &r.SurfaceAfter, &r.BathyBefore, &r.BathyAfter,
		&r.Changed, &passes, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.ParamsJSON = json.RawMessage(params)
	if err := json.Unmarshal([]byte(passes), &r.Passes); err != nil {
		return nil, fmt.Errorf("run %s: decode passes: %w", r.RunID, err)
	}
	return &r, nil
}

// Get returns a single run by ID.
func (s *RunStore) Get(runID string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	return r, nil
}

// List returns up to limit runs, newest first.
func (s *RunStore) List(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Delete removes a run and its scores.
func (s *RunStore) Delete(runID string) error {
	return retryOnBusy(s.clock, func() error {
		result, err := s.db.Exec(`DELETE FROM runs WHERE run_id = ?`, runID)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("run %s: %w", runID, ErrNotFound)
		}
		return nil
	})
}
