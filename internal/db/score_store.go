package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/bathy.report/internal/photon"
	"github.com/banshee-data/bathy.report/internal/score"
	"github.com/banshee-data/bathy.report/internal/timeutil"
)

// Score is a persisted scoring report attached to a run.
type Score struct {
	ScoreID   string       `json:"score_id"`
	RunID     string       `json:"run_id"`
	Class     photon.Class `json:"class"`
	Report    score.Report `json:"report"`
	CreatedAt int64        `json:"created_at"`
}

// ScoreStore provides persistence for scores.
type ScoreStore struct {
	db    *sql.DB
	clock timeutil.Clock
}

// NewScoreStore creates a new ScoreStore.
func NewScoreStore(db *DB) *ScoreStore {
	return &ScoreStore{db: db.DB, clock: timeutil.RealClock{}}
}

// SetClock replaces the clock used to stamp CreatedAt.
func (s *ScoreStore) SetClock(c timeutil.Clock) {
	s.clock = timeutil.OrReal(c)
}

// Insert stores report against runID and returns the new score ID.
func (s *ScoreStore) Insert(runID string, report score.Report) (string, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	id := uuid.New().String()
	created := s.clock.Now().UnixNano()

	err = retryOnBusy(s.clock, func() error {
		_, err := s.db.Exec(`
			INSERT INTO scores (
				score_id, run_id, class, weighted_accuracy, weighted_f1,
				weighted_bal_acc, report_json, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, runID, int(report.Class), report.WeightedAccuracy, report.WeightedF1,
			report.WeightedBalancedAccuracy, string(raw), created,
		)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("insert score: %w", err)
	}
	return id, nil
}

// ListByRun returns all scores for a run, oldest first.
func (s *ScoreStore) ListByRun(runID string) ([]*Score, error) {
	rows, err := s.db.Query(`
		SELECT score_id, run_id, class, report_json, created_at
		FROM scores
		WHERE run_id = ?
		ORDER BY created_at ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var scores []*Score
	for rows.Next() {
		var sc Score
		var cls int
		var raw string
		if err := rows.Scan(&sc.ScoreID, &sc.RunID, &cls, &raw, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		sc.Class = photon.Class(cls)
		if err := json.Unmarshal([]byte(raw), &sc.Report); err != nil {
			return nil, fmt.Errorf("score %s: decode report: %w", sc.ScoreID, err)
		}
		scores = append(scores, &sc)
	}
	return scores, rows.Err()
}
