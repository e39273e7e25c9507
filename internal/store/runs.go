package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sitecraft/cmsmigrator/pkg/types"
)

// newRunID generates a UUID v7 run identifier.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// PutRun records one completed migration run. A missing RunID is generated.
// Returns the run id used.
func (s *Store) PutRun(rec types.RunRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return "", err
	}

	if rec.RunID == "" {
		rec.RunID = newRunID()
	}

	_, err := s.db.Exec(`INSERT INTO runs
    (run_id, mode, created, skipped, failed, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Mode, rec.Created, rec.Skipped, rec.Failed,
		rec.StartedAt.UTC().Format(time.RFC3339Nano), rec.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("persisting run %s: %w", rec.RunID, err)
	}
	return rec.RunID, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means all.
func (s *Store) ListRuns(limit int) ([]types.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT run_id, mode, created, skipped, failed, started_at, finished_at
FROM runs ORDER BY started_at DESC` + limitClause(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []types.RunRecord
	for rows.Next() {
		var rec types.RunRecord
		var started, finished string
		if err := rows.Scan(&rec.RunID, &rec.Mode, &rec.Created, &rec.Skipped, &rec.Failed, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		rec.StartedAt, rec.FinishedAt = parseTimes(started, finished)
		out = append(out, rec)
	}
	return out, rows.Err()
}
