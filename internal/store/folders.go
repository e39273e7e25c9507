package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sitecraft/cmsmigrator/pkg/types"
)

// FolderExists reports whether a folder mapping exists for sourcePath.
func (s *Store) FolderExists(sourcePath string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return false, err
	}

	var one int
	err := s.db.QueryRow("SELECT 1 FROM folders WHERE source_path = ?", sourcePath).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking folder %s: %w", sourcePath, err)
	}
	return true, nil
}

// GetFolderID returns the remote id mapped to sourcePath.
// Returns ErrNotFound if no mapping exists.
func (s *Store) GetFolderID(sourcePath string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return "", err
	}

	var id string
	err := s.db.QueryRow("SELECT remote_id FROM folders WHERE source_path = ?", sourcePath).Scan(&id)
	if err == sql.ErrNoRows {
		return "", types.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting folder %s: %w", sourcePath, err)
	}
	return id, nil
}

// PutFolder upserts a folder mapping keyed by SourcePath. Re-insertion
// refreshes remote_id and updated_at and preserves created_at, so re-runs
// never fail on a duplicate key. The write is committed before Put returns.
func (s *Store) PutFolder(rec types.FolderRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err := s.db.Exec(`INSERT INTO folders
    (source_path, remote_id, parent_path, folder_name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(source_path) DO UPDATE SET
    remote_id = excluded.remote_id,
    parent_path = excluded.parent_path,
    folder_name = excluded.folder_name,
    updated_at = excluded.updated_at`,
		rec.SourcePath, rec.RemoteID, nullable(rec.ParentPath), rec.Name,
		rec.CreatedAt.Format(time.RFC3339Nano), rec.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("persisting folder %s: %w", rec.SourcePath, err)
	}
	return nil
}

// BuildFolderIDMap bulk-reads every folder mapping. The page creator uses
// this single read instead of per-page store round-trips.
func (s *Store) BuildFolderIDMap() (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT source_path, remote_id FROM folders")
	if err != nil {
		return nil, fmt.Errorf("reading folder map: %w", err)
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var path, id string
		if err := rows.Scan(&path, &id); err != nil {
			return nil, fmt.Errorf("scanning folder map row: %w", err)
		}
		m[path] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating folder map: %w", err)
	}
	return m, nil
}

// ListFolders returns folder records whose source path starts with prefix,
// ordered by source path. An empty prefix lists everything; limit <= 0 means
// no limit. Inspection only, not on the creation hot path.
func (s *Store) ListFolders(prefix string, limit int) ([]types.FolderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT source_path, remote_id, parent_path, folder_name, created_at, updated_at
FROM folders WHERE source_path LIKE ? ESCAPE '\' ORDER BY source_path`+limitClause(limit),
		likePrefix(prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	defer rows.Close()

	var out []types.FolderRecord
	for rows.Next() {
		var rec types.FolderRecord
		var parent sql.NullString
		var created, updated string
		if err := rows.Scan(&rec.SourcePath, &rec.RemoteID, &parent, &rec.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning folder row: %w", err)
		}
		rec.ParentPath = parent.String
		rec.CreatedAt, rec.UpdatedAt = parseTimes(created, updated)
		out = append(out, rec)
	}
	return out, rows.Err()
}
