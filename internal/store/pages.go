package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sitecraft/cmsmigrator/pkg/types"
)

// PageExists reports whether a page mapping exists for sourcePath.
func (s *Store) PageExists(sourcePath string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return false, err
	}

	var one int
	err := s.db.QueryRow("SELECT 1 FROM pages WHERE source_path = ?", sourcePath).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking page %s: %w", sourcePath, err)
	}
	return true, nil
}

// GetPageID returns the remote id mapped to sourcePath.
// Returns ErrNotFound if no mapping exists.
func (s *Store) GetPageID(sourcePath string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return "", err
	}

	var id string
	err := s.db.QueryRow("SELECT remote_id FROM pages WHERE source_path = ?", sourcePath).Scan(&id)
	if err == sql.ErrNoRows {
		return "", types.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting page %s: %w", sourcePath, err)
	}
	return id, nil
}

// PutPage upserts a page mapping keyed by SourcePath, with the same
// durability and idempotence contract as PutFolder.
func (s *Store) PutPage(rec types.PageRecord) error {
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

	_, err := s.db.Exec(`INSERT INTO pages
    (source_path, remote_id, folder_path, page_name, origin, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(source_path) DO UPDATE SET
    remote_id = excluded.remote_id,
    folder_path = excluded.folder_path,
    page_name = excluded.page_name,
    origin = excluded.origin,
    updated_at = excluded.updated_at`,
		rec.SourcePath, rec.RemoteID, nullable(rec.FolderPath), rec.Name, nullable(rec.Origin),
		rec.CreatedAt.Format(time.RFC3339Nano), rec.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("persisting page %s: %w", rec.SourcePath, err)
	}
	return nil
}

// ListPages returns page records whose source path starts with prefix,
// ordered by source path. Same contract as ListFolders.
func (s *Store) ListPages(prefix string, limit int) ([]types.PageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT source_path, remote_id, folder_path, page_name, origin, created_at, updated_at
FROM pages WHERE source_path LIKE ? ESCAPE '\' ORDER BY source_path`+limitClause(limit),
		likePrefix(prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer rows.Close()

	var out []types.PageRecord
	for rows.Next() {
		var rec types.PageRecord
		var folder, origin sql.NullString
		var created, updated string
		if err := rows.Scan(&rec.SourcePath, &rec.RemoteID, &folder, &rec.Name, &origin, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning page row: %w", err)
		}
		rec.FolderPath = folder.String
		rec.Origin = origin.String
		rec.CreatedAt, rec.UpdatedAt = parseTimes(created, updated)
		out = append(out, rec)
	}
	return out, rows.Err()
}
