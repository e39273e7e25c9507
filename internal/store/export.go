package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Exported file names inside the export directory.
const (
	foldersExportFile = "folders.jsonl"
	pagesExportFile   = "pages.jsonl"
)

// ExportJSONL writes every folder and page record to dir as JSONL, one
// record per line, ordered by source path. Existing files are replaced
// atomically.
func (s *Store) ExportJSONL(dir string) error {
	folders, err := s.ListFolders("", 0)
	if err != nil {
		return fmt.Errorf("reading folders: %w", err)
	}
	pages, err := s.ListPages("", 0)
	if err != nil {
		return fmt.Errorf("reading pages: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	folderLines := make([]json.RawMessage, 0, len(folders))
	for _, rec := range folders {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling folder %s: %w", rec.SourcePath, err)
		}
		folderLines = append(folderLines, line)
	}
	if err := writeJSONL(filepath.Join(dir, foldersExportFile), folderLines); err != nil {
		return err
	}

	pageLines := make([]json.RawMessage, 0, len(pages))
	for _, rec := range pages {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling page %s: %w", rec.SourcePath, err)
		}
		pageLines = append(pageLines, line)
	}
	return writeJSONL(filepath.Join(dir, pagesExportFile), pageLines)
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
