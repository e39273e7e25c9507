package types

import "errors"

// Store lifecycle and lookup errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrStoreClosed = errors.New("store is closed")
)

// Scan errors. A failed scan aborts the run before any creation; partial
// plans are never returned.
var (
	ErrRootNotFound = errors.New("source root does not exist")
	ErrRootNotDir   = errors.New("source root is not a directory")
)

// ErrFoldersNotMigrated is returned by a pages-only run when the store holds
// no folder mappings but the plan's pages reference folders.
var ErrFoldersNotMigrated = errors.New("folders not migrated")
