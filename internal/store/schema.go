package store

// Schema DDL. Unlike a scratch database, the store is the durable migration
// ledger, so every statement is IF NOT EXISTS and Open never drops data.
const (
	createFolders = `CREATE TABLE IF NOT EXISTS folders (
    source_path TEXT PRIMARY KEY,
    remote_id TEXT NOT NULL,
    parent_path TEXT,
    folder_name TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createPages = `CREATE TABLE IF NOT EXISTS pages (
    source_path TEXT PRIMARY KEY,
    remote_id TEXT NOT NULL,
    folder_path TEXT,
    page_name TEXT NOT NULL,
    origin TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createRuns = `CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    mode TEXT NOT NULL,
    created INTEGER NOT NULL,
    skipped INTEGER NOT NULL,
    failed INTEGER NOT NULL,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL
);`
)

// Index DDL for the lookups the creators and the inspection commands make.
const (
	idxFoldersRemote = `CREATE INDEX IF NOT EXISTS idx_folders_remote_id ON folders(remote_id);`
	idxFoldersParent = `CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders(parent_path);`
	idxPagesRemote   = `CREATE INDEX IF NOT EXISTS idx_pages_remote_id ON pages(remote_id);`
	idxPagesFolder   = `CREATE INDEX IF NOT EXISTS idx_pages_folder ON pages(folder_path);`
	idxRunsStarted   = `CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);`
)

// schemaDDL lists all CREATE statements applied on Open.
var schemaDDL = []string{
	createFolders,
	createPages,
	createRuns,
	idxFoldersRemote,
	idxFoldersParent,
	idxPagesRemote,
	idxPagesFolder,
	idxRunsStarted,
}
