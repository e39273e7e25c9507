package types

import "time"

// FolderRecord maps a source directory to the remote folder created for it.
// SourcePath is the slash-delimited path relative to the source root and is
// the unique key. ParentPath is empty only for top-level folders.
type FolderRecord struct {
	SourcePath string    `json:"source_path"`
	RemoteID   string    `json:"remote_id"`
	ParentPath string    `json:"parent_path,omitempty"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PageRecord maps a source file to the remote page created for it.
// SourcePath is the relative path of the backing file and is the unique key.
// FolderPath is the SourcePath of the containing folder, empty for pages
// directly under the source root. Origin is the absolute path to the backing
// file, kept for the later content phases.
type PageRecord struct {
	SourcePath string    `json:"source_path"`
	RemoteID   string    `json:"remote_id"`
	FolderPath string    `json:"folder_path,omitempty"`
	Name       string    `json:"name"`
	Origin     string    `json:"origin,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RunRecord captures one non-dry migration run for provenance.
type RunRecord struct {
	RunID      string    `json:"run_id"`
	Mode       string    `json:"mode"`
	Created    int       `json:"created"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Run modes recorded in the runs table.
const (
	RunModeAll     = "all"
	RunModeFolders = "folders"
	RunModePages   = "pages"
)

// Stats reports how many records the store holds.
type Stats struct {
	Folders int `json:"folders"`
	Pages   int `json:"pages"`
	Runs    int `json:"runs"`
}
