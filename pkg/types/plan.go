package types

// FolderEntry is one directory to recreate remotely. Depth is 1 for
// top-level folders; ParentPath is empty at depth 1.
type FolderEntry struct {
	Path       string
	ParentPath string
	Name       string
	Depth      int
}

// PageEntry is one source file to recreate as an empty page shell.
// FolderPath is empty for files directly under the source root.
type PageEntry struct {
	SourcePath string
	FolderPath string
	Name       string
	Origin     string
}

// Plan is the immutable output of a scan: folders in non-decreasing depth
// order (ties broken by path), pages ordered by source path. The same
// unchanged tree always scans to an identical plan.
type Plan struct {
	Root    string
	Folders []FolderEntry
	Pages   []PageEntry
}

// PlanSummary reports how much work a plan describes.
type PlanSummary struct {
	Folders int `json:"folders"`
	Pages   int `json:"pages"`
}

// Summary returns the folder and page counts of the plan.
func (p *Plan) Summary() PlanSummary {
	return PlanSummary{Folders: len(p.Folders), Pages: len(p.Pages)}
}
