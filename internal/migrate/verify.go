package migrate

import (
	"fmt"

	"github.com/sitecraft/cmsmigrator/internal/scanner"
	"github.com/sitecraft/cmsmigrator/internal/store"
	"github.com/sitecraft/cmsmigrator/pkg/types"
)

// Verify scans fresh and reconciles the plan against the store: plan entries
// absent from the store are unmigrated, store entries absent from the plan
// are stale (their source moved or became excluded after creation).
// Read-only; neither the store nor the remote system is touched.
func Verify(sc *scanner.Scanner, st *store.Store) (*types.VerifyReport, error) {
	plan, err := sc.Scan()
	if err != nil {
		return nil, err
	}

	storedFolders, err := st.ListFolders("", 0)
	if err != nil {
		return nil, fmt.Errorf("reading folders: %w", err)
	}
	storedPages, err := st.ListPages("", 0)
	if err != nil {
		return nil, fmt.Errorf("reading pages: %w", err)
	}

	report := &types.VerifyReport{}

	folderSet := make(map[string]bool, len(storedFolders))
	for _, rec := range storedFolders {
		folderSet[rec.SourcePath] = true
	}
	planFolderSet := make(map[string]bool, len(plan.Folders))
	for _, f := range plan.Folders {
		planFolderSet[f.Path] = true
		if !folderSet[f.Path] {
			report.MissingFolders = append(report.MissingFolders, f.Path)
		}
	}
	for _, rec := range storedFolders {
		if !planFolderSet[rec.SourcePath] {
			report.StaleFolders = append(report.StaleFolders, rec.SourcePath)
		}
	}

	pageSet := make(map[string]bool, len(storedPages))
	for _, rec := range storedPages {
		pageSet[rec.SourcePath] = true
	}
	planPageSet := make(map[string]bool, len(plan.Pages))
	for _, p := range plan.Pages {
		planPageSet[p.SourcePath] = true
		if !pageSet[p.SourcePath] {
			report.MissingPages = append(report.MissingPages, p.SourcePath)
		}
	}
	for _, rec := range storedPages {
		if !planPageSet[rec.SourcePath] {
			report.StalePages = append(report.StalePages, rec.SourcePath)
		}
	}

	return report, nil
}
