// Package migrate contains the creation engine: the folder and page
// creators, the orchestrator sequencing them over a fresh scan, and the
// plan-versus-store verifier.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sitecraft/cmsmigrator/internal/cms"
	"github.com/sitecraft/cmsmigrator/internal/config"
	"github.com/sitecraft/cmsmigrator/internal/scanner"
	"github.com/sitecraft/cmsmigrator/internal/store"
	"github.com/sitecraft/cmsmigrator/pkg/types"
)

// Options selects which phases a run executes. FoldersOnly and PagesOnly
// are mutually exclusive; neither set runs both phases.
type Options struct {
	DryRun      bool
	FoldersOnly bool
	PagesOnly   bool
}

var errExclusiveOptions = errors.New("folders-only and pages-only are mutually exclusive")

// Runner sequences scan, folder creation, and page creation, and records
// completed runs in the store.
type Runner struct {
	scanner *scanner.Scanner
	store   *store.Store
	folders *FolderCreator
	pages   *PageCreator
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRunner wires a Runner from the store, the two asset copiers, and the
// validated configuration. A nil logger disables logging.
func NewRunner(st *store.Store, folderAssets, pageAssets cms.AssetCreator, cfg *config.Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		scanner: scanner.New(cfg.SourceRoot, cfg.ExclusionPrefix, cfg.SourceSuffix, logger),
		store:   st,
		folders: NewFolderCreator(st, folderAssets, cfg.FolderTemplateID, cfg.TargetRootID, cfg.Workers, logger),
		pages:   NewPageCreator(st, pageAssets, cfg.PageTemplateID, cfg.Workers, logger),
		cfg:     cfg,
		logger:  logger,
	}
}

// Scan runs a scan without creating anything.
func (r *Runner) Scan() (*types.Plan, error) {
	return r.scanner.Scan()
}

// Run scans fresh and executes the selected phases. It never retries failed
// items; a subsequent full run resumes idempotently via the store. Non-dry
// runs are recorded in the runs table.
func (r *Runner) Run(ctx context.Context, opts Options) (*types.Summary, error) {
	if opts.FoldersOnly && opts.PagesOnly {
		return nil, errExclusiveOptions
	}

	started := time.Now().UTC()

	// A stale plan is never trusted; scanning is cheap and read-only.
	plan, err := r.scanner.Scan()
	if err != nil {
		return nil, err
	}

	summary := &types.Summary{DryRun: opts.DryRun}

	if !opts.PagesOnly {
		fres, err := r.folders.Create(ctx, plan.Folders, opts.DryRun)
		if err != nil {
			return nil, fmt.Errorf("folder phase: %w", err)
		}
		summary.Folders = fres
	}

	if !opts.FoldersOnly {
		idMap, err := r.store.BuildFolderIDMap()
		if err != nil {
			return nil, fmt.Errorf("building folder id map: %w", err)
		}
		if opts.PagesOnly && len(idMap) == 0 && pagesReferenceFolders(plan.Pages) {
			return nil, fmt.Errorf("%w: run the folder phase first", types.ErrFoldersNotMigrated)
		}
		idMap[""] = r.cfg.TargetRootID
		if opts.DryRun && !opts.PagesOnly {
			// The folder phase would have created these by now.
			for _, f := range plan.Folders {
				if _, ok := idMap[f.Path]; !ok {
					idMap[f.Path] = dryRunID
				}
			}
		}

		pres, err := r.pages.Create(ctx, plan.Pages, idMap, opts.DryRun)
		if err != nil {
			return nil, fmt.Errorf("page phase: %w", err)
		}
		summary.Pages = pres
	}

	if !opts.DryRun {
		rec := types.RunRecord{
			Mode:       runMode(opts),
			Created:    summary.Created(),
			Skipped:    summary.Skipped(),
			Failed:     summary.Failed(),
			StartedAt:  started,
			FinishedAt: time.Now().UTC(),
		}
		if _, err := r.store.PutRun(rec); err != nil {
			// The migration itself succeeded; losing the provenance row is
			// worth a warning, not a failed run.
			r.logger.Warn("recording run failed", zap.Error(err))
		}
	}

	r.logger.Info("run complete",
		zap.String("mode", runMode(opts)),
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("created", summary.Created()),
		zap.Int("skipped", summary.Skipped()),
		zap.Int("failed", summary.Failed()),
	)
	return summary, nil
}

// pagesReferenceFolders reports whether any page lives below a folder
// (rather than directly under the source root).
func pagesReferenceFolders(pages []types.PageEntry) bool {
	for _, p := range pages {
		if p.FolderPath != "" {
			return true
		}
	}
	return false
}

func runMode(opts Options) string {
	switch {
	case opts.FoldersOnly:
		return types.RunModeFolders
	case opts.PagesOnly:
		return types.RunModePages
	default:
		return types.RunModeAll
	}
}
