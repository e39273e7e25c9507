package migrate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sitecraft/cmsmigrator/internal/cms"
	"github.com/sitecraft/cmsmigrator/internal/store"
	"github.com/sitecraft/cmsmigrator/pkg/types"
)

// PageCreator recreates pages as empty shells. Pages carry no ordering
// dependency among themselves, so the whole list runs through one bounded
// worker pool once the folder id map is available. Pages never implicitly
// create missing folders.
type PageCreator struct {
	store      *store.Store
	assets     cms.AssetCreator
	templateID string
	workers    int
	logger     *zap.Logger
}

// NewPageCreator returns a PageCreator. workers < 1 is treated as 1.
// A nil logger disables logging.
func NewPageCreator(st *store.Store, assets cms.AssetCreator, templateID string, workers int, logger *zap.Logger) *PageCreator {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageCreator{
		store:      st,
		assets:     assets,
		templateID: templateID,
		workers:    workers,
		logger:     logger,
	}
}

// Create processes the plan's pages in plan order. idMap must be the
// complete folder id map, including the "" entry for the target root; it is
// only read here. Same cancellation and failure semantics as the folder
// phase.
func (pc *PageCreator) Create(ctx context.Context, pages []types.PageEntry, idMap map[string]string, dryRun bool) (*types.PhaseResult, error) {
	res := &types.PhaseResult{Total: len(pages), DryRun: dryRun}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(pc.workers)
	for _, entry := range pages {
		entry := entry
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return pc.processPage(ctx, entry, idMap, res, &mu, dryRun)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pc.logger.Info("page phase complete",
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed()),
		zap.Bool("dry_run", dryRun),
	)
	return res, nil
}

func (pc *PageCreator) processPage(ctx context.Context, entry types.PageEntry, idMap map[string]string, res *types.PhaseResult, mu *sync.Mutex, dryRun bool) error {
	exists, err := pc.store.PageExists(entry.SourcePath)
	if err != nil {
		return fmt.Errorf("checking page %s: %w", entry.SourcePath, err)
	}
	if exists {
		mu.Lock()
		res.Skipped++
		mu.Unlock()
		pc.logger.Debug("skipping migrated page", zap.String("path", entry.SourcePath))
		return nil
	}

	folderID, ok := idMap[entry.FolderPath]
	if !ok {
		appendFailure(mu, res, entry.SourcePath, types.ReasonFolderNotResolved,
			"no remote id for folder "+entry.FolderPath)
		return nil
	}

	if dryRun {
		mu.Lock()
		res.Created++
		mu.Unlock()
		pc.logger.Debug("would create page", zap.String("path", entry.SourcePath))
		return nil
	}

	remoteID, err := pc.assets.CreateAssetCopy(context.WithoutCancel(ctx), pc.templateID, folderID, entry.Name)
	if err != nil {
		appendFailure(mu, res, entry.SourcePath, types.ReasonRemoteCreateFailed, err.Error())
		pc.logger.Warn("page creation failed", zap.String("path", entry.SourcePath), zap.Error(err))
		return nil
	}

	rec := types.PageRecord{
		SourcePath: entry.SourcePath,
		RemoteID:   remoteID,
		FolderPath: entry.FolderPath,
		Name:       entry.Name,
		Origin:     entry.Origin,
	}
	if err := pc.store.PutPage(rec); err != nil {
		if errors.Is(err, types.ErrStoreClosed) {
			return err
		}
		appendFailure(mu, res, entry.SourcePath, types.ReasonStoreWriteFailed, err.Error())
		return nil
	}

	mu.Lock()
	res.Created++
	res.CreatedIDs = append(res.CreatedIDs, remoteID)
	mu.Unlock()
	pc.logger.Info("created page", zap.String("path", entry.SourcePath), zap.String("remote_id", remoteID))
	return nil
}
