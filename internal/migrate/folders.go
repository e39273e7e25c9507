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

// dryRunID stands in for a remote id during dry runs so that descendants of
// a folder that would be created still resolve their parent.
const dryRunID = "dry-run"

// FolderCreator recreates the folder hierarchy remotely, strictly
// parent-before-child. Siblings within one depth level have no ordering
// dependency and are dispatched to a bounded worker pool; a barrier between
// levels guarantees every parent id is resolved before its children start.
type FolderCreator struct {
	store        *store.Store
	assets       cms.AssetCreator
	templateID   string
	targetRootID string
	workers      int
	logger       *zap.Logger
}

// NewFolderCreator returns a FolderCreator. workers < 1 is treated as 1.
// A nil logger disables logging.
func NewFolderCreator(st *store.Store, assets cms.AssetCreator, templateID, targetRootID string, workers int, logger *zap.Logger) *FolderCreator {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FolderCreator{
		store:        st,
		assets:       assets,
		templateID:   templateID,
		targetRootID: targetRootID,
		workers:      workers,
		logger:       logger,
	}
}

// Create processes the plan's folders in depth order. Already-stored folders
// are skipped without a remote call; per-item failures are recorded and
// never abort the phase. Cancelling ctx stops dispatching new items but lets
// in-flight creations complete and land in the store. The returned error is
// non-nil only for run-fatal conditions (store unreachable).
func (fc *FolderCreator) Create(ctx context.Context, folders []types.FolderEntry, dryRun bool) (*types.PhaseResult, error) {
	res := &types.PhaseResult{Total: len(folders), DryRun: dryRun}

	// Seed from the store so a resumed run resolves prior parents
	// immediately, not only as each skip is discovered.
	idMap, err := fc.store.BuildFolderIDMap()
	if err != nil {
		return nil, fmt.Errorf("seeding folder id map: %w", err)
	}
	idMap[""] = fc.targetRootID

	var mu sync.Mutex
	for start := 0; start < len(folders); {
		end := start
		for end < len(folders) && folders[end].Depth == folders[start].Depth {
			end++
		}
		level := folders[start:end]

		g := new(errgroup.Group)
		g.SetLimit(fc.workers)
		for _, entry := range level {
			entry := entry
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				return fc.processFolder(ctx, entry, idMap, res, &mu, dryRun)
			})
		}
		// Barrier: depth d must be fully settled before depth d+1 starts.
		if err := g.Wait(); err != nil {
			return nil, err
		}
		start = end
	}

	fc.logger.Info("folder phase complete",
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed()),
		zap.Bool("dry_run", dryRun),
	)
	return res, nil
}

func (fc *FolderCreator) processFolder(ctx context.Context, entry types.FolderEntry, idMap map[string]string, res *types.PhaseResult, mu *sync.Mutex, dryRun bool) error {
	exists, err := fc.store.FolderExists(entry.Path)
	if err != nil {
		return fmt.Errorf("checking folder %s: %w", entry.Path, err)
	}
	if exists {
		id, err := fc.store.GetFolderID(entry.Path)
		if err != nil {
			return fmt.Errorf("reading folder %s: %w", entry.Path, err)
		}
		mu.Lock()
		res.Skipped++
		idMap[entry.Path] = id
		mu.Unlock()
		fc.logger.Debug("skipping migrated folder", zap.String("path", entry.Path))
		return nil
	}

	mu.Lock()
	parentID, ok := idMap[entry.ParentPath]
	mu.Unlock()
	if !ok {
		// An unresolved parent makes the child unreachable; no remote call.
		appendFailure(mu, res, entry.Path, types.ReasonParentNotResolved,
			"no remote id for parent "+entry.ParentPath)
		return nil
	}

	if dryRun {
		mu.Lock()
		res.Created++
		idMap[entry.Path] = dryRunID
		mu.Unlock()
		fc.logger.Debug("would create folder", zap.String("path", entry.Path))
		return nil
	}

	// Cancellation stops queueing only: the call and the store write run to
	// completion so every finished creation is durably recorded.
	remoteID, err := fc.assets.CreateAssetCopy(context.WithoutCancel(ctx), fc.templateID, parentID, entry.Name)
	if err != nil {
		appendFailure(mu, res, entry.Path, types.ReasonRemoteCreateFailed, err.Error())
		fc.logger.Warn("folder creation failed", zap.String("path", entry.Path), zap.Error(err))
		return nil
	}

	rec := types.FolderRecord{
		SourcePath: entry.Path,
		RemoteID:   remoteID,
		ParentPath: entry.ParentPath,
		Name:       entry.Name,
	}
	if err := fc.store.PutFolder(rec); err != nil {
		if errors.Is(err, types.ErrStoreClosed) {
			return err
		}
		appendFailure(mu, res, entry.Path, types.ReasonStoreWriteFailed, err.Error())
		return nil
	}

	mu.Lock()
	res.Created++
	res.CreatedIDs = append(res.CreatedIDs, remoteID)
	idMap[entry.Path] = remoteID
	mu.Unlock()
	fc.logger.Info("created folder", zap.String("path", entry.Path), zap.String("remote_id", remoteID))
	return nil
}

// appendFailure records a per-item failure under the result mutex.
func appendFailure(mu *sync.Mutex, res *types.PhaseResult, path string, reason types.FailureReason, detail string) {
	mu.Lock()
	defer mu.Unlock()
	res.Failures = append(res.Failures, types.ItemFailure{Path: path, Reason: reason, Detail: detail})
}
