// Package scanner walks the source tree and produces the ordered migration
// plan consumed by the creators.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sitecraft/cmsmigrator/pkg/types"
)

// Scanner enumerates a source tree into a migration plan. Directories whose
// leaf name begins with the exclusion prefix are pruned along with their
// entire subtree. Files carrying the source suffix become page entries.
type Scanner struct {
	root            string
	exclusionPrefix string
	sourceSuffix    string
	logger          *zap.Logger
}

// New returns a Scanner over root. A nil logger disables logging.
func New(root, exclusionPrefix, sourceSuffix string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		root:            root,
		exclusionPrefix: exclusionPrefix,
		sourceSuffix:    sourceSuffix,
		logger:          logger,
	}
}

// Scan walks the tree and returns the plan. The scan is all-or-nothing: any
// unreadable subtree fails the whole scan rather than returning a partial
// plan. Folders come out in non-decreasing depth order with ties broken by
// path, so an unchanged tree always yields an identical plan.
func (s *Scanner) Scan() (*types.Plan, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", types.ErrRootNotFound, s.root)
		}
		return nil, fmt.Errorf("stat source root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", types.ErrRootNotDir, s.root)
	}

	plan := &types.Plan{Root: s.root}

	err = filepath.WalkDir(s.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("reading %s: %w", p, walkErr)
		}

		rel, relErr := filepath.Rel(s.root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if s.exclusionPrefix != "" && strings.HasPrefix(d.Name(), s.exclusionPrefix) {
				s.logger.Debug("pruning excluded subtree", zap.String("path", rel))
				return fs.SkipDir
			}
			plan.Folders = append(plan.Folders, folderEntry(rel))
			return nil
		}

		if !strings.HasSuffix(d.Name(), s.sourceSuffix) {
			return nil
		}
		folderPath := path.Dir(rel)
		if folderPath == "." {
			folderPath = ""
		}
		plan.Pages = append(plan.Pages, types.PageEntry{
			SourcePath: rel,
			FolderPath: folderPath,
			Name:       strings.TrimSuffix(d.Name(), s.sourceSuffix),
			Origin:     p,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortPlan(plan)
	s.logger.Info("scan complete",
		zap.String("root", s.root),
		zap.Int("folders", len(plan.Folders)),
		zap.Int("pages", len(plan.Pages)),
	)
	return plan, nil
}

// folderEntry derives the plan entry for a relative folder path.
func folderEntry(rel string) types.FolderEntry {
	parent := path.Dir(rel)
	if parent == "." {
		parent = ""
	}
	return types.FolderEntry{
		Path:       rel,
		ParentPath: parent,
		Name:       path.Base(rel),
		Depth:      strings.Count(rel, "/") + 1,
	}
}

// sortPlan orders folders by (depth, path) and pages by source path. The
// depth-major folder order is what the level-barrier dispatcher relies on:
// every parent sorts strictly before its children.
func sortPlan(plan *types.Plan) {
	sort.Slice(plan.Folders, func(i, j int) bool {
		a, b := plan.Folders[i], plan.Folders[j]
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		return a.Path < b.Path
	})
	sort.Slice(plan.Pages, func(i, j int) bool {
		return plan.Pages[i].SourcePath < plan.Pages[j].SourcePath
	})
}
