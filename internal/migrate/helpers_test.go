package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sitecraft/cmsmigrator/internal/cms"
	"github.com/sitecraft/cmsmigrator/internal/config"
	"github.com/sitecraft/cmsmigrator/internal/scanner"
	"github.com/sitecraft/cmsmigrator/internal/store"
)

// newSourceTree builds the example hierarchy: three nested folders and two
// pages (plus an excluded subtree that must never surface).
func newSourceTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range []string{
		"about/diversity/campus-life",
		"_drafts",
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0o755))
	}
	for _, f := range []string{
		"about/index.xml",
		"about/diversity/index.xml",
		"_drafts/skip-me.xml",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(f)), []byte("<page/>"), 0o644))
	}
	return root
}

func testConfig(root string) *config.Config {
	return &config.Config{
		SourceRoot:       root,
		TargetRootID:     "target-root",
		FolderTemplateID: "folder-tpl",
		PageTemplateID:   "page-tpl",
		ExclusionPrefix:  "_",
		SourceSuffix:     ".xml",
		Workers:          2,
	}
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "migration.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// testRig bundles the pieces most tests need.
type testRig struct {
	root   string
	cfg    *config.Config
	store  *store.Store
	assets *cms.FakeCreator
	runner *Runner
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	root := newSourceTree(t)
	cfg := testConfig(root)
	st := openTestStore(t)
	fake := cms.NewFakeCreator()
	return &testRig{
		root:   root,
		cfg:    cfg,
		store:  st,
		assets: fake,
		runner: NewRunner(st, fake, fake, cfg, nil),
	}
}

func (r *testRig) scanner() *scanner.Scanner {
	return scanner.New(r.cfg.SourceRoot, r.cfg.ExclusionPrefix, r.cfg.SourceSuffix, nil)
}
