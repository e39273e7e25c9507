package migrate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecraft/cmsmigrator/pkg/types"
)

func pageIDMap() map[string]string {
	return map[string]string{
		"":                "target-root",
		"about":           "f-about",
		"about/diversity": "f-diversity",
	}
}

func TestPageCreator_CreatesPages(t *testing.T) {
	rig := newTestRig(t)
	plan, err := rig.scanner().Scan()
	require.NoError(t, err)

	pc := NewPageCreator(rig.store, rig.assets, "page-tpl", 2, nil)
	res, err := pc.Create(context.Background(), plan.Pages, pageIDMap(), false)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, res.Failed())

	id, err := rig.store.GetPageID("about/index.xml")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	var parents []string
	for _, call := range rig.assets.Calls() {
		assert.Equal(t, "page-tpl", call.TemplateID)
		assert.Equal(t, "index", call.Name)
		parents = append(parents, call.ParentID)
	}
	assert.ElementsMatch(t, []string{"f-about", "f-diversity"}, parents)

	recs, err := rig.store.ListPages("", 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, rec := range recs {
		assert.NotEmpty(t, rec.Origin, "origin points at the backing source file")
	}
}

func TestPageCreator_SkipsStoredPages(t *testing.T) {
	rig := newTestRig(t)
	plan, err := rig.scanner().Scan()
	require.NoError(t, err)

	require.NoError(t, rig.store.PutPage(types.PageRecord{
		SourcePath: "about/index.xml", RemoteID: "pre-existing",
		FolderPath: "about", Name: "index",
	}))

	pc := NewPageCreator(rig.store, rig.assets, "page-tpl", 2, nil)
	res, err := pc.Create(context.Background(), plan.Pages, pageIDMap(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, rig.assets.CallCount())
}

func TestPageCreator_UnresolvedFolder(t *testing.T) {
	rig := newTestRig(t)
	plan, err := rig.scanner().Scan()
	require.NoError(t, err)

	idMap := map[string]string{"": "target-root", "about": "f-about"}
	// about/diversity deliberately absent.

	pc := NewPageCreator(rig.store, rig.assets, "page-tpl", 2, nil)
	res, err := pc.Create(context.Background(), plan.Pages, idMap, false)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Created)
	require.Equal(t, 1, res.Failed())
	assert.Equal(t, "about/diversity/index.xml", res.Failures[0].Path)
	assert.Equal(t, types.ReasonFolderNotResolved, res.Failures[0].Reason)
	assert.Equal(t, 1, rig.assets.CallCount(), "unresolved pages never reach the remote interface")
}

func TestPageCreator_RemoteFailureIsPerItem(t *testing.T) {
	rig := newTestRig(t)
	plan, err := rig.scanner().Scan()
	require.NoError(t, err)

	rig.assets.FailOn["index"] = errors.New("quota exceeded")

	pc := NewPageCreator(rig.store, rig.assets, "page-tpl", 2, nil)
	res, err := pc.Create(context.Background(), plan.Pages, pageIDMap(), false)
	require.NoError(t, err, "remote failures never abort the phase")

	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 2, res.Failed())
	for _, f := range res.Failures {
		assert.Equal(t, types.ReasonRemoteCreateFailed, f.Reason)
		assert.Contains(t, f.Detail, "quota exceeded")
	}
}

func TestPageCreator_DryRunPurity(t *testing.T) {
	rig := newTestRig(t)
	plan, err := rig.scanner().Scan()
	require.NoError(t, err)

	before, err := rig.store.Stats()
	require.NoError(t, err)

	pc := NewPageCreator(rig.store, rig.assets, "page-tpl", 2, nil)
	res, err := pc.Create(context.Background(), plan.Pages, pageIDMap(), true)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, rig.assets.CallCount())

	after, err := rig.store.Stats()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
