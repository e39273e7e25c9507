package cms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCMS is an httptest handler speaking the copy/read protocol for a
// single parent folder.
type fakeCMS struct {
	t            *testing.T
	children     []map[string]any
	copyCalls    int
	readCalls    int
	failCopy     bool
	omitChild    bool
	lastCopyBody map[string]any
}

func (f *fakeCMS) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(f.t, "secret-key", r.URL.Query().Get("apiKey"))
		switch {
		case r.URL.Path == "/api/v1/copy/folder/tpl-1":
			f.copyCalls++
			require.NoError(f.t, json.NewDecoder(r.Body).Decode(&f.lastCopyBody))
			if f.failCopy {
				writeJSON(w, map[string]any{"success": false, "message": "name already taken"})
				return
			}
			params := f.lastCopyBody["copyParameters"].(map[string]any)
			name := params["newName"].(string)
			if !f.omitChild {
				f.children = append(f.children, map[string]any{
					"id":   "child-id-1",
					"path": map[string]any{"path": "site/parent/" + name},
				})
			}
			writeJSON(w, map[string]any{"success": true})
		case r.URL.Path == "/api/v1/read/folder/parent-1":
			f.readCalls++
			writeJSON(w, map[string]any{
				"success": true,
				"asset":   map[string]any{"folder": map[string]any{"children": f.children}},
			})
		default:
			f.t.Errorf("unexpected request: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestClient_CopyThenLookup(t *testing.T) {
	cms := &fakeCMS{t: t}
	srv := httptest.NewServer(cms.handler())
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", srv.Client())
	creator := client.Copier(AssetTypeFolder)

	id, err := creator.CreateAssetCopy(context.Background(), "tpl-1", "parent-1", "diversity")
	require.NoError(t, err)
	assert.Equal(t, "child-id-1", id)
	assert.Equal(t, 1, cms.copyCalls)
	assert.Equal(t, 1, cms.readCalls)

	params := cms.lastCopyBody["copyParameters"].(map[string]any)
	assert.Equal(t, "diversity", params["newName"])
	assert.Equal(t, false, params["doWorkflow"])
	dest := params["destinationContainerIdentifier"].(map[string]any)
	assert.Equal(t, "parent-1", dest["id"])
	assert.Equal(t, AssetTypeFolder, dest["type"])
}

func TestClient_CopyRejected(t *testing.T) {
	cms := &fakeCMS{t: t, failCopy: true}
	srv := httptest.NewServer(cms.handler())
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", srv.Client())
	_, err := client.Copier(AssetTypeFolder).CreateAssetCopy(context.Background(), "tpl-1", "parent-1", "diversity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name already taken")
	assert.Equal(t, 0, cms.readCalls, "rejected copies skip the lookup")
}

func TestClient_CreatedChildNotFound(t *testing.T) {
	cms := &fakeCMS{t: t, omitChild: true}
	srv := httptest.NewServer(cms.handler())
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", srv.Client())
	_, err := client.Copier(AssetTypeFolder).CreateAssetCopy(context.Background(), "tpl-1", "parent-1", "diversity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found under parent")
}

func TestClient_LookupMatchesLeafName(t *testing.T) {
	cms := &fakeCMS{t: t, children: []map[string]any{
		{"id": "other-id", "path": map[string]any{"path": "site/parent/diversity-archive"}},
	}}
	srv := httptest.NewServer(cms.handler())
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", srv.Client())
	id, err := client.Copier(AssetTypeFolder).CreateAssetCopy(context.Background(), "tpl-1", "parent-1", "diversity")
	require.NoError(t, err)
	assert.Equal(t, "child-id-1", id, "leaf-name match must not treat prefixes as equal")
}

func TestClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", srv.Client())
	_, err := client.Copier(AssetTypePage).CreateAssetCopy(context.Background(), "tpl-2", "parent-1", "index")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}
