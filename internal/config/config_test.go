package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		SourceRoot:       "/srv/site",
		TargetRootID:     "root-id",
		FolderTemplateID: "folder-tpl",
		PageTemplateID:   "page-tpl",
		ExclusionPrefix:  DefaultExclusionPrefix,
		SourceSuffix:     DefaultSourceSuffix,
		Workers:          DefaultWorkers,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty source root", func(c *Config) { c.SourceRoot = "" }, ErrSourceRootEmpty},
		{"empty target root", func(c *Config) { c.TargetRootID = "" }, ErrTargetRootEmpty},
		{"empty folder template", func(c *Config) { c.FolderTemplateID = "" }, ErrFolderTemplateEmpty},
		{"empty page template", func(c *Config) { c.PageTemplateID = "" }, ErrPageTemplateEmpty},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrWorkersInvalid},
		{"negative workers", func(c *Config) { c.Workers = -2 }, ErrWorkersInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultExclusionPrefix, cfg.ExclusionPrefix)
	assert.Equal(t, DefaultSourceSuffix, cfg.SourceSuffix)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Empty(t, cfg.SourceRoot)
	assert.Error(t, cfg.Validate(), "defaults alone cannot drive a migration")
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `source_root: /srv/site
target_root_id: root-id
folder_template_id: folder-tpl
page_template_id: page-tpl
workers: 8
cms:
  base_url: https://cms.example.edu
  api_key: secret
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/srv/site", cfg.SourceRoot)
	assert.Equal(t, "root-id", cfg.TargetRootID)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, DefaultExclusionPrefix, cfg.ExclusionPrefix, "unset keys fall back to defaults")
	assert.Equal(t, "https://cms.example.edu", cfg.CMS.BaseURL)
	assert.Equal(t, "secret", cfg.CMS.APIKey)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := "source_root: /file/site\nworkers: 8\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	t.Setenv("CMSMIGRATOR_SOURCE_ROOT", "/env/site")
	t.Setenv("CMSMIGRATOR_WORKERS", "2")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/env/site", cfg.SourceRoot)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("CMSMIGRATOR_SOURCE_ROOT", "/env/site")
	t.Setenv("CMSMIGRATOR_TARGET_ROOT_ID", "env-root")
	t.Setenv("CMSMIGRATOR_FOLDER_TEMPLATE_ID", "env-folder-tpl")
	t.Setenv("CMSMIGRATOR_PAGE_TEMPLATE_ID", "env-page-tpl")
	t.Setenv("CMSMIGRATOR_EXCLUSION_PREFIX", ".")
	t.Setenv("CMSMIGRATOR_SOURCE_SUFFIX", ".src")
	t.Setenv("CMSMIGRATOR_WORKERS", "6")
	t.Setenv("CMSMIGRATOR_CMS_BASE_URL", "https://env.example.edu")
	t.Setenv("CMSMIGRATOR_CMS_API_KEY", "env-secret")

	cfg, err := Load(t.TempDir()) // no config file
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/env/site", cfg.SourceRoot)
	assert.Equal(t, "env-root", cfg.TargetRootID)
	assert.Equal(t, "env-folder-tpl", cfg.FolderTemplateID)
	assert.Equal(t, "env-page-tpl", cfg.PageTemplateID)
	assert.Equal(t, ".", cfg.ExclusionPrefix)
	assert.Equal(t, ".src", cfg.SourceSuffix)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, "https://env.example.edu", cfg.CMS.BaseURL)
	assert.Equal(t, "env-secret", cfg.CMS.APIKey)
}

func TestWriteDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cfg")
	require.NoError(t, WriteDefault(dir))

	path := filepath.Join(dir, "config.yaml")
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(first), "exclusion_prefix:")

	// Idempotent: an existing file is left alone.
	require.NoError(t, os.WriteFile(path, []byte("workers: 99\n"), 0o644))
	require.NoError(t, WriteDefault(dir))
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "workers: 99\n", string(again))
}
