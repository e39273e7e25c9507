package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigDir_FlagWinsOverEnv(t *testing.T) {
	t.Setenv(EnvConfigDir, "/env/config")

	dir, err := ResolveConfigDir("/flag/config")
	require.NoError(t, err)
	assert.Equal(t, "/flag/config", dir)
}

func TestResolveConfigDir_EnvWinsOverDefault(t *testing.T) {
	t.Setenv(EnvConfigDir, "/env/config")

	dir, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.Equal(t, "/env/config", dir)
}

func TestResolveConfigDir_DefaultIsCWDRelative(t *testing.T) {
	t.Setenv(EnvConfigDir, "")

	dir, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigDirName, filepath.Base(dir))
	assert.True(t, filepath.IsAbs(dir))
}

func TestResolveDataDir_Precedence(t *testing.T) {
	t.Setenv(EnvDataDir, "/env/data")

	dir, err := ResolveDataDir("/flag/data")
	require.NoError(t, err)
	assert.Equal(t, "/flag/data", dir)

	dir, err = ResolveDataDir("")
	require.NoError(t, err)
	assert.Equal(t, "/env/data", dir)

	t.Setenv(EnvDataDir, "")
	dir, err = ResolveDataDir("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDataDirName, filepath.Base(dir))
}

func TestDatabasePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", DatabaseFileName), DatabasePath("/data"))
}

func TestResolveConfigDir_RelativeFlagBecomesAbsolute(t *testing.T) {
	dir, err := ResolveConfigDir("relative/cfg")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))
	assert.Equal(t, "cfg", filepath.Base(dir))
}
