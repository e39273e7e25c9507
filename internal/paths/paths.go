// Package paths resolves configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative directory names used when no override is active.
const (
	DefaultConfigDirName = ".cmsmigrator"
	DefaultDataDirName   = ".cmsmigrator-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CMSMIGRATOR_CONFIG_DIR"
	EnvDataDir   = "CMSMIGRATOR_DATA_DIR"
)

// DatabaseFileName is the SQLite file inside the data directory.
const DatabaseFileName = "migration.db"

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > CMSMIGRATOR_CONFIG_DIR env > $(CWD)/.cmsmigrator.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > CMSMIGRATOR_DATA_DIR env > $(CWD)/.cmsmigrator-db.
func ResolveDataDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// DatabasePath returns the SQLite file path inside the resolved data dir.
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, DatabaseFileName)
}
