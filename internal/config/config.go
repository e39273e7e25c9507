// Package config loads and validates the migration configuration from
// config.yaml, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Defaults applied when config.yaml does not set a value.
const (
	DefaultExclusionPrefix = "_"
	DefaultSourceSuffix    = ".xml"
	DefaultWorkers         = 4

	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "CMSMIGRATOR"
)

// Config validation errors. Missing template or target ids make every
// creation call unroutable, so they abort the run before scanning.
var (
	ErrSourceRootEmpty     = errors.New("source_root must not be empty")
	ErrTargetRootEmpty     = errors.New("target_root_id must not be empty")
	ErrFolderTemplateEmpty = errors.New("folder_template_id must not be empty")
	ErrPageTemplateEmpty   = errors.New("page_template_id must not be empty")
	ErrWorkersInvalid      = errors.New("workers must be positive")
)

// CMSConfig holds the connection settings for the CMS REST endpoint.
type CMSConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
}

// Config describes one migration: where to scan, where to create, and which
// template assets to copy.
type Config struct {
	SourceRoot       string    `mapstructure:"source_root" yaml:"source_root"`
	TargetRootID     string    `mapstructure:"target_root_id" yaml:"target_root_id"`
	FolderTemplateID string    `mapstructure:"folder_template_id" yaml:"folder_template_id"`
	PageTemplateID   string    `mapstructure:"page_template_id" yaml:"page_template_id"`
	ExclusionPrefix  string    `mapstructure:"exclusion_prefix" yaml:"exclusion_prefix"`
	SourceSuffix     string    `mapstructure:"source_suffix" yaml:"source_suffix"`
	Workers          int       `mapstructure:"workers" yaml:"workers"`
	CMS              CMSConfig `mapstructure:"cms" yaml:"cms"`
}

// Validate checks that the Config can drive a migration. It returns a
// sentinel error from this package on failure.
func (c *Config) Validate() error {
	if c.SourceRoot == "" {
		return ErrSourceRootEmpty
	}
	if c.TargetRootID == "" {
		return ErrTargetRootEmpty
	}
	if c.FolderTemplateID == "" {
		return ErrFolderTemplateEmpty
	}
	if c.PageTemplateID == "" {
		return ErrPageTemplateEmpty
	}
	if c.Workers < 1 {
		return ErrWorkersInvalid
	}
	return nil
}

// Load reads config.yaml from configDir via Viper, applying defaults and
// CMSMIGRATOR_* environment overrides. A missing config.yaml is not an
// error; the caller decides whether the resulting Config validates.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	// Every key needs a default so AutomaticEnv surfaces env-only values
	// through Unmarshal; the replacer maps nested keys (cms.base_url ->
	// CMSMIGRATOR_CMS_BASE_URL).
	v.SetDefault("source_root", "")
	v.SetDefault("target_root_id", "")
	v.SetDefault("folder_template_id", "")
	v.SetDefault("page_template_id", "")
	v.SetDefault("exclusion_prefix", DefaultExclusionPrefix)
	v.SetDefault("source_suffix", DefaultSourceSuffix)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("cms.base_url", "")
	v.SetDefault("cms.api_key", "")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// WriteDefault creates configDir and a default config.yaml inside it if the
// file does not already exist (idempotent).
func WriteDefault(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := Config{
		ExclusionPrefix: DefaultExclusionPrefix,
		SourceSuffix:    DefaultSourceSuffix,
		Workers:         DefaultWorkers,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
