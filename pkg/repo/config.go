package repo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/odvcencio/gitlet/pkg/fsutil"
)

const (
	defaultBranchName   = "master"
	defaultLogLevel     = "warn"
	defaultConflictHead = "HEAD"
)

// Config stores repository-local settings, persisted as TOML in
// .gitlet/config.
type Config struct {
	Core  CoreConfig  `toml:"core"`
	Log   LogConfig   `toml:"log"`
	Merge MergeConfig `toml:"merge"`
}

// CoreConfig holds settings fixed at init time.
type CoreConfig struct {
	DefaultBranch string `toml:"default_branch"`
}

// LogConfig holds the default log level for commands run in this repository.
type LogConfig struct {
	Level string `toml:"level"`
}

// MergeConfig controls conflict rendering.
type MergeConfig struct {
	ConflictHeadLabel string `toml:"conflict_head_label"`
}

// DefaultConfig returns the configuration a fresh repository starts with.
func DefaultConfig() *Config {
	return &Config{
		Core:  CoreConfig{DefaultBranch: defaultBranchName},
		Log:   LogConfig{Level: defaultLogLevel},
		Merge: MergeConfig{ConflictHeadLabel: defaultConflictHead},
	}
}

func (c *Config) normalize() {
	d := DefaultConfig()
	if strings.TrimSpace(c.Core.DefaultBranch) == "" {
		c.Core.DefaultBranch = d.Core.DefaultBranch
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = d.Log.Level
	}
	if strings.TrimSpace(c.Merge.ConflictHeadLabel) == "" {
		c.Merge.ConflictHeadLabel = d.Merge.ConflictHeadLabel
	}
}

func (r *Repo) configPath() string {
	return filepath.Join(r.GitletDir, "config")
}

// ReadConfig reads .gitlet/config. Missing config returns the defaults.
func (r *Repo) ReadConfig() (*Config, error) {
	data, err := fsutil.ReadFile(r.FS, r.configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("read config: decode: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

// WriteConfig atomically writes .gitlet/config.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.normalize()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := fsutil.WriteFile(r.FS, r.configPath(), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	r.Config = cfg
	return nil
}
