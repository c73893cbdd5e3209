package main

import (
	"fmt"
	"path/filepath"

	"github.com/odvcencio/gitlet/internal/logging"
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "GITLET"

	keyDir      = "dir"
	keyLogLevel = "log_level"
	keyNoColor  = "no_color"
)

// settings resolves global options from flags and GITLET_* environment
// variables, flags taking precedence.
type settings struct {
	v *viper.Viper
}

func newSettings() *settings {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault(keyDir, ".")
	v.SetDefault(keyNoColor, false)
	return &settings{v: v}
}

func (s *settings) bind(key string, flag *pflag.Flag) {
	// BindPFlag only fails on a nil flag.
	if err := s.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind %s: %v", key, err))
	}
}

// workDir returns the absolute directory commands run in.
func (s *settings) workDir() (string, error) {
	dir := s.v.GetString(keyDir)
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory %q: %w", dir, err)
	}
	return abs, nil
}

// logLevel returns the level from --log-level or GITLET_LOG_LEVEL, falling
// back to fallback when neither is set.
func (s *settings) logLevel(fallback string) string {
	if lvl := s.v.GetString(keyLogLevel); lvl != "" {
		return lvl
	}
	if fallback != "" {
		return fallback
	}
	return logging.LevelDefault
}

// openRepo opens the repository containing the working directory and
// attaches a logger at the configured level.
func (s *settings) openRepo() (*repo.Repo, error) {
	dir, err := s.workDir()
	if err != nil {
		return nil, err
	}
	r, err := repo.Open(dir)
	if err != nil {
		return nil, err
	}
	logger, err := logging.GetLogger(s.logLevel(r.Config.Log.Level))
	if err != nil {
		return nil, err
	}
	r.SetLogger(logger)
	return r, nil
}

// filePath turns a file operand into an absolute path, interpreting
// relative operands against the working directory.
func (s *settings) filePath(arg string) (string, error) {
	if filepath.IsAbs(arg) {
		return arg, nil
	}
	dir, err := s.workDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, arg), nil
}

func (s *settings) filePaths(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, a := range args {
		p, err := s.filePath(a)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
