// Package config loads qopen settings from defaults, a TOML file and the
// environment, in that order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kk-code-lab/qopen/internal/search"
	"github.com/pelletier/go-toml/v2"
)

const (
	EnvConfig           = "QOPEN_CONFIG"
	EnvRoots            = "QOPEN_ROOTS"
	EnvIgnoreDirs       = "QOPEN_IGNORE_DIRS"
	EnvIgnoreExtensions = "QOPEN_IGNORE_EXTENSIONS"
	EnvShowHidden       = "QOPEN_SHOW_HIDDEN"
	EnvBatchSize        = "QOPEN_BATCH_SIZE"
	EnvResultLimit      = "QOPEN_RESULT_LIMIT"

	defaultBatchSize   = 50
	defaultResultLimit = 20
	maxBatchSize       = 10000
	maxResultLimit     = 1000
)

// Config is the resolved configuration.
type Config struct {
	Roots            []string `toml:"roots"`
	IgnoreDirs       []string `toml:"ignore_dirs"`
	IgnoreExtensions []string `toml:"ignore_extensions"`
	ShowHidden       bool     `toml:"show_hidden"`
	BatchSize        int      `toml:"batch_size"`
	ResultLimit      int      `toml:"result_limit"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		IgnoreDirs: []string{
			`^build$`,
			`^dist$`,
			`(^|.*/)__pycache__$`,
			`.*\.egg-info$`,
			search.HiddenDirPattern,
		},
		IgnoreExtensions: []string{"pyc", "pyo", "swp", "class", "o"},
		BatchSize:        defaultBatchSize,
		ResultLimit:      defaultResultLimit,
	}
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath(getenv func(string) string) string {
	if p := strings.TrimSpace(getenv(EnvConfig)); p != "" {
		return expandUserPath(p)
	}
	if xdg := strings.TrimSpace(getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "qopen", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "qopen", "config.toml")
}

// Load reads defaults, then the file at path, then the environment. An empty
// path means DefaultPath; a missing default file is not an error, a missing
// explicit one is.
func Load(path string) (Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath(getenv)
	}
	if path != "" {
		if err := cfg.mergeFile(expandUserPath(path)); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fileCfg struct {
		Roots            []string `toml:"roots"`
		IgnoreDirs       []string `toml:"ignore_dirs"`
		IgnoreExtensions []string `toml:"ignore_extensions"`
		ShowHidden       *bool    `toml:"show_hidden"`
		BatchSize        int      `toml:"batch_size"`
		ResultLimit      int      `toml:"result_limit"`
	}
	if err := toml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fileCfg.Roots != nil {
		c.Roots = fileCfg.Roots
	}
	if fileCfg.IgnoreDirs != nil {
		c.IgnoreDirs = fileCfg.IgnoreDirs
	}
	if fileCfg.IgnoreExtensions != nil {
		c.IgnoreExtensions = fileCfg.IgnoreExtensions
	}
	if fileCfg.ShowHidden != nil {
		c.ShowHidden = *fileCfg.ShowHidden
	}
	if fileCfg.BatchSize > 0 {
		c.BatchSize = clampInt(fileCfg.BatchSize, 1, maxBatchSize)
	}
	if fileCfg.ResultLimit > 0 {
		c.ResultLimit = clampInt(fileCfg.ResultLimit, 1, maxResultLimit)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables. Roots are split on
// the OS path list separator, patterns and extensions on commas.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvRoots)); v != "" {
		c.Roots = splitList(v, string(os.PathListSeparator))
	}
	if v := strings.TrimSpace(getenv(EnvIgnoreDirs)); v != "" {
		c.IgnoreDirs = splitList(v, ",")
	}
	if v := strings.TrimSpace(getenv(EnvIgnoreExtensions)); v != "" {
		c.IgnoreExtensions = splitList(v, ",")
	}
	if v := strings.TrimSpace(getenv(EnvShowHidden)); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShowHidden, err)
		}
		c.ShowHidden = show
	}
	c.BatchSize = clampInt(parseEnvInt(getenv, EnvBatchSize, c.BatchSize), 1, maxBatchSize)
	c.ResultLimit = clampInt(parseEnvInt(getenv, EnvResultLimit, c.ResultLimit), 1, maxResultLimit)
	return nil
}

// ResolveRoots returns absolute, existing-or-not root paths. With no roots
// configured the working directory is used.
func (c Config) ResolveRoots(cwd string) []string {
	roots := c.Roots
	if len(roots) == 0 {
		roots = []string{cwd}
	}
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		root = expandUserPath(strings.TrimSpace(root))
		if root == "" {
			continue
		}
		if !filepath.IsAbs(root) {
			root = filepath.Join(cwd, root)
		}
		out = append(out, filepath.Clean(root))
	}
	return out
}

func parseEnvInt(getenv func(string) string, key string, fallback int) int {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func clampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func splitList(value, sep string) []string {
	parts := strings.Split(value, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func expandUserPath(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || value[0] != '~' {
		return value
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return value
	}
	if value == "~" {
		return home
	}
	if strings.HasPrefix(value, "~/") || strings.HasPrefix(value, `~\`) {
		return filepath.Join(home, value[2:])
	}
	return value
}
