package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := load("", envMap(map[string]string{"XDG_CONFIG_HOME": dir}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("expected defaults\nwant: %+v\ngot:  %+v", want, cfg)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "nope.toml"), envMap(nil))
	if err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoadMergesFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qopen", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := strings.Join([]string{
		`roots = ["/src/one", "/src/two"]`,
		`ignore_extensions = ["log"]`,
		`show_hidden = true`,
		`result_limit = 30`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := load("", envMap(map[string]string{
		"XDG_CONFIG_HOME": dir,
		EnvBatchSize:      "10",
		EnvIgnoreDirs:     "^vendor$, ^node_modules$",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !reflect.DeepEqual(cfg.Roots, []string{"/src/one", "/src/two"}) {
		t.Fatalf("roots from file not applied: %v", cfg.Roots)
	}
	if !reflect.DeepEqual(cfg.IgnoreExtensions, []string{"log"}) {
		t.Fatalf("extensions from file not applied: %v", cfg.IgnoreExtensions)
	}
	if !cfg.ShowHidden {
		t.Fatalf("show_hidden from file not applied")
	}
	if cfg.ResultLimit != 30 {
		t.Fatalf("expected result limit 30, got %d", cfg.ResultLimit)
	}
	if cfg.BatchSize != 10 {
		t.Fatalf("expected env batch size 10, got %d", cfg.BatchSize)
	}
	if !reflect.DeepEqual(cfg.IgnoreDirs, []string{"^vendor$", "^node_modules$"}) {
		t.Fatalf("env ignore dirs not applied: %v", cfg.IgnoreDirs)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("roots = [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := load(path, envMap(nil)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyEnvInvalidValues(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplyEnv(envMap(map[string]string{EnvShowHidden: "maybe"})); err == nil {
		t.Fatalf("expected error for invalid bool")
	}

	cfg = Default()
	if err := cfg.ApplyEnv(envMap(map[string]string{EnvBatchSize: "-4", EnvResultLimit: "abc"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BatchSize != defaultBatchSize || cfg.ResultLimit != defaultResultLimit {
		t.Fatalf("invalid ints should keep defaults, got batch=%d limit=%d", cfg.BatchSize, cfg.ResultLimit)
	}
}

func TestResolveRoots(t *testing.T) {
	cwd := filepath.FromSlash("/work/project")

	cfg := Config{}
	if got := cfg.ResolveRoots(cwd); !reflect.DeepEqual(got, []string{cwd}) {
		t.Fatalf("expected cwd fallback, got %v", got)
	}

	cfg.Roots = []string{"lib", filepath.FromSlash("/abs/path/"), " "}
	want := []string{filepath.Join(cwd, "lib"), filepath.FromSlash("/abs/path")}
	if got := cfg.ResolveRoots(cwd); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}
