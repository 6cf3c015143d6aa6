package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"fuzzyhash/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("FUZZYHASH_DATA_DIR", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "fuzzyhash")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.CatalogPath() != filepath.Join(wantData, "signatures.db") {
		t.Fatalf("unexpected catalog path: %q", cfg.CatalogPath())
	}
	if cfg.Hashing.Workers != runtime.NumCPU() {
		t.Fatalf("expected one worker per CPU, got %d", cfg.Hashing.Workers)
	}
	if cfg.Hashing.ReadBufferSize != config.Default().Hashing.ReadBufferSize {
		t.Fatalf("unexpected read buffer size: %d", cfg.Hashing.ReadBufferSize)
	}
	if !cfg.Hashing.DeclareSize {
		t.Fatal("expected declare_size enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("FUZZYHASH_DATA_DIR", "")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "fuzzyhash.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Hashing struct {
			Workers        int `toml:"workers"`
			ReadBufferSize int `toml:"read_buffer_size"`
		} `toml:"hashing"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Hashing.Workers = 3
	custom.Hashing.ReadBufferSize = 8192
	custom.Logging.Format = " JSON "
	custom.Logging.Level = "Debug"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.DataDir != filepath.Join(tempDir, "data") {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.Hashing.Workers != 3 || cfg.Hashing.ReadBufferSize != 8192 {
		t.Fatalf("unexpected hashing config: %+v", cfg.Hashing)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging config, got %+v", cfg.Logging)
	}
}

func TestEnvVarOverridesDataDir(t *testing.T) {
	override := t.TempDir()
	t.Setenv("FUZZYHASH_DATA_DIR", override)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != override {
		t.Fatalf("expected data dir from env, got %q", cfg.Paths.DataDir)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("FUZZYHASH_DATA_DIR", "")
	configPath := filepath.Join(t.TempDir(), "fuzzyhash.toml")
	if err := os.WriteFile(configPath, []byte("[hashing]\nbogus = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"tiny buffer", func(c *config.Config) { c.Hashing.ReadBufferSize = 16 }, "hashing.read_buffer_size"},
		{"no workers", func(c *config.Config) { c.Hashing.Workers = 0 }, "hashing.workers"},
		{"negative min", func(c *config.Config) { c.Scan.MinSize = -1 }, "scan.min_size"},
		{"inverted range", func(c *config.Config) { c.Scan.MinSize = 10; c.Scan.MaxSize = 5 }, "scan.max_size"},
		{"bad glob", func(c *config.Config) { c.Scan.Exclude = []string{"["} }, "scan.exclude"},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"no data dir", func(c *config.Config) { c.Paths.DataDir = "" }, "paths.data_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Hashing.Workers = 2
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate returned error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	t.Setenv("FUZZYHASH_DATA_DIR", "")
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[hashing]") {
		t.Fatal("sample config missing [hashing] section")
	}

	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := config.Default()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode encoded config: %v", err)
	}
	if decoded.Hashing.ReadBufferSize != cfg.Hashing.ReadBufferSize || decoded.Paths.DataDir != cfg.Paths.DataDir {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, cfg)
	}
}
