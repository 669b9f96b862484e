package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cache.Backend != "sqlite" {
		t.Fatalf("cache backend %q, want sqlite", cfg.Cache.Backend)
	}
	if cfg.Backend.TimeoutSeconds != 10 {
		t.Fatalf("timeout %d, want 10", cfg.Backend.TimeoutSeconds)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	raw := []byte("listen_addr: \":9000\"\nbackend:\n  base_url: http://shop.example/api\ncache:\n  backend: redis\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CACHE_BACKEND", "postgres")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("listen addr %q, want :9000", cfg.ListenAddr)
	}
	if cfg.Backend.BaseURL != "http://shop.example/api" {
		t.Fatalf("base url %q", cfg.Backend.BaseURL)
	}
	if cfg.Cache.Backend != "postgres" {
		t.Fatalf("cache backend %q, env must win over file", cfg.Cache.Backend)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(":\n  - ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml must fail")
	}
}
