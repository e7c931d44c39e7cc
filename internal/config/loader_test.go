package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultYAML)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("embedded = %+v\nDefault = %+v", cfg, Default())
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	doc := "play:\n  tick_interval_ms: 200\nverify:\n  workers: 3\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Play.TickInterval() != 200*time.Millisecond || cfg.Verify.Workers != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Verify.MaxTicks != 20000 || cfg.Server.Address != ":2222" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing custom file accepted")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("log:\n  level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("invalid log level accepted")
	}
}

func TestValidateRejectsPlayFasterThanVerifyFloor(t *testing.T) {
	cfg := Default()
	cfg.Play.TickIntervalMs = 50
	cfg.Verify.MinTickIntervalMs = 100
	if err := cfg.Validate(); err == nil {
		t.Fatal("tick interval below the verify floor accepted")
	}

	cfg.Play.TickIntervalMs = 100
	if err := cfg.Validate(); err != nil {
		t.Fatalf("tick interval equal to the floor rejected: %v", err)
	}

	path := filepath.Join(t.TempDir(), "fast.yaml")
	if err := os.WriteFile(path, []byte("play:\n  tick_interval_ms: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a play interval below the default floor")
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte("server:\n  address: \":2323\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Address != ":2323" {
		t.Fatalf("address = %q", cfg.Server.Address)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := ExpandHome("~/.boulder/boulder.db"); got != "/home/tester/.boulder/boulder.db" {
		t.Fatalf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("ExpandHome changed an absolute path: %q", got)
	}
}
