package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gridworld.toml")
	body := `
[Map]
Kind = "tiled"
Path = "map.txt"

[Network]
ListenAddr = ":8080"

[Player]
ViewSizeX = 32
ViewSizeY = 32
ViewOffset = 16
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Map.Kind != "tiled" || cfg.Map.Path != "map.txt" {
		t.Fatalf("unexpected map config: %+v", cfg.Map)
	}
	if cfg.Network.ListenAddr != ":8080" {
		t.Fatalf("unexpected listen addr: %q", cfg.Network.ListenAddr)
	}
	pc := cfg.PlayerConfig()
	if pc.ViewSize.X != 32 || pc.ViewSize.Y != 32 || pc.ViewOffset != 16 {
		t.Fatalf("unexpected player config: %+v", pc)
	}
}

func TestLoadConfigMissingFileReturnsPlainError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
	var malformed *ErrConfigMalformed
	if errors.As(err, &malformed) {
		t.Fatalf("expected a plain error, not ErrConfigMalformed")
	}
}

func TestLoadConfigMalformedFileIsDistinguishable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	var malformed *ErrConfigMalformed
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *ErrConfigMalformed, got %T", err)
	}
}
