package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/tile-ward/gridworld/action"
	"github.com/tile-ward/gridworld/cube"
)

// Config is the process-level TOML configuration: map generation, network
// and persistence knobs, and per-player view defaults.
type Config struct {
	Map struct {
		// Kind selects the base map generator: "infinite" or "tiled".
		Kind string
		Seed uint32 // Infinite only
		Path string // Tiled only: legend+grid source file
	}
	Network struct {
		ListenAddr string
		RedisAddr  string // empty disables the session registry
	}
	Persistence struct {
		LevelDBDir  string // empty disables world persistence
		PostgresDSN string // empty disables player persistence
	}
	Player struct {
		ViewSizeX  int
		ViewSizeY  int
		ViewOffset int
	}
}

// DefaultConfig mirrors action's own defaults so an absent config file still
// produces a runnable, fully-open single-instance world.
func DefaultConfig() Config {
	var c Config
	c.Map.Kind = "infinite"
	c.Map.Seed = 1
	c.Network.ListenAddr = ":9999"
	c.Player.ViewSizeX = action.DefaultViewSize.X
	c.Player.ViewSizeY = action.DefaultViewSize.Y
	c.Player.ViewOffset = action.DefaultViewOffset
	return c
}

// ErrConfigMalformed wraps a TOML parse failure, distinguishing it from a
// merely-absent config file: a missing file falls back to DefaultConfig, but
// a malformed one is fatal at startup (same disposition as a map load
// error).
type ErrConfigMalformed struct{ err error }

func (e *ErrConfigMalformed) Error() string { return e.err.Error() }
func (e *ErrConfigMalformed) Unwrap() error { return e.err }

// LoadConfig reads and parses a TOML config file at path, defaulting any
// field the file leaves zero-valued. A missing file is reported as a plain
// error (caller may fall back to defaults); a present-but-malformed file is
// reported as *ErrConfigMalformed.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, &ErrConfigMalformed{fmt.Errorf("config: parse %s: %w", path, err)}
	}
	return c, nil
}

// PlayerConfig derives the action.PlayerConfig a joining player defaults to.
func (c Config) PlayerConfig() action.PlayerConfig {
	return action.PlayerConfig{
		ViewSize:   cube.Pos{X: c.Player.ViewSizeX, Y: c.Player.ViewSizeY},
		ViewOffset: c.Player.ViewOffset,
	}.Clamp()
}
