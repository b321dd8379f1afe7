// Package worldgen implements the read-only base map generator (§4.2): the
// Infinite procedurally-generated backend and the Tiled finite overlay. Both
// are concrete variants of a single BaseMap interface, selected once at
// world construction — a tagged dispatch, never a plugin system (§9).
package worldgen

import (
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/tile"
)

// BaseMap is the read-only terrain generator a Map overlays.
type BaseMap interface {
	// Cell returns the generated Tile at pos as of tick now.
	Cell(pos cube.Pos, now cube.Timestamp) tile.Tile
	// Region calls f for every generated (Pos, Tile) pair within area as of
	// tick now, stopping early if f returns false.
	Region(area cube.Area, now cube.Timestamp, f func(cube.Pos, tile.Tile) bool)
	// PlayerSpawn returns the position new players spawn at by default.
	PlayerSpawn() cube.Pos
}
