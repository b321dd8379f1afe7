package worldgen

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/rng"
	"github.com/tile-ward/gridworld/tile"
)

// Infinite is a pure function of seed and position: layered opensimplex
// noise produces an elevation/moisture pair that is thresholded into a
// biome table, while feature placement (stones, bushes, pitchers, spawn
// points) is derived purely from rng.Randomize over the position, never
// from the noise fields themselves (§4.2).
type Infinite struct {
	seed                         uint32
	elevation, moisture, rough   opensimplex.Noise
	spawn                        cube.Pos
}

// NewInfinite constructs an Infinite base map from a 32-bit seed.
func NewInfinite(seed uint32) *Infinite {
	return &Infinite{
		seed:      seed,
		elevation: opensimplex.NewNormalized(int64(seed)),
		moisture:  opensimplex.NewNormalized(int64(seed) ^ 0x5bd1e995),
		rough:     opensimplex.NewNormalized(int64(seed) ^ 0x27d4eb2f),
		spawn:     cube.Pos{0, 0},
	}
}

const noiseScale = 0.04

// fields samples the three noise octaves at pos and blends them through an
// mgl64 vector so that elevation and roughness jointly bias the final
// height value used for biome thresholding.
func (g *Infinite) fields(pos cube.Pos) (elevation, moisture float64) {
	x, y := float64(pos.X)*noiseScale, float64(pos.Y)*noiseScale
	e := g.elevation.Eval2(x, y)
	r := g.rough.Eval2(x*4, y*4)
	height := mgl64.Vec2{e, r}.Dot(mgl64.Vec2{0.8, 0.2})
	m := g.moisture.Eval2(x, y)
	return height, m
}

// Cell implements BaseMap.
func (g *Infinite) Cell(pos cube.Pos, now cube.Timestamp) tile.Tile {
	elevation, moisture := g.fields(pos)
	t := biomeTile(elevation, moisture)
	if s, ok := g.feature(pos); ok {
		t.Structure = s
	}
	return t
}

// biomeTile thresholds the (elevation, moisture) pair into a base Ground,
// matching classic voxel-world biome tables.
func biomeTile(elevation, moisture float64) tile.Tile {
	switch {
	case elevation < 0.35:
		return tile.Tile{Ground: tile.Water, Structure: tile.Air}
	case elevation < 0.40:
		return tile.Tile{Ground: tile.Sand, Structure: tile.Air}
	case elevation > 0.75:
		return tile.Tile{Ground: tile.Stone, Structure: tile.Air}
	case moisture < 0.3:
		return tile.Tile{Ground: tile.Dirt, Structure: tile.Air}
	default:
		return tile.Tile{Ground: tile.Grass, Structure: tile.Air}
	}
}

// feature places hash-derived decoration: trees, bushes, rocks, pitchers and
// NPC spawn points. Every draw is seeded purely from pos, independent of the
// noise fields, so features never trivially correlate with biome boundaries.
func (g *Infinite) feature(pos cube.Pos) (tile.Structure, bool) {
	seed := rng.Randomize(g.seed ^ rng.MixPos(pos))
	switch {
	case rng.Percentage(seed, 3):
		return tile.Tree, true
	case rng.Percentage(rng.Randomize(seed), 2):
		return tile.Bush, true
	case rng.Percentage(rng.Randomize(rng.Randomize(seed)), 1):
		return tile.Rock, true
	case pos != (cube.Pos{0, 0}) && rng.Percentage(rng.Randomize(rng.Randomize(rng.Randomize(seed))), 1):
		return tile.Pitcher, true
	}
	return tile.Air, false
}

// Region implements BaseMap.
func (g *Infinite) Region(area cube.Area, now cube.Timestamp, f func(cube.Pos, tile.Tile) bool) {
	area.Iter(func(p cube.Pos) bool {
		return f(p, g.Cell(p, now))
	})
}

// PlayerSpawn implements BaseMap.
func (g *Infinite) PlayerSpawn() cube.Pos {
	return g.spawn
}
