// Package worldsim implements the mutable terrain overlay (C5) and the
// World that owns it alongside the creature index and loaded-area tracker,
// running the authoritative per-tick simulation loop (C10).
package worldsim

import (
	"github.com/tile-ward/gridworld/creaturetype"
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/item"
	"github.com/tile-ward/gridworld/tile"
	"github.com/tile-ward/gridworld/view"
	"github.com/tile-ward/gridworld/worldgen"
)

// ChunkSize and ChunkArea are the random-tick granularity constants (§6).
const (
	ChunkSize = 16
	ChunkArea = ChunkSize * ChunkSize
)

// SpawnEntry is one (position, kind) pair the Map proposes for spawning,
// drained by the World's spawn_creatures stage.
type SpawnEntry struct {
	Pos  cube.Pos
	Kind creaturetype.Kind
}

// overlayCell is one entry of the sparse override dictionary: a tile that
// diverges from the base map, plus the tick it was last written at (used to
// schedule growth stages).
type overlayCell struct {
	tile      tile.Tile
	builtTime cube.Timestamp
}

// Map overlays a read-only worldgen.BaseMap with a sparse dictionary of
// player- and growth-driven overrides (§4.3).
type Map struct {
	base          worldgen.BaseMap
	changes       map[cube.Pos]overlayCell
	modifications map[cube.Pos]struct{}
	spawns        []SpawnEntry
	now           cube.Timestamp
}

// NewMap constructs an empty overlay atop base.
func NewMap(base worldgen.BaseMap) *Map {
	return &Map{
		base:          base,
		changes:       make(map[cube.Pos]overlayCell),
		modifications: make(map[cube.Pos]struct{}),
	}
}

// PlayerSpawn delegates to the base map's default spawn position.
func (m *Map) PlayerSpawn() cube.Pos { return m.base.PlayerSpawn() }

// Cell returns the overridden tile at pos if one exists, else the base
// map's generated tile.
func (m *Map) Cell(pos cube.Pos) tile.Tile {
	if c, ok := m.changes[pos]; ok {
		return c.tile
	}
	return m.base.Cell(pos, m.now)
}

// Set writes t at pos. If t equals the base map's tile, the override is
// erased rather than stored (§4.3). pos always enters modifications.
func (m *Map) Set(pos cube.Pos, t tile.Tile) {
	if t == m.base.Cell(pos, m.now) {
		delete(m.changes, pos)
	} else {
		m.changes[pos] = overlayCell{tile: t, builtTime: m.now}
	}
	m.modifications[pos] = struct{}{}
}

// SetStructure overwrites only pos's Structure, preserving its Ground.
func (m *Map) SetStructure(pos cube.Pos, s tile.Structure) {
	t := m.Cell(pos)
	t.Structure = s
	m.Set(pos, t)
}

// SetGround overwrites only pos's Ground, preserving its Structure.
func (m *Map) SetGround(pos cube.Pos, g tile.Ground) {
	t := m.Cell(pos)
	t.Ground = g
	m.Set(pos, t)
}

// Take attempts pos's tile-defined pickup rule, writing the residue tile on
// success and returning the picked-up item.
func (m *Map) Take(pos cube.Pos) (item.Item, bool) {
	residue, picked, ok := m.Cell(pos).Take()
	if !ok {
		return item.Nothing, false
	}
	m.Set(pos, residue)
	return picked, true
}

// Modified returns a snapshot of every cell mutated so far this tick.
func (m *Map) Modified() map[cube.Pos]tile.Tile {
	out := make(map[cube.Pos]tile.Tile, len(m.modifications))
	for pos := range m.modifications {
		out[pos] = m.Cell(pos)
	}
	return out
}

// Spawns returns the spawn proposals accumulated so far this tick.
func (m *Map) Spawns() []SpawnEntry {
	return m.spawns
}

// Flush clears the per-tick modification and spawn scratch (§4.3 flush()).
func (m *Map) Flush() {
	m.modifications = make(map[cube.Pos]struct{})
	m.spawns = nil
}

// View builds the on-wire SectionView of area (§4.3 view(area)).
func (m *Map) View(area cube.Area) view.SectionView {
	b := view.NewBuilder(area)
	area.Iter(func(p cube.Pos) bool {
		b.Append(m.Cell(p).Sprites())
		return true
	})
	return b.Build()
}

// LoadArea random-ticks every position in the centered 128x128 region around
// area's center, a one-shot catch-up applied when a region is first loaded
// (§4.3 load_area).
func (m *Map) LoadArea(area cube.Area) {
	if area.Empty() {
		return
	}
	center := cube.Pos{X: (area.Min.X + area.Max().X) / 2, Y: (area.Min.Y + area.Max().Y) / 2}
	catchUp := cube.Centered(center, cube.Pos{X: 128, Y: 128})
	catchUp.Iter(func(p cube.Pos) bool {
		m.tickOne(p)
		return true
	})
}

// Tick runs the engine's per-tick random-tick sweep: one position per chunk
// per tick, restricted to the union of loaded areas (§4.3 tick).
func (m *Map) Tick(now cube.Timestamp, loadedAreas []cube.Area) {
	m.now = now
	seed := now.RandomSeed()
	offset := cube.Pos{X: int(seed % ChunkSize), Y: int((seed / ChunkSize) % ChunkSize)}
	for _, area := range loadedAreas {
		forEachChunkOrigin(area, func(origin cube.Pos) {
			pos := origin.AddPos(offset)
			if area.Contains(pos) {
				m.tickOne(pos)
			}
		})
	}
}

// forEachChunkOrigin calls f with the origin (a multiple of ChunkSize on
// each axis) of every chunk that area overlaps.
func forEachChunkOrigin(area cube.Area, f func(origin cube.Pos)) {
	if area.Empty() {
		return
	}
	minQ, _ := area.Min.DivMod(ChunkSize)
	maxQ, _ := cube.Pos{X: area.Max().X - 1, Y: area.Max().Y - 1}.DivMod(ChunkSize)
	for qy := minQ.Y; qy <= maxQ.Y; qy++ {
		for qx := minQ.X; qx <= maxQ.X; qx++ {
			f(cube.Pos{X: qx * ChunkSize, Y: qy * ChunkSize})
		}
	}
}

// tickOne drives one random-ticked position's growth schedule forward and
// records any resulting spawn (§4.3 tick_one).
func (m *Map) tickOne(pos cube.Pos) {
	if c, ok := m.changes[pos]; ok {
		built := c.tile.Structure
		builtTime := c.builtTime
		for {
			delay, next, shoot, hasShoot, ok2 := (tile.Tile{Structure: built}).Grow()
			if !ok2 || builtTime+cube.Timestamp(delay*ChunkArea) > m.now {
				break
			}
			builtTime += cube.Timestamp(delay * ChunkArea)
			built = next
			cur := m.changes[pos]
			cur.tile.Structure = built
			cur.builtTime = builtTime
			m.changes[pos] = cur
			m.modifications[pos] = struct{}{}
			if hasShoot {
				m.plantShoot(pos, shoot)
			}
		}
		m.collectGarbage(pos)
	}
	if k, ok := m.Cell(pos).Spawn(); ok {
		m.spawns = append(m.spawns, SpawnEntry{Pos: pos, Kind: k})
	}
}

// plantShoot applies shoot to every orthogonal neighbour of pos, following
// the joined-product table where defined and planting directly into open
// neighbours otherwise (§4.3).
func (m *Map) plantShoot(pos cube.Pos, shoot tile.Structure) {
	for _, d := range cube.Directions {
		npos := pos.Add(d)
		n := m.Cell(npos)
		if product, ok := tile.JoinedProduct(n.Structure, shoot); ok {
			n.Structure = product
			m.Set(npos, n)
		} else if tile.Open(n.Structure) {
			n.Structure = shoot
			m.Set(npos, n)
		}
	}
}

// collectGarbage removes pos's override once it has decayed back to a state
// indistinguishable from the base map (§4.3: "if the resulting structure is
// open and the ground either self-restores or already equals the base
// ground and the base structure is open, remove the change").
func (m *Map) collectGarbage(pos cube.Pos) {
	cur, ok := m.changes[pos]
	if !ok || !tile.Open(cur.tile.Structure) {
		return
	}
	base := m.base.Cell(pos, m.now)
	if tile.SelfRestores(cur.tile.Ground) || (cur.tile.Ground == base.Ground && tile.Open(base.Structure)) {
		delete(m.changes, pos)
	}
}
