// Package creatureindex implements the authoritative creature dictionary
// (CreatureIndex) and the ephemeral per-tick spatial lookup rebuilt from it
// every tick (CreatureMap), per the core's creature index component.
package creatureindex

import (
	"github.com/brentp/intintmap"
	"github.com/tile-ward/gridworld/creature"
	"github.com/tile-ward/gridworld/cube"
)

// posKey packs a Pos into the single int64 key brentp/intintmap requires,
// folding the two signed halves into the high/low 32 bits.
func posKey(p cube.Pos) int64 {
	return int64(uint64(uint32(p.X))<<32 | uint64(uint32(p.Y)))
}

// CreatureMap is the per-tick spatial index rebuilt from Scratch every tick
// (§4.7 step 3a: "Build fresh CreatureMap from all live creatures"). Lookups
// by Pos go through an intintmap keyed on the packed coordinate, avoiding a
// generic map's hashing/boxing overhead in the engine's hottest allocation.
type CreatureMap struct {
	index   *intintmap.Map
	buckets [][]creature.Tile
	byID    map[creature.Id]cube.Pos
}

// Build constructs a fresh CreatureMap from the given live creatures.
func Build(creatures []*creature.Creature) *CreatureMap {
	m := &CreatureMap{
		index: intintmap.New(len(creatures)*2+1, 0.6),
		byID:  make(map[creature.Id]cube.Pos, len(creatures)),
	}
	for _, c := range creatures {
		t := creature.Tile{ID: c.ID(), Faction: c.Faction(), Blocking: c.Blocking(), Pos: c.Pos()}
		m.add(c.Pos(), t)
	}
	return m
}

// Get returns every CreatureTile co-located at pos.
func (m *CreatureMap) Get(pos cube.Pos) []creature.Tile {
	key := posKey(pos)
	idx, ok := m.index.Get(key)
	if !ok {
		return nil
	}
	return m.buckets[idx]
}

// Blocking reports whether pos is blocked for self_tile: true if any other
// co-located creature has blocking true OR self_tile itself is blocking.
func (m *CreatureMap) Blocking(pos cube.Pos, self creature.Tile) bool {
	for _, t := range m.Get(pos) {
		if t.ID == self.ID {
			continue
		}
		if t.Blocking || self.Blocking {
			return true
		}
	}
	return false
}

// Nearby returns every co-located tile within Chebyshev radius of center.
func (m *CreatureMap) Nearby(center cube.Pos, radius int) []creature.Tile {
	var out []creature.Tile
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			out = append(out, m.Get(cube.Pos{X: center.X + dx, Y: center.Y + dy})...)
		}
	}
	return out
}

// MoveCreature updates the all-mirror after an execution-phase move, so that
// later lookups within the same tick (e.g. a second creature's Fight check)
// see the new position immediately.
func (m *CreatureMap) MoveCreature(t creature.Tile, from, to cube.Pos) {
	m.remove(from, t.ID)
	m.add(to, t)
}

// Locate returns the last-known position of id within this CreatureMap.
func (m *CreatureMap) Locate(id creature.Id) (cube.Pos, bool) {
	p, ok := m.byID[id]
	return p, ok
}

func (m *CreatureMap) add(pos cube.Pos, t creature.Tile) {
	key := posKey(pos)
	idx, ok := m.index.Get(key)
	if !ok {
		idx = int64(len(m.buckets))
		m.buckets = append(m.buckets, nil)
		m.index.Put(key, idx)
	}
	m.buckets[idx] = append(m.buckets[idx], t)
	m.byID[t.ID] = pos
}

func (m *CreatureMap) remove(pos cube.Pos, id creature.Id) {
	key := posKey(pos)
	idx, ok := m.index.Get(key)
	if !ok {
		return
	}
	bucket := m.buckets[idx]
	for i, t := range bucket {
		if t.ID == id {
			m.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	delete(m.byID, id)
}
