// Package view implements the outbound message shapes and the per-player
// diff cache that turns full world state into minimal wire updates (C11).
package view

import (
	"reflect"

	"github.com/tile-ward/gridworld/creature"
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/inventory"
	"github.com/tile-ward/gridworld/sound"
)

// SectionView is the run-length-like wire encoding of a materialized map
// region (§4.3 view(area)): a vector of sprite-list indices parallel to the
// flattened area, plus the deduplicated sprite-list table those indices
// reference.
type SectionView struct {
	Area    cube.Area  `json:"area"`
	Indices []int      `json:"indices"`
	Sprites [][]string `json:"sprites"`
}

// Builder accumulates a SectionView by deduplicating sprite lists as cells
// are appended, in row-major order matching cube.Area.Iter.
type Builder struct {
	area    cube.Area
	indices []int
	sprites [][]string
	seen    map[string]int
}

// NewBuilder constructs a Builder for the given area.
func NewBuilder(area cube.Area) *Builder {
	return &Builder{area: area, seen: make(map[string]int)}
}

// Append records the sprite list for the next cell in row-major order.
func (b *Builder) Append(sprites []string) {
	key := spriteKey(sprites)
	idx, ok := b.seen[key]
	if !ok {
		idx = len(b.sprites)
		b.sprites = append(b.sprites, sprites)
		b.seen[key] = idx
	}
	b.indices = append(b.indices, idx)
}

// Build finalizes the accumulated cells into a SectionView.
func (b *Builder) Build() SectionView {
	return SectionView{Area: b.area, Indices: b.indices, Sprites: b.sprites}
}

func spriteKey(sprites []string) string {
	key := ""
	for _, s := range sprites {
		key += s + "\x00"
	}
	return key
}

// WorldMessage is the per-player outbound payload assembled once per tick
// (§4.8). MessageCache.Trim can cut it down to only the fields that changed;
// cmd/gridworld does not use MessageCache and delivers every message in full.
type WorldMessage struct {
	Tick      cube.Timestamp        `json:"tick"`
	ViewArea  cube.Area             `json:"viewarea,omitempty"`
	Section   *SectionView          `json:"section,omitempty"`
	Change    map[cube.Pos]TileView `json:"change,omitempty"`
	Dynamics  []creature.View       `json:"dynamics,omitempty"`
	Me        *creature.ViewExt     `json:"me,omitempty"`
	Inventory *inventory.View       `json:"inventory,omitempty"`
	Sounds    []sound.Event         `json:"sounds"`
}

// TileView is the wire representation of one overridden terrain cell.
type TileView struct {
	Sprites []string `json:"sprites"`
}

// cacheEntry is the last message sent to one player, used as the diff base.
type cacheEntry struct {
	viewArea  cube.Area
	section   *SectionView
	change    map[cube.Pos]TileView
	dynamics  []creature.View
	me        *creature.ViewExt
	inventory *inventory.View
}

// MessageCache holds, per player, the last-sent value of every diffable
// field so that Trim can erase unchanged fields before sending.
type MessageCache struct {
	entries map[string]cacheEntry
}

// NewMessageCache constructs an empty MessageCache.
func NewMessageCache() *MessageCache {
	return &MessageCache{entries: make(map[string]cacheEntry)}
}

// Remove drops a player's cache entry on leave.
func (c *MessageCache) Remove(player string) {
	delete(c.entries, player)
}

// Trim erases every diffable field of msg equal to the cached value for
// player, then merges the (possibly still-cached) fields back into the
// cache. tick and sounds are never diffed away (§4.8).
func (c *MessageCache) Trim(player string, msg WorldMessage) WorldMessage {
	prev := c.entries[player]

	if msg.ViewArea == prev.viewArea {
		msg.ViewArea = cube.Area{}
	}
	if sectionEqual(msg.Section, prev.section) {
		msg.Section = nil
	}
	if changeEqual(msg.Change, prev.change) {
		msg.Change = nil
	}
	if dynamicsEqual(msg.Dynamics, prev.dynamics) {
		msg.Dynamics = nil
	}
	if meEqual(msg.Me, prev.me) {
		msg.Me = nil
	}
	if inventoryEqual(msg.Inventory, prev.inventory) {
		msg.Inventory = nil
	}

	next := prev
	if msg.ViewArea != (cube.Area{}) {
		next.viewArea = msg.ViewArea
	}
	if msg.Section != nil {
		next.section = msg.Section
	}
	if msg.Change != nil {
		next.change = msg.Change
	}
	if msg.Dynamics != nil {
		next.dynamics = msg.Dynamics
	}
	if msg.Me != nil {
		next.me = msg.Me
	}
	if msg.Inventory != nil {
		next.inventory = msg.Inventory
	}
	c.entries[player] = next

	return msg
}

func sectionEqual(a, b *SectionView) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(*a, *b)
}

func changeEqual(a, b map[cube.Pos]TileView) bool {
	return reflect.DeepEqual(a, b)
}

func dynamicsEqual(a, b []creature.View) bool {
	return reflect.DeepEqual(a, b)
}

func meEqual(a, b *creature.ViewExt) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(*a, *b)
}

func inventoryEqual(a, b *inventory.View) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(*a, *b)
}
