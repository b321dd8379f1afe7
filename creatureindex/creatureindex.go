package creatureindex

import (
	"github.com/tile-ward/gridworld/creature"
	"github.com/tile-ward/gridworld/creaturetype"
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/playerid"
)

// UnloadedDespawn is the number of ticks an NPC's area may remain unloaded
// before the NPC is despawned entirely (§4.5 despawn policy / §6 constant).
const UnloadedDespawn = 500

// LoadedAreas is the narrow view the index needs of the per-player loaded
// area tracker (C9) in order to decide NPC despawns.
type LoadedAreas interface {
	IsLoaded(pos cube.Pos) bool
}

// CreatureIndex is the authoritative dictionary of every live and recently
// dead creature. Entries are addressed by Id; order is the stable insertion
// order the tick loop's update_creatures walks (§5 ordering guarantees).
type CreatureIndex struct {
	entries    map[creature.Id]*creature.Creature
	order      []creature.Id
	lastLoaded map[creature.Id]cube.Timestamp
}

// New constructs an empty CreatureIndex.
func New() *CreatureIndex {
	return &CreatureIndex{
		entries:    make(map[creature.Id]*creature.Creature),
		lastLoaded: make(map[creature.Id]cube.Timestamp),
	}
}

// AddPlayer inserts a player body built from save, appending it to the
// stable iteration order.
func (idx *CreatureIndex) AddPlayer(id playerid.PlayerId, save creature.PlayerSave) *creature.Creature {
	c := creature.LoadPlayer(id, save)
	idx.insert(c)
	return c
}

// RemovePlayer saves and removes the player identified by id, returning the
// save snapshot taken immediately before removal.
func (idx *CreatureIndex) RemovePlayer(id playerid.PlayerId) (creature.PlayerSave, bool) {
	cid := creature.PlayerID(id)
	c, ok := idx.entries[cid]
	if !ok {
		return creature.PlayerSave{}, false
	}
	save := c.Save()
	idx.remove(cid)
	return save, true
}

// SavePlayer snapshots the current player body without removing it, used for
// periodic autosave.
func (idx *CreatureIndex) SavePlayer(id playerid.PlayerId) (creature.PlayerSave, bool) {
	c, ok := idx.entries[creature.PlayerID(id)]
	if !ok {
		return creature.PlayerSave{}, false
	}
	return c.Save(), true
}

// IterPlayers returns every player body currently in the index.
func (idx *CreatureIndex) IterPlayers() []*creature.Creature {
	var out []*creature.Creature
	for _, id := range idx.order {
		if id.IsPlayer() {
			out = append(out, idx.entries[id])
		}
	}
	return out
}

// GetCreature returns the creature identified by id.
func (idx *CreatureIndex) GetCreature(id creature.Id) (*creature.Creature, bool) {
	c, ok := idx.entries[id]
	return c, ok
}

// GetCreatureMut is GetCreature under another name: Go pointers are already
// mutable handles, so there is no separate mutable-borrow API to expose.
func (idx *CreatureIndex) GetCreatureMut(id creature.Id) (*creature.Creature, bool) {
	return idx.GetCreature(id)
}

// Ids returns every creature id in stable insertion order.
func (idx *CreatureIndex) Ids() []creature.Id {
	out := make([]creature.Id, len(idx.order))
	copy(out, idx.order)
	return out
}

// All returns every live (not dead) creature, in stable order.
func (idx *CreatureIndex) All() []*creature.Creature {
	var out []*creature.Creature
	for _, id := range idx.order {
		if c := idx.entries[id]; !c.IsDead() {
			out = append(out, c)
		}
	}
	return out
}

// AllMut is All under another name, kept for symmetry with GetCreatureMut.
func (idx *CreatureIndex) AllMut() []*creature.Creature { return idx.All() }

// Dead returns every dead creature still present in the index (retained
// through their Die animation window).
func (idx *CreatureIndex) Dead() []*creature.Creature {
	var out []*creature.Creature
	for _, id := range idx.order {
		if c := idx.entries[id]; c.IsDead() {
			out = append(out, c)
		}
	}
	return out
}

// Spawn creates a new NPC of kind k at pos, marking it loaded as of now. If a
// live NPC with that SpawnId already exists — a growth-driven spawn point
// random-ticks repeatedly while its structure remains in a spawning state —
// the existing creature is returned unchanged rather than duplicated.
func (idx *CreatureIndex) Spawn(pos cube.Pos, k creaturetype.Kind, now cube.Timestamp) *creature.Creature {
	id := creature.SpawnID(pos)
	if existing, ok := idx.entries[id]; ok {
		return existing
	}
	c := creature.SpawnNPC(pos, k)
	idx.insert(c)
	idx.lastLoaded[c.ID()] = now
	return c
}

// Despawn applies the NPC retention policy (§4.5): a live NPC is retained
// while its area is loaded, or for UnloadedDespawn ticks after it last was; a
// dead NPC is retained only through its Die animation window. Players are
// never auto-despawned.
func (idx *CreatureIndex) Despawn(areas LoadedAreas, now cube.Timestamp) {
	for _, id := range idx.Ids() {
		if id.IsPlayer() {
			continue
		}
		c := idx.entries[id]
		if c.IsDead() {
			if !c.IsDying(now) {
				idx.remove(id)
			}
			continue
		}
		if areas.IsLoaded(c.Pos()) {
			idx.lastLoaded[id] = now
			continue
		}
		if now-idx.lastLoaded[id] > UnloadedDespawn {
			idx.remove(id)
		}
	}
}

func (idx *CreatureIndex) insert(c *creature.Creature) {
	idx.entries[c.ID()] = c
	idx.order = append(idx.order, c.ID())
}

func (idx *CreatureIndex) remove(id creature.Id) {
	delete(idx.entries, id)
	delete(idx.lastLoaded, id)
	for i, got := range idx.order {
		if got == id {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
}
