package creatureindex

import (
	"testing"

	"github.com/tile-ward/gridworld/creature"
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/playerid"
)

type fakeAreas struct{ loaded map[cube.Pos]bool }

func (f fakeAreas) IsLoaded(p cube.Pos) bool { return f.loaded[p] }

func TestDespawnRetainsLoadedNPC(t *testing.T) {
	idx := New()
	c := idx.Spawn(cube.Pos{X: 1, Y: 1}, "frog", 0)
	idx.Despawn(fakeAreas{loaded: map[cube.Pos]bool{{X: 1, Y: 1}: true}}, 10)
	if _, ok := idx.GetCreature(c.ID()); !ok {
		t.Fatalf("expected loaded NPC retained")
	}
}

func TestDespawnRemovesLongUnloadedNPC(t *testing.T) {
	idx := New()
	c := idx.Spawn(cube.Pos{X: 1, Y: 1}, "frog", 0)
	idx.Despawn(fakeAreas{}, UnloadedDespawn+1)
	if _, ok := idx.GetCreature(c.ID()); ok {
		t.Fatalf("expected NPC despawned after exceeding unloaded window")
	}
}

func TestDespawnKeepsRecentlyUnloadedNPC(t *testing.T) {
	idx := New()
	c := idx.Spawn(cube.Pos{X: 1, Y: 1}, "frog", 0)
	idx.Despawn(fakeAreas{}, UnloadedDespawn-1)
	if _, ok := idx.GetCreature(c.ID()); !ok {
		t.Fatalf("expected NPC retained within unloaded grace window")
	}
}

func TestPlayersNeverDespawn(t *testing.T) {
	idx := New()
	id, err := playerid.New("Alice")
	if err != nil {
		t.Fatalf("playerid.New: %v", err)
	}
	idx.AddPlayer(id, creature.PlayerSave{Name: id, Pos: cube.Pos{X: 500, Y: 500}})
	idx.Despawn(fakeAreas{}, 100000)
	if _, ok := idx.GetCreature(creature.PlayerID(id)); !ok {
		t.Fatalf("expected player never despawned")
	}
}
