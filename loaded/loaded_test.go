package loaded

import (
	"testing"

	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/playerid"
)

type fakeBody struct{ pos cube.Pos }

func (f fakeBody) Pos() cube.Pos { return f.pos }

func alice(t *testing.T) playerid.PlayerId {
	t.Helper()
	id, err := playerid.New("Alice")
	if err != nil {
		t.Fatalf("playerid.New: %v", err)
	}
	return id
}

// TestLoadedContainsScreenArea covers invariant 6: after update, the loaded
// area contains the player's centered view rectangle.
func TestLoadedContainsScreenArea(t *testing.T) {
	id := alice(t)
	l := New()
	pos := cube.Pos{X: 10, Y: 10}
	size := cube.Pos{X: 64, Y: 64}
	players := map[playerid.PlayerId]PlayerBody{id: fakeBody{pos: pos}}
	viewSize := map[playerid.PlayerId]cube.Pos{id: size}
	viewOffset := map[playerid.PlayerId]int{id: 16}

	l.Update(players, viewSize, viewOffset)

	screen := cube.Centered(pos, size)
	if !l.Loaded(id).ContainsArea(screen) {
		t.Fatalf("loaded area %+v does not contain screen %+v", l.Loaded(id), screen)
	}
}

// TestFreshEmptyWhenStationary covers invariant 6's second clause: repeated
// updates with no movement yield an empty fresh area on the second and later
// calls.
func TestFreshEmptyWhenStationary(t *testing.T) {
	id := alice(t)
	l := New()
	pos := cube.Pos{X: 0, Y: 0}
	players := map[playerid.PlayerId]PlayerBody{id: fakeBody{pos: pos}}
	viewSize := map[playerid.PlayerId]cube.Pos{id: {X: 64, Y: 64}}
	viewOffset := map[playerid.PlayerId]int{id: 16}

	l.Update(players, viewSize, viewOffset)
	first, _ := l.Fresh(id)
	if first.Empty() {
		t.Fatalf("expected first update to be entirely fresh")
	}

	l.Update(players, viewSize, viewOffset)
	fresh, _ := l.Fresh(id)
	if !fresh.Empty() {
		t.Fatalf("expected no fresh area on stationary re-update, got %+v", fresh)
	}
}

func TestIsLoadedUsesDespawnOffset(t *testing.T) {
	id := alice(t)
	l := New()
	pos := cube.Pos{X: 0, Y: 0}
	players := map[playerid.PlayerId]PlayerBody{id: fakeBody{pos: pos}}
	viewSize := map[playerid.PlayerId]cube.Pos{id: {X: 8, Y: 8}}
	viewOffset := map[playerid.PlayerId]int{id: 8}
	l.Update(players, viewSize, viewOffset)

	loaded := l.Loaded(id)
	outside := cube.Pos{X: loaded.Max().X + DespawnOffset - 1, Y: loaded.Min.Y}
	if !l.IsLoaded(outside) {
		t.Fatalf("expected pos within despawn-grown area to count as loaded")
	}
	farOutside := cube.Pos{X: loaded.Max().X + DespawnOffset + 10, Y: loaded.Min.Y}
	if l.IsLoaded(farOutside) {
		t.Fatalf("expected pos far beyond despawn offset to count as unloaded")
	}
}
