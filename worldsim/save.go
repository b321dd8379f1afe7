package worldsim

import (
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/playerid"
	"github.com/tile-ward/gridworld/tile"
	"github.com/tile-ward/gridworld/worldgen"
)

// WorldSave is the serializable snapshot of everything the World owns
// besides player bodies, which are persisted separately via PlayerSave
// (§6: save() -> WorldSave, save_player(id) -> PlayerSave).
type WorldSave struct {
	Now           cube.Timestamp
	GroundChanges map[cube.Pos]tile.Tile
	Claims        map[playerid.PlayerId]cube.Pos
}

// Save produces a WorldSave snapshot of w's current overlay and claim state.
func (w *World) Save() WorldSave {
	changes := make(map[cube.Pos]tile.Tile, len(w.m.changes))
	for pos, c := range w.m.changes {
		changes[pos] = c.tile
	}
	claims := make(map[playerid.PlayerId]cube.Pos, len(w.claims))
	for id, pos := range w.claims {
		claims[id] = pos
	}
	return WorldSave{Now: w.now, GroundChanges: changes, Claims: claims}
}

// Load reconstructs a World atop base from a previously captured WorldSave.
// Player bodies are re-admitted individually afterward via AddPlayer.
func Load(base worldgen.BaseMap, save WorldSave) *World {
	w := New(base)
	w.now = save.Now
	for pos, t := range save.GroundChanges {
		w.m.changes[pos] = overlayCell{tile: t, builtTime: save.Now}
	}
	for id, pos := range save.Claims {
		w.claims[id] = pos
	}
	return w
}
