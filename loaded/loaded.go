// Package loaded implements the per-player sliding area-of-interest tracker
// (C9): the rectangle of the world a player's client currently has loaded,
// and the strip that newly entered it this update.
package loaded

import (
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/playerid"
)

// DespawnOffset is the margin by which a loaded Area is grown before testing
// whether an NPC still counts as "in a loaded area" (§6 constant).
const DespawnOffset = 32

// PlayerBody is the narrow read interface the tracker needs from a player
// creature.
type PlayerBody interface {
	Pos() cube.Pos
}

// entry is the per-player tracked state: the total loaded area and the strip
// freshly exposed by the most recent update.
type entry struct {
	loaded cube.Area
	fresh  cube.Area
	hasOld bool
}

// LoadedAreas tracks, per player, the currently loaded Area and the Area
// freshly added by the last Update call.
type LoadedAreas struct {
	byPlayer map[playerid.PlayerId]entry
}

// New constructs an empty LoadedAreas tracker.
func New() *LoadedAreas {
	return &LoadedAreas{byPlayer: make(map[playerid.PlayerId]entry)}
}

// Remove drops tracked state for a player who has left.
func (l *LoadedAreas) Remove(id playerid.PlayerId) {
	delete(l.byPlayer, id)
}

// Update recomputes the loaded/fresh areas for every given player, using
// each player's body position and view configuration.
func (l *LoadedAreas) Update(players map[playerid.PlayerId]PlayerBody, viewSize map[playerid.PlayerId]cube.Pos, viewOffset map[playerid.PlayerId]int) {
	for id, body := range players {
		size := viewSize[id]
		offset := viewOffset[id]
		screen := cube.Centered(body.Pos(), size)
		old, hasOld := l.byPlayer[id]
		if !hasOld || !old.loaded.ContainsArea(screen) {
			total, fresh := newArea(screen, offset, old.loaded, hasOld)
			l.byPlayer[id] = entry{loaded: total, fresh: fresh, hasOld: true}
		} else {
			old.fresh = cube.Area{}
			l.byPlayer[id] = old
		}
	}
}

// newArea implements §4.6's new_area: grow screen by offset to get core; if
// there is no previous area, a size mismatch, or no overlap, the entire core
// is fresh. Otherwise only the strip exposed by whichever cardinal edge
// advanced is fresh.
func newArea(screen cube.Area, offset int, old cube.Area, hasOld bool) (total, fresh cube.Area) {
	core := screen.Grow(offset)
	if !hasOld || core.Size != old.Size || !core.Overlaps(old) {
		return core, core
	}
	switch {
	case core.Min.X < old.Min.X:
		min := cube.Pos{X: core.Min.X, Y: old.Min.Y}
		total = cube.Area{Min: min, Size: core.Size}
		fresh = cube.Between(min, cube.Pos{X: old.Min.X - 1, Y: old.Max().Y - 1})
	case core.Min.X > old.Min.X:
		min := cube.Pos{X: core.Min.X, Y: old.Min.Y}
		total = cube.Area{Min: min, Size: core.Size}
		fresh = cube.Between(cube.Pos{X: old.Max().X, Y: old.Min.Y}, cube.Pos{X: total.Max().X - 1, Y: total.Max().Y - 1})
	case core.Min.Y < old.Min.Y:
		min := cube.Pos{X: old.Min.X, Y: core.Min.Y}
		total = cube.Area{Min: min, Size: core.Size}
		fresh = cube.Between(min, cube.Pos{X: old.Max().X - 1, Y: old.Min.Y - 1})
	case core.Min.Y > old.Min.Y:
		min := cube.Pos{X: old.Min.X, Y: core.Min.Y}
		total = cube.Area{Min: min, Size: core.Size}
		fresh = cube.Between(cube.Pos{X: old.Min.X, Y: old.Max().Y}, cube.Pos{X: total.Max().X - 1, Y: total.Max().Y - 1})
	default:
		total, fresh = core, cube.Area{}
	}
	return total, fresh
}

// Loaded returns the player's currently loaded Area.
func (l *LoadedAreas) Loaded(id playerid.PlayerId) cube.Area {
	return l.byPlayer[id].loaded
}

// Fresh returns the player's newly exposed strip from the last Update, and
// whether it is non-empty (on a player's first Update the entire core Area
// is fresh; an Update that exposed nothing reports false).
func (l *LoadedAreas) Fresh(id playerid.PlayerId) (cube.Area, bool) {
	e, ok := l.byPlayer[id]
	if !ok {
		return cube.Area{}, false
	}
	return e.fresh, !e.fresh.Empty()
}

// AllLoaded returns every player's currently loaded Area, for terrain
// garbage collection and randomized ticking scope.
func (l *LoadedAreas) AllLoaded() []cube.Area {
	out := make([]cube.Area, 0, len(l.byPlayer))
	for _, e := range l.byPlayer {
		out = append(out, e.loaded)
	}
	return out
}

// IsLoaded reports whether pos falls within any player's loaded Area grown
// by DespawnOffset (§4.6 is_loaded).
func (l *LoadedAreas) IsLoaded(pos cube.Pos) bool {
	for _, e := range l.byPlayer {
		if e.loaded.Grow(DespawnOffset).Contains(pos) {
			return true
		}
	}
	return false
}
