package creature

import (
	"github.com/tile-ward/gridworld/creaturetype"
	"github.com/tile-ward/gridworld/cube"
)

// Health is the clamped (current, max) health pair carried on every view.
type Health struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// WalkSpeed is the (1, cooldown) pair describing how many ticks a single
// step of movement takes, carried only on the extended self-view.
type WalkSpeed struct {
	Steps    int `json:"steps"`
	Cooldown int `json:"cooldown"`
}

// View is the wire-level representation of one creature as seen by other
// observers (§4.4 view()).
type View struct {
	ID       Id        `json:"id"`
	Pos      cube.Pos  `json:"pos"`
	Sprite   string    `json:"sprite"`
	Activity *Activity `json:"activity,omitempty"`
	Health   Health    `json:"health"`
	Wounds   []Wound   `json:"wounds"`
	Blocking bool      `json:"blocking"`
}

// ViewExt extends View with the self-only fields a player's own client needs
// to predict its own movement cadence (§4.4 view_ext()).
type ViewExt struct {
	View
	WalkSpeed WalkSpeed `json:"walk_speed"`
}

// View produces the outward-facing view of c, shown to every observer within
// range.
func (c *Creature) View() View {
	attrs := creaturetype.Of(c.typ)
	current, max := c.ClampedHealth()
	return View{
		ID:       c.id,
		Pos:      c.pos,
		Sprite:   attrs.Sprite,
		Activity: c.activity,
		Health:   Health{Current: current, Max: max},
		Wounds:   append([]Wound(nil), c.wounds...),
		Blocking: attrs.Blocking,
	}
}

// ViewExt produces the extended self-view sent to a player about its own
// body, carrying the walk-speed pair the bare View omits.
func (c *Creature) ViewExt() ViewExt {
	attrs := creaturetype.Of(c.typ)
	return ViewExt{
		View:      c.View(),
		WalkSpeed: WalkSpeed{Steps: 1, Cooldown: attrs.WalkCooldown},
	}
}
