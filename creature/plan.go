package creature

import (
	"github.com/tile-ward/gridworld/creaturetype"
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/faction"
	"github.com/tile-ward/gridworld/rng"
)

// salts distinguish independent seeded draws made within a single planning
// call by the same creature at the same tick.
const (
	saltPathDir       = 2849
	saltIdleShouldMove = 0
	saltIdleTowardHome = 1
	saltIdleDirHome    = 2
	saltIdleDirAny     = 3
	saltAggroDir       = 4
)

// PlanTick derives self.plan when absent, dispatching on the creature's
// CreatureType mind (§4.4).
func (c *Creature) PlanTick(occ Occupancy, ground Ground, now cube.Timestamp) {
	if c.plan != nil {
		return
	}
	attrs := creaturetype.Of(c.typ)
	switch attrs.Mind {
	case creaturetype.MindPlayer:
		c.planPlayer(occ, ground, now)
	case creaturetype.MindIdle:
		c.planIdle(now)
	case creaturetype.MindAggressive:
		c.planAggressive(occ, ground, now, attrs)
	}
}

func (c *Creature) walkable(ground Ground, occ Occupancy, target cube.Pos) bool {
	if ground.Cell(target).Blocking() {
		return false
	}
	self := Tile{ID: c.id, Faction: c.Faction(), Blocking: c.Blocking(), Pos: c.pos}
	return !occ.Blocking(target, self)
}

func (c *Creature) planPlayer(occ Occupancy, ground Ground, now cube.Timestamp) {
	if c.movement != nil {
		d := *c.movement
		c.plan = &Plan{Kind: PlanMove, Dir: &d}
		return
	}
	for len(c.path) > 0 && c.path[0] == c.pos {
		c.path = c.path[1:]
	}
	if len(c.path) > 0 {
		next := c.path[0]
		dirs := filterWalkable(c.pos.DirectionsTo(next), func(d cube.Direction) bool {
			return c.walkable(ground, occ, c.pos.Add(d))
		})
		if len(dirs) > 0 {
			d := rng.Pick(rng.Seed(c.home, c.pos, now, saltPathDir), dirs)
			c.plan = &Plan{Kind: PlanMove, Dir: &d}
			return
		}
		// Abandon this path step: neither direction toward the next node is
		// currently walkable. Retry next tick rather than discarding the path.
	}
	if c.target == nil {
		c.adoptWoundTarget(now)
	}
	c.resolveFightOrClearTarget(occ, now)
}

// adoptWoundTarget scans wounds newest-first for one aged >= 2 ticks and
// adopts its source as the new target.
func (c *Creature) adoptWoundTarget(now cube.Timestamp) {
	for _, w := range c.wounds {
		if now-w.Time >= 2 {
			id := w.By
			c.target = &id
			return
		}
	}
}

func (c *Creature) resolveFightOrClearTarget(occ Occupancy, now cube.Timestamp) {
	if c.target == nil {
		return
	}
	tpos, ok := occ.Locate(*c.target)
	if !ok || c.pos.Chebyshev(tpos) > 1 {
		c.target = nil
		return
	}
	dirs := c.pos.DirectionsTo(tpos)
	if len(dirs) == 0 {
		c.target = nil
		return
	}
	d := dirs[0]
	c.plan = &Plan{Kind: PlanFight, Dir: &d}
}

func (c *Creature) planIdle(now cube.Timestamp) {
	if !rng.Percentage(rng.Seed(c.home, c.pos, now, saltIdleShouldMove), 10) {
		return
	}
	var d cube.Direction
	if c.pos != c.home && rng.Percentage(rng.Seed(c.home, c.pos, now, saltIdleTowardHome), 10) {
		dirs := c.pos.DirectionsTo(c.home)
		if len(dirs) == 0 {
			dirs = cube.Directions[:]
		}
		d = rng.Pick(rng.Seed(c.home, c.pos, now, saltIdleDirHome), dirs)
	} else {
		d = rng.Pick(rng.Seed(c.home, c.pos, now, saltIdleDirAny), cube.Directions[:])
	}
	c.plan = &Plan{Kind: PlanMove, Dir: &d}
}

func (c *Creature) planAggressive(occ Occupancy, ground Ground, now cube.Timestamp, attrs creaturetype.Attributes) {
	if c.target != nil {
		tpos, ok := occ.Locate(*c.target)
		if !ok || c.pos.Chebyshev(tpos) > attrs.GiveUpDistance {
			c.target = nil
		}
	}
	if c.target == nil {
		c.acquireTarget(occ, attrs)
	}
	if c.target == nil {
		c.planIdle(now)
		return
	}
	tpos, ok := occ.Locate(*c.target)
	if !ok {
		c.target = nil
		c.planIdle(now)
		return
	}
	if c.pos.Chebyshev(tpos) <= 1 {
		dirs := c.pos.DirectionsTo(tpos)
		if len(dirs) == 0 {
			return
		}
		d := dirs[0]
		c.plan = &Plan{Kind: PlanFight, Dir: &d}
		return
	}
	dirs := filterWalkable(c.pos.DirectionsTo(tpos), func(d cube.Direction) bool {
		return c.walkable(ground, occ, c.pos.Add(d))
	})
	if len(dirs) == 0 {
		dirs = filterWalkable(cube.Directions[:], func(d cube.Direction) bool {
			return c.walkable(ground, occ, c.pos.Add(d))
		})
	}
	if len(dirs) == 0 {
		return
	}
	d := rng.Pick(rng.Seed(c.home, c.pos, now, saltAggroDir), dirs)
	c.plan = &Plan{Kind: PlanMove, Dir: &d}
}

func (c *Creature) acquireTarget(occ Occupancy, attrs creaturetype.Attributes) {
	candidates := occ.Nearby(c.pos, attrs.AggroDistance)
	best := -1
	var bestID Id
	for _, t := range candidates {
		if t.ID == c.id {
			continue
		}
		if !faction.HostileTo(attrs.Faction, t.Faction) {
			continue
		}
		d := c.pos.Chebyshev(t.Pos)
		if d > attrs.AggroDistance {
			continue
		}
		if best == -1 || d < best {
			best = d
			bestID = t.ID
		}
	}
	if best != -1 {
		c.target = &bestID
	}
}

func filterWalkable(dirs []cube.Direction, ok func(cube.Direction) bool) []cube.Direction {
	out := dirs[:0:0]
	for _, d := range dirs {
		if ok(d) {
			out = append(out, d)
		}
	}
	return out
}
