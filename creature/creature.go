// Package creature implements the unified creature body shared by players
// and NPCs (§4.4): position, activity, plan slot, inventory, health,
// wounds, and a mind (player/idle/aggressive) driven from a typed
// CreatureType table.
package creature

import (
	"github.com/tile-ward/gridworld/action"
	"github.com/tile-ward/gridworld/creaturetype"
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/faction"
	"github.com/tile-ward/gridworld/inventory"
	"github.com/tile-ward/gridworld/item"
	"github.com/tile-ward/gridworld/playerid"
	"github.com/tile-ward/gridworld/sound"
	"github.com/tile-ward/gridworld/tile"
)

// PathMaxLength and PathMaxDistance are §6 constants governing
// Direct(Path(...)) controls.
const (
	PathMaxLength   = 16
	PathMaxDistance = 32
)

// Creature is the unified body of a player or NPC.
type Creature struct {
	id   Id
	typ  creaturetype.Kind
	name string
	home cube.Pos

	pos          cube.Pos
	inv          *inventory.Inventory
	health       int
	lastAutoheal cube.Timestamp
	wounds       []Wound

	plan     *Plan
	movement *cube.Direction
	path     []cube.Pos
	activity *Activity
	target   *Id

	heardSounds []sound.Event

	isDead bool
}

// Tile is the per-position occupancy record the CreatureMap (C8) rebuilds
// every tick and the planner consults.
type Tile struct {
	ID       Id
	Faction  faction.Faction
	Blocking bool
	Pos      cube.Pos
}

// Ground is the narrow read interface the planner needs from the terrain
// overlay: just enough to test walkability. worldsim.Map satisfies this
// structurally.
type Ground interface {
	Cell(pos cube.Pos) tile.Tile
}

// Occupancy is the narrow interface the planner needs from the per-tick
// CreatureMap (C8). creatureindex.CreatureMap satisfies this structurally.
type Occupancy interface {
	Get(pos cube.Pos) []Tile
	Blocking(pos cube.Pos, self Tile) bool
	Nearby(center cube.Pos, radius int) []Tile
	Locate(id Id) (cube.Pos, bool)
}

// PlayerSave is the serializable snapshot of a player's body, as persisted
// by the host (§3 WorldSave / PlayerSave).
type PlayerSave struct {
	Name      playerid.PlayerId
	Pos       cube.Pos
	Inventory []item.Stack
	Health    int
}

// LoadPlayer constructs a player Creature from a save record.
func LoadPlayer(id playerid.PlayerId, save PlayerSave) *Creature {
	inv := inventory.New()
	for _, s := range save.Inventory {
		inv.Add(s.Item, s.Count)
	}
	health := save.Health
	if health <= 0 {
		health = creaturetype.Of(creaturetype.Player).MaxHealth
	}
	return &Creature{
		id:     PlayerID(id),
		typ:    creaturetype.Player,
		name:   string(id),
		home:   save.Pos,
		pos:    save.Pos,
		inv:    inv,
		health: health,
	}
}

// SpawnNPC constructs a fresh NPC Creature of kind k at pos, identified by
// its own spawn origin (§3: SpawnId = Pos of origin).
func SpawnNPC(pos cube.Pos, k creaturetype.Kind) *Creature {
	attrs := creaturetype.Of(k)
	return &Creature{
		id:     SpawnID(pos),
		typ:    k,
		name:   attrs.DisplayName,
		home:   pos,
		pos:    pos,
		inv:    inventory.New(),
		health: attrs.MaxHealth,
	}
}

// ID returns the creature's identity.
func (c *Creature) ID() Id { return c.id }

// Type returns the creature's CreatureType kind.
func (c *Creature) Type() creaturetype.Kind { return c.typ }

// Name returns the creature's display name.
func (c *Creature) Name() string { return c.name }

// Pos returns the creature's current position.
func (c *Creature) Pos() cube.Pos { return c.pos }

// Home returns the creature's home position (spawn origin for NPCs, save
// position at last login for players).
func (c *Creature) Home() cube.Pos { return c.home }

// Inventory returns the creature's inventory.
func (c *Creature) Inventory() *inventory.Inventory { return c.inv }

// Health returns the raw (possibly negative, while dying) health value.
func (c *Creature) Health() int { return c.health }

// ClampedHealth returns health clamped into [0, max], as required for views.
func (c *Creature) ClampedHealth() (current, max int) {
	attrs := creaturetype.Of(c.typ)
	h := c.health
	if h < 0 {
		h = 0
	}
	if h > attrs.MaxHealth {
		h = attrs.MaxHealth
	}
	return h, attrs.MaxHealth
}

// IsDead reports whether the creature has died.
func (c *Creature) IsDead() bool { return c.isDead }

// Activity returns the creature's current Activity, if any.
func (c *Creature) Activity() *Activity { return c.activity }

// Plan returns the creature's currently pending Plan, if any.
func (c *Creature) Plan() *Plan { return c.plan }

// ClearPlan takes the pending Plan out of the creature's plan slot.
func (c *Creature) ClearPlan() *Plan {
	p := c.plan
	c.plan = nil
	return p
}

// SetPos forcibly relocates the creature without an accompanying Walk
// activity. The tick's executor moves creatures through MoveTo instead.
func (c *Creature) SetPos(p cube.Pos) { c.pos = p }

// Faction returns the creature's hostility-table faction.
func (c *Creature) Faction() faction.Faction {
	return creaturetype.Of(c.typ).Faction
}

// Blocking reports whether the creature occupies its tile in a
// movement-blocking way.
func (c *Creature) Blocking() bool {
	return creaturetype.Of(c.typ).Blocking
}

// Target returns the creature's current attack target, if any.
func (c *Creature) Target() *Id { return c.target }

// HeardSounds returns the sounds queued for delivery this tick.
func (c *Creature) HeardSounds() []sound.Event { return c.heardSounds }

// Hear appends a sound event to the creature's outbound queue.
func (c *Creature) Hear(e sound.Event) { c.heardSounds = append(c.heardSounds, e) }

// Wounds returns the creature's wounds, newest first.
func (c *Creature) Wounds() []Wound { return c.wounds }

// CanAct reports whether the creature is free to plan/execute at tick now.
func (c *Creature) CanAct(now cube.Timestamp) bool {
	return c.activity == nil || now >= c.activity.End
}

// Save produces a PlayerSave snapshot. Valid only for player creatures.
func (c *Creature) Save() PlayerSave {
	return PlayerSave{
		Name:      c.id.Player(),
		Pos:       c.pos,
		Inventory: c.inv.Slots(),
		Health:    c.health,
	}
}

// Control applies a single client control (§4.4).
func (c *Creature) Control(ctrl action.Control) {
	if ctrl.Plan != nil {
		c.plan = planFromInput(*ctrl.Plan)
		c.path = nil
		return
	}
	d := ctrl.Direct
	if d == nil {
		return
	}
	switch d.Kind {
	case action.DirectMoveItem:
		c.inv.MoveItem(d.MoveFrom, d.MoveTo)
	case action.DirectMovement:
		if d.Movement != nil {
			dir := *d.Movement
			c.movement = &dir
			c.path = nil
			c.plan = &Plan{Kind: PlanMove, Dir: &dir}
		} else {
			c.movement = nil
		}
	case action.DirectPath:
		c.path = truncatePath(c.pos, d.Path)
		c.movement = nil
	}
}

func planFromInput(in action.PlanInput) *Plan {
	switch in.Kind {
	case action.PlanMove:
		return &Plan{Kind: PlanMove, Dir: in.Dir}
	case action.PlanUse:
		idx := 0
		if in.Idx != nil {
			idx = *in.Idx
		}
		return &Plan{Kind: PlanUse, Dir: in.Dir, Idx: idx}
	case action.PlanTake:
		return &Plan{Kind: PlanTake, Dir: in.Dir}
	case action.PlanInspect:
		return &Plan{Kind: PlanInspect, Dir: in.Dir}
	case action.PlanFight:
		return &Plan{Kind: PlanFight, Dir: in.Dir}
	case action.PlanInteract:
		idx := -1
		if in.Idx != nil {
			idx = *in.Idx
		}
		return &Plan{Kind: PlanUse, Dir: in.Dir, Idx: idx}
	}
	return nil
}

// truncatePath enforces §6/§8's path bounds: at most PathMaxLength entries,
// each within PathMaxDistance of pos.
func truncatePath(pos cube.Pos, raw []cube.Pos) []cube.Pos {
	out := make([]cube.Pos, 0, PathMaxLength)
	for _, p := range raw {
		if len(out) >= PathMaxLength {
			break
		}
		if pos.Chebyshev(p) > PathMaxDistance {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MoveTo relocates the creature, emitting a Walk activity (§4.4).
func (c *Creature) MoveTo(newPos cube.Pos, now cube.Timestamp) {
	attrs := creaturetype.Of(c.typ)
	c.activity = &Activity{Kind: ActivityWalk, From: c.pos, Start: now, End: now + cube.Timestamp(attrs.WalkCooldown)}
	c.pos = newPos
}

// Attack applies damage from c to opponent, emitting an Attack activity on c
// and a fresh Wound on opponent (§4.4).
func (c *Creature) Attack(opponent *Creature, now cube.Timestamp, rind uint32) {
	attrs := creaturetype.Of(c.typ)
	c.target = ptrID(opponent.id)
	opponent.health -= attrs.AttackDamage
	c.activity = &Activity{Kind: ActivityAttack, Start: now, End: now + cube.Timestamp(attrs.AttackCooldown)}
	w := Wound{Damage: attrs.AttackDamage, Time: now, Rind: rind, By: c.id}
	opponent.wounds = append([]Wound{w}, opponent.wounds...)
}

func ptrID(id Id) *Id { return &id }

// Update advances mortality and autoheal state for one tick (§4.4).
func (c *Creature) Update(now cube.Timestamp) {
	attrs := creaturetype.Of(c.typ)
	if attrs.Mortal && c.health <= 0 {
		if !c.isDead {
			c.isDead = true
			c.activity = &Activity{Kind: ActivityDie, Start: now, End: now + DieDuration}
		}
		return
	}
	if c.health >= attrs.MaxHealth {
		c.lastAutoheal = 0
		return
	}
	if attrs.Autoheal == nil {
		return
	}
	// lastAutoheal == 0 here means health just dropped below max (the
	// full-health branch above is the only place it's cleared back to 0),
	// so this is the tick the cooldown starts counting from.
	if c.lastAutoheal == 0 {
		c.lastAutoheal = now
	}
	if now >= c.lastAutoheal+cube.Timestamp(attrs.Autoheal.Cooldown) {
		c.health += attrs.Autoheal.Amount
		if c.health > attrs.MaxHealth {
			c.health = attrs.MaxHealth
		}
		c.lastAutoheal = now
	}
}

// Reset clears per-tick scratch state (§4.4): heard sounds always, expired
// activity and stale wounds conditionally.
func (c *Creature) Reset(now cube.Timestamp) {
	c.heardSounds = nil
	if c.activity != nil && c.activity.End <= now {
		c.activity = nil
	}
	if len(c.wounds) > 0 {
		kept := c.wounds[:0]
		for _, w := range c.wounds {
			if now-w.Time <= WoundLifetime {
				kept = append(kept, w)
			}
		}
		c.wounds = kept
	}
}

// IsDying reports whether a dead creature is still within its Die animation
// window at tick now, used to decide whether it still appears in dynamics.
func (c *Creature) IsDying(now cube.Timestamp) bool {
	return c.isDead && c.activity != nil && c.activity.Kind == ActivityDie && now <= c.activity.End
}
