package worldsim

import (
	"github.com/tile-ward/gridworld/action"
	"github.com/tile-ward/gridworld/creature"
	"github.com/tile-ward/gridworld/creatureindex"
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/faction"
	"github.com/tile-ward/gridworld/inventory"
	"github.com/tile-ward/gridworld/item"
	"github.com/tile-ward/gridworld/loaded"
	"github.com/tile-ward/gridworld/playerid"
	"github.com/tile-ward/gridworld/rng"
	"github.com/tile-ward/gridworld/sound"
	"github.com/tile-ward/gridworld/view"
	"github.com/tile-ward/gridworld/worldgen"
)

// Claim/build distance constants (§6).
const (
	ClaimExclusion = 64
	SpawnExclusion = 96
	BuildRadius    = 24
)

// World owns the terrain overlay, the creature index and the loaded-area
// tracker, and arbitrates the per-tick simulation (C10).
type World struct {
	m      *Map
	idx    *creatureindex.CreatureIndex
	areas  *loaded.LoadedAreas
	claims map[playerid.PlayerId]cube.Pos
	config map[playerid.PlayerId]action.PlayerConfig
	now    cube.Timestamp
}

// New constructs a fresh World atop base.
func New(base worldgen.BaseMap) *World {
	return &World{
		m:      NewMap(base),
		idx:    creatureindex.New(),
		areas:  loaded.New(),
		claims: make(map[playerid.PlayerId]cube.Pos),
		config: make(map[playerid.PlayerId]action.PlayerConfig),
	}
}

// Now returns the current tick.
func (w *World) Now() cube.Timestamp { return w.now }

// AddPlayer admits a player, spawning at the base map's default spawn
// position when save is nil (a fresh account).
func (w *World) AddPlayer(id playerid.PlayerId, save *creature.PlayerSave, cfg action.PlayerConfig) *creature.Creature {
	if save == nil {
		save = &creature.PlayerSave{Name: id, Pos: w.m.PlayerSpawn()}
	}
	w.config[id] = cfg.Clamp()
	return w.idx.AddPlayer(id, *save)
}

// Configure updates a player's clamped view configuration.
func (w *World) Configure(id playerid.PlayerId, cfg action.PlayerConfig) {
	w.config[id] = cfg.Clamp()
}

// RemovePlayer saves and removes a player, dropping their loaded-area state.
// Their claim stays recorded.
func (w *World) RemovePlayer(id playerid.PlayerId) (creature.PlayerSave, bool) {
	w.areas.Remove(id)
	save, ok := w.idx.RemovePlayer(id)
	return save, ok
}

// SavePlayer snapshots a player without removing them.
func (w *World) SavePlayer(id playerid.PlayerId) (creature.PlayerSave, bool) {
	return w.idx.SavePlayer(id)
}

// ApplyControl feeds a single client control to the named player's body.
func (w *World) ApplyControl(id playerid.PlayerId, ctrl action.Control) {
	if c, ok := w.idx.GetCreature(creature.PlayerID(id)); ok {
		c.Control(ctrl)
	}
}

// Tick advances the simulation by exactly one tick (§4.7).
func (w *World) Tick() {
	w.m.Flush()
	w.now++
	w.updateCreatures()
	w.updateLoadedAreas()
	w.spawnCreatures()
}

func (w *World) updateCreatures() {
	live := w.idx.All()
	cmap := creatureindex.Build(live)
	for _, c := range live {
		if c.CanAct(w.now) {
			c.PlanTick(cmap, w.m, w.now)
		}
	}
	for _, c := range live {
		if plan := c.ClearPlan(); plan != nil {
			w.executePlan(c, plan, cmap)
		}
	}
	for _, c := range live {
		c.Update(w.now)
	}
}

func (w *World) executePlan(c *creature.Creature, plan *creature.Plan, cmap *creatureindex.CreatureMap) {
	switch plan.Kind {
	case creature.PlanMove:
		w.executeMove(c, plan, cmap)
	case creature.PlanInspect:
		w.executeInspect(c, plan, cmap)
	case creature.PlanTake:
		w.executeTake(c, plan)
	case creature.PlanUse:
		w.executeUse(c, plan)
	case creature.PlanFight:
		w.executeFight(c, plan, cmap)
	}
}

func (w *World) executeMove(c *creature.Creature, plan *creature.Plan, cmap *creatureindex.CreatureMap) {
	if plan.Dir == nil {
		return
	}
	target := c.Pos().Add(*plan.Dir)
	self := creature.Tile{ID: c.ID(), Faction: c.Faction(), Blocking: c.Blocking(), Pos: c.Pos()}
	if w.m.Cell(target).Blocking() || cmap.Blocking(target, self) {
		return
	}
	cmap.MoveCreature(self, c.Pos(), target)
	c.MoveTo(target, w.now)
}

func (w *World) executeInspect(c *creature.Creature, plan *creature.Plan, cmap *creatureindex.CreatureMap) {
	if plan.Dir == nil {
		return
	}
	target := c.Pos().Add(*plan.Dir)
	text := w.m.Cell(target).Inspect()
	for _, t := range cmap.Get(target) {
		if t.ID == c.ID() {
			continue
		}
		if other, ok := w.idx.GetCreature(t.ID); ok {
			text += " | " + other.Name()
		}
	}
	c.Hear(sound.Event{Kind: sound.Explain, Text: text})
}

func (w *World) executeTake(c *creature.Creature, plan *creature.Plan) {
	if plan.Dir == nil {
		return
	}
	pos := c.Pos().Add(*plan.Dir)
	if it, ok := w.m.Take(pos); ok {
		c.Inventory().Add(it, 1)
		return
	}
	w.interact(c, pos, item.Nothing)
}

func (w *World) executeUse(c *creature.Creature, plan *creature.Plan) {
	if plan.Dir == nil {
		return
	}
	pos := c.Pos().Add(*plan.Dir)
	it := item.Nothing
	if plan.Idx >= 0 && plan.Idx < c.Inventory().Len() {
		it = c.Inventory().GetItem(plan.Idx)
	}
	w.interact(c, pos, it)
}

func (w *World) executeFight(c *creature.Creature, plan *creature.Plan, cmap *creatureindex.CreatureMap) {
	if plan.Dir == nil {
		return
	}
	pos := c.Pos().Add(*plan.Dir)
	for _, t := range cmap.Get(pos) {
		if t.ID == c.ID() {
			continue
		}
		opp, ok := w.idx.GetCreature(t.ID)
		if !ok || !faction.HostileTo(c.Faction(), opp.Faction()) {
			continue
		}
		rind := rng.IdentitySeed(c.Home(), c.Pos(), w.now, 7331)
		c.Attack(opp, w.now, rind)
		return
	}
}

// interact resolves a tile's static Interaction table against a wielded
// item, applying claim/build gating, cost payment and tile mutation in the
// order spec.md §4.7 requires.
func (w *World) interact(c *creature.Creature, pos cube.Pos, it item.Item) {
	t := w.m.Cell(pos)
	in, ok := t.Interact(it, int64(w.now))
	if !ok {
		return
	}
	if in.Claim && !w.checkClaim(c, pos) {
		return
	}
	if in.Build && !w.checkBuild(c, pos) {
		return
	}
	if !c.Inventory().Pay(in.Cost) {
		return
	}
	for _, got := range in.Items {
		c.Inventory().Add(got, 1)
	}
	if in.Remains != nil || in.RemainsGround != nil {
		cur := w.m.Cell(pos)
		if in.Remains != nil {
			cur.Structure = *in.Remains
		}
		if in.RemainsGround != nil {
			cur.Ground = *in.RemainsGround
		}
		w.m.Set(pos, cur)
	}
	if in.Claim && c.ID().IsPlayer() {
		w.claims[c.ID().Player()] = pos
	}
	if in.Message != nil {
		c.Hear(*in.Message)
	}
}

func (w *World) checkClaim(c *creature.Creature, pos cube.Pos) bool {
	if !c.ID().IsPlayer() {
		return false
	}
	pid := c.ID().Player()
	if _, already := w.claims[pid]; already {
		c.Hear(sound.Event{Kind: sound.BuildError, Text: "You already have a claim."})
		return false
	}
	for _, q := range w.claims {
		if pos.Chebyshev(q) < ClaimExclusion {
			c.Hear(sound.Event{Kind: sound.BuildError, Text: "Too close to existing claim"})
			return false
		}
	}
	if pos.Chebyshev(w.m.PlayerSpawn()) < SpawnExclusion {
		c.Hear(sound.Event{Kind: sound.BuildError, Text: "Too close to spawn"})
		return false
	}
	return true
}

func (w *World) checkBuild(c *creature.Creature, pos cube.Pos) bool {
	if !c.ID().IsPlayer() {
		return false
	}
	claim, ok := w.claims[c.ID().Player()]
	if !ok || pos.Chebyshev(claim) > BuildRadius {
		c.Hear(sound.Event{Kind: sound.BuildError, Text: "Outside your claim"})
		return false
	}
	return true
}

func (w *World) updateLoadedAreas() {
	players := make(map[playerid.PlayerId]loaded.PlayerBody)
	viewSize := make(map[playerid.PlayerId]cube.Pos)
	viewOffset := make(map[playerid.PlayerId]int)
	for _, c := range w.idx.IterPlayers() {
		pid := c.ID().Player()
		players[pid] = c
		cfg, ok := w.config[pid]
		if !ok {
			cfg = action.PlayerConfig{ViewSize: action.DefaultViewSize, ViewOffset: action.DefaultViewOffset}.Clamp()
		}
		viewSize[pid] = cfg.ViewSize
		viewOffset[pid] = cfg.ViewOffset
	}
	w.areas.Update(players, viewSize, viewOffset)
	for _, c := range w.idx.IterPlayers() {
		if fresh, ok := w.areas.Fresh(c.ID().Player()); ok {
			w.m.LoadArea(fresh)
		}
	}
	w.m.Tick(w.now, w.areas.AllLoaded())
}

func (w *World) spawnCreatures() {
	for _, e := range w.m.Spawns() {
		w.idx.Spawn(e.Pos, e.Kind, w.now)
	}
	w.idx.Despawn(w.areas, w.now)
}

// View assembles the full per-player WorldMessage set for the current tick
// (§4.8).
func (w *World) View() map[playerid.PlayerId]view.WorldMessage {
	changes := make(map[cube.Pos]view.TileView)
	for pos, t := range w.m.Modified() {
		changes[pos] = view.TileView{Sprites: t.Sprites()}
	}

	var dynamics []creature.View
	for _, c := range w.idx.All() {
		dynamics = append(dynamics, c.View())
	}
	for _, c := range w.idx.Dead() {
		if c.IsDying(w.now) {
			dynamics = append(dynamics, c.View())
		}
	}

	players := w.idx.IterPlayers()
	out := make(map[playerid.PlayerId]view.WorldMessage, len(players))
	for _, c := range players {
		pid := c.ID().Player()
		msg := view.WorldMessage{
			Tick:     w.now,
			ViewArea: w.areas.Loaded(pid),
			Dynamics: dynamics,
			Sounds:   c.HeardSounds(),
		}
		if len(changes) > 0 {
			msg.Change = changes
		}
		if fresh, ok := w.areas.Fresh(pid); ok {
			sv := w.m.View(fresh)
			msg.Section = &sv
		}
		ext := c.ViewExt()
		msg.Me = &ext
		invView := inventory.ViewOf(c.Inventory())
		msg.Inventory = &invView
		out[pid] = msg
	}
	return out
}

// ClearStep resets every creature's per-tick scratch state; callers run it
// immediately after View() (§4.7 clear_step).
func (w *World) ClearStep() {
	for _, id := range w.idx.Ids() {
		if c, ok := w.idx.GetCreature(id); ok {
			c.Reset(w.now)
		}
	}
}
