package creature

import (
	"testing"

	"github.com/tile-ward/gridworld/action"
	"github.com/tile-ward/gridworld/creaturetype"
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/faction"
	"github.com/tile-ward/gridworld/playerid"
	"github.com/tile-ward/gridworld/tile"
)

// openGround reports every cell as open, unblocked terrain.
type openGround struct{}

func (openGround) Cell(cube.Pos) tile.Tile { return tile.Tile{} }

// soloOccupancy reports a world with no creature but self.
type soloOccupancy struct{}

func (soloOccupancy) Get(cube.Pos) []Tile                { return nil }
func (soloOccupancy) Blocking(cube.Pos, Tile) bool       { return false }
func (soloOccupancy) Nearby(cube.Pos, int) []Tile        { return nil }
func (soloOccupancy) Locate(Id) (cube.Pos, bool)         { return cube.Pos{}, false }

func newPlayer(t *testing.T, pos cube.Pos) *Creature {
	t.Helper()
	id, err := playerid.New("Alice")
	if err != nil {
		t.Fatalf("parse player id: %v", err)
	}
	return LoadPlayer(id, PlayerSave{Name: id, Pos: pos, Health: 0})
}

func TestControlDirectPathTruncatesLength(t *testing.T) {
	c := newPlayer(t, cube.Pos{})
	raw := make([]cube.Pos, PathMaxLength+10)
	for i := range raw {
		raw[i] = cube.Pos{X: i, Y: 0}
	}
	c.Control(action.Control{Direct: &action.DirectChange{Kind: action.DirectPath, Path: raw}})
	if len(c.path) != PathMaxLength {
		t.Fatalf("path len = %d, want %d", len(c.path), PathMaxLength)
	}
}

func TestControlDirectPathDropsFarPositions(t *testing.T) {
	c := newPlayer(t, cube.Pos{})
	raw := []cube.Pos{{X: 1, Y: 0}, {X: PathMaxDistance + 5, Y: 0}, {X: 2, Y: 0}}
	c.Control(action.Control{Direct: &action.DirectChange{Kind: action.DirectPath, Path: raw}})
	for _, p := range c.path {
		if c.pos.Chebyshev(p) > PathMaxDistance {
			t.Fatalf("path retained out-of-range pos %v", p)
		}
	}
	if len(c.path) != 2 {
		t.Fatalf("path len = %d, want 2", len(c.path))
	}
}

func TestControlStickyMovementPlansEveryTick(t *testing.T) {
	c := newPlayer(t, cube.Pos{})
	dir := cube.East
	c.Control(action.Control{Direct: &action.DirectChange{Kind: action.DirectMovement, Movement: &dir}})
	if c.plan == nil || c.plan.Kind != PlanMove || *c.plan.Dir != cube.East {
		t.Fatalf("expected immediate Move plan from sticky movement, got %+v", c.plan)
	}
	c.ClearPlan()
	c.PlanTick(soloOccupancy{}, openGround{}, 5)
	if c.plan == nil || *c.plan.Dir != cube.East {
		t.Fatalf("sticky movement did not replan next tick: %+v", c.plan)
	}
}

func TestControlPlanMoveOverridesPath(t *testing.T) {
	c := newPlayer(t, cube.Pos{})
	c.path = []cube.Pos{{X: 5, Y: 5}}
	dir := cube.North
	c.Control(action.Control{Plan: &action.PlanInput{Kind: action.PlanMove, Dir: &dir}})
	if len(c.path) != 0 {
		t.Fatalf("expected path cleared by explicit Plan control")
	}
	if c.plan == nil || c.plan.Kind != PlanMove {
		t.Fatalf("expected Move plan, got %+v", c.plan)
	}
}

func TestMoveToSetsWalkActivity(t *testing.T) {
	c := newPlayer(t, cube.Pos{})
	c.MoveTo(cube.Pos{X: 1, Y: 0}, 10)
	if c.pos != (cube.Pos{X: 1, Y: 0}) {
		t.Fatalf("pos not updated: %v", c.pos)
	}
	if c.activity == nil || c.activity.Kind != ActivityWalk {
		t.Fatalf("expected Walk activity, got %+v", c.activity)
	}
	if c.CanAct(10) {
		t.Fatalf("creature should be busy immediately after moving")
	}
	if !c.CanAct(c.activity.End) {
		t.Fatalf("creature should be free once activity.End reached")
	}
}

func TestAttackAppliesDamageAndWound(t *testing.T) {
	attacker := SpawnNPC(cube.Pos{}, "worm")
	victim := newPlayer(t, cube.Pos{X: 1, Y: 0})
	startHealth := victim.Health()
	attacker.Attack(victim, 3, 42)

	attrs := creaturetype.Of("worm")
	if victim.Health() != startHealth-attrs.AttackDamage {
		t.Fatalf("victim health = %d, want %d", victim.Health(), startHealth-attrs.AttackDamage)
	}
	if len(victim.wounds) != 1 || victim.wounds[0].By != attacker.id {
		t.Fatalf("expected one wound from attacker, got %+v", victim.wounds)
	}
	if attacker.activity == nil || attacker.activity.Kind != ActivityAttack {
		t.Fatalf("expected Attack activity on attacker, got %+v", attacker.activity)
	}
	if attacker.target == nil || *attacker.target != victim.id {
		t.Fatalf("expected attacker target set to victim")
	}
}

// TestUpdateMortality covers invariant 10: a mortal creature with health <= 0
// becomes dead and enters a bounded Die activity window.
func TestUpdateMortality(t *testing.T) {
	c := newPlayer(t, cube.Pos{})
	c.health = 0
	c.Update(7)
	if !c.IsDead() {
		t.Fatalf("expected creature to be dead")
	}
	if c.activity == nil || c.activity.Kind != ActivityDie || c.activity.End != 7+DieDuration {
		t.Fatalf("expected bounded Die activity, got %+v", c.activity)
	}
	if !c.IsDying(7) || c.IsDying(7+DieDuration+1) {
		t.Fatalf("IsDying window incorrect: activity=%+v", c.activity)
	}
}

func TestUpdateAutoheal(t *testing.T) {
	c := newPlayer(t, cube.Pos{})
	attrs := creaturetype.Of(creaturetype.Player)
	c.health = attrs.MaxHealth - 5
	// The first tick spent below max health starts the cooldown timer.
	c.Update(10)
	c.Update(cube.Timestamp(10 + attrs.Autoheal.Cooldown))
	if c.health != attrs.MaxHealth-5+attrs.Autoheal.Amount {
		t.Fatalf("health after autoheal = %d", c.health)
	}
}

func TestResetClearsExpiredActivityAndStaleWounds(t *testing.T) {
	c := newPlayer(t, cube.Pos{})
	c.activity = &Activity{Kind: ActivityWalk, Start: 0, End: 2}
	c.wounds = []Wound{{Time: 0}, {Time: 5}}
	c.Reset(5 + WoundLifetime + 1)
	if c.activity != nil {
		t.Fatalf("expected expired activity cleared")
	}
	if len(c.wounds) != 0 {
		t.Fatalf("expected all wounds stale, got %+v", c.wounds)
	}
}

func TestPlanIdleEventuallyProducesMove(t *testing.T) {
	c := SpawnNPC(cube.Pos{X: 3, Y: 3}, "frog")
	found := false
	for tick := cube.Timestamp(0); tick < 200; tick++ {
		c.plan = nil
		c.PlanTick(soloOccupancy{}, openGround{}, tick)
		if c.plan != nil {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("idle mind never produced a move plan across 200 ticks")
	}
}

// aggroOccupancy places a single hostile wildlife target at a fixed pos.
type aggroOccupancy struct {
	target Tile
}

func (a aggroOccupancy) Get(cube.Pos) []Tile { return []Tile{a.target} }
func (a aggroOccupancy) Blocking(cube.Pos, Tile) bool { return false }
func (a aggroOccupancy) Nearby(cube.Pos, int) []Tile { return []Tile{a.target} }
func (a aggroOccupancy) Locate(id Id) (cube.Pos, bool) {
	if id == a.target.ID {
		return a.target.Pos, true
	}
	return cube.Pos{}, false
}

func TestPlanAggressiveAcquiresAndFightsAdjacentTarget(t *testing.T) {
	worm := SpawnNPC(cube.Pos{X: 0, Y: 0}, "worm")
	victim := SpawnID(cube.Pos{X: 1, Y: 0})
	occ := aggroOccupancy{target: Tile{ID: victim, Faction: faction.Player, Pos: cube.Pos{X: 1, Y: 0}}}
	worm.PlanTick(occ, openGround{}, 1)
	if worm.plan == nil || worm.plan.Kind != PlanFight {
		t.Fatalf("expected worm to fight adjacent hostile target, got %+v", worm.plan)
	}
	if worm.target == nil || *worm.target != victim {
		t.Fatalf("expected worm target acquired")
	}
}

func TestPlanAggressiveDropsTargetNoLongerLocated(t *testing.T) {
	worm := SpawnNPC(cube.Pos{X: 0, Y: 0}, "worm")
	far := SpawnID(cube.Pos{X: 50, Y: 50})
	worm.target = &far
	occ := soloOccupancy{}
	worm.PlanTick(occ, openGround{}, 1)
	if worm.target != nil {
		t.Fatalf("expected target dropped when no longer located")
	}
}
