package worldsim

import (
	"bufio"
	"strings"
	"testing"

	"github.com/tile-ward/gridworld/action"
	"github.com/tile-ward/gridworld/creature"
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/item"
	"github.com/tile-ward/gridworld/playerid"
	"github.com/tile-ward/gridworld/tile"
	"github.com/tile-ward/gridworld/worldgen"
)

func openMap(t *testing.T) *worldgen.Tiled {
	t.Helper()
	m, err := worldgen.ParseTiled(bufio.NewScanner(strings.NewReader("")))
	if err != nil {
		t.Fatalf("parse empty tiled map: %v", err)
	}
	return m
}

func join(t *testing.T, w *World, name string, cfg action.PlayerConfig) (playerid.PlayerId, *creature.Creature) {
	t.Helper()
	id, err := playerid.New(name)
	if err != nil {
		t.Fatalf("playerid.New(%q): %v", name, err)
	}
	c := w.AddPlayer(id, nil, cfg)
	return id, c
}

func defaultCfg() action.PlayerConfig {
	return action.PlayerConfig{ViewSize: action.DefaultViewSize, ViewOffset: action.DefaultViewOffset}
}

// TestWalkScenario covers S1: a move plan resolves after the walk cooldown
// elapses, leaving the creature idle with an updated position.
func TestWalkScenario(t *testing.T) {
	w := New(openMap(t))
	id, alice := join(t, w, "Alice", defaultCfg())

	dir := cube.East
	w.ApplyControl(id, action.Control{Plan: &action.PlanInput{Kind: action.PlanMove, Dir: &dir}})

	w.Tick() // tick 1: plan -> move executes, walk cooldown (2 ticks) starts
	w.ClearStep()
	w.Tick() // tick 2: still on cooldown
	w.ClearStep()
	w.Tick() // tick 3: cooldown elapsed, activity clears on reset
	w.ClearStep()

	if alice.Pos() != (cube.Pos{X: 1, Y: 0}) {
		t.Fatalf("pos = %v, want (1,0)", alice.Pos())
	}
	if alice.Activity() != nil {
		t.Fatalf("expected no activity once cooldown elapses, got %+v", alice.Activity())
	}
}

// TestBlockedScenario covers S2: a wall at the target position makes a move
// a silent no-op.
func TestBlockedScenario(t *testing.T) {
	w := New(openMap(t))
	id, alice := join(t, w, "Alice", defaultCfg())

	start := alice.Pos()
	wallPos := start.Add(cube.East)
	wallTile := w.m.Cell(wallPos)
	wallTile.Structure = tile.Wall
	w.m.Set(wallPos, wallTile)

	dir := cube.East
	w.ApplyControl(id, action.Control{Plan: &action.PlanInput{Kind: action.PlanMove, Dir: &dir}})
	w.Tick()
	w.ClearStep()
	w.Tick()
	w.ClearStep()

	if alice.Pos() != start {
		t.Fatalf("expected Alice to remain at %v, got %v", start, alice.Pos())
	}
}

// TestClaimDistanceScenario covers S4: a second player's claim attempt too
// close to an existing claim fails; far enough away it succeeds.
func TestClaimDistanceScenario(t *testing.T) {
	w := New(openMap(t))
	aliceID, alice := join(t, w, "Alice", defaultCfg())
	alice.SetPos(cube.Pos{X: 100, Y: 100})

	claimAt := func(id playerid.PlayerId, c *creature.Creature, pos cube.Pos) {
		c.SetPos(pos)
		c.Inventory().Add(item.ClaimPost, 1)
		w.interact(c, pos, item.ClaimPost)
	}
	claimAt(aliceID, alice, cube.Pos{X: 100, Y: 100})
	if _, ok := w.claims[aliceID]; !ok {
		t.Fatalf("expected Alice's claim to succeed")
	}

	bobID, bob := join(t, w, "Bob", defaultCfg())
	claimAt(bobID, bob, cube.Pos{X: 130, Y: 100})
	if _, ok := w.claims[bobID]; ok {
		t.Fatalf("expected Bob's too-close claim to fail")
	}

	claimAt(bobID, bob, cube.Pos{X: 200, Y: 200})
	if _, ok := w.claims[bobID]; !ok {
		t.Fatalf("expected Bob's far-enough claim to succeed")
	}
}

// TestCombatScenario covers S5: an adjacent hostile creature's Fight plan
// damages the victim and leaves a traceable wound.
func TestCombatScenario(t *testing.T) {
	w := New(openMap(t))
	_, alice := join(t, w, "Alice", defaultCfg())
	worm := w.idx.Spawn(alice.Pos().Add(cube.West), "worm", w.now)

	dir := cube.East
	worm.Control(action.Control{Plan: &action.PlanInput{Kind: action.PlanFight, Dir: &dir}})

	startHealth := alice.Health()
	w.Tick()

	if alice.Health() != startHealth-5 {
		t.Fatalf("alice health = %d, want %d", alice.Health(), startHealth-5)
	}
	if len(alice.Wounds()) != 1 || alice.Wounds()[0].By != worm.ID() {
		t.Fatalf("expected wound from worm, got %+v", alice.Wounds())
	}
}
