package tile

import (
	"testing"

	"github.com/tile-ward/gridworld/item"
)

func TestTakeBush(t *testing.T) {
	tl := Tile{Ground: Grass, Structure: Berries}
	residue, picked, ok := tl.Take()
	if !ok || picked != item.Berry || residue.Structure != Bush {
		t.Fatalf("unexpected take result: %+v %v %v", residue, picked, ok)
	}
}

func TestTakeNoPickupRule(t *testing.T) {
	tl := Tile{Ground: Grass, Structure: Air}
	if _, _, ok := tl.Take(); ok {
		t.Fatal("bare ground should have no pickup rule")
	}
}

func TestGrowSapling(t *testing.T) {
	tl := Tile{Ground: Grass, Structure: Sapling}
	delay, next, _, hasShoot, ok := tl.Grow()
	if !ok || next != Tree || hasShoot || delay <= 0 {
		t.Fatalf("unexpected growth: delay=%d next=%v hasShoot=%v ok=%v", delay, next, hasShoot, ok)
	}
}

func TestGrowNoSchedule(t *testing.T) {
	tl := Tile{Ground: Grass, Structure: Wall}
	if _, _, _, _, ok := tl.Grow(); ok {
		t.Fatal("a wall has no growth schedule")
	}
}

func TestInteractClaim(t *testing.T) {
	tl := Tile{Ground: Grass, Structure: Air}
	in, ok := tl.Interact(item.ClaimPost, 0)
	if !ok || !in.Claim {
		t.Fatalf("expected a claim interaction, got %+v ok=%v", in, ok)
	}
}

func TestBlocking(t *testing.T) {
	if !(Tile{Structure: Wall}).Blocking() {
		t.Fatal("wall should block")
	}
	if (Tile{Structure: Air}).Blocking() {
		t.Fatal("air should not block")
	}
}
