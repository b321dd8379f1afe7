package worldgen

import (
	"bufio"
	"strings"
	"testing"

	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/tile"
)

const fixtureMap = `
. = grass
# = grass/wall
~ = water
---
. . . # .
. . . # .
~ ~ . . .
`

func TestParseTiled(t *testing.T) {
	m, err := ParseTiled(bufio.NewScanner(strings.NewReader(fixtureMap)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := m.Cell(cube.Pos{0, 0}, 0); got.Ground != tile.Grass || got.Structure != tile.Air {
		t.Fatalf("unexpected cell at origin: %+v", got)
	}
	if got := m.Cell(cube.Pos{3, 0}, 0); got.Structure != tile.Wall {
		t.Fatalf("expected a wall at (3,0), got %+v", got)
	}
	if got := m.Cell(cube.Pos{0, 2}, 0); got.Ground != tile.Water {
		t.Fatalf("expected water at (0,2), got %+v", got)
	}
}

func TestParseTiledOutOfBoundsIsNeutral(t *testing.T) {
	m, err := ParseTiled(bufio.NewScanner(strings.NewReader(fixtureMap)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := m.Cell(cube.Pos{500, 500}, 0)
	if got != neutral {
		t.Fatalf("expected neutral tile far outside the document, got %+v", got)
	}
}
