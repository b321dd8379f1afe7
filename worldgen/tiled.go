package worldgen

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/tile"
)

// ChunkSize is the edge length, in cells, of a Tiled chunk.
const ChunkSize = 32

// Tiled is a finite base map loaded from a declarative legend+grid text
// format: a header mapping single symbols to (Ground, Structure) pairs,
// followed by grid rows. Chunks not present in the source document return a
// neutral Tile.
type Tiled struct {
	chunks map[cube.Pos]map[cube.Pos]tile.Tile
	spawn  cube.Pos
}

var legendLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Symbol", Pattern: `[^\s=/]+`},
	{Name: "Eq", Pattern: `=`},
	{Name: "Slash", Pattern: `/`},
})

// legendEntry is one "SYMBOL = GROUND[/STRUCTURE]" header line.
type legendEntry struct {
	Char      string  `@Symbol "="`
	Ground    string  `@Symbol`
	Structure *string `("/" @Symbol)?`
}

var legendParser = participle.MustBuild[legendEntry](
	participle.Lexer(legendLexer),
	participle.Elide("Whitespace"),
)

var groundNames = map[string]tile.Ground{
	"grass": tile.Grass, "dirt": tile.Dirt, "sand": tile.Sand,
	"water": tile.Water, "stone": tile.Stone, "path": tile.Path,
}

var structureNames = map[string]tile.Structure{
	"air": tile.Air, "wall": tile.Wall, "tree": tile.Tree, "sapling": tile.Sapling,
	"bush": tile.Bush, "berries": tile.Berries, "rock": tile.Rock,
	"pitcher": tile.Pitcher, "crop": tile.Crop, "cropgrown": tile.CropGrown,
	"claimpost": tile.ClaimPost, "floor": tile.Floor,
}

// ParseTiled parses the legend+grid text format described above into a
// Tiled base map. Spaces in a grid row separate symbols and do not occupy a
// column. The grid's top-left corner is placed at (0,0) and the player spawn
// is (0,0); the format has no spawn marker, and WithSpawn overrides it.
func ParseTiled(r *bufio.Scanner) (*Tiled, error) {
	t := &Tiled{chunks: map[cube.Pos]map[cube.Pos]tile.Tile{}}
	legend := map[string]tile.Tile{}
	parsingGrid := false
	y := 0
	for r.Scan() {
		line := r.Text()
		trimmed := strings.TrimSpace(line)
		if !parsingGrid {
			if trimmed == "---" {
				parsingGrid = true
				continue
			}
			if trimmed == "" {
				continue
			}
			entry, err := legendParser.ParseString("", line)
			if err != nil {
				return nil, fmt.Errorf("worldgen: parse legend line %q: %w", line, err)
			}
			g, ok := groundNames[strings.ToLower(entry.Ground)]
			if !ok {
				return nil, fmt.Errorf("worldgen: unknown ground %q", entry.Ground)
			}
			s := tile.Air
			if entry.Structure != nil {
				s, ok = structureNames[strings.ToLower(*entry.Structure)]
				if !ok {
					return nil, fmt.Errorf("worldgen: unknown structure %q", *entry.Structure)
				}
			}
			legend[entry.Char] = tile.Tile{Ground: g, Structure: s}
			continue
		}
		x := 0
		for _, r := range line {
			sym := string(r)
			if sym == " " {
				continue
			}
			tl, ok := legend[sym]
			if !ok {
				return nil, fmt.Errorf("worldgen: grid symbol %q has no legend entry", sym)
			}
			t.set(cube.Pos{X: x, Y: y}, tl)
			x++
		}
		y++
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("worldgen: read tiled map: %w", err)
	}
	return t, nil
}

func chunkOf(p cube.Pos) (chunk, local cube.Pos) {
	return p.DivMod(ChunkSize)
}

func (t *Tiled) set(p cube.Pos, tl tile.Tile) {
	c, local := chunkOf(p)
	m, ok := t.chunks[c]
	if !ok {
		m = map[cube.Pos]tile.Tile{}
		t.chunks[c] = m
	}
	m[local] = tl
}

// neutral is returned for any chunk absent from the source document.
var neutral = tile.Tile{Ground: tile.Grass, Structure: tile.Air}

// Cell implements BaseMap.
func (t *Tiled) Cell(pos cube.Pos, now cube.Timestamp) tile.Tile {
	c, local := chunkOf(pos)
	m, ok := t.chunks[c]
	if !ok {
		return neutral
	}
	tl, ok := m[local]
	if !ok {
		return neutral
	}
	return tl
}

// Region implements BaseMap.
func (t *Tiled) Region(area cube.Area, now cube.Timestamp, f func(cube.Pos, tile.Tile) bool) {
	area.Iter(func(p cube.Pos) bool {
		return f(p, t.Cell(p, now))
	})
}

// PlayerSpawn implements BaseMap.
func (t *Tiled) PlayerSpawn() cube.Pos {
	return t.spawn
}

// WithSpawn returns a copy of t with its default player spawn overridden.
func (t *Tiled) WithSpawn(p cube.Pos) *Tiled {
	c := *t
	c.spawn = p
	return &c
}
