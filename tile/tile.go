// Package tile declares the closed Ground/Structure enumerations that make
// up a Tile, and the static attribute tables attached to them: sprites,
// blocking, the interaction table, growth schedule and spawn metadata. Both
// enumerations are tagged unions dispatched by pattern match or per-variant
// static table, never a dynamic subtype hierarchy (§9 of the specification).
package tile

import (
	"github.com/tile-ward/gridworld/creaturetype"
	"github.com/tile-ward/gridworld/item"
	"github.com/tile-ward/gridworld/sound"
)

// Ground is the closed enumeration of terrain base layers.
type Ground int

const (
	Grass Ground = iota
	Dirt
	Sand
	Water
	Stone
	Path
	TilledSoil
)

// Structure is the closed enumeration of terrain overlays.
type Structure int

const (
	Air Structure = iota
	Wall
	Tree
	Sapling
	Bush
	Berries
	Rock
	Pitcher
	Crop
	CropGrown
	ClaimPost
	Floor
)

// Tile is a terrain cell: the pairing of a Ground and a Structure.
type Tile struct {
	Ground    Ground
	Structure Structure
}

// groundAttrs is the static per-Ground attribute row.
type groundAttrs struct {
	Sprite      string
	SelfRestore bool // true if the ground reverts to its base value over time (e.g. tilled soil going fallow)
}

var grounds = map[Ground]groundAttrs{
	Grass:      {Sprite: "ground.grass"},
	Dirt:       {Sprite: "ground.dirt"},
	Sand:       {Sprite: "ground.sand"},
	Water:      {Sprite: "ground.water"},
	Stone:      {Sprite: "ground.stone"},
	Path:       {Sprite: "ground.path"},
	TilledSoil: {Sprite: "ground.tilled_soil", SelfRestore: true},
}

// growthStage describes one transition in a Structure's life cycle: after
// Delay ticks (measured in CHUNK_AREA units, per §4.3), the structure becomes
// Next, optionally emitting Shoot into orthogonal neighbours.
type growthStage struct {
	Delay int
	Next  Structure
	Shoot Structure // Air means "no shoot"
}

// structureAttrs is the static per-Structure attribute row.
type structureAttrs struct {
	Sprites  []string
	Blocking bool
	Growth   *growthStage
	Spawn    creaturetype.Kind // empty means "does not spawn anything"
	Pickup   *pickupRule
}

type pickupRule struct {
	Item    item.Item
	Residue Structure
}

var structures = map[Structure]structureAttrs{
	Air:       {Sprites: nil, Blocking: false},
	Wall:      {Sprites: []string{"structure.wall"}, Blocking: true},
	Tree:      {Sprites: []string{"structure.tree"}, Blocking: true, Spawn: ""},
	Sapling:   {Sprites: []string{"structure.sapling"}, Blocking: false, Growth: &growthStage{Delay: 200, Next: Tree}},
	Bush:      {Sprites: []string{"structure.bush"}, Blocking: false, Pickup: &pickupRule{Item: item.Berry, Residue: Air}},
	Berries:   {Sprites: []string{"structure.berries"}, Blocking: false, Pickup: &pickupRule{Item: item.Berry, Residue: Bush}},
	Rock:      {Sprites: []string{"structure.rock"}, Blocking: true, Pickup: &pickupRule{Item: item.Stone, Residue: Air}},
	Pitcher:   {Sprites: []string{"structure.pitcher"}, Blocking: false, Spawn: "frog"},
	Crop:      {Sprites: []string{"structure.crop"}, Blocking: false, Growth: &growthStage{Delay: 50, Next: CropGrown}},
	CropGrown: {Sprites: []string{"structure.crop_grown"}, Blocking: false, Pickup: &pickupRule{Item: item.Seed, Residue: Air}},
	ClaimPost: {Sprites: []string{"structure.claim_post"}, Blocking: true},
	Floor:     {Sprites: []string{"structure.floor"}, Blocking: false},
}

// growthProducts defines the "joined product" table (§4.3) used when a
// growth stage's shoot meets an already-occupied neighbour: (neighbour,
// shoot) -> resulting structure. Neighbours not present in this table, if
// open, are planted with the shoot directly; if occupied and absent from
// this table, the shoot does not spread there.
var growthProducts = map[[2]Structure]Structure{
	{Bush, Bush}: Bush,
}

// Sprites returns the ordered list of sprite identifiers for t, ground first.
func (t Tile) Sprites() []string {
	var out []string
	if g, ok := grounds[t.Ground]; ok && g.Sprite != "" {
		out = append(out, g.Sprite)
	}
	out = append(out, structures[t.Structure].Sprites...)
	return out
}

// Blocking reports whether t's structure blocks movement onto the cell.
func (t Tile) Blocking() bool {
	return structures[t.Structure].Blocking
}

// Spawn returns the NPC kind t's structure designates for spawning, if any.
func (t Tile) Spawn() (creaturetype.Kind, bool) {
	k := structures[t.Structure].Spawn
	return k, k != ""
}

var inspectText = map[Structure]string{
	Air:       "Bare ground.",
	Wall:      "A sturdy wall.",
	Tree:      "A tall tree.",
	Sapling:   "A young sapling, still growing.",
	Bush:      "A berry bush.",
	Berries:   "A berry bush, heavy with fruit.",
	Rock:      "A loose rock.",
	Pitcher:   "A pitcher plant. Something might live in there.",
	Crop:      "A planted crop, not yet ready.",
	CropGrown: "A crop ready for harvest.",
	ClaimPost: "A claim marker.",
	Floor:     "A built floor.",
}

// Inspect returns the human-readable description shown for Plan(Inspect).
func (t Tile) Inspect() string {
	if s, ok := inspectText[t.Structure]; ok && t.Structure != Air {
		return s
	}
	return inspectText[Air]
}

// Interaction is the result of wielding an item against a tile.
type Interaction struct {
	Cost         item.Cost
	Items        []item.Item
	Remains      *Structure
	RemainsGround *Ground
	Claim        bool
	Build        bool
	Message      *sound.Event
}

// interactKey indexes the static interaction table.
type interactKey struct {
	Structure Structure
	Ground    Ground
	Item      item.Item
}

var interactions = map[interactKey]Interaction{}

// RegisterInteraction installs a static interaction table row. Intended to
// be called from package init or from catalog loading code, never at
// runtime from a tick.
func RegisterInteraction(s Structure, g Ground, it item.Item, in Interaction) {
	interactions[interactKey{s, g, it}] = in
}

func init() {
	RegisterInteraction(Air, Grass, item.Hoe, Interaction{
		RemainsGround: groundPtr(TilledSoil),
	})
	RegisterInteraction(Air, TilledSoil, item.Seed, Interaction{
		Cost:    item.Cost{item.Seed: 1},
		Remains: structurePtr(Crop),
	})
	RegisterInteraction(Air, Grass, item.ClaimPost, Interaction{
		Cost:    item.Cost{item.ClaimPost: 1},
		Remains: structurePtr(ClaimPost),
		Claim:   true,
	})
	RegisterInteraction(Air, Grass, item.Floorboard, Interaction{
		Cost:    item.Cost{item.Floorboard: 1},
		Remains: structurePtr(Floor),
		Build:   true,
	})
}

func groundPtr(g Ground) *Ground         { return &g }
func structurePtr(s Structure) *Structure { return &s }

// Interact looks up the static interaction row for wielding item it against
// t at time now. now is accepted for forward compatibility with
// time-of-day-gated interactions but is unused by the current table.
func (t Tile) Interact(it item.Item, now int64) (Interaction, bool) {
	in, ok := interactions[interactKey{t.Structure, t.Ground, it}]
	return in, ok
}

// Take attempts to pick up t's structure. On success it returns the
// resulting residue Tile and the picked item; ok is false if t has no
// pickup rule.
func (t Tile) Take() (residue Tile, picked item.Item, ok bool) {
	rule := structures[t.Structure].Pickup
	if rule == nil {
		return Tile{}, item.Nothing, false
	}
	return Tile{Ground: t.Ground, Structure: rule.Residue}, rule.Item, true
}

// Grow advances t.Structure by one stage, if it has a growth schedule. It
// returns the ticks-delay before the *next* stage (for scheduling), the next
// Structure, whether that stage emits a shoot, and the shoot Structure
// itself.
func (t Tile) Grow() (delay int, next Structure, shoot Structure, hasShoot, ok bool) {
	g := structures[t.Structure].Growth
	if g == nil {
		return 0, t.Structure, Air, false, false
	}
	return g.Delay, g.Next, g.Shoot, g.Shoot != Air, true
}

// JoinedProduct looks up the static product of planting shoot into a
// neighbour currently holding occupant, per §4.3's "joined product" rule.
func JoinedProduct(occupant, shoot Structure) (Structure, bool) {
	p, ok := growthProducts[[2]Structure{occupant, shoot}]
	return p, ok
}

// Open reports whether s has no blocking/visual presence, i.e. whether a
// shoot may be planted directly into a neighbour holding it.
func Open(s Structure) bool {
	return s == Air
}

// SelfRestores reports whether g naturally reverts to the base ground over
// time, used by the Map overlay's tile garbage-collection rule (§4.3).
func SelfRestores(g Ground) bool {
	return grounds[g].SelfRestore
}
