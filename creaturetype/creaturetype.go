// Package creaturetype declares the closed set of creature kinds and the
// static attribute table each carries. The table itself is declarative data
// (§1 of the specification: item/attribute tables are external, consumed
// data): built-in rows are registered at package init, and a YAML catalog
// loaded through LoadCatalog overrides or extends them.
package creaturetype

import (
	"fmt"
	"os"

	"github.com/tile-ward/gridworld/faction"
	"gopkg.in/yaml.v3"
)

// Mind selects which planning rule (§4.4 of the specification) drives a
// creature of this type when it has no pending plan.
type Mind int

const (
	MindPlayer Mind = iota
	MindIdle
	MindAggressive
)

// Kind identifies one row of the catalog. Player is the kind of every player
// body; it has a catalog row like any NPC kind.
type Kind string

const Player Kind = "player"

// Autoheal describes a creature type's passive regeneration schedule.
type Autoheal struct {
	Cooldown int `yaml:"cooldown"`
	Amount   int `yaml:"amount"`
}

// Attributes is the static row attached to every Kind.
type Attributes struct {
	Kind            Kind          `yaml:"kind"`
	Sprite          string        `yaml:"sprite"`
	DisplayName     string        `yaml:"display_name"`
	Faction         faction.Faction `yaml:"-"`
	FactionName     string        `yaml:"faction"`
	MaxHealth       int           `yaml:"max_health"`
	AttackDamage    int           `yaml:"attack_damage"`
	Mind            Mind          `yaml:"-"`
	MindName        string        `yaml:"mind"`
	WalkCooldown    int           `yaml:"walk_cooldown"`
	AttackCooldown  int           `yaml:"attack_cooldown"`
	AggroDistance   int           `yaml:"aggro_distance"`
	GiveUpDistance  int           `yaml:"give_up_distance"`
	Blocking        bool          `yaml:"blocking"`
	Mortal          bool          `yaml:"mortal"`
	Autoheal        *Autoheal     `yaml:"autoheal"`
}

var factionNames = map[string]faction.Faction{
	"wildlife": faction.Wildlife,
	"hostile":  faction.Hostile,
	"player":   faction.Player,
}

var mindNames = map[string]Mind{
	"player":     MindPlayer,
	"idle":       MindIdle,
	"aggressive": MindAggressive,
}

// catalog holds every loaded Attributes row, indexed by Kind.
var catalog = map[Kind]Attributes{}

func init() {
	// Built-in defaults matching §6's constants table (player/frog/worm
	// walk and attack cooldowns, player autoheal); LoadCatalog overlays or replaces
	// these with declarative data from a file.
	register(Attributes{
		Kind: Player, Sprite: "creature.player", DisplayName: "Player",
		FactionName: "player", MaxHealth: 100, AttackDamage: 5,
		MindName: "player", WalkCooldown: 2, AttackCooldown: 10,
		Blocking: true, Mortal: true,
		Autoheal: &Autoheal{Cooldown: 100, Amount: 1},
	})
	register(Attributes{
		Kind: "frog", Sprite: "creature.frog", DisplayName: "Frog",
		FactionName: "wildlife", MaxHealth: 10, AttackDamage: 0,
		MindName: "idle", WalkCooldown: 5, AttackCooldown: 15,
		Blocking: false, Mortal: true,
	})
	register(Attributes{
		Kind: "worm", Sprite: "creature.worm", DisplayName: "Worm",
		FactionName: "hostile", MaxHealth: 20, AttackDamage: 5,
		MindName: "aggressive", WalkCooldown: 5, AttackCooldown: 15,
		AggroDistance: 4, GiveUpDistance: 10,
		Blocking: false, Mortal: true,
	})
}

func register(a Attributes) {
	a.Faction = factionNames[a.FactionName]
	a.Mind = mindNames[a.MindName]
	catalog[a.Kind] = a
}

// LoadCatalog parses a YAML document of Attributes rows and registers each
// one, overriding any built-in default or previously loaded row of the same
// Kind. It is the declarative-data entry point for replacing the built-in
// rows; cmd/gridworld does not call it, so the built-in rows apply there.
func LoadCatalog(data []byte) error {
	var rows []Attributes
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("creaturetype: parse catalog: %w", err)
	}
	for _, a := range rows {
		if _, ok := factionNames[a.FactionName]; a.FactionName != "" && !ok {
			return fmt.Errorf("creaturetype: unknown faction %q for kind %q", a.FactionName, a.Kind)
		}
		if _, ok := mindNames[a.MindName]; a.MindName != "" && !ok {
			return fmt.Errorf("creaturetype: unknown mind %q for kind %q", a.MindName, a.Kind)
		}
		register(a)
	}
	return nil
}

// LoadCatalogFile reads and loads a YAML catalog file from disk.
func LoadCatalogFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("creaturetype: read catalog %s: %w", path, err)
	}
	return LoadCatalog(data)
}

// Of returns the Attributes row for k. It panics if k was never registered,
// matching the engine's policy of treating unregistered static-table entries
// as a construction-time programmer error.
func Of(k Kind) Attributes {
	a, ok := catalog[k]
	if !ok {
		panic(fmt.Sprintf("creaturetype: unregistered kind %q", k))
	}
	return a
}

// Registered reports whether k exists in the catalog.
func Registered(k Kind) bool {
	_, ok := catalog[k]
	return ok
}
