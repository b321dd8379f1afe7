package creature

import (
	"encoding/json"

	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/playerid"
)

// Id is a creature identity: either a Player (by PlayerId) or a Spawned NPC
// (by its SpawnId, the position at which it was created). Id is comparable
// and safe to use as a map key.
type Id struct {
	player   playerid.PlayerId
	spawn    cube.Pos
	isPlayer bool
}

// PlayerID constructs the Player variant of Id.
func PlayerID(id playerid.PlayerId) Id {
	return Id{player: id, isPlayer: true}
}

// SpawnID constructs the Spawned variant of Id from its origin position.
func SpawnID(origin cube.Pos) Id {
	return Id{spawn: origin}
}

// IsPlayer reports whether id identifies a player.
func (id Id) IsPlayer() bool {
	return id.isPlayer
}

// Player returns the PlayerId, valid only when IsPlayer is true.
func (id Id) Player() playerid.PlayerId {
	return id.player
}

// SpawnOrigin returns the spawn position, valid only when IsPlayer is false.
func (id Id) SpawnOrigin() cube.Pos {
	return id.spawn
}

type idJSON struct {
	Player *playerid.PlayerId `json:"player,omitempty"`
	Spawn  *cube.Pos          `json:"spawn,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (id Id) MarshalJSON() ([]byte, error) {
	if id.isPlayer {
		return json.Marshal(idJSON{Player: &id.player})
	}
	return json.Marshal(idJSON{Spawn: &id.spawn})
}
