package creature

import "github.com/tile-ward/gridworld/cube"

// WoundLifetime is the number of ticks a Wound is retained for short-term
// client animation and retaliation AI (§6 constant).
const WoundLifetime = 10

// Wound is a recent damage event retained on the victim.
type Wound struct {
	Damage int            `json:"damage"`
	Time   cube.Timestamp `json:"time"`
	Rind   uint32         `json:"rind"`
	By     Id             `json:"by"`
}
