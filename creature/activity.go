package creature

import "github.com/tile-ward/gridworld/cube"

// ActivityKind enumerates the animated ongoing actions a creature may be
// performing.
type ActivityKind int

const (
	ActivityWalk ActivityKind = iota
	ActivityAttack
	ActivityDie
)

// DieDuration is the length, in ticks, of the death animation (§6 constant).
const DieDuration = 10

// Activity is an animated ongoing action with a start and end tick. While an
// Activity's End has not yet passed, the owning creature cannot act.
type Activity struct {
	Kind  ActivityKind   `json:"kind"`
	From  cube.Pos       `json:"from,omitempty"`
	Start cube.Timestamp `json:"start"`
	End   cube.Timestamp `json:"end"`
}

// PlanKind enumerates the shapes a resolved, ready-to-execute Plan may take.
type PlanKind int

const (
	PlanMove PlanKind = iota
	PlanInspect
	PlanTake
	PlanUse
	PlanFight
)

// Plan is a pending intent value occupying a creature's single plan slot,
// consumed and cleared by the tick's execution phase (§9: "plan as a value,
// not a continuation").
type Plan struct {
	Kind PlanKind
	Dir  *cube.Direction
	Idx  int
}
