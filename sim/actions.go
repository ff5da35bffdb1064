package sim

import (
	"sort"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/world"
)

// Action is one output slot of the policy network. The enumeration order is
// also the tie-break order during action resolution.
type Action uint8

const (
	MoveNorth Action = iota
	MoveSouth
	MoveEast
	MoveWest
	ActDig
	ActEat
	ActPlaceNest
	ActShareHealth
	ActNoOp
)

// NumActions is the policy network output count.
const NumActions = 9

// String returns the action name.
func (a Action) String() string {
	switch a {
	case MoveNorth:
		return "move_n"
	case MoveSouth:
		return "move_s"
	case MoveEast:
		return "move_e"
	case MoveWest:
		return "move_w"
	case ActDig:
		return "dig"
	case ActEat:
		return "eat"
	case ActPlaceNest:
		return "place_nest"
	case ActShareHealth:
		return "share_health"
	case ActNoOp:
		return "noop"
	}
	return "unknown"
}

// maxStepHeight is the largest height difference a move can climb or drop.
const maxStepHeight = 2

// Health thresholds for sharing and nest placement.
const (
	shareMinHealthFrac = 0.3     // giver must hold more than this fraction of max
	shareTransferFrac  = 0.1     // transfer cap as fraction of giver max
	nestCostFrac       = 1.0 / 3 // queen pays this fraction of max per nest
)

// agentState is the read-only self view actions resolve against.
type agentState struct {
	ID        uint32
	Role      components.Role
	Pos       components.Position
	Health    float64
	MaxHealth float64
}

// occupant describes a living agent co-located with the acting agent.
type occupant struct {
	ID        uint32
	Health    float64
	MaxHealth float64
}

// actionEnv is the world view action resolution reads. It never mutates
// anything; the chosen Effect carries all state changes.
type actionEnv struct {
	world world.World
	self  agentState

	// coOccupants returns the other living agents sharing the agent's
	// cell, in deterministic population order.
	coOccupants func() []occupant

	moveDeposit float64
	eatDeposit  float64
	foodRestore float64
}

// CellChange sets one voxel to a new kind.
type CellChange struct {
	Pos  components.Position
	Kind world.CellKind
}

// PheromoneDrop deposits trail scent at a footprint cell.
type PheromoneDrop struct {
	X, Z   int
	Amount float64
}

// HealthTransfer moves health from the acting agent to another agent.
// The amount is already capped so giver loss equals receiver gain exactly.
type HealthTransfer struct {
	To     uint32
	Amount float64
}

// Effect describes the complete state change of one resolved action. Zero
// fields mean no change of that kind. Effects are computed against a
// read-only view and applied by the simulation afterwards.
type Effect struct {
	NewPos      *components.Position
	HealthDelta float64
	Cells       []CellChange
	Drops       []PheromoneDrop
	NestDelta   int
	Transfer    *HealthTransfer
}

// rankActions orders all actions by descending score. Ties keep enumeration
// order (stable sort over the action indices).
func rankActions(scores []float64) [NumActions]Action {
	var order [NumActions]Action
	for i := range order {
		order[i] = Action(i)
	}
	sort.SliceStable(order[:], func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	return order
}

// resolveAction tries actions in descending score order and returns the
// first whose preconditions hold, with the effect to apply. ActNoOp always
// succeeds, so resolution always terminates with a result.
func resolveAction(env *actionEnv, scores []float64) (Action, Effect) {
	for _, a := range rankActions(scores) {
		if eff, ok := tryAction(env, a); ok {
			return a, eff
		}
	}
	// Unreachable: ActNoOp has no precondition.
	return ActNoOp, Effect{}
}

// tryAction checks one action's preconditions and builds its effect.
func tryAction(env *actionEnv, a Action) (Effect, bool) {
	switch a {
	case MoveNorth, MoveSouth, MoveEast, MoveWest:
		return tryMove(env, cardinal[a])
	case ActDig:
		return tryDig(env)
	case ActEat:
		return tryEat(env)
	case ActPlaceNest:
		return tryPlaceNest(env)
	case ActShareHealth:
		return tryShareHealth(env)
	case ActNoOp:
		return Effect{}, true
	}
	return Effect{}, false
}

func tryMove(env *actionEnv, dir struct{ DX, DZ int }) (Effect, bool) {
	pos := env.self.Pos
	tx, tz := pos.X+dir.DX, pos.Z+dir.DZ

	top := env.world.TopY(tx, tz)
	if top < 0 {
		return Effect{}, false
	}
	if diff := top - pos.Y; diff > maxStepHeight || diff < -maxStepHeight {
		return Effect{}, false
	}

	return Effect{
		NewPos: &components.Position{X: tx, Y: top, Z: tz},
		Drops:  []PheromoneDrop{{X: tx, Z: tz, Amount: env.moveDeposit}},
	}, true
}

func tryDig(env *actionEnv) (Effect, bool) {
	pos := env.self.Pos
	cell := env.world.Cell(pos.X, pos.Y, pos.Z)
	if cell == world.Empty || cell == world.Bedrock {
		return Effect{}, false
	}

	eff := Effect{
		Cells:  []CellChange{{Pos: pos, Kind: world.Empty}},
		NewPos: fallTarget(env.world, pos),
	}
	if cell == world.NestMarker {
		eff.NestDelta = -1
	}
	return eff, true
}

func tryEat(env *actionEnv) (Effect, bool) {
	pos := env.self.Pos
	if env.world.Cell(pos.X, pos.Y, pos.Z) != world.Food {
		return Effect{}, false
	}
	// Eating is exclusive: any co-located living agent blocks it.
	if len(env.coOccupants()) > 0 {
		return Effect{}, false
	}

	return Effect{
		HealthDelta: env.foodRestore,
		Cells:       []CellChange{{Pos: pos, Kind: world.Empty}},
		NewPos:      fallTarget(env.world, pos),
		Drops:       []PheromoneDrop{{X: pos.X, Z: pos.Z, Amount: env.eatDeposit}},
	}, true
}

func tryPlaceNest(env *actionEnv) (Effect, bool) {
	if env.self.Role != components.Queen {
		return Effect{}, false
	}
	cost := env.self.MaxHealth * nestCostFrac
	if env.self.Health <= cost {
		return Effect{}, false
	}

	pos := env.self.Pos
	_, h, _ := env.world.Size()
	above := pos.Y + 1
	if above >= h {
		return Effect{}, false
	}
	if env.world.Cell(pos.X, above, pos.Z) != world.Empty {
		return Effect{}, false
	}

	return Effect{
		HealthDelta: -cost,
		Cells:       []CellChange{{Pos: components.Position{X: pos.X, Y: above, Z: pos.Z}, Kind: world.NestMarker}},
		NewPos:      &components.Position{X: pos.X, Y: above, Z: pos.Z},
		NestDelta:   1,
	}, true
}

func tryShareHealth(env *actionEnv) (Effect, bool) {
	self := env.self
	if self.Health <= self.MaxHealth*shareMinHealthFrac {
		return Effect{}, false
	}

	others := env.coOccupants()
	if len(others) == 0 {
		return Effect{}, false
	}

	// Lowest current health receives; first in population order wins ties.
	recv := others[0]
	for _, o := range others[1:] {
		if o.Health < recv.Health {
			recv = o
		}
	}

	transfer := self.MaxHealth * shareTransferFrac
	if limit := self.Health - 1; transfer > limit {
		transfer = limit
	}
	// Cap at receiver headroom so the transfer conserves total health.
	if headroom := recv.MaxHealth - recv.Health; transfer > headroom {
		transfer = headroom
	}
	if transfer <= 0 {
		// Preconditions held; the action executes as a conserved no-op.
		return Effect{}, true
	}

	return Effect{
		HealthDelta: -transfer,
		Transfer:    &HealthTransfer{To: recv.ID, Amount: transfer},
	}, true
}

// fallTarget returns the cell an agent at pos lands on once its current
// cell is cleared: the topmost non-Empty cell strictly below it.
func fallTarget(w world.World, pos components.Position) *components.Position {
	y := 0
	for cy := pos.Y - 1; cy >= 0; cy-- {
		if w.Cell(pos.X, cy, pos.Z) != world.Empty {
			y = cy
			break
		}
	}
	return &components.Position{X: pos.X, Y: y, Z: pos.Z}
}
