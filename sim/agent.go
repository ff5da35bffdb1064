package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/world"
)

// stepAgent runs one agent's full turn: settle onto the surface, pay the
// step drain, sense, evaluate the network, resolve the preferred feasible
// action and apply its effect. Changes are visible to agents stepped later
// in the same tick.
func (s *Simulation) stepAgent(e ecs.Entity) {
	pos := s.posMap.Get(e)
	vit := s.vitMap.Get(e)
	ident := s.idMap.Get(e)

	// Settle downward if the cell underfoot was removed since last tick.
	if s.w.Cell(pos.X, pos.Y, pos.Z) == world.Empty {
		if top := s.w.TopY(pos.X, pos.Z); top >= 0 {
			pos.Y = top
		}
	}

	drain := s.cfg.Agent.StepDrain
	if s.w.Cell(pos.X, pos.Y, pos.Z) == world.Hazard {
		drain *= 2
	}
	vit.Health -= drain
	if vit.Health <= 0 {
		s.killAgent(vit, ident)
		return
	}

	inputs := ComputeSensors(s.w, s.field, *pos, *vit, ident.Role, s.queenPosFor(ident))
	scores := s.brains[ident.ID].Evaluate(inputs.AsSlice())

	env := &actionEnv{
		world: s.w,
		self: agentState{
			ID:        ident.ID,
			Role:      ident.Role,
			Pos:       *pos,
			Health:    vit.Health,
			MaxHealth: vit.MaxHealth,
		},
		coOccupants: func() []occupant { return s.occupantsAt(*pos, ident.ID) },
		moveDeposit: s.cfg.Pheromone.MoveDeposit,
		eatDeposit:  s.cfg.Pheromone.EatDeposit,
		foodRestore: s.cfg.Agent.FoodRestore,
	}
	action, eff := resolveAction(env, scores)
	s.applyEffect(e, eff)
	s.recordAction(action)
}

// applyEffect commits a resolved action's effect. Cell changes land before
// the position update so a freshly cleared cell and the fall target computed
// from it stay consistent.
func (s *Simulation) applyEffect(e ecs.Entity, eff Effect) {
	for _, ch := range eff.Cells {
		s.w.SetCell(ch.Pos.X, ch.Pos.Y, ch.Pos.Z, ch.Kind)
	}
	if eff.NewPos != nil {
		*s.posMap.Get(e) = *eff.NewPos
	}
	if eff.HealthDelta != 0 {
		vit := s.vitMap.Get(e)
		vit.Health += eff.HealthDelta
		if vit.Health > vit.MaxHealth {
			vit.Health = vit.MaxHealth
		}
	}
	if eff.Transfer != nil {
		// The amount is already capped against the receiver's headroom.
		if rv := s.vitalsByID(eff.Transfer.To); rv != nil {
			rv.Health += eff.Transfer.Amount
		}
	}
	for _, drop := range eff.Drops {
		s.field.Deposit(drop.X, drop.Z, drop.Amount)
	}
	s.nestsThisGen += eff.NestDelta
	if eff.NestDelta > 0 {
		s.nestsTotal += eff.NestDelta
	}
}

// killAgent flags an agent dead; the entity itself is removed by the
// tick-end cleanup pass so stepping order stays stable within the tick.
func (s *Simulation) killAgent(vit *components.Vitals, ident *components.Identity) {
	vit.Alive = false
	s.collector.RecordDeath()
	if ident.Role == components.Queen {
		s.hasQueen = false
	}
}

// queenPosFor returns the living queen's position for a worker's sensors,
// or nil for the queen herself and when no living queen exists.
func (s *Simulation) queenPosFor(ident *components.Identity) *components.Position {
	if ident.Role == components.Queen || !s.hasQueen {
		return nil
	}
	if !s.vitMap.Get(s.queen).Alive {
		return nil
	}
	qp := *s.posMap.Get(s.queen)
	return &qp
}

func (s *Simulation) recordAction(a Action) {
	switch a {
	case MoveNorth, MoveSouth, MoveEast, MoveWest:
		s.collector.RecordMove()
	case ActDig:
		s.collector.RecordDig()
	case ActEat:
		s.collector.RecordEat()
	case ActShareHealth:
		s.collector.RecordShare()
	case ActNoOp:
		s.collector.RecordNoOp()
	}
}
