package sim

import "github.com/pthm-cable/colony/components"

// AgentView is a read-only copy of one agent's observable state.
type AgentView struct {
	ID        uint32
	Role      components.Role
	X, Y, Z   int
	Health    float64
	MaxHealth float64
	Alive     bool
}

// Snapshot is a point-in-time copy of the simulation's observable state,
// safe to hold after further ticks run.
type Snapshot struct {
	Generation   int
	Tick         int
	NestsThisGen int
	NestsTotal   int
	BestFitness  int
	Living       int
	Agents       []AgentView
}

// Snapshot copies the current generation, tick and population state. Agents
// appear in spawn order.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Generation:   s.generation,
		Tick:         s.tick,
		NestsThisGen: s.nestsThisGen,
		NestsTotal:   s.nestsTotal,
		BestFitness:  s.bestFitness,
		Living:       s.living,
		Agents:       make([]AgentView, 0, len(s.population)),
	}
	for _, e := range s.population {
		pos := s.posMap.Get(e)
		vit := s.vitMap.Get(e)
		ident := s.idMap.Get(e)
		snap.Agents = append(snap.Agents, AgentView{
			ID:        ident.ID,
			Role:      ident.Role,
			X:         pos.X,
			Y:         pos.Y,
			Z:         pos.Z,
			Health:    vit.Health,
			MaxHealth: vit.MaxHealth,
			Alive:     vit.Alive,
		})
	}
	return snap
}
