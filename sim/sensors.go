package sim

import (
	"math"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/world"
)

// Sensor layout constants.
const (
	// NumSensorInputs is the fixed policy network input count:
	// 4 self-state values + 4 directions x (type code, height delta,
	// pheromone) + 2 queen direction values.
	NumSensorInputs = 18

	// heightDeltaScale normalizes neighbor height deltas before clamping
	// to [-1,1]; a step of 4 cells saturates the sensor.
	heightDeltaScale = 0.25
)

// cardinal holds the four neighbor directions in fixed sensor order.
var cardinal = [4]struct{ DX, DZ int }{
	{0, -1}, // north
	{0, 1},  // south
	{1, 0},  // east
	{-1, 0}, // west
}

// SensorInputs holds the computed sensor values for one agent.
type SensorInputs struct {
	HealthRatio float64 // current/max
	QueenFlag   float64 // 1 if queen, else 0
	OnFood      float64
	OnHazard    float64

	NeighborKind   [4]float64 // top-cell type code per direction, in [0,1]
	NeighborHeight [4]float64 // scaled height delta per direction, in [-1,1]
	Pheromone      [4]float64 // trail reading per direction

	QueenDX float64 // normalized direction toward the living queen
	QueenDZ float64
}

// AsSlice returns the sensor inputs as a flat slice in the fixed network
// input order.
func (s *SensorInputs) AsSlice() []float64 {
	out := make([]float64, 0, NumSensorInputs)
	out = append(out, s.HealthRatio, s.QueenFlag, s.OnFood, s.OnHazard)
	out = append(out, s.NeighborKind[:]...)
	out = append(out, s.NeighborHeight[:]...)
	out = append(out, s.Pheromone[:]...)
	out = append(out, s.QueenDX, s.QueenDZ)
	return out
}

// kindCode maps a cell kind to one of world.NumKinds discrete sensor values
// spread evenly across [0,1].
func kindCode(k world.CellKind) float64 {
	return float64(k) / float64(world.NumKinds-1)
}

// ComputeSensors builds the sensor vector for an agent standing at pos.
// queenPos is nil when the agent is the queen herself or no queen is alive;
// the queen-direction inputs are then zero.
func ComputeSensors(
	w world.World,
	field *PheromoneField,
	pos components.Position,
	vit components.Vitals,
	role components.Role,
	queenPos *components.Position,
) SensorInputs {
	var s SensorInputs

	if vit.MaxHealth > 0 {
		s.HealthRatio = vit.Health / vit.MaxHealth
	}
	if role == components.Queen {
		s.QueenFlag = 1
	}

	here := w.Cell(pos.X, pos.Y, pos.Z)
	if here == world.Food {
		s.OnFood = 1
	}
	if here == world.Hazard {
		s.OnHazard = 1
	}

	for i, dir := range cardinal {
		nx, nz := pos.X+dir.DX, pos.Z+dir.DZ

		top := w.TopY(nx, nz)
		if top < 0 {
			// Out-of-world column: boundary code, flat delta.
			s.NeighborKind[i] = kindCode(world.Boundary)
			s.NeighborHeight[i] = 0
		} else {
			s.NeighborKind[i] = kindCode(w.Cell(nx, top, nz))
			delta := float64(top-pos.Y) * heightDeltaScale
			if delta > 1 {
				delta = 1
			} else if delta < -1 {
				delta = -1
			}
			s.NeighborHeight[i] = delta
		}

		s.Pheromone[i] = field.Query(nx, nz)
	}

	if queenPos != nil {
		dx := float64(queenPos.X - pos.X)
		dz := float64(queenPos.Z - pos.Z)
		dist := math.Hypot(dx, dz)
		if dist > 1e-9 {
			s.QueenDX = dx / dist
			s.QueenDZ = dz / dist
		}
	}

	return s
}
