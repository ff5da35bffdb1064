package sim

import (
	"math"
	"testing"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/world"
)

func testVitals(health, max float64) components.Vitals {
	return components.Vitals{Health: health, MaxHealth: max, Alive: true}
}

func TestSensorSliceLength(t *testing.T) {
	g := world.NewFlatGrid(8, 8, 8, 3)
	field := NewPheromoneField(8, 8)
	s := ComputeSensors(g, field, components.Position{X: 4, Y: 3, Z: 4}, testVitals(50, 100), components.Worker, nil)
	if got := len(s.AsSlice()); got != NumSensorInputs {
		t.Fatalf("AsSlice length = %d, want %d", got, NumSensorInputs)
	}
}

func TestSensorSliceCarriesQueenDZ(t *testing.T) {
	g := world.NewFlatGrid(16, 8, 16, 3)
	field := NewPheromoneField(16, 16)
	pos := components.Position{X: 4, Y: 3, Z: 4}
	qp := components.Position{X: 4, Y: 3, Z: 9} // due south: DZ = 1

	s := ComputeSensors(g, field, pos, testVitals(100, 100), components.Worker, &qp)
	vec := s.AsSlice()

	// The z-component of the queen direction is the final network input; a
	// network sized from NumSensorInputs must consume it, not truncate it.
	if vec[NumSensorInputs-1] != s.QueenDZ {
		t.Fatalf("last input = %v, want queen DZ %v", vec[NumSensorInputs-1], s.QueenDZ)
	}
	if s.QueenDZ != 1 {
		t.Errorf("queen DZ = %v, want 1 for a queen due south", s.QueenDZ)
	}
}

func TestSensorSelfState(t *testing.T) {
	g := world.NewFlatGrid(8, 8, 8, 3)
	g.SetCell(2, 3, 2, world.Food)
	g.SetCell(5, 3, 5, world.Hazard)
	field := NewPheromoneField(8, 8)

	s := ComputeSensors(g, field, components.Position{X: 2, Y: 3, Z: 2}, testVitals(25, 100), components.Worker, nil)
	if s.HealthRatio != 0.25 {
		t.Errorf("health ratio = %v, want 0.25", s.HealthRatio)
	}
	if s.QueenFlag != 0 {
		t.Errorf("worker queen flag = %v, want 0", s.QueenFlag)
	}
	if s.OnFood != 1 || s.OnHazard != 0 {
		t.Errorf("on food cell: food=%v hazard=%v, want 1, 0", s.OnFood, s.OnHazard)
	}

	s = ComputeSensors(g, field, components.Position{X: 5, Y: 3, Z: 5}, testVitals(100, 100), components.Queen, nil)
	if s.QueenFlag != 1 {
		t.Errorf("queen flag = %v, want 1", s.QueenFlag)
	}
	if s.OnFood != 0 || s.OnHazard != 1 {
		t.Errorf("on hazard cell: food=%v hazard=%v, want 0, 1", s.OnFood, s.OnHazard)
	}
}

func TestSensorBoundaryColumns(t *testing.T) {
	g := world.NewFlatGrid(4, 8, 4, 3)
	field := NewPheromoneField(4, 4)

	// Corner agent: north (z-1) and west (x-1) leave the grid.
	s := ComputeSensors(g, field, components.Position{X: 0, Y: 3, Z: 0}, testVitals(100, 100), components.Worker, nil)

	wantBoundary := float64(world.Boundary) / float64(world.NumKinds-1)
	for _, i := range []int{0, 3} { // north, west
		if s.NeighborKind[i] != wantBoundary {
			t.Errorf("neighbor kind[%d] = %v, want boundary code %v", i, s.NeighborKind[i], wantBoundary)
		}
		if s.NeighborHeight[i] != 0 {
			t.Errorf("neighbor height[%d] = %v, want 0 for out-of-world column", i, s.NeighborHeight[i])
		}
	}
	// South and east stay in-grid on flat soil.
	for _, i := range []int{1, 2} {
		wantSoil := float64(world.Soil) / float64(world.NumKinds-1)
		if s.NeighborKind[i] != wantSoil {
			t.Errorf("neighbor kind[%d] = %v, want soil code %v", i, s.NeighborKind[i], wantSoil)
		}
	}
}

func TestSensorHeightDelta(t *testing.T) {
	g := world.NewFlatGrid(8, 16, 8, 3)
	// Pillar two cells tall north of the agent, deep pit to the south.
	g.SetCell(4, 4, 3, world.Soil)
	g.SetCell(4, 5, 3, world.Soil)
	for y := 1; y <= 3; y++ {
		g.SetCell(4, y, 5, world.Empty)
	}
	field := NewPheromoneField(8, 8)

	s := ComputeSensors(g, field, components.Position{X: 4, Y: 3, Z: 4}, testVitals(100, 100), components.Worker, nil)
	if s.NeighborHeight[0] != 0.5 {
		t.Errorf("north delta = %v, want 0.5 for +2 cells", s.NeighborHeight[0])
	}
	if s.NeighborHeight[1] != -0.75 {
		t.Errorf("south delta = %v, want -0.75 for -3 cells", s.NeighborHeight[1])
	}
	if s.NeighborHeight[2] != 0 {
		t.Errorf("east delta = %v, want 0 on flat ground", s.NeighborHeight[2])
	}
}

func TestSensorHeightDeltaClamped(t *testing.T) {
	g := world.NewFlatGrid(8, 16, 8, 3)
	for y := 4; y <= 12; y++ {
		g.SetCell(4, y, 3, world.Soil)
	}
	field := NewPheromoneField(8, 8)

	s := ComputeSensors(g, field, components.Position{X: 4, Y: 3, Z: 4}, testVitals(100, 100), components.Worker, nil)
	if s.NeighborHeight[0] != 1 {
		t.Errorf("north delta = %v, want clamp to 1", s.NeighborHeight[0])
	}
}

func TestSensorPheromone(t *testing.T) {
	g := world.NewFlatGrid(8, 8, 8, 3)
	field := NewPheromoneField(8, 8)
	field.Deposit(4, 3, 0.4) // north of (4,4)

	s := ComputeSensors(g, field, components.Position{X: 4, Y: 3, Z: 4}, testVitals(100, 100), components.Worker, nil)
	if s.Pheromone[0] != 0.4 {
		t.Errorf("north pheromone = %v, want 0.4", s.Pheromone[0])
	}
	if s.Pheromone[1] != 0 {
		t.Errorf("south pheromone = %v, want 0", s.Pheromone[1])
	}
}

func TestSensorQueenDirection(t *testing.T) {
	g := world.NewFlatGrid(16, 8, 16, 3)
	field := NewPheromoneField(16, 16)
	pos := components.Position{X: 4, Y: 3, Z: 4}

	// Queen due east.
	qp := components.Position{X: 9, Y: 3, Z: 4}
	s := ComputeSensors(g, field, pos, testVitals(100, 100), components.Worker, &qp)
	if s.QueenDX != 1 || s.QueenDZ != 0 {
		t.Errorf("queen east: direction = (%v, %v), want (1, 0)", s.QueenDX, s.QueenDZ)
	}

	// Diagonal: unit length.
	qp = components.Position{X: 7, Y: 3, Z: 7}
	s = ComputeSensors(g, field, pos, testVitals(100, 100), components.Worker, &qp)
	if norm := math.Hypot(s.QueenDX, s.QueenDZ); math.Abs(norm-1) > 1e-12 {
		t.Errorf("queen direction norm = %v, want 1", norm)
	}

	// No living queen.
	s = ComputeSensors(g, field, pos, testVitals(100, 100), components.Worker, nil)
	if s.QueenDX != 0 || s.QueenDZ != 0 {
		t.Errorf("no queen: direction = (%v, %v), want (0, 0)", s.QueenDX, s.QueenDZ)
	}

	// Queen on the worker's own column.
	qp = pos
	s = ComputeSensors(g, field, pos, testVitals(100, 100), components.Worker, &qp)
	if s.QueenDX != 0 || s.QueenDZ != 0 {
		t.Errorf("co-located queen: direction = (%v, %v), want (0, 0)", s.QueenDX, s.QueenDZ)
	}
}
