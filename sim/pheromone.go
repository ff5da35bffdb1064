// Package sim implements the colony simulation: agents, pheromone trails,
// the elite archive, and the generational control loop.
package sim

// Cells whose value falls below this after decay snap to zero.
const decayEpsilon = 1e-4

// PheromoneField is a bounded 2-D scalar grid over the world footprint.
// Agents deposit into it and read it back as a sensor, making it an
// emergent communication channel. Cell values stay in [0,1].
type PheromoneField struct {
	w, d  int
	cells []float64
}

// NewPheromoneField creates a zeroed field sized to the world footprint.
func NewPheromoneField(w, d int) *PheromoneField {
	return &PheromoneField{
		w:     w,
		d:     d,
		cells: make([]float64, w*d),
	}
}

// Size returns the field footprint.
func (f *PheromoneField) Size() (w, d int) {
	return f.w, f.d
}

// Deposit adds amount to the cell at (x,z), saturating at 1. Out-of-bounds
// deposits are a no-op.
func (f *PheromoneField) Deposit(x, z int, amount float64) {
	if x < 0 || x >= f.w || z < 0 || z >= f.d {
		return
	}
	i := z*f.w + x
	f.cells[i] += amount
	if f.cells[i] > 1 {
		f.cells[i] = 1
	}
}

// Query returns the value at (x,z), or 0 out of bounds.
func (f *PheromoneField) Query(x, z int) float64 {
	if x < 0 || x >= f.w || z < 0 || z >= f.d {
		return 0
	}
	return f.cells[z*f.w+x]
}

// Decay scales every cell by (1-rate), snapping near-zero cells to exactly
// zero. Applied once per tick.
func (f *PheromoneField) Decay(rate float64) {
	for i := range f.cells {
		if f.cells[i] > decayEpsilon {
			f.cells[i] *= 1 - rate
		} else {
			f.cells[i] = 0
		}
	}
}

// Reset zeroes every cell. Called at generation start.
func (f *PheromoneField) Reset() {
	for i := range f.cells {
		f.cells[i] = 0
	}
}
