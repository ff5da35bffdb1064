// Package world defines the voxel grid boundary the simulation runs on.
//
// The simulation only consumes the World interface; terrain generation,
// meshing and rendering live entirely outside this module.
package world

// CellKind identifies the contents of one voxel cell.
type CellKind uint8

const (
	Empty CellKind = iota
	Soil
	Food
	Hazard
	NestMarker
	Bedrock  // indestructible
	Boundary // sensor code for out-of-world neighbors; never stored in a grid
)

// NumKinds is the number of discrete cell codes exposed to agent sensors.
const NumKinds = 7

// String returns a short name for the cell kind.
func (k CellKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Soil:
		return "soil"
	case Food:
		return "food"
	case Hazard:
		return "hazard"
	case NestMarker:
		return "nest"
	case Bedrock:
		return "bedrock"
	case Boundary:
		return "boundary"
	}
	return "unknown"
}

// World is the voxel store the simulation reads and writes.
type World interface {
	// Size returns the grid extents (width, height, depth).
	Size() (w, h, d int)
	// Cell returns the kind at (x,y,z), or Boundary outside the grid.
	Cell(x, y, z int) CellKind
	// SetCell writes a kind at (x,y,z). Out-of-bounds writes are ignored.
	SetCell(x, y, z int, kind CellKind)
	// TopY returns the topmost non-Empty y in column (x,z), or -1 if the
	// column is entirely empty or outside the grid.
	TopY(x, z int) int
}
