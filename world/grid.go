package world

// Grid is an in-memory World backed by a flat cell array. Column y=0 is
// filled with Bedrock so every column always has a top cell.
type Grid struct {
	w, h, d int
	cells   []CellKind
}

// NewGrid creates a grid with a Bedrock floor at y=0 and Empty everywhere else.
func NewGrid(w, h, d int) *Grid {
	g := &Grid{
		w:     w,
		h:     h,
		d:     d,
		cells: make([]CellKind, w*h*d),
	}
	for z := 0; z < d; z++ {
		for x := 0; x < w; x++ {
			g.cells[g.index(x, 0, z)] = Bedrock
		}
	}
	return g
}

// NewFlatGrid creates a grid with a Bedrock floor and Soil filled up to and
// including surfaceY.
func NewFlatGrid(w, h, d, surfaceY int) *Grid {
	g := NewGrid(w, h, d)
	g.FillLayer(1, surfaceY, Soil)
	return g
}

// FillLayer sets every cell with fromY <= y <= toY to kind.
func (g *Grid) FillLayer(fromY, toY int, kind CellKind) {
	for y := fromY; y <= toY && y < g.h; y++ {
		if y < 0 {
			continue
		}
		for z := 0; z < g.d; z++ {
			for x := 0; x < g.w; x++ {
				g.cells[g.index(x, y, z)] = kind
			}
		}
	}
}

// Size returns the grid extents.
func (g *Grid) Size() (int, int, int) {
	return g.w, g.h, g.d
}

// Cell returns the kind at (x,y,z), or Boundary outside the grid.
func (g *Grid) Cell(x, y, z int) CellKind {
	if !g.inBounds(x, y, z) {
		return Boundary
	}
	return g.cells[g.index(x, y, z)]
}

// SetCell writes a kind at (x,y,z). Out-of-bounds writes are ignored.
func (g *Grid) SetCell(x, y, z int, kind CellKind) {
	if !g.inBounds(x, y, z) {
		return
	}
	g.cells[g.index(x, y, z)] = kind
}

// TopY returns the topmost non-Empty y in column (x,z), or -1 if the column
// is outside the grid.
func (g *Grid) TopY(x, z int) int {
	if x < 0 || x >= g.w || z < 0 || z >= g.d {
		return -1
	}
	for y := g.h - 1; y >= 0; y-- {
		if g.cells[g.index(x, y, z)] != Empty {
			return y
		}
	}
	return -1
}

func (g *Grid) inBounds(x, y, z int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h && z >= 0 && z < g.d
}

func (g *Grid) index(x, y, z int) int {
	return (y*g.d+z)*g.w + x
}
