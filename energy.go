package carve

// EnergyFunc derives an importance score for every pixel of a grid.
// The resulting map must have the same shape as the grid.
type EnergyFunc func(*PixelGrid) *EnergyMap

// EnergyMap holds one non-negative importance score per grid pixel.
// Neighbor relationships shift whenever a seam is removed or inserted,
// so the map is recomputed from scratch after every structural change.
type EnergyMap struct {
	width  int
	height int
	cells  []int
}

// NewEnergyMap allocates a zeroed energy map of the given shape.
func NewEnergyMap(width, height int) *EnergyMap {
	return &EnergyMap{
		width:  width,
		height: height,
		cells:  make([]int, width*height),
	}
}

// Width returns the number of columns of the map.
func (m *EnergyMap) Width() int { return m.width }

// Height returns the number of rows of the map.
func (m *EnergyMap) Height() int { return m.height }

// At returns the energy of the cell at (row, col).
func (m *EnergyMap) At(row, col int) int {
	return m.cells[row*m.width+col]
}

// Set stores the energy of the cell at (row, col).
func (m *EnergyMap) Set(row, col, energy int) {
	m.cells[row*m.width+col] = energy
}

// clone returns a deep copy of the map.
func (m *EnergyMap) clone() *EnergyMap {
	cells := make([]int, len(m.cells))
	copy(cells, m.cells)
	return &EnergyMap{width: m.width, height: m.height, cells: cells}
}

// GradientEnergy is the reference energy function: the importance of a pixel
// is the local contrast against its vertical and horizontal neighbor pairs.
// It is a pure function of the grid and carries no hidden state.
func GradientEnergy(g *PixelGrid) *EnergyMap {
	m := NewEnergyMap(g.width, g.height)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			m.Set(r, c, pixelEnergy(g, r, c))
		}
	}
	return m
}

// pixelEnergy sums the squared per-channel differences between the pixels
// above/below and left/right of (row, col). A missing neighbor beyond the
// top or left border collapses onto the pixel itself through the saturated
// decrement; one beyond the bottom or right border is clamped the same way.
func pixelEnergy(g *PixelGrid, row, col int) int {
	up, down := row-1, row+1
	if up < 0 {
		up = 0
	}
	if down >= g.height {
		down = row
	}
	left, right := col-1, col+1
	if left < 0 {
		left = 0
	}
	if right >= g.width {
		right = col
	}
	return channelDiff(g.At(up, col), g.At(down, col)) +
		channelDiff(g.At(row, left), g.At(row, right))
}

func channelDiff(a, b []uint8) int {
	var sum int
	for i := range a {
		d := int(a[i]) - int(b[i])
		sum += d * d
	}
	return sum
}
