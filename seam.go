package carve

import (
	"github.com/pkg/errors"
)

// Seam is a connected, one pixel wide path spanning the grid edge to edge,
// stored as one orthogonal index per crossed line: a vertical seam holds one
// column index per row, a horizontal seam one row index per column.
// Consecutive entries differ by at most one.
type Seam []int

// costTable is the cumulative minimum energy table of one seam search.
// It lives only for the duration of a single find call and is discarded
// right after the seam has been backtracked.
type costTable struct {
	width  int
	height int
	cost   []int
}

func (t *costTable) get(row, col int) int {
	return t.cost[row*t.width+col]
}

func (t *costTable) set(row, col, cost int) {
	t.cost[row*t.width+col] = cost
}

// FindVerticalSeam returns the top-to-bottom seam of least total energy.
// Running it twice on the same map yields the identical seam: whenever two
// candidate cells carry equal cost, the smaller column index wins.
func FindVerticalSeam(m *EnergyMap) (Seam, error) {
	if m.width == 0 || m.height == 0 {
		return nil, errors.Wrapf(ErrDegenerateGrid, "%dx%d energy map", m.width, m.height)
	}
	return findSeam(m.width, m.height, m.At), nil
}

// FindHorizontalSeam returns the left-to-right seam of least total energy.
// It is the exact transpose of the vertical search.
func FindHorizontalSeam(m *EnergyMap) (Seam, error) {
	if m.width == 0 || m.height == 0 {
		return nil, errors.Wrapf(ErrDegenerateGrid, "%dx%d energy map", m.width, m.height)
	}
	return findSeam(m.height, m.width, func(row, col int) int {
		return m.At(col, row)
	}), nil
}

// findSeam runs the dynamic programming search over a width x height energy
// grid accessed through at. The cumulative cost of a cell is its own energy
// plus the cheapest of its up to three upper neighbors; the seam is then
// backtracked from the cheapest cell of the last row.
func findSeam(width, height int, at func(row, col int) int) Seam {
	t := &costTable{
		width:  width,
		height: height,
		cost:   make([]int, width*height),
	}
	for c := 0; c < width; c++ {
		t.set(0, c, at(0, c))
	}
	for r := 1; r < height; r++ {
		for c := 0; c < width; c++ {
			best := t.get(r-1, c)
			if c > 0 && t.get(r-1, c-1) < best {
				best = t.get(r-1, c-1)
			}
			if c < width-1 && t.get(r-1, c+1) < best {
				best = t.get(r-1, c+1)
			}
			t.set(r, c, at(r, c)+best)
		}
	}

	seam := make(Seam, height)
	seam[height-1] = argminRow(t, height-1, 0, width-1)
	for r := height - 1; r > 0; r-- {
		c := seam[r]
		lo, hi := c-1, c+1
		if lo < 0 {
			lo = 0
		}
		if hi > width-1 {
			hi = width - 1
		}
		seam[r-1] = argminRow(t, r-1, lo, hi)
	}
	return seam
}

// argminRow returns the column of the cheapest cell in row within [lo, hi].
// Candidates are scanned in increasing column order with a strict comparison,
// which enforces the smaller-index tie-break.
func argminRow(t *costTable, row, lo, hi int) int {
	best := lo
	for c := lo + 1; c <= hi; c++ {
		if t.get(row, c) < t.get(row, best) {
			best = c
		}
	}
	return best
}

// FindVerticalSeams extracts the k lowest energy vertical seams of one map in
// a single pass, in increasing order of total cost. The seams never share a
// cell: after each extraction the seam is removed from a working copy of the
// map, and an alias table maps the shrunken coordinates back to the original
// grid. k is clamped to the map width, so a width-1 map still yields its
// single seam.
func FindVerticalSeams(m *EnergyMap, k int) ([]Seam, error) {
	if m.width == 0 || m.height == 0 {
		return nil, errors.Wrapf(ErrDegenerateGrid, "%dx%d energy map", m.width, m.height)
	}
	if k > m.width {
		k = m.width
	}
	if k < 1 {
		return nil, nil
	}

	work := m.clone()
	alias := newAliasTable(m.width, m.height)
	seams := make([]Seam, 0, k)
	for i := 0; i < k; i++ {
		s := findSeam(work.width, work.height, work.At)
		orig := make(Seam, len(s))
		for r, c := range s {
			orig[r] = alias.lookup(r, c)
		}
		seams = append(seams, orig)
		if i == k-1 {
			break
		}
		// The working copy is only needed for the next extraction, so the
		// last seam is never carved out of it and the copy cannot hit
		// zero width.
		work.removeSeam(s)
		alias.removeSeam(s)
	}
	return seams, nil
}

// FindHorizontalSeams is the transposed analogue of FindVerticalSeams.
func FindHorizontalSeams(m *EnergyMap, k int) ([]Seam, error) {
	if m.width == 0 || m.height == 0 {
		return nil, errors.Wrapf(ErrDegenerateGrid, "%dx%d energy map", m.width, m.height)
	}
	t := NewEnergyMap(m.height, m.width)
	for r := 0; r < m.height; r++ {
		for c := 0; c < m.width; c++ {
			t.Set(c, r, m.At(r, c))
		}
	}
	return FindVerticalSeams(t, k)
}

// removeSeam drops one cell per row from the map, shifting the remainder of
// each row left.
func (m *EnergyMap) removeSeam(seam Seam) {
	w := m.width
	newW := w - 1
	for r := 0; r < m.height; r++ {
		c := seam[r]
		src := r * w
		dst := r * newW
		copy(m.cells[dst:dst+c], m.cells[src:src+c])
		copy(m.cells[dst+c:dst+newW], m.cells[src+c+1:src+w])
	}
	m.width = newW
	m.cells = m.cells[:newW*m.height]
}

// aliasTable maps column indices of a repeatedly carved map back to the
// columns of the original, uncarved grid.
type aliasTable struct {
	width   int
	stride  int
	columns []int
}

func newAliasTable(width, height int) *aliasTable {
	columns := make([]int, width*height)
	for i := range columns {
		columns[i] = i % width
	}
	return &aliasTable{width: width, stride: width, columns: columns}
}

func (a *aliasTable) lookup(row, col int) int {
	return a.columns[row*a.stride+col]
}

func (a *aliasTable) removeSeam(seam Seam) {
	w := a.width
	a.width = w - 1
	for r, c := range seam {
		row := a.columns[r*a.stride : r*a.stride+w]
		copy(row[c:], row[c+1:])
	}
}
