package carve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelGrid_ShapeValidation(t *testing.T) {
	assert := assert.New(t)

	_, err := NewPixelGrid(make([]uint8, 11), 2, 2, 3)
	assert.ErrorIs(err, ErrShape)

	_, err = NewPixelGrid(make([]uint8, 12), 0, 2, 3)
	assert.ErrorIs(err, ErrShape)

	g, err := NewPixelGrid(make([]uint8, 12), 2, 2, 3)
	assert.NoError(err)
	assert.Equal(2, g.Width())
	assert.Equal(2, g.Height())
	assert.Equal(3, g.Channels())
}

func TestPixelGrid_At(t *testing.T) {
	g, err := NewPixelGrid([]uint8{1, 2, 3, 4, 5, 6}, 3, 2, 1)
	assert.NoError(t, err)

	assert.Equal(t, uint8(1), g.At(0, 0)[0])
	assert.Equal(t, uint8(3), g.At(0, 2)[0])
	assert.Equal(t, uint8(4), g.At(1, 0)[0])
	assert.Equal(t, uint8(6), g.At(1, 2)[0])
}

func TestPixelGrid_RemoveColumn(t *testing.T) {
	assert := assert.New(t)

	g, err := NewPixelGrid([]uint8{1, 2, 3, 4, 5, 6}, 3, 2, 1)
	assert.NoError(err)

	assert.NoError(g.RemoveColumn([]int{1, 2}))
	assert.Equal(2, g.Width())
	assert.Equal(2, g.Height())
	assert.Equal([]uint8{1, 3, 4, 5}, g.Pix())
}

func TestPixelGrid_RemoveColumnValidation(t *testing.T) {
	assert := assert.New(t)

	g, err := NewPixelGrid([]uint8{1, 2, 3, 4, 5, 6}, 3, 2, 1)
	assert.NoError(err)

	assert.ErrorIs(g.RemoveColumn([]int{1}), ErrSeamLength)
	assert.ErrorIs(g.RemoveColumn([]int{1, 3}), ErrOutOfRange)
	assert.ErrorIs(g.RemoveColumn([]int{-1, 0}), ErrOutOfRange)

	// a failed call leaves the grid untouched
	assert.Equal(3, g.Width())
	assert.Equal([]uint8{1, 2, 3, 4, 5, 6}, g.Pix())

	narrow, err := NewPixelGrid([]uint8{1, 2}, 1, 2, 1)
	assert.NoError(err)
	assert.ErrorIs(narrow.RemoveColumn([]int{0, 0}), ErrDegenerateGrid)
}

func TestPixelGrid_RemoveRow(t *testing.T) {
	assert := assert.New(t)

	g, err := NewPixelGrid([]uint8{1, 2, 3, 4, 5, 6}, 2, 3, 1)
	assert.NoError(err)

	assert.NoError(g.RemoveRow([]int{0, 2}))
	assert.Equal(2, g.Width())
	assert.Equal(2, g.Height())
	assert.Equal([]uint8{3, 2, 5, 4}, g.Pix())

	flat, err := NewPixelGrid([]uint8{1, 2}, 2, 1, 1)
	assert.NoError(err)
	assert.ErrorIs(flat.RemoveRow([]int{0, 0}), ErrDegenerateGrid)
}

func TestPixelGrid_InsertColumn(t *testing.T) {
	assert := assert.New(t)

	g, err := NewPixelGrid([]uint8{10, 20}, 2, 1, 1)
	assert.NoError(err)

	assert.NoError(g.InsertColumn([]int{0}))
	assert.Equal(3, g.Width())
	assert.Equal([]uint8{10, 15, 20}, g.Pix())
}

func TestPixelGrid_InsertColumnAtBorder(t *testing.T) {
	assert := assert.New(t)

	g, err := NewPixelGrid([]uint8{10, 20}, 2, 1, 1)
	assert.NoError(err)

	// the right border has no next neighbor, the seam pixel is copied
	assert.NoError(g.InsertColumn([]int{1}))
	assert.Equal([]uint8{10, 20, 20}, g.Pix())
}

func TestPixelGrid_InsertRow(t *testing.T) {
	assert := assert.New(t)

	g, err := NewPixelGrid([]uint8{10, 20}, 1, 2, 1)
	assert.NoError(err)

	assert.NoError(g.InsertRow([]int{0}))
	assert.Equal(3, g.Height())
	assert.Equal([]uint8{10, 15, 20}, g.Pix())
}

func TestPixelGrid_Clone(t *testing.T) {
	assert := assert.New(t)

	g, err := NewPixelGrid([]uint8{1, 2, 3, 4}, 2, 2, 1)
	assert.NoError(err)

	cp := g.Clone()
	cp.Pix()[0] = 9
	assert.Equal(uint8(1), g.Pix()[0])
	assert.Equal(uint8(9), cp.Pix()[0])
}
