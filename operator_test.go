package carve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniformGrid(t *testing.T, width, height, channels int, value uint8) *PixelGrid {
	t.Helper()
	pix := make([]uint8, width*height*channels)
	for i := range pix {
		pix[i] = value
	}
	g, err := NewPixelGrid(pix, width, height, channels)
	if err != nil {
		t.Fatalf("could not build the %dx%d fixture grid: %v", width, height, err)
	}
	return g
}

func TestSeamOperator_RemoveVerticalSeam(t *testing.T) {
	assert := assert.New(t)

	g := uniformGrid(t, 4, 3, 3, 0x55)
	assert.NoError(RemoveVerticalSeam(g, Seam{0, 1, 2}))
	assert.Equal(3, g.Width())
	assert.Equal(3, g.Height())
}

func TestSeamOperator_RemoveHorizontalSeam(t *testing.T) {
	assert := assert.New(t)

	g := uniformGrid(t, 4, 3, 3, 0x55)
	assert.NoError(RemoveHorizontalSeam(g, Seam{0, 1, 1, 2}))
	assert.Equal(4, g.Width())
	assert.Equal(2, g.Height())
}

func TestSeamOperator_SeamLengthMismatch(t *testing.T) {
	assert := assert.New(t)

	g := uniformGrid(t, 4, 3, 1, 0)
	assert.ErrorIs(RemoveVerticalSeam(g, Seam{0, 1}), ErrSeamLength)
	assert.ErrorIs(RemoveHorizontalSeam(g, Seam{0, 1, 2}), ErrSeamLength)
	assert.ErrorIs(InsertVerticalSeam(g, Seam{0}), ErrSeamLength)
	assert.ErrorIs(InsertHorizontalSeam(g, Seam{0}), ErrSeamLength)
}

func TestSeamOperator_OutOfRangeCoordinate(t *testing.T) {
	assert := assert.New(t)

	g := uniformGrid(t, 4, 3, 1, 0)
	assert.ErrorIs(RemoveVerticalSeam(g, Seam{0, 4, 0}), ErrOutOfRange)
	assert.ErrorIs(InsertVerticalSeam(g, Seam{0, -1, 0}), ErrOutOfRange)
	assert.ErrorIs(RemoveHorizontalSeam(g, Seam{0, 3, 0, 0}), ErrOutOfRange)
}

func TestSeamOperator_InsertVerticalSeamAverages(t *testing.T) {
	assert := assert.New(t)

	g, err := NewPixelGrid([]uint8{10, 20, 30}, 3, 1, 1)
	assert.NoError(err)

	assert.NoError(InsertVerticalSeam(g, Seam{0}))
	assert.Equal(4, g.Width())
	assert.Equal([]uint8{10, 15, 20, 30}, g.Pix())
}

func TestSeamOperator_BatchInsertAdjustsFollowingSeams(t *testing.T) {
	assert := assert.New(t)

	g, err := NewPixelGrid([]uint8{10, 20, 30}, 3, 1, 1)
	assert.NoError(err)

	// both seams reference columns of the original grid; the second one
	// must shift right after the first insertion
	seams := []Seam{{0}, {1}}
	assert.NoError(InsertVerticalSeams(g, seams))
	assert.Equal(5, g.Width())
	assert.Equal([]uint8{10, 15, 20, 25, 30}, g.Pix())

	// the caller's seams are left untouched
	assert.Equal([]Seam{{0}, {1}}, seams)
}

func TestSeamOperator_BatchInsertHorizontal(t *testing.T) {
	assert := assert.New(t)

	g, err := NewPixelGrid([]uint8{10, 20, 30}, 1, 3, 1)
	assert.NoError(err)

	assert.NoError(InsertHorizontalSeams(g, []Seam{{0}, {1}}))
	assert.Equal(5, g.Height())
	assert.Equal([]uint8{10, 15, 20, 25, 30}, g.Pix())
}
