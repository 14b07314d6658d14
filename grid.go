package carve

import (
	"github.com/pkg/errors"
)

// PixelGrid owns a rectangular, row-major buffer of per-pixel channel values.
// A pixel at (row, col) starts at offset (row*width+col)*channels inside the
// buffer. The grid is mutated in place by the seam operations and has a single
// owner at any time: ownership moves from the resizer into each carving step
// and back, it is never shared across steps.
type PixelGrid struct {
	width    int
	height   int
	channels int
	pix      []uint8
}

// NewPixelGrid wraps a raw pixel buffer into a grid of the declared shape.
// The buffer is owned by the grid from this point on.
func NewPixelGrid(pix []uint8, width, height, channels int) (*PixelGrid, error) {
	if width < 1 || height < 1 || channels < 1 {
		return nil, errors.Wrapf(ErrShape, "invalid grid shape %dx%dx%d", width, height, channels)
	}
	if len(pix) != width*height*channels {
		return nil, errors.Wrapf(ErrShape, "have %d values, want %d", len(pix), width*height*channels)
	}
	return &PixelGrid{
		width:    width,
		height:   height,
		channels: channels,
		pix:      pix,
	}, nil
}

// Width returns the current number of columns.
func (g *PixelGrid) Width() int { return g.width }

// Height returns the current number of rows.
func (g *PixelGrid) Height() int { return g.height }

// Channels returns the number of components per pixel.
func (g *PixelGrid) Channels() int { return g.channels }

// Pix returns the underlying pixel buffer.
func (g *PixelGrid) Pix() []uint8 { return g.pix }

// At returns the channel values of the pixel at (row, col).
// The returned slice aliases the grid buffer.
func (g *PixelGrid) At(row, col int) []uint8 {
	off := (row*g.width + col) * g.channels
	return g.pix[off : off+g.channels : off+g.channels]
}

// Clone returns a deep copy of the grid.
func (g *PixelGrid) Clone() *PixelGrid {
	pix := make([]uint8, len(g.pix))
	copy(pix, g.pix)
	return &PixelGrid{
		width:    g.width,
		height:   g.height,
		channels: g.channels,
		pix:      pix,
	}
}

// RemoveColumn deletes one pixel per row, seam[r] being the column removed
// from row r. The remaining row entries shift left and the width shrinks by
// one. The whole seam is validated before the first pixel moves, so a failed
// call leaves the grid untouched.
func (g *PixelGrid) RemoveColumn(seam []int) error {
	if len(seam) != g.height {
		return errors.Wrapf(ErrSeamLength, "have %d entries, want %d", len(seam), g.height)
	}
	if g.width == 1 {
		return errors.Wrap(ErrDegenerateGrid, "cannot remove the last column")
	}
	for r, c := range seam {
		if c < 0 || c >= g.width {
			return errors.Wrapf(ErrOutOfRange, "row %d, column %d of %d", r, c, g.width)
		}
	}

	w, ch := g.width, g.channels
	newW := w - 1
	for r := 0; r < g.height; r++ {
		c := seam[r]
		src := r * w * ch
		dst := r * newW * ch
		copy(g.pix[dst:dst+c*ch], g.pix[src:src+c*ch])
		copy(g.pix[dst+c*ch:dst+newW*ch], g.pix[src+(c+1)*ch:src+w*ch])
	}
	g.width = newW
	g.pix = g.pix[:newW*g.height*ch]
	return nil
}

// RemoveRow deletes one pixel per column, seam[c] being the row removed from
// column c. The remaining column entries shift up and the height shrinks by one.
func (g *PixelGrid) RemoveRow(seam []int) error {
	if len(seam) != g.width {
		return errors.Wrapf(ErrSeamLength, "have %d entries, want %d", len(seam), g.width)
	}
	if g.height == 1 {
		return errors.Wrap(ErrDegenerateGrid, "cannot remove the last row")
	}
	for c, r := range seam {
		if r < 0 || r >= g.height {
			return errors.Wrapf(ErrOutOfRange, "column %d, row %d of %d", c, r, g.height)
		}
	}

	w, ch := g.width, g.channels
	newH := g.height - 1
	// Reads always come from a row at or below the write position,
	// so the compaction is safe to run in place top to bottom.
	for rOut := 0; rOut < newH; rOut++ {
		for c := 0; c < w; c++ {
			rIn := rOut
			if rOut >= seam[c] {
				rIn = rOut + 1
			}
			if rIn == rOut {
				continue
			}
			dst := (rOut*w + c) * ch
			src := (rIn*w + c) * ch
			copy(g.pix[dst:dst+ch], g.pix[src:src+ch])
		}
	}
	g.height = newH
	g.pix = g.pix[:w*newH*ch]
	return nil
}

// InsertColumn inserts one pixel per row right after the seam column of that
// row. The new pixel is the channel-wise average of the seam pixel and its
// right neighbor, or a plain copy when the seam runs along the right border.
// The width grows by one.
func (g *PixelGrid) InsertColumn(seam []int) error {
	if len(seam) != g.height {
		return errors.Wrapf(ErrSeamLength, "have %d entries, want %d", len(seam), g.height)
	}
	for r, c := range seam {
		if c < 0 || c >= g.width {
			return errors.Wrapf(ErrOutOfRange, "row %d, column %d of %d", r, c, g.width)
		}
	}

	w, ch := g.width, g.channels
	newW := w + 1
	pix := make([]uint8, newW*g.height*ch)
	for r := 0; r < g.height; r++ {
		c := seam[r]
		src := r * w * ch
		dst := r * newW * ch
		copy(pix[dst:dst+(c+1)*ch], g.pix[src:src+(c+1)*ch])
		blendPixels(pix[dst+(c+1)*ch:dst+(c+2)*ch], g.At(r, c), g.at(r, c+1, c))
		copy(pix[dst+(c+2)*ch:dst+newW*ch], g.pix[src+(c+1)*ch:src+w*ch])
	}
	g.width = newW
	g.pix = pix
	return nil
}

// InsertRow inserts one pixel per column right below the seam row of that
// column, averaging the seam pixel with its lower neighbor. The height grows
// by one.
func (g *PixelGrid) InsertRow(seam []int) error {
	if len(seam) != g.width {
		return errors.Wrapf(ErrSeamLength, "have %d entries, want %d", len(seam), g.width)
	}
	for c, r := range seam {
		if r < 0 || r >= g.height {
			return errors.Wrapf(ErrOutOfRange, "column %d, row %d of %d", c, r, g.height)
		}
	}

	w, ch := g.width, g.channels
	newH := g.height + 1
	pix := make([]uint8, w*newH*ch)
	for rOut := 0; rOut < newH; rOut++ {
		for c := 0; c < w; c++ {
			dst := (rOut*w + c) * ch
			switch {
			case rOut <= seam[c]:
				copy(pix[dst:dst+ch], g.At(rOut, c))
			case rOut == seam[c]+1:
				lower := seam[c] + 1
				if lower >= g.height {
					lower = seam[c]
				}
				blendPixels(pix[dst:dst+ch], g.At(seam[c], c), g.At(lower, c))
			default:
				copy(pix[dst:dst+ch], g.At(rOut-1, c))
			}
		}
	}
	g.height = newH
	g.pix = pix
	return nil
}

// at is like At but falls back to the fallback column when col is out of range.
func (g *PixelGrid) at(row, col, fallback int) []uint8 {
	if col >= g.width {
		col = fallback
	}
	return g.At(row, col)
}

// blendPixels writes the channel-wise average of a and b into dst.
func blendPixels(dst, a, b []uint8) {
	for i := range dst {
		dst[i] = uint8((int(a[i]) + int(b[i])) / 2)
	}
}
