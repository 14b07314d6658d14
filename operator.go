package carve

import (
	"github.com/pkg/errors"
)

// The seam operators apply a found seam to a grid. Every operator validates
// the seam length against the dimension orthogonal to the operation before
// touching a pixel; coordinate bounds are re-checked by the grid itself.

// RemoveVerticalSeam deletes the seam column of every row, shrinking the
// grid width by one.
func RemoveVerticalSeam(g *PixelGrid, s Seam) error {
	if len(s) != g.height {
		return errors.Wrapf(ErrSeamLength, "vertical seam of %d entries on a %d row grid", len(s), g.height)
	}
	return g.RemoveColumn(s)
}

// RemoveHorizontalSeam deletes the seam row of every column, shrinking the
// grid height by one.
func RemoveHorizontalSeam(g *PixelGrid, s Seam) error {
	if len(s) != g.width {
		return errors.Wrapf(ErrSeamLength, "horizontal seam of %d entries on a %d column grid", len(s), g.width)
	}
	return g.RemoveRow(s)
}

// InsertVerticalSeam duplicates the seam into a new, neighbor-averaged
// column, growing the grid width by one.
func InsertVerticalSeam(g *PixelGrid, s Seam) error {
	if len(s) != g.height {
		return errors.Wrapf(ErrSeamLength, "vertical seam of %d entries on a %d row grid", len(s), g.height)
	}
	return g.InsertColumn(s)
}

// InsertHorizontalSeam duplicates the seam into a new, neighbor-averaged
// row, growing the grid height by one.
func InsertHorizontalSeam(g *PixelGrid, s Seam) error {
	if len(s) != g.width {
		return errors.Wrapf(ErrSeamLength, "horizontal seam of %d entries on a %d column grid", len(s), g.width)
	}
	return g.InsertRow(s)
}

// InsertVerticalSeams inserts a batch of seams found on the same grid.
// Each insertion shifts the columns to its right, so the remaining seam
// coordinates are adjusted after every step. The caller's seams are not
// modified.
func InsertVerticalSeams(g *PixelGrid, seams []Seam) error {
	pending := cloneSeams(seams)
	for i, s := range pending {
		if err := InsertVerticalSeam(g, s); err != nil {
			return err
		}
		for _, t := range pending[i+1:] {
			for r := range t {
				if t[r] > s[r] {
					t[r]++
				}
			}
		}
	}
	return nil
}

// InsertHorizontalSeams is the row analogue of InsertVerticalSeams.
func InsertHorizontalSeams(g *PixelGrid, seams []Seam) error {
	pending := cloneSeams(seams)
	for i, s := range pending {
		if err := InsertHorizontalSeam(g, s); err != nil {
			return err
		}
		for _, t := range pending[i+1:] {
			for c := range t {
				if t[c] > s[c] {
					t[c]++
				}
			}
		}
	}
	return nil
}

func cloneSeams(seams []Seam) []Seam {
	out := make([]Seam, len(seams))
	for i, s := range seams {
		out[i] = append(Seam(nil), s...)
	}
	return out
}
