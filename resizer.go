package carve

import (
	"github.com/pkg/errors"
)

// dimState tracks the resizing progress of one dimension.
type dimState uint8

const (
	stateDone dimState = iota
	stateShrinking
	stateGrowing
)

func dimStateOf(current, target int) dimState {
	switch {
	case current > target:
		return stateShrinking
	case current < target:
		return stateGrowing
	default:
		return stateDone
	}
}

// Resizer drives the carving loop: recompute the energy map, find a seam,
// apply it, until the grid reaches the target width and height.
//
// When both dimensions need adjusting the two axes strictly alternate, one
// width step then one height step. Carving all width seams first would bias
// the energy map toward one axis and visibly changes the output of
// non-square resizes, so the alternation is a deliberate policy, not an
// implementation accident.
type Resizer struct {
	TargetWidth  int
	TargetHeight int

	// Energy overrides the reference gradient energy function when set.
	Energy EnergyFunc
}

// Resize consumes the grid and returns it reshaped to the target dimensions.
// The grid passed in must not be used by the caller afterwards.
func (rz *Resizer) Resize(g *PixelGrid) (*PixelGrid, error) {
	if rz.TargetWidth < 1 || rz.TargetHeight < 1 {
		return nil, errors.Wrapf(ErrInvalidTarget, "requested %dx%d", rz.TargetWidth, rz.TargetHeight)
	}
	energy := rz.Energy
	if energy == nil {
		energy = GradientEnergy
	}

	widthTurn := true
	for {
		ws := dimStateOf(g.width, rz.TargetWidth)
		hs := dimStateOf(g.height, rz.TargetHeight)
		if ws == stateDone && hs == stateDone {
			return g, nil
		}
		onWidth := ws != stateDone && (widthTurn || hs == stateDone)
		widthTurn = !onWidth

		var err error
		if onWidth {
			err = rz.widthStep(g, ws, energy)
		} else {
			err = rz.heightStep(g, hs, energy)
		}
		if err != nil {
			return nil, err
		}
	}
}

// widthStep performs one vertical seam cycle: a single removal when
// shrinking, or a batch insertion of the k cheapest seams when growing.
func (rz *Resizer) widthStep(g *PixelGrid, state dimState, energy EnergyFunc) error {
	m := energy(g)
	if state == stateShrinking {
		s, err := FindVerticalSeam(m)
		if err != nil {
			return err
		}
		return RemoveVerticalSeam(g, s)
	}
	seams, err := FindVerticalSeams(m, rz.TargetWidth-g.width)
	if err != nil {
		return err
	}
	return InsertVerticalSeams(g, seams)
}

// heightStep is the horizontal seam analogue of widthStep.
func (rz *Resizer) heightStep(g *PixelGrid, state dimState, energy EnergyFunc) error {
	m := energy(g)
	if state == stateShrinking {
		s, err := FindHorizontalSeam(m)
		if err != nil {
			return err
		}
		return RemoveHorizontalSeam(g, s)
	}
	seams, err := FindHorizontalSeams(m, rz.TargetHeight-g.height)
	if err != nil {
		return err
	}
	return InsertHorizontalSeams(g, seams)
}

// Resize performs content-aware resizing of a raw pixel buffer. The buffer
// holds width*height pixels of the given channel count in row-major order.
// It returns the reshaped buffer together with its new dimensions. The input
// buffer is owned by the call and must not be reused by the caller.
func Resize(pixels []uint8, width, height, channels, targetWidth, targetHeight int) ([]uint8, int, int, error) {
	g, err := NewPixelGrid(pixels, width, height, channels)
	if err != nil {
		return nil, 0, 0, err
	}
	rz := &Resizer{TargetWidth: targetWidth, TargetHeight: targetHeight}
	out, err := rz.Resize(g)
	if err != nil {
		return nil, 0, 0, err
	}
	return out.pix, out.width, out.height, nil
}
