package carve

import "errors"

// Errors reported by the carving core. ErrShape and ErrInvalidTarget are the
// only user facing kinds and both are detected before any seam work starts,
// so no partial output is ever produced on bad input. The remaining kinds
// signal a broken internal invariant: if one of them surfaces it indicates a
// bug in the resizing bookkeeping, not a recoverable runtime condition.
var (
	// ErrShape is returned when the pixel buffer length is inconsistent
	// with the declared width, height and channel count.
	ErrShape = errors.New("pixel buffer length does not match the declared dimensions")

	// ErrInvalidTarget is returned when the requested target width or height is zero.
	ErrInvalidTarget = errors.New("target width and height must be greater than zero")

	// ErrOutOfRange is returned when a seam coordinate falls outside the current grid bounds.
	ErrOutOfRange = errors.New("seam coordinate outside the grid bounds")

	// ErrSeamLength is returned when a seam length differs from the dimension it spans.
	ErrSeamLength = errors.New("seam length does not match the orthogonal dimension")

	// ErrDegenerateGrid is returned when a zero dimension grid reaches the seam finder.
	ErrDegenerateGrid = errors.New("zero dimension grid")
)
