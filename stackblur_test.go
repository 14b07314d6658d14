package carve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackBlur_UniformPlaneUnchanged(t *testing.T) {
	assert := assert.New(t)

	const w, h = 8, 8
	plane := make([]uint8, w*h)
	for i := range plane {
		plane[i] = 0x80
	}
	out := stackBlurPlane(plane, w, h, 4)
	for _, v := range out {
		assert.Equal(uint8(0x80), v)
	}
}

func TestStackBlur_ImpulseSpreadsSymmetrically(t *testing.T) {
	assert := assert.New(t)

	// a single bright pixel in the middle of a black plane
	const w, h, cx, cy, radius = 9, 9, 4, 4, 2
	plane := make([]uint8, w*h)
	plane[cy*w+cx] = 0xff
	out := stackBlurPlane(plane, w, h, radius)

	center := out[cy*w+cx]
	assert.NotZero(center)
	for _, v := range out {
		assert.LessOrEqual(v, center)
	}

	// mirrored neighbors carry the same weight on both axes
	for d := 1; d < w-cx; d++ {
		assert.Equal(out[cy*w+cx-d], out[cy*w+cx+d], "columns %d apart", d)
	}
	for d := 1; d < h-cy; d++ {
		assert.Equal(out[(cy-d)*w+cx], out[(cy+d)*w+cx], "rows %d apart", d)
	}

	// the spread is bounded by the radius in each axis
	assert.NotZero(out[cy*w+cx-radius])
	assert.Zero(out[cy*w+cx-radius-1])
	assert.Zero(out[(cy-radius-1)*w+cx])
}

func TestStackBlur_RadiusBelowOneIsNoop(t *testing.T) {
	assert := assert.New(t)

	plane := []uint8{1, 2, 3, 4, 5, 6}
	out := stackBlurPlane(plane, 3, 2, 0)
	assert.Equal([]uint8{1, 2, 3, 4, 5, 6}, out)
}
