// Single channel implementation of the StackBlur algorithm described here:
// http://incubator.quasimondo.com/processing/fast_blur_deluxe.php

package carve

var mulTable = []uint32{
	512, 512, 456, 512, 328, 456, 335, 512, 405, 328, 271, 456, 388, 335, 292, 512,
	454, 405, 364, 328, 298, 271, 496, 456, 420, 388, 360, 335, 312, 292, 273, 512,
	482, 454, 428, 405, 383, 364, 345, 328, 312, 298, 284, 271, 259, 496, 475, 456,
	437, 420, 404, 388, 374, 360, 347, 335, 323, 312, 302, 292, 282, 273, 265, 512,
	497, 482, 468, 454, 441, 428, 417, 405, 394, 383, 373, 364, 354, 345, 337, 328,
	320, 312, 305, 298, 291, 284, 278, 271, 265, 259, 507, 496, 485, 475, 465, 456,
	446, 437, 428, 420, 412, 404, 396, 388, 381, 374, 367, 360, 354, 347, 341, 335,
	329, 323, 318, 312, 307, 302, 297, 292, 287, 282, 278, 273, 269, 265, 261, 512,
	505, 497, 489, 482, 475, 468, 461, 454, 447, 441, 435, 428, 422, 417, 411, 405,
	399, 394, 389, 383, 378, 373, 368, 364, 359, 354, 350, 345, 341, 337, 332, 328,
	324, 320, 316, 312, 309, 305, 301, 298, 294, 291, 287, 284, 281, 278, 274, 271,
	268, 265, 262, 259, 257, 507, 501, 496, 491, 485, 480, 475, 470, 465, 460, 456,
	451, 446, 442, 437, 433, 428, 424, 420, 416, 412, 408, 404, 400, 396, 392, 388,
	385, 381, 377, 374, 370, 367, 363, 360, 357, 354, 350, 347, 344, 341, 338, 335,
	332, 329, 326, 323, 320, 318, 315, 312, 310, 307, 304, 302, 299, 297, 294, 292,
	289, 287, 285, 282, 280, 278, 275, 273, 271, 269, 267, 265, 263, 261, 259,
}

var shgTable = []uint32{
	9, 11, 12, 13, 13, 14, 14, 15, 15, 15, 15, 16, 16, 16, 16, 17,
	17, 17, 17, 17, 17, 17, 18, 18, 18, 18, 18, 18, 18, 18, 18, 19,
	19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 20, 20, 20,
	20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 21,
	21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21,
	21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 22, 22, 22, 22, 22, 22,
	22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22,
	22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 23,
	23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23,
	23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23,
	23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23,
	23, 23, 23, 23, 23, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
}

// stackBlurPlane blurs a grayscale plane with the given radius. The plane is
// blurred in place with one horizontal and one vertical pass and returned for
// convenience. A radius below one leaves the plane untouched.
func stackBlurPlane(plane []uint8, width, height int, radius int) []uint8 {
	if radius < 1 {
		return plane
	}
	if radius > 254 {
		radius = 254
	}

	div := 2*radius + 1
	mulSum := mulTable[radius]
	shgSum := shgTable[radius]
	stack := make([]uint32, div)

	// horizontal pass
	for y := 0; y < height; y++ {
		blurLine(plane, stack, y*width, 1, width, radius, mulSum, shgSum)
	}
	// vertical pass
	for x := 0; x < width; x++ {
		blurLine(plane, stack, x, width, height, radius, mulSum, shgSum)
	}
	return plane
}

// blurLine blurs one row or column of the plane. The line starts at offset
// and advances by stride between consecutive pixels, n pixels in total.
func blurLine(plane []uint8, stack []uint32, offset, stride, n, radius int, mulSum, shgSum uint32) {
	var sum, inSum, outSum uint32

	at := func(i int) uint32 {
		if i > n-1 {
			i = n - 1
		}
		return uint32(plane[offset+i*stride])
	}

	first := at(0)
	for i := 0; i <= radius; i++ {
		stack[i] = first
		sum += first * uint32(i+1)
		outSum += first
	}
	for i := 1; i <= radius; i++ {
		p := at(i)
		stack[i+radius] = p
		sum += p * uint32(radius+1-i)
		inSum += p
	}

	div := 2*radius + 1
	sp := radius
	for i := 0; i < n; i++ {
		plane[offset+i*stride] = uint8((sum * mulSum) >> shgSum)
		sum -= outSum

		start := sp + div - radius
		if start >= div {
			start -= div
		}
		outSum -= stack[start]

		p := at(i + radius + 1)
		stack[start] = p
		inSum += p
		sum += inSum

		sp++
		if sp >= div {
			sp = 0
		}
		center := stack[sp]
		outSum += center
		inSum -= center
	}
}
