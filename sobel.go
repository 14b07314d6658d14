package carve

import (
	"math"
)

type kernel [3][3]int

var (
	sobelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	sobelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// sobelPlane detects the edges of a grayscale plane.
// See https://en.wikipedia.org/wiki/Sobel_operator
//
// The returned plane holds the gradient magnitude of every pixel clamped to
// the 0-255 range; magnitudes at or below the threshold are flattened to zero
// so faint texture does not attract the seam finder.
func sobelPlane(gray []uint8, width, height int, threshold float64) []uint8 {
	edges := make([]uint8, len(gray))

	clamp := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			var sumX, sumY int
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					sr := clamp(r+ky-1, height-1)
					sc := clamp(c+kx-1, width-1)
					px := int(gray[sr*width+sc])
					sumX += px * sobelX[ky][kx]
					sumY += px * sobelY[ky][kx]
				}
			}
			magnitude := math.Sqrt(float64(sumX*sumX + sumY*sumY))
			if magnitude > 255 {
				magnitude = 255
			}
			if magnitude > threshold {
				edges[r*width+c] = uint8(magnitude)
			}
		}
	}
	return edges
}

// grayscalePlane converts a grid to a single luminance value per pixel.
// Grids with fewer than three channels are copied through the first channel.
func grayscalePlane(g *PixelGrid) []uint8 {
	gray := make([]uint8, g.width*g.height)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			px := g.At(r, c)
			if g.channels < 3 {
				gray[r*g.width+c] = px[0]
				continue
			}
			lum := 0.299*float64(px[0]) + 0.587*float64(px[1]) + 0.114*float64(px[2])
			gray[r*g.width+c] = uint8(lum)
		}
	}
	return gray
}
