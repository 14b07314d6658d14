package carve

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// gridFromImage copies an NRGBA image into a four channel pixel grid.
func gridFromImage(img *image.NRGBA) (*PixelGrid, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		src := img.PixOffset(img.Bounds().Min.X, img.Bounds().Min.Y+y)
		copy(pix[y*w*4:(y+1)*w*4], img.Pix[src:src+w*4])
	}
	return NewPixelGrid(pix, w, h, 4)
}

// gridToImage wraps a four channel grid back into an NRGBA image.
func gridToImage(g *PixelGrid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	copy(img.Pix, g.pix)
	return img
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Bounds().Min == (image.Point{}) {
		return src
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		di := dst.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.Pix[di+0] = c.R
			dst.Pix[di+1] = c.G
			dst.Pix[di+2] = c.B
			dst.Pix[di+3] = c.A
			di += 4
		}
	}
	return dst
}

// encodeImg encodes the image into the writer, picking the format from the
// file extension when the destination is a file and defaulting to JPEG
// everywhere else.
func encodeImg(w io.Writer, img image.Image) error {
	ext := ""
	if f, ok := w.(*os.File); ok {
		ext = filepath.Ext(f.Name())
	}
	switch ext {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case "", ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	default:
		return errors.Errorf("unsupported image format: %s", ext)
	}
}
