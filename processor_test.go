package carve

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	imgWidth  = 10
	imgHeight = 10
)

func whiteImage(t *testing.T, width, height int) *image.NRGBA {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{image.White}, image.Point{}, draw.Src)
	return img
}

func TestProcessor_ShrinkImageWidth(t *testing.T) {
	assert := assert.New(t)

	p := &Processor{NewWidth: imgWidth / 2, NewHeight: imgHeight}
	res, err := p.Resize(whiteImage(t, imgWidth, imgHeight))
	assert.NoError(err)
	assert.Equal(imgWidth/2, res.Bounds().Dx())
	assert.Equal(imgHeight, res.Bounds().Dy())
}

func TestProcessor_ShrinkImageHeight(t *testing.T) {
	assert := assert.New(t)

	p := &Processor{NewWidth: imgWidth, NewHeight: imgHeight / 2}
	res, err := p.Resize(whiteImage(t, imgWidth, imgHeight))
	assert.NoError(err)
	assert.Equal(imgWidth, res.Bounds().Dx())
	assert.Equal(imgHeight/2, res.Bounds().Dy())
}

func TestProcessor_KeepsUnsetDimension(t *testing.T) {
	assert := assert.New(t)

	p := &Processor{NewWidth: imgWidth - 3}
	res, err := p.Resize(whiteImage(t, imgWidth, imgHeight))
	assert.NoError(err)
	assert.Equal(imgWidth-3, res.Bounds().Dx())
	assert.Equal(imgHeight, res.Bounds().Dy())
}

func TestProcessor_EnlargeImageWidth(t *testing.T) {
	assert := assert.New(t)

	p := &Processor{NewWidth: imgWidth + 5, NewHeight: imgHeight}
	res, err := p.Resize(whiteImage(t, imgWidth, imgHeight))
	assert.NoError(err)
	assert.Equal(imgWidth+5, res.Bounds().Dx())
	assert.Equal(imgHeight, res.Bounds().Dy())
}

func TestProcessor_Percentage(t *testing.T) {
	assert := assert.New(t)

	p := &Processor{NewWidth: 50, NewHeight: 50, Percentage: true}
	res, err := p.Resize(whiteImage(t, imgWidth, imgHeight))
	assert.NoError(err)
	assert.Equal(imgWidth/2, res.Bounds().Dx())
	assert.Equal(imgHeight/2, res.Bounds().Dy())
}

func TestProcessor_PercentageOverLimit(t *testing.T) {
	p := &Processor{NewWidth: 120, NewHeight: 50, Percentage: true}
	_, err := p.Resize(whiteImage(t, imgWidth, imgHeight))
	assert.Error(t, err)
}

func TestProcessor_Square(t *testing.T) {
	assert := assert.New(t)

	p := &Processor{NewWidth: 8, NewHeight: 6, Square: true}
	res, err := p.Resize(whiteImage(t, 12, 10))
	assert.NoError(err)
	assert.Equal(6, res.Bounds().Dx())
	assert.Equal(6, res.Bounds().Dy())
}

func TestProcessor_SquareNeedsBothDimensions(t *testing.T) {
	p := &Processor{NewWidth: 8, Square: true}
	_, err := p.Resize(whiteImage(t, 12, 10))
	assert.Error(t, err)
}

func TestProcessor_ProtectedRegionSurvives(t *testing.T) {
	assert := assert.New(t)

	// a dark block inside the protection region must keep every pixel
	img := whiteImage(t, imgWidth, imgHeight)
	protected := image.Rect(2, 2, 5, 8)
	draw.Draw(img, protected, &image.Uniform{image.Black}, image.Point{}, draw.Src)

	p := &Processor{
		NewWidth:  imgWidth - 2,
		NewHeight: imgHeight,
		Protect:   []image.Rectangle{protected},
	}
	res, err := p.Resize(img)
	assert.NoError(err)
	assert.Equal(imgWidth-2, res.Bounds().Dx())

	var dark int
	out := imgToNRGBA(res)
	for y := 0; y < out.Bounds().Dy(); y++ {
		for x := 0; x < out.Bounds().Dx(); x++ {
			if out.NRGBAAt(x, y).R == 0 {
				dark++
			}
		}
	}
	assert.Equal(protected.Dx()*protected.Dy(), dark)
}

func TestProcessor_DebugImage(t *testing.T) {
	assert := assert.New(t)

	p := &Processor{
		NewWidth:  imgWidth - 1,
		NewHeight: imgHeight,
		Debug:     true,
		SeamColor: "#ff0000",
	}
	_, err := p.Resize(whiteImage(t, imgWidth, imgHeight))
	assert.NoError(err)
	assert.NotNil(p.DebugImage)
}

func TestProcessor_FaceDetectWithoutClassifier(t *testing.T) {
	p := &Processor{NewWidth: 5, NewHeight: imgHeight, FaceDetect: true}
	_, err := p.Resize(whiteImage(t, imgWidth, imgHeight))
	assert.Error(t, err)
}

func TestProcessor_Process(t *testing.T) {
	assert := assert.New(t)

	var src bytes.Buffer
	assert.NoError(png.Encode(&src, whiteImage(t, imgWidth, imgHeight)))

	var dst bytes.Buffer
	p := &Processor{NewWidth: 6, NewHeight: 8}
	assert.NoError(p.Process(&src, &dst))

	out, _, err := image.Decode(&dst)
	assert.NoError(err)
	assert.Equal(6, out.Bounds().Dx())
	assert.Equal(8, out.Bounds().Dy())
}

func TestProcessor_BlurredEnergyPipeline(t *testing.T) {
	assert := assert.New(t)

	// same defaults the CLI runs with: sobel edges smoothed by a stack blur
	p := &Processor{
		NewWidth:       imgWidth - 3,
		NewHeight:      imgHeight - 2,
		BlurRadius:     4,
		SobelThreshold: 4,
	}
	res, err := p.Resize(whiteImage(t, imgWidth, imgHeight))
	assert.NoError(err)
	assert.Equal(imgWidth-3, res.Bounds().Dx())
	assert.Equal(imgHeight-2, res.Bounds().Dy())

	out := imgToNRGBA(res)
	for i, v := range out.Pix {
		assert.Equal(uint8(0xff), v, "pixel component %d", i)
	}
}

func TestProcessor_PreScale(t *testing.T) {
	assert := assert.New(t)

	p := &Processor{NewWidth: 8, NewHeight: 8, PreScale: true}
	res, err := p.Resize(whiteImage(t, 32, 24))
	assert.NoError(err)
	assert.Equal(8, res.Bounds().Dx())
	assert.Equal(8, res.Bounds().Dy())
}
