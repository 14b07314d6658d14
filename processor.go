package carve

import (
	"image"
	_ "image/gif"
	"io"
	"math"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"
	"github.com/pixelforge/carve/utils"
)

// SeamCarver is the interface implemented by any type able to rescale an
// image through seam carving.
type SeamCarver interface {
	Resize(*image.NRGBA) (image.Image, error)
}

var _ SeamCarver = (*Processor)(nil)

// protectedEnergy is the ceiling assigned to cells covered by a protection
// region. It exceeds any reachable edge magnitude by orders of magnitude, so
// seams only cross protected zones when no free path exists.
const protectedEnergy = 1 << 20

// Processor resizes images through the carving core. The exported fields are
// the processing options; the zero value shrinks nothing and protects nothing.
type Processor struct {
	// NewWidth and NewHeight are the requested dimensions. A zero value
	// keeps the source dimension. With Percentage set they are read as
	// percentages of the source dimensions instead.
	NewWidth   int
	NewHeight  int
	Percentage bool

	// Square carves the longer edge down to the shorter one.
	Square bool

	// SobelThreshold and BlurRadius tune the edge based energy pipeline.
	SobelThreshold int
	BlurRadius     int

	// PreScale rescales the image with a Lanczos filter down to the point
	// where seam carving takes over, which considerably speeds up large
	// reductions on both axes.
	PreScale bool

	// Debug retains the latest carving step with the removed seams painted
	// in SeamColor, retrievable through DebugImage.
	Debug     bool
	SeamColor string

	// FaceDetect routes seams around detected faces. The pigo cascade
	// classifier is loaded from CascadeFile on first use.
	FaceDetect  bool
	CascadeFile string
	FaceAngle   float64

	// Protect lists additional regions seams should avoid.
	Protect []image.Rectangle

	// Spinner is the optional progress indicator driven by the CLI layer.
	Spinner *utils.Spinner

	// DebugImage holds the most recent debug frame when Debug is set.
	DebugImage *image.NRGBA

	faceDetector *pigo.Pigo
}

// Resize rescales the image to the processor's target dimensions.
func (p *Processor) Resize(img *image.NRGBA) (image.Image, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	tw, th, err := p.targetSize(w, h)
	if err != nil {
		return nil, err
	}
	if tw == w && th == h {
		return img, nil
	}

	if p.PreScale && tw < w && th < h {
		img = p.prescale(img, tw, th)
	}

	protect, err := p.protectPlane(img)
	if err != nil {
		return nil, err
	}
	g, err := gridFromImage(img)
	if err != nil {
		return nil, err
	}
	if err := p.carve(g, protect, tw, th); err != nil {
		return nil, err
	}
	return gridToImage(g), nil
}

// Process decodes an image from the reader, rescales it and encodes the
// result into the writer. Using the io interfaces keeps the processor
// agnostic of files, pipes and network sources.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	src, _, err := image.Decode(r)
	if err != nil {
		return errors.Wrap(err, "could not decode the source image")
	}
	res, err := p.Resize(imgToNRGBA(src))
	if err != nil {
		return errors.Wrap(err, "error rescaling the image")
	}
	return encodeImg(w, res)
}

// targetSize resolves the processing options into absolute target dimensions.
func (p *Processor) targetSize(w, h int) (int, int, error) {
	tw, th := p.NewWidth, p.NewHeight

	if p.Percentage {
		if tw > 100 || th > 100 {
			return 0, 0, errors.New("cannot use a percentage over 100 for image enlargement")
		}
		if tw > 0 {
			tw = int(math.Round(float64(w) * float64(tw) / 100))
		}
		if th > 0 {
			th = int(math.Round(float64(h) * float64(th) / 100))
		}
	}
	if tw == 0 {
		tw = w
	}
	if th == 0 {
		th = h
	}

	if p.Square {
		if p.NewWidth == 0 || p.NewHeight == 0 {
			return 0, 0, errors.New("please provide a new width and height when using the square option")
		}
		tw = utils.Min(tw, th)
		th = tw
	}

	if tw < 1 || th < 1 {
		return 0, 0, errors.Wrapf(ErrInvalidTarget, "requested %dx%d", tw, th)
	}
	return tw, th, nil
}

// prescale shrinks the image by the smaller scale factor of the two axes,
// preserving the aspect ratio, so that only the remaining pixels go through
// the carving loop.
func (p *Processor) prescale(img *image.NRGBA, tw, th int) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	sf := math.Min(float64(w)/float64(tw), float64(h)/float64(th))
	if sf <= 1 {
		return img
	}
	nw := int(math.Round(float64(w) / sf))
	scaled := imaging.Resize(img, nw, 0, imaging.Lanczos)
	if scaled.Bounds().Dx() < tw || scaled.Bounds().Dy() < th {
		return img
	}
	return scaled
}

// carve runs the carving loop over the image grid, keeping the protection
// plane in sync with every applied seam. The two axes strictly alternate
// whenever both still need adjusting.
func (p *Processor) carve(g, protect *PixelGrid, tw, th int) error {
	widthTurn := true
	for {
		ws := dimStateOf(g.width, tw)
		hs := dimStateOf(g.height, th)
		if ws == stateDone && hs == stateDone {
			return nil
		}
		onWidth := ws != stateDone && (widthTurn || hs == stateDone)
		widthTurn = !onWidth

		m := p.energyMap(g, protect)
		var err error
		switch {
		case onWidth && ws == stateShrinking:
			err = p.removeStep(g, protect, m, true)
		case onWidth:
			err = p.insertStep(g, protect, m, tw-g.width, true)
		case hs == stateShrinking:
			err = p.removeStep(g, protect, m, false)
		default:
			err = p.insertStep(g, protect, m, th-g.height, false)
		}
		if err != nil {
			return err
		}
	}
}

func (p *Processor) removeStep(g, protect *PixelGrid, m *EnergyMap, vertical bool) error {
	find, remove := FindHorizontalSeam, RemoveHorizontalSeam
	if vertical {
		find, remove = FindVerticalSeam, RemoveVerticalSeam
	}
	s, err := find(m)
	if err != nil {
		return err
	}
	p.markSeams(g, []Seam{s}, vertical)
	if err := remove(g, s); err != nil {
		return err
	}
	if protect != nil {
		return remove(protect, s)
	}
	return nil
}

func (p *Processor) insertStep(g, protect *PixelGrid, m *EnergyMap, k int, vertical bool) error {
	find, insert := FindHorizontalSeams, InsertHorizontalSeams
	if vertical {
		find, insert = FindVerticalSeams, InsertVerticalSeams
	}
	seams, err := find(m, k)
	if err != nil {
		return err
	}
	p.markSeams(g, seams, vertical)
	if err := insert(g, seams); err != nil {
		return err
	}
	if protect != nil {
		return insert(protect, seams)
	}
	return nil
}

// energyMap builds the processor energy: grayscale conversion, Sobel edge
// detection, stack blur smoothing, then the protection ceiling on top.
func (p *Processor) energyMap(g, protect *PixelGrid) *EnergyMap {
	gray := grayscalePlane(g)
	edges := sobelPlane(gray, g.width, g.height, float64(p.SobelThreshold))
	edges = stackBlurPlane(edges, g.width, g.height, p.BlurRadius)

	m := NewEnergyMap(g.width, g.height)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			e := int(edges[r*g.width+c])
			if protect != nil && protect.At(r, c)[0] > 0 {
				e = protectedEnergy
			}
			m.Set(r, c, e)
		}
	}
	return m
}

// protectPlane rasterizes the protection rectangles, including the detected
// faces, into a single channel grid carved alongside the image.
func (p *Processor) protectPlane(img *image.NRGBA) (*PixelGrid, error) {
	rects := append([]image.Rectangle(nil), p.Protect...)
	if p.FaceDetect {
		faces, err := p.detectFaces(img)
		if err != nil {
			return nil, err
		}
		rects = append(rects, faces...)
	}
	if len(rects) == 0 {
		return nil, nil
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	plane := make([]uint8, w*h)
	for _, rect := range rects {
		rect = rect.Intersect(image.Rect(0, 0, w, h))
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				plane[y*w+x] = 0xff
			}
		}
	}
	return NewPixelGrid(plane, w, h, 1)
}

// detectFaces runs the pigo cascade classifier over the image and returns
// the bounding rectangle of every confident detection.
func (p *Processor) detectFaces(img *image.NRGBA) ([]image.Rectangle, error) {
	if p.faceDetector == nil {
		if p.CascadeFile == "" {
			return nil, errors.New("face detection requires a cascade classifier file")
		}
		cascade, err := os.ReadFile(p.CascadeFile)
		if err != nil {
			return nil, errors.Wrap(err, "could not read the cascade classifier")
		}
		p.faceDetector, err = pigo.NewPigo().Unpack(cascade)
		if err != nil {
			return nil, errors.Wrap(err, "error unpacking the cascade file")
		}
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	g, err := gridFromImage(img)
	if err != nil {
		return nil, err
	}
	cParams := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     utils.Max(w, h),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,

		ImageParams: pigo.ImageParams{
			Pixels: grayscalePlane(g),
			Rows:   h,
			Cols:   w,
			Dim:    w,
		},
	}
	faces := p.faceDetector.RunCascade(cParams, p.FaceAngle)
	faces = p.faceDetector.ClusterDetections(faces, 0.2)

	var rects []image.Rectangle
	for _, face := range faces {
		if face.Q > 5.0 {
			rects = append(rects, image.Rect(
				face.Col-face.Scale/2,
				face.Row-face.Scale/2,
				face.Col+face.Scale/2,
				face.Row+face.Scale/2,
			))
		}
	}
	return rects, nil
}

// markSeams paints the seams about to be applied into a copy of the current
// frame and retains it as the debug image.
func (p *Processor) markSeams(g *PixelGrid, seams []Seam, vertical bool) {
	if !p.Debug {
		return
	}
	frame := gridToImage(g)
	col := utils.HexToRGBA(p.SeamColor)
	for _, s := range seams {
		for i, idx := range s {
			if vertical {
				frame.SetNRGBA(idx, i, col)
			} else {
				frame.SetNRGBA(i, idx, col)
			}
		}
	}
	p.DebugImage = frame
}
