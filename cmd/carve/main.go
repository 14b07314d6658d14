package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/pixelforge/carve"
	"github.com/pixelforge/carve/utils"
)

const helpBanner = `
┌─┐┌─┐┬─┐┬  ┬┌─┐
│  ├─┤├┬┘└┐┌┘├┤
└─┘┴ ┴┴└─ └┘ └─┘

Content aware image resize library.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source         = flag.String("in", pipeName, "Source")
	destination    = flag.String("out", pipeName, "Destination")
	newWidth       = flag.Int("width", 0, "New width")
	newHeight      = flag.Int("height", 0, "New height")
	percentage     = flag.Bool("perc", false, "Reduce image by percentage")
	square         = flag.Bool("square", false, "Reduce image to square dimensions")
	prescale       = flag.Bool("prescale", false, "Rescale the image proportionally before carving")
	blurRadius     = flag.Int("blur", 4, "Blur radius")
	sobelThreshold = flag.Int("sobel", 4, "Sobel filter threshold")
	debug          = flag.Bool("debug", false, "Keep a debug frame with the carved seams painted")
	seamColor      = flag.String("color", "#ff0000", "Seam color used in debug mode")
	faceDetect     = flag.Bool("face", false, "Use face detection")
	faceAngle      = flag.Float64("angle", 0.0, "Plane rotated faces angle")
	cascade        = flag.String("cc", "", "Cascade classifier")
	workers        = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *newWidth == 0 && *newHeight == 0 && !*square {
		flag.Usage()
		log.Fatalf(utils.DecorateText("\nPlease provide a new width or height!\n", utils.ErrorMessage))
	}
	if *faceDetect && len(*cascade) == 0 {
		log.Fatalf(utils.DecorateText("Please specify a face classifier in case you are using the -face flag!\n", utils.ErrorMessage))
	}

	proc := &carve.Processor{
		NewWidth:       *newWidth,
		NewHeight:      *newHeight,
		Percentage:     *percentage,
		Square:         *square,
		PreScale:       *prescale,
		BlurRadius:     *blurRadius,
		SobelThreshold: *sobelThreshold,
		Debug:          *debug,
		SeamColor:      *seamColor,
		FaceDetect:     *faceDetect,
		FaceAngle:      *faceAngle,
		CascadeFile:    *cascade,
	}

	proc.Execute(&carve.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	})
}
