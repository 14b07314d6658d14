/*
Package carve is a content aware image resize library: it rescales an image
both vertically and horizontally by repeatedly removing (or duplicating) the
connected path of pixels carrying the least visual importance, instead of
scaling or cropping uniformly.

The package exposes two levels of API. The raw buffer entry point operates on
a flat pixel slice with a known width, height and channel layout:

	pixels, w, h, err := carve.Resize(pixels, 640, 480, 4, 480, 480)

The image level Processor decodes, carves and encodes standard image formats
and supports edge based energy tuning, protection regions and face detection:

	p := &carve.Processor{
		NewWidth:  480,
		NewHeight: 480,
	}

	if err := p.Process(in, out); err != nil {
		fmt.Printf("Error rescaling image: %s", err.Error())
	}

A command line interface wrapping the Processor lives under cmd/carve; run
carve --help for the supported flags.
*/
package carve
