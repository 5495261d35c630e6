package export

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/san-kum/orbitsim/internal/nbody"
	"github.com/san-kum/orbitsim/internal/viz"
)

var ErrNoFrames = errors.New("export: history has no steps")

// GIFOptions controls WriteGIF. Zero fields take the defaults below.
type GIFOptions struct {
	Cols, Rows int     // canvas size in cells, 80x24
	Frames     int     // frames sampled evenly over the run, 120
	Extent     float64 // half-width of the view in metres, viz.DefaultExtent
	Trail      int     // steps of trail per body, viz.FullTrail when zero
	Delay      int     // hundredths of a second per frame, 4
	Fit        bool    // fit the view to the whole run, ignoring Extent
}

func (o GIFOptions) withDefaults() GIFOptions {
	if o.Cols <= 0 {
		o.Cols = 80
	}
	if o.Rows <= 0 {
		o.Rows = 24
	}
	if o.Frames <= 0 {
		o.Frames = 120
	}
	if o.Extent <= 0 {
		o.Extent = viz.DefaultExtent
	}
	if o.Trail == 0 {
		o.Trail = viz.FullTrail
	}
	if o.Delay <= 0 {
		o.Delay = 4
	}
	return o
}

// dotSize is the square of image pixels drawn per canvas sub-pixel.
const dotSize = 4

var palette = color.Palette{color.Black, color.White}

// WriteGIF renders an animation of h through the braille canvas used by the
// terminal player.
func WriteGIF(w io.Writer, h *nbody.History, opts GIFOptions) error {
	if h.Len() == 0 {
		return ErrNoFrames
	}
	opts = opts.withDefaults()

	canvas := viz.NewCanvas(opts.Cols, opts.Rows)
	proj := projection(canvas, h, opts)

	frames := min(opts.Frames, h.Len())
	anim := gif.GIF{LoopCount: 0}
	for f := 0; f < frames; f++ {
		i := (f+1)*h.Len()/frames - 1
		canvas.Clear()
		viz.DrawFrame(canvas, h, i, proj, opts.Trail)
		anim.Image = append(anim.Image, rasterize(canvas))
		anim.Delay = append(anim.Delay, opts.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func projection(c *viz.Canvas, h *nbody.History, opts GIFOptions) viz.Projection {
	if opts.Fit {
		return viz.FitProjection(c, h)
	}
	return viz.NewProjection(c, opts.Extent)
}

func rasterize(c *viz.Canvas) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.SubWidth()*dotSize, c.SubHeight()*dotSize), palette)
	for y := 0; y < c.SubHeight(); y++ {
		for x := 0; x < c.SubWidth(); x++ {
			if !c.Pixel(x, y) {
				continue
			}
			for py := 0; py < dotSize-1; py++ {
				for px := 0; px < dotSize-1; px++ {
					img.SetColorIndex(x*dotSize+px, y*dotSize+py, 1)
				}
			}
		}
	}
	return img
}
