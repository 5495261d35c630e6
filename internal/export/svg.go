package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/orbitsim/internal/nbody"
	"github.com/san-kum/orbitsim/internal/viz"
)

// DefaultColors are used for tracks in order, star first.
var DefaultColors = []string{"#ffcc00", "#3399ff", "#ff4444", "#aaaaaa"}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if canvas.Pixel(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius)
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// WriteCanvasSVG draws the final frame of h with full trails on a braille
// canvas sized by opts, as the terminal player shows it, and writes it as
// SVG dots.
func WriteCanvasSVG(w io.Writer, h *nbody.History, opts GIFOptions) error {
	if h.Len() == 0 {
		return ErrNoFrames
	}
	opts = opts.withDefaults()

	canvas := viz.NewCanvas(opts.Cols, opts.Rows)
	viz.DrawFrame(canvas, h, h.Len()-1, projection(canvas, h, opts), opts.Trail)
	_, err := io.WriteString(w, CanvasToSVG(canvas, dotSize))
	return err
}

// TrajectoriesToSVG draws every track of h as a polyline, fitted to the
// view with 10% padding, with a marker at each final position. Non-finite
// points break the line.
func TrajectoriesToSVG(h *nbody.History, width, height int) string {
	minX, minY, maxX, maxY, ok := h.Bounds()
	if !ok {
		return ""
	}

	// equal scale on both axes so orbits stay round
	rangeX := maxX - minX
	rangeY := maxY - minY
	span := math.Max(rangeX, rangeY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	scale := float64(min(width, height)) / span

	toScreen := func(x, y float64) (float64, float64) {
		return float64(width)/2 + (x-cx)*scale, float64(height)/2 - (y-cy)*scale
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for k, tr := range h.Trajectories() {
		color := DefaultColors[k%len(DefaultColors)]
		name := escape(tr.Name())
		fmt.Fprintf(&sb, `<path id="track%d" data-name="%s" fill="none" stroke="%s" stroke-width="1" d="`, k, name, color)
		pen := false
		for i := 0; i < tr.Len(); i++ {
			p := tr.At(i)
			if !isFinite(p[0]) || !isFinite(p[1]) {
				pen = false
				continue
			}
			x, y := toScreen(p[0], p[1])
			if pen {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " M%.1f,%.1f", x, y)
				pen = true
			}
		}
		sb.WriteString("\"/>\n")

		if last, ok := tr.Last(); ok && isFinite(last[0]) && isFinite(last[1]) {
			x, y := toScreen(last[0], last[1])
			r := 3
			if k == 0 {
				r = 6
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%d\" fill=\"%s\"><title>%s</title></circle>\n",
				x, y, r, color, name)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteSVG writes the orbit plot of h.
func WriteSVG(w io.Writer, h *nbody.History, width, height int) error {
	_, err := io.WriteString(w, TrajectoriesToSVG(h, width, height))
	return err
}

// escape makes s safe for both attribute values and character data.
func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
