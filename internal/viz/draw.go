package viz

import "github.com/san-kum/orbitsim/internal/nbody"

// FullTrail draws every point up to the current frame.
const FullTrail = -1

// DrawFrame renders step i of h onto c: a trail of the last trail steps for
// every body (FullTrail for all of them, 0 for none) and a marker at the
// current position. The star, the first track, gets the larger marker.
func DrawFrame(c *Canvas, h *nbody.History, i int, proj Projection, trail int) {
	if i < 0 || i >= h.Len() {
		return
	}

	start := 0
	if trail >= 0 {
		start = max(0, i-trail)
	}

	for k, tr := range h.Trajectories() {
		if trail != 0 {
			drawTrail(c, tr, start, i, proj)
		}
		if x, y, ok := proj.Map(tr.At(i)); ok {
			r := 1
			if k == 0 {
				r = 2
			}
			c.Dot(x, y, r)
		}
	}
}

func drawTrail(c *Canvas, tr *nbody.Trajectory, from, to int, proj Projection) {
	px, py, pok := proj.Map(tr.At(from))
	for j := from + 1; j <= to; j++ {
		x, y, ok := proj.Map(tr.At(j))
		switch {
		case ok && pok:
			c.DrawLine(px, py, x, y)
		case ok:
			c.Set(x, y)
		}
		px, py, pok = x, y, ok
	}
}

// DrawLabels writes the initial of every body beside its marker at step i.
func DrawLabels(c *Canvas, h *nbody.History, i int, proj Projection) {
	if i < 0 || i >= h.Len() {
		return
	}
	for _, tr := range h.Trajectories() {
		if x, y, ok := proj.Map(tr.At(i)); ok && tr.Name() != "" {
			c.Text(x, y, string([]rune(tr.Name())[:1]))
		}
	}
}
