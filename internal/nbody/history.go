package nbody

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Trajectory is the chronological list of positions of one body.
type Trajectory struct {
	name   string
	points []mgl64.Vec3
}

func (tr *Trajectory) Name() string { return tr.name }
func (tr *Trajectory) Len() int     { return len(tr.points) }

// At returns the position after step i.
func (tr *Trajectory) At(i int) mgl64.Vec3 { return tr.points[i] }

// Last returns the most recent position, or false if nothing was recorded.
func (tr *Trajectory) Last() (mgl64.Vec3, bool) {
	if len(tr.points) == 0 {
		return mgl64.Vec3{}, false
	}
	return tr.points[len(tr.points)-1], true
}

// Points returns a copy of all recorded positions.
func (tr *Trajectory) Points() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(tr.points))
	copy(out, tr.points)
	return out
}

// XY returns copies of the x and y coordinates, the 2-D projection used by
// renderers.
func (tr *Trajectory) XY() (xs, ys []float64) {
	xs = make([]float64, len(tr.points))
	ys = make([]float64, len(tr.points))
	for i, p := range tr.points {
		xs[i], ys[i] = p[0], p[1]
	}
	return xs, ys
}

// History holds one trajectory per body, star first. Index i in every
// trajectory refers to the same simulated instant Time(i).
type History struct {
	times  []float64
	tracks []*Trajectory
	index  map[string]int
}

func newHistory(names []string) *History {
	h := &History{
		tracks: make([]*Trajectory, len(names)),
		index:  make(map[string]int, len(names)),
	}
	for i, name := range names {
		h.tracks[i] = &Trajectory{name: name}
		h.index[name] = i
	}
	return h
}

// reserve grows capacity so that n more steps append without reallocating.
func (h *History) reserve(n int) {
	if n <= 0 {
		return
	}
	h.times = slices.Grow(h.times, n)
	for _, tr := range h.tracks {
		tr.points = slices.Grow(tr.points, n)
	}
}

func (h *History) push(track int, p mgl64.Vec3) {
	tr := h.tracks[track]
	tr.points = append(tr.points, p)
}

// Len is the number of completed steps.
func (h *History) Len() int { return len(h.times) }

// Time returns the elapsed simulated time after step i.
func (h *History) Time(i int) float64 { return h.times[i] }

// Times returns a copy of all step times.
func (h *History) Times() []float64 {
	out := make([]float64, len(h.times))
	copy(out, h.times)
	return out
}

// Names lists the bodies in history order.
func (h *History) Names() []string {
	names := make([]string, len(h.tracks))
	for i, tr := range h.tracks {
		names[i] = tr.name
	}
	return names
}

// Trajectory looks a body up by name.
func (h *History) Trajectory(name string) (*Trajectory, error) {
	i, ok := h.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBody, name)
	}
	return h.tracks[i], nil
}

// Trajectories returns all trajectories in history order.
func (h *History) Trajectories() []*Trajectory {
	out := make([]*Trajectory, len(h.tracks))
	copy(out, h.tracks)
	return out
}

// Frame returns the position of every body after step i.
func (h *History) Frame(i int) []mgl64.Vec3 {
	frame := make([]mgl64.Vec3, len(h.tracks))
	for j, tr := range h.tracks {
		frame[j] = tr.points[i]
	}
	return frame
}

// Bounds returns the x/y extent of all finite recorded positions. ok is false
// when there is nothing to measure.
func (h *History) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, tr := range h.tracks {
		for _, p := range tr.points {
			if !finite(p) {
				continue
			}
			minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
			minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
			ok = true
		}
	}
	return minX, minY, maxX, maxY, ok
}
