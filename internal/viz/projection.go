package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/nbody"
)

// DefaultExtent is the half-width of the view in metres.
const DefaultExtent = 3 * nbody.AU

// Projection maps the x-y plane onto canvas sub-pixels. The view is square in
// world units, centred on Center, and spans [-Extent, Extent] on the shorter
// canvas axis.
type Projection struct {
	Center mgl64.Vec3
	Extent float64

	w, h  int
	scale float64
}

func NewProjection(c *Canvas, extent float64) Projection {
	p := Projection{Extent: extent, w: c.SubWidth(), h: c.SubHeight()}
	p.rescale()
	return p
}

// FitProjection chooses the smallest square view holding every finite point
// in h, with a 10% margin. An empty history falls back to DefaultExtent.
func FitProjection(c *Canvas, h *nbody.History) Projection {
	minX, minY, maxX, maxY, ok := h.Bounds()
	if !ok {
		return NewProjection(c, DefaultExtent)
	}
	half := math.Max(maxX-minX, maxY-minY) / 2 * 1.1
	if half == 0 {
		half = DefaultExtent
	}
	p := NewProjection(c, half)
	p.Center = mgl64.Vec3{(minX + maxX) / 2, (minY + maxY) / 2, 0}
	return p
}

func (p *Projection) rescale() {
	side := min(p.w, p.h)
	p.scale = float64(side) / (2 * p.Extent)
}

// Zoom multiplies the extent by f.
func (p *Projection) Zoom(f float64) {
	p.Extent *= f
	p.rescale()
}

// Map returns the sub-pixel for world position v. ok is false when the
// position is outside the canvas or not finite.
func (p Projection) Map(v mgl64.Vec3) (x, y int, ok bool) {
	fx := float64(p.w)/2 + (v[0]-p.Center[0])*p.scale
	fy := float64(p.h)/2 - (v[1]-p.Center[1])*p.scale
	if math.IsNaN(fx) || math.IsNaN(fy) || math.IsInf(fx, 0) || math.IsInf(fy, 0) {
		return 0, 0, false
	}
	x, y = int(math.Floor(fx)), int(math.Floor(fy))
	return x, y, x >= 0 && y >= 0 && x < p.w && y < p.h
}
