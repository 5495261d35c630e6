package nbody

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a point mass. Units are SI: kg, m, m/s.
type Body struct {
	Name string
	Mass float64
	Pos  mgl64.Vec3
	Vel  mgl64.Vec3

	// ExcludedFromReaction keeps the body's pull out of the star's velocity
	// update. The star still pulls on the body.
	ExcludedFromReaction bool
}

func (b Body) String() string {
	return fmt.Sprintf("%s m=%.4g p=[%.4g %.4g %.4g] v=[%.4g %.4g %.4g]",
		b.Name, b.Mass, b.Pos[0], b.Pos[1], b.Pos[2], b.Vel[0], b.Vel[1], b.Vel[2])
}

// IsFinite reports whether position and velocity hold no NaN or Inf.
func (b Body) IsFinite() bool {
	return finite(b.Pos) && finite(b.Vel)
}

func (b Body) validate() error {
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return fmt.Errorf("%w: %q mass must be positive, got %g", ErrInvalidBody, b.Name, b.Mass)
	}
	if !b.IsFinite() {
		return fmt.Errorf("%w: %q has non-finite position or velocity", ErrInvalidBody, b.Name)
	}
	return nil
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
