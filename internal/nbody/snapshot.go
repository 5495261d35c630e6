package nbody

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Snapshot is a copy of the system state after a step.
type Snapshot struct {
	G        float64
	Time     float64
	Step     int
	Star     Body
	Orbiters []Body
}

func (s Snapshot) bodies() []Body {
	all := make([]Body, 0, len(s.Orbiters)+1)
	all = append(all, s.Star)
	return append(all, s.Orbiters...)
}

func (s Snapshot) KineticEnergy() float64 {
	ke := 0.0
	for _, b := range s.bodies() {
		ke += 0.5 * b.Mass * b.Vel.Dot(b.Vel)
	}
	return ke
}

// PotentialEnergy sums the star-orbiter pairs only, matching the force model.
func (s Snapshot) PotentialEnergy() float64 {
	pe := 0.0
	for _, o := range s.Orbiters {
		r := o.Pos.Sub(s.Star.Pos).Len()
		pe -= s.G * o.Mass * s.Star.Mass / r
	}
	return pe
}

func (s Snapshot) TotalEnergy() float64 {
	return s.KineticEnergy() + s.PotentialEnergy()
}

// Momentum is the total linear momentum.
func (s Snapshot) Momentum() mgl64.Vec3 {
	var p mgl64.Vec3
	for _, b := range s.bodies() {
		p = p.Add(b.Vel.Mul(b.Mass))
	}
	return p
}

// AngularMomentum is taken about the origin.
func (s Snapshot) AngularMomentum() mgl64.Vec3 {
	var l mgl64.Vec3
	for _, b := range s.bodies() {
		l = l.Add(b.Pos.Cross(b.Vel.Mul(b.Mass)))
	}
	return l
}

// Separation is the distance between the star and the named orbiter.
func (s Snapshot) Separation(name string) (float64, error) {
	for _, o := range s.Orbiters {
		if o.Name == name {
			return o.Pos.Sub(s.Star.Pos).Len(), nil
		}
	}
	return math.NaN(), fmt.Errorf("%w: %s", ErrUnknownBody, name)
}

// MinSeparation is the smallest star-orbiter distance, +Inf without orbiters.
func (s Snapshot) MinSeparation() float64 {
	closest := math.Inf(1)
	for _, o := range s.Orbiters {
		closest = math.Min(closest, o.Pos.Sub(s.Star.Pos).Len())
	}
	return closest
}
