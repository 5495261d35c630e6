package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/nbody"
)

// MinSeparation records the closest approach of any orbiter to the star, in
// AU. Values near zero warn that the force is about to blow up.
type MinSeparation struct {
	closest float64
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{closest: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return "min_separation_au" }

func (m *MinSeparation) Observe(s nbody.Snapshot) {
	m.closest = math.Min(m.closest, s.MinSeparation()/nbody.AU)
}

func (m *MinSeparation) Value() float64 { return m.closest }

func (m *MinSeparation) Reset() { m.closest = math.Inf(1) }
