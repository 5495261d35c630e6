package metrics

import (
	"github.com/san-kum/orbitsim/internal/nbody"
)

// Stability is the fraction of steps in which every orbiter stays within
// threshold AU of the star.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(snap nbody.Snapshot) {
	s.samples++
	for _, o := range snap.Orbiters {
		if o.Pos.Sub(snap.Star.Pos).Len()/nbody.AU > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
