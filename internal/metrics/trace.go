package metrics

import "github.com/san-kum/orbitsim/internal/nbody"

// EnergyTrace keeps the total energy of every observed step. Its Value is the
// latest sample.
type EnergyTrace struct {
	values []float64
}

func NewEnergyTrace() *EnergyTrace {
	return &EnergyTrace{}
}

func (e *EnergyTrace) Name() string { return "energy" }

func (e *EnergyTrace) Observe(s nbody.Snapshot) {
	e.values = append(e.values, s.TotalEnergy())
}

func (e *EnergyTrace) Value() float64 {
	if len(e.values) == 0 {
		return 0
	}
	return e.values[len(e.values)-1]
}

// Values returns a copy of the recorded series.
func (e *EnergyTrace) Values() []float64 {
	out := make([]float64, len(e.values))
	copy(out, e.values)
	return out
}

func (e *EnergyTrace) Reset() {
	e.values = e.values[:0]
}
