package metrics

import "github.com/san-kum/orbitsim/internal/nbody"

// Default returns the metrics attached to every CLI run.
func Default() []nbody.Metric {
	return []nbody.Metric{
		NewEnergyDrift(),
		NewAngularMomentumDrift(),
		NewMinSeparation(),
		NewStability(10.0),
	}
}
