package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/nbody"
)

// RadiusPlot charts the distance of body from the star in AU over the run.
func RadiusPlot(h *nbody.History, body string, width, height int) (string, error) {
	tr, err := h.Trajectory(body)
	if err != nil {
		return "", err
	}
	star := h.Trajectories()[0]
	if tr.Len() == 0 {
		return "", nil
	}

	radii := make([]float64, tr.Len())
	for i := range radii {
		radii[i] = tr.At(i).Sub(star.At(i)).Len() / nbody.AU
	}
	return asciigraph.Plot(radii,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(3),
		asciigraph.Caption(body+" distance from "+star.Name()+" (AU)"),
	), nil
}

// EnergyPlot charts the relative deviation of energies from the first
// sample.
func EnergyPlot(energies []float64, width, height int) string {
	if len(energies) < 2 {
		return ""
	}
	e0 := energies[0]
	rel := make([]float64, len(energies))
	for i, e := range energies {
		if e0 != 0 {
			rel[i] = (e - e0) / math.Abs(e0)
		}
	}
	return asciigraph.Plot(rel,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(6),
		asciigraph.Caption("relative energy error"),
	)
}
