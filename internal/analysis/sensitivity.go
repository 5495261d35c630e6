package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/nbody"
)

// SensitivityReport describes how two runs that differ by a small initial
// displacement of one orbiter separate over time.
type SensitivityReport struct {
	InitialSeparation float64
	FinalSeparation   float64
	MaxSeparation     float64
	// GrowthRate is ln(final/initial)/t in 1/s. Regular orbits give a small
	// value that shrinks with longer runs; chaotic ones settle on a positive
	// constant.
	GrowthRate float64
}

// Sensitivity runs sys twice, the second time with body moved by offset.
func Sensitivity(ctx context.Context, sys System, body string, offset mgl64.Vec3, tMax, dt float64) (*SensitivityReport, error) {
	d0 := offset.Len()
	if d0 == 0 {
		return nil, ErrZeroOffset
	}

	perturbed := sys
	perturbed.Orbiters = make([]nbody.Body, len(sys.Orbiters))
	copy(perturbed.Orbiters, sys.Orbiters)
	found := false
	for i := range perturbed.Orbiters {
		if perturbed.Orbiters[i].Name == body {
			perturbed.Orbiters[i].Pos = perturbed.Orbiters[i].Pos.Add(offset)
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("analysis: %q is not an orbiter", body)
	}

	base, err := sys.trajectory(ctx, body, tMax, dt)
	if err != nil {
		return nil, err
	}
	other, err := perturbed.trajectory(ctx, body, tMax, dt)
	if err != nil {
		return nil, err
	}

	report := &SensitivityReport{InitialSeparation: d0}
	for i := 0; i < base.Len(); i++ {
		sep := other.At(i).Sub(base.At(i)).Len()
		report.MaxSeparation = math.Max(report.MaxSeparation, sep)
		report.FinalSeparation = sep
	}
	if base.Len() > 0 && report.FinalSeparation > 0 {
		t := float64(base.Len()) * dt
		report.GrowthRate = math.Log(report.FinalSeparation/d0) / t
	}
	return report, nil
}
