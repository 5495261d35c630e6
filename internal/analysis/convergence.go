package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/nbody"
	"golang.org/x/sync/errgroup"
)

// ConvergencePoint is the result for one candidate step.
type ConvergencePoint struct {
	Dt           float64
	Steps        int
	MaxDeviation float64
}

// Convergence integrates sys once with refDt and once per candidate step, all
// in parallel, and reports for each candidate the largest distance between the
// body's position and the reference position at the same instant. Each
// candidate must be a whole multiple of refDt.
func Convergence(ctx context.Context, sys System, body string, tMax, refDt float64, dts []float64) ([]ConvergencePoint, error) {
	ratios := make([]int, len(dts))
	for i, dt := range dts {
		q := math.Round(dt / refDt)
		if q < 1 || math.Abs(dt/refDt-q) > 1e-9*q {
			return nil, fmt.Errorf("%w: %g / %g", ErrIncommensurate, dt, refDt)
		}
		ratios[i] = int(q)
	}

	g, gctx := errgroup.WithContext(ctx)

	var ref *nbody.Trajectory
	g.Go(func() error {
		tr, err := sys.trajectory(gctx, body, tMax, refDt)
		ref = tr
		return err
	})

	runs := make([]*nbody.Trajectory, len(dts))
	for i, dt := range dts {
		g.Go(func() error {
			tr, err := sys.trajectory(gctx, body, tMax, dt)
			runs[i] = tr
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	points := make([]ConvergencePoint, len(dts))
	for i, dt := range dts {
		q := ratios[i]
		maxDev := 0.0
		for k := 0; k < runs[i].Len(); k++ {
			j := (k+1)*q - 1
			if j >= ref.Len() {
				break
			}
			maxDev = math.Max(maxDev, runs[i].At(k).Sub(ref.At(j)).Len())
		}
		points[i] = ConvergencePoint{Dt: dt, Steps: runs[i].Len(), MaxDeviation: maxDev}
	}
	return points, nil
}
