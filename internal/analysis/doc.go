// Package analysis provides numerical studies built on top of the integrator.
//
// The package includes:
//
//   - [Convergence]: deviation from a small-step reference as dt shrinks
//   - [Sensitivity]: growth of a small displacement of one orbiter
//   - [DominantPeriod]: orbital period from a coordinate series via FFT
//
// # Convergence
//
// Symplectic Euler is first order, so cutting dt by ten should cut the
// deviation from the reference by roughly ten:
//
//	pts, _ := analysis.Convergence(ctx, sys, "Earth", tMax, refDt, []float64{dt, dt / 10})
//	ratio := pts[0].MaxDeviation / pts[1].MaxDeviation
package analysis
