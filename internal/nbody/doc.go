// Package nbody integrates the motion of a central star and its orbiters
// under Newtonian gravity.
//
// The package is organised around a few types:
//
//   - [Body]: mass, position and velocity of one body
//   - [Integrator]: owns the bodies, advances them with symplectic Euler
//   - [History]: per-body positions, one entry per completed step
//   - [Metric]: observer sampled after every step
//
// Only star-orbiter interactions are modelled. Each orbiter is pulled by the
// star; the star is pushed back by every orbiter whose
// [Body.ExcludedFromReaction] flag is false.
//
// # Example
//
//	star, orbiters := nbody.SolarSystem()
//	in, _ := nbody.New(nbody.G, star, orbiters...)
//	res, _ := in.Run(ctx, 5*365*nbody.DaySec, 0.2*nbody.DaySec)
//	earth, _ := res.History.Trajectory("Earth")
//
// # Thread Safety
//
// Integrator instances are NOT thread-safe. Independent integrators share no
// state and may run in parallel.
package nbody
