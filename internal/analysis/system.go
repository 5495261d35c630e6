package analysis

import (
	"context"
	"errors"

	"github.com/san-kum/orbitsim/internal/nbody"
)

var (
	ErrIncommensurate = errors.New("analysis: step is not a whole multiple of the reference step")
	ErrZeroOffset     = errors.New("analysis: displacement must be non-zero")
	ErrTooShort       = errors.New("analysis: series too short")
	ErrNoOscillation  = errors.New("analysis: series has no oscillation")
)

// System is the initial state an analysis starts from. Every run builds its
// own integrator from it.
type System struct {
	G        float64
	Star     nbody.Body
	Orbiters []nbody.Body
}

func (s System) build() (*nbody.Integrator, error) {
	return nbody.New(s.G, s.Star, s.Orbiters...)
}

func (s System) trajectory(ctx context.Context, body string, tMax, dt float64) (*nbody.Trajectory, error) {
	in, err := s.build()
	if err != nil {
		return nil, err
	}
	res, err := in.Run(ctx, tMax, dt)
	if err != nil {
		return nil, err
	}
	return res.History.Trajectory(body)
}
