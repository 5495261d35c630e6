package nbody

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Metric is sampled after every completed step.
type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

// Result is the outcome of Run.
type Result struct {
	History     *History
	Elapsed     float64
	StepsTaken  int
	Metrics     map[string]float64
	EnergyDrift float64
}

// Integrator advances a star and its orbiters with symplectic Euler.
type Integrator struct {
	g        float64
	star     Body
	orbiters []Body
	pairs    []float64
	t        float64
	steps    int
	history  *History
	metrics  []Metric
	validate bool
}

// New builds an integrator. The bodies are copied; pair constants
// G*m_orbiter*M_star are computed once here.
func New(g float64, star Body, orbiters ...Body) (*Integrator, error) {
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return nil, fmt.Errorf("%w: gravitational constant must be finite, got %g", ErrInvalidBody, g)
	}
	if err := star.validate(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(orbiters)+1)
	names = append(names, star.Name)
	seen := map[string]bool{star.Name: true}

	in := &Integrator{
		g:        g,
		star:     star,
		orbiters: make([]Body, len(orbiters)),
		pairs:    make([]float64, len(orbiters)),
	}
	for i, o := range orbiters {
		if err := o.validate(); err != nil {
			return nil, err
		}
		if seen[o.Name] {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidBody, o.Name)
		}
		seen[o.Name] = true
		names = append(names, o.Name)
		in.orbiters[i] = o
		in.pairs[i] = g * o.Mass * star.Mass
	}
	in.history = newHistory(names)
	return in, nil
}

// SetValidateState makes Run stop at the first non-finite state.
func (in *Integrator) SetValidateState(v bool) { in.validate = v }

func (in *Integrator) AddMetric(m Metric) { in.metrics = append(in.metrics, m) }

func (in *Integrator) G() float64        { return in.g }
func (in *Integrator) Time() float64     { return in.t }
func (in *Integrator) Steps() int        { return in.steps }
func (in *Integrator) Star() Body        { return in.star }
func (in *Integrator) History() *History { return in.history }

// PairConstant returns G*m*M_star for orbiter i.
func (in *Integrator) PairConstant(i int) float64 { return in.pairs[i] }

// Orbiters returns a copy of the current orbiter states.
func (in *Integrator) Orbiters() []Body {
	out := make([]Body, len(in.orbiters))
	copy(out, in.orbiters)
	return out
}

// Body returns the current state of the named body.
func (in *Integrator) Body(name string) (Body, error) {
	if in.star.Name == name {
		return in.star, nil
	}
	for _, o := range in.orbiters {
		if o.Name == name {
			return o, nil
		}
	}
	return Body{}, fmt.Errorf("%w: %s", ErrUnknownBody, name)
}

// Snapshot captures the current state for observers.
func (in *Integrator) Snapshot() Snapshot {
	return Snapshot{
		G:        in.g,
		Time:     in.t,
		Step:     in.steps,
		Star:     in.star,
		Orbiters: in.Orbiters(),
	}
}

// Step advances the system by dt and appends one position per body to the
// history. Coincident star and orbiter positions yield NaN, which propagates.
func (in *Integrator) Step(dt float64) {
	in.advance(dt)
	in.commit(in.t + dt)
}

// advance applies one symplectic Euler update. Every orbiter sees the star at
// its start-of-step position; the star moves last, pushed back by the summed
// forces of the orbiters not excluded from reaction.
func (in *Integrator) advance(dt float64) {
	starPos := in.star.Pos
	var reaction mgl64.Vec3

	for i := range in.orbiters {
		o := &in.orbiters[i]

		r := o.Pos.Sub(starPos)
		modr3 := math.Pow(r.Dot(r), 1.5)
		f := r.Mul(-in.pairs[i] / modr3)

		o.Vel = o.Vel.Add(f.Mul(dt / o.Mass))
		o.Pos = o.Pos.Add(o.Vel.Mul(dt))
		in.history.push(i+1, o.Pos)

		if !o.ExcludedFromReaction {
			reaction = reaction.Add(f)
		}
	}

	in.star.Vel = in.star.Vel.Add(reaction.Mul(-dt / in.star.Mass))
	in.star.Pos = in.star.Pos.Add(in.star.Vel.Mul(dt))
	in.history.push(0, in.star.Pos)
}

func (in *Integrator) commit(t float64) {
	in.t = t
	in.steps++
	in.history.times = append(in.history.times, t)

	if len(in.metrics) == 0 {
		return
	}
	snap := in.Snapshot()
	for _, m := range in.metrics {
		m.Observe(snap)
	}
}

// StepCount is the number of steps of size dt needed to go from t0 to at
// least tMax: the smallest n with t0+n*dt >= tMax.
func StepCount(t0, tMax, dt float64) int {
	if !(dt > 0) || t0 >= tMax {
		return 0
	}
	n := int(math.Ceil((tMax - t0) / dt))
	for n > 0 && t0+float64(n-1)*dt >= tMax {
		n--
	}
	for t0+float64(n)*dt < tMax {
		n++
	}
	return n
}

// Run steps while the clock is below tMax. The clock after step k of the run
// is t0+k*dt, so the step count is StepCount(t0, tMax, dt) exactly and the
// final time satisfies tMax <= t < tMax+dt.
func (in *Integrator) Run(ctx context.Context, tMax, dt float64) (*Result, error) {
	if err := validateRun(tMax, dt); err != nil {
		return nil, err
	}

	n := StepCount(in.t, tMax, dt)
	in.history.reserve(n)
	for _, m := range in.metrics {
		m.Reset()
	}

	result := &Result{
		History: in.history,
		Metrics: make(map[string]float64, len(in.metrics)),
	}
	initialEnergy := in.Snapshot().TotalEnergy()
	t0 := in.t

	var runErr error
	for k := 1; k <= n; k++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		in.advance(dt)
		in.commit(t0 + float64(k)*dt)
		result.StepsTaken++

		if in.validate {
			if name, ok := in.firstNonFinite(); !ok {
				runErr = &SimulationError{Step: in.steps, Time: in.t, Body: name, Wrapped: ErrNonFinite}
				break
			}
		}
	}

	result.Elapsed = in.t
	if initialEnergy != 0 {
		finalEnergy := in.Snapshot().TotalEnergy()
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range in.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, runErr
}

func (in *Integrator) firstNonFinite() (string, bool) {
	if !in.star.IsFinite() {
		return in.star.Name, false
	}
	for _, o := range in.orbiters {
		if !o.IsFinite() {
			return o.Name, false
		}
	}
	return "", true
}

func validateRun(tMax, dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w, got %g", ErrInvalidStep, dt)
	}
	if !(tMax > 0) || math.IsInf(tMax, 0) {
		return fmt.Errorf("%w, got %g", ErrInvalidDuration, tMax)
	}
	return nil
}
