package nbody_test

import (
	"context"
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/nbody"
)

type recorder struct {
	initialEnergy, initialL   float64
	maxEnergyDrift, maxLDrift float64
	samples                   int
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Observe(s nbody.Snapshot) {
	e, l := s.TotalEnergy(), s.AngularMomentum().Len()
	if r.samples == 0 {
		r.initialEnergy, r.initialL = e, l
	}
	r.samples++
	r.maxEnergyDrift = math.Max(r.maxEnergyDrift, math.Abs(e-r.initialEnergy)/math.Abs(r.initialEnergy))
	r.maxLDrift = math.Max(r.maxLDrift, math.Abs(l-r.initialL)/math.Abs(r.initialL))
}

func (r *recorder) Value() float64 { return r.maxEnergyDrift }
func (r *recorder) Reset()         { *r = recorder{} }

func solar() *nbody.Integrator {
	star, orbiters := nbody.SolarSystem()
	in, err := nbody.New(nbody.G, star, orbiters...)
	Expect(err).NotTo(HaveOccurred())
	return in
}

func force(pair float64, orbiter, star mgl64.Vec3) mgl64.Vec3 {
	r := orbiter.Sub(star)
	return r.Mul(-pair / math.Pow(r.Dot(r), 1.5))
}

var _ = Describe("Integrator", func() {
	ctx := context.Background()

	Describe("construction", func() {
		It("computes one pair constant per orbiter", func() {
			in := solar()
			Expect(in.PairConstant(0)).To(Equal(nbody.G * nbody.EarthMass * nbody.SunMass))
			Expect(in.PairConstant(2)).To(Equal(nbody.G * nbody.CometMass * nbody.SunMass))
			Expect(in.History().Names()).To(Equal([]string{"Sun", "Earth", "Mars", "Comet"}))
		})

		DescribeTable("rejects invalid bodies",
			func(b nbody.Body) {
				_, err := nbody.New(nbody.G, nbody.Sun(), b)
				Expect(err).To(MatchError(nbody.ErrInvalidBody))
			},
			Entry("zero mass", nbody.Body{Name: "x", Pos: mgl64.Vec3{1, 0, 0}}),
			Entry("negative mass", nbody.Body{Name: "x", Mass: -1}),
			Entry("NaN mass", nbody.Body{Name: "x", Mass: math.NaN()}),
			Entry("infinite position", nbody.Body{Name: "x", Mass: 1, Pos: mgl64.Vec3{math.Inf(1), 0, 0}}),
			Entry("duplicate name", nbody.Body{Name: "Sun", Mass: 1, Pos: mgl64.Vec3{1, 0, 0}}),
		)

		It("rejects a non-finite gravitational constant", func() {
			_, err := nbody.New(math.NaN(), nbody.Sun(), nbody.Earth())
			Expect(err).To(MatchError(nbody.ErrInvalidBody))
		})
	})

	Describe("Step", func() {
		It("is bit-for-bit deterministic", func() {
			a, b := solar(), solar()
			a.Step(nbody.DefaultStep)
			b.Step(nbody.DefaultStep)
			Expect(a.Star()).To(Equal(b.Star()))
			Expect(a.Orbiters()).To(Equal(b.Orbiters()))
		})

		It("pushes the star back with the planet forces only", func() {
			in := solar()
			dt := nbody.DefaultStep
			sun := nbody.Sun().Pos
			fe := force(in.PairConstant(0), nbody.Earth().Pos, sun)
			fm := force(in.PairConstant(1), nbody.Mars().Pos, sun)
			fc := force(in.PairConstant(2), nbody.Comet().Pos, sun)

			in.Step(dt)

			want := fe.Add(fm).Mul(-dt / nbody.SunMass)
			withComet := fe.Add(fm).Add(fc).Mul(-dt / nbody.SunMass)
			got := in.Star().Vel
			for i := 0; i < 3; i++ {
				Expect(got[i]).To(BeNumerically("~", want[i], math.Abs(want[i])*1e-12+1e-30))
			}
			Expect(math.Abs(got[0] - withComet[0])).To(BeNumerically(">", 1e-12*math.Abs(want[0])))
			Expect(in.Star().Pos).To(Equal(in.Star().Vel.Mul(dt)))
		})

		It("moves orbiters with the updated velocity", func() {
			in := solar()
			dt := nbody.DefaultStep
			earth := nbody.Earth()
			f := force(in.PairConstant(0), earth.Pos, mgl64.Vec3{})
			vel := earth.Vel.Add(f.Mul(dt / earth.Mass))
			pos := earth.Pos.Add(vel.Mul(dt))

			in.Step(dt)

			got, err := in.Body("Earth")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Vel).To(Equal(vel))
			Expect(got.Pos).To(Equal(pos))
			tr, err := in.History().Trajectory("Earth")
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.At(0)).To(Equal(pos))
			Expect(in.Time()).To(Equal(dt))
		})

		It("propagates non-finite values from coincident bodies", func() {
			in, err := nbody.New(nbody.G, nbody.Sun(), nbody.Body{Name: "ghost", Mass: 1})
			Expect(err).NotTo(HaveOccurred())
			in.Step(nbody.DefaultStep)
			in.Step(nbody.DefaultStep)

			tr, _ := in.History().Trajectory("ghost")
			Expect(tr.Len()).To(Equal(2))
			Expect(math.IsNaN(tr.At(1)[0])).To(BeTrue())
		})
	})

	Describe("Run", func() {
		DescribeTable("records ceil(tMax/dt) steps and stops at the first time past tMax",
			func(tMax, dt float64) {
				in := solar()
				res, err := in.Run(ctx, tMax, dt)
				Expect(err).NotTo(HaveOccurred())

				n := int(math.Ceil(tMax / dt))
				Expect(res.StepsTaken).To(Equal(n))
				Expect(res.History.Len()).To(Equal(n))
				for _, tr := range res.History.Trajectories() {
					Expect(tr.Len()).To(Equal(n), tr.Name())
				}
				Expect(res.Elapsed).To(BeNumerically(">=", tMax))
				Expect(res.Elapsed).To(BeNumerically("<", tMax+dt))
				Expect(res.History.Time(0)).To(Equal(dt))
				Expect(res.History.Time(n - 1)).To(Equal(res.Elapsed))
			},
			Entry("exact tenths", 1.0, 0.1),
			Entry("non-dividing step", 10.0, 3.0),
			Entry("rounding below", 0.3, 0.1),
			Entry("ten days", 10*nbody.DaySec, nbody.DefaultStep),
			Entry("default five years", nbody.DefaultDuration, nbody.DefaultStep),
		)

		It("continues from the current clock", func() {
			in := solar()
			_, err := in.Run(ctx, 10*nbody.DaySec, nbody.DefaultStep)
			Expect(err).NotTo(HaveOccurred())
			res, err := in.Run(ctx, 20*nbody.DaySec, nbody.DefaultStep)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StepsTaken).To(Equal(50))
			Expect(res.History.Len()).To(Equal(100))
			Expect(in.Steps()).To(Equal(100))
		})

		DescribeTable("rejects invalid run parameters",
			func(tMax, dt float64, want error) {
				_, err := solar().Run(ctx, tMax, dt)
				Expect(err).To(MatchError(want))
			},
			Entry("zero dt", 1.0, 0.0, nbody.ErrInvalidStep),
			Entry("negative dt", 1.0, -0.1, nbody.ErrInvalidStep),
			Entry("NaN dt", 1.0, math.NaN(), nbody.ErrInvalidStep),
			Entry("zero duration", 0.0, 0.1, nbody.ErrInvalidDuration),
			Entry("negative duration", -1.0, 0.1, nbody.ErrInvalidDuration),
		)

		It("stops on a cancelled context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			res, err := solar().Run(cctx, nbody.YearSec, nbody.DefaultStep)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.StepsTaken).To(BeZero())
		})

		It("reports the first non-finite step when validating", func() {
			ghost := nbody.Body{Name: "ghost", Mass: 1, ExcludedFromReaction: true}
			in, err := nbody.New(nbody.G, nbody.Sun(), nbody.Earth(), ghost)
			Expect(err).NotTo(HaveOccurred())
			in.SetValidateState(true)

			res, err := in.Run(ctx, nbody.YearSec, nbody.DefaultStep)
			Expect(err).To(MatchError(nbody.ErrNonFinite))
			var simErr *nbody.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(1))
			Expect(simErr.Body).To(Equal("ghost"))
			Expect(res.StepsTaken).To(Equal(1))
		})

		It("closes a near-circular orbit after one year", func() {
			in, err := nbody.New(nbody.G, nbody.Sun(), nbody.Earth())
			Expect(err).NotTo(HaveOccurred())
			r0 := 1.0167 * nbody.AU

			_, err = in.Run(ctx, nbody.YearSec, nbody.DefaultStep)
			Expect(err).NotTo(HaveOccurred())

			earth, _ := in.Body("Earth")
			r := earth.Pos.Sub(in.Star().Pos).Len()
			Expect(r).To(BeNumerically("~", r0, 0.01*r0))
		})

		It("falls radially toward the star from rest", func() {
			p0 := mgl64.Vec3{0.6 * nbody.AU, 0.8 * nbody.AU, 0}
			rock := nbody.Body{Name: "rock", Mass: nbody.EarthMass, Pos: p0}
			in, err := nbody.New(nbody.G, nbody.Sun(), rock)
			Expect(err).NotTo(HaveOccurred())

			res, err := in.Run(ctx, 20*nbody.DaySec, nbody.DefaultStep)
			Expect(err).NotTo(HaveOccurred())

			tr, _ := res.History.Trajectory("rock")
			prev := p0.Len()
			for i := 0; i < tr.Len(); i++ {
				d := tr.At(i).Sub(p0)
				Expect(d.Cross(p0).Len()).To(BeNumerically("<=", 1e-9*d.Len()*p0.Len()))
				Expect(tr.At(i).Len()).To(BeNumerically("<", prev))
				prev = tr.At(i).Len()
			}
		})

		It("keeps energy and angular momentum drift bounded over one orbit", func() {
			in, err := nbody.New(nbody.G, nbody.Sun(), nbody.Earth(), nbody.Mars())
			Expect(err).NotTo(HaveOccurred())
			rec := &recorder{}
			in.AddMetric(rec)

			res, err := in.Run(ctx, nbody.YearSec, nbody.DefaultStep)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.samples).To(Equal(res.StepsTaken))
			Expect(rec.maxEnergyDrift).To(BeNumerically("<", 0.01))
			Expect(rec.maxLDrift).To(BeNumerically("<", 0.01))
			Expect(res.EnergyDrift).To(BeNumerically("<", 0.01))
			Expect(res.Metrics).To(HaveKey("recorder"))
		})

		It("converges as the step shrinks", func() {
			tMax := 180 * nbody.DaySec
			final := func(dt float64) mgl64.Vec3 {
				in, err := nbody.New(nbody.G, nbody.Sun(), nbody.Earth())
				Expect(err).NotTo(HaveOccurred())
				_, err = in.Run(ctx, tMax, dt)
				Expect(err).NotTo(HaveOccurred())
				earth, _ := in.Body("Earth")
				return earth.Pos
			}

			ref := final(0.01 * nbody.DaySec)
			coarse := final(nbody.DaySec).Sub(ref).Len()
			fine := final(0.1 * nbody.DaySec).Sub(ref).Len()
			Expect(fine).To(BeNumerically("<", coarse/3))
		})
	})

	Describe("reaction set", func() {
		It("leaves the star at rest when its only orbiter is excluded", func() {
			earth := nbody.Earth()
			earth.ExcludedFromReaction = true
			in, err := nbody.New(nbody.G, nbody.Sun(), earth)
			Expect(err).NotTo(HaveOccurred())

			res, err := in.Run(ctx, 30*nbody.DaySec, nbody.DefaultStep)
			Expect(err).NotTo(HaveOccurred())
			Expect(in.Star().Vel).To(Equal(mgl64.Vec3{}))
			sun, _ := res.History.Trajectory("Sun")
			Expect(sun.Len()).To(Equal(res.StepsTaken))
		})

		It("pulls the star toward an included orbiter", func() {
			in, err := nbody.New(nbody.G, nbody.Sun(), nbody.Earth())
			Expect(err).NotTo(HaveOccurred())
			in.Step(nbody.DefaultStep)
			Expect(in.Star().Vel[0]).To(BeNumerically(">", 0))
		})

		It("drifts a lone star in a straight line", func() {
			sun := nbody.Sun()
			sun.Vel = mgl64.Vec3{1, 0, 0}
			in, err := nbody.New(nbody.G, sun)
			Expect(err).NotTo(HaveOccurred())

			res, err := in.Run(ctx, 10, 1)
			Expect(err).NotTo(HaveOccurred())
			tr, _ := res.History.Trajectory("Sun")
			Expect(tr.Len()).To(Equal(10))
			last, ok := tr.Last()
			Expect(ok).To(BeTrue())
			Expect(last).To(Equal(mgl64.Vec3{10, 0, 0}))
		})
	})
})
