package nbody

import "github.com/go-gl/mathgl/mgl64"

// Physical constants of the default system.
const (
	G       = 6.67e-11
	AU      = 1.5e11
	DaySec  = 24.0 * 60 * 60
	YearSec = 365 * DaySec

	SunMass   = 2.0e30
	EarthMass = 5.972e24
	MarsMass  = 6.39e23
	CometMass = 6.39e20

	EarthVelocity = 29290.0
	MarsVelocity  = 21970.0
	CometVelocity = 7000.0

	DefaultStep     = 0.20 * DaySec
	DefaultDuration = 5 * YearSec
)

// Sun returns the star at rest at the origin.
func Sun() Body {
	return Body{Name: "Sun", Mass: SunMass}
}

// Earth returns the first planet on a tangential orbit at 1.0167 AU.
func Earth() Body {
	return Body{
		Name: "Earth",
		Mass: EarthMass,
		Pos:  mgl64.Vec3{1.0167 * AU, 0, 0},
		Vel:  mgl64.Vec3{0, EarthVelocity, 0},
	}
}

// Mars returns the second planet at 1.666 AU.
func Mars() Body {
	return Body{
		Name: "Mars",
		Mass: MarsMass,
		Pos:  mgl64.Vec3{1.666 * AU, 0, 0},
		Vel:  mgl64.Vec3{0, MarsVelocity, 0},
	}
}

// Comet returns the low-mass comet. Its pull on the star is neglected.
func Comet() Body {
	return Body{
		Name:                 "Comet",
		Mass:                 CometMass,
		Pos:                  mgl64.Vec3{2 * AU, 0.3 * AU, 0},
		Vel:                  mgl64.Vec3{0, CometVelocity, 0},
		ExcludedFromReaction: true,
	}
}

// SolarSystem returns the star and the three orbiters in their initial state.
func SolarSystem() (Body, []Body) {
	return Sun(), []Body{Earth(), Mars(), Comet()}
}
