package export

import (
	"time"

	"github.com/san-kum/orbitsim/internal/nbody"
)

// Meta describes the run an export came from.
type Meta struct {
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	G         float64            `json:"g"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Bodies    []BodyMeta         `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

type BodyMeta struct {
	Name                 string  `json:"name"`
	Mass                 float64 `json:"mass"`
	ExcludedFromReaction bool    `json:"excluded_from_reaction,omitempty"`
}

// NewMeta collects the metadata of a finished run. The star comes first.
func NewMeta(preset string, in *nbody.Integrator, res *nbody.Result, dt, duration float64) Meta {
	star := in.Star()
	bodies := []BodyMeta{{Name: star.Name, Mass: star.Mass}}
	for _, o := range in.Orbiters() {
		bodies = append(bodies, BodyMeta{Name: o.Name, Mass: o.Mass, ExcludedFromReaction: o.ExcludedFromReaction})
	}
	return Meta{
		Preset:    preset,
		Timestamp: time.Now(),
		G:         in.G(),
		Dt:        dt,
		Duration:  duration,
		Steps:     res.StepsTaken,
		Bodies:    bodies,
		Metrics:   res.Metrics,
	}
}
