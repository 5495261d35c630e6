package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/nbody"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPreset       = "solar"
	DefaultDtDays       = 0.20
	DefaultDurationDays = 5 * 365.0
)

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Preset        string       `yaml:"preset,omitempty"`
	G             float64      `yaml:"g"`
	DtDays        float64      `yaml:"dt_days"`
	DurationDays  float64      `yaml:"duration_days"`
	ValidateState bool         `yaml:"validate_state"`
	Star          BodyConfig   `yaml:"star"`
	Orbiters      []BodyConfig `yaml:"orbiters"`
}

// BodyConfig positions are in AU, velocities in m/s.
type BodyConfig struct {
	Name                 string     `yaml:"name"`
	Mass                 float64    `yaml:"mass"`
	PositionAU           [3]float64 `yaml:"position_au,flow"`
	Velocity             [3]float64 `yaml:"velocity,flow"`
	ExcludedFromReaction bool       `yaml:"excluded_from_reaction,omitempty"`
}

func DefaultConfig() *Config {
	return GetPreset(DefaultPreset)
}

// Load reads a YAML file. Fields the file leaves out keep the values of the
// preset it names, or of the default preset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	name, err := presetOf(path, data)
	if err != nil {
		return nil, err
	}
	base := DefaultConfig()
	if name != "" {
		if base = GetPreset(name); base == nil {
			return nil, fmt.Errorf("%w: unknown preset %q in %s", ErrInvalid, name, path)
		}
	}
	return decode(path, data, base)
}

// LoadOver reads a YAML file on top of base, which it modifies. A file that
// names a different preset than base is rejected.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name, err := presetOf(path, data)
	if err != nil {
		return nil, err
	}
	if name != "" && name != base.Preset {
		return nil, fmt.Errorf("%w: %s names preset %q, not %q", ErrInvalid, path, name, base.Preset)
	}
	return decode(path, data, base)
}

func presetOf(path string, data []byte) (string, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return "", fmt.Errorf("config: parse %s: %w", path, err)
	}
	return head.Preset, nil
}

func decode(path string, data []byte, cfg *Config) (*Config, error) {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Step is the time step in seconds.
func (c *Config) Step() float64 { return c.DtDays * nbody.DaySec }

// Duration is the simulated time span in seconds.
func (c *Config) Duration() float64 { return c.DurationDays * nbody.DaySec }

func (c *Config) Validate() error {
	if !(c.DtDays > 0) || math.IsInf(c.DtDays, 0) {
		return fmt.Errorf("%w: dt_days must be positive, got %g", ErrInvalid, c.DtDays)
	}
	if !(c.DurationDays > 0) || math.IsInf(c.DurationDays, 0) {
		return fmt.Errorf("%w: duration_days must be positive, got %g", ErrInvalid, c.DurationDays)
	}
	if math.IsNaN(c.G) || math.IsInf(c.G, 0) {
		return fmt.Errorf("%w: g must be finite, got %g", ErrInvalid, c.G)
	}
	if c.Star.Name == "" {
		return fmt.Errorf("%w: star needs a name", ErrInvalid)
	}
	for i, o := range c.Orbiters {
		if o.Name == "" {
			return fmt.Errorf("%w: orbiter %d needs a name", ErrInvalid, i)
		}
	}
	return nil
}

func (b BodyConfig) Body() nbody.Body {
	return nbody.Body{
		Name:                 b.Name,
		Mass:                 b.Mass,
		Pos:                  mgl64.Vec3(b.PositionAU).Mul(nbody.AU),
		Vel:                  mgl64.Vec3(b.Velocity),
		ExcludedFromReaction: b.ExcludedFromReaction,
	}
}

// Build validates the configuration and returns a ready integrator.
func (c *Config) Build() (*nbody.Integrator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	orbiters := make([]nbody.Body, len(c.Orbiters))
	for i, o := range c.Orbiters {
		orbiters[i] = o.Body()
	}
	in, err := nbody.New(c.G, c.Star.Body(), orbiters...)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	in.SetValidateState(c.ValidateState)
	return in, nil
}

func fromBody(b nbody.Body) BodyConfig {
	return BodyConfig{
		Name:                 b.Name,
		Mass:                 b.Mass,
		PositionAU:           [3]float64{b.Pos[0] / nbody.AU, b.Pos[1] / nbody.AU, b.Pos[2] / nbody.AU},
		Velocity:             b.Vel,
		ExcludedFromReaction: b.ExcludedFromReaction,
	}
}
