// Package config loads scenario descriptions: the particles, forces,
// links and world parameters for a run, expressed in YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.01
	DefaultDuration     = 10.0
	DefaultMaxContacts  = 64
	DefaultIterations   = 0 // 0 selects the resolver's automatic 2*used policy
	DefaultRestitution  = 0.5
)

// Config is a full scenario: a world plus the particles, force bindings
// and links populating it.
type Config struct {
	Scenario    string           `yaml:"scenario"`
	Integrator  string           `yaml:"integrator"` // run label, "verlet" by default; World.RunPhysics always integrates with velocity Verlet
	Dt          float64          `yaml:"dt"`
	Duration    float64          `yaml:"duration"`
	Seed        int64            `yaml:"seed"`
	MaxContacts int              `yaml:"max_contacts"`
	Iterations  int              `yaml:"iterations"`
	Gravity     *Vec3Config      `yaml:"gravity,omitempty"`
	Particles   []ParticleConfig `yaml:"particles"`
	Forces      []ForceConfig    `yaml:"forces"`
	Links       []LinkConfig     `yaml:"links"`
	Potentials  []PotentialConfig `yaml:"potentials,omitempty"`
	Ground      *GroundConfig    `yaml:"ground,omitempty"`
}

type Vec3Config struct {
	X, Y, Z float64 `yaml:",inline"`
}

type ParticleConfig struct {
	Name        string  `yaml:"name"`
	Pos         [3]float64 `yaml:"pos"`
	Vel         [3]float64 `yaml:"vel"`
	InverseMass float64 `yaml:"inverse_mass"`
	Damping     float64 `yaml:"damping"`
}

// ForceConfig describes one (particle, generator) binding. Kind selects
// the generator type; fields not used by that kind are ignored.
type ForceConfig struct {
	Kind       string     `yaml:"kind"` // gravity, point_gravity, drag, uplift, spring, anchored_spring, bungee, fake_spring, universal_gravity
	Particle   string     `yaml:"particle"`
	Other      string     `yaml:"other,omitempty"`
	Origin     [3]float64 `yaml:"origin,omitempty"`
	Anchor     [3]float64 `yaml:"anchor,omitempty"`
	Vector     [3]float64 `yaml:"vector,omitempty"` // constant-acceleration gravity direction
	Radius     float64    `yaml:"radius,omitempty"`
	SourceMass float64    `yaml:"source_mass,omitempty"`
	K1         float64    `yaml:"k1,omitempty"`
	K2         float64    `yaml:"k2,omitempty"`
	K          float64    `yaml:"k,omitempty"`
	RestLength float64    `yaml:"rest_length,omitempty"`
	ElasticLimit float64  `yaml:"elastic_limit,omitempty"`
	Damping    float64    `yaml:"damping,omitempty"`
}

// LinkConfig describes a Cable or Rod between two named particles.
type LinkConfig struct {
	Kind        string  `yaml:"kind"` // cable, rod
	ParticleA   string  `yaml:"particle_a"`
	ParticleB   string  `yaml:"particle_b"`
	MaxLength   float64 `yaml:"max_length,omitempty"`
	Length      float64 `yaml:"length,omitempty"`
	Restitution float64 `yaml:"restitution,omitempty"`
}

type GroundConfig struct {
	Restitution float64 `yaml:"restitution"`
}

// PotentialConfig describes a pairwise potential interaction among a group
// of particles. An empty Particles list means "every declared particle",
// matching a gas filling its whole container.
type PotentialConfig struct {
	Kind      string   `yaml:"kind"` // lennard_jones
	Particles []string `yaml:"particles,omitempty"`
	Sigma     float64  `yaml:"sigma,omitempty"`
	Epsilon   float64  `yaml:"epsilon,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    "bouncing_ball",
		Integrator:  "verlet",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		MaxContacts: DefaultMaxContacts,
		Iterations:  DefaultIterations,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that every named particle reference in Forces and Links
// resolves to a declared particle.
func (c *Config) Validate() error {
	names := make(map[string]bool, len(c.Particles))
	for _, p := range c.Particles {
		if p.Name == "" {
			return fmt.Errorf("config: particle with empty name")
		}
		if names[p.Name] {
			return fmt.Errorf("config: duplicate particle name %q", p.Name)
		}
		names[p.Name] = true
	}
	for _, f := range c.Forces {
		if !names[f.Particle] {
			return fmt.Errorf("config: force %q references unknown particle %q", f.Kind, f.Particle)
		}
		if f.Other != "" && !names[f.Other] {
			return fmt.Errorf("config: force %q references unknown other particle %q", f.Kind, f.Other)
		}
	}
	for _, l := range c.Links {
		if !names[l.ParticleA] || !names[l.ParticleB] {
			return fmt.Errorf("config: link %q references unknown particle", l.Kind)
		}
	}
	for _, pc := range c.Potentials {
		for _, n := range pc.Particles {
			if !names[n] {
				return fmt.Errorf("config: potential %q references unknown particle %q", pc.Kind, n)
			}
		}
	}
	return nil
}
