package config

// Presets returns the built-in demo scenarios: lunar orbit, a miniature
// solar system, a bouncing ball over a ground plane, and a thermodynamic
// gas of Lennard-Jones particles. They exist as sample programs for the
// engine, not as part of its contract — a consumer is free to load any
// other scenario YAML instead.
func Presets() map[string]*Config {
	return map[string]*Config{
		"lunar_orbit":       lunarOrbit(),
		"solar_system":      solarSystem(),
		"bouncing_ball":     bouncingBall(),
		"thermodynamic_gas": thermodynamicGas(),
	}
}

func lunarOrbit() *Config {
	return &Config{
		Scenario:    "lunar_orbit",
		Integrator:  "verlet",
		Dt:          1.0,
		Duration:    2360000.0, // roughly one lunar month in seconds
		MaxContacts: 8,
		Particles: []ParticleConfig{
			{Name: "earth", Pos: [3]float64{0, 0, 0}, InverseMass: 1.0 / 5.972e24},
			{Name: "moon", Pos: [3]float64{3.844e8, 0, 0}, Vel: [3]float64{0, 0, 1022}, InverseMass: 1.0 / 7.348e22},
		},
		Forces: []ForceConfig{
			{Kind: "point_gravity", Particle: "moon", Origin: [3]float64{0, 0, 0}, SourceMass: 5.972e24},
		},
	}
}

func solarSystem() *Config {
	return &Config{
		Scenario:    "solar_system",
		Integrator:  "verlet",
		Dt:          3600.0,
		Duration:    3.1536e7, // one year
		MaxContacts: 8,
		Particles: []ParticleConfig{
			{Name: "sun", Pos: [3]float64{0, 0, 0}, InverseMass: 1.0 / 1.989e30},
			{Name: "earth", Pos: [3]float64{1.496e11, 0, 0}, Vel: [3]float64{0, 0, 29780}, InverseMass: 1.0 / 5.972e24},
			{Name: "mars", Pos: [3]float64{2.279e11, 0, 0}, Vel: [3]float64{0, 0, 24070}, InverseMass: 1.0 / 6.39e23},
		},
	}
}

func bouncingBall() *Config {
	return &Config{
		Scenario:    "bouncing_ball",
		Integrator:  "verlet",
		Dt:          0.01,
		Duration:    10.0,
		MaxContacts: 8,
		Particles: []ParticleConfig{
			{Name: "ball", Pos: [3]float64{0, 5, 0}, InverseMass: 1.0},
		},
		Forces: []ForceConfig{
			{Kind: "gravity", Particle: "ball"},
		},
		Ground: &GroundConfig{Restitution: 0.6},
	}
}

func thermodynamicGas() *Config {
	particles := make([]ParticleConfig, 0, 20)
	grid := 5
	spacing := 1.5
	i := 0
	for x := 0; x < grid; x++ {
		for z := 0; z < grid && i < 20; z++ {
			particles = append(particles, ParticleConfig{
				Name:        fmt3Name(i),
				Pos:         [3]float64{float64(x) * spacing, 1, float64(z) * spacing},
				Vel:         [3]float64{0.1 * float64(x%3-1), 0, 0.1 * float64(z%3-1)},
				InverseMass: 1.0,
			})
			i++
		}
	}
	return &Config{
		Scenario:    "thermodynamic_gas",
		Integrator:  "verlet",
		Dt:          0.001,
		Duration:    5.0,
		MaxContacts: 256,
		Particles:   particles,
		Potentials: []PotentialConfig{
			{Kind: "lennard_jones", Sigma: spacing * 0.6, Epsilon: 1.0},
		},
	}
}

func fmt3Name(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return "gas_" + string(letters[i%len(letters)]) + string(letters[(i/len(letters))%len(letters)])
}
