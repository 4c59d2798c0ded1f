package particle

import (
	"fmt"
	"math/rand"

	"github.com/Harsh-Sinha/n-body-simulation/internal/geom"
)

// Limits bound the random draws for generated particles. Each pair is
// (lower, upper). Velocity and acceleration limits apply per component.
type Limits struct {
	BoxMin geom.Vec3
	BoxMax geom.Vec3
	Mass   [2]float64
	Vel    [2]float64
	Acc    [2]float64
}

// DefaultLimits spread particles of mass 1e10 to 1e12 through a 2000 m cube
// at rest.
func DefaultLimits() Limits {
	return Limits{
		BoxMin: geom.Vec3{X: -1000, Y: -1000, Z: -1000},
		BoxMax: geom.Vec3{X: 1000, Y: 1000, Z: 1000},
		Mass:   [2]float64{1e10, 1e12},
	}
}

// Generate draws n particles uniformly within limits. IDs are assigned
// densely in draw order. The same seed reproduces the same set.
func Generate(n int, limits Limits, seed int64) ([]*Particle, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cannot generate %d particles", n)
	}
	if limits.Mass[1] < limits.Mass[0] || limits.Mass[0] <= 0 {
		return nil, fmt.Errorf("bad mass limits [%g, %g]", limits.Mass[0], limits.Mass[1])
	}

	rng := rand.New(rand.NewSource(seed))
	uniform := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}
	triple := func(lo, hi float64) geom.Vec3 {
		return geom.Vec3{
			X: uniform(lo, hi),
			Y: uniform(lo, hi),
			Z: uniform(lo, hi),
		}
	}

	particles := make([]*Particle, n)
	for i := range particles {
		particles[i] = &Particle{
			ID:   i,
			Mass: uniform(limits.Mass[0], limits.Mass[1]),
			Pos: geom.Vec3{
				X: uniform(limits.BoxMin.X, limits.BoxMax.X),
				Y: uniform(limits.BoxMin.Y, limits.BoxMax.Y),
				Z: uniform(limits.BoxMin.Z, limits.BoxMax.Z),
			},
			Vel: triple(limits.Vel[0], limits.Vel[1]),
			Acc: triple(limits.Acc[0], limits.Acc[1]),
		}
	}

	return particles, nil
}
