// Package particle defines the simulation's one concrete body kind plus the
// pairwise gravitational kernel applied to it.
package particle

import (
	"github.com/Harsh-Sinha/n-body-simulation/internal/geom"
)

// G is the gravitational constant in m^3 / (kg * s^2). The sign is negative:
// the kernel scales the raw source-to-probe displacement rather than its unit
// vector, and the negative constant turns that into a pull back toward the
// source.
const G = -6.6743e-11

// DefaultSoftening is the length added to every pairwise distance to keep the
// kernel finite when two bodies coincide.
const DefaultSoftening = 1e-8

// Particle is a simulated body. IDs are dense, 0..N-1. Force accumulates the
// gravitational pull over one iteration and is zeroed by the integrator.
type Particle struct {
	ID    int
	Mass  float64
	Pos   geom.Vec3
	Vel   geom.Vec3
	Acc   geom.Vec3
	Force geom.Vec3
}

// Body is the aggregate stand-in for an interior tree node: the center of
// mass and total mass of everything beneath it.
type Body struct {
	Pos  geom.Vec3
	Mass float64
}

// ApplyForce accumulates the pull of a source mass at pos onto p.
//
// The scalar F = G*m_a*m_b/d^2 multiplies the raw displacement, not the unit
// vector, so one factor of d is folded into the formula: d is |delta| +
// softening, not |delta|^3.
func (p *Particle) ApplyForce(pos geom.Vec3, mass, softening float64) {
	delta := p.Pos.Sub(pos)
	d := delta.Norm() + softening

	f := G * ((p.Mass * mass) / (d * d))

	p.Force = p.Force.Add(delta.Scale(f))
}

// ApplyBody accumulates the pull of an aggregate body onto p.
func (p *Particle) ApplyBody(b Body, softening float64) {
	p.ApplyForce(b.Pos, b.Mass, softening)
}
