package particle

import (
	"math"
	"testing"

	"github.com/Harsh-Sinha/n-body-simulation/internal/geom"
)

func TestApplyForce_Attracts(t *testing.T) {
	a := &Particle{ID: 0, Mass: 1e10, Pos: geom.Vec3{X: 1}}
	b := &Particle{ID: 1, Mass: 1e10, Pos: geom.Vec3{X: -1}}

	a.ApplyForce(b.Pos, b.Mass, DefaultSoftening)

	if a.Force.X >= 0 {
		t.Errorf("force on a = %v, want a pull in -x toward b", a.Force)
	}
	if a.Force.Y != 0 || a.Force.Z != 0 {
		t.Errorf("off-axis force components: %v", a.Force)
	}
}

func TestApplyForce_FoldsOneDistanceFactor(t *testing.T) {
	a := &Particle{ID: 0, Mass: 2, Pos: geom.Vec3{}}
	src := geom.Vec3{X: 3, Y: 4, Z: 0}
	srcMass := 5.0
	softening := 1e-8

	a.ApplyForce(src, srcMass, softening)

	// magnitude is |delta| * G*m*m/d^2 with d = |delta| + eps, which is
	// G*m*m/d up to the softening, NOT G*m*m/d^2
	d := 5.0 + softening
	wantMag := math.Abs(G) * a.Mass * srcMass / (d * d) * 5.0
	if got := a.Force.Norm(); math.Abs(got-wantMag) > wantMag*1e-12 {
		t.Errorf("force magnitude = %g, want %g", got, wantMag)
	}
}

func TestApplyForce_PairwiseSymmetry(t *testing.T) {
	a := &Particle{ID: 0, Mass: 3e8, Pos: geom.Vec3{X: 0.5, Y: -1, Z: 2}}
	b := &Particle{ID: 1, Mass: 7e9, Pos: geom.Vec3{X: -2, Y: 0.25, Z: 1}}

	a.ApplyForce(b.Pos, b.Mass, DefaultSoftening)
	b.ApplyForce(a.Pos, a.Mass, DefaultSoftening)

	sum := a.Force.Add(b.Force)
	if sum.Norm() > a.Force.Norm()*1e-12 {
		t.Errorf("forces not equal and opposite: a=%v b=%v", a.Force, b.Force)
	}
}

func TestApplyForce_Accumulates(t *testing.T) {
	p := &Particle{ID: 0, Mass: 1e10, Pos: geom.Vec3{}}
	src := geom.Vec3{X: 10}

	p.ApplyForce(src, 1e10, DefaultSoftening)
	once := p.Force
	p.ApplyForce(src, 1e10, DefaultSoftening)

	if math.Abs(p.Force.X-2*once.X) > math.Abs(once.X)*1e-12 {
		t.Errorf("force did not accumulate: %v after two applications of %v", p.Force, once)
	}
}

func TestApplyBody(t *testing.T) {
	p := &Particle{ID: 0, Mass: 1e10, Pos: geom.Vec3{}}
	q := &Particle{ID: 1, Mass: 1e10, Pos: geom.Vec3{}}
	b := Body{Pos: geom.Vec3{X: 3, Y: -1, Z: 2}, Mass: 5e9}

	p.ApplyBody(b, DefaultSoftening)
	q.ApplyForce(b.Pos, b.Mass, DefaultSoftening)

	if p.Force != q.Force {
		t.Errorf("ApplyBody %v differs from ApplyForce %v", p.Force, q.Force)
	}
}

func TestSofteningAvoidsSingularity(t *testing.T) {
	p := &Particle{ID: 0, Mass: 1, Pos: geom.Vec3{}}

	p.ApplyForce(geom.Vec3{}, 1, DefaultSoftening)

	if !p.Force.IsValid() {
		t.Errorf("coincident bodies produced invalid force %v", p.Force)
	}
}
