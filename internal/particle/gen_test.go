package particle

import (
	"testing"

	"github.com/Harsh-Sinha/n-body-simulation/internal/geom"
)

func TestGenerate_RespectsLimits(t *testing.T) {
	limits := Limits{
		BoxMin: geom.Vec3{X: -5, Y: 0, Z: 10},
		BoxMax: geom.Vec3{X: 5, Y: 2, Z: 20},
		Mass:   [2]float64{1, 3},
		Vel:    [2]float64{-0.5, 0.5},
	}

	particles, err := Generate(500, limits, 42)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(particles) != 500 {
		t.Fatalf("generated %d particles, want 500", len(particles))
	}

	for i, p := range particles {
		if p.ID != i {
			t.Fatalf("particle %d has id %d, want dense ids", i, p.ID)
		}
		if p.Mass < 1 || p.Mass > 3 {
			t.Errorf("particle %d mass %g outside [1, 3]", i, p.Mass)
		}
		if p.Pos.X < -5 || p.Pos.X > 5 || p.Pos.Y < 0 || p.Pos.Y > 2 || p.Pos.Z < 10 || p.Pos.Z > 20 {
			t.Errorf("particle %d position %v outside box", i, p.Pos)
		}
		if p.Vel.X < -0.5 || p.Vel.X > 0.5 {
			t.Errorf("particle %d velocity %v outside limits", i, p.Vel)
		}
		if p.Acc != (geom.Vec3{}) {
			t.Errorf("particle %d acceleration %v, want zero for zero limits", i, p.Acc)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	limits := DefaultLimits()

	a, err := Generate(50, limits, 7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	b, err := Generate(50, limits, 7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for i := range a {
		if a[i].Pos != b[i].Pos || a[i].Mass != b[i].Mass {
			t.Fatalf("same seed diverged at particle %d", i)
		}
	}

	c, _ := Generate(50, limits, 8)
	same := true
	for i := range a {
		if a[i].Pos != c[i].Pos {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical particles")
	}
}

func TestGenerate_BadArgs(t *testing.T) {
	limits := DefaultLimits()

	if _, err := Generate(0, limits, 1); err == nil {
		t.Error("expected error for n=0")
	}

	limits.Mass = [2]float64{0, 1}
	if _, err := Generate(10, limits, 1); err == nil {
		t.Error("expected error for non-positive mass limit")
	}

	limits.Mass = [2]float64{5, 1}
	if _, err := Generate(10, limits, 1); err == nil {
		t.Error("expected error for inverted mass limits")
	}
}
