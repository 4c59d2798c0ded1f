package particle

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Harsh-Sinha/n-body-simulation/internal/geom"
)

func TestConfigRoundTrip(t *testing.T) {
	in := []*Particle{
		{
			ID:   0,
			Mass: 1.5e20,
			Pos:  geom.Vec3{X: 0.5, Y: -1.25, Z: 3},
			Vel:  geom.Vec3{X: 1, Y: 0, Z: -2},
			Acc:  geom.Vec3{X: 0, Y: 0.125, Z: 0},
		},
		{
			ID:   1,
			Mass: 4.25e10,
			Pos:  geom.Vec3{X: -10, Y: 20, Z: -30},
		},
	}

	path := filepath.Join(t.TempDir(), "particles.cfg")
	if err := WriteConfig(path, in); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out, err := Parse(path)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("parsed %d particles, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].ID != in[i].ID || out[i].Mass != in[i].Mass {
			t.Errorf("particle %d: id/mass mismatch: %+v vs %+v", i, out[i], in[i])
		}
		if out[i].Pos != in[i].Pos || out[i].Vel != in[i].Vel || out[i].Acc != in[i].Acc {
			t.Errorf("particle %d: vector mismatch: %+v vs %+v", i, out[i], in[i])
		}
	}
}

func TestRead_SkipsHeader(t *testing.T) {
	src := `NumParticles: 1
Particle ID: 7
Position: (1, 2, 3)
Velocity: (0, 0, 0)
Acceleration: (0, 0, 0)
Mass: 42
`
	out, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != 7 || out[0].Mass != 42 {
		t.Errorf("unexpected parse result: %+v", out)
	}
}

func TestRead_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"bad keyword", "header\nBody ID: 0\n"},
		{"bad triple", "header\nParticle ID: 0\nPosition: (1, 2)\nVelocity: (0,0,0)\nAcceleration: (0,0,0)\nMass: 1\n"},
		{"truncated", "header\nParticle ID: 0\nPosition: (1, 2, 3)\n"},
		{"bad mass", "header\nParticle ID: 0\nPosition: (1,2,3)\nVelocity: (0,0,0)\nAcceleration: (0,0,0)\nMass: heavy\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParse_MissingFile(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "missing.cfg")); err == nil {
		t.Error("expected error for missing file")
	}
}
