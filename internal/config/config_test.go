package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Theta != 0.5 {
		t.Errorf("theta = %g, want 0.5", cfg.Theta)
	}
	if cfg.MaxPointsPerNode != 1 {
		t.Errorf("max points per node = %d, want 1", cfg.MaxPointsPerNode)
	}
	if cfg.BulkPartitionThreshold != 5000 {
		t.Errorf("bulk partition threshold = %d, want 5000", cfg.BulkPartitionThreshold)
	}
	if !cfg.Parallel {
		t.Error("parallel should default on")
	}
	if cfg.Workers < 1 {
		t.Errorf("workers = %d", cfg.Workers)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	src := `dt: 0.5
length: 100
theta: 0.75
input: particles.cfg
output: run.nbody
workers: 3
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Dt != 0.5 || cfg.Length != 100 || cfg.Theta != 0.75 {
		t.Errorf("values not loaded: %+v", cfg)
	}
	if cfg.Input != "particles.cfg" || cfg.Output != "run.nbody" {
		t.Errorf("paths not loaded: %+v", cfg)
	}
	if cfg.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Workers)
	}
	// untouched fields keep their defaults
	if cfg.Softening != Default().Softening {
		t.Errorf("softening = %g, want default", cfg.Softening)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("dt: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Dt = 0.125
	cfg.Length = 10
	cfg.Input = "in.cfg"
	cfg.Output = "out.nbody"
	cfg.Parallel = false

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip changed config:\nsaved %+v\nloaded %+v", cfg, loaded)
	}
}

func TestSimConfigMapping(t *testing.T) {
	cfg := Default()
	cfg.Dt = 0.5
	cfg.Length = 20
	cfg.Workers = 7

	sc := cfg.SimConfig()
	if sc.Dt != 0.5 || sc.Length != 20 || sc.Workers != 7 {
		t.Errorf("mapping lost values: %+v", sc)
	}
	if sc.Theta != cfg.Theta || sc.Softening != cfg.Softening {
		t.Errorf("mapping lost defaults: %+v", sc)
	}
	if sc.Iterations() != 40 {
		t.Errorf("iterations = %d, want 40", sc.Iterations())
	}
}
