package sim

import (
	"errors"
	"fmt"

	"github.com/Harsh-Sinha/n-body-simulation/internal/gravity"
	"github.com/Harsh-Sinha/n-body-simulation/internal/octree"
	"github.com/Harsh-Sinha/n-body-simulation/internal/parallel"
	"github.com/Harsh-Sinha/n-body-simulation/internal/particle"
)

// ErrInvalidConfig indicates a config parameter outside its valid range.
var ErrInvalidConfig = errors.New("sim: invalid config")

// Config holds every knob of a simulation run.
type Config struct {
	// Dt is the integration step in seconds.
	Dt float64
	// Length is the simulated time span; the run executes
	// floor(Length/Dt) iterations.
	Length float64
	// Theta is the Barnes-Hut opening angle.
	Theta float64
	// Softening is added to every pairwise distance in the force kernel.
	Softening float64
	// MaxPointsPerNode is the leaf capacity of the simulation tree. It
	// defaults to 1, so each leaf holds a single particle; larger leaves
	// are walked pairwise.
	MaxPointsPerNode int
	// BulkPartitionThreshold is the node population at or below which the
	// builder drains serially.
	BulkPartitionThreshold int
	// Workers is the parallel worker count.
	Workers int
	// Parallel selects the hybrid parallel builder and parallel phases.
	Parallel bool
}

// DefaultConfig returns the knobs at their simulation defaults. Dt and
// Length have no sensible defaults and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		Theta:                  gravity.DefaultTheta,
		Softening:              particle.DefaultSoftening,
		MaxPointsPerNode:       1,
		BulkPartitionThreshold: octree.DefaultBulkPartitionThreshold,
		Workers:                parallel.DefaultWorkers(),
		Parallel:               true,
	}
}

// Validate checks the config, naming the offending parameter.
func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	}
	if c.Length <= 0 {
		return fmt.Errorf("%w: length must be positive, got %g", ErrInvalidConfig, c.Length)
	}
	if c.Theta <= 0 {
		return fmt.Errorf("%w: theta must be positive, got %g", ErrInvalidConfig, c.Theta)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Iterations returns the number of steps the run executes.
func (c Config) Iterations() int {
	return int(c.Length / c.Dt)
}

func (c Config) treeOptions() octree.Options {
	return octree.Options{
		Parallel:               c.Parallel,
		MaxPointsPerNode:       c.MaxPointsPerNode,
		BulkPartitionThreshold: c.BulkPartitionThreshold,
		Workers:                c.Workers,
	}
}
