// Package sim chains the per-step pipeline: rebuild the octree, reduce
// centers of mass, evaluate forces, integrate, persist positions.
package sim

import (
	"context"
	"time"

	"github.com/Harsh-Sinha/n-body-simulation/internal/gravity"
	"github.com/Harsh-Sinha/n-body-simulation/internal/octree"
	"github.com/Harsh-Sinha/n-body-simulation/internal/particle"
	"github.com/Harsh-Sinha/n-body-simulation/internal/profile"
	"github.com/Harsh-Sinha/n-body-simulation/internal/store"
)

// Profiler section names, one per pipeline phase.
const (
	SectionOctree    = "octree creation"
	SectionReduce    = "center of mass calculation"
	SectionForces    = "applying forces calculation"
	SectionIntegrate = "update pos/vel/acc"
)

// Observer is notified after each completed iteration.
type Observer interface {
	OnIteration(iteration, total int, stepTime time.Duration)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(iteration, total int, stepTime time.Duration)

func (f ObserverFunc) OnIteration(iteration, total int, stepTime time.Duration) {
	f(iteration, total, stepTime)
}

// Simulator owns the particle set for the lifetime of a run. The tree built
// each iteration only borrows the particles and is discarded with the
// iteration.
type Simulator struct {
	particles []*particle.Particle
	store     *store.Store
	cfg       Config
	profiler  *profile.Profiler
	observers []Observer
}

// New prepares a simulator over particles, writing frames into st.
func New(particles []*particle.Particle, cfg Config, st *store.Store) *Simulator {
	return &Simulator{
		particles: particles,
		store:     st,
		cfg:       cfg,
	}
}

// SetProfiler attaches a section profiler. A nil profiler disables profiling.
func (s *Simulator) SetProfiler(p *profile.Profiler) { s.profiler = p }

// AddObserver registers an iteration observer.
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run executes the full simulation. Frame 0 of the store receives the
// initial positions, iteration k emits frame k+1. Any failure aborts the
// run; there is no per-step recovery.
func (s *Simulator) Run(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	if len(s.particles) == 0 {
		return octree.ErrEmptyInput
	}

	for _, p := range s.particles {
		if err := s.store.AddMass(p.ID, p.Mass); err != nil {
			return err
		}
		if err := s.store.SetPosition(0, p.ID, p.Pos); err != nil {
			return err
		}
	}

	iterations := s.cfg.Iterations()
	opts := s.cfg.treeOptions()

	for i := 0; i < iterations; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		begin := time.Now()

		stop := s.profiler.Start(SectionOctree)
		tree, err := octree.Build(s.particles, opts)
		stop()
		if err != nil {
			return err
		}

		stop = s.profiler.Start(SectionReduce)
		gravity.Reduce(tree, s.cfg.Workers)
		stop()

		stop = s.profiler.Start(SectionForces)
		gravity.Evaluate(tree, s.cfg.Theta, s.cfg.Softening, s.cfg.Workers)
		stop()

		stop = s.profiler.Start(SectionIntegrate)
		err = s.integrate(tree, i)
		stop()
		if err != nil {
			return err
		}

		step := time.Since(begin)
		for _, o := range s.observers {
			o.OnIteration(i+1, iterations, step)
		}
	}

	return nil
}

// Simulate runs the whole driver in one call.
func Simulate(ctx context.Context, particles []*particle.Particle, cfg Config, st *store.Store) error {
	return New(particles, cfg, st).Run(ctx)
}
