// Package store retains the per-iteration position frames of a simulation
// and dumps them to the binary playback format.
package store

import (
	"errors"
	"fmt"

	"github.com/Harsh-Sinha/n-body-simulation/internal/geom"
)

// Domain errors for store operations.
var (
	// ErrIDOutOfRange indicates a particle id at or beyond N.
	ErrIDOutOfRange = errors.New("store: particle id out of range")

	// ErrFrameOutOfRange indicates a frame index beyond numIterations.
	ErrFrameOutOfRange = errors.New("store: frame index out of range")
)

// Store holds numIterations+1 dense position frames indexed by particle id,
// plus the per-particle masses. Frame 0 is the initial state. Writes to
// distinct ids may run concurrently; writes to the same id may not.
type Store struct {
	n          int
	dt         float64
	iterations int
	masses     []float32
	frames     [][]geom.Vec3
}

// New creates a store for n particles over iterations simulation steps.
func New(n int, dt float64, iterations int) *Store {
	frames := make([][]geom.Vec3, iterations+1)
	for i := range frames {
		frames[i] = make([]geom.Vec3, n)
	}
	return &Store{
		n:          n,
		dt:         dt,
		iterations: iterations,
		masses:     make([]float32, n),
		frames:     frames,
	}
}

// N returns the particle count.
func (s *Store) N() int { return s.n }

// Dt returns the integration step the store was created with.
func (s *Store) Dt() float64 { return s.dt }

// FrameCount returns the number of retained frames, numIterations+1.
func (s *Store) FrameCount() int { return len(s.frames) }

// AddMass records the mass for particle id. Masses are truncated to float32
// on write, matching the playback format.
func (s *Store) AddMass(id int, mass float64) error {
	if id < 0 || id >= s.n {
		return fmt.Errorf("%w: id %d, n %d", ErrIDOutOfRange, id, s.n)
	}
	s.masses[id] = float32(mass)
	return nil
}

// SetPosition writes the position of particle id in the given frame.
func (s *Store) SetPosition(frame, id int, pos geom.Vec3) error {
	if frame < 0 || frame >= len(s.frames) {
		return fmt.Errorf("%w: frame %d, frames %d", ErrFrameOutOfRange, frame, len(s.frames))
	}
	if id < 0 || id >= s.n {
		return fmt.Errorf("%w: id %d, n %d", ErrIDOutOfRange, id, s.n)
	}
	s.frames[frame][id] = pos
	return nil
}

// Frame returns the dense position vector for one frame.
func (s *Store) Frame(frame int) ([]geom.Vec3, error) {
	if frame < 0 || frame >= len(s.frames) {
		return nil, fmt.Errorf("%w: frame %d, frames %d", ErrFrameOutOfRange, frame, len(s.frames))
	}
	return s.frames[frame], nil
}

// Mass returns the recorded mass for particle id.
func (s *Store) Mass(id int) (float32, error) {
	if id < 0 || id >= s.n {
		return 0, fmt.Errorf("%w: id %d, n %d", ErrIDOutOfRange, id, s.n)
	}
	return s.masses[id], nil
}
