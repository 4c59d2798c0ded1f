// Package octree builds the pointer-linked spatial partition the force
// evaluator walks. A tree is built fresh from the particle set each
// simulation step and discarded at the end of it.
package octree

import (
	"errors"

	"github.com/Harsh-Sinha/n-body-simulation/internal/parallel"
	"github.com/Harsh-Sinha/n-body-simulation/internal/particle"
)

// ErrEmptyInput indicates a tree was requested for zero particles.
var ErrEmptyInput = errors.New("octree: cannot build from zero particles")

const (
	// DefaultMaxPointsPerNode is the leaf capacity for general-purpose
	// trees. The simulation tree uses 1 so each leaf holds a single
	// particle.
	DefaultMaxPointsPerNode = 5

	// DefaultBulkPartitionThreshold is the population at or below which a
	// node is drained by serial insertion instead of partitioned.
	DefaultBulkPartitionThreshold = 5000

	// bulkThreshold splits the partition strategies: populations up to it
	// use the single-worker task partition, larger ones the two-pass bulk
	// partition with atomic per-octant cursors.
	bulkThreshold = 50000
)

// Options tune tree construction. Zero values fall back to the defaults
// above; Workers defaults to the machine's CPU count.
type Options struct {
	Parallel               bool
	MaxPointsPerNode       int
	BulkPartitionThreshold int
	Workers                int
}

func (o Options) normalized() Options {
	if o.MaxPointsPerNode < 1 {
		o.MaxPointsPerNode = DefaultMaxPointsPerNode
	}
	if o.BulkPartitionThreshold < 1 {
		o.BulkPartitionThreshold = DefaultBulkPartitionThreshold
	}
	if o.Workers < 1 {
		o.Workers = parallel.DefaultWorkers()
	}
	return o
}

// Tree owns the root node and, transitively, every descendant. Leaves lists
// every leaf in a deterministic traversal order for a fixed worker count.
type Tree struct {
	Root   *Node
	Leaves []*Node

	opts Options
}

// MaxPointsPerNode returns the leaf capacity the tree was built with.
func (t *Tree) MaxPointsPerNode() int {
	return t.opts.MaxPointsPerNode
}

// Workers returns the worker count the tree was built with.
func (t *Tree) Workers() int {
	return t.opts.Workers
}

// Build constructs the octree over points. Every input particle ends up
// referenced by exactly one leaf, every leaf holds between 1 and
// MaxPointsPerNode particles, and every child box is a strict halving of its
// parent's.
func Build(points []*particle.Particle, opts Options) (*Tree, error) {
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}

	opts = opts.normalized()
	t := &Tree{opts: opts}

	boundsWorkers := 1
	if opts.Parallel {
		boundsWorkers = opts.Workers
	}
	box, err := geomBounds(points, boundsWorkers)
	if err != nil {
		return nil, err
	}
	t.Root = &Node{Box: box}

	if opts.Parallel {
		t.Root.Particles = make([]*particle.Particle, len(points))
		copy(t.Root.Particles, points)
		t.processNode(t.Root)
		t.Leaves = t.genLeavesParallel()
	} else {
		for _, p := range points {
			t.insert(t.Root, p)
		}
		t.Leaves = t.Leaves[:0]
		t.genLeaves(t.Root, &t.Leaves)
	}

	return t, nil
}
