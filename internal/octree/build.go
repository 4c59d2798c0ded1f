package octree

import (
	"sync"
	"sync/atomic"

	"github.com/Harsh-Sinha/n-body-simulation/internal/geom"
	"github.com/Harsh-Sinha/n-body-simulation/internal/parallel"
	"github.com/Harsh-Sinha/n-body-simulation/internal/particle"
)

func geomBounds(points []*particle.Particle, workers int) (geom.BoundingBox, error) {
	return geom.Bounds(len(points), func(i int) geom.Vec3 {
		return points[i].Pos
	}, workers)
}

// insert places one particle below node by serial recursion. A full leaf is
// promoted first: every held particle is routed to its child slot, then the
// cleared node routes the incoming particle as an interior node would.
func (t *Tree) insert(node *Node, p *particle.Particle) {
	if node.IsLeaf() && len(node.Particles) >= t.opts.MaxPointsPerNode {
		held := node.Particles
		node.Particles = nil
		for _, q := range held {
			t.insert(node.childFor(q), q)
		}
	}

	if node.IsLeaf() && len(node.Particles) < t.opts.MaxPointsPerNode {
		node.Particles = append(node.Particles, p)
		return
	}

	t.insert(node.childFor(p), p)
}

// processNode is the hybrid parallel strategy. The node arrives holding its
// whole particle population and exactly one worker owns it at a time:
//   - small populations are drained through serial insertion,
//   - medium ones are partitioned by a single counting pass and handed to one
//     task per oversized child,
//   - large ones go through the two-pass bulk partition, which replaces the
//     per-particle scatter with two linear passes over a shared buffer.
func (t *Tree) processNode(node *Node) {
	points := node.Particles
	n := len(points)

	if n <= t.opts.MaxPointsPerNode {
		return
	}

	if n <= t.opts.BulkPartitionThreshold {
		node.Particles = nil
		for _, p := range points {
			t.insert(node, p)
		}
		return
	}

	if n <= bulkThreshold {
		t.taskPartition(node, points)
	} else {
		t.bulkPartition(node, points)
	}

	node.Particles = nil

	var wg sync.WaitGroup
	for _, child := range node.Children {
		if child == nil || len(child.Particles) <= t.opts.MaxPointsPerNode {
			continue
		}
		wg.Add(1)
		go func(c *Node) {
			defer wg.Done()
			t.processNode(c)
		}(child)
	}
	wg.Wait()
}

// taskPartition counts per-octant occupancy in one pass, reserves each child
// to its exact population, then scatters.
func (t *Tree) taskPartition(node *Node, points []*particle.Particle) {
	var counts [8]int
	for _, p := range points {
		counts[geom.OctantID(p.Pos, node.Box)]++
	}

	for octant, count := range counts {
		if count == 0 {
			continue
		}
		child := node.childAt(octant)
		child.Particles = make([]*particle.Particle, 0, count)
	}

	for _, p := range points {
		octant := geom.OctantID(p.Pos, node.Box)
		child := node.Children[octant]
		child.Particles = append(child.Particles, p)
	}
}

// bulkPartition computes per-octant counts by a parallel reduction, prefix
// sums them into write offsets, scatters every particle into its octant's
// contiguous subrange of a shared buffer using atomic per-octant cursors, and
// finally copies each subrange into its child in parallel.
func (t *Tree) bulkPartition(node *Node, points []*particle.Particle) {
	workers := t.opts.Workers
	n := len(points)

	locals := make([][8]int, workers)
	parallel.ForWorker(workers, n, func(w, start, end int) {
		var c [8]int
		for i := start; i < end; i++ {
			c[geom.OctantID(points[i].Pos, node.Box)]++
		}
		locals[w] = c
	})

	var counts, offsets [8]int
	for _, local := range locals {
		for o := 0; o < 8; o++ {
			counts[o] += local[o]
		}
	}
	sum := 0
	for o := 0; o < 8; o++ {
		offsets[o] = sum
		sum += counts[o]
	}

	buf := make([]*particle.Particle, n)
	var cursors [8]atomic.Int64
	for o := 0; o < 8; o++ {
		cursors[o].Store(int64(offsets[o]))
	}

	parallel.For(workers, n, func(start, end int) {
		for i := start; i < end; i++ {
			p := points[i]
			octant := geom.OctantID(p.Pos, node.Box)
			idx := cursors[octant].Add(1) - 1
			buf[idx] = p
		}
	})

	parallel.For(8, 8, func(start, end int) {
		for octant := start; octant < end; octant++ {
			if counts[octant] == 0 {
				continue
			}
			child := node.childAt(octant)
			child.Particles = make([]*particle.Particle, counts[octant])
			copy(child.Particles, buf[offsets[octant]:offsets[octant]+counts[octant]])
		}
	})
}
