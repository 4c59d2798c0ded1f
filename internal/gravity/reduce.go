// Package gravity runs the two traversals over a completed octree: the
// upward center-of-mass reduction and the per-particle Barnes-Hut force walk.
package gravity

import (
	"github.com/Harsh-Sinha/n-body-simulation/internal/geom"
	"github.com/Harsh-Sinha/n-body-simulation/internal/octree"
	"github.com/Harsh-Sinha/n-body-simulation/internal/parallel"
	"github.com/Harsh-Sinha/n-body-simulation/internal/particle"
)

// Reduce fills every node's center of mass and total mass, leaves to root.
//
// The working set starts as the leaf list and ascends one wavefront at a
// time. A node whose child aggregates are not all published yet is re-queued
// into the next wavefront. On success the node writes its aggregate into its
// slot in the parent, and the child owning the parent's first slot is the one
// that enqueues the parent, so no parent is queued twice and no lock is
// needed.
func Reduce(t *octree.Tree, workers int) {
	if workers < 1 {
		workers = t.Workers()
	}

	working := make([]*octree.Node, len(t.Leaves))
	copy(working, t.Leaves)

	locals := make([][]*octree.Node, workers)

	for len(working) > 0 {
		parallel.ForWorker(workers, len(working), func(w, start, end int) {
			for i := start; i < end; i++ {
				node := working[i]

				if !reduceNode(node) {
					// not ready, try again next wavefront
					locals[w] = append(locals[w], node)
					continue
				}

				parent := node.Parent
				if parent == nil {
					continue
				}

				idx := node.FlattenedIndex()
				parent.SetSlot(idx, particle.Body{Pos: node.COM, Mass: node.TotalMass})
				if idx == 0 {
					locals[w] = append(locals[w], parent)
				}
			}
		})

		working = working[:0]
		for w := range locals {
			working = append(working, locals[w]...)
			locals[w] = locals[w][:0]
		}
	}
}

// reduceNode computes the mass-weighted mean of the node's bodies: the
// actual particles for a leaf, the published child aggregates for an
// interior node. Returns false when an interior node's slots are not all
// ready yet.
func reduceNode(node *octree.Node) bool {
	var sum geom.Vec3
	var mass float64

	if node.IsLeaf() {
		for _, p := range node.Particles {
			sum = sum.Add(p.Pos.Scale(p.Mass))
			mass += p.Mass
		}
	} else {
		if !node.SlotsReady() {
			return false
		}
		for _, b := range node.Aggregates() {
			sum = sum.Add(b.Pos.Scale(b.Mass))
			mass += b.Mass
		}
	}

	node.COM = sum.Scale(1 / mass)
	node.TotalMass = mass

	if !node.IsLeaf() {
		node.ClearSlots()
	}

	return true
}
