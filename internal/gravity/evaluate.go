package gravity

import (
	"github.com/Harsh-Sinha/n-body-simulation/internal/octree"
	"github.com/Harsh-Sinha/n-body-simulation/internal/parallel"
	"github.com/Harsh-Sinha/n-body-simulation/internal/particle"
)

// DefaultTheta is the Barnes-Hut opening angle.
const DefaultTheta = 0.5

// Evaluate accumulates the gravitational force on every particle, parallel
// over leaves. The tree must already be reduced; it is read-only here, and
// each particle's force vector is touched by exactly one worker.
func Evaluate(t *octree.Tree, theta, softening float64, workers int) {
	if workers < 1 {
		workers = t.Workers()
	}

	leaves := t.Leaves
	parallel.For(workers, len(leaves), func(start, end int) {
		for i := start; i < end; i++ {
			for _, p := range leaves[i].Particles {
				walk(p, t.Root, theta, softening)
			}
		}
	})
}

// walk applies the multipole acceptance criterion at each node: a node that
// does not contain p and is sufficiently far acts as a single effective body
// (or, for a leaf, as its few actual particles). Otherwise the walk descends
// into every non-empty child, and a containing leaf falls back to pairwise
// interactions that skip p itself by id.
func walk(p *particle.Particle, node *octree.Node, theta, softening float64) {
	if !node.Box.Contains(p.Pos) && accepts(p, node, theta) {
		if node.IsLeaf() {
			for _, q := range node.Particles {
				p.ApplyForce(q.Pos, q.Mass, softening)
			}
		} else {
			p.ApplyForce(node.COM, node.TotalMass, softening)
		}
		return
	}

	leaf := true
	for _, child := range node.Children {
		if child != nil {
			leaf = false
			walk(p, child, theta, softening)
		}
	}

	if leaf {
		for _, q := range node.Particles {
			if q.ID != p.ID {
				p.ApplyForce(q.Pos, q.Mass, softening)
			}
		}
	}
}

// accepts is the opening criterion s/d < theta, with s the node's side
// length and d the distance from p to the node's center of mass.
func accepts(p *particle.Particle, node *octree.Node, theta float64) bool {
	s := node.Box.Side()
	d := p.Pos.Sub(node.COM).Norm()
	return s/d < theta
}
