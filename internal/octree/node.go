package octree

import (
	"sync/atomic"

	"github.com/Harsh-Sinha/n-body-simulation/internal/geom"
	"github.com/Harsh-Sinha/n-body-simulation/internal/particle"
)

// Node is one cube of the spatial partition. Leaves reference the particles
// inside their box; interior nodes carry one aggregate slot per non-empty
// child, written by the reduction pass. Nodes own their children; particles
// are borrowed from the caller.
type Node struct {
	Box      geom.BoundingBox
	Children [8]*Node

	// Particles is non-empty only on leaves.
	Particles []*particle.Particle

	// Parent is nil for the root. Octant is this node's index in
	// Parent.Children.
	Parent *Node
	Octant int

	// COM and TotalMass are valid after the reduction pass.
	COM       geom.Vec3
	TotalMass float64

	slots     []particle.Body
	slotReady []atomic.Bool
}

// IsLeaf reports whether all eight child slots are empty.
func (n *Node) IsLeaf() bool {
	for _, c := range n.Children {
		if c != nil {
			return false
		}
	}
	return true
}

// FlattenedIndex returns this node's slot index in its parent: the count of
// non-empty parent children up to and including this node's octant, minus
// one. The node with index zero is the parent's first non-empty child.
func (n *Node) FlattenedIndex() int {
	idx := -1
	for o := 0; o <= n.Octant; o++ {
		if n.Parent.Children[o] != nil {
			idx++
		}
	}
	return idx
}

// prepareSlots sizes the aggregate slot sequence to the number of non-empty
// children. Runs once per interior node during leaf-list construction.
func (n *Node) prepareSlots() {
	count := 0
	for _, c := range n.Children {
		if c != nil {
			count++
		}
	}
	n.slots = make([]particle.Body, count)
	n.slotReady = make([]atomic.Bool, count)
}

// SetSlot publishes the aggregate body for slot i. The readiness flag is the
// release point: a slot value is only read after SlotsReady observes the
// flag.
func (n *Node) SetSlot(i int, b particle.Body) {
	n.slots[i] = b
	n.slotReady[i].Store(true)
}

// SlotsReady reports whether every child aggregate has been published.
func (n *Node) SlotsReady() bool {
	for i := range n.slotReady {
		if !n.slotReady[i].Load() {
			return false
		}
	}
	return true
}

// Aggregates returns the published child aggregates. Only valid once
// SlotsReady has returned true.
func (n *Node) Aggregates() []particle.Body {
	return n.slots
}

// ClearSlots drops the aggregate slots once the node's own center of mass has
// been computed from them.
func (n *Node) ClearSlots() {
	n.slots = nil
	n.slotReady = nil
}

// childFor returns the child slot for p's octant, allocating the child node
// with its derived box on first touch.
func (n *Node) childFor(p *particle.Particle) *Node {
	return n.childAt(geom.OctantID(p.Pos, n.Box))
}

func (n *Node) childAt(octant int) *Node {
	if n.Children[octant] == nil {
		n.Children[octant] = &Node{
			Box:    geom.ChildBox(octant, n.Box),
			Parent: n,
			Octant: octant,
		}
	}
	return n.Children[octant]
}
