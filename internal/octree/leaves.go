package octree

import (
	"github.com/Harsh-Sinha/n-body-simulation/internal/parallel"
)

// leafOrder is the fixed permutation over octant ids used when walking a
// node's children, giving the leaf list a Morton-like order that is
// reproducible across runs with identical input.
var leafOrder = [8]int{6, 7, 5, 4, 2, 3, 1, 0}

// genLeaves appends every leaf under node to out in leafOrder, pre-sizing
// each interior node's aggregate slots along the way.
func (t *Tree) genLeaves(node *Node, out *[]*Node) {
	if node.IsLeaf() {
		*out = append(*out, node)
		return
	}

	node.prepareSlots()
	for _, octant := range leafOrder {
		if child := node.Children[octant]; child != nil {
			t.genLeaves(child, out)
		}
	}
}

// genLeavesParallel expands the root breadth-first into roughly 8*workers
// work items, then runs a depth-first search per worker chunk with a local
// result buffer. The final list concatenates the per-worker buffers in
// worker-id order, so the order is deterministic for a fixed worker count.
func (t *Tree) genLeavesParallel() []*Node {
	workers := t.opts.Workers
	target := 8 * workers

	frontier := []*Node{t.Root}
	for len(frontier) < target {
		next := make([]*Node, 0, 2*len(frontier))
		expanded := false
		for _, node := range frontier {
			if node.IsLeaf() {
				next = append(next, node)
				continue
			}
			node.prepareSlots()
			expanded = true
			for _, octant := range leafOrder {
				if child := node.Children[octant]; child != nil {
					next = append(next, child)
				}
			}
		}
		frontier = next
		if !expanded {
			break
		}
	}

	buffers := make([][]*Node, workers)
	parallel.ForWorker(workers, len(frontier), func(w, start, end int) {
		local := make([]*Node, 0, end-start)
		for i := start; i < end; i++ {
			t.genLeaves(frontier[i], &local)
		}
		buffers[w] = local
	})

	leaves := make([]*Node, 0, len(frontier))
	for _, buf := range buffers {
		leaves = append(leaves, buf...)
	}
	return leaves
}
