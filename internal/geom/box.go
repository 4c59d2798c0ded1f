package geom

import (
	"errors"
	"math"

	"github.com/Harsh-Sinha/n-body-simulation/internal/parallel"
)

// ErrNoPoints indicates a bounding box was requested for an empty point set.
var ErrNoPoints = errors.New("geom: cannot bound zero points")

// BoundingBox is an axis-aligned cube described by its center and half of its
// side length.
type BoundingBox struct {
	Center   Vec3
	HalfSide float64
}

// Contains reports whether p lies inside the box. Points exactly on a face
// count as inside.
func (b BoundingBox) Contains(p Vec3) bool {
	return math.Abs(p.X-b.Center.X) <= b.HalfSide &&
		math.Abs(p.Y-b.Center.Y) <= b.HalfSide &&
		math.Abs(p.Z-b.Center.Z) <= b.HalfSide
}

// Side returns the full side length of the box.
func (b BoundingBox) Side() float64 {
	return 2 * b.HalfSide
}

// OctantID maps a point to one of the eight octants of box.
//
// The upper hemisphere (z >= center) contributes 0, the lower contributes 4.
// On the xy plane the quadrants are numbered counterclockwise starting from
// (+,+): (+,+) 0, (-,+) 1, (-,-) 2, (+,-) 3, where "+" means >= center.
// Points exactly on a split plane go to the positive side.
func OctantID(p Vec3, box BoundingBox) int {
	id := 0
	if p.Z < box.Center.Z {
		id = 4
	}

	if p.X >= box.Center.X {
		if p.Y < box.Center.Y {
			id += 3
		}
	} else {
		if p.Y >= box.Center.Y {
			id++
		} else {
			id += 2
		}
	}

	return id
}

// ChildBox derives the sub-box for octant index i of parent. The child's half
// side is exactly half the parent's and its center shifts by the child's half
// side along each axis, with signs matching the OctantID convention.
func ChildBox(i int, parent BoundingBox) BoundingBox {
	child := BoundingBox{Center: parent.Center, HalfSide: parent.HalfSide / 2}

	if i == 0 || i == 3 || i == 4 || i == 7 {
		child.Center.X += child.HalfSide
	} else {
		child.Center.X -= child.HalfSide
	}
	if i == 0 || i == 1 || i == 4 || i == 5 {
		child.Center.Y += child.HalfSide
	} else {
		child.Center.Y -= child.HalfSide
	}
	if i < 4 {
		child.Center.Z += child.HalfSide
	} else {
		child.Center.Z -= child.HalfSide
	}

	return child
}

type extent struct {
	min, max Vec3
}

func newExtent() extent {
	inf := math.Inf(1)
	return extent{
		min: Vec3{inf, inf, inf},
		max: Vec3{-inf, -inf, -inf},
	}
}

func (e *extent) include(p Vec3) {
	e.min.X = math.Min(e.min.X, p.X)
	e.min.Y = math.Min(e.min.Y, p.Y)
	e.min.Z = math.Min(e.min.Z, p.Z)
	e.max.X = math.Max(e.max.X, p.X)
	e.max.Y = math.Max(e.max.Y, p.Y)
	e.max.Z = math.Max(e.max.Z, p.Z)
}

func (e *extent) merge(o extent) {
	e.include(o.min)
	e.include(o.max)
}

// Bounds computes the cubic bounding box of n points, read through at. The
// side is the largest per-axis extent and the box is centered at min + side/2
// per axis. The half side is inflated by max(1e-9, 0.0005*side) so no input
// point sits exactly on a face of the root box.
//
// With workers > 1 the min/max scan runs as a chunked parallel reduction.
func Bounds(n int, at func(int) Vec3, workers int) (BoundingBox, error) {
	if n == 0 {
		return BoundingBox{}, ErrNoPoints
	}

	total := newExtent()
	if workers <= 1 {
		for i := 0; i < n; i++ {
			total.include(at(i))
		}
	} else {
		locals := make([]extent, workers)
		parallel.ForWorker(workers, n, func(w, start, end int) {
			e := newExtent()
			for i := start; i < end; i++ {
				e.include(at(i))
			}
			locals[w] = e
		})
		for _, e := range locals {
			total.merge(e)
		}
	}

	side := math.Max(total.max.X-total.min.X,
		math.Max(total.max.Y-total.min.Y, total.max.Z-total.min.Z))

	box := BoundingBox{HalfSide: side / 2}
	box.Center.X = total.min.X + box.HalfSide
	box.Center.Y = total.min.Y + box.HalfSide
	box.Center.Z = total.min.Z + box.HalfSide
	// pad so no point lands on the boundary
	box.HalfSide += math.Max(1e-9, 0.001*0.5*side)

	return box, nil
}
