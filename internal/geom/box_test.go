package geom

import (
	"errors"
	"math"
	"testing"
)

func TestBounds_Cubic(t *testing.T) {
	points := []Vec3{
		{-2, 0, 0},
		{2, 1, 0.5},
	}
	at := func(i int) Vec3 { return points[i] }

	box, err := Bounds(len(points), at, 1)
	if err != nil {
		t.Fatalf("bounds failed: %v", err)
	}

	// largest extent is 4 along x, so half side is 2 plus padding
	if box.HalfSide <= 2 || box.HalfSide > 2.01 {
		t.Errorf("half side = %v, want just above 2", box.HalfSide)
	}
	if box.Center.X != 0 {
		t.Errorf("center.X = %v, want 0", box.Center.X)
	}
	// center is min + side/2 on every axis, not the midpoint of the
	// per-axis extents
	if box.Center.Y != 2 {
		t.Errorf("center.Y = %v, want 2", box.Center.Y)
	}

	for _, p := range points {
		if !box.Contains(p) {
			t.Errorf("point %v outside computed box", p)
		}
	}
}

func TestBounds_Inflation(t *testing.T) {
	// extreme points must not sit exactly on a face
	points := []Vec3{{-1, -1, -1}, {1, 1, 1}}
	box, err := Bounds(len(points), func(i int) Vec3 { return points[i] }, 1)
	if err != nil {
		t.Fatalf("bounds failed: %v", err)
	}

	for _, p := range points {
		if math.Abs(p.X-box.Center.X) >= box.HalfSide {
			t.Errorf("point %v on or outside face", p)
		}
	}
}

func TestBounds_SinglePoint(t *testing.T) {
	box, err := Bounds(1, func(int) Vec3 { return Vec3{3, 4, 5} }, 1)
	if err != nil {
		t.Fatalf("bounds failed: %v", err)
	}
	if box.HalfSide != 1e-9 {
		t.Errorf("degenerate half side = %v, want the 1e-9 floor", box.HalfSide)
	}
	if !box.Contains(Vec3{3, 4, 5}) {
		t.Error("point outside degenerate box")
	}
}

func TestBounds_Empty(t *testing.T) {
	_, err := Bounds(0, nil, 1)
	if !errors.Is(err, ErrNoPoints) {
		t.Errorf("expected ErrNoPoints, got %v", err)
	}
}

func TestBounds_ParallelMatchesSerial(t *testing.T) {
	points := make([]Vec3, 1000)
	for i := range points {
		points[i] = Vec3{
			X: math.Sin(float64(i)) * 100,
			Y: math.Cos(float64(i)*0.7) * 50,
			Z: float64(i%17) - 8,
		}
	}
	at := func(i int) Vec3 { return points[i] }

	serial, err := Bounds(len(points), at, 1)
	if err != nil {
		t.Fatalf("serial bounds failed: %v", err)
	}
	par, err := Bounds(len(points), at, 8)
	if err != nil {
		t.Fatalf("parallel bounds failed: %v", err)
	}

	if serial != par {
		t.Errorf("parallel box %+v differs from serial %+v", par, serial)
	}
}

func TestOctantID(t *testing.T) {
	box := BoundingBox{Center: Vec3{0, 0, 0}, HalfSide: 2}

	tests := []struct {
		name string
		p    Vec3
		want int
	}{
		{"+x +y +z", Vec3{1, 1, 1}, 0},
		{"-x +y +z", Vec3{-1, 1, 1}, 1},
		{"-x -y +z", Vec3{-1, -1, 1}, 2},
		{"+x -y +z", Vec3{1, -1, 1}, 3},
		{"+x +y -z", Vec3{1, 1, -1}, 4},
		{"-x +y -z", Vec3{-1, 1, -1}, 5},
		{"-x -y -z", Vec3{-1, -1, -1}, 6},
		{"+x -y -z", Vec3{1, -1, -1}, 7},
		// split planes go to the positive side
		{"origin", Vec3{0, 0, 0}, 0},
		{"on yz plane", Vec3{0, -1, 1}, 3},
		{"on xy plane", Vec3{-1, -1, 0}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OctantID(tt.p, box); got != tt.want {
				t.Errorf("OctantID(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestChildBox(t *testing.T) {
	parent := BoundingBox{Center: Vec3{0, 0, 0}, HalfSide: 2}

	for i := 0; i < 8; i++ {
		child := ChildBox(i, parent)

		if child.HalfSide != 1 {
			t.Errorf("child %d half side = %v, want 1", i, child.HalfSide)
		}

		// the child's center must map back to its own octant
		if got := OctantID(child.Center, parent); got != i {
			t.Errorf("child %d center %v maps to octant %d", i, child.Center, got)
		}

		for _, c := range [3]float64{child.Center.X, child.Center.Y, child.Center.Z} {
			if math.Abs(c) != 1 {
				t.Errorf("child %d center %v not offset by half/2", i, child.Center)
			}
		}
	}
}

func TestContains(t *testing.T) {
	box := BoundingBox{Center: Vec3{1, 1, 1}, HalfSide: 1}

	tests := []struct {
		p    Vec3
		want bool
	}{
		{Vec3{1, 1, 1}, true},
		{Vec3{0, 0, 0}, true}, // corner counts as inside
		{Vec3{2, 2, 2}, true},
		{Vec3{2.0001, 1, 1}, false},
		{Vec3{1, -0.5, 1}, false},
	}

	for _, tt := range tests {
		if got := box.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
