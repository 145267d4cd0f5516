package cells

import (
	"testing"

	"github.com/san-kum/spheremd/internal/geom"
	"github.com/san-kum/spheremd/internal/particle"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid(4)
	if g.NumCells() != 64 {
		t.Errorf("expected 64 cells, got %d", g.NumCells())
	}
	if g.CellSize() != 0.5 {
		t.Errorf("expected cell size 0.5, got %f", g.CellSize())
	}
	for c := 0; c < g.NumCells(); c++ {
		if g.Head(c) != particle.NoParticle {
			t.Fatalf("cell %d not empty after construction", c)
		}
	}
}

func TestPopulateBucketAssignment(t *testing.T) {
	g := NewGrid(2) // cells of edge 1.0, split at each axis origin
	sys := particle.New(3)
	sys[0].R = geom.Vec3{X: -0.5, Y: -0.5, Z: -0.5} // cell (0,0,0)
	sys[1].R = geom.Vec3{X: 0.5, Y: -0.5, Z: -0.5}  // cell (1,0,0)
	sys[2].R = geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}    // cell (1,1,1)

	g.Populate(sys)

	if g.Head(g.Index(0, 0, 0)) != 0 {
		t.Error("particle 0 not in cell (0,0,0)")
	}
	if g.Head(g.Index(1, 0, 0)) != 1 {
		t.Error("particle 1 not in cell (1,0,0)")
	}
	if g.Head(g.Index(1, 1, 1)) != 2 {
		t.Error("particle 2 not in cell (1,1,1)")
	}
}

func TestPopulateLinkedList(t *testing.T) {
	g := NewGrid(2)
	sys := particle.New(3)
	for i := range sys {
		sys[i].R = geom.Vec3{X: -0.5, Y: -0.5, Z: -0.5}
	}

	g.Populate(sys)

	// Prepend order: last inserted particle is the head.
	c := g.Index(0, 0, 0)
	seen := make(map[int]bool)
	n := 0
	for i := g.Head(c); i != particle.NoParticle; i = sys[i].Next {
		if seen[i] {
			t.Fatalf("particle %d appears twice in bucket", i)
		}
		seen[i] = true
		n++
	}
	if n != 3 {
		t.Errorf("bucket holds %d particles, expected 3", n)
	}
	if g.Head(c) != 2 {
		t.Errorf("head = %d, expected most recently inserted particle 2", g.Head(c))
	}
}

func TestPopulateClampsBoundary(t *testing.T) {
	g := NewGrid(3)
	sys := particle.New(4)
	sys[0].R = geom.Vec3{X: 1.0, Y: 0, Z: 0}   // exactly on +x face
	sys[1].R = geom.Vec3{X: -1.0, Y: 0, Z: 0}  // exactly on -x face
	sys[2].R = geom.Vec3{X: 1.5, Y: 1.5, Z: 0} // outside the box
	sys[3].R = geom.Vec3{X: 0, Y: 0, Z: -37.0} // far outside

	g.Populate(sys)

	counted := 0
	for c := 0; c < g.NumCells(); c++ {
		for i := g.Head(c); i != particle.NoParticle; i = sys[i].Next {
			counted++
		}
	}
	if counted != 4 {
		t.Errorf("clamping lost particles: %d of 4 binned", counted)
	}
}

func TestRepopulateDropsStaleEntries(t *testing.T) {
	g := NewGrid(2)
	sys := particle.New(1)
	sys[0].R = geom.Vec3{X: -0.5, Y: -0.5, Z: -0.5}
	g.Populate(sys)

	sys[0].R = geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	g.Populate(sys)

	if g.Head(g.Index(0, 0, 0)) != particle.NoParticle {
		t.Error("old cell still claims the particle after rebuild")
	}
	if g.Head(g.Index(1, 1, 1)) != 0 {
		t.Error("new cell does not hold the particle after rebuild")
	}
}
