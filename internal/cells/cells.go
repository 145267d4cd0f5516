// Package cells implements the linked-cell grid used to find interacting
// neighbor pairs in close to linear time.
//
// The simulation box is [-1,1]³, chosen so the unit sphere fits inside
// with margin for the interaction cutoff. The box is divided into
// binning³ equally sized cubic cells. Each cell stores only the index of
// the first particle inside it; the rest of the cell's occupants are
// threaded through the particles' Next links, ending at
// particle.NoParticle.
//
// See: https://en.wikipedia.org/wiki/Cell_lists
package cells

import (
	"math"

	"github.com/san-kum/spheremd/internal/geom"
	"github.com/san-kum/spheremd/internal/particle"
)

// Grid is a uniform binning×binning×binning cell grid over the box
// [-1,1]³. It owns its bucket heads and borrows particle positions only
// during Populate, where it also rewrites each particle's Next link.
type Grid struct {
	binning  int
	dr       float64 // cell edge length, 2/binning
	numCells int
	heads    []int
}

func NewGrid(binning int) *Grid {
	g := &Grid{
		binning:  binning,
		dr:       2.0 / float64(binning),
		numCells: binning * binning * binning,
	}
	g.heads = make([]int, g.numCells)
	g.Clear()
	return g
}

func (g *Grid) Binning() int      { return g.binning }
func (g *Grid) NumCells() int     { return g.numCells }
func (g *Grid) CellSize() float64 { return g.dr }

// Head returns the index of the first particle in cell c, or
// particle.NoParticle for an empty cell.
func (g *Grid) Head(c int) int { return g.heads[c] }

// Clear marks every cell empty.
func (g *Grid) Clear() {
	for i := range g.heads {
		g.heads[i] = particle.NoParticle
	}
}

// Index linearizes a bucket triple in row-major order, x fastest.
func (g *Grid) Index(x, y, z int) int {
	return x + g.binning*y + g.binning*g.binning*z
}

func (g *Grid) bin(c float64) int {
	return geom.Clamp(int(math.Floor((c+1.0)/g.dr)), 0, g.binning-1)
}

// Populate rebuilds the bucket lists from current particle positions.
// The grid is always rebuilt from scratch, never updated incrementally.
// Each particle is prepended to its bucket, so list order is reversed
// insertion order; nothing depends on it. Positions on or outside the
// box boundary are clamped into the nearest valid cell; there is no
// periodic wrap.
func (g *Grid) Populate(sys particle.System) {
	g.Clear()
	for i := range sys {
		c := g.Index(g.bin(sys[i].R.X), g.bin(sys[i].R.Y), g.bin(sys[i].R.Z))
		sys[i].Next = g.heads[c]
		g.heads[c] = i
	}
}
