// Package forces computes the pairwise interaction: a cutoff-screened
// Coulomb repulsion plus a velocity-difference damping, accumulated into
// particle accelerations (unit mass, so force and acceleration are the
// same numbers).
package forces

import (
	"fmt"
	"math"

	"github.com/san-kum/spheremd/internal/cells"
	"github.com/san-kum/spheremd/internal/particle"
)

// Stats accumulates counters over one force pass. Not synchronized:
// parallel workers each own a private Stats that the driver merges with
// Add afterward.
type Stats struct {
	Candidates      int64   // pairs examined, inside cutoff or not
	Within          int64   // pairs inside the cutoff
	PotentialEnergy float64 // accumulated pair potential
}

func (s *Stats) Reset() {
	*s = Stats{}
}

// Add merges other into s. The enumeration routines never call this;
// merging partial stats is the driver's job.
func (s *Stats) Add(other Stats) {
	s.Candidates += other.Candidates
	s.Within += other.Within
	s.PotentialEnergy += other.PotentialEnergy
}

// Pair applies the force kernel to particles p and q.
//
// The potential is 1/r + r/cutoff² − 2/cutoff, shifted and truncated so
// both the potential and the radial force 1/r² − 1/cutoff² go to zero
// continuously at r = cutoff. The damping term −gamma·(v_p − v_q) is
// dissipative and carries no potential-energy contribution; it uses the
// half-step velocities, which is fine for a force that only exists to
// cool the system down.
//
// Precondition: p and q must not coincide; 1/r diverges as r → 0 and no
// guard is applied here.
func Pair(p, q *particle.Particle, cutoff, gamma float64, stats *Stats) {
	dr := p.R.Sub(q.R)
	r2 := dr.Norm2()
	stats.Candidates++
	cutoff2 := cutoff * cutoff
	if r2 >= cutoff2 {
		return
	}
	r := math.Sqrt(r2)
	stats.Within++

	mag := 1.0/r2 - 1.0/cutoff2
	stats.PotentialEnergy += 1.0/r + r/cutoff2 - 2.0/cutoff

	force := dr.Scale(mag / r)
	force = force.AddScaled(-gamma, p.V.Sub(q.V))

	p.A = p.A.Add(force)
	q.A = q.A.Sub(force)
}

// Cells runs the cell-list force pass over every non-empty cell whose
// linear index lies in [cell0, cell1). The half-open range is the
// partitioning seam for parallel evaluation; [0, grid.NumCells()) is a
// full pass. For each cell in range the 3×3×3 neighborhood is clipped to
// the grid bounds (no periodic wrap) and neighbor cells with a smaller
// linear index are skipped so every unordered cell pair is visited once.
func Cells(sys particle.System, grid *cells.Grid, cell0, cell1 int, cutoff, gamma float64, stats *Stats) error {
	if cell0 < 0 || cell1 > grid.NumCells() || cell0 > cell1 {
		return fmt.Errorf("%w: cells [%d, %d) of %d", ErrBadRange, cell0, cell1, grid.NumCells())
	}

	L := grid.Binning()
	for z := 0; z < L; z++ {
		for y := 0; y < L; y++ {
			for x := 0; x < L; x++ {
				this := grid.Index(x, y, z)
				if grid.Head(this) == particle.NoParticle {
					continue
				}
				if this < cell0 || this >= cell1 {
					continue
				}
				for nz := max(0, z-1); nz < min(L, z+2); nz++ {
					for ny := max(0, y-1); ny < min(L, y+2); ny++ {
						for nx := max(0, x-1); nx < min(L, x+2); nx++ {
							other := grid.Index(nx, ny, nz)
							if this > other {
								continue // each cell pair only once
							}
							if this == other {
								for i := grid.Head(this); i != particle.NoParticle; i = sys[i].Next {
									for j := sys[i].Next; j != particle.NoParticle; j = sys[j].Next {
										Pair(&sys[i], &sys[j], cutoff, gamma, stats)
									}
								}
							} else {
								for i := grid.Head(this); i != particle.NoParticle; i = sys[i].Next {
									for j := grid.Head(other); j != particle.NoParticle; j = sys[j].Next {
										Pair(&sys[i], &sys[j], cutoff, gamma, stats)
									}
								}
							}
						}
					}
				}
			}
		}
	}
	return nil
}

// Brute runs the O(N²) reference force pass: for each i in
// [first, last), every j in (i, N). The particle-index range is the
// brute-force partitioning seam, distinct from the cell-index one.
func Brute(sys particle.System, first, last int, cutoff, gamma float64, stats *Stats) error {
	if first < 0 || last > len(sys) || first > last {
		return fmt.Errorf("%w: particles [%d, %d) of %d", ErrBadRange, first, last, len(sys))
	}
	for i := first; i < last; i++ {
		for j := i + 1; j < len(sys); j++ {
			Pair(&sys[i], &sys[j], cutoff, gamma, stats)
		}
	}
	return nil
}
