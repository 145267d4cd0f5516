package particle

import "github.com/san-kum/spheremd/internal/geom"

// NoParticle marks the end of a cell bucket's linked list.
const NoParticle = -1

// Particle is one record in the simulation arena. R stays on the unit
// sphere and V tangential to it, up to floating-point drift; both are
// re-projected by the integrator every step. A is scratch, zeroed each
// predictor phase and filled by the force pass. Next threads the particle
// into its cell bucket's linked list.
type Particle struct {
	R, V, A geom.Vec3
	Next    int
}

// System is a flat particle arena indexed 0..N-1. The slice is owned by
// the caller; none of the core routines grow or shrink it.
type System []Particle

func New(n int) System {
	sys := make(System, n)
	for i := range sys {
		sys[i].Next = NoParticle
	}
	return sys
}

func (sys System) Clone() System {
	c := make(System, len(sys))
	copy(c, sys)
	return c
}

// CopyInto copies sys into dst. The two must have equal length.
func (sys System) CopyInto(dst System) {
	copy(dst, sys)
}

func (sys System) ResetAccel() {
	for i := range sys {
		sys[i].A = geom.Vec3{}
	}
}

// AccumulateAccel adds part's accelerations elementwise into sys,
// merging a partial force pass into the accumulator arena. Only
// accelerations are merged; positions, velocities and cell links are
// left alone.
func (sys System) AccumulateAccel(part System) {
	for i := range sys {
		sys[i].A = sys[i].A.Add(part[i].A)
	}
}

// Positions writes all particle positions as a flat [x y z x y z ...]
// slice for visualization.
func (sys System) Positions(target []float64) {
	for i, p := range sys {
		target[i*3] = p.R.X
		target[i*3+1] = p.R.Y
		target[i*3+2] = p.R.Z
	}
}

func (sys System) IsValid() bool {
	for i := range sys {
		if !sys[i].R.IsFinite() || !sys[i].V.IsFinite() {
			return false
		}
	}
	return true
}

// KineticEnergy is sum of v²/2 over all particles (unit mass).
func (sys System) KineticEnergy() float64 {
	ke := 0.0
	for i := range sys {
		ke += 0.5 * sys[i].V.Norm2()
	}
	return ke
}
