// Package integrators provides the constrained velocity-Verlet scheme
// that keeps every particle exactly on the unit sphere.
package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/spheremd/internal/geom"
	"github.com/san-kum/spheremd/internal/particle"
)

// RattleVerlet is a two-phase velocity-Verlet integrator with a
// RATTLE-style scalar Lagrange-multiplier correction per particle.
// Each timestep runs Advance, then an external force pass repopulates
// accelerations, then Correct. The two phases are never skipped or
// reordered. Unit mass is assumed throughout, so accelerations double
// as forces.
type RattleVerlet struct {
	Dt float64
}

func NewRattleVerlet(dt float64) *RattleVerlet {
	return &RattleVerlet{Dt: dt}
}

// Advance is the predictor phase: half-kick the velocity, drift the
// position, zero the acceleration for the coming force pass, then pull
// the drifted position back onto the sphere along the old position
// vector. Solving |r1 + λ·r0| = 1 for the smaller root gives
// λ = −(r0·r1) + sqrt(1 − r1·r1 + (r0·r1)²); the matching velocity
// update λ/dt·r0 keeps v consistent with the corrected position.
//
// A negative radicand means the particle moved too far in one step for
// the projection to reach the sphere; the timestep is unstably large.
// Advance reports it as an ErrUnstable-wrapped error naming the first
// offending particle and aborts, leaving the arena mid-step; callers
// must treat the step as failed.
func (rv *RattleVerlet) Advance(sys particle.System) error {
	dt := rv.Dt
	dtHalf := 0.5 * dt
	for i := range sys {
		p := &sys[i]
		oldR := p.R
		p.V = p.V.AddScaled(dtHalf, p.A)
		p.R = p.R.AddScaled(dt, p.V)
		p.A = geom.Vec3{}

		r0DotR := oldR.Dot(p.R)
		rSqr := p.R.Norm2()
		radicand := 1.0 - rSqr + r0DotR*r0DotR
		if radicand < 0 {
			return fmt.Errorf("%w: particle %d, radicand %g (dt=%g)", ErrUnstable, i, radicand, dt)
		}
		lambda := -r0DotR + math.Sqrt(radicand)

		p.R = p.R.AddScaled(lambda, oldR)
		p.V = p.V.AddScaled(lambda/dt, oldR)
	}
	return nil
}

// Correct is the corrector phase, run after the force pass: half-kick
// the velocity with the fresh accelerations, then strip the radial
// component the kick introduced. r is unit length after Advance, so the
// projection is just v += −(v·r)·r.
func (rv *RattleVerlet) Correct(sys particle.System) {
	dtHalf := 0.5 * rv.Dt
	for i := range sys {
		p := &sys[i]
		p.V = p.V.AddScaled(dtHalf, p.A)
		lambda := -p.V.Dot(p.R)
		p.V = p.V.AddScaled(lambda, p.R)
	}
}
