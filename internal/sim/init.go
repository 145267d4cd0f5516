package sim

import (
	"math"
	"math/rand"

	"github.com/san-kum/spheremd/internal/geom"
	"github.com/san-kum/spheremd/internal/particle"
)

// RandomSystem scatters n particles uniformly over the unit sphere
// (normal deviates, normalized) with tangential velocities of roughly
// the given speed.
func RandomSystem(n int, speed float64, seed int64) particle.System {
	rng := rand.New(rand.NewSource(seed))
	sys := particle.New(n)
	for i := range sys {
		r := geom.Vec3{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}.Normalize()
		for r == (geom.Vec3{}) {
			r = geom.Vec3{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}.Normalize()
		}
		v := geom.Vec3{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}.Scale(speed)
		sys[i].R = r
		sys[i].V = v.AddScaled(-v.Dot(r), r)
	}
	return sys
}

// LatticeSystem places n particles on a Fibonacci spiral over the
// sphere, at rest. Near-uniform spacing makes it a good cold start for
// relaxation runs.
func LatticeSystem(n int) particle.System {
	sys := particle.New(n)
	golden := math.Pi * (3.0 - math.Sqrt(5.0))
	for i := range sys {
		z := 1.0 - 2.0*(float64(i)+0.5)/float64(n)
		rad := math.Sqrt(1.0 - z*z)
		phi := golden * float64(i)
		sys[i].R = geom.Vec3{X: rad * math.Cos(phi), Y: rad * math.Sin(phi), Z: z}
	}
	return sys
}
