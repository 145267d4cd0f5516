// Package metrics provides per-run observables for the sphere MD
// driver. Each metric is fed once per step and reduces to a single
// value at the end of the run.
package metrics

import (
	"math"

	"github.com/san-kum/spheremd/internal/forces"
	"github.com/san-kum/spheremd/internal/particle"
)

// TotalEnergy averages kinetic plus pair potential energy across steps.
type TotalEnergy struct {
	sum     float64
	samples int
}

func NewTotalEnergy() *TotalEnergy { return &TotalEnergy{} }

func (m *TotalEnergy) Name() string { return "total_energy" }

func (m *TotalEnergy) Observe(sys particle.System, stats forces.Stats, t float64) {
	m.sum += sys.KineticEnergy() + stats.PotentialEnergy
	m.samples++
}

func (m *TotalEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *TotalEnergy) Reset() {
	m.sum = 0
	m.samples = 0
}

// EnergyDrift tracks the maximum relative deviation of total energy
// from its first observed value.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (m *EnergyDrift) Name() string { return "energy_drift" }

func (m *EnergyDrift) Observe(sys particle.System, stats forces.Stats, t float64) {
	e := sys.KineticEnergy() + stats.PotentialEnergy
	if m.samples == 0 {
		m.initial = e
	}
	m.samples++
	if m.initial != 0 {
		drift := math.Abs(e-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *EnergyDrift) Value() float64 { return m.maxDrift }

func (m *EnergyDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}

// ConstraintDrift tracks the worst | |r| - 1 | seen over the run.
type ConstraintDrift struct {
	max float64
}

func NewConstraintDrift() *ConstraintDrift { return &ConstraintDrift{} }

func (m *ConstraintDrift) Name() string { return "constraint_drift" }

func (m *ConstraintDrift) Observe(sys particle.System, stats forces.Stats, t float64) {
	for i := range sys {
		m.max = math.Max(m.max, math.Abs(sys[i].R.Norm()-1))
	}
}

func (m *ConstraintDrift) Value() float64 { return m.max }
func (m *ConstraintDrift) Reset()         { m.max = 0 }

// TangentialDrift tracks the worst |r·v| seen over the run.
type TangentialDrift struct {
	max float64
}

func NewTangentialDrift() *TangentialDrift { return &TangentialDrift{} }

func (m *TangentialDrift) Name() string { return "tangential_drift" }

func (m *TangentialDrift) Observe(sys particle.System, stats forces.Stats, t float64) {
	for i := range sys {
		m.max = math.Max(m.max, math.Abs(sys[i].R.Dot(sys[i].V)))
	}
}

func (m *TangentialDrift) Value() float64 { return m.max }
func (m *TangentialDrift) Reset()         { m.max = 0 }

// PairRate averages the fraction of examined pairs that fell inside the
// cutoff, a direct read on how well the binning matches the cutoff.
type PairRate struct {
	sum     float64
	samples int
}

func NewPairRate() *PairRate { return &PairRate{} }

func (m *PairRate) Name() string { return "pair_rate" }

func (m *PairRate) Observe(sys particle.System, stats forces.Stats, t float64) {
	if stats.Candidates == 0 {
		return
	}
	m.sum += float64(stats.Within) / float64(stats.Candidates)
	m.samples++
}

func (m *PairRate) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *PairRate) Reset() {
	m.sum = 0
	m.samples = 0
}
