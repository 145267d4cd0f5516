package sim

import (
	"github.com/san-kum/spheremd/internal/forces"
	"github.com/san-kum/spheremd/internal/particle"
)

// ForceMode selects the pair-enumeration strategy for a run. The two
// strategies partition work differently (cell-index range vs
// particle-index range) and are not interchangeable mid-run.
type ForceMode string

const (
	ForceCells ForceMode = "cells"
	ForceBrute ForceMode = "brute"
)

type Config struct {
	Dt       float64
	Steps    int
	Binning  int
	Cutoff   float64
	Gamma    float64
	Mode     ForceMode
	Workers  int
	Seed     int64
	Validate bool
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.001,
		Steps:    1000,
		Binning:  10,
		Cutoff:   0.2,
		Gamma:    0.1,
		Mode:     ForceCells,
		Workers:  1,
		Validate: true,
	}
}

// Metric observes the system once per step, after the corrector.
type Metric interface {
	Name() string
	Observe(sys particle.System, stats forces.Stats, t float64)
	Value() float64
	Reset()
}

// Observer receives the system after every completed step.
type Observer interface {
	OnStep(sys particle.System, stats forces.Stats, t float64)
}

type Result struct {
	Times      []float64
	Kinetic    []float64
	Potential  []float64
	Stats      forces.Stats // totals over all steps
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}
