package storage

import (
	"testing"

	"github.com/san-kum/spheremd/internal/forces"
	"github.com/san-kum/spheremd/internal/sim"
)

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := sim.DefaultConfig()
	sys := sim.RandomSystem(10, 0.1, 1)
	result := &sim.Result{
		Times:      []float64{0.001, 0.002},
		Kinetic:    []float64{1.5, 1.4},
		Potential:  []float64{0.3, 0.35},
		Stats:      forces.Stats{Candidates: 90, Within: 12, PotentialEnergy: 0.65},
		Metrics:    map[string]float64{"constraint_drift": 1e-14},
		StepsTaken: 2,
	}

	runID, err := store.Save(cfg, 10, sys, result)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.N != 10 || meta.Steps != 2 || meta.Pairs != 12 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Metrics["constraint_drift"] != 1e-14 {
		t.Error("metrics not round-tripped")
	}

	times, ke, pe, err := store.LoadEnergies(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 2 || len(ke) != 2 || len(pe) != 2 {
		t.Fatalf("energy series length %d/%d/%d, expected 2", len(times), len(ke), len(pe))
	}
	if ke[0] != 1.5 || pe[1] != 0.35 {
		t.Errorf("energy values lost: ke=%v pe=%v", ke, pe)
	}
}

func TestListEmpty(t *testing.T) {
	store := New(t.TempDir() + "/nothere")
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Load("run_0"); err == nil {
		t.Error("expected error for missing run")
	}
}
