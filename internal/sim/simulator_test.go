package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/spheremd/internal/integrators"
)

func TestValidateConfig(t *testing.T) {
	sys := RandomSystem(10, 0.1, 1)

	bad := []Config{
		{Dt: 0, Binning: 5, Cutoff: 0.2, Workers: 1, Mode: ForceCells},
		{Dt: 0.01, Binning: 0, Cutoff: 0.2, Workers: 1, Mode: ForceCells},
		{Dt: 0.01, Binning: 5, Cutoff: -1, Workers: 1, Mode: ForceCells},
		{Dt: 0.01, Binning: 5, Cutoff: 0.2, Gamma: -0.1, Workers: 1, Mode: ForceCells},
		{Dt: 0.01, Binning: 5, Cutoff: 0.2, Workers: 0, Mode: ForceCells},
		{Dt: 0.01, Binning: 5, Cutoff: 0.2, Workers: 1, Mode: "magic"},
	}
	for i, cfg := range bad {
		if _, err := New(sys, cfg); err == nil {
			t.Errorf("config %d accepted, expected rejection", i)
		}
	}

	if _, err := New(sys, DefaultConfig()); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
}

func stepOnce(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	sys := RandomSystem(120, 0.05, cfg.Seed)
	s, err := New(sys, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Step(); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestParallelMatchesSerial(t *testing.T) {
	for _, mode := range []ForceMode{ForceCells, ForceBrute} {
		cfg := DefaultConfig()
		cfg.Mode = mode
		cfg.Seed = 9
		cfg.Workers = 1
		serial := stepOnce(t, cfg)

		cfg.Workers = 4
		parallel := stepOnce(t, cfg)

		for i := range serial.System() {
			d := serial.System()[i].R.Sub(parallel.System()[i].R).Norm()
			dv := serial.System()[i].V.Sub(parallel.System()[i].V).Norm()
			if d > 1e-12 || dv > 1e-12 {
				t.Fatalf("mode %s: particle %d diverged between serial and parallel (dr=%g dv=%g)", mode, i, d, dv)
			}
		}
	}
}

func TestCellsMatchBruteOverRun(t *testing.T) {
	mk := func(mode ForceMode) *Result {
		cfg := DefaultConfig()
		cfg.Mode = mode
		cfg.Steps = 20
		cfg.Seed = 5
		cfg.Cutoff = 0.3
		cfg.Binning = 6
		s, err := New(RandomSystem(80, 0.05, 5), cfg)
		if err != nil {
			t.Fatal(err)
		}
		res, err := s.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	a := mk(ForceCells)
	b := mk(ForceBrute)

	if a.Stats.Within != b.Stats.Within {
		t.Errorf("within-cutoff pair totals differ: %d vs %d", a.Stats.Within, b.Stats.Within)
	}
	for i := range a.Potential {
		if math.Abs(a.Potential[i]-b.Potential[i]) > 1e-8 {
			t.Fatalf("step %d: potential %g (cells) vs %g (brute)", i, a.Potential[i], b.Potential[i])
		}
	}
}

func TestRunRecordsResult(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 10
	s, err := New(RandomSystem(30, 0.05, 2), cfg)
	if err != nil {
		t.Fatal(err)
	}

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.StepsTaken != 10 || len(res.Times) != 10 || len(res.Kinetic) != 10 {
		t.Errorf("result incomplete: steps=%d times=%d kinetic=%d", res.StepsTaken, len(res.Times), len(res.Kinetic))
	}
	if res.Stats.Candidates == 0 {
		t.Error("no candidate pairs examined over a 30-particle run")
	}
}

func TestRunSurfacesUnstableTimestep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 50.0
	cfg.Steps = 5
	s, err := New(RandomSystem(10, 1.0, 3), cfg)
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Run(context.Background())
	if !errors.Is(err, integrators.ErrUnstable) {
		t.Fatalf("expected ErrUnstable, got %v", err)
	}
}

func TestRunHonorsContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 1000000
	s, err := New(RandomSystem(10, 0.05, 4), cfg)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGammaDissipatesEnergy(t *testing.T) {
	// The damping force has no potential term, so with gamma > 0 total
	// energy must fall over a run; the conservative part alone cannot
	// raise it beyond integration error.
	cfg := DefaultConfig()
	cfg.Steps = 500
	cfg.Gamma = 2.0
	cfg.Cutoff = 0.8
	cfg.Binning = 2
	s, err := New(RandomSystem(60, 0.5, 8), cfg)
	if err != nil {
		t.Fatal(err)
	}

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	last := len(res.Times) - 1
	e0 := res.Kinetic[0] + res.Potential[0]
	e1 := res.Kinetic[last] + res.Potential[last]
	if e1 >= e0 {
		t.Errorf("damping did not dissipate: E %g -> %g", e0, e1)
	}
}

func TestChunksCoverRange(t *testing.T) {
	for _, tc := range [][2]int{{10, 3}, {7, 7}, {5, 8}, {1, 4}, {100, 1}} {
		n, workers := tc[0], tc[1]
		rs := chunks(n, workers)
		next := 0
		for _, r := range rs {
			if r[0] != next {
				t.Fatalf("chunks(%d,%d): gap or overlap at %d", n, workers, r[0])
			}
			if r[1] <= r[0] {
				t.Fatalf("chunks(%d,%d): empty chunk %v", n, workers, r)
			}
			next = r[1]
		}
		if next != n {
			t.Fatalf("chunks(%d,%d): covered %d of %d", n, workers, next, n)
		}
	}
}
