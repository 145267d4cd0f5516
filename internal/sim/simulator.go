// Package sim drives the sphere MD core through timesteps: predictor,
// cell rebuild, force pass (serial or partitioned across workers),
// corrector. It is the host-side driver; the core packages underneath it
// stay single-threaded and synchronous.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/spheremd/internal/cells"
	"github.com/san-kum/spheremd/internal/forces"
	"github.com/san-kum/spheremd/internal/integrators"
	"github.com/san-kum/spheremd/internal/particle"
)

type Simulator struct {
	sys        particle.System
	grid       *cells.Grid
	integrator *integrators.RattleVerlet
	cfg        Config
	pool       *SystemPool
	metrics    []Metric
	observers  []Observer
	t          float64
}

func New(sys particle.System, cfg Config) (*Simulator, error) {
	if err := validateConfig(cfg, len(sys)); err != nil {
		return nil, err
	}
	return &Simulator{
		sys:        sys,
		grid:       cells.NewGrid(cfg.Binning),
		integrator: integrators.NewRattleVerlet(cfg.Dt),
		cfg:        cfg,
		pool:       NewSystemPool(len(sys)),
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}, nil
}

func validateConfig(cfg Config, n int) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Binning < 1 {
		return fmt.Errorf("binning must be at least 1, got %d", cfg.Binning)
	}
	if cfg.Cutoff <= 0 {
		return fmt.Errorf("cutoff must be positive, got %f", cfg.Cutoff)
	}
	if cfg.Gamma < 0 {
		return fmt.Errorf("gamma must not be negative, got %f", cfg.Gamma)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.Mode != ForceCells && cfg.Mode != ForceBrute {
		return fmt.Errorf("unknown force mode %q", cfg.Mode)
	}
	if n == 0 {
		return fmt.Errorf("empty particle system")
	}
	return nil
}

func (s *Simulator) System() particle.System { return s.sys }
func (s *Simulator) Time() float64           { return s.t }
func (s *Simulator) Config() Config          { return s.cfg }

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Step advances the system by one full timestep and returns the force
// pass stats. On error the arena may be mid-step and the simulation
// should not continue.
func (s *Simulator) Step() (forces.Stats, error) {
	if err := s.integrator.Advance(s.sys); err != nil {
		return forces.Stats{}, err
	}

	var stats forces.Stats
	var err error
	switch s.cfg.Mode {
	case ForceBrute:
		if s.cfg.Workers > 1 {
			stats, err = s.bruteParallel()
		} else {
			err = forces.Brute(s.sys, 0, len(s.sys), s.cfg.Cutoff, s.cfg.Gamma, &stats)
		}
	default:
		s.grid.Populate(s.sys)
		if s.cfg.Workers > 1 {
			stats, err = s.cellsParallel()
		} else {
			err = forces.Cells(s.sys, s.grid, 0, s.grid.NumCells(), s.cfg.Cutoff, s.cfg.Gamma, &stats)
		}
	}
	if err != nil {
		return stats, err
	}

	s.integrator.Correct(s.sys)
	s.t += s.cfg.Dt
	return stats, nil
}

// Run advances the system for cfg.Steps steps, recording energies and
// feeding metrics and observers after each step.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Times:     make([]float64, 0, s.cfg.Steps),
		Kinetic:   make([]float64, 0, s.cfg.Steps),
		Potential: make([]float64, 0, s.cfg.Steps),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < s.cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		stats, err := s.Step()
		if err != nil {
			result.Errors = append(result.Errors, err)
			return result, err
		}

		if s.cfg.Validate && !s.sys.IsValid() {
			err := fmt.Errorf("step %d (t=%.4f): invalid state (NaN/Inf)", i, s.t)
			result.Errors = append(result.Errors, err)
			return result, err
		}

		for _, m := range s.metrics {
			m.Observe(s.sys, stats, s.t)
		}
		for _, o := range s.observers {
			o.OnStep(s.sys, stats, s.t)
		}

		result.Times = append(result.Times, s.t)
		result.Kinetic = append(result.Kinetic, s.sys.KineticEnergy())
		result.Potential = append(result.Potential, stats.PotentialEnergy)
		result.Stats.Add(stats)
		result.StepsTaken++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
