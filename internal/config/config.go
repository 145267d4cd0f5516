package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/spheremd/internal/particle"
	"github.com/san-kum/spheremd/internal/sim"
)

const (
	DefaultN       = 500
	DefaultDt      = 0.001
	DefaultSteps   = 2000
	DefaultBinning = 10
	DefaultCutoff  = 0.2
	DefaultGamma   = 0.1
	DefaultSpeed   = 0.1
)

type Config struct {
	N       int     `yaml:"n"`
	Init    string  `yaml:"init"` // "random" or "lattice"
	Speed   float64 `yaml:"speed"`
	Dt      float64 `yaml:"dt"`
	Steps   int     `yaml:"steps"`
	Binning int     `yaml:"binning"`
	Cutoff  float64 `yaml:"cutoff"`
	Gamma   float64 `yaml:"gamma"`
	Mode    string  `yaml:"mode"` // "cells" or "brute"
	Workers int     `yaml:"workers"`
	Seed    int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		N:       DefaultN,
		Init:    "random",
		Speed:   DefaultSpeed,
		Dt:      DefaultDt,
		Steps:   DefaultSteps,
		Binning: DefaultBinning,
		Cutoff:  DefaultCutoff,
		Gamma:   DefaultGamma,
		Mode:    string(sim.ForceCells),
		Workers: 1,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SimConfig converts to the driver's config. Validation happens in the
// sim layer.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:       c.Dt,
		Steps:    c.Steps,
		Binning:  c.Binning,
		Cutoff:   c.Cutoff,
		Gamma:    c.Gamma,
		Mode:     sim.ForceMode(c.Mode),
		Workers:  c.Workers,
		Seed:     c.Seed,
		Validate: true,
	}
}

// InitialSystem builds the particle arena this config describes.
func (c *Config) InitialSystem() particle.System {
	if c.Init == "lattice" {
		return sim.LatticeSystem(c.N)
	}
	return sim.RandomSystem(c.N, c.Speed, c.Seed)
}
