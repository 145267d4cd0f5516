package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/spheremd/internal/particle"
	"github.com/san-kum/spheremd/internal/sim"
)

// Store persists run output under a base directory, one subdirectory
// per run with metadata.json, energy.csv and final.csv inside.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	N         int                `json:"n"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Binning   int                `json:"binning"`
	Cutoff    float64            `json:"cutoff"`
	Gamma     float64            `json:"gamma"`
	Mode      string             `json:"mode"`
	Workers   int                `json:"workers"`
	Seed      int64              `json:"seed"`
	Pairs     int64              `json:"pairs_within_cutoff"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run's metadata, its per-step energy series and the
// final particle positions, returning the run ID.
func (s *Store) Save(cfg sim.Config, n int, sys particle.System, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		N:         n,
		Dt:        cfg.Dt,
		Steps:     result.StepsTaken,
		Binning:   cfg.Binning,
		Cutoff:    cfg.Cutoff,
		Gamma:     cfg.Gamma,
		Mode:      string(cfg.Mode),
		Workers:   cfg.Workers,
		Seed:      cfg.Seed,
		Pairs:     result.Stats.Within,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeEnergies(filepath.Join(runDir, "energy.csv"), result); err != nil {
		return "", err
	}
	if err := s.writePositions(filepath.Join(runDir, "final.csv"), sys); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeEnergies(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"time", "kinetic", "potential"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Kinetic[i], 'f', 6, 64),
			strconv.FormatFloat(result.Potential[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writePositions(path string, sys particle.System) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "z"}); err != nil {
		return err
	}
	buf := make([]float64, len(sys)*3)
	sys.Positions(buf)
	for i := 0; i < len(sys); i++ {
		row := []string{
			strconv.FormatFloat(buf[i*3], 'f', 9, 64),
			strconv.FormatFloat(buf[i*3+1], 'f', 9, 64),
			strconv.FormatFloat(buf[i*3+2], 'f', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadEnergies reads back a run's energy series.
func (s *Store) LoadEnergies(runID string) (times, kinetic, potential []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "energy.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) != 3 {
			continue
		}
		t, err1 := strconv.ParseFloat(rec[0], 64)
		ke, err2 := strconv.ParseFloat(rec[1], 64)
		pe, err3 := strconv.ParseFloat(rec[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		times = append(times, t)
		kinetic = append(kinetic, ke)
		potential = append(potential, pe)
	}
	return times, kinetic, potential, nil
}
