package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/spheremd/internal/config"
	"github.com/san-kum/spheremd/internal/metrics"
	"github.com/san-kum/spheremd/internal/sim"
	"github.com/san-kum/spheremd/internal/storage"
	"github.com/san-kum/spheremd/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	n        int
	initKind string
	speed    float64
	dt       float64
	steps    int
	binning  int
	cutoff   float64
	gamma    float64
	mode     string
	workers  int
	seed     int64
	plot     bool
	save     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spheremd",
		Short: "molecular dynamics on the unit sphere",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spheremd", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot kinetic energy after the run")
	runCmd.Flags().BoolVar(&save, "save", false, "store run output under the data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare cell-list vs brute-force force passes",
		RunE:  runBench,
	}
	addSimFlags(benchCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tN\tINIT\tDT\tSTEPS\tCUTOFF\tGAMMA\tMODE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%s\t%g\t%d\t%g\t%g\t%s\n",
					name, p.N, p.Init, p.Dt, p.Steps, p.Cutoff, p.Gamma, p.Mode)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, benchCmd, listCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&n, "n", config.DefaultN, "number of particles")
	cmd.Flags().StringVar(&initKind, "init", "random", "initial placement (random|lattice)")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "initial tangential speed (random init)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().IntVar(&binning, "binning", config.DefaultBinning, "cells per axis")
	cmd.Flags().Float64Var(&cutoff, "cutoff", config.DefaultCutoff, "interaction cutoff radius")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "velocity damping coefficient")
	cmd.Flags().StringVar(&mode, "mode", "cells", "force pass (cells|brute)")
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel force workers")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves preset, config file and flags, in increasing
// priority.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if set("n") {
		cfg.N = n
	}
	if set("init") {
		cfg.Init = initKind
	}
	if set("speed") {
		cfg.Speed = speed
	}
	if set("dt") {
		cfg.Dt = dt
	}
	if set("steps") {
		cfg.Steps = steps
	}
	if set("binning") {
		cfg.Binning = binning
	}
	if set("cutoff") {
		cfg.Cutoff = cutoff
	}
	if set("gamma") {
		cfg.Gamma = gamma
	}
	if set("mode") {
		cfg.Mode = mode
	}
	if set("workers") {
		cfg.Workers = workers
	}
	if set("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

func newSimulator(cmd *cobra.Command) (*sim.Simulator, *config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	s, err := sim.New(cfg.InitialSystem(), cfg.SimConfig())
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	s, cfg, err := newSimulator(cmd)
	if err != nil {
		return err
	}

	s.AddMetric(metrics.NewTotalEnergy())
	s.AddMetric(metrics.NewEnergyDrift())
	s.AddMetric(metrics.NewConstraintDrift())
	s.AddMetric(metrics.NewTangentialDrift())
	s.AddMetric(metrics.NewPairRate())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d particles for %d steps (%s, %d workers)...\n",
		cfg.N, cfg.Steps, cfg.Mode, cfg.Workers)
	start := time.Now()

	result, err := s.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("pairs within cutoff: %d of %d examined\n", result.Stats.Within, result.Stats.Candidates)
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for name, val := range result.Metrics {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, val)
	}
	w.Flush()

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.SimConfig(), cfg.N, s.System(), result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	if plot && len(result.Kinetic) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Kinetic,
			asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("kinetic energy")))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	s, _, err := newSimulator(cmd)
	if err != nil {
		return err
	}
	return viz.Run(s)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tSTEPS\tELAPSED\tPAIRS WITHIN")
	for _, m := range []string{"cells", "brute"} {
		c := *cfg
		c.Mode = m
		s, err := sim.New(c.InitialSystem(), c.SimConfig())
		if err != nil {
			return err
		}
		start := time.Now()
		result, err := s.Run(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%d\n", m, result.StepsTaken, time.Since(start), result.Stats.Within)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tN\tSTEPS\tMODE\tPAIRS\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d\t%s\n",
			r.ID, r.N, r.Steps, r.Mode, r.Pairs, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}
