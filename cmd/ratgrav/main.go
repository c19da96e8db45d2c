package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/san-kum/ratgrav/internal/config"
	"github.com/san-kum/ratgrav/internal/exact"
	"github.com/san-kum/ratgrav/internal/export"
	"github.com/san-kum/ratgrav/internal/sim"
	"github.com/san-kum/ratgrav/internal/storage"
	"github.com/san-kum/ratgrav/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	ticks      int
	policy     string
	workers    int
	gravConst  string
	noSave     bool
	showExact  bool
	plotBody   string
	interval   time.Duration
	svgOut     string
)

// main registers the ratgrav commands and executes the root command,
// exiting with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ratgrav",
		Short: "exact rational point-mass gravity",
		// Step failures are simulation results, not usage mistakes.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ratgrav", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and save the frames",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	runCmd.Flags().BoolVar(&showExact, "exact", false, "print exact rational positions")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "step a scenario with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "time between ticks")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body displacement for a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotBody, "body", "", "body to plot (default: all)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(cmd.OutOrStdout(), args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "scatter plot of saved positions as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default: stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "  %-16s %d bodies, %d ticks, %s\n", name, len(p.Bodies), p.Ticks, p.Policy)
			}
			return nil
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "verify exact vector arithmetic against a known distance",
		RunE:  runCheck,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, presetsCmd, checkCmd)
	return rootCmd
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	cmd.Flags().StringVar(&policy, "policy", config.DefaultPolicy, "update policy (sequential, snapshot)")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "snapshot worker limit")
	cmd.Flags().StringVar(&gravConst, "g", "", "gravitational constant, read exactly (e.g. 1/3, 6.674e-11)")
}

// resolveConfig starts from the named preset (earth_moon by default) or a
// config file, never both, then applies only the flags the user set.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	if configFile != "" && len(args) > 0 {
		return nil, fmt.Errorf("preset %q and --config are mutually exclusive", args[0])
	}

	name := "earth_moon"
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if cmd.Flags().Changed("policy") {
		cfg.Policy = policy
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("g") {
		g, err := exact.Parse(gravConst)
		if err != nil {
			return nil, fmt.Errorf("--g: %w", err)
		}
		cfg.G = g
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	s := sim.New(sys)
	closest := &sim.ClosestApproach{}
	s.AddObserver(closest)
	s.AddObserver(frameWriter{out: out, exact: showExact})

	fmt.Fprintf(out, "running %s (%d bodies, %d ticks, %s)...\n", cfg.Name, len(cfg.Bodies), cfg.Ticks, cfg.Policy)
	start := time.Now()

	result, runErr := s.Run(context.Background(), cfg.SimConfig())
	if result == nil {
		return runErr
	}

	fmt.Fprintf(out, "completed %d/%d ticks in %v\n", result.StepsTaken, cfg.Ticks, time.Since(start))
	if _, ok := closest.Squared(); ok && len(cfg.Bodies) > 1 {
		a, b := closest.Pair()
		fmt.Fprintf(out, "closest approach: %s-%s %s at tick %d\n", a, b, closest.Distance(), closest.Tick())
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, result, runErr)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}

	if runErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), viz.RenderError(runErr))
	}
	return runErr
}

type frameWriter struct {
	out   io.Writer
	exact bool
}

func (w frameWriter) OnTick(f sim.Frame) {
	if w.exact {
		fmt.Fprintf(w.out, "tick %d\n%s", f.Tick, viz.RenderExact(f))
		return
	}
	fmt.Fprint(w.out, viz.RenderFrame(f))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}
	return viz.RunLive(cfg.Name, sys, cfg.Ticks, interval)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tTICKS\tPOLICY\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.StepsTaken,
			run.Ticks,
			run.Policy,
			status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "scenario: %s\n", meta.Scenario)
	fmt.Fprintf(out, "frames: %d\n\n", len(frames))

	bodies := meta.Bodies
	if plotBody != "" {
		bodies = []string{plotBody}
	}
	for _, body := range bodies {
		chart := viz.PlotDisplacement(frames, body, 80, 10)
		if chart == "" {
			return fmt.Errorf("no frames for body %q", body)
		}
		fmt.Fprintln(out, chart)
		fmt.Fprintln(out)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	frames, err := storage.New(dataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}

	if svgOut == "" {
		return export.WriteSVG(cmd.OutOrStdout(), frames, 800, 600)
	}

	f, err := os.Create(svgOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WriteSVG(f, frames, 800, 600); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", svgOut)
	return nil
}

// runCheck reproduces a hand-computed case: the squared distance between
// (0, 0.1, 0.3) and (100, 100, 200) is 59860.1 and must round to 59860.
func runCheck(cmd *cobra.Command, args []string) error {
	r1, err := exact.FromFloats(0, 0.1, 0.3)
	if err != nil {
		return err
	}
	r2, err := exact.FromFloats(100, 100, 200)
	if err != nil {
		return err
	}

	diff := r2.Sub(r1)
	d2 := diff.SquaredNorm()
	if !d2.Round().Equal(exact.FromInt(59860)) {
		return fmt.Errorf("squared distance rounds to %s, want 59860", d2.Round())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "distance: %s, squared distance: %s\n", diff.MagnitudeApprox().Floor(), d2.Floor())
	return nil
}
