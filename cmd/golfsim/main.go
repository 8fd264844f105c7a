package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/san-kum/golfsim/internal/analysis"
	"github.com/san-kum/golfsim/internal/automation"
	"github.com/san-kum/golfsim/internal/ballistics"
	"github.com/san-kum/golfsim/internal/config"
	"github.com/san-kum/golfsim/internal/experiment"
	"github.com/san-kum/golfsim/internal/export"
	"github.com/san-kum/golfsim/internal/integrators"
	"github.com/san-kum/golfsim/internal/observability"
	"github.com/san-kum/golfsim/internal/optim"
	"github.com/san-kum/golfsim/internal/storage"
	"github.com/san-kum/golfsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFormat  string
	// flight overrides
	speed      float64
	angle      float64
	dt         float64
	maxSteps   int
	integrator string
	drag       string
	density    string
	magnus     bool
	// run
	noSave bool
	// figure
	svgOut string
	// studies
	levels   int
	minAngle float64
	maxAngle float64
	steps    int
	workers  int
	maxEvals int
	useGrid  bool
	// dispersion
	speedSpread float64
	angleSpread float64
	trials      int
	seed        int64

	baseConfig *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "golfsim",
		Short:             "golf ball flight simulator",
		SilenceUsage:      true,
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".golfsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")

	runCmd := &cobra.Command{
		Use:   "run [preset|file.yaml]",
		Short: "fly one ball and store the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFlight,
	}
	addFlightFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	figureCmd := &cobra.Command{
		Use:   "figure [name]",
		Short: "fly the series of a comparison figure",
		Args:  cobra.ExactArgs(1),
		RunE:  runFigure,
	}
	addLaunchFlags(figureCmd)
	figureCmd.Flags().StringVarP(&svgOut, "out", "o", "", "write the figure as SVG")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list force presets and figures",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVarP(&svgOut, "out", "o", "", "also write the trajectory as SVG")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	convergenceCmd := &cobra.Command{
		Use:   "convergence [preset|file.yaml]",
		Short: "range at successively halved time steps",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConvergence,
	}
	addFlightFlags(convergenceCmd)
	convergenceCmd.Flags().IntVar(&levels, "levels", 6, "number of step sizes")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset|file.yaml]",
		Short: "range over a span of launch angles",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addFlightFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&minAngle, "min", 5, "first angle (degrees)")
	sweepCmd.Flags().Float64Var(&maxAngle, "max", 60, "last angle (degrees)")
	sweepCmd.Flags().IntVar(&steps, "steps", 12, "number of angles")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel flights (0 = GOMAXPROCS)")

	optimizeCmd := &cobra.Command{
		Use:   "optimize [preset|file.yaml]",
		Short: "find the launch angle with the longest range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOptimize,
	}
	addFlightFlags(optimizeCmd)
	optimizeCmd.Flags().IntVar(&maxEvals, "evals", 200, "maximum flights for Nelder-Mead")
	optimizeCmd.Flags().BoolVar(&useGrid, "grid", false, "exhaustive 1° grid instead of Nelder-Mead")

	watchCmd := &cobra.Command{
		Use:   "watch [preset|file.yaml|run_id]",
		Short: "replay a flight in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  watchFlight,
	}
	addFlightFlags(watchCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "fly a scripted sequence of shots",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	dispersionCmd := &cobra.Command{
		Use:   "dispersion [preset|file.yaml]",
		Short: "range spread under random launch errors",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDispersion,
	}
	addFlightFlags(dispersionCmd)
	dispersionCmd.Flags().Float64Var(&speedSpread, "speed-spread", 1, "speed error bound (m/s)")
	dispersionCmd.Flags().Float64Var(&angleSpread, "angle-spread", 1, "angle error bound (degrees)")
	dispersionCmd.Flags().IntVar(&trials, "trials", 100, "number of shots")
	dispersionCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = clock)")
	dispersionCmd.Flags().IntVar(&workers, "workers", 0, "parallel flights (0 = GOMAXPROCS)")

	rootCmd.AddCommand(runCmd, figureCmd, presetsCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd,
		convergenceCmd, sweepCmd, optimizeCmd, watchCmd, scenarioCmd, dispersionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		observability.Sync()
		stop()
		os.Exit(1)
	}
}

func addLaunchFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "launch speed (m/s)")
	cmd.Flags().Float64Var(&angle, "angle", config.DefaultAngleDeg, "launch angle (degrees)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step (s)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "step budget")
	cmd.Flags().StringVar(&integrator, "integrator", integrators.Default,
		"integrator ("+strings.Join(integrators.Names(), ", ")+")")
}

func addFlightFlags(cmd *cobra.Command) {
	addLaunchFlags(cmd)
	cmd.Flags().StringVar(&drag, "drag", "none", "drag law (none, constant, linear, quadratic, quadratic-unsigned)")
	cmd.Flags().StringVar(&density, "density", "vacuum", "air density (vacuum, constant, barometric)")
	cmd.Flags().BoolVar(&magnus, "magnus", false, "enable Magnus lift")
}

// initialize reads the base configuration, binds GOLFSIM_* environment
// variables and sets up logging before any command runs.
func initialize(cmd *cobra.Command, args []string) error {
	viper.SetEnvPrefix("GOLFSIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range []string{"data", "log-level", "log-format"} {
		if err := viper.BindPFlag(name, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return err
		}
	}
	dataDir = viper.GetString("data")

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			observability.InitializeLogger(config.DefaultLogger())
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if level := viper.GetString("log-level"); level != "" {
		cfg.Logger.Level = level
	}
	if format := viper.GetString("log-format"); format != "" {
		cfg.Logger.Format = format
	}
	observability.InitializeLogger(cfg.Logger)
	baseConfig = cfg
	return nil
}

// resolveConfig picks the configuration named by args (a preset or YAML
// file, else the base configuration) and applies explicitly set flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := new(config.Config)
	*cfg = *baseConfig
	if len(args) > 0 {
		resolved, err := experiment.NewRegistry(baseConfig, observability.GetLogger()).Resolve(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w (presets: %s)", err, strings.Join(config.ListPresets(), ", "))
		}
		cfg = resolved
	}

	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.Launch.Speed = speed
	}
	if flags.Changed("angle") {
		cfg.Launch.AngleDeg = angle
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("drag") {
		cfg.Forces.Drag = drag
	}
	if flags.Changed("density") {
		cfg.Forces.Density = density
	}
	if flags.Changed("magnus") {
		cfg.Forces.Magnus = magnus
	}
	return cfg, cfg.Validate()
}

func runFlight(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, observability.GetLogger())
	tr, err := exp.Run(cmd.Context())
	if err != nil && !errors.Is(err, ballistics.ErrNoLanding) {
		return err
	}

	fmt.Println(viz.Summary(cfg.Name, tr))
	crossing := tr.GroundCrossing()
	fmt.Println(viz.Row("ground crossing", fmt.Sprintf("%.2f m at %.3f s", crossing.X, tr.GroundCrossingTime())))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, saveErr := st.Save(cfg.Name, cfg.Integrator, tr)
		if saveErr != nil {
			return saveErr
		}
		fmt.Println(viz.Row("run id", runID))
	}
	return err
}

func runFigure(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry(base, observability.GetLogger())
	fig, exps, err := registry.Figure(args[0])
	if err != nil {
		return fmt.Errorf("%w (figures: %s)", err, strings.Join(config.ListFigures(), ", "))
	}

	trs, err := experiment.RunAll(cmd.Context(), exps, 0, observability.GetLogger())
	if err != nil {
		return err
	}

	chart := export.NewChart(fig.Title)
	overlay := make([]viz.OverlaySeries, len(trs))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tPRESET\tRANGE\tCROSSING\tAPEX\tTIME")
	for i, tr := range trs {
		s := fig.Series[i]
		chart.Add(export.Series{Label: s.Label, Color: s.Color, Dashed: s.Dashed, Points: tr.Points()})
		overlay[i] = viz.OverlaySeries{Label: s.Label, Color: s.Color, Points: tr.Points()}
		fmt.Fprintf(w, "%s\t%s\t%.2f m\t%.2f m\t%.2f m\t%.2f s\n",
			s.Label, s.Preset, tr.Range(), tr.GroundCrossing().X, tr.Apex().Y, tr.FlightTime())
	}

	fmt.Println(viz.HeaderStyle.Render(fig.Title))
	fmt.Println(viz.Overlay(overlay, 80, 15, "y (m) over x (m)"))
	fmt.Println()
	if err := w.Flush(); err != nil {
		return err
	}

	if svgOut != "" {
		if err := export.WriteSVG(svgOut, chart); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry(baseConfig, nil)
	fmt.Println("presets:")
	for _, line := range registry.ListPresets() {
		fmt.Printf("  %s\n", line)
	}

	fmt.Println("\nfigures:")
	for _, name := range config.ListFigures() {
		fig, _ := config.GetFigure(name)
		labels := make([]string, len(fig.Series))
		for i, s := range fig.Series {
			labels[i] = s.Preset
		}
		fmt.Printf("  %-16s %s (%s)\n", name, fig.Title, strings.Join(labels, ", "))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSPEED\tANGLE\tFORCES\tDT\tINTEG\tOUTCOME\tRANGE")

	for _, run := range runs {
		forces := fmt.Sprintf("%s/%s", run.Drag, run.Density)
		if run.Magnus {
			forces += "/magnus"
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f°\t%s\t%.4fs\t%s\t%s\t%.2f m\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Speed,
			run.AngleDeg,
			forces,
			run.Dt,
			run.Integrator,
			run.Outcome,
			run.Range,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(viz.Summary(meta.ID, tr))
	fmt.Println(viz.HeightProfile(tr, 80, 12, "y (m) over x (m)"))

	speeds := make([]float64, tr.Len())
	for i, s := range tr.Samples {
		speeds[i] = s.Speed()
	}
	fmt.Println()
	fmt.Println(viz.MetricLabel.Render("speed"), viz.SparklineChart(speeds, 60))

	if svgOut != "" {
		chart := export.NewChart(meta.ID)
		chart.Add(export.Series{Label: meta.Name, Color: "green", Points: tr.Points()})
		if err := export.WriteSVG(svgOut, chart); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.WriteSamples(os.Stdout, tr.Samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return export.JSON(os.Stdout, *meta, tr)
}

func studySetup(cmd *cobra.Command, args []string) (*config.Config, analysis.Setup, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, analysis.Setup{}, err
	}
	setup, err := experiment.New(cfg, observability.GetLogger()).Setup()
	return cfg, setup, err
}

func runConvergence(cmd *cobra.Command, args []string) error {
	cfg, setup, err := studySetup(cmd, args)
	if err != nil {
		return err
	}

	report, err := analysis.Convergence(cmd.Context(), setup, levels)
	if err != nil {
		return err
	}

	fmt.Printf("convergence: %s (%s, %s)\n\n", cfg.Name, setup.Model, setup.Integrator)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tRANGE\tDIFF")
	for _, p := range report.Points {
		fmt.Fprintf(w, "%.6f\t%d\t%.6f m\t%.3e\n", p.Dt, p.Steps, p.Range, p.Diff)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.Row("observed order", fmt.Sprintf("%.2f", report.Order)))
	fmt.Println(viz.Row("converging", fmt.Sprintf("%t", report.Converging)))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, setup, err := studySetup(cmd, args)
	if err != nil {
		return err
	}
	if steps < 2 {
		return fmt.Errorf("sweep needs at least 2 angles, got %d", steps)
	}

	points, err := analysis.AngleSweep(cmd.Context(), setup, analysis.Angles(minAngle, maxAngle, steps), workers)
	if err != nil {
		return err
	}

	fmt.Printf("angle sweep: %s at %.1f m/s\n\n", cfg.Name, setup.Launch.Speed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANGLE\tRANGE\tAPEX\tTIME\tLANDED")
	ranges := make([]float64, len(points))
	for i, p := range points {
		ranges[i] = p.Range
		fmt.Fprintf(w, "%.2f°\t%.2f m\t%.2f m\t%.2f s\t%t\n", p.AngleDeg, p.Range, p.Apex, p.FlightTime, p.Landed)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	sum := analysis.Summarize(points)
	fmt.Println()
	fmt.Println(viz.MetricLabel.Render("range"), viz.SparklineChart(ranges, 60))
	fmt.Println(viz.Row("best angle", fmt.Sprintf("%.2f° (%.2f m)", sum.BestAngle, sum.BestRange)))
	fmt.Println(viz.Row("mean range", fmt.Sprintf("%.2f ± %.2f m", sum.MeanRange, sum.StdRange)))
	fmt.Println(viz.Row("landed", fmt.Sprintf("%d/%d", sum.Landed, len(points))))
	return nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, setup, err := studySetup(cmd, args)
	if err != nil {
		return err
	}
	logger := observability.GetLogger()

	if useGrid {
		grid := optim.NewGridSearch([]string{"angle"}, [][]float64{analysis.Angles(1, 89, 89)})
		params, best, err := grid.Search(cmd.Context(), optim.RangeObjective(setup))
		if err != nil {
			return err
		}
		logger.Info("grid search finished", zap.String("experiment", cfg.Name), zap.Float64("angle", params["angle"]))
		fmt.Println(viz.Row("best angle", fmt.Sprintf("%.0f°", params["angle"])))
		fmt.Println(viz.Row("range", fmt.Sprintf("%.2f m", best)))
		return nil
	}

	res, err := optim.BestAngle(cmd.Context(), setup, maxEvals)
	if err != nil {
		return err
	}
	logger.Info("angle optimisation finished",
		zap.String("experiment", cfg.Name),
		zap.Float64("angle", res.AngleDeg),
		zap.Int("evaluations", res.Evaluations),
		zap.String("status", res.Status),
	)
	fmt.Println(viz.Row("best angle", fmt.Sprintf("%.3f°", res.AngleDeg)))
	fmt.Println(viz.Row("range", fmt.Sprintf("%.2f m", res.Range)))
	fmt.Println(viz.Row("evaluations", fmt.Sprintf("%d (%s)", res.Evaluations, res.Status)))
	return nil
}

func watchFlight(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		st := storage.New(dataDir)
		if meta, tr, err := st.LoadTrajectory(args[0]); err == nil {
			return viz.RunReplay(meta.Name, tr)
		} else if !errors.Is(err, storage.ErrRunNotFound) {
			return err
		}
	}

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	tr, err := experiment.New(cfg, observability.GetLogger()).Run(cmd.Context())
	if err != nil && !errors.Is(err, ballistics.ErrNoLanding) {
		return err
	}
	return viz.RunReplay(cfg.Name, tr)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	logger := observability.GetLogger()
	results, err := automation.RunScenario(cmd.Context(), sc, experiment.NewRegistry(baseConfig, logger), st, logger)

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(viz.Subtle.Render(sc.Description))
	}
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tFORCES\tRANGE\tAPEX\tRUN ID")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f m\t%.2f m\t%s\n",
			i+1, r.Name, r.Trajectory.Model, r.Trajectory.GroundCrossing().X, r.Trajectory.Apex().Y, r.RunID)
	}
	if flushErr := w.Flush(); flushErr != nil {
		return flushErr
	}
	return err
}

func runDispersion(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	trialsOut, err := automation.RunDispersion(cmd.Context(), experiment.New(cfg, observability.GetLogger()), automation.DispersionConfig{
		SpeedSpread: speedSpread,
		AngleSpread: angleSpread,
		Trials:      trials,
		Seed:        seed,
		Workers:     workers,
	})
	if err != nil {
		return err
	}

	ranges := make([]float64, len(trialsOut))
	for i, t := range trialsOut {
		ranges[i] = t.Range
	}
	s := automation.Stats(trialsOut)

	fmt.Printf("dispersion: %s, %d shots at %.1f±%.1f m/s, %.1f±%.1f°\n\n",
		cfg.Name, len(trialsOut), cfg.Launch.Speed, speedSpread, cfg.Launch.AngleDeg, angleSpread)
	fmt.Println(viz.MetricLabel.Render("range"), viz.SparklineChart(ranges, 60))
	fmt.Println(viz.Row("mean range", fmt.Sprintf("%.2f ± %.2f m", s.MeanRange, s.StdRange)))
	fmt.Println(viz.Row("min / max", fmt.Sprintf("%.2f / %.2f m", s.MinRange, s.MaxRange)))
	fmt.Println(viz.Row("landed", fmt.Sprintf("%d/%d", s.Landed, len(trialsOut))))
	return nil
}
