package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/nbody"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	dtDays     float64
	days       float64
	validate   bool
	// run
	plotBody string
	// live
	theme string
	fit   bool
	// export
	outPath   string
	canvasSVG bool
	// converge / analyze
	body     string
	refDays  float64
	stepList []float64
	perturb  float64
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "orbitsim",
		Short:        "sun, planets and a comet under newtonian gravity",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".orbitsim", "directory for export bundles")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a preset ("+strings.Join(config.ListPresets(), ", ")+")")
	pf.Float64Var(&dtDays, "dt", config.DefaultDtDays, "time step in days")
	pf.Float64Var(&days, "days", config.DefaultDurationDays, "simulated duration in days")
	pf.BoolVar(&validate, "validate", false, "stop at the first non-finite state")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&plotBody, "plot", "", "plot the distance of this body from the star")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "integrate, then replay the orbits in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", "classic", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	liveCmd.Flags().BoolVar(&fit, "fit", false, "fit the view to the whole run")

	exportCmd := &cobra.Command{
		Use:       "export [csv|json|svg|gif|bundle]",
		Short:     "integrate and write the trajectories to a file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: append(export.Formats(), "bundle"),
		RunE:      exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default orbits.<format>)")
	exportCmd.Flags().BoolVar(&fit, "fit", false, "gif and canvas svg: fit the view to the whole run")
	exportCmd.Flags().BoolVar(&canvasSVG, "canvas", false, "svg: draw the last braille frame instead of vector paths")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "compare step sizes against a fine reference run",
		Args:  cobra.NoArgs,
		RunE:  convergenceStudy,
	}
	convergeCmd.Flags().StringVar(&body, "body", "Earth", "body to compare")
	convergeCmd.Flags().Float64Var(&refDays, "ref", 0.01, "reference step in days")
	convergeCmd.Flags().Float64SliceVar(&stepList, "steps", []float64{1, 0.5, 0.2, 0.1}, "candidate steps in days")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "estimate the orbital period and sensitivity of one body",
		Args:  cobra.NoArgs,
		RunE:  analyzeBody,
	}
	analyzeCmd.Flags().StringVar(&body, "body", "Earth", "body to analyze")
	analyzeCmd.Flags().Float64Var(&perturb, "perturb", 1000, "initial displacement in metres for the sensitivity run")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "init [path]",
			Short: "write the effective configuration to a yaml file",
			Args:  cobra.MaximumNArgs(1),
			RunE:  initConfig,
		},
		&cobra.Command{
			Use:   "show",
			Short: "print the effective configuration",
			Args:  cobra.NoArgs,
			RunE:  showConfig,
		},
	)

	rootCmd.AddCommand(runCmd, liveCmd, exportCmd, presetsCmd, convergeCmd, analyzeCmd, configCmd)
	return rootCmd
}

// loadConfig resolves preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		if cfg != nil {
			cfg, err = config.LoadOver(configFile, cfg)
		} else {
			cfg, err = config.Load(configFile)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.DtDays = dtDays
	}
	if flags.Changed("days") {
		cfg.DurationDays = days
	}
	if flags.Changed("validate") {
		cfg.ValidateState = validate
	}
	return cfg, cfg.Validate()
}

// simulation is one finished run with the observers that watched it.
type simulation struct {
	cfg    *config.Config
	in     *nbody.Integrator
	res    *nbody.Result
	energy *metrics.EnergyTrace
	wall   time.Duration
}

func simulate(cmd *cobra.Command) (*simulation, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	in, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	trace := metrics.NewEnergyTrace()
	for _, m := range metrics.Default() {
		in.AddMetric(m)
	}
	in.AddMetric(trace)

	start := time.Now()
	res, err := in.Run(cmd.Context(), cfg.Duration(), cfg.Step())
	if err != nil {
		return nil, err
	}
	return &simulation{cfg: cfg, in: in, res: res, energy: trace, wall: time.Since(start)}, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	sim, err := simulate(cmd)
	if err != nil {
		return err
	}

	res := sim.res
	fmt.Fprintf(out, "preset: %s\n", sim.cfg.Preset)
	fmt.Fprintf(out, "completed in %v\n", sim.wall.Round(time.Millisecond))
	fmt.Fprintf(out, "steps: %d (dt %.3g days)\n", res.StepsTaken, sim.cfg.DtDays)
	fmt.Fprintf(out, "simulated: %.1f days\n", res.Elapsed/nbody.DaySec)
	fmt.Fprintf(out, "energy drift: %.3e\n\n", res.EnergyDrift)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tX (AU)\tY (AU)\tR (AU)\tSPEED (km/s)")
	snap := sim.in.Snapshot()
	star := snap.Star
	for _, b := range append([]nbody.Body{star}, snap.Orbiters...) {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.3f\n",
			b.Name,
			b.Pos[0]/nbody.AU,
			b.Pos[1]/nbody.AU,
			b.Pos.Sub(star.Pos).Len()/nbody.AU,
			b.Vel.Len()/1000,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nmetrics:")
	for _, m := range metrics.Default() {
		if v, ok := res.Metrics[m.Name()]; ok {
			fmt.Fprintf(out, "  %s: %.6g\n", m.Name(), v)
		}
	}

	if plotBody != "" {
		graph, err := viz.RadiusPlot(res.History, plotBody, 70, 12)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s\n", graph)
		fmt.Fprintf(out, "\n%s\n", viz.EnergyPlot(sim.energy.Values(), 70, 8))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if !slices.Contains(viz.ThemeNames(), theme) {
		return fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}
	sim, err := simulate(cmd)
	if err != nil {
		return err
	}

	m := viz.NewPlayer(sim.res.History, sim.energy.Values()).WithTheme(viz.GetTheme(theme))
	if fit {
		m = m.FitView()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	format := args[0]
	if format != "bundle" && !slices.Contains(export.Formats(), format) {
		return fmt.Errorf("unknown format: %s (available: %v, bundle)", format, export.Formats())
	}

	sim, err := simulate(cmd)
	if err != nil {
		return err
	}
	meta := export.NewMeta(sim.cfg.Preset, sim.in, sim.res, sim.cfg.Step(), sim.cfg.Duration())

	if format == "bundle" {
		st := export.NewStore(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		dir, err := st.Save(meta, sim.res.History)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "run saved to %s\n", dir)
		return nil
	}

	path := outPath
	if path == "" {
		path = "orbits." + format
	}
	if err := export.WriteFile(path, format, meta, sim.res.History, export.Options{Fit: fit, Canvas: canvasSVG}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d steps written to %s\n", sim.res.StepsTaken, path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDAYS\tBODIES")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		names := []string{cfg.Star.Name}
		for _, o := range cfg.Orbiters {
			n := o.Name
			if o.ExcludedFromReaction {
				n += "*"
			}
			names = append(names, n)
		}
		fmt.Fprintf(w, "%s\t%.0f\t%s\n", name, cfg.DurationDays, strings.Join(names, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\n* does not pull on the star")
	return nil
}

func systemOf(cfg *config.Config) analysis.System {
	sys := analysis.System{G: cfg.G, Star: cfg.Star.Body()}
	for _, o := range cfg.Orbiters {
		sys.Orbiters = append(sys.Orbiters, o.Body())
	}
	return sys
}

func convergenceStudy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dts := make([]float64, len(stepList))
	for i, d := range stepList {
		dts[i] = d * nbody.DaySec
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "convergence of %s over %.0f days (reference dt %.3g days)\n\n", body, cfg.DurationDays, refDays)

	points, err := analysis.Convergence(cmd.Context(), systemOf(cfg), body, cfg.Duration(), refDays*nbody.DaySec, dts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT (days)\tSTEPS\tMAX DEVIATION (AU)\tRATIO")
	for i, p := range points {
		ratio := "-"
		if i > 0 && p.MaxDeviation > 0 {
			ratio = fmt.Sprintf("%.2f", points[i-1].MaxDeviation/p.MaxDeviation)
		}
		fmt.Fprintf(w, "%.4g\t%d\t%.3e\t%s\n", p.Dt/nbody.DaySec, p.Steps, p.MaxDeviation/nbody.AU, ratio)
	}
	return w.Flush()
}

func analyzeBody(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !isOrbiter(cfg, body) {
		return fmt.Errorf("%q is not an orbiter of preset %s", body, cfg.Preset)
	}
	in, err := cfg.Build()
	if err != nil {
		return err
	}
	res, err := in.Run(cmd.Context(), cfg.Duration(), cfg.Step())
	if err != nil {
		return err
	}

	tr, err := res.History.Trajectory(body)
	if err != nil {
		return err
	}
	star := res.History.Trajectories()[0]
	xs := make([]float64, tr.Len())
	for i := range xs {
		xs[i] = tr.At(i)[0] - star.At(i)[0]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frequency analysis: %s (%s)\n\n", body, cfg.Preset)

	period, err := analysis.DominantPeriod(xs, cfg.Step())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "dominant period: %.2f days\n", period/nbody.DaySec)

	dist, err := in.Snapshot().Separation(body)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "current distance: %.4f AU\n", dist/nbody.AU)

	rep, err := analysis.Sensitivity(cmd.Context(), systemOf(cfg), body, mgl64.Vec3{perturb, 0, 0}, cfg.Duration(), cfg.Step())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nsensitivity to a %.3g m displacement:\n", rep.InitialSeparation)
	fmt.Fprintf(out, "  final separation: %.3e m\n", rep.FinalSeparation)
	fmt.Fprintf(out, "  max separation:   %.3e m\n", rep.MaxSeparation)
	fmt.Fprintf(out, "  growth rate:      %.3e 1/day\n", rep.GrowthRate*nbody.DaySec)
	return nil
}

func isOrbiter(cfg *config.Config, name string) bool {
	for _, o := range cfg.Orbiters {
		if o.Name == name {
			return true
		}
	}
	return false
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "orbitsim.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
