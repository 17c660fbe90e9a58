package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/analysis"
	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/export"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/logging"
	"github.com/san-kum/rigidsim/internal/optim"
	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/san-kum/rigidsim/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	mass       float64
	duration   float64
	steps      int
	terms      int
	velocity   []float64
	spin       []float64
	noSave     bool
	parallel   int
	outFile    string
	replayRun  string
	themeName  string
	svgPrefix  string
	phaseAxis  int
	sweepArgs  []string
	metricName string

	logger *zap.Logger
)

// main registers the commands and runs the preset picker when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "rigidsim",
		Short: "rigid body simulation lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.New(verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := tea.NewProgram(viz.NewPicker(), tea.WithAltScreen()).Run()
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rigidsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and store the result",
		Args:  cobra.NoArgs,
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPrefix, "svg", "", "also write <prefix>_cloud.svg and <prefix>_path.svg")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and phase analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&phaseAxis, "axis", 2, "axis of the phase portrait (0=x, 1=y, 2=z)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export the point cloud trace as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the state table as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or print one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}
	presetsCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the preset to a yaml file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step a scenario with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().StringVar(&replayRun, "run", "", "replay a stored run instead")
	liveCmd.Flags().StringVar(&themeName, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	batchCmd := &cobra.Command{
		Use:   "batch [preset...]",
		Short: "run several presets concurrently",
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVarP(&parallel, "parallel", "j", 0, "max concurrent runs (0 = unlimited)")
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	sweepCmd := &cobra.Command{
		Use:     "sweep",
		Short:   "grid search scenario parameters for the smallest metric",
		Example: `  rigidsim sweep --preset spin --param steps=50,100,200 --param terms=4,8,12 --metric energy_drift`,
		Args:    cobra.NoArgs,
		RunE:    runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepArgs, "param", nil, "name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&metricName, "metric", "energy_drift", "metric to minimise")
	sweepCmd.Flags().IntVarP(&parallel, "parallel", "j", 0, "max concurrent runs (0 = unlimited)")
	_ = sweepCmd.MarkFlagRequired("param")

	matrixCmd := &cobra.Command{
		Use:   "matrix [det|inverse|cofactor|transpose] [file]",
		Short: "apply a matrix operation to a json matrix",
		Long:  `Reads {"Matrice": [[...], ...]} from file (or stdin with "-") and prints the result.`,
		Args:  cobra.ExactArgs(2),
		RunE:  matrixOp,
	}

	stepCmd := &cobra.Command{
		Use:   "step",
		Short: "advance a scenario by one step and print the state",
		Args:  cobra.NoArgs,
		RunE:  stepOnce,
	}
	addScenarioFlags(stepCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd, presetsCmd, liveCmd, batchCmd, sweepCmd, matrixCmd, stepCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a preset scenario")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "total mass")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().IntVar(&terms, "terms", linalg.DefaultTerms, "taylor terms for sine and cosine")
	cmd.Flags().Float64SliceVar(&velocity, "vel", nil, "initial velocity x,y,z")
	cmd.Flags().Float64SliceVar(&spin, "spin", nil, "initial angular velocity x,y,z")
}

// loadScenario resolves the scenario from a preset or a file, then applies
// the flags the user set explicitly.
func loadScenario(cmd *cobra.Command) (*config.Scenario, error) {
	sc := config.DefaultScenario()

	if preset != "" {
		sc = config.GetPreset(preset)
		if sc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		sc, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("mass") {
		sc.Mass = mass
	}
	if flags.Changed("time") {
		sc.Duration = duration
	}
	if flags.Changed("steps") {
		sc.Steps = steps
	}
	if flags.Changed("terms") {
		sc.Terms = terms
	}
	if flags.Changed("vel") {
		v, err := vecFlag("vel", velocity)
		if err != nil {
			return nil, err
		}
		sc.Initial.Velocity = v
	}
	if flags.Changed("spin") {
		v, err := vecFlag("spin", spin)
		if err != nil {
			return nil, err
		}
		sc.Initial.AngularVelocity = v
	}

	return sc, sc.Validate()
}

func vecFlag(name string, vals []float64) (config.Vec, error) {
	if len(vals) != 3 {
		return config.Vec{}, fmt.Errorf("--%s needs 3 components, got %d", name, len(vals))
	}
	return config.Vec{vals[0], vals[1], vals[2]}, nil
}

func newSimulator(sc *config.Scenario) *sim.Simulator {
	s := sim.New(body.New(body.WithTerms(sc.Terms)), logger.With(zap.String("scenario", sc.Name)))
	for _, m := range sim.DefaultMetrics() {
		s.AddMetric(m)
	}
	return s
}

func simConfig(sc *config.Scenario) sim.Config {
	return sim.Config{Duration: sc.Duration, Steps: sc.Steps, ValidateState: true}
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	st0, loads, err := sc.Build()
	if err != nil {
		return err
	}

	fmt.Printf("running %s (%d points, %d steps)...\n", sc.Name, st0.Cloud.Cols(), sc.Steps)
	start := time.Now()

	result, err := newSimulator(sc).Run(cmd.Context(), st0, loads, simConfig(sc))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(sc, result)
		if err != nil {
			return err
		}
		logger.Info("run stored", zap.String("id", runID), zap.String("dir", dataDir))
		fmt.Printf("run id: %s\n", runID)
	}

	final := result.Final()
	theme := viz.GetTheme(themeName)
	fmt.Println()
	fmt.Println(viz.RenderVector("centre", final.Centre, theme))
	fmt.Println(viz.RenderVector("velocity", final.Velocity, theme))
	fmt.Println(viz.RenderVector("angle", final.Angle, theme))
	fmt.Println(viz.RenderVector("spin", final.AngularVelocity, theme))
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	fmt.Println("\nmetrics:")
	for _, name := range []string{"energy", "energy_drift", "displacement", "peak_spin"} {
		if v, ok := m[name]; ok {
			fmt.Printf("  %s: %.6f\n", name, v)
		}
	}
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
	fmt.Fprintln(w, "ID\tSCENARIO\tSHAPE\tTIME\tPOINTS\tDURATION\tDT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2fs\t%.4fs\n",
			run.ID,
			run.Scenario,
			run.Shape,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Duration,
			run.Dt,
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
	rows, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	centre := make([][]float64, 3)
	spinNorm := make([]float64, len(rows))
	for i, r := range rows {
		for k, c := range r.Centre.Array() {
			centre[k] = append(centre[k], c)
		}
		spinNorm[i] = r.AngularVelocity.Norm()
	}

	fmt.Printf("%s: %s (%s, %d points)\n\n", meta.ID, meta.Scenario, meta.Shape, meta.Points)
	fmt.Println(viz.PlotMany(centre, "centre of mass x (red), y (green), z (blue)", 10, 80))
	fmt.Println()
	fmt.Println(viz.Plot(spinNorm, "|angular velocity|", 8, 80))

	_, snaps, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(snaps) > 0 {
		fmt.Println("\nfinal point cloud:")
		fmt.Print(viz.Frame(snaps[len(snaps)-1], 40, 16))
	}

	if svgPrefix == "" {
		return nil
	}
	if len(snaps) > 0 {
		c := viz.NewCanvas(80, 40)
		cam := viz.NewCamera()
		cam.Fit(snaps[len(snaps)-1])
		viz.DrawCloud(c, snaps[len(snaps)-1], cam)
		if err := os.WriteFile(svgPrefix+"_cloud.svg", []byte(viz.CanvasSVG(c, 4, "#00ff00")), 0644); err != nil {
			return err
		}
	}
	if path := viz.PathSVG(centre[0], centre[1], 600, 600, "#00ffff"); path != "" {
		if err := os.WriteFile(svgPrefix+"_path.svg", []byte(path), 0644); err != nil {
			return err
		}
	}
	logger.Info("svg written", zap.String("prefix", svgPrefix))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(rows) < 4 {
		return fmt.Errorf("need at least 4 samples, got %d", len(rows))
	}

	states := make([]body.State, len(rows))
	spinNorm := make([]float64, len(rows))
	speed := make([]float64, len(rows))
	for i, r := range rows {
		states[i] = body.State{Angle: r.Angle, AngularVelocity: r.AngularVelocity, Velocity: r.Velocity}
		spinNorm[i] = r.AngularVelocity.Norm()
		speed[i] = r.Velocity.Norm()
	}

	fmt.Printf("%s: %s\n\n", meta.ID, meta.Scenario)
	for _, sig := range []struct {
		name string
		data []float64
	}{
		{"angular speed", spinNorm},
		{"linear speed", speed},
	} {
		f, mag := analysis.DominantFrequency(sig.data, meta.Dt)
		fmt.Printf("%-14s dominant %.4f Hz (magnitude %.4g)\n", sig.name, f, mag)
	}

	fmt.Println()
	fmt.Println(viz.Plot(analysis.PowerSpectrum(spinNorm), "power spectrum (angular speed)", 10, 80))

	pts, err := analysis.Phase(states, phaseAxis)
	if err != nil {
		return err
	}
	fmt.Printf("\nphase portrait, axis %d (angle → angular velocity ↑):\n", phaseAxis)
	fmt.Print(analysis.PhaseASCII(pts, 60, 20))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	dt, snaps, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	tr := export.Trace(dt, snaps)
	if outFile != "" {
		return export.WriteFile(outFile, tr)
	}
	return export.Write(os.Stdout, tr)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rows, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write(storage.StatesHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{strconv.FormatFloat(r.Time, 'f', 6, 64)}
		for _, v := range []linalg.Vec3{r.Centre, r.Velocity, r.Angle, r.AngularVelocity} {
			for _, c := range v.Array() {
				rec = append(rec, strconv.FormatFloat(c, 'f', 6, 64))
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSHAPE\tMASS\tDURATION\tDESCRIPTION")
		for _, name := range config.ListPresets() {
			p := config.Presets[name]
			fmt.Fprintf(w, "%s\t%s\t%g\t%gs\t%s\n", name, p.Shape.Kind, p.Mass, p.Duration, p.Description)
		}
		return w.Flush()
	}

	p := config.GetPreset(args[0])
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	if outFile != "" {
		if err := config.Save(outFile, p); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}
	return config.Write(os.Stdout, p)
}

func runLive(cmd *cobra.Command, args []string) error {
	var m viz.Player
	if replayRun != "" {
		var err error
		m, err = replayModel(replayRun)
		if err != nil {
			return err
		}
	} else {
		sc, err := loadScenario(cmd)
		if err != nil {
			return err
		}
		st0, loads, err := sc.Build()
		if err != nil {
			return err
		}
		m = viz.NewLive(sc.Name, body.New(body.WithTerms(sc.Terms)), st0, loads, sc.Dt(), sc.Steps)
	}
	if themeName != "" {
		m = m.WithTheme(themeName)
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if p, ok := final.(viz.Player); ok && p.Err() != nil {
		return p.Err()
	}
	return nil
}

// replayModel rebuilds the stored states of a run, pairing each state row
// after the first with the snapshot taken at that step.
func replayModel(runID string) (viz.Player, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return viz.Player{}, err
	}
	rows, err := st.LoadStates(runID)
	if err != nil {
		return viz.Player{}, err
	}
	_, snaps, err := st.LoadTrace(runID)
	if err != nil {
		return viz.Player{}, err
	}
	if len(snaps) == 0 || len(rows) != len(snaps)+1 {
		return viz.Player{}, fmt.Errorf("run %s: %d states and %d snapshots do not line up", runID, len(rows), len(snaps))
	}

	states := make([]body.State, len(snaps))
	times := make([]float64, len(snaps))
	for i, snap := range snaps {
		r := rows[i+1]
		states[i] = body.State{
			Cloud:           snap,
			Mass:            meta.Mass,
			Centre:          r.Centre,
			Velocity:        r.Velocity,
			Angle:           r.Angle,
			AngularVelocity: r.AngularVelocity,
		}
		times[i] = r.Time
	}
	return viz.NewReplay(meta.Scenario, states, times), nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	scenarios := make([]*config.Scenario, len(names))
	jobs := make([]sim.Job, len(names))
	for i, name := range names {
		sc := config.GetPreset(name)
		if sc == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		st0, loads, err := sc.Build()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		scenarios[i] = sc
		jobs[i] = sim.Job{Name: name, State: st0, Loads: loads, Config: simConfig(sc), Terms: sc.Terms}
	}

	start := time.Now()
	results, err := sim.NewBatch(logger, parallel).Run(cmd.Context(), jobs)
	if err != nil {
		return err
	}
	logger.Info("batch finished", zap.Int("runs", len(results)), zap.Duration("elapsed", time.Since(start)))

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTEPS\tENERGY\tDRIFT\tDISPLACEMENT\tPEAK SPIN\tRUN ID")
	for i, res := range results {
		runID := "-"
		if st != nil {
			if runID, err = st.Save(scenarios[i], res); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%s\n",
			names[i],
			res.StepsTaken,
			res.Metrics["energy"],
			res.Metrics["energy_drift"],
			res.Metrics["displacement"],
			res.Metrics["peak_spin"],
			runID,
		)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(sweepArgs))
	ranges := make([][]float64, 0, len(sweepArgs))
	for _, arg := range sweepArgs {
		name, vals, err := optim.ParseParam(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	grid, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	build := func(params map[string]float64) (sim.Job, error) {
		sc := base.Clone()
		for name, v := range params {
			if err := sc.SetParam(name, v); err != nil {
				return sim.Job{}, err
			}
		}
		st0, loads, err := sc.Build()
		if err != nil {
			return sim.Job{}, err
		}
		return sim.Job{Name: fmt.Sprint(params), State: st0, Loads: loads, Config: simConfig(sc), Terms: sc.Terms}, nil
	}

	trials, best, err := grid.Search(cmd.Context(), sim.NewBatch(logger, parallel), build, metricName)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(metricName)+"\t")
	for i, tr := range trials {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", tr.Params[name])
		}
		mark := ""
		if i == best {
			mark = "*"
		}
		fmt.Fprintf(w, "%.6g\t%s\n", tr.Value, mark)
	}
	return w.Flush()
}

func matrixOp(cmd *cobra.Command, args []string) error {
	op, path := args[0], args[1]

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	var in export.MatrixJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	m, err := in.ParseMatrix()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("matrix loaded", zap.String("op", op), zap.Int("rows", m.Rows()), zap.Int("cols", m.Cols()))

	switch op {
	case "det", "inverse", "cofactor":
		if !m.IsSquare() {
			return fmt.Errorf("%s of a %dx%d matrix: %w", op, m.Rows(), m.Cols(), linalg.ErrDimensionMismatch)
		}
	}

	switch op {
	case "det":
		return export.Write(os.Stdout, map[string]float64{"det": linalg.Determinant(m)})
	case "inverse":
		inv, err := linalg.Inverse(m)
		if err != nil {
			return err
		}
		return export.Write(os.Stdout, export.Matrix(inv))
	case "cofactor":
		com, err := linalg.Cofactor(m)
		if err != nil {
			return err
		}
		return export.Write(os.Stdout, export.Matrix(com))
	case "transpose":
		return export.Write(os.Stdout, export.Matrix(linalg.Transpose(m)))
	default:
		return fmt.Errorf("unknown operation %q (det, inverse, cofactor, transpose)", op)
	}
}

func stepOnce(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	st0, loads, err := sc.Build()
	if err != nil {
		return err
	}

	next, err := body.New(body.WithTerms(sc.Terms)).Step(st0, loads, sc.Dt())
	if err != nil {
		return err
	}

	theme := viz.GetTheme(themeName)
	fmt.Printf("%s after one step of %gs\n\n", sc.Name, sc.Dt())
	fmt.Println(viz.RenderVector("centre", next.Centre, theme))
	fmt.Println(viz.RenderVector("velocity", next.Velocity, theme))
	fmt.Println(viz.RenderVector("angle", next.Angle, theme))
	fmt.Println(viz.RenderVector("spin", next.AngularVelocity, theme))
	fmt.Println(viz.RenderMatrix("inertia", next.Inertia, theme))
	return nil
}
