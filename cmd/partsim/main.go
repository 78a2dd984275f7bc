package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/partsim/internal/analysis"
	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/scenario"
	"github.com/san-kum/partsim/internal/storage"
	"github.com/san-kum/partsim/internal/vecmath"
	"github.com/san-kum/partsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	integrator string
	configFile string
	presetName string
	themeName  string
)

// main is the entry point for the partsim CLI; it registers commands and
// flags and executes the root command, exiting with status 1 if command
// execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "partsim",
		Short: "particle physics simulation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".partsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario to completion and store the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (overrides scenario default)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration (overrides scenario default)")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario YAML file path")
	runCmd.Flags().StringVar(&presetName, "preset", "", "use a built-in preset scenario")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (overrides scenario default)")
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario YAML file path")
	liveCmd.Flags().StringVar(&themeName, "theme", "cyberpunk", "live view color theme (cyberpunk, retro, minimal, ocean, sunset)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [particle]",
		Short: "plot a particle's recorded trajectory",
		Args:  cobra.ExactArgs(2),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print a run's recorded trajectory CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id] [particle] [axis]",
		Short: "frequency analysis of one particle's coordinate",
		Args:  cobra.ExactArgs(3),
		RunE:  analyzeRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [integrator1] [integrator2] ...",
		Short: "time a scenario once per integrator label (motion always uses velocity Verlet)",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", 0, "duration")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in preset scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0)
			for name := range config.Presets() {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, analyzeCmd, compareCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadScenarioConfig(name string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	preset := presetName
	if preset == "" {
		preset = name
	}
	cfg, ok := config.Presets()[preset]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (no --config given and no matching preset)", name)
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config, cmd *cobra.Command) {
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
}

func particleNames(built *scenario.Built) []string {
	names := make([]string, len(built.World.Particles()))
	for i, p := range built.World.Particles() {
		names[i] = p.Name
	}
	return names
}

func runScenario(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg, err := loadScenarioConfig(name)
	if err != nil {
		return err
	}
	applyOverrides(cfg, cmd)

	built, err := scenario.Build(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s...\n", name)
	start := time.Now()

	result, err := built.World.Run(context.Background(), dynamo.Config{
		Dt:            vecmath.Real(cfg.Dt),
		Duration:      vecmath.Real(cfg.Duration),
		Seed:          seed,
		ValidateState: true,
	})
	if err != nil && result == nil {
		return err
	}
	elapsed := time.Since(start)

	names := particleNames(built)
	runID, err := st.Save(name, cfg.Integrator, cfg.Dt, cfg.Duration, seed, names, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	if len(result.Errors) > 0 {
		fmt.Printf("errors: %v\n", result.Errors)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg, err := loadScenarioConfig(name)
	if err != nil {
		return err
	}
	applyOverrides(cfg, cmd)

	built, err := scenario.Build(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(built.World, particleNames(built), vecmath.Real(cfg.Dt), name, themeName)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tINTEG\tSTEPS")
	for _, id := range runs {
		meta, err := st.Load(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%d\n",
			meta.ID, meta.Scenario, meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Duration, meta.Dt, meta.Integrator, meta.StepsTaken)
	}
	return w.Flush()
}

func readTrajectoryColumn(runID, particle, axis string) ([]float64, []float64, error) {
	path := fmt.Sprintf("%s/%s/states.csv", dataDir, runID)
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, nil, err
	}

	col := -1
	for i, h := range header {
		if h == particle+"_"+axis {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, nil, fmt.Errorf("no column %s_%s in run %s", particle, axis, runID)
	}

	var times, values []float64
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		t, _ := strconv.ParseFloat(row[0], 64)
		v, _ := strconv.ParseFloat(row[col], 64)
		times = append(times, t)
		values = append(values, v)
	}
	return times, values, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID, particleName := args[0], args[1]
	_, xs, err := readTrajectoryColumn(runID, particleName, "x")
	if err != nil {
		return err
	}
	_, ys, err := readTrajectoryColumn(runID, particleName, "y")
	if err != nil {
		return err
	}

	fmt.Println(asciigraph.Plot(xs, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(particleName+" x(t)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(ys, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(particleName+" y(t)")))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	path := fmt.Sprintf("%s/%s/states.csv", dataDir, args[0])
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID, particleName, axis := args[0], args[1], args[2]
	_, data, err := readTrajectoryColumn(runID, particleName, axis)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}

	ps := analysis.PowerSpectrum(data)
	fmt.Println(asciigraph.Plot(ps, asciigraph.Height(15), asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s_%s)", particleName, axis))))

	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower, maxIdx = ps[i], i
		}
	}
	fmt.Printf("dominant bin: %d (magnitude %.3f)\n", maxIdx, maxPower)
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	name := args[0]
	integrators := args[1:]

	cfg, err := loadScenarioConfig(name)
	if err != nil {
		return err
	}
	applyOverrides(cfg, cmd)

	fmt.Printf("comparing integrators for %s (dt=%.4f, duration=%.1fs)\n\n", name, cfg.Dt, cfg.Duration)
	fmt.Printf("%-12s  %-12s  %-12s\n", "integrator", "steps", "time_ms")
	fmt.Println(strings.Repeat("-", 40))

	for _, intName := range integrators {
		runCfg := *cfg
		runCfg.Integrator = intName
		built, err := scenario.Build(&runCfg)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", intName, err)
			continue
		}

		start := time.Now()
		result, err := built.World.Run(context.Background(), dynamo.Config{
			Dt: vecmath.Real(runCfg.Dt), Duration: vecmath.Real(runCfg.Duration), ValidateState: true,
		})
		elapsed := time.Since(start)
		if err != nil && result == nil {
			fmt.Printf("%-12s  error: %v\n", intName, err)
			continue
		}

		fmt.Printf("%-12s  %12d  %12.2f\n", intName, result.StepsTaken, float64(elapsed.Microseconds())/1000)
	}
	return nil
}
