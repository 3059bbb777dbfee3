package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/circlesim/internal/config"
	"github.com/san-kum/circlesim/internal/frames"
	"github.com/san-kum/circlesim/internal/sim"
	"github.com/san-kum/circlesim/internal/stats"
	"github.com/san-kum/circlesim/internal/storage"
	"github.com/san-kum/circlesim/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	numCircles int
	iterations int
	workers    int
	seed       int64
	configFile string
	preset     string
	framesDir  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "circlesim",
		Short: "parallel circle relaxation simulator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".circlesim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&framesDir, "frames", "", "dump per-iteration gnuplot frames into this directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

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

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run's iteration series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&numCircles, "circles", "n", config.DefaultN, "number of circles")
	cmd.Flags().IntVarP(&iterations, "iterations", "i", config.DefaultIterations, "number of iterations")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of workers (0 = one per CPU)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = wall clock)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named preset")
}

func buildLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// resolveConfig layers preset, config file and explicit flags, in that
// order of increasing precedence, then fills runtime defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("circles") {
		cfg.N = numCircles
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = iterations
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := buildLogger()
	defer log.Sync()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(cfg.SimConfig())
	runner.SetOutput(os.Stdout)
	runner.SetLogger(log)

	if framesDir != "" {
		fw, err := frames.NewWriter(framesDir, cfg.SimConfig().Field, log)
		if err != nil {
			return err
		}
		runner.AddObserver(fw)
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg.SimConfig(), result)
	if err != nil {
		return err
	}
	log.Info("run stored", zap.String("run_id", runID))

	summary := stats.Summarize(result)
	fmt.Printf("\nrun id: %s\n\n", runID)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "iterations\t%d\n", summary.Iterations)
	fmt.Fprintf(w, "mean iter time\t%.6f s (±%.6f)\n", summary.MeanIterSec, summary.StdDevIterSec)
	fmt.Fprintf(w, "iter time range\t%.6f .. %.6f s\n", summary.MinIterSec, summary.MaxIterSec)
	fmt.Fprintf(w, "overlaps\t%d → %d (min %d, max %d)\n",
		summary.FirstOverlaps, summary.FinalOverlaps, summary.MinOverlaps, summary.MaxOverlaps)
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(cfg.SimConfig()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCIRCLES\tITERS\tWORKERS\tOVERLAPS\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%.3fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N,
			run.Iterations,
			run.Workers,
			run.TotalOverlaps,
			run.ElapsedSec,
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
	recs, err := st.LoadIterations(runID)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("circles: %d, workers: %d\n\n", meta.N, meta.Workers)
	fmt.Println(viz.OverlapsPlot(recs, 80, 10))
	fmt.Println()
	fmt.Println(viz.TimesPlot(recs, 80, 10))
	return nil
}
