package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/motorlab/internal/config"
	"github.com/san-kum/motorlab/internal/engine"
	"github.com/san-kum/motorlab/internal/metrics"
	"github.com/san-kum/motorlab/internal/motor"
	"github.com/san-kum/motorlab/internal/storage"
	"github.com/san-kum/motorlab/internal/viz"
)

var (
	dataDir    string
	wcc        float64
	wcs        float64
	refRPM     float64
	dt         float64
	horizon    float64
	refHold    float64
	satFactor  float64
	dampingDiv float64
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "motorlab",
		Short: "PMDC motor cascaded PI control simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".motorlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&wcc, "wcc", config.DefaultCurrentBandwidth, "current-loop bandwidth (rad/s)")
	cmd.Flags().Float64Var(&wcs, "wcs", config.DefaultSpeedBandwidth, "speed-loop bandwidth (rad/s)")
	cmd.Flags().Float64Var(&refRPM, "rpm", config.DefaultReferenceRPM, "reference speed (RPM)")
	cmd.Flags().Float64Var(&dt, "dt", engine.DefaultDt, "integration step (s)")
	cmd.Flags().Float64Var(&horizon, "time", engine.DefaultHorizon, "simulated duration (s)")
	cmd.Flags().Float64Var(&refHold, "hold", engine.DefaultRefHold, "reference hold time (s)")
	cmd.Flags().Float64Var(&satFactor, "sat", engine.DefaultSatFactor, "saturation multiplier")
	cmd.Flags().Float64Var(&dampingDiv, "damping-div", engine.DefaultDampingDiv, "speed-loop damping divisor")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig applies preset, config file and CLI flags in increasing
// precedence and returns the run setup.
func resolveConfig(cmd *cobra.Command) (engine.Inputs, engine.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return engine.Inputs{}, engine.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return engine.Inputs{}, engine.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
	}

	if cmd.Flags().Changed("wcc") {
		cfg.CurrentBandwidth = wcc
	}
	if cmd.Flags().Changed("wcs") {
		cfg.SpeedBandwidth = wcs
	}
	if cmd.Flags().Changed("rpm") {
		cfg.ReferenceRPM = refRPM
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Horizon = horizon
	}
	if cmd.Flags().Changed("hold") {
		cfg.RefHold = refHold
	}
	if cmd.Flags().Changed("sat") {
		cfg.SatFactor = satFactor
	}
	if cmd.Flags().Changed("damping-div") {
		cfg.DampingDiv = dampingDiv
	}

	return cfg.Inputs(), cfg.EngineConfig(), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	in, engCfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	params := motor.Default()
	eng := engine.New(params, engCfg)
	eng.AddMetric(metrics.NewOvershoot())
	eng.AddMetric(metrics.NewSettlingTime(0.02))
	eng.AddMetric(metrics.NewSaturationDuty(engCfg.SatFactor*params.RatedVoltage, params.RatedCurrent))
	eng.AddMetric(metrics.NewControlEffort())

	fmt.Printf("running: wcc=%g rad/s, wcs=%g rad/s, ref=%g RPM\n", in.CurrentBandwidth, in.SpeedBandwidth, in.ReferenceRPM)
	start := time.Now()

	res, err := eng.Run(context.Background(), in)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	if !res.Trace.IsValid() {
		fmt.Println("warning: trace contains non-finite values (integration diverged)")
	}

	runID, err := st.Save(in, engCfg, res)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", res.Trace.Len())
	fmt.Println("\nmetrics:")
	for name, val := range res.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
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
	fmt.Fprintln(w, "ID\tTIME\tWCC\tWCS\tREF_RPM\tDT\tHORIZON")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.0f\t%.0f\t%.6fs\t%.2fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.CurrentBandwidth,
			run.SpeedBandwidth,
			run.ReferenceRPM,
			run.Dt,
			run.Horizon,
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

	tr, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("wcc=%g rad/s, wcs=%g rad/s, ref=%g RPM\n", meta.CurrentBandwidth, meta.SpeedBandwidth, meta.ReferenceRPM)
	fmt.Printf("samples: %d\n\n", tr.Len())

	speed := asciigraph.PlotMany([][]float64{tr.RefRPM, tr.SpeedRPM},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.Caption("speed vs reference (RPM)"),
	)
	fmt.Println(speed)
	fmt.Println()

	voltage := asciigraph.Plot(tr.Voltage,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("terminal voltage (x100 V)"),
	)
	fmt.Println(voltage)
	fmt.Println()

	torque := asciigraph.Plot(tr.Torque,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("electromagnetic torque (x1e6 Nm)"),
	)
	fmt.Println(torque)

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
	st := storage.New(dataDir)
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	if tr.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "speed_rpm", "ref_rpm", "voltage", "torque"}); err != nil {
		return err
	}

	for i := 0; i < tr.Len(); i++ {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'f', 6, 64),
			strconv.FormatFloat(tr.SpeedRPM[i], 'f', 6, 64),
			strconv.FormatFloat(tr.RefRPM[i], 'f', 6, 64),
			strconv.FormatFloat(tr.Voltage[i], 'f', 6, 64),
			strconv.FormatFloat(tr.Torque[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, tr)
}

func runLive(cmd *cobra.Command, args []string) error {
	in, engCfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(motor.Default(), engCfg, in)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
