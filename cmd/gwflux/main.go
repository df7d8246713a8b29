package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gwflux/internal/config"
	"github.com/san-kum/gwflux/internal/gwosc"
	"github.com/san-kum/gwflux/internal/pipeline"
	"github.com/san-kum/gwflux/internal/report"
	"github.com/san-kum/gwflux/internal/spectral"
	"github.com/san-kum/gwflux/internal/storage"
	"github.com/san-kum/gwflux/internal/tui"
)

var (
	dataDir string
	// Analysis segment and window
	startTime  float64
	endTime    float64
	windowSize float64
	windowStep float64
	// Physical model
	mass    float64
	carrier float64
	// Preprocessing
	bandLow  float64
	bandHigh float64
	detrend  bool
	whiten   bool
	// Config file / preset
	configFile string
	preset     string
)

// main registers all commands and executes the root command; invoking
// gwflux with no arguments runs the full pipeline on the default GWOSC
// strain file in the working directory. Exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "gwflux [file]",
		Short: "entropy flux and information force analysis of GW strain data",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPipeline,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gwflux", "data directory")
	addRunFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [file]",
		Short: "run the analysis pipeline",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPipeline,
	}
	addRunFlags(runCmd)

	infoCmd := &cobra.Command{
		Use:   "info [file]",
		Short: "show strain file metadata",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showInfo,
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [file]",
		Short: "frequency analysis of a strain segment",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeSpectrum,
	}
	spectrumCmd.Flags().Float64Var(&startTime, "start", 0, "segment start (s)")
	spectrumCmd.Flags().Float64Var(&endTime, "end", 0, "segment end (s), 0 for full file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a stored run's metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live [file]",
		Short: "browse a strain file interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available analysis presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			if len(names) == 0 {
				fmt.Println("no presets")
				return nil
			}
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, infoCmd, spectrumCmd, listCmd, showCmd, exportCSVCmd, exportJSONCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&startTime, "start", config.DefaultSegmentStart, "segment start (s)")
	cmd.Flags().Float64Var(&endTime, "end", config.DefaultSegmentEnd, "segment end (s)")
	cmd.Flags().Float64Var(&windowSize, "window", config.DefaultWindowSize, "sliding window size (s)")
	cmd.Flags().Float64Var(&windowStep, "step", config.DefaultWindowStep, "sliding window step (s)")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "black hole mass (kg)")
	cmd.Flags().Float64Var(&carrier, "carrier", config.DefaultCarrier, "entropy carrier velocity (m/s)")
	cmd.Flags().Float64Var(&bandLow, "band-low", 0, "band-pass low edge (Hz)")
	cmd.Flags().Float64Var(&bandHigh, "band-high", 0, "band-pass high edge (Hz)")
	cmd.Flags().BoolVar(&detrend, "detrend", false, "remove the sample mean before extraction")
	cmd.Flags().BoolVar(&whiten, "whiten", false, "whiten against the Welch PSD estimate")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	// Config file overrides preset, CLI flags override both.
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("start") {
		cfg.Segment.Start = startTime
	}
	if cmd.Flags().Changed("end") {
		cfg.Segment.End = endTime
	}
	if cmd.Flags().Changed("window") {
		cfg.Window.Size = windowSize
	}
	if cmd.Flags().Changed("step") {
		cfg.Window.Step = windowStep
	}
	if cmd.Flags().Changed("mass") {
		cfg.Source.Mass = mass
	}
	if cmd.Flags().Changed("carrier") {
		cfg.Source.CarrierVelocity = carrier
	}
	if cmd.Flags().Changed("band-low") {
		cfg.Preprocess.BandLow = bandLow
	}
	if cmd.Flags().Changed("band-high") {
		cfg.Preprocess.BandHigh = bandHigh
	}
	if cmd.Flags().Changed("detrend") {
		cfg.Preprocess.Detrend = detrend
	}
	if cmd.Flags().Changed("whiten") {
		cfg.Preprocess.Whiten = whiten
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("loading %s...\n", cfg.Input)
	series, err := gwosc.Load(cfg.Input)
	if err != nil {
		return err
	}

	fmt.Printf("analyzing [%.3fs – %.3fs], window %.0fms step %.0fms...\n",
		cfg.Segment.Start, cfg.Segment.End, cfg.Window.Size*1000, cfg.Window.Step*1000)
	start := time.Now()

	result, err := pipeline.Run(context.Background(), series, cfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}
	if err := report.WriteArtifacts(st.Dir(runID), result); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("windows: %d\n\n", len(result.Times))
	return report.WriteSummary(os.Stdout, result.Summary)
}

func inputPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.DefaultInput
}

func showInfo(cmd *cobra.Command, args []string) error {
	path := inputPath(args)

	series, err := gwosc.Load(path)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "file\t%s\n", path)
	fmt.Fprintf(w, "samples\t%d\n", len(series.Samples))
	fmt.Fprintf(w, "rate\t%.0f Hz\n", series.Rate)
	fmt.Fprintf(w, "gps start\t%.6f\n", series.GPSStart)
	fmt.Fprintf(w, "duration\t%.3f s\n", series.Duration())
	return w.Flush()
}

func analyzeSpectrum(cmd *cobra.Command, args []string) error {
	path := inputPath(args)

	series, err := gwosc.Load(path)
	if err != nil {
		return err
	}

	seg := series
	if endTime > startTime {
		seg, err = series.Segment(startTime, endTime)
		if err != nil {
			return err
		}
	}

	fmt.Printf("frequency analysis: %s\n", path)
	fmt.Printf("samples: %d at %.0f Hz\n\n", len(seg.Samples), seg.Rate)

	amps, freqs := spectral.Amplitude(seg.Samples, seg.Rate)

	// Plot only the band the detector data occupies.
	hi := len(freqs)
	for i, f := range freqs {
		if f > 1000 {
			hi = i
			break
		}
	}

	graph := asciigraph.Plot(decimate(amps[:hi], 80),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("amplitude spectrum (0–1000 Hz)"),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("dominant frequency: %.3f hz\n", spectral.DominantFrequency(seg.Samples, seg.Rate))
	fmt.Printf("spectral entropy: %.4f\n", spectral.Entropy(seg.Samples, seg.Rate))
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
	fmt.Fprintln(w, "ID\tINPUT\tTIME\tSEGMENT\tWINDOW")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f–%.2fs\t%.0fms/%.0fms\n",
			run.ID,
			run.Input,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.SegmentStart,
			run.SegmentEnd,
			run.WindowSize*1000,
			run.WindowStep*1000,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("input: %s\n", meta.Input)
	fmt.Printf("windows: %d\n\n", len(times))

	captions := map[string]string{
		pipeline.SeriesEntropyFlux: "entropy flux (J/K/s)",
		pipeline.SeriesInfoForce:   "information force (N)",
	}

	for _, name := range []string{pipeline.SeriesEntropyFlux, pipeline.SeriesInfoForce} {
		data, ok := series[name]
		if !ok {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(captions[name]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", pipeline.SeriesEntropyFlux, pipeline.SeriesInfoForce}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range times {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, name := range header[1:] {
			row = append(row, strconv.FormatFloat(series[name][i], 'e', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, times, series)
}

func runLive(cmd *cobra.Command, args []string) error {
	path := inputPath(args)

	series, err := gwosc.Load(path)
	if err != nil {
		return err
	}

	return tui.Run(path, series, config.DefaultConfig())
}

// decimate reduces a spectrum to at most width bins, keeping each
// bucket's peak so narrow lines stay visible.
func decimate(x []float64, width int) []float64 {
	if len(x) <= width {
		return x
	}
	out := make([]float64, width)
	bucket := float64(len(x)) / float64(width)
	for i := 0; i < width; i++ {
		lo := int(float64(i) * bucket)
		hi := int(float64(i+1) * bucket)
		if hi > len(x) {
			hi = len(x)
		}
		max := x[lo]
		for _, v := range x[lo:hi] {
			if v > max {
				max = v
			}
		}
		out[i] = max
	}
	return out
}
