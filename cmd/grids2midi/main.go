// Package main is the entry point for the grids2midi CLI
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/james-see/grids2midi/pkg/analysis"
	"github.com/james-see/grids2midi/pkg/api"
	"github.com/james-see/grids2midi/pkg/audio"
	"github.com/james-see/grids2midi/pkg/config"
	"github.com/james-see/grids2midi/pkg/converter"
	"github.com/james-see/grids2midi/pkg/converter/devices"
	"github.com/james-see/grids2midi/pkg/cvscript"
	"github.com/james-see/grids2midi/pkg/engine"
	"github.com/james-see/grids2midi/pkg/logging"
	"github.com/james-see/grids2midi/pkg/oscillator"
	"github.com/james-see/grids2midi/pkg/pattern"
	"github.com/james-see/grids2midi/pkg/store"
	"github.com/james-see/grids2midi/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	deviceName string

	outputFile string
	bars       int
	seconds    float64
	numSamples int
	storePath  string
	serverPort int
)

var logger = slog.Default()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "grids2midi",
	Short: "Topographic drum sequencer with MIDI export",
	Long: `grids2midi runs the Grids topographic drum pattern generator and its
companion oscillators, and exports the result as drum MIDI files.

Examples:
  grids2midi render -c patch.yaml -o groove.mid
  grids2midi euclid 16 12
  grids2midi osc render -o tone.wav --seconds 2
  grids2midi settings save -c patch.toml
  grids2midi script wobble.lua
  grids2midi tui
  grids2midi serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logLevel, logFormat, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
	SilenceUsage: true,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Run a patch and print the resulting pattern",
	Long:  `Runs the patch for --bars bars and prints the grid. With -o the pattern is also written as .mid or .seq.`,
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

var euclidCmd = &cobra.Command{
	Use:   "euclid <length> <density>",
	Short: "Print a euclidean pattern",
	Args:  cobra.ExactArgs(2),
	RunE:  runEuclid,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the sequencer in real time and print the steps",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

var oscCmd = &cobra.Command{
	Use:   "osc",
	Short: "Render, play or analyze the patch oscillator",
}

var oscRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the oscillator to a WAV file",
	Args:  cobra.NoArgs,
	RunE:  runOscRender,
}

var oscPlayCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the oscillator on the default audio device",
	Args:  cobra.NoArgs,
	RunE:  runOscPlay,
}

var oscAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Measure the oscillator fundamental and levels",
	Args:  cobra.NoArgs,
	RunE:  runOscAnalyze,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage the persisted generator settings",
}

var settingsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Store the patch settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsSave,
}

var settingsLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Show the stored settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsLoad,
}

var settingsSyxCmd = &cobra.Command{
	Use:   "syx",
	Short: "Export the stored settings as a SysEx dump",
	Args:  cobra.NoArgs,
	RunE:  runSettingsSyx,
}

var scriptCmd = &cobra.Command{
	Use:   "script <file.lua>",
	Short: "Render the patch with Lua modulation",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

var importCmd = &cobra.Command{
	Use:   "import <input>",
	Short: "Print the grid of a drum MIDI or .seq file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Auto-detect and convert between formats",
	Long:  `Automatically detects input format and converts to the output format based on file extension.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "Patch file (.yaml, .yml or .toml)")
	pf.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	pf.StringVarP(&deviceName, "device", "d", "", "Note map ("+strings.Join(devices.IDs(), ", ")+"); defaults to the patch notes")

	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid or .seq file")
	renderCmd.Flags().IntVarP(&bars, "bars", "b", 0, "Number of bars (overrides the patch)")

	scriptCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid or .seq file")
	scriptCmd.Flags().IntVarP(&bars, "bars", "b", 0, "Number of bars (overrides the patch)")

	oscRenderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .wav file (required)")
	_ = oscRenderCmd.MarkFlagRequired("output")
	oscRenderCmd.Flags().Float64Var(&seconds, "seconds", 1, "Duration in seconds")
	oscPlayCmd.Flags().Float64Var(&seconds, "seconds", 2, "Duration in seconds")
	oscAnalyzeCmd.Flags().IntVar(&numSamples, "samples", 8192, "Number of samples to analyze")
	oscCmd.AddCommand(oscRenderCmd, oscPlayCmd, oscAnalyzeCmd)

	settingsCmd.PersistentFlags().StringVarP(&storePath, "store", "s", "grids.bin", "Settings image file")
	settingsSyxCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .syx file (required)")
	_ = settingsSyxCmd.MarkFlagRequired("output")
	settingsCmd.AddCommand(settingsSaveCmd, settingsLoadCmd, settingsSyxCmd)

	playCmd.Flags().StringVarP(&storePath, "store", "s", "", "Settings image to boot from")

	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (required)")
	_ = convertCmd.MarkFlagRequired("output")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(renderCmd, euclidCmd, playCmd, oscCmd, settingsCmd,
		scriptCmd, importCmd, convertCmd, tuiCmd, serveCmd)
}

func loadPatch() (*config.Patch, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	p, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("patch loaded", "path", configFile, "name", p.Name, "bpm", p.BPM, "mode", p.Mode)
	return p, nil
}

func getDevice(p *config.Patch) (converter.NoteMap, error) {
	if deviceName == "" {
		return p.NoteMap(), nil
	}
	m, err := devices.Lookup(deviceName)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// writePattern writes p to outputFile when it is set.
func writePattern(p *converter.Pattern, notes converter.NoteMap) error {
	if outputFile == "" {
		return nil
	}
	var err error
	switch converter.DetectFormat(outputFile) {
	case converter.FormatMIDI:
		err = converter.NewMIDIConverter().WriteMIDIFile(p, notes, outputFile)
	case converter.FormatSeq:
		err = converter.NewSeqConverter().WriteSeqFile(p, outputFile)
	default:
		return fmt.Errorf("unsupported output format: %s", filepath.Ext(outputFile))
	}
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d bars to %s\n", p.Bars(), outputFile)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	patch, err := loadPatch()
	if err != nil {
		return err
	}
	if bars > 0 {
		patch.Bars = bars
		if err := patch.Validate(); err != nil {
			return err
		}
	}
	notes, err := getDevice(patch)
	if err != nil {
		return err
	}

	p := patch.Render(engine.WithLogger(logger))
	if err := printPattern(os.Stdout, p, isTerminal(os.Stdout)); err != nil {
		return err
	}
	return writePattern(p, notes)
}

func parseByte(s, name string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be 0-255", name, s)
	}
	return uint8(v), nil
}

func runEuclid(cmd *cobra.Command, args []string) error {
	length, err := parseByte(args[0], "length")
	if err != nil {
		return err
	}
	density, err := parseByte(args[1], "density")
	if err != nil {
		return err
	}
	if length < 1 || length > pattern.StepsPerPattern {
		return fmt.Errorf("length must be in 1..%d", pattern.StepsPerPattern)
	}
	if density > 31 {
		return fmt.Errorf("density must be in 0..31")
	}
	fmt.Println(euclideanLine(length, density))
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	patch, err := loadPatch()
	if err != nil {
		return err
	}
	opts := []engine.Option{engine.WithLogger(logger)}
	var img *store.Image
	if storePath != "" {
		fs := store.FileStore{Path: storePath}
		loaded, err := fs.Load()
		if err != nil {
			return err
		}
		img = &loaded
		opts = append(opts, engine.WithSettingsSaver(fs.Saver()))
	}
	e := patch.Engine(opts...)
	if img != nil {
		img.Apply(e.Generator())
		e.SetClockResolution(e.Generator().ClockResolution())
		logger.Info("settings loaded", "path", storePath, "power_on", img.PowerOnCount,
			"factory_testing", e.Generator().FactoryTesting())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	color := isTerminal(os.Stdout)
	fmt.Printf("Playing at %d BPM, ctrl+c to stop\n", e.Clock().BPM())
	err = e.Run(ctx, func(r engine.StepRecord) {
		g := e.Generator()
		accents := g.OutputMode() == pattern.OutputModeDrums && !g.OutputClock()
		fmt.Println(stepLine(r, accents, color))
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func patchVoice() (*oscillator.DigitalOscillator, error) {
	patch, err := loadPatch()
	if err != nil {
		return nil, err
	}
	return patch.Voice()
}

func runOscRender(cmd *cobra.Command, args []string) error {
	osc, err := patchVoice()
	if err != nil {
		return err
	}
	data, err := audio.RenderWAV(osc, seconds)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return err
	}
	fmt.Printf("Rendered %.2fs of %s to %s\n", seconds, osc.Shape(), outputFile)
	return nil
}

func runOscPlay(cmd *cobra.Command, args []string) error {
	osc, err := patchVoice()
	if err != nil {
		return err
	}
	n := int(seconds * oscillator.SampleRate)
	player, err := audio.NewPlayer(audio.NewStreamer(osc, n))
	if err != nil {
		return err
	}
	defer player.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	player.Start()
	deadline := time.After(time.Duration(seconds*float64(time.Second)) + 200*time.Millisecond)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for player.Playing() {
		select {
		case <-ctx.Done():
			return nil
		case <-deadline:
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

func runOscAnalyze(cmd *cobra.Command, args []string) error {
	osc, err := patchVoice()
	if err != nil {
		return err
	}
	samples := audio.Capture(osc, numSamples)
	peak, rms := analysis.Levels(samples)
	fmt.Printf("Shape:       %s\n", osc.Shape())
	fmt.Printf("Note:        %d\n", osc.Note())
	fmt.Printf("Fundamental: %.2f Hz\n", analysis.Fundamental(samples, oscillator.SampleRate))
	fmt.Printf("Peak:        %.3f\n", peak)
	fmt.Printf("RMS:         %.3f\n", rms)
	return nil
}

func runSettingsSave(cmd *cobra.Command, args []string) error {
	patch, err := loadPatch()
	if err != nil {
		return err
	}
	fs := store.FileStore{Path: storePath}
	img := store.Capture(patch.Engine(engine.WithLogger(logger)).Generator())
	// Keep the boot count of an existing image.
	if prev, err := fs.Load(); err == nil {
		img.PowerOnCount = prev.PowerOnCount
	}
	if err := fs.Save(img); err != nil {
		return err
	}
	fmt.Printf("Saved settings to %s\n", storePath)
	return nil
}

func runSettingsLoad(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(storePath)
	if err != nil {
		return err
	}
	img, err := store.Decode(data)
	if err != nil {
		return err
	}
	printImage(os.Stdout, img)
	return nil
}

func runSettingsSyx(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(storePath)
	if err != nil {
		return err
	}
	img, err := store.Decode(data)
	if err != nil {
		return err
	}
	if err := converter.NewSyxConverter().WriteSyxFile(img, outputFile); err != nil {
		return err
	}
	fmt.Printf("Converted %s -> %s\n", storePath, outputFile)
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	patch, err := loadPatch()
	if err != nil {
		return err
	}
	if bars > 0 {
		patch.Bars = bars
		if err := patch.Validate(); err != nil {
			return err
		}
	}
	notes, err := getDevice(patch)
	if err != nil {
		return err
	}
	script, err := cvscript.LoadFile(args[0])
	if err != nil {
		return err
	}
	defer script.Close()

	e := patch.Engine(engine.WithLogger(logger))
	records, err := script.Render(e, patch.Bars*pattern.StepsPerPattern)
	if err != nil {
		return err
	}
	g := e.Generator()
	accents := g.OutputMode() == pattern.OutputModeDrums && !g.OutputClock()
	p := converter.FromRecords(patch.Name, float64(e.Clock().BPM()), records, accents)
	if err := printPattern(os.Stdout, p, isTerminal(os.Stdout)); err != nil {
		return err
	}
	return writePattern(p, notes)
}

func runImport(cmd *cobra.Command, args []string) error {
	input := args[0]
	var (
		p   *converter.Pattern
		err error
	)
	switch converter.DetectFormat(input) {
	case converter.FormatSeq:
		p, err = converter.NewSeqConverter().ParseSeqFile(input)
	default:
		var patch *config.Patch
		if patch, err = loadPatch(); err != nil {
			return err
		}
		var notes converter.NoteMap
		if notes, err = getDevice(patch); err != nil {
			return err
		}
		p, err = converter.NewMIDIConverter().ParseMIDIFile(input, notes)
	}
	if err != nil {
		return err
	}
	return printPattern(os.Stdout, p, isTerminal(os.Stdout))
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	patch, err := loadPatch()
	if err != nil {
		return err
	}
	notes, err := getDevice(patch)
	if err != nil {
		return err
	}
	conv := converter.New(notes)

	fmt.Printf("Converting %s -> %s\n", input, outputFile)
	if err := conv.ConvertFile(input, outputFile); err != nil {
		return err
	}
	fmt.Println("Conversion complete!")
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	patch, err := loadPatch()
	if err != nil {
		return err
	}
	// The alternate screen owns stdout and stderr.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return tui.Run(patch, engine.WithLogger(quiet))
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Info("starting API server", "port", serverPort)
	return api.StartServer(serverPort)
}
