package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/classify"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/frames"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/script"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/templates"
	"github.com/san-kum/algoviz/internal/viz"
)

var (
	// Global
	configFile string
	preset     string
	dataDir    string
	logLevel   string
	logFile    string
	// Playback
	speed      float64
	intervalMs int
	theme      string
	language   string
	noConsole  bool
	// Output
	format    string
	encoding  string
	outPath   string
	exportAll bool
	scale     float64
	draw      bool
	svgPath   string
	samples   int
	// Editor
	sourceFile string
)

// main registers the algoviz commands and runs the editor when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "algoviz",
		Short:         "step through algorithm animations in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runEditor,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed multiplier (0.5-3)")
	pf.IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "base frame interval in milliseconds")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.StringVar(&language, "lang", config.DefaultLanguage, "template language")
	pf.BoolVar(&noConsole, "no-console", false, "hide the console panel")

	rootCmd.Flags().StringVar(&sourceFile, "file", "", "open this source file in the editor")

	runCmd := &cobra.Command{
		Use:   "run [category|file|-]",
		Short: "visualize a category, a frames file or source code",
		Args:  cobra.ExactArgs(1),
		RunE:  runVisual,
	}

	playCmd := &cobra.Command{
		Use:   "play [category|file|-]",
		Short: "play an animation on stdout without the TUI",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&draw, "draw", false, "draw each frame's canvas")

	classifyCmd := &cobra.Command{
		Use:   "classify [file|-]",
		Short: "show which animation a piece of source code maps to",
		Args:  cobra.MaximumNArgs(1),
		RunE:  classifySource,
	}

	complexityCmd := &cobra.Command{
		Use:   "complexity [file|-]",
		Short: "estimate time and space complexity",
		Args:  cobra.MaximumNArgs(1),
		RunE:  estimateComplexity,
	}
	complexityCmd.Flags().IntVar(&samples, "n", 32, "input sizes to plot")
	complexityCmd.Flags().StringVar(&svgPath, "svg", "", "also write the growth curve as svg")

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "list animation categories",
		RunE:  listCategories,
	}

	framesCmd := &cobra.Command{
		Use:   "frames [category|file|-]",
		Short: "print the frames of an animation",
		Args:  cobra.ExactArgs(1),
		RunE:  printFrames,
	}
	framesCmd.Flags().StringVar(&encoding, "format", "", "encode as json or yaml instead of a listing")

	templatesCmd := &cobra.Command{
		Use:   "templates [lang]",
		Short: "list code templates",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listTemplates,
	}

	templateCmd := &cobra.Command{
		Use:   "template [lang] [name]",
		Short: "print a code template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := templates.Get(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Print(src)
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [category|file|-]",
		Short: "export an animation as json, yaml, svg or gif",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportFrames,
	}
	exportCmd.Flags().StringVar(&format, "format", "svg", "output format (json, yaml, svg, gif)")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, or directory with --all")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "export every category")
	exportCmd.Flags().Float64Var(&scale, "scale", export.DefaultOptions().Scale, "svg pixel scale")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "replay a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	forgetCmd := &cobra.Command{
		Use:   "forget [run_id]",
		Short: "delete a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := storage.New(cfg.DataDir).Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "run a batch of visualizations from a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPEED\tINTERVAL\tLANG\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.1fx\t%dms\t%s\t%s\n", name, p.Speed, p.IntervalMs, p.Language, p.Theme)
			}
			w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := "algoviz.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, playCmd, classifyCmd, complexityCmd, categoriesCmd, framesCmd,
		templatesCmd, templateCmd, exportCmd, historyCmd, replayCmd, forgetCmd, scriptCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("lang") {
		cfg.Language = language
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("no-console") {
		cfg.Console = !noConsole
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// cliLogger logs to stderr unless a log file is configured.
func cliLogger(cfg *config.Config) (*log.Logger, func(), error) {
	if cfg.LogFile == "" {
		return logging.New(os.Stderr, cfg.LogLevel), func() {}, nil
	}
	logger, f, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// tuiLogger always logs to a file so the screen stays clean.
func tuiLogger(cfg *config.Config) (*log.Logger, func(), error) {
	path := cfg.LogFile
	if path == "" {
		path = filepath.Join(cfg.DataDir, "algoviz.log")
	}
	logger, f, err := logging.OpenFile(path, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

func viewOptions(cfg *config.Config, logger *log.Logger) viz.Options {
	return viz.Options{
		Theme:       cfg.Theme,
		Speed:       cfg.Speed,
		Interval:    cfg.Interval(),
		Logger:      logger,
		ShowConsole: cfg.Console,
		Standalone:  true,
	}
}

func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// resolve turns a command argument into frames. The argument is tried as a
// category name, then as a frames document (.json/.yaml), then as source
// code to classify. The source text is returned when one was read.
func resolve(arg string) (*frames.Sequence, string, error) {
	if cat, err := classify.ParseCategory(arg); err == nil {
		seq, err := frames.Materialize(cat)
		return seq, "", err
	}
	if _, err := frames.FormatFromPath(arg); err == nil {
		seq, err := frames.LoadFile(arg)
		return seq, "", err
	}
	src, err := readSource([]string{arg})
	if err != nil {
		return nil, "", err
	}
	seq, err := frames.ForSource(src)
	return seq, src, err
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	var src string
	if sourceFile != "" {
		if src, err = readSource([]string{sourceFile}); err != nil {
			return err
		}
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	return viz.RunInteractive(viz.AppOptions{
		Theme:       cfg.Theme,
		Language:    cfg.Language,
		Speed:       cfg.Speed,
		Interval:    cfg.Interval(),
		ShowConsole: cfg.Console,
		Source:      src,
		Logger:      logger,
		Store:       st,
	})
}

func runVisual(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	seq, src, err := resolve(args[0])
	if err != nil {
		return err
	}
	if src != "" {
		st := storage.New(cfg.DataDir)
		id, err := st.Save(storage.Run{Source: src, Speed: cfg.Speed, Sequence: seq})
		if err != nil {
			return err
		}
		logger.Info("recorded run", "id", id)
	}
	return viz.RunVisual(seq, viewOptions(cfg, logger))
}

func classifySource(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}
	cat, rule := classify.Explain(src)
	if rule == "" {
		rule = "(none)"
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "category:\t%s\n", cat)
	fmt.Fprintf(w, "animation:\t%s\n", cat.Title())
	fmt.Fprintf(w, "rule:\t%s\n", rule)
	kind := classify.Structure(src)
	fmt.Fprintf(w, "structure:\t%s\n", kind)
	for i, line := range classify.Extract(src, kind).Lines() {
		label := ""
		if i == 0 {
			label = "data:"
		}
		fmt.Fprintf(w, "%s\t%s\n", label, line)
	}
	return w.Flush()
}

func estimateComplexity(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}
	est := classify.Complexity(src)

	fmt.Printf("time:  %s\n", est.Time)
	fmt.Printf("space: %s\n", est.Space)
	fmt.Printf("\n%s\n\n", est.Explanation)

	n := max(samples, 2)
	graph := asciigraph.Plot(est.Growth.Samples(n),
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("growth ~ %s for n = 1..%d", est.Growth, n)),
	)
	fmt.Println(graph)

	if svgPath != "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		svg := export.GrowthToSVG(est.Growth, n, 400, 200, string(viz.GetTheme(cfg.Theme).Primary))
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nsaved to %s\n", svgPath)
	}
	return nil
}

func listCategories(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tANIMATION\tFRAMES")
	for _, cat := range classify.Categories() {
		seq, err := frames.Materialize(cat)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", cat, cat.Title(), seq.Len())
	}
	return w.Flush()
}

func printFrames(cmd *cobra.Command, args []string) error {
	seq, _, err := resolve(args[0])
	if err != nil {
		return err
	}
	if encoding != "" {
		return frames.Encode(os.Stdout, seq, frames.Format(strings.ToLower(encoding)))
	}

	fmt.Printf("%s (%d frames)\n\n", seq.Category().Title(), seq.Len())
	for _, f := range seq.Frames() {
		printFrame(os.Stdout, f, seq.Len())
	}
	if lines := seq.Console(); len(lines) > 0 {
		fmt.Println("console:")
		for _, l := range lines {
			fmt.Printf("  %s\n", l)
		}
	}
	return nil
}

func printFrame(w io.Writer, f frames.Frame, total int) {
	fmt.Fprintf(w, "[%d/%d] %s\n", f.Index+1, total, f.Describe())
	for _, d := range viz.Details(f.State) {
		fmt.Fprintf(w, "    %-10s %s\n", d.Name+":", d.Value)
	}
	if draw {
		fmt.Fprintln(w, viz.Render(f.State).String())
	}
}

func listTemplates(cmd *cobra.Command, args []string) error {
	langs := templates.Languages()
	if len(args) > 0 {
		l, err := templates.Lookup(args[0])
		if err != nil {
			return err
		}
		langs = []string{l.Name}
	}
	for _, lang := range langs {
		names, err := templates.Names(lang)
		if err != nil {
			return err
		}
		fmt.Printf("%s:\n", lang)
		for _, name := range names {
			src, _ := templates.Get(lang, name)
			fmt.Printf("  %-12s %s\n", name, classify.Classify(src))
		}
	}
	return nil
}

func exportFrames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := export.DefaultOptions()
	opts.Theme = viz.GetTheme(cfg.Theme)
	opts.Scale = scale
	opts.Delay = cfg.Interval()

	formats := []export.Format{}
	for _, name := range strings.Split(format, ",") {
		f, err := export.ParseFormat(name)
		if err != nil {
			return err
		}
		formats = append(formats, f)
	}

	if exportAll {
		dir := outPath
		if dir == "" {
			dir = filepath.Join(cfg.DataDir, "exports")
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		start := time.Now()
		paths, err := export.All(ctx, frames.NewRegistry(), dir, classify.Categories(), formats, opts)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		fmt.Printf("exported %d files in %v\n", len(paths), time.Since(start).Round(time.Millisecond))
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("export needs a category, a file or --all")
	}
	if len(formats) != 1 {
		return fmt.Errorf("export of a single animation takes one format")
	}
	seq, _, err := resolve(args[0])
	if err != nil {
		return err
	}

	if outPath == "" || outPath == "-" {
		return export.Write(os.Stdout, seq, formats[0], opts)
	}
	if err := export.File(outPath, seq, formats[0], opts); err != nil {
		return err
	}
	fmt.Printf("saved to %s\n", outPath)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tTIME\tFRAMES\tSPEED\tLANG\tCOMPLEXITY")
	for _, run := range runs {
		lang := run.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1fx\t%s\t%s\n",
			run.ID,
			run.Category,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Speed,
			lang,
			run.Time,
		)
	}
	return w.Flush()
}

func replayRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	seq, err := storage.New(cfg.DataDir).LoadSequence(args[0])
	if err != nil {
		return err
	}
	logger, closeLog, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("replaying run", "id", args[0])
	return viz.RunVisual(seq, viewOptions(cfg, logger))
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := cliLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := script.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.Theme = viz.GetTheme(cfg.Theme)
	opts.Delay = cfg.Interval()

	r := &script.Runner{
		Registry: frames.NewRegistry(),
		Store:    st,
		Logger:   logger,
		Out:      os.Stdout,
		Interval: cfg.Interval(),
		Export:   opts,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := r.Run(ctx, sc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tCATEGORY\tINDEX\tPHASE\tPLAYED\tRUN")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t%v\t%s\n",
			res.Name, res.Category, res.Index+1, res.Frames, res.Phase, res.Elapsed, res.RunID)
	}
	w.Flush()
	return err
}
