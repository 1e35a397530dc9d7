package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/philiporlando/apng-to-png/internal/config"
	"github.com/philiporlando/apng-to-png/internal/extract"
	"github.com/philiporlando/apng-to-png/internal/logger"
	"github.com/philiporlando/apng-to-png/internal/model"
	"go.uber.org/zap"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("apng-to-png", flag.ContinueOnError)
	var (
		inputFlag      = fs.String("input", "", "Folder containing .apng files (overrides config)")
		outputFlag     = fs.String("output", "", "Folder receiving one subfolder of frames per file (overrides config)")
		configFlag     = fs.String("config", "", "Path to config file")
		workersFlag    = fs.Int("workers", 0, "Number of files extracted at once (overrides config)")
		compositeFlag  = fs.Bool("composite", false, "Write full composited canvases instead of raw frames")
		manifestFlag   = fs.String("manifest", "", "Write a frame manifest: none, json or ffconcat")
		logLevelFlag   = fs.String("log-level", "", "Log level: debug, info, warn, error")
		logFormatFlag  = fs.String("log-format", "", "Log format: console or json")
		dryRunFlag     = fs.Bool("dry-run", false, "List the files that would be extracted")
		strictFlag     = fs.Bool("strict", false, "Exit with status 1 if any file fails")
		noProgressFlag = fs.Bool("no-progress", false, "Disable the progress bar")
	)
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintln(out, "apng-to-png - Extract the frames of APNG files as PNG images")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintln(out, "  apng-to-png [options]")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "For interactive mode, use: apng-to-png-tui")
		fmt.Fprintln(out)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return 1
		}
	}
	if err := settings.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		return 1
	}

	// Apply flags
	if *inputFlag != "" {
		settings.InputPath = *inputFlag
	}
	if *outputFlag != "" {
		settings.OutputPath = *outputFlag
	}
	if *workersFlag > 0 {
		settings.MaxConcurrentFiles = *workersFlag
	}
	if *compositeFlag {
		settings.CompositeFrames = true
	}
	if *manifestFlag != "" {
		settings.ManifestFormat = *manifestFlag
	}
	if *logLevelFlag != "" {
		settings.LogLevel = *logLevelFlag
	}
	if *logFormatFlag != "" {
		settings.LogFormat = *logFormatFlag
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		return 2
	}

	var (
		logSink io.Writer = os.Stderr
		bar     *progressLine
	)
	if !*noProgressFlag && !*dryRunFlag && settings.LogFormat != "json" && isatty.IsTerminal(os.Stderr.Fd()) {
		bar = newProgressLine(os.Stderr)
		logSink = bar
	}

	log, err := logger.NewWithWriter(logSink, settings.LogLevel, settings.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var processor *extract.Processor
	processor, err = extract.NewProcessor(settings, log, func(event extract.ProgressEvent) {
		if bar == nil {
			return
		}
		switch event.Kind {
		case extract.EventFrame, extract.EventFileStart:
			st := processor.Progress()
			bar.Update(event.File, st.FramesDone, st.FramesTotal)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *dryRunFlag {
		sources, err := processor.Scan(ctx, settings.InputPath, settings.OutputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", settings.InputPath, err)
			return 1
		}
		printDryRun(os.Stdout, sources)
		return 0
	}

	results, err := processor.ProcessDir(ctx, settings.InputPath, settings.OutputPath)
	if bar != nil {
		bar.Clear()
	}
	if err != nil {
		if ctx.Err() != nil {
			log.Warn("Interrupted", zap.Int("files_done", len(results)))
			return 130
		}
		log.Error("Run aborted", zap.Error(err))
		return 1
	}

	failed := printSummary(os.Stdout, results)
	if *strictFlag && failed > 0 {
		return 1
	}
	return 0
}

func printDryRun(w io.Writer, sources []model.Source) {
	fmt.Fprintf(w, "[Dry run - %d file(s) would be extracted]\n", len(sources))
	for _, src := range sources {
		fmt.Fprintf(w, "  %s -> %s\n", src.Name, src.OutputDir)
	}
}

// printSummary writes one line per file and returns the number of failures.
func printSummary(w io.Writer, results []model.Result) int {
	failed := 0
	frames := 0
	for _, r := range results {
		frames += r.FramesWritten
		if r.OK() {
			fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("✓ %s: %d frames", r.Source.Name, r.FramesWritten)))
			continue
		}
		failed++
		fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("✗ %s: %v", r.Source.Name, r.Err)))
	}
	fmt.Fprintf(w, "Done: %d file(s), %d failed, %d frames written\n", len(results), failed, frames)
	return failed
}
