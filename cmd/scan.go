package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"nerja/internal/config"
	"nerja/internal/logging"
	"nerja/internal/processor"
	"nerja/internal/tui"
)

var scanCfg = config.Default()

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <source> [target]",
	Short: "Scan for HD landscape images and optionally copy them to target",
	Long: `Scan SOURCE for *.jpg, *.jpeg and *.png images more than 1920 pixels wide.

Landscape images are sorted by aspect ratio into TARGET/widescreen and
TARGET/normal, keeping the source folder structure (or content-hash names
with --hash-names). Files already present in TARGET are never overwritten.
Without TARGET the source is only scanned and reported.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := scanCfg
		cfg.Source = args[0]
		if len(args) > 1 {
			cfg.Target = args[1]
		}
		return runScan(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

func runScan(parent context.Context, cfg config.Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	showProgress := !cfg.NoProgress && isatty.IsTerminal(os.Stdout.Fd())
	var console io.Writer = os.Stderr
	if showProgress {
		console = nil
	}
	logger, closer, err := logging.New(logging.Options{File: cfg.LogFile, Verbose: cfg.Verbose, Console: console})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	fmt.Fprintf(out, "%s\t%q\n", scanLabelStyle.Render("Scan source:"), cfg.Source)
	if !cfg.ReportOnly() {
		fmt.Fprintf(out, "%s\t%q\n", scanLabelStyle.Render("Target path:"), cfg.Target)
	}
	fmt.Fprintln(out, scanDimStyle.Render("Scanning images, stand by..."))

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	lister := processor.NewDirLister(cfg.Target)
	opts := processor.Options{
		Root:      cfg.Source,
		Target:    cfg.Target,
		Policy:    cfg.Policy(),
		Naming:    cfg.NamingStrategy(),
		RatioStep: cfg.RatioStep,
		Lister:    lister,
		Logger:    logger,
	}
	logger.Info().
		Str("source", cfg.Source).
		Str("target", cfg.Target).
		Stringer("naming", opts.Naming).
		Float64("min_ratio", cfg.MinRatio).
		Float64("max_ratio", cfg.MaxRatio).
		Msg("scan started")

	var stats processor.Stats
	var runErr error
	if showProgress {
		total := processor.CountEntries(lister, cfg.Source)
		updates := make(chan processor.ProgressUpdate, 64)
		model := tui.NewModel(updates, total).WithInterrupt(stop)
		program := tea.NewProgram(model)

		uiDone := startUI(program.Run, updates)
		stats, runErr = processor.Run(ctx, opts, updates)
		close(updates)
		<-uiDone
	} else {
		stats, runErr = processor.Run(ctx, opts, nil)
	}

	logger.Info().
		Int("files", stats.Files).
		Int("images", stats.Images).
		Int("copied", stats.Copied).
		Int("skipped", stats.Skipped).
		Int("failed", stats.Failed).
		Int64("bytes", stats.Bytes).
		Msg("scan finished")

	fmt.Fprintln(out, tui.RenderSummary(tui.StatsRows(stats, cfg.ReportOnly())))
	fmt.Fprintln(out, tui.RenderRatios(stats.SortedRatios()))
	if stats.Degraded > 0 {
		fmt.Fprintln(out, scanWarnStyle.Render(fmt.Sprintf("%d files were named after exhausting random name retries.", stats.Degraded)))
	}

	if errors.Is(runErr, context.Canceled) {
		return errors.New("scan interrupted; files copied so far are complete")
	}
	return runErr
}

// startUI runs the progress program in the background. If it exits before
// the scan does, the remaining updates are discarded so the scan never
// blocks on a full channel.
func startUI(run func() (tea.Model, error), updates <-chan processor.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = run()
		for range updates {
		}
	}()
	return done
}

var (
	scanLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	scanDimStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
	scanWarnStyle  = lipgloss.NewStyle().Foreground(tui.ColorWarn)
)

func init() {
	flags := scanCmd.Flags()
	flags.Uint64Var(&scanCfg.MinWidth, "min-width", scanCfg.MinWidth, "images must be wider than this many pixels")
	flags.Float64Var(&scanCfg.MinRatio, "min-ratio", scanCfg.MinRatio, "lower bound of the widescreen aspect ratio band (inclusive)")
	flags.Float64Var(&scanCfg.MaxRatio, "max-ratio", scanCfg.MaxRatio, "upper bound of the widescreen aspect ratio band (inclusive)")
	flags.Uint64Var(&scanCfg.RatioStep, "ratio-step", scanCfg.RatioStep, "round dimensions down to a multiple of this before computing ratios (0 = exact)")
	flags.BoolVar(&scanCfg.HashNames, "hash-names", false, "name copies by SHA-256 of their content, deduplicating identical images")
	flags.StringVar(&scanCfg.LogFile, "log-file", "", "append a JSON log of the scan to this file")
	flags.BoolVarP(&scanCfg.Verbose, "verbose", "v", false, "log every classified image")
	flags.BoolVar(&scanCfg.NoProgress, "no-progress", false, "disable the progress display and log to stderr")

	rootCmd.AddCommand(scanCmd)
}
