package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fenilsonani/file-organizer/internal/categories"
	"github.com/fenilsonani/file-organizer/internal/config"
	"github.com/fenilsonani/file-organizer/internal/lock"
	"github.com/fenilsonani/file-organizer/internal/organizer"
	"github.com/fenilsonani/file-organizer/internal/progress"
	"github.com/fenilsonani/file-organizer/internal/reporter"
	"github.com/fenilsonani/file-organizer/internal/scanner"
	"github.com/fenilsonani/file-organizer/internal/security"
	"github.com/fenilsonani/file-organizer/internal/ui"
	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// options holds the command-line flags
type options struct {
	configPath string
	source     string
	output     string
	dryRun     bool
	verbose    bool
	format     string
	manifest   string
	noProgress bool
	logLevel   string
	initConfig bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "organize",
		Short: "Sort the files in a directory into category folders",
		Long: `File Organizer moves the files at the top level of a directory into
folders named after their category (Images, Documents, Videos, Audio, Archives,
Code, Data, Executables, Fonts, Other), based on the file extension.

Hidden files and subdirectories are left alone, and existing files are never
overwritten.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, opts)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&opts.source, "source", "s", ".", "source directory containing files to organize")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "show every file decision")
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "summary", "output format (summary, table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	// Organize flags
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory for category folders (defaults to the source directory)")
	rootCmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "d", false, "preview changes without moving files")
	rootCmd.Flags().StringVar(&opts.manifest, "manifest", "", "write a record of the run to this file (.json or .yaml)")
	rootCmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "do not show progress while moving")

	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newCategoriesCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// runOrganize scans the source directory, creates the category folders and
// moves every file
func runOrganize(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	out := cmd.OutOrStdout()
	rptr := reporter.New(out, format)
	rptr.SetVerbose(cfg.Verbose)

	source := opts.source
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = source
	}

	if err := validateRoots(cfg, source, outputDir); err != nil {
		return err
	}

	if !cfg.DryRun {
		dirLock, err := lock.Acquire(source)
		if err != nil {
			return err
		}
		defer func() {
			if err := dirLock.Release(); err != nil {
				logger.Warn("failed to release lock", "path", dirLock.Path(), "error", err)
			}
		}()
	}

	if !format.Structured() {
		printHeader(out, source, outputDir, cfg)
	}

	scnr, err := newScanner(cfg, logger)
	if err != nil {
		return err
	}

	if !format.Structured() {
		fmt.Fprintln(out, "\nScanning directory...")
	}
	result, err := scnr.Scan(source)
	if err != nil {
		return fmt.Errorf("error scanning directory: %w", err)
	}

	org := organizer.New(outputDir, cfg.DryRun, cfg.Verbose)
	org.SetLogger(logger)

	if !format.Structured() {
		if err := rptr.ReportScan(result); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		if result.TotalCount == 0 {
			fmt.Fprintln(out, "No files to organize.")
			return nil
		}
		fmt.Fprintln(out, "\nCreating directory structure...")
	}

	created, err := org.CreateCategoryDirectories(result)
	if err != nil {
		return fmt.Errorf("error creating directories: %w", err)
	}
	if err := rptr.ReportDirectories(created, cfg.DryRun); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if !format.Structured() {
		fmt.Fprintln(out, "\nMoving files...")
	}
	report, err := moveFiles(cmd, cfg, format, logger, org, result)
	if err != nil {
		return err
	}

	if cfg.Manifest != "" {
		if err := org.GetManifest().Save(cfg.Manifest); err != nil {
			return err
		}
		logger.Info("manifest written", "path", cfg.Manifest, "run_id", org.GetManifest().RunID)
	}

	if err := rptr.ReportMoves(report, created); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	return nil
}

// moveFiles runs the organizer behind the live view on a terminal, or with
// plain progress lines otherwise. A failing live view does not lose the
// report; the run is still recorded and summarized.
func moveFiles(cmd *cobra.Command, cfg *config.Config, format reporter.OutputFormat, logger *slog.Logger, org *organizer.Organizer, result *scanner.ScanResult) (*organizer.MoveReport, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pr := progress.NewProgressReporter()
	org.SetProgressReporter(pr)

	showProgress := cfg.Progress && !format.Structured()
	if showProgress && !cfg.Verbose && cmd.OutOrStdout() == os.Stdout && ui.IsInteractive(os.Stderr) {
		report, err := ui.RunMoves(ctx, org, result, pr)
		if err != nil {
			if report == nil {
				return nil, err
			}
			logger.Warn("live progress unavailable", "error", err)
		}
		return report, nil
	}

	// Verbose runs already log every file
	if showProgress && !cfg.Verbose {
		pr.OnUpdate(plainProgress(cmd.OutOrStdout()))
	}
	return org.MoveFilesContext(ctx, result), nil
}

// plainProgress prints a line every 10 files and after the last one
func plainProgress(w io.Writer) progress.Handler {
	return func(update interface{}) {
		p, ok := update.(*progress.MoveProgress)
		if !ok || p.Phase != progress.PhaseMoving {
			return
		}
		if p.Processed%10 == 0 || p.Processed == p.TotalFiles {
			fmt.Fprintf(w, "  Processed %d/%d files...\n", p.Processed, p.TotalFiles)
		}
	}
}

func printHeader(w io.Writer, source, outputDir string, cfg *config.Config) {
	fmt.Fprintln(w, "File Organizer")
	fmt.Fprintln(w, "==============")
	fmt.Fprintf(w, "Source directory: %s\n", source)
	fmt.Fprintf(w, "Output directory: %s\n", outputDir)
	if cfg.DryRun {
		fmt.Fprintln(w, "Mode: Dry run (no files will be moved)")
	}
	if cfg.Verbose {
		fmt.Fprintln(w, "Verbose mode: enabled")
	}
}

// loadConfig reads the config file and applies the flags that were set
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = opts.output
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = opts.dryRun
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("manifest") {
		cfg.Manifest = opts.manifest
	}
	if flags.Changed("no-progress") {
		cfg.Progress = !opts.noProgress
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// newLogger writes diagnostics to stderr; verbose runs log at debug level
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := cfg.Level()
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newScanner builds a scanner with the configured extension table and
// exclude patterns
func newScanner(cfg *config.Config, logger *slog.Logger) (*scanner.Scanner, error) {
	overrides, err := cfg.ExtensionOverrides()
	if err != nil {
		return nil, err
	}

	scnr := scanner.New(categories.NewMapper().WithOverrides(overrides))
	scnr.SetLogger(logger)
	scnr.SetExcludePatterns(cfg.ExcludePatterns)
	return scnr, nil
}

func validateRoots(cfg *config.Config, roots ...string) error {
	validator := security.NewPathValidator()
	for _, p := range cfg.ProtectedPaths {
		validator.AddProtectedPath(p)
	}

	for _, root := range roots {
		if err := validator.ValidateRoot(root); err != nil {
			if errors.Is(err, security.ErrProtectedPath) {
				return fmt.Errorf("%w (choose a directory you own)", err)
			}
			return err
		}
	}
	return nil
}
