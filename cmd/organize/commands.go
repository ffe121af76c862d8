package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fenilsonani/file-organizer/internal/categories"
	"github.com/fenilsonani/file-organizer/internal/config"
	"github.com/fenilsonani/file-organizer/internal/reporter"
	"github.com/spf13/cobra"
)

func newScanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Show how the files in a directory would be categorized",
		Long:  `Scans the source directory and reports the files per category without creating folders or moving anything.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			format, err := reporter.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}

			scnr, err := newScanner(cfg, newLogger(cmd.ErrOrStderr(), cfg))
			if err != nil {
				return err
			}

			result, err := scnr.Scan(opts.source)
			if err != nil {
				return fmt.Errorf("error scanning directory: %w", err)
			}

			rptr := reporter.New(cmd.OutOrStdout(), format)
			rptr.SetVerbose(cfg.Verbose)
			if err := rptr.ReportScan(result); err != nil {
				return fmt.Errorf("failed to generate report: %w", err)
			}
			return nil
		},
	}
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories and the extensions that map to them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			format, err := reporter.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}

			overrides, err := cfg.ExtensionOverrides()
			if err != nil {
				return err
			}

			mapper := categories.NewMapper().WithOverrides(overrides)
			return reporter.New(cmd.OutOrStdout(), format).ReportCategories(mapper)
		},
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Display the configuration file location and values",
		Long:  `Shows the configuration file being used. With --init, writes a commented example config if none exists.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := opts.configPath
			if cfgPath == "" {
				var err error
				if cfgPath, err = config.GetConfigPath(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file: %s\n", cfgPath)

			if opts.initConfig {
				written, err := config.EnsureConfigExists(cfgPath)
				if err != nil {
					return err
				}
				if written {
					fmt.Fprintln(out, "Wrote example configuration.")
				} else {
					fmt.Fprintln(out, "Config file already exists; left unchanged.")
				}
			} else if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(out, "Config file does not exist. Using default configuration.")
				fmt.Fprintln(out, "Run 'organize config --init' to create one.")
			}

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "output_dir:       %s\n", displayOrDefault(cfg.OutputDir, "(source directory)"))
			fmt.Fprintf(out, "dry_run:          %t\n", cfg.DryRun)
			fmt.Fprintf(out, "verbose:          %t\n", cfg.Verbose)
			fmt.Fprintf(out, "log_level:        %s\n", cfg.LogLevel)
			fmt.Fprintf(out, "format:           %s\n", cfg.Format)
			fmt.Fprintf(out, "progress:         %t\n", cfg.Progress)
			fmt.Fprintf(out, "manifest:         %s\n", displayOrDefault(cfg.Manifest, "(disabled)"))
			fmt.Fprintf(out, "exclude_patterns: %v\n", cfg.ExcludePatterns)
			fmt.Fprintf(out, "protected_paths:  %v\n", cfg.ProtectedPaths)
			fmt.Fprintf(out, "extensions:       %d overrides\n", len(cfg.Extensions))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.initConfig, "init", false, "write an example config file if none exists")
	return cmd
}

func displayOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
