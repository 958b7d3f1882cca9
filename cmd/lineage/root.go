package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/lineage"
)

var (
	verbose    bool
	fixtureDir string
	strict     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lineage",
	Short: "Render family trees, replay bus traffic and find indexes",
	Long: `lineage loads people and countries from YAML/JSON fixtures, renders the
family tree sorted by birthday, drives a periodic event bus and runs the
index finder over a sample sequence.

Settings are read from lineage.yaml, found by walking up from the working
directory. Flags override the settings file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&fixtureDir, "dir", "d", "", "Fixture directory (default: settings file, then embedded fixtures)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Reject unknown fields in fixture files")
}

// resolve returns the fixture path and the options built from lineage.yaml
// and the persistent flags, in that order.
func resolve(cmd *cobra.Command) (string, []lineage.Option) {
	wd, err := os.Getwd()
	if err != nil {
		fatal("Error getting working directory", err)
	}

	settings := &lineage.Settings{}
	if root, err := lineage.FindRoot(wd); err == nil {
		settings, err = lineage.LoadSettings(root)
		if err != nil {
			fatal("Error loading settings", err)
		}
		slog.Debug("settings loaded", "root", root)
	}

	path := settings.FixturesPath()
	if fixtureDir != "" {
		path = fixtureDir
	}

	opts := append(settings.Options(), lineage.WithLogger(slog.Default()))
	if path != "" {
		opts = append(opts, lineage.WithMustExist(true))
	}
	if cmd.Flags().Changed("strict") {
		opts = append(opts, lineage.WithStrict(strict))
	}
	return path, opts
}
