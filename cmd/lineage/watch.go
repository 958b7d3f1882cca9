package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/lineage"
	lifecycleadapter "github.com/aretw0/lineage/pkg/adapters/lifecycle"
)

var (
	watchOut     string
	watchPattern string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the page whenever a fixture changes",
	Long: `Watch runs the demo once, writes the page and then keeps it up to date while
fixture files change. It needs a fixture directory (--dir or the settings
file). Stop it with Ctrl+C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, opts := resolve(cmd)
		if path == "" {
			fatal("Error starting watch", fmt.Errorf("a fixture directory is required"))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts = append(opts, lineage.WithWatcherErrorHandler(func(err error) {
			slog.Error("watcher failure", "error", err)
		}))
		d, err := lineage.NewDemo(path, append(opts, eventOptions(cmd)...)...)
		if err != nil {
			fatal("Error initializing lineage", err)
		}
		if err := d.Init(ctx); err != nil {
			fatal("Error running demo", err)
		}

		write := func() {
			if err := writeOutput(ctx, watchOut, d.Page()); err != nil {
				slog.Error("write failed", "path", watchOut, "error", err)
			}
		}

		// Rewrite once the dispatcher is done so the page holds every action.
		go func() {
			if err := d.Wait(ctx); err == nil {
				write()
			}
		}()
		write()

		events, err := d.Service().Watch(ctx, watchPattern)
		if err != nil {
			fatal("Error starting watch", err)
		}
		src := lifecycleadapter.NewSource(events)
		if err := src.Start(ctx); err != nil {
			fatal("Error starting event source", err)
		}

		slog.Info("watching fixtures", "path", path, "out", watchOut)
		for e := range src.Events() {
			slog.Info("fixture changed", "event", e.String())
			if err := d.Refresh(ctx); err != nil {
				slog.Error("reload failed", "error", err)
				continue
			}
			write()
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "lineage.html", "Page destination")
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "**/*", "Glob of fixture files to watch")
	addEventFlags(watchCmd)
}
