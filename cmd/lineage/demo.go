package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/lineage"
)

var demoOut string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the three demo tasks and write the HTML page",
	Long: `Demo renders the sorted family tree, replays the synthetic bus traffic to
the demo subscribers and runs the index finder, then writes the resulting
page.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, opts := resolve(cmd)
		ctx := context.Background()

		d, err := lineage.NewDemo(path, append(opts, eventOptions(cmd)...)...)
		if err != nil {
			fatal("Error initializing lineage", err)
		}
		if err := d.Init(ctx); err != nil {
			fatal("Error running demo", err)
		}
		if err := d.Wait(ctx); err != nil {
			fatal("Error dispatching", err)
		}

		if err := writeOutput(ctx, demoOut, d.Page()); err != nil {
			fatal("Error writing page", err)
		}

		if demoOut != "" && demoOut != "-" {
			v := d.View()
			slog.Info("page written", "path", demoOut, "fired", v.Fired, "indexes", len(v.Indexes))
			fmt.Println(demoOut)
		}
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVarP(&demoOut, "out", "o", "lineage.html", "Page destination (- for stdout)")
	addEventFlags(demoCmd)
}
