package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/lineage"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Run the demo and print the state of every component as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, opts := resolve(cmd)
		ctx := context.Background()

		b := lineage.NewBus(slog.Default())
		d, err := lineage.NewDemo(path, append(opts, lineage.WithBus(b))...)
		if err != nil {
			fatal("Error initializing lineage", err)
		}
		if err := d.Init(ctx); err != nil {
			fatal("Error running demo", err)
		}
		if err := d.Wait(ctx); err != nil {
			fatal("Error dispatching", err)
		}

		states := make(map[string]any)
		for _, c := range []introspection.Introspectable{d.Service(), b, d} {
			name := "unknown"
			if comp, ok := c.(introspection.Component); ok {
				name = comp.ComponentType()
			}
			states[name] = c.State()
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(states); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
