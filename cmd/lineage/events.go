package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aretw0/lineage"
	lifecycleadapter "github.com/aretw0/lineage/pkg/adapters/lifecycle"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Stream the synthetic bus traffic",
	Long: `Events runs the periodic dispatcher, prints every action as it is published
and finishes with what each demo subscriber received.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, opts := resolve(cmd)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		b := lineage.NewBus(slog.Default())
		src := lifecycleadapter.FromBus(b, 16)
		if err := src.Start(ctx); err != nil {
			fatal("Error starting event source", err)
		}

		opts = append(opts, lineage.WithBus(b))
		opts = append(opts, eventOptions(cmd)...)
		d, err := lineage.NewDemo(path, opts...)
		if err != nil {
			fatal("Error initializing lineage", err)
		}
		if err := d.Init(ctx); err != nil {
			fatal("Error running demo", err)
		}

		waitCh := make(chan error, 1)
		go func() { waitCh <- d.Wait(ctx) }()

		events := src.Events()
		received, fired, finished := 0, 0, false
		var runErr error
		for !finished || received < fired {
			select {
			case e, ok := <-events:
				if !ok {
					fired = received
					finished = true
					continue
				}
				received++
				fmt.Printf("%d. %s\n", received, e)
			case runErr = <-waitCh:
				finished = true
				fired = d.View().Fired
				waitCh = nil
			}
		}
		if runErr != nil {
			fatal("Error dispatching", runErr)
		}

		fmt.Println()
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Subscriber", "Received", "Last"})
		for i, out := range d.View().Outputs {
			last := ""
			if len(out) > 0 {
				last = out[len(out)-1]
			}
			table.Append([]string{strconv.Itoa(i + 1), strconv.Itoa(len(out)), last})
		}
		table.Render()
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	addEventFlags(eventsCmd)
}
