package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/lineage"
)

var (
	eventCount       int
	eventInterval    time.Duration
	eventSubscribers int
)

// addEventFlags registers the dispatcher flags shared by demo, events and watch.
func addEventFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&eventCount, "count", 0, "Number of synthetic actions (default 5)")
	cmd.Flags().DurationVar(&eventInterval, "interval", 0, "Delay between actions (default 500ms)")
	cmd.Flags().IntVar(&eventSubscribers, "subscribers", 0, "Number of demo subscribers (default 2)")
}

// eventOptions converts the flags that were set into options.
func eventOptions(cmd *cobra.Command) []lineage.Option {
	var opts []lineage.Option
	if cmd.Flags().Changed("count") {
		opts = append(opts, lineage.WithCount(eventCount))
	}
	if cmd.Flags().Changed("interval") {
		opts = append(opts, lineage.WithInterval(eventInterval))
	}
	if cmd.Flags().Changed("subscribers") {
		opts = append(opts, lineage.WithSubscribers(eventSubscribers))
	}
	return opts
}
