package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/lineage"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lineage",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lineage version %s\n", lineage.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
