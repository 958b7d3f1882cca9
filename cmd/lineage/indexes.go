package main

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aretw0/lineage"
	"github.com/aretw0/lineage/pkg/arrays"
)

var indexesGreaterThan float64

var indexesCmd = &cobra.Command{
	Use:   "indexes [values...]",
	Short: "Find the indexes of values greater than a threshold",
	Long: `Indexes runs the index finder over the given values, or over the built-in
sample sequence when none are given. Values accept Inf, -Inf and NaN;
put -- before the first negative value.`,
	Run: func(cmd *cobra.Command, args []string) {
		values := arrays.SampleData
		if len(args) > 0 {
			values = make([]float64, len(args))
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					fatal("Invalid value", err)
				}
				values[i] = v
			}
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Index", "Value"})
		for idx := range lineage.Indexes(values, arrays.GreaterThan(indexesGreaterThan)) {
			table.Append([]string{strconv.Itoa(idx), strconv.FormatFloat(values[idx], 'g', -1, 64)})
		}
		table.Render()
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
	indexesCmd.Flags().Float64Var(&indexesGreaterThan, "gt", 0, "Threshold; values strictly greater are reported")
}
