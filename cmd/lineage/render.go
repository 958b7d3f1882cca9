package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/a-h/templ"
	"github.com/spf13/cobra"

	"github.com/aretw0/lineage"
	"github.com/aretw0/lineage/pkg/adapters/fs"
	"github.com/aretw0/lineage/pkg/page"
)

var (
	renderOut  string
	renderPage bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the family tree sorted by birthday",
	Long: `Render loads the fixtures, sorts every level of the family tree by birthday
and prints the nested list markup. With --page the markup is wrapped in a
full HTML document.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, opts := resolve(cmd)
		ctx := context.Background()

		svc, err := lineage.New(path, opts...)
		if err != nil {
			fatal("Error initializing lineage", err)
		}

		people, err := svc.People(ctx)
		if err != nil {
			fatal("Error loading people", err)
		}
		countries, err := svc.Countries(ctx)
		if err != nil {
			fatal("Error loading countries", err)
		}

		markup := lineage.NewRenderer(countries, opts...).SortAndRender(people)
		out := templ.Raw(markup)
		if renderPage {
			out = page.Render(page.View{Markup: markup})
		}

		if err := writeOutput(ctx, renderOut, out); err != nil {
			fatal("Error writing output", err)
		}
	},
}

// writeOutput renders c to stdout, or streams it over the file at out atomically.
func writeOutput(ctx context.Context, out string, c templ.Component) error {
	if out == "" || out == "-" {
		if err := c.Render(ctx, os.Stdout); err != nil {
			return err
		}
		_, err := fmt.Println()
		return err
	}
	return fs.WriteAtomic(out, 0644, func(w io.Writer) error {
		return c.Render(ctx, w)
	})
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Write to file instead of stdout")
	renderCmd.Flags().BoolVar(&renderPage, "page", false, "Wrap the markup in an HTML document")
}
