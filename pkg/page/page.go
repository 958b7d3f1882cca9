// Package page composes the demo HTML document.
package page

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// View is the data shown on the page.
type View struct {
	Title   string
	Markup  string // trusted list markup produced by family.Renderer
	Indexes []int
	Outputs [][]string
}

// DefaultTitle is used when View.Title is empty.
const DefaultTitle = "lineage"

// Render returns the full document for v.
func Render(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := v.Title
		if title == "" {
			title = DefaultTitle
		}

		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body>`,
			templ.EscapeString(title)); err != nil {
			return err
		}
		for _, section := range []templ.Component{
			Members(v.Markup),
			Indexes(v.Indexes),
			Subscribers(v.Outputs),
		} {
			if err := section.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// Members injects the rendered family tree as-is.
func Members(markup string) templ.Component {
	return section("members", "Members", templ.Raw(markup))
}

// Indexes lists the positions found by the index finder.
func Indexes(indexes []int) templ.Component {
	parts := make([]string, len(indexes))
	for i, idx := range indexes {
		parts[i] = strconv.Itoa(idx)
	}
	return section("indexes", "Found indexes", text("["+strings.Join(parts, ", ")+"]"))
}

// Subscribers renders one log per subscriber.
func Subscribers(outputs [][]string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for i, lines := range outputs {
			id := fmt.Sprintf("subscriber-%d", i+1)
			label := fmt.Sprintf("Subscriber %d", i+1)
			if err := section(id, label, lineList(lines)).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func section(id, heading string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section id="%s"><h2>%s</h2>`,
			templ.EscapeString(id), templ.EscapeString(heading)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p>%s</p>`, templ.EscapeString(s))
		return err
	})
}

func lineList(lines []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<ol>")
		for _, l := range lines {
			b.WriteString("<li>")
			b.WriteString(templ.EscapeString(l))
			b.WriteString("</li>")
		}
		b.WriteString("</ol>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// String renders c to a string.
func String(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
