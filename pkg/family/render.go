package family

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/a-h/templ"

	"github.com/aretw0/lineage/pkg/core"
)

// Defaults used when no option overrides them.
const (
	DefaultCountryID   = 1
	DefaultCountryName = "Poland"
	DefaultListStyle   = "disc"
)

// DefaultPalette holds the list styles applied to the first levels of the tree.
var DefaultPalette = []string{"disc", "circle", "square"}

// Renderer turns a people tree into nested <ul> markup.
type Renderer struct {
	countries     core.Directory
	palette       []string
	fallbackStyle string
	defaultID     int
	defaultName   string
	logger        *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPalette replaces the per-depth list styles.
func WithPalette(styles ...string) Option {
	return func(r *Renderer) {
		r.palette = append([]string(nil), styles...)
	}
}

// WithFallbackStyle sets the style used beyond the palette.
func WithFallbackStyle(style string) Option {
	return func(r *Renderer) {
		if style != "" {
			r.fallbackStyle = style
		}
	}
}

// WithDefaultCountry sets the country used for people without a CountryID
// and the name rendered when an ID is not in the directory.
func WithDefaultCountry(id int, name string) Option {
	return func(r *Renderer) {
		r.defaultID = id
		if name != "" {
			r.defaultName = name
		}
	}
}

// WithLogger sets the logger for the renderer.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer creates a Renderer resolving countries through dir.
func NewRenderer(dir core.Directory, opts ...Option) *Renderer {
	r := &Renderer{
		countries:     dir,
		palette:       append([]string(nil), DefaultPalette...),
		fallbackStyle: DefaultListStyle,
		defaultID:     DefaultCountryID,
		defaultName:   DefaultCountryName,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SortAndRender sorts people by age and renders the result.
func (r *Renderer) SortAndRender(people []core.Person) string {
	return r.Render(Sort(people))
}

// Render writes people as nested lists, one <ul> per level.
// An empty level produces no markup. Every text field, the apartment
// number included, is HTML-escaped.
func (r *Renderer) Render(people []core.Person) string {
	var b strings.Builder
	r.renderLevel(&b, people, 0)
	return b.String()
}

func (r *Renderer) renderLevel(b *strings.Builder, people []core.Person, depth int) {
	if len(people) == 0 {
		return
	}

	fmt.Fprintf(b, `<ul style="list-style: %s; padding-left: %drem">`, r.Style(depth), depth)
	for _, p := range people {
		b.WriteString("<li>")
		b.WriteString(r.line(p))
		b.WriteString("</li>")
		r.renderLevel(b, p.Children, depth+1)
	}
	b.WriteString("</ul>")
}

// Style returns the list style for a nesting depth.
func (r *Renderer) Style(depth int) string {
	if depth >= 0 && depth < len(r.palette) {
		return r.palette[depth]
	}
	return r.fallbackStyle
}

// CountryName resolves the country rendered for p.
func (r *Renderer) CountryName(p core.Person) string {
	id := r.defaultID
	if p.CountryID != nil {
		id = *p.CountryID
	}
	if c, ok := r.countries.Lookup(id); ok {
		return c.Name
	}
	r.logger.Debug("country not found, using default", "id", id, "person", p.Name)
	return r.defaultName
}

func (r *Renderer) line(p core.Person) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s | %s %s",
		templ.EscapeString(p.Name),
		templ.EscapeString(p.Surname),
		templ.EscapeString(p.Street),
		templ.EscapeString(p.HouseNumber),
	)
	if p.ApartmentNumber != nil {
		b.WriteString(" apart. ")
		b.WriteString(templ.EscapeString(*p.ApartmentNumber))
	}
	fmt.Fprintf(&b, ", %s %s, %s",
		templ.EscapeString(p.ZipCode),
		templ.EscapeString(p.City),
		templ.EscapeString(r.CountryName(p)),
	)
	return b.String()
}
