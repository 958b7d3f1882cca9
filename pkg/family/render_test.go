package family

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/lineage/pkg/core"
)

func ptr[T any](v T) *T { return &v }

var testCountries = core.NewDirectory([]core.Country{
	{ID: 1, Name: "Poland"},
	{ID: 2, Name: "Germany"},
})

func person(name string) core.Person {
	return core.Person{
		Name:        name,
		Surname:     "Nowak",
		Street:      "Lipowa",
		HouseNumber: "7",
		ZipCode:     "00-001",
		City:        "Warszawa",
		CountryID:   ptr(2),
	}
}

func TestRender_SingleRecord(t *testing.T) {
	r := NewRenderer(testCountries)

	got := r.Render([]core.Person{person("Jan")})

	want := `<ul style="list-style: disc; padding-left: 0rem">` +
		`<li>Jan Nowak | Lipowa 7, 00-001 Warszawa, Germany</li>` +
		`</ul>`
	assert.Equal(t, want, got)
}

func TestRender_Apartment(t *testing.T) {
	r := NewRenderer(testCountries)

	p := person("Jan")
	p.ApartmentNumber = ptr("12B")

	got := r.Render([]core.Person{p})
	assert.Contains(t, got, "Lipowa 7 apart. 12B, 00-001")
}

func TestRender_Country(t *testing.T) {
	tests := []struct {
		name    string
		country *int
		opts    []Option
		want    string
	}{
		{name: "Mapped", country: ptr(2), want: "Germany"},
		{name: "Absent Uses Default ID", country: nil, want: "Poland"},
		{name: "Unmapped Uses Default Name", country: ptr(99), want: "Poland"},
		{
			name:    "Custom Default Unmapped",
			country: ptr(99),
			opts:    []Option{WithDefaultCountry(2, "Atlantis")},
			want:    "Atlantis",
		},
		{
			name:    "Custom Default ID Resolved",
			country: nil,
			opts:    []Option{WithDefaultCountry(2, "Atlantis")},
			want:    "Germany",
		},
		{
			name:    "Default ID Missing From Directory",
			country: nil,
			opts:    []Option{WithDefaultCountry(5, "Atlantis")},
			want:    "Atlantis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(testCountries, tt.opts...)
			p := person("Jan")
			p.CountryID = tt.country

			assert.Equal(t, tt.want, r.CountryName(p))
			assert.True(t, strings.HasSuffix(r.Render([]core.Person{p}), ", "+tt.want+"</li></ul>"))
		})
	}
}

func TestRender_Nested(t *testing.T) {
	r := NewRenderer(testCountries)

	root := person("A")
	child := person("B")
	child.Children = []core.Person{person("C")}
	root.Children = []core.Person{child}

	got := r.Render([]core.Person{root, person("D")})

	want := `<ul style="list-style: disc; padding-left: 0rem">` +
		`<li>A Nowak | Lipowa 7, 00-001 Warszawa, Germany</li>` +
		`<ul style="list-style: circle; padding-left: 1rem">` +
		`<li>B Nowak | Lipowa 7, 00-001 Warszawa, Germany</li>` +
		`<ul style="list-style: square; padding-left: 2rem">` +
		`<li>C Nowak | Lipowa 7, 00-001 Warszawa, Germany</li>` +
		`</ul>` +
		`</ul>` +
		`<li>D Nowak | Lipowa 7, 00-001 Warszawa, Germany</li>` +
		`</ul>`
	assert.Equal(t, want, got)
}

func TestRenderer_Style(t *testing.T) {
	r := NewRenderer(testCountries)
	assert.Equal(t, "disc", r.Style(0))
	assert.Equal(t, "circle", r.Style(1))
	assert.Equal(t, "square", r.Style(2))
	assert.Equal(t, "disc", r.Style(3))
	assert.Equal(t, "disc", r.Style(10))

	custom := NewRenderer(testCountries, WithPalette("decimal"), WithFallbackStyle("none"))
	assert.Equal(t, "decimal", custom.Style(0))
	assert.Equal(t, "none", custom.Style(1))
}

func TestRender_DeepTreeFallsBack(t *testing.T) {
	r := NewRenderer(testCountries)

	leaf := person("E")
	tree := leaf
	for _, name := range []string{"D", "C", "B", "A"} {
		parent := person(name)
		parent.Children = []core.Person{tree}
		tree = parent
	}

	got := r.Render([]core.Person{tree})
	assert.Contains(t, got, `<ul style="list-style: disc; padding-left: 3rem">`)
	assert.Contains(t, got, `<ul style="list-style: disc; padding-left: 4rem">`)
}

func TestRender_Empty(t *testing.T) {
	r := NewRenderer(testCountries)
	assert.Equal(t, "", r.Render(nil))

	p := person("Solo")
	p.Children = []core.Person{}
	assert.NotContains(t, r.Render([]core.Person{p}), "padding-left: 1rem")
}

func TestRender_EscapesText(t *testing.T) {
	r := NewRenderer(testCountries)
	p := person("<b>Jan</b>")

	got := r.Render([]core.Person{p})
	assert.Contains(t, got, "&lt;b&gt;Jan&lt;/b&gt;")
	assert.NotContains(t, got, "<b>")
}

func TestRender_EscapesApartment(t *testing.T) {
	r := NewRenderer(testCountries)
	p := person("Jan")
	p.ApartmentNumber = ptr("A&B")

	got := r.Render([]core.Person{p})
	assert.Contains(t, got, "Lipowa 7 apart. A&amp;B, 00-001")
}

func TestSortAndRender(t *testing.T) {
	r := NewRenderer(testCountries)
	young := person("Young")
	young.Birthday = born(2000)
	old := person("Old")
	old.Birthday = born(1900)

	got := r.SortAndRender([]core.Person{young, old})
	assert.Less(t, strings.Index(got, "Old"), strings.Index(got, "Young"))
}
