package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/lineage/pkg/core"
)

// peopleFile is the on-disk shape of a people fixture.
type peopleFile struct {
	People []personRecord `json:"people" yaml:"people" validate:"dive"`
}

// countriesFile is the on-disk shape of a countries fixture.
type countriesFile struct {
	Countries []countryRecord `json:"countries" yaml:"countries" validate:"dive"`
}

type personRecord struct {
	Name            string         `json:"name" yaml:"name" validate:"required"`
	Surname         string         `json:"surname" yaml:"surname" validate:"required"`
	Birthday        date           `json:"birthday" yaml:"birthday" validate:"required"`
	Street          string         `json:"street" yaml:"street"`
	HouseNumber     string         `json:"houseNumber" yaml:"houseNumber"`
	ApartmentNumber *string        `json:"apartmentNumber,omitempty" yaml:"apartmentNumber"`
	ZipCode         string         `json:"zipCode" yaml:"zipCode"`
	City            string         `json:"city" yaml:"city"`
	CountryID       *int           `json:"countryId,omitempty" yaml:"countryId" validate:"omitempty,gt=0"`
	Children        []personRecord `json:"children,omitempty" yaml:"children" validate:"omitempty,dive"`
}

type countryRecord struct {
	ID   int    `json:"id" yaml:"id" validate:"gt=0"`
	Name string `json:"name" yaml:"name" validate:"required"`
}

const childrenKey = "children"

// pruneChildren drops "children" values that are not lists, so that the
// format decoder sees only well-shaped records and applies its strictness
// to every level of the tree. data is returned untouched when nothing was pruned.
func pruneChildren(ext string, data []byte) ([]byte, error) {
	switch ext {
	case ".yaml", ".yml":
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid yaml: %w", err)
		}
		if !pruneYAML(&doc) {
			return data, nil
		}
		return yaml.Marshal(&doc)
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		var doc any
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		if !pruneJSON(doc) {
			return data, nil
		}
		return json.Marshal(doc)
	}
	return data, nil
}

func pruneYAML(n *yaml.Node) bool {
	changed := false
	if n.Kind == yaml.MappingNode {
		kept := n.Content[:0]
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Value == childrenKey && !isSequence(value) {
				changed = true
				continue
			}
			kept = append(kept, key, value)
		}
		n.Content = kept
	}
	for _, c := range n.Content {
		if pruneYAML(c) {
			changed = true
		}
	}
	return changed
}

func isSequence(n *yaml.Node) bool {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n.Kind == yaml.SequenceNode
}

func pruneJSON(v any) bool {
	changed := false
	switch t := v.(type) {
	case map[string]any:
		if c, ok := t[childrenKey]; ok {
			if _, isList := c.([]any); !isList {
				delete(t, childrenKey)
				changed = true
			}
		}
		for _, child := range t {
			if pruneJSON(child) {
				changed = true
			}
		}
	case []any:
		for _, item := range t {
			if pruneJSON(item) {
				changed = true
			}
		}
	}
	return changed
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// date accepts RFC 3339 timestamps and plain calendar dates.
type date struct {
	time.Time
}

func parseDate(s string) (date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return date{Time: t}, nil
		}
	}
	return date{}, fmt.Errorf("unsupported date %q", s)
}

func (d *date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := parseDate(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := parseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(date); ok {
			return d.Time
		}
		return nil
	}, date{})
	return v
}

func (r personRecord) toPerson() core.Person {
	p := core.Person{
		Name:            r.Name,
		Surname:         r.Surname,
		Birthday:        r.Birthday.Time,
		Street:          r.Street,
		HouseNumber:     r.HouseNumber,
		ApartmentNumber: r.ApartmentNumber,
		ZipCode:         r.ZipCode,
		City:            r.City,
		CountryID:       r.CountryID,
	}
	if len(r.Children) > 0 {
		p.Children = toPeople(r.Children)
	}
	return p
}

func toPeople(records []personRecord) []core.Person {
	return lo.Map(records, func(r personRecord, _ int) core.Person {
		return r.toPerson()
	})
}

func toCountries(records []countryRecord) []core.Country {
	return lo.Map(records, func(r countryRecord, _ int) core.Country {
		return core.Country{ID: r.ID, Name: r.Name}
	})
}
