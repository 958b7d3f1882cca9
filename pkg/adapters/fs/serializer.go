package fs

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Decoder defines how to read a specific fixture format.
type Decoder interface {
	// Decode reads r into v.
	Decode(r io.Reader, v any) error
}

// DefaultDecoders returns the standard set of decoders keyed by file extension.
func DefaultDecoders(strict bool) map[string]Decoder {
	return map[string]Decoder{
		".json": NewJSONDecoder(strict),
		".yaml": NewYAMLDecoder(strict),
		".yml":  NewYAMLDecoder(strict),
	}
}

// --- JSON Decoder ---

// JSONDecoder reads JSON fixtures.
type JSONDecoder struct {
	// Strict rejects unknown fields.
	Strict bool
}

// NewJSONDecoder creates a new JSON decoder.
func NewJSONDecoder(strict bool) *JSONDecoder {
	return &JSONDecoder{Strict: strict}
}

func (d *JSONDecoder) Decode(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	if d.Strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// --- YAML Decoder ---

// YAMLDecoder reads YAML fixtures.
type YAMLDecoder struct {
	// Strict rejects unknown fields.
	Strict bool
}

// NewYAMLDecoder creates a new YAML decoder.
func NewYAMLDecoder(strict bool) *YAMLDecoder {
	return &YAMLDecoder{Strict: strict}
}

func (d *YAMLDecoder) Decode(r io.Reader, v any) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(d.Strict)
	if err := decoder.Decode(v); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("invalid yaml: %w", err)
	}
	return nil
}
