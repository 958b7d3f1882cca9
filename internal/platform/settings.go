package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/lineage/pkg/family"
)

// Settings mirrors lineage.yaml. Zero values keep the built-in defaults.
type Settings struct {
	Fixtures string `yaml:"fixtures"` // Relative to the settings file.
	Strict   bool   `yaml:"strict"`
	Title    string `yaml:"title"`

	Country struct {
		ID   int    `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"country"`

	Palette       []string `yaml:"palette"`
	FallbackStyle string   `yaml:"fallbackStyle"`

	Events struct {
		Interval    time.Duration `yaml:"interval"`
		Count       int           `yaml:"count"`
		Max         float64       `yaml:"max"`
		Subscribers int           `yaml:"subscribers"`
	} `yaml:"events"`

	Threshold *float64 `yaml:"threshold"`

	dir string
}

// LoadSettings reads the settings file in dir. A missing file yields empty settings.
func LoadSettings(dir string) (*Settings, error) {
	s := &Settings{dir: dir}

	data, err := os.ReadFile(filepath.Join(dir, SettingsFile))
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	return s, nil
}

// FixturesPath resolves the fixture directory relative to the settings file.
// An empty result means the embedded fixtures.
func (s *Settings) FixturesPath() string {
	if s.Fixtures == "" || filepath.IsAbs(s.Fixtures) {
		return s.Fixtures
	}
	return filepath.Join(s.dir, s.Fixtures)
}

// Options converts the settings to functional options.
// Callers append their own options afterwards so flags take precedence.
func (s *Settings) Options() []Option {
	var opts []Option
	if s.Strict {
		opts = append(opts, WithStrict(true))
	}
	if s.Title != "" {
		opts = append(opts, WithTitle(s.Title))
	}
	if s.Country.ID != 0 || s.Country.Name != "" {
		id := s.Country.ID
		if id == 0 {
			id = family.DefaultCountryID
		}
		opts = append(opts, WithDefaultCountry(id, s.Country.Name))
	}
	if len(s.Palette) > 0 {
		opts = append(opts, WithPalette(s.Palette...))
	}
	if s.FallbackStyle != "" {
		opts = append(opts, WithFallbackStyle(s.FallbackStyle))
	}
	if s.Events.Interval > 0 {
		opts = append(opts, WithInterval(s.Events.Interval))
	}
	if s.Events.Count > 0 {
		opts = append(opts, WithCount(s.Events.Count))
	}
	if s.Events.Max > 0 {
		opts = append(opts, WithMax(s.Events.Max))
	}
	if s.Events.Subscribers > 0 {
		opts = append(opts, WithSubscribers(s.Events.Subscribers))
	}
	if s.Threshold != nil {
		opts = append(opts, WithThreshold(*s.Threshold))
	}
	return opts
}
