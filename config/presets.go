// Package config holds the difficulty presets and environment settings the
// command line builds games from.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/they4kman/sweepcore/game"
)

const (
	Beginner     = "beginner"
	Intermediate = "intermediate"
	Expert       = "expert"
)

// Preset is a named grid configuration.
type Preset struct {
	Name string          `yaml:"name"`
	Grid game.GridConfig `yaml:"grid"`
}

// Presets maps a lowercase key, as typed on the command line, to a Preset.
type Presets map[string]Preset

func DefaultPresets() Presets {
	return Presets{
		Beginner: {
			Name: "Beginner",
			Grid: game.GridConfig{Width: 9, Height: 9, MineRatio: 0.12},
		},
		Intermediate: {
			Name: "Intermediate",
			Grid: game.GridConfig{Width: 16, Height: 16, MineRatio: 0.16},
		},
		Expert: {
			Name: "Expert",
			Grid: game.GridConfig{Width: 30, Height: 16, MineRatio: 0.21},
		},
	}
}

// ParsePresets reads YAML presets keyed by name, e.g.
//
//	huge:
//	  name: Huge
//	  grid: {width: 50, height: 30, mineRatio: 0.2}
func ParsePresets(in []byte) (Presets, error) {
	var parsed Presets
	if err := yaml.UnmarshalStrict(in, &parsed); err != nil {
		return nil, errors.Wrap(err, "parse presets")
	}

	presets := make(Presets, len(parsed))
	for key, preset := range parsed {
		if err := preset.Grid.Validate(); err != nil {
			return nil, errors.Wrapf(err, "preset %q", key)
		}
		if preset.Name == "" {
			preset.Name = key
		}
		presets[strings.ToLower(key)] = preset
	}
	return presets, nil
}

// LoadPresets returns the default presets, overridden and extended by the
// YAML file at path. An empty path yields just the defaults.
func LoadPresets(path string) (Presets, error) {
	presets := DefaultPresets()
	if path == "" {
		return presets, nil
	}

	in, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read presets")
	}
	loaded, err := ParsePresets(in)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	for key, preset := range loaded {
		presets[key] = preset
	}
	return presets, nil
}

func (presets Presets) Lookup(key string) (Preset, error) {
	preset, ok := presets[strings.ToLower(key)]
	if !ok {
		return Preset{}, fmt.Errorf("unknown difficulty %q (choose from %s)", key, strings.Join(presets.Keys(), ", "))
	}
	return preset, nil
}

// Keys returns the preset keys in alphabetical order.
func (presets Presets) Keys() []string {
	keys := make([]string, 0, len(presets))
	for key := range presets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
