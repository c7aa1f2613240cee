// Copyright © 2026 Grid Router contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package routecfg holds the tunable constants the router depends on —
// grid dimensions and the via-cost knobs the search engines read.
//
// The original tool kept these as module-level Python constants (ROWS,
// LAYERS, VIA_COST). Re-architecture guidance calls for passing an explicit
// value into the grid constructor instead of reaching for process-wide
// statics, so Config is a plain value threaded through grid.New and the
// route engines.
package routecfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the set of dimensions and costs a Grid and its search engines
// are built from.
type Config struct {
	// Rows is the side length of each layer's ROWS x ROWS tile array.
	Rows int `yaml:"rows"`

	// Layers is the nominal layer count. The built grid has Layers+1
	// layers — see the Layer count off-by-one note in SPEC_FULL.md.
	Layers int `yaml:"layers"`

	// ViaCost is the edge weight charged for a move between adjacent
	// tiles on different layers. Used by Dijkstra and A* for edge weight;
	// A*'s heuristic layer term is HeuristicLayerWeight, which Default
	// sets to the same value.
	ViaCost int `yaml:"via_cost"`

	// HeuristicLayerWeight is A*'s per-layer-step heuristic term. Must be
	// <= ViaCost for the heuristic to stay admissible; NewAStar enforces
	// this at construction time.
	HeuristicLayerWeight int `yaml:"heuristic_layer_weight"`
}

// Default returns the reference configuration: a 30x30 cross-grid with 5
// nominal layers (6 built) and a via cost of 2.
func Default() Config {
	return Config{
		Rows:                 30,
		Layers:               5,
		ViaCost:              2,
		HeuristicLayerWeight: 2,
	}
}

// Load reads a YAML config file at path. A missing file is not an error —
// Default is returned unchanged, so the router runs out of the box. A file
// that exists but fails to parse returns a wrapped error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("routecfg.Load: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("routecfg.Load: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Attr overrides a single Config field. Used to tweak the defaults from
// code without a YAML file, mirroring the functional-options pattern the
// teacher used for its own engine Config.
type Attr func(*Config)

// Rows overrides the grid side length.
func Rows(n int) Attr { return func(c *Config) { c.Rows = n } }

// Layers overrides the nominal layer count.
func Layers(n int) Attr { return func(c *Config) { c.Layers = n } }

// ViaCost overrides the inter-layer edge weight.
func ViaCost(n int) Attr { return func(c *Config) { c.ViaCost = n } }

// HeuristicLayerWeight overrides A*'s per-layer heuristic term.
func HeuristicLayerWeight(n int) Attr { return func(c *Config) { c.HeuristicLayerWeight = n } }

// Apply returns cfg with every attr applied in order.
func Apply(cfg Config, attrs ...Attr) Config {
	for _, attr := range attrs {
		attr(&cfg)
	}
	return cfg
}
