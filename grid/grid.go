// Copyright © 2026 Grid Router contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package grid

import (
	"fmt"

	"github.com/laytrace/gridrouter/routecfg"
)

// Grid is the 3-D container of tiles: cfg.Layers+1 layers of a
// cfg.Rows x cfg.Rows metal array apiece, built once and mutated in place
// for the rest of its life. Tiles live in one flat arena; view is a
// cached [][][]*Tile view into that same arena so Layers() need not
// allocate on every call.
type Grid struct {
	cfg        routecfg.Config
	layerDescs []Layer
	tiles      []Tile
	view       [][][]*Tile
}

// New builds a cross-layer grid from cfg: layers alternate orientation
// starting at Horizontal for layer 0, and the grid has cfg.Layers+1 layers
// (see SPEC_FULL.md Open Question 1 — the extra layer is intentional, not
// a bug). Every tile starts as idle metal.
func New(cfg routecfg.Config) *Grid {
	g := &Grid{
		cfg:        cfg,
		layerDescs: buildCrossGridLayers(cfg.Layers),
	}

	layerCount := len(g.layerDescs)
	g.tiles = make([]Tile, layerCount*cfg.Rows*cfg.Rows)
	g.view = make([][][]*Tile, layerCount)
	for layer := range g.layerDescs {
		g.view[layer] = make([][]*Tile, cfg.Rows)
		for row := 0; row < cfg.Rows; row++ {
			g.view[layer][row] = make([]*Tile, cfg.Rows)
			for col := 0; col < cfg.Rows; col++ {
				t := &g.tiles[g.index(layer, row, col)]
				t.Row, t.Col, t.LayerIndex = row, col, layer
				t.layer = &g.layerDescs[layer]
				t.kind = KindMetal
				t.state = StateIdle
				g.view[layer][row][col] = t
			}
		}
	}
	return g
}

// Config returns the configuration the grid was built from.
func (g *Grid) Config() routecfg.Config { return g.cfg }

// LayerCount returns the number of layers actually built, cfg.Layers+1.
func (g *Grid) LayerCount() int { return len(g.layerDescs) }

// Rows returns the grid's side length.
func (g *Grid) Rows() int { return g.cfg.Rows }

// Layers returns the grid as a 3-D indexable container of tiles, indexed
// [layer][row][col].
func (g *Grid) Layers() [][][]*Tile { return g.view }

// LayerAt returns the descriptor for the given layer index.
func (g *Grid) LayerAt(index int) Layer { return g.layerDescs[index] }

// TileAt returns the tile at (layer, row, col) and whether that position
// is within bounds.
func (g *Grid) TileAt(layer, row, col int) (*Tile, bool) {
	if layer < 0 || layer >= len(g.layerDescs) || row < 0 || row >= g.cfg.Rows || col < 0 || col >= g.cfg.Rows {
		return nil, false
	}
	return g.view[layer][row][col], true
}

func (g *Grid) index(layer, row, col int) int {
	return layer*g.cfg.Rows*g.cfg.Rows + row*g.cfg.Rows + col
}

// UpdateNeighbors recomputes t's neighbor list in place: same-layer
// neighbors along the layer's preferred orientation, plus the tiles
// directly above and below. A candidate is excluded iff it is currently a
// barrier.
//
// The same-layer bounds intentionally preserve the asymmetry documented in
// SPEC_FULL.md Open Question 2: the high-side guard is "< Rows-step" but
// the low-side guard is "> step", not ">= step", so a tile at row/col
// index 1 has no same-layer neighbor at index 0, although index 0 does
// list index 1. This is a known quirk of the original tool,
// not a bug fixed here — see grid_test.go's TestLowBoundaryUnreachable.
func (g *Grid) UpdateNeighbors(t *Tile) {
	t.neighbors = t.neighbors[:0]
	row, col, index := t.Position()
	const step = 1

	switch t.layer.Orientation {
	case Horizontal:
		if col < g.cfg.Rows-step { // east
			if n, _ := g.TileAt(index, row, col+step); !n.IsBarrier() {
				t.neighbors = append(t.neighbors, n)
			}
		}
		if col > step { // west
			if n, _ := g.TileAt(index, row, col-step); !n.IsBarrier() {
				t.neighbors = append(t.neighbors, n)
			}
		}
	case Vertical:
		if row < g.cfg.Rows-step { // south
			if n, _ := g.TileAt(index, row+step, col); !n.IsBarrier() {
				t.neighbors = append(t.neighbors, n)
			}
		}
		if row > step { // north
			if n, _ := g.TileAt(index, row-step, col); !n.IsBarrier() {
				t.neighbors = append(t.neighbors, n)
			}
		}
	}

	if index < g.cfg.Layers { // up
		if n, _ := g.TileAt(index+1, row, col); !n.IsBarrier() {
			t.neighbors = append(t.neighbors, n)
		}
	}
	if index > 0 { // down
		if n, _ := g.TileAt(index-1, row, col); !n.IsBarrier() {
			t.neighbors = append(t.neighbors, n)
		}
	}
}

// RefreshNeighbors recomputes the neighbor list for every tile in the
// grid. The fan-out orchestrator calls this once before routing a net
// (spec.md §4.3 step 0) since prior commits may have added barriers.
func (g *Grid) RefreshNeighbors() {
	for _, layer := range g.view {
		for _, row := range layer {
			for _, t := range row {
				g.UpdateNeighbors(t)
			}
		}
	}
}

// Idlize resets every open or closed tile back to idle, clearing search
// scratch state. Barrier, start and end tiles are left untouched — in
// particular a source/sink's start/end mark survives repeated Idlize calls
// between searches (SPEC_FULL.md Open Question 5).
func (g *Grid) Idlize() {
	for _, layer := range g.view {
		for _, row := range layer {
			for _, t := range row {
				if t.state == StateOpen || t.state == StateClosed {
					t.state = StateIdle
				}
			}
		}
	}
}

// CheckInvariants verifies neighbor symmetry and barrier exclusion across
// the whole grid. It is for debug/test use only — spec.md classifies a
// failure here as the unrecoverable StaleNeighbors error kind, so no
// production code path calls it.
func (g *Grid) CheckInvariants() error {
	for _, layer := range g.view {
		for _, row := range layer {
			for _, t := range row {
				for _, n := range t.Neighbors() {
					if n == t {
						return fmt.Errorf("grid.CheckInvariants: tile %v is its own neighbor", t)
					}
					if n.IsBarrier() {
						return fmt.Errorf("grid.CheckInvariants: barrier tile %v present in neighbor list of %v", n, t)
					}
					if !t.IsBarrier() && !n.IsBarrier() && !contains(n.Neighbors(), t) {
						return fmt.Errorf("grid.CheckInvariants: neighbor relation %v -> %v is not symmetric", t, n)
					}
				}
			}
		}
	}
	return nil
}

func contains(tiles []*Tile, target *Tile) bool {
	for _, t := range tiles {
		if t == target {
			return true
		}
	}
	return false
}
