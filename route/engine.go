// Copyright © 2026 Grid Router contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package route implements the single-source/single-sink shortest-path
// engines the fan-out orchestrator (package fanout) drives: A*, Dijkstra,
// and BFS, sharing one Engine contract so the orchestrator can be written
// against the interface rather than any one algorithm.
package route

import (
	"context"
	"errors"

	"github.com/laytrace/gridrouter/grid"
)

// ErrNoPath is returned when the search frontier empties before the sink
// is reached.
var ErrNoPath = errors.New("route: no path found")

// ErrInvalidEndpoint is returned when source and sink are the same tile,
// or either is currently a barrier.
var ErrInvalidEndpoint = errors.New("route: invalid endpoint")

// Path is an ordered, non-repeating sequence of tiles from source to sink,
// plus the cost the engine that found it assigned.
type Path struct {
	Tiles []*grid.Tile
	Cost  int
}

// Empty reports whether the path carries no tiles.
func (p Path) Empty() bool { return len(p.Tiles) == 0 }

// Source returns the path's first tile, or nil if the path is empty.
func (p Path) Source() *grid.Tile {
	if p.Empty() {
		return nil
	}
	return p.Tiles[0]
}

// Sink returns the path's last tile, or nil if the path is empty.
func (p Path) Sink() *grid.Tile {
	if p.Empty() {
		return nil
	}
	return p.Tiles[len(p.Tiles)-1]
}

// ProgressFunc is invoked once per tile expansion so a presentation layer
// can render the search frontier as it grows. A nil ProgressFunc is a
// valid no-op value, mirroring the optional Graphics.update sink described
// in spec.md §6.
type ProgressFunc func(tile *grid.Tile)

func (p ProgressFunc) call(tile *grid.Tile) {
	if p != nil {
		p(tile)
	}
}

// Engine is the capability every search algorithm implements: route
// between two tiles, report whether it is cost-weighted (so the caller
// knows how to compare competing paths), and name itself for status
// messages.
type Engine interface {
	Route(ctx context.Context, source, sink *grid.Tile, progress ProgressFunc) (Path, error)
	IsWeighted() bool
	Name() string
}

// validateEndpoints enforces the common preconditions shared by every
// engine: source and sink must be distinct, non-barrier tiles.
func validateEndpoints(source, sink *grid.Tile) error {
	if source == sink {
		return ErrInvalidEndpoint
	}
	if source.IsBarrier() || sink.IsBarrier() {
		return ErrInvalidEndpoint
	}
	return nil
}

// moveCost is the edge weight between two adjacent tiles: viaCost if they
// are on different layers, 1 otherwise.
func moveCost(a, b *grid.Tile, viaCost int) int {
	if a.LayerIndex != b.LayerIndex {
		return viaCost
	}
	return 1
}

// abs is unexported int absolute value; math.Abs works on floats only and
// this package never needs floating point.
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// reconstructPath walks cameFrom from sink back to source and reverses it,
// assigning cost. Shared by every engine's success path.
func reconstructPath(cameFrom map[*grid.Tile]*grid.Tile, source, sink *grid.Tile, cost int) Path {
	tiles := []*grid.Tile{sink}
	for current := sink; current != source; {
		prev := cameFrom[current]
		tiles = append(tiles, prev)
		current = prev
	}
	for i, j := 0, len(tiles)-1; i < j; i, j = i+1, j-1 {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
	return Path{Tiles: tiles, Cost: cost}
}
