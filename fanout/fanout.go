// Copyright © 2026 Grid Router contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package fanout drives the multi-sink net construction: given one source
// and an ordered list of sinks, it runs a route.Engine repeatedly, always
// growing the net from the cheapest available branch point, and commits
// the resulting geometry onto the grid.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/laytrace/gridrouter/grid"
	"github.com/laytrace/gridrouter/route"
)

// ErrEmptySinks is returned when FanOutRoute is called with no sinks —
// the EmptyInput error kind. It is the only error FanOutRoute returns;
// every other recoverable condition (NoPath, InvalidEndpoint) is logged
// and skipped per spec.md §7's policy.
var ErrEmptySinks = errors.New("fanout: no sinks given")

// StatusFunc receives human-readable progress strings ("A* Router is
// currently running...", "Done!") for a presentation layer to display. A
// nil StatusFunc is a valid no-op, matching the Graphics.update
// collaborator contract.
type StatusFunc func(status string)

func (f StatusFunc) call(status string) {
	if f != nil {
		f(status)
	}
}

// Orchestrator is the fan-out driver bound to one grid and one search
// engine. Build one per net; the engine may be swapped between nets by
// constructing a new Orchestrator.
type Orchestrator struct {
	grid        *grid.Grid
	engine      route.Engine
	showUpdates bool
	status      StatusFunc
	log         *slog.Logger
}

// Option configures an Orchestrator at construction.
type Option func(*Orchestrator)

// WithStatus sets the status string sink.
func WithStatus(f StatusFunc) Option {
	return func(o *Orchestrator) { o.status = f }
}

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// New builds an Orchestrator bound to g and engine, with graphics updates
// enabled by default (matching Router.__init__'s _show_updates = True).
func New(g *grid.Grid, engine route.Engine, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		grid:        g,
		engine:      engine,
		showUpdates: true,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// EnableGraphicsUpdates turns on progress callbacks for subsequent
// FanOutRoute calls.
func (o *Orchestrator) EnableGraphicsUpdates() { o.showUpdates = true }

// DisableGraphicsUpdates turns off progress callbacks for subsequent
// FanOutRoute calls.
func (o *Orchestrator) DisableGraphicsUpdates() { o.showUpdates = false }

// Net is the result of a completed fan-out: the source tile and every
// path committed while connecting it to its sinks. Its tiles are already
// mutated in place on the grid (state barrier, kind metal/via/contact);
// Net is a record of what was built, not a separate owning structure.
type Net struct {
	Source *grid.Tile
	Paths  []route.Path
}

// FanOutRoute routes source to every sink, reusing earlier paths as
// branch points, and commits the resulting net's geometry onto the grid.
// It implements spec.md §4.3 steps 0-4.
func (o *Orchestrator) FanOutRoute(ctx context.Context, source *grid.Tile, sinks []*grid.Tile, progress route.ProgressFunc) (Net, error) {
	if len(sinks) == 0 {
		return Net{}, ErrEmptySinks
	}

	// Step 0 — neighbor refresh.
	o.grid.RefreshNeighbors()

	o.status.call(fmt.Sprintf("%s is currently running: trying to find the best route", o.engine.Name()))

	// Step 1 — seed path: route source to every sink, keep the cheapest.
	candidates := make([]route.Path, len(sinks))
	for i, sink := range sinks {
		p := o.progressFor(i, progress)
		path, err := o.engine.Route(ctx, source, sink, p)
		if err != nil {
			row, col, layer := sink.Position()
			o.log.Warn("fanout: seed candidate failed", "row", row, "col", col, "layer", layer, "err", err)
			continue
		}
		candidates[i] = path
	}

	seedIndex, seedPath := bestPath(candidates)
	if seedPath.Empty() {
		row, col, layer := source.Position()
		o.log.Warn("fanout: no sink reachable from source", "row", row, "col", col, "layer", layer)
		return Net{Source: source}, nil
	}
	for i, p := range candidates {
		if i != seedIndex {
			resetPath(p)
		}
	}

	fanOutSet := append([]*grid.Tile(nil), seedPath.Tiles...)
	netPaths := []route.Path{seedPath}

	// Step 2 — fan-out growth: each remaining sink branches off the
	// cheapest point in the fan-out set accumulated so far.
	for i, sink := range sinks {
		if i == seedIndex {
			continue
		}

		branchCandidates := make([]route.Path, len(fanOutSet))
		for j, v := range fanOutSet {
			path, err := o.engine.Route(ctx, v, sink, nil)
			if err != nil {
				continue
			}
			branchCandidates[j] = path
			o.status.call("constructing the minimum cost fan-out route")
		}

		branchIndex, branchPath := bestPath(branchCandidates)
		if branchPath.Empty() {
			row, col, layer := sink.Position()
			o.log.Warn("fanout: sink unreachable from fan-out set", "row", row, "col", col, "layer", layer)
			continue
		}
		for j, p := range branchCandidates {
			if j != branchIndex {
				resetPath(p)
			}
		}

		commitPath(branchPath)
		commitBranch(fanOutSet[branchIndex])

		fanOutSet = append(fanOutSet, branchPath.Tiles...)
		netPaths = append(netPaths, branchPath)
	}

	// Step 3 — top-layer contact marking, for source and every sink.
	markTopLayerContact(o.grid, source)
	for _, sink := range sinks {
		markTopLayerContact(o.grid, sink)
	}

	// Step 4 — finalize geometry. The seed path is committed here for the
	// first time; commitPath is idempotent, so re-running it over every
	// branch path already committed in step 2 (§9 point 4) is harmless.
	for _, p := range netPaths {
		commitPath(p)
	}

	o.status.call("Done!")
	return Net{Source: source, Paths: netPaths}, nil
}

// progressFor mirrors the original's "only animate the first few seed
// searches" throttle (router.py: show_updates and i < 3) so a caller
// driving a slow terminal/graphical sink isn't flooded on wide fan-outs.
func (o *Orchestrator) progressFor(i int, progress route.ProgressFunc) route.ProgressFunc {
	if !o.showUpdates || i >= 3 {
		return nil
	}
	return progress
}

// bestPath returns the index and value of the cheapest non-empty
// candidate. Unlike the original's __find_opt_path, an empty (failed)
// candidate is never treated as cost zero — spec.md §7 requires NoPath to
// be skipped, not selected as the cheapest route.
func bestPath(candidates []route.Path) (int, route.Path) {
	bestIndex := -1
	bestCost := 0
	for i, p := range candidates {
		if p.Empty() {
			continue
		}
		if bestIndex == -1 || p.Cost < bestCost {
			bestIndex = i
			bestCost = p.Cost
		}
	}
	if bestIndex == -1 {
		return -1, route.Path{}
	}
	return bestIndex, candidates[bestIndex]
}

// resetPath undoes a discarded candidate's tiles back to untouched metal,
// mirroring Router.__remove_path.
func resetPath(p route.Path) {
	for _, t := range p.Tiles {
		t.SetKind(grid.KindMetal)
		t.SetState(grid.StateIdle)
	}
}

// commitBranch retypes the fan-out-set tile a new path branched off from
// to contact, even if it already belongs to a previously committed path
// (a supplemented behavior — see DESIGN.md).
func commitBranch(v *grid.Tile) {
	v.SetKind(grid.KindContact)
}

// commitPath implements spec.md §4.4 build_path_tiles: endpoints become
// contacts, layer-change tiles become vias, and every tile in the path
// becomes a barrier. Idempotent by construction — applying it twice to
// the same path leaves the same result, since every assignment sets an
// absolute value rather than toggling.
func commitPath(p route.Path) {
	if p.Empty() {
		return
	}

	tiles := p.Tiles
	if tiles[0].Kind() == grid.KindMetal {
		tiles[0].SetKind(grid.KindContact)
	}
	last := len(tiles) - 1
	if tiles[last].Kind() == grid.KindMetal {
		tiles[last].SetKind(grid.KindContact)
	}

	for i := 1; i < len(tiles); i++ {
		if tiles[i].LayerIndex != tiles[i-1].LayerIndex {
			tiles[i].SetKind(grid.KindVia)
			tiles[i-1].SetKind(grid.KindVia)
		}
	}

	for _, t := range tiles {
		t.SetState(grid.StateBarrier)
	}
}

// markTopLayerContact sets the tile at t's (row, col) on layer
// cfg.Layers-1 (one below the topmost built layer produced by the +1
// quirk — see SPEC_FULL.md Open Question 1) to contact, and the tile on
// the layer below that, if any, to metal — the visible "pin" stack for
// every net endpoint. When cfg.Layers is 1 the marked layer is layer 0,
// which may be the endpoint's own tile.
func markTopLayerContact(g *grid.Grid, t *grid.Tile) {
	top := g.Config().Layers - 1
	row, col, _ := t.Position()

	if pin, ok := g.TileAt(top, row, col); ok {
		pin.SetKind(grid.KindContact)
	}
	if below, ok := g.TileAt(top-1, row, col); ok {
		below.SetKind(grid.KindMetal)
	}
}
