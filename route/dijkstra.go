// Copyright © 2026 Grid Router contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package route

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/laytrace/gridrouter/grid"
	"github.com/laytrace/gridrouter/routecfg"
)

// Dijkstra is AStar with a heuristic of zero: it explores purely by
// accumulated cost. Grounded on original_source/asic-router's
// DijkstraRouter.route, which is AStarRouter.route with its heuristic call
// deleted. Kept as its own type (rather than AStar with heuristic forced
// to zero) because it reports its own Name and because a caller that wants
// the unweighted-frontier guarantee should not depend on AStar's
// admissibility panic in NewAStar.
type Dijkstra struct {
	grid *grid.Grid
	cfg  routecfg.Config
}

// NewDijkstra builds a Dijkstra engine bound to g, using cfg.ViaCost as
// edge weight.
func NewDijkstra(g *grid.Grid, cfg routecfg.Config) *Dijkstra {
	return &Dijkstra{grid: g, cfg: cfg}
}

// Name implements Engine.
func (d *Dijkstra) Name() string { return "Dijkstra Router" }

// IsWeighted implements Engine.
func (d *Dijkstra) IsWeighted() bool { return true }

// Route implements Engine.
func (d *Dijkstra) Route(ctx context.Context, source, sink *grid.Tile, progress ProgressFunc) (Path, error) {
	if err := validateEndpoints(source, sink); err != nil {
		return Path{}, err
	}

	gScore := map[*grid.Tile]int{source: 0}
	cameFrom := map[*grid.Tile]*grid.Tile{}
	inFrontier := map[*grid.Tile]bool{source: true}

	var seq int
	open := &aStarQueue{{tile: source, f: 0, seq: seq}}
	heap.Init(open)

	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return Path{}, fmt.Errorf("route.Dijkstra.Route: %w: %w", ErrNoPath, err)
		}

		current := heap.Pop(open).(*aStarItem).tile
		delete(inFrontier, current)

		if current == sink {
			d.grid.Idlize()
			return reconstructPath(cameFrom, source, sink, gScore[sink]), nil
		}

		for _, neighbor := range current.Neighbors() {
			cost := gScore[current] + moveCost(current, neighbor, d.cfg.ViaCost)
			existing, known := gScore[neighbor]
			if !known || cost < existing {
				cameFrom[neighbor] = current
				gScore[neighbor] = cost
				if !inFrontier[neighbor] {
					seq++
					heap.Push(open, &aStarItem{tile: neighbor, f: cost, seq: seq})
					inFrontier[neighbor] = true
					neighbor.SetState(grid.StateOpen)
				}
			}
		}

		progress.call(current)

		if current != source {
			current.SetState(grid.StateClosed)
		}
	}

	return Path{}, ErrNoPath
}
