// Copyright © 2026 Grid Router contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package route

import (
	"context"
	"fmt"

	"github.com/laytrace/gridrouter/grid"
)

// BFS is the unweighted search engine: every edge (same-layer step or via)
// costs the same, so the first time the frontier reaches sink it has the
// fewest-hops path. Its reported Cost is the tile count of that path, not
// the edge count, matching __calc_cost's unweighted branch (return
// len(path)) in original_source/asic-router/router.py. Grounded on
// original_source/asic-router's MazeRouter.route (a breadth-first maze
// solver over the same tile graph).
//
// spec.md's stated common behavior — source is never forced to closed —
// is followed here even though MazeRouter.route's original form explicitly
// opens then never closes its start tile as a side effect of a different
// loop shape; the declared common behavior is treated as authoritative
// over that one variant's incidental quirk, so BFS guards
// "current != source" exactly like AStar and Dijkstra.
type BFS struct {
	grid *grid.Grid
}

// NewBFS builds a BFS engine bound to g.
func NewBFS(g *grid.Grid) *BFS {
	return &BFS{grid: g}
}

// Name implements Engine.
func (b *BFS) Name() string { return "Breadth-First Router" }

// IsWeighted implements Engine.
func (b *BFS) IsWeighted() bool { return false }

// Route implements Engine.
func (b *BFS) Route(ctx context.Context, source, sink *grid.Tile, progress ProgressFunc) (Path, error) {
	if err := validateEndpoints(source, sink); err != nil {
		return Path{}, err
	}

	cameFrom := map[*grid.Tile]*grid.Tile{}
	visited := map[*grid.Tile]bool{source: true}
	queue := []*grid.Tile{source}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return Path{}, fmt.Errorf("route.BFS.Route: %w: %w", ErrNoPath, err)
		}

		current := queue[0]
		queue = queue[1:]

		if current == sink {
			b.grid.Idlize()
			path := reconstructPath(cameFrom, source, sink, 0)
			path.Cost = len(path.Tiles)
			return path, nil
		}

		for _, neighbor := range current.Neighbors() {
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			cameFrom[neighbor] = current
			queue = append(queue, neighbor)
			neighbor.SetState(grid.StateOpen)
		}

		progress.call(current)

		if current != source {
			current.SetState(grid.StateClosed)
		}
	}

	return Path{}, ErrNoPath
}
