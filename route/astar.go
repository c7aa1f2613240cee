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

// AStar is a priority-search engine using the Manhattan-plus-via-penalty
// heuristic described in spec.md §4.2. Grounded on the teacher's
// grid/path.go A* implementation (a heap-based frontier instead of
// path.go's O(n) closest() scan — see DESIGN.md; score maps are allocated
// fresh on every Route call rather than reused), reconciled with the original tool's per-layer g/f score maps
// and insertion-counter tie-breaking.
type AStar struct {
	grid *grid.Grid
	cfg  routecfg.Config
}

// NewAStar builds an A* engine bound to g, using cfg's ViaCost for edge
// weight and cfg.HeuristicLayerWeight for the heuristic's per-layer term.
// It panics if HeuristicLayerWeight exceeds ViaCost — that configuration
// breaks A* admissibility (Testable Property 5) and is a programmer error
// to catch at construction, not at search time.
func NewAStar(g *grid.Grid, cfg routecfg.Config) *AStar {
	if cfg.HeuristicLayerWeight > cfg.ViaCost {
		panic(fmt.Sprintf("route.NewAStar: heuristic layer weight %d exceeds via cost %d, not admissible", cfg.HeuristicLayerWeight, cfg.ViaCost))
	}
	return &AStar{grid: g, cfg: cfg}
}

// Name implements Engine.
func (a *AStar) Name() string { return "A* Router" }

// IsWeighted implements Engine.
func (a *AStar) IsWeighted() bool { return true }

// heuristic is the Manhattan-plus-via-penalty estimate from tile a to b.
func (a *AStar) heuristic(from, to *grid.Tile) int {
	dr := abs(from.Row - to.Row)
	dc := abs(from.Col - to.Col)
	dl := abs(from.LayerIndex - to.LayerIndex)
	return dr + dc + a.cfg.HeuristicLayerWeight*dl
}

// Route implements Engine.
func (a *AStar) Route(ctx context.Context, source, sink *grid.Tile, progress ProgressFunc) (Path, error) {
	if err := validateEndpoints(source, sink); err != nil {
		return Path{}, err
	}

	gScore := map[*grid.Tile]int{source: 0}
	cameFrom := map[*grid.Tile]*grid.Tile{}
	inFrontier := map[*grid.Tile]bool{source: true}

	var seq int
	open := &aStarQueue{{tile: source, f: a.heuristic(source, sink), seq: seq}}
	heap.Init(open)

	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return Path{}, fmt.Errorf("route.AStar.Route: %w: %w", ErrNoPath, err)
		}

		current := heap.Pop(open).(*aStarItem).tile
		delete(inFrontier, current)

		if current == sink {
			a.grid.Idlize()
			return reconstructPath(cameFrom, source, sink, gScore[sink]), nil
		}

		for _, neighbor := range current.Neighbors() {
			cost := gScore[current] + moveCost(current, neighbor, a.cfg.ViaCost)
			existing, known := gScore[neighbor]
			if !known || cost < existing {
				cameFrom[neighbor] = current
				gScore[neighbor] = cost
				if !inFrontier[neighbor] {
					seq++
					heap.Push(open, &aStarItem{tile: neighbor, f: cost + a.heuristic(neighbor, sink), seq: seq})
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

// aStarItem is one entry in the A* frontier.
type aStarItem struct {
	tile *grid.Tile
	f    int
	seq  int // insertion counter, breaks ties on f (FIFO among equals).
}

// aStarQueue is a container/heap.Interface min-heap ordered by (f, seq).
type aStarQueue []*aStarItem

func (q aStarQueue) Len() int { return len(q) }
func (q aStarQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}
func (q aStarQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *aStarQueue) Push(x any) {
	*q = append(*q, x.(*aStarItem))
}

func (q *aStarQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
