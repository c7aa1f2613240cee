// Copyright © 2026 Grid Router contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package fanout

import (
	"context"
	"testing"

	"github.com/laytrace/gridrouter/grid"
	"github.com/laytrace/gridrouter/route"
	"github.com/laytrace/gridrouter/routecfg"
)

func testGrid(t *testing.T, rows, layers int) *grid.Grid {
	t.Helper()
	cfg := routecfg.Apply(routecfg.Default(), routecfg.Rows(rows), routecfg.Layers(layers))
	return grid.New(cfg)
}

func TestFanOutRouteRejectsEmptySinks(t *testing.T) {
	g := testGrid(t, 10, 2)
	eng := route.NewAStar(g, g.Config())
	o := New(g, eng)
	source, _ := g.TileAt(0, 5, 5)

	if _, err := o.FanOutRoute(context.Background(), source, nil, nil); err != ErrEmptySinks {
		t.Errorf("err = %v, want ErrEmptySinks", err)
	}
}

// TestFanOutRouteConnectsAllSinks is S4: fan-out with one source and
// three sinks on an empty grid must connect every sink, with every
// endpoint typed contact after commit.
func TestFanOutRouteConnectsAllSinks(t *testing.T) {
	g := testGrid(t, 11, 1)
	eng := route.NewAStar(g, g.Config())
	o := New(g, eng)

	source, _ := g.TileAt(0, 5, 5)
	sinkA, _ := g.TileAt(0, 5, 8)
	sinkB, _ := g.TileAt(0, 5, 2)
	sinkC, _ := g.TileAt(1, 5, 5)
	sinks := []*grid.Tile{sinkA, sinkB, sinkC}

	net, err := o.FanOutRoute(context.Background(), source, sinks, nil)
	if err != nil {
		t.Fatalf("FanOutRoute: %v", err)
	}
	if len(net.Paths) != len(sinks) {
		t.Errorf("len(net.Paths) = %d, want %d", len(net.Paths), len(sinks))
	}

	for _, sink := range []*grid.Tile{sinkA, sinkB} {
		if sink.Kind() != grid.KindContact {
			t.Errorf("sink %v kind = %v, want contact", sink, sink.Kind())
		}
		if sink.State() != grid.StateBarrier {
			t.Errorf("sink %v state = %v, want barrier", sink, sink.State())
		}
	}

	// sinkC is a single via hop from source (cost 2, cheaper than sinkA/
	// sinkB's cost-3 same-layer runs), so it becomes the seed path.
	// commitPath's layer-change rule retypes a via-reached endpoint to
	// via, not contact. Its pin marking (layer cfg.Layers-1 = 0 here) lands
	// on source's tile at the same (row, col), not on sinkC's own tile.
	if sinkC.Kind() != grid.KindVia {
		t.Errorf("sinkC kind = %v, want via (reached by a layer change)", sinkC.Kind())
	}
	if sinkC.State() != grid.StateBarrier {
		t.Errorf("sinkC state = %v, want barrier", sinkC.State())
	}
}

// TestFanOutRouteSkipsUnreachableSink is S5: a sink walled off by
// barriers on all sides must be skipped, not committed, and must not
// abort routing of the remaining sinks.
func TestFanOutRouteSkipsUnreachableSink(t *testing.T) {
	g := testGrid(t, 10, 1)
	eng := route.NewAStar(g, g.Config())
	o := New(g, eng)

	source, _ := g.TileAt(0, 5, 1)
	reachable, _ := g.TileAt(0, 5, 8)

	trapped, _ := g.TileAt(0, 2, 2)
	for _, pos := range [][2]int{{1, 2}, {3, 2}, {2, 1}, {2, 3}} {
		wall, _ := g.TileAt(0, pos[0], pos[1])
		wall.SetState(grid.StateBarrier)
	}
	// Also block the via escape straight up from the trapped tile —
	// otherwise layer 1 (barrier-free) lets a fan-out branch reach it
	// from the side, defeating the wall.
	viaEscape, _ := g.TileAt(1, 2, 2)
	viaEscape.SetState(grid.StateBarrier)
	g.RefreshNeighbors()

	sinks := []*grid.Tile{reachable, trapped}
	if _, err := o.FanOutRoute(context.Background(), source, sinks, nil); err != nil {
		t.Fatalf("FanOutRoute: %v", err)
	}

	if reachable.State() != grid.StateBarrier {
		t.Errorf("reachable sink not committed: state = %v", reachable.State())
	}
	if trapped.State() == grid.StateBarrier {
		t.Errorf("unreachable sink was committed despite being walled off")
	}
}

// TestFanOutRouteTopLayerContacts is S6: after a complete fan-out, the
// tile on layer cfg.Layers-1 above source and every sink is typed contact, and
// the layer directly below is typed metal.
func TestFanOutRouteTopLayerContacts(t *testing.T) {
	g := testGrid(t, 10, 3)
	eng := route.NewAStar(g, g.Config())
	o := New(g, eng)

	source, _ := g.TileAt(0, 4, 4)
	sink, _ := g.TileAt(0, 4, 7)

	if _, err := o.FanOutRoute(context.Background(), source, []*grid.Tile{sink}, nil); err != nil {
		t.Fatalf("FanOutRoute: %v", err)
	}

	top := g.Config().Layers - 1
	for _, tile := range []*grid.Tile{source, sink} {
		row, col, _ := tile.Position()
		pin, _ := g.TileAt(top, row, col)
		below, _ := g.TileAt(top-1, row, col)
		if pin.Kind() != grid.KindContact {
			t.Errorf("top-layer pin at (%d,%d) kind = %v, want contact", row, col, pin.Kind())
		}
		if below.Kind() != grid.KindMetal {
			t.Errorf("below-pin tile at (%d,%d) kind = %v, want metal", row, col, below.Kind())
		}
	}
}

// TestFanOutMonotonicBarrierGrowth is Testable Property 7: during a
// fan-out call, the set of barrier tiles only grows.
func TestFanOutMonotonicBarrierGrowth(t *testing.T) {
	g := testGrid(t, 10, 1)
	eng := route.NewAStar(g, g.Config())

	snapshot := func() map[*grid.Tile]bool {
		barriers := map[*grid.Tile]bool{}
		for _, layer := range g.Layers() {
			for _, row := range layer {
				for _, tile := range row {
					if tile.State() == grid.StateBarrier {
						barriers[tile] = true
					}
				}
			}
		}
		return barriers
	}

	// Intercept via a progress callback that snapshots the barrier set
	// after every expansion and verifies it never shrinks relative to
	// the previous snapshot.
	prev := snapshot()
	progress := route.ProgressFunc(func(*grid.Tile) {
		cur := snapshot()
		for tile := range prev {
			if !cur[tile] {
				t.Fatalf("tile %v lost barrier state mid fan-out", tile)
			}
		}
		prev = cur
	})

	o := New(g, eng)
	source, _ := g.TileAt(0, 5, 1)
	sinks := []*grid.Tile{}
	for _, col := range []int{3, 5, 8} {
		sink, _ := g.TileAt(0, 5, col)
		sinks = append(sinks, sink)
	}

	if _, err := o.FanOutRoute(context.Background(), source, sinks, progress); err != nil {
		t.Fatalf("FanOutRoute: %v", err)
	}
}

func TestCommitPathIsIdempotent(t *testing.T) {
	g := testGrid(t, 6, 1)
	a, _ := g.TileAt(0, 2, 2)
	b, _ := g.TileAt(0, 2, 3)
	c, _ := g.TileAt(0, 2, 4)
	p := route.Path{Tiles: []*grid.Tile{a, b, c}, Cost: 2}

	commitPath(p)
	firstKinds := []grid.TileKind{a.Kind(), b.Kind(), c.Kind()}
	commitPath(p)
	secondKinds := []grid.TileKind{a.Kind(), b.Kind(), c.Kind()}

	for i := range firstKinds {
		if firstKinds[i] != secondKinds[i] {
			t.Errorf("tile %d kind changed on re-commit: %v -> %v", i, firstKinds[i], secondKinds[i])
		}
	}
}

func TestBestPathSkipsEmptyCandidates(t *testing.T) {
	g := testGrid(t, 6, 1)
	a, _ := g.TileAt(0, 0, 0)
	real := route.Path{Tiles: []*grid.Tile{a}, Cost: 5}
	candidates := []route.Path{{}, real, {}}

	index, path := bestPath(candidates)
	if index != 1 {
		t.Errorf("index = %d, want 1", index)
	}
	if path.Cost != 5 {
		t.Errorf("cost = %d, want 5", path.Cost)
	}
}

func TestBestPathAllEmpty(t *testing.T) {
	candidates := []route.Path{{}, {}}
	index, path := bestPath(candidates)
	if index != -1 || !path.Empty() {
		t.Errorf("got (%d, %v), want (-1, empty)", index, path)
	}
}
