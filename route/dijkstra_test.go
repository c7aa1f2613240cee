// Copyright © 2026 Grid Router contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package route

import (
	"context"
	"testing"

	"github.com/laytrace/gridrouter/routecfg"
)

func TestDijkstraFindsMinimumCostPath(t *testing.T) {
	g := testGrid(t, 8, 2)
	cfg := routecfg.Apply(g.Config(), routecfg.ViaCost(5))
	source, _ := g.TileAt(0, 4, 0)
	sink, _ := g.TileAt(0, 4, 7)

	eng := NewDijkstra(g, cfg)
	path, err := eng.Route(context.Background(), source, sink, nil)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if want := 7; path.Cost != want {
		t.Errorf("cost = %d, want %d (straight same-layer run)", path.Cost, want)
	}
}

func TestDijkstraPrefersCheaperSameLayerOverVia(t *testing.T) {
	g := testGrid(t, 8, 2)
	cfg := routecfg.Apply(g.Config(), routecfg.ViaCost(100))
	source, _ := g.TileAt(0, 4, 0)
	sink, _ := g.TileAt(0, 4, 7)

	eng := NewDijkstra(g, cfg)
	path, err := eng.Route(context.Background(), source, sink, nil)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	for _, tile := range path.Tiles {
		if tile.LayerIndex != 0 {
			t.Errorf("path left layer 0 despite a prohibitive via cost: %v", tile)
		}
	}
}
