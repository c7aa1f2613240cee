// Copyright © 2026 Grid Router contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command routesim is a text-only demonstration of the router: it builds
// a grid from a config file (or defaults), fans out a net from one source
// to a list of sinks using a chosen search engine, and prints the
// resulting geometry. It is a collaborator exercising the core, not a
// graphical UI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/laytrace/gridrouter/fanout"
	"github.com/laytrace/gridrouter/grid"
	"github.com/laytrace/gridrouter/route"
	"github.com/laytrace/gridrouter/routecfg"
)

const defaultConfigPath = "routesim.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	configPath := flag.String("config", defaultConfigPath, "path to a YAML config file (missing file falls back to defaults)")
	engineName := flag.String("engine", "astar", "search engine: astar, dijkstra, or bfs")
	sourceFlag := flag.String("source", "0,0,0", "source tile as row,col,layer")
	sinksFlag := flag.String("sinks", "0,9,0", "semicolon-separated list of row,col,layer sink tiles")
	debug := flag.Bool("debug", false, "run Grid.CheckInvariants after fan-out and report any violation")
	flag.Parse()

	cfg, err := routecfg.Load(*configPath)
	if err != nil {
		return fmt.Errorf("routesim: %w", err)
	}
	slog.Info("config loaded", "rows", cfg.Rows, "layers", cfg.Layers, "via_cost", cfg.ViaCost)

	g := grid.New(cfg)

	engine, err := buildEngine(*engineName, g, cfg)
	if err != nil {
		return fmt.Errorf("routesim: %w", err)
	}

	source, err := parseTile(g, *sourceFlag)
	if err != nil {
		return fmt.Errorf("routesim: parsing -source: %w", err)
	}
	sinks, err := parseSinks(g, *sinksFlag)
	if err != nil {
		return fmt.Errorf("routesim: parsing -sinks: %w", err)
	}

	o := fanout.New(g, engine, fanout.WithStatus(func(status string) {
		fmt.Println(status)
	}))

	ctx := context.Background()
	net, err := o.FanOutRoute(ctx, source, sinks, nil)
	if err != nil {
		return fmt.Errorf("routesim: %w", err)
	}
	slog.Info("fan-out complete", "paths", len(net.Paths))

	if *debug {
		if err := g.CheckInvariants(); err != nil {
			slog.Warn("invariant check failed", "err", err)
		}
	}

	printNet(g)
	return nil
}

func buildEngine(name string, g *grid.Grid, cfg routecfg.Config) (route.Engine, error) {
	switch strings.ToLower(name) {
	case "astar":
		return route.NewAStar(g, cfg), nil
	case "dijkstra":
		return route.NewDijkstra(g, cfg), nil
	case "bfs":
		return route.NewBFS(g), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want astar, dijkstra, or bfs)", name)
	}
}

func parseSinks(g *grid.Grid, raw string) ([]*grid.Tile, error) {
	var sinks []*grid.Tile
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tile, err := parseTile(g, part)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, tile)
	}
	if len(sinks) == 0 {
		return nil, errors.New("no sinks given")
	}
	return sinks, nil
}

func parseTile(g *grid.Grid, raw string) (*grid.Tile, error) {
	fields := strings.Split(raw, ",")
	if len(fields) != 3 {
		return nil, fmt.Errorf("%q: want row,col,layer", raw)
	}
	row, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, fmt.Errorf("%q: row: %w", raw, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return nil, fmt.Errorf("%q: col: %w", raw, err)
	}
	layer, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return nil, fmt.Errorf("%q: layer: %w", raw, err)
	}
	tile, ok := g.TileAt(layer, row, col)
	if !ok {
		return nil, fmt.Errorf("%q: out of bounds for a %dx%d grid with %d layers", raw, g.Rows(), g.Rows(), g.LayerCount())
	}
	return tile, nil
}

func printNet(g *grid.Grid) {
	for layerIndex, layer := range g.Layers() {
		fmt.Printf("layer %d (%s):\n", layerIndex, g.LayerAt(layerIndex).Orientation)
		for _, row := range layer {
			var line strings.Builder
			for _, tile := range row {
				line.WriteString(glyph(tile))
			}
			fmt.Println(line.String())
		}
	}
}

func glyph(t *grid.Tile) string {
	switch {
	case t.Kind() == grid.KindContact:
		return "C"
	case t.Kind() == grid.KindVia:
		return "V"
	case t.State() == grid.StateBarrier:
		return "#"
	default:
		return "."
	}
}
