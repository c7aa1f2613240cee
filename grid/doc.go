// Copyright © 2026 Grid Router contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package grid is the 3-D tile grid the router searches over: stacked
// layers of alternating preferred direction, connected vertically by vias.
//
// A Grid is built once by New and never resized. Tiles are mutated in
// place by the search engines (package route) and the fan-out orchestrator
// (package fanout) as a net is constructed.
package grid
