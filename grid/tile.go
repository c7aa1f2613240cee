// Copyright © 2026 Grid Router contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package grid

// TileState is a tile's search-scratch and semantic mark. idle/open/closed
// are wiped by Grid.Idlize between searches; barrier/start/end persist.
type TileState int

const (
	StateIdle TileState = iota
	StateOpen
	StateClosed
	StateBarrier
	StateStart
	StateEnd
)

// String implements fmt.Stringer.
func (s TileState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateBarrier:
		return "barrier"
	case StateStart:
		return "start"
	case StateEnd:
		return "end"
	default:
		return "state(?)"
	}
}

// TileKind is a tile's net-geometry role, independent of its search state.
type TileKind int

const (
	KindMetal TileKind = iota
	KindVia
	KindContact
)

// String implements fmt.Stringer.
func (k TileKind) String() string {
	switch k {
	case KindMetal:
		return "metal"
	case KindVia:
		return "via"
	case KindContact:
		return "contact"
	default:
		return "kind(?)"
	}
}

// Tile is one cell of the grid at (Row, Col, LayerIndex). Row, Col and
// LayerIndex are set once at construction and never change; state, kind
// and the neighbor list are the mutable surface, reached only through
// methods so Grid stays the single place that decides when neighbors are
// recomputed.
//
// Tiles live in Grid's flat arena (see grid.go) and are never copied once
// built; neighbors holds pointers into that same arena. A Tile is never
// its own neighbor, and neighbor lists may go stale the instant any tile's
// state changes — callers must call Grid.UpdateNeighbors (or
// Grid.RefreshNeighbors) before relying on them for a search.
type Tile struct {
	Row, Col   int
	LayerIndex int

	layer *Layer

	state     TileState
	kind      TileKind
	neighbors []*Tile
}

// Layer returns the descriptor for the layer this tile belongs to.
func (t *Tile) Layer() *Layer { return t.layer }

// Position returns the tile's (row, col, layer) identity.
func (t *Tile) Position() (row, col, layer int) {
	return t.Row, t.Col, t.LayerIndex
}

// State returns the tile's current search/semantic state.
func (t *Tile) State() TileState { return t.state }

// SetState sets the tile's search/semantic state.
func (t *Tile) SetState(s TileState) { t.state = s }

// Kind returns the tile's net-geometry role.
func (t *Tile) Kind() TileKind { return t.kind }

// SetKind sets the tile's net-geometry role.
func (t *Tile) SetKind(k TileKind) { t.kind = k }

// Neighbors returns the tile's cached neighbor list, in the fixed order
// produced by Grid.UpdateNeighbors: same-layer-forward, same-layer-
// backward, up, down. The list may be stale; see the type doc comment.
func (t *Tile) Neighbors() []*Tile { return t.neighbors }

// IsBarrier reports whether the tile is currently excluded from the
// routing graph.
func (t *Tile) IsBarrier() bool { return t.state == StateBarrier }
