// Package reservation tracks per-edge-per-turn capacity consumption across
// drones, vetoing over-capacity transitions for later drones.
package reservation

import "github.com/Edugs94/fly-in/internal/teg"

type edgeTurnKey struct {
	source teg.NodeHandle
	target teg.NodeHandle
	turn   int
}

// Tracker owns edge occupancy across turns. Vertex occupancy is tracked on
// the TimeNode itself (teg.Graph.Node(h).Occupancy) and is not duplicated
// here, per spec.md §3's ReservationTracker description.
type Tracker struct {
	edgeUse map[edgeTurnKey]int
}

// New creates an empty Tracker.
func New() *Tracker {
	return &Tracker{edgeUse: make(map[edgeTurnKey]int)}
}

// Occupied returns the number of drones currently committed to edge at
// turn.
func (t *Tracker) Occupied(e *teg.TimeEdge, turn int) int {
	return t.edgeUse[edgeTurnKey{source: e.Source, target: e.Target, turn: turn}]
}

// EdgeTraversable reports whether edge has spare capacity for every turn
// it consumes. For a duration-2 edge this checks both occupied turns, per
// spec.md §4.3: a restricted-zone traversal must not exceed capacity
// during either consumed turn.
func (t *Tracker) EdgeTraversable(g *teg.Graph, e *teg.TimeEdge) bool {
	sourceTurn := g.Node(e.Source).Turn
	for turn := sourceTurn; turn < sourceTurn+e.Duration; turn++ {
		if t.Occupied(e, turn) >= e.MaxCapacity {
			return false
		}
	}
	return true
}

// ReserveEdge increments occupancy for every turn edge consumes.
func (t *Tracker) ReserveEdge(g *teg.Graph, e *teg.TimeEdge) {
	sourceTurn := g.Node(e.Source).Turn
	for turn := sourceTurn; turn < sourceTurn+e.Duration; turn++ {
		t.edgeUse[edgeTurnKey{source: e.Source, target: e.Target, turn: turn}]++
	}
}
