// Package route assembles per-drone routes sequentially against a shared
// TEG and reservation tracker, and derives summary statistics.
package route

import (
	"fmt"

	"github.com/Edugs94/fly-in/internal/pathfind"
	"github.com/Edugs94/fly-in/internal/reservation"
	"github.com/Edugs94/fly-in/internal/teg"
	"github.com/Edugs94/fly-in/internal/topology"
)

// Route is one drone's path through the TEG, start to end, strictly
// monotonic in turn.
type Route []teg.NodeHandle

// Schedule holds every drone's assigned Route, keyed by drone id (1..N).
type Schedule struct {
	Routes map[int]Route
	Order  []int
}

// InfeasibleScheduleError reports that the pathfinder exhausted the
// frontier for a drone despite the topology passing reachability
// validation — an input-invariant violation under the horizon formula.
type InfeasibleScheduleError struct {
	Drone int
}

func (e *InfeasibleScheduleError) Error() string {
	return fmt.Sprintf("drone %d has no feasible route", e.Drone)
}

// InvariantViolationError reports a runtime check failure: a bug in the
// implementation rather than a property of the input.
type InvariantViolationError struct {
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Detail)
}

// Stats records the introspection spec.md §8's testable properties need:
// the last drone's arrival turn, the total priority-hub-entry count
// summed across drones, and per-drone route lengths.
type Stats struct {
	LastArrivalTurn      int
	TotalPriorityEntries int
	RouteLengths         map[int]int
}

// Assign routes every drone in ascending id order, reserving each
// drone's path before the next drone's pathfinder runs, per spec.md
// §4.5's sequential assembler contract.
func Assign(topo *topology.Topology, g *teg.Graph, tracker *reservation.Tracker) (*Schedule, *Stats, error) {
	startHub, ok := topo.StartHub()
	if !ok {
		return nil, nil, &InvariantViolationError{Detail: "topology has no START hub"}
	}
	startHandle, ok := g.Lookup(startHub.Name, 0)
	if !ok {
		return nil, nil, &InvariantViolationError{Detail: "START@0 node missing from TEG"}
	}

	schedule := &Schedule{Routes: make(map[int]Route, topo.NbDrones)}
	stats := &Stats{RouteLengths: make(map[int]int, topo.NbDrones)}

	for d := 1; d <= topo.NbDrones; d++ {
		path := pathfind.Solve(g, tracker, startHandle)
		if path == nil {
			return nil, nil, &InfeasibleScheduleError{Drone: d}
		}
		if err := validateRoute(g, path); err != nil {
			return nil, nil, err
		}

		reserveRoute(g, tracker, path)

		schedule.Routes[d] = path
		schedule.Order = append(schedule.Order, d)
		stats.RouteLengths[d] = len(path)

		arrival := g.Node(path[len(path)-1]).Turn
		if arrival > stats.LastArrivalTurn {
			stats.LastArrivalTurn = arrival
		}
		for _, h := range path {
			if g.Node(h).IsPriority() {
				stats.TotalPriorityEntries++
			}
		}
	}

	return schedule, stats, nil
}

// reserveRoute commits a drone's path: every traversed TEG edge is
// reserved, and every node other than (START, 0) has its occupancy
// incremented, per spec.md §4.5 step 2.
func reserveRoute(g *teg.Graph, tracker *reservation.Tracker, path Route) {
	for i := 0; i < len(path)-1; i++ {
		edge := g.EdgeBetween(path[i], path[i+1])
		tracker.ReserveEdge(g, edge)
	}
	for _, h := range path[1:] {
		g.EnterNode(h)
	}
}

func validateRoute(g *teg.Graph, path Route) error {
	if len(path) == 0 {
		return &InvariantViolationError{Detail: "empty route returned by pathfinder"}
	}
	start := g.Node(path[0])
	if !start.IsStartAtZero() {
		return &InvariantViolationError{Detail: "route does not begin at (START, 0)"}
	}
	last := g.Node(path[len(path)-1])
	if !last.IsTerminal() {
		return &InvariantViolationError{Detail: "route does not end at an END node"}
	}
	for i := 1; i < len(path); i++ {
		prevTurn := g.Node(path[i-1]).Turn
		curTurn := g.Node(path[i]).Turn
		if curTurn <= prevTurn {
			return &InvariantViolationError{Detail: "route turn sequence is not strictly monotonic"}
		}
		if g.EdgeBetween(path[i-1], path[i]) == nil {
			return &InvariantViolationError{Detail: "consecutive route nodes are not joined by a TEG edge"}
		}
	}
	return nil
}
