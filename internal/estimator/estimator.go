// Package estimator computes reachability and the time-expanded graph
// horizon from a Topology alone, before any TEG exists.
package estimator

import (
	"container/heap"
	"fmt"

	"github.com/Edugs94/fly-in/internal/topology"
)

// UnreachableTopologyError reports that no path from START to END exists
// even ignoring capacity. HasPath itself only returns a bool; callers
// build this error when it returns false, before TEG construction is
// attempted, per spec.md §7.
type UnreachableTopologyError struct {
	Start, End string
}

func (e *UnreachableTopologyError) Error() string {
	return fmt.Sprintf("no path from %q to %q ignoring capacity", e.Start, e.End)
}

// HasPath runs a weight-agnostic BFS over non-blocked hubs from START to
// END. A false result lets the caller fail fast with a clear diagnostic
// before paying for TEG construction.
func HasPath(topo *topology.Topology) bool {
	start, ok := topo.StartHub()
	if !ok {
		return false
	}
	end, ok := topo.EndHub()
	if !ok {
		return false
	}
	if start.Zone == topology.ZoneBlocked || end.Zone == topology.ZoneBlocked {
		return false
	}

	visited := map[string]bool{start.Name: true}
	queue := []string{start.Name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == end.Name {
			return true
		}
		for _, c := range topo.Neighbors(current) {
			next, _ := c.Other(current)
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// MinPathCost runs Dijkstra over the static topology where entering a
// RESTRICTED hub costs 2 and entering any other non-blocked hub costs 1.
// Returns -1 if no path exists.
func MinPathCost(topo *topology.Topology) int {
	start, ok := topo.StartHub()
	if !ok {
		return -1
	}
	end, ok := topo.EndHub()
	if !ok {
		return -1
	}
	if start.Zone == topology.ZoneBlocked || end.Zone == topology.ZoneBlocked {
		return -1
	}

	dist := map[string]int{start.Name: 0}
	pq := &costHeap{{name: start.Name, cost: 0}}
	heap.Init(pq)
	visited := make(map[string]bool)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(costItem)
		if visited[item.name] {
			continue
		}
		visited[item.name] = true

		if item.name == end.Name {
			return item.cost
		}

		for _, c := range topo.Neighbors(item.name) {
			next, _ := c.Other(item.name)
			if visited[next] {
				continue
			}
			nextHub, _ := topo.Hub(next)
			newCost := item.cost + nextHub.Zone.TravelTurns()
			if best, seen := dist[next]; !seen || newCost < best {
				dist[next] = newCost
				heap.Push(pq, costItem{name: next, cost: newCost})
			}
		}
	}

	return -1
}

// Horizon returns H = MinPathCost + (nb_drones - 1), the tight-and-
// sufficient TEG horizon per spec.md §4.1. Returns -1 if unreachable.
func Horizon(topo *topology.Topology) int {
	minPath := MinPathCost(topo)
	if minPath < 0 {
		return -1
	}
	return minPath + topo.NbDrones - 1
}

type costItem struct {
	name string
	cost int
}

type costHeap []costItem

func (h costHeap) Len() int           { return len(h) }
func (h costHeap) Less(i, j int) bool { return h[i].cost < h[j].cost }
func (h costHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *costHeap) Push(x any)        { *h = append(*h, x.(costItem)) }
func (h *costHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
