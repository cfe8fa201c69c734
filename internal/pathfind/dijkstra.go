// Package pathfind implements the per-drone lexicographic Dijkstra search
// over the time-expanded graph.
package pathfind

import (
	"container/heap"

	"github.com/Edugs94/fly-in/internal/reservation"
	"github.com/Edugs94/fly-in/internal/teg"
)

// searchNode is one priority-queue entry. The comparator orders first by
// turns elapsed (ascending), then by priority-hub entries (descending),
// then by insertion sequence — never by struct/pointer identity — per
// spec.md §4.4/§9.
type searchNode struct {
	handle    teg.NodeHandle
	turns     int
	priorityN int
	sequence  int
	index     int // heap index, maintained by heap.Interface
}

// searchHeap implements container/heap.Interface, mirroring the teacher's
// astarHeap shape (internal/algo/astar.go) generalized to a lexicographic
// key with a deterministic tie-break.
type searchHeap []*searchNode

func (h searchHeap) Len() int { return len(h) }

func (h searchHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.turns != b.turns {
		return a.turns < b.turns
	}
	if a.priorityN != b.priorityN {
		return a.priorityN > b.priorityN // more priority entries is "smaller" (preferred)
	}
	return a.sequence < b.sequence
}

func (h searchHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *searchHeap) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *searchHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return node
}

// bestKey is the best known (turns, priorityN) pair recorded for a node,
// compared the same way searchHeap orders entries.
type bestKey struct {
	turns     int
	priorityN int
}

func better(candidate, current bestKey) bool {
	if candidate.turns != current.turns {
		return candidate.turns < current.turns
	}
	return candidate.priorityN > current.priorityN
}

// Solve runs the lexicographic Dijkstra from the TEG's START@0 node to the
// first settled END node, honoring the reservation tracker's current
// capacity state. Returns nil if the frontier is exhausted, per spec.md
// §4.4's failure outcome.
func Solve(g *teg.Graph, tracker *reservation.Tracker, start teg.NodeHandle) []teg.NodeHandle {
	startNode := g.Node(start)
	startPriority := 0
	if startNode.IsPriority() {
		startPriority = 1
	}

	best := map[teg.NodeHandle]bestKey{start: {turns: 0, priorityN: startPriority}}
	parents := map[teg.NodeHandle]teg.NodeHandle{}
	hasParent := map[teg.NodeHandle]bool{}
	visited := map[teg.NodeHandle]bool{}

	sequence := 0
	pq := &searchHeap{{handle: start, turns: 0, priorityN: startPriority, sequence: sequence}}
	heap.Init(pq)

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*searchNode)
		if visited[current.handle] {
			continue
		}
		visited[current.handle] = true

		if g.Node(current.handle).IsTerminal() {
			return reconstruct(parents, hasParent, current.handle)
		}

		for _, edge := range g.Edges(current.handle) {
			neighbor := edge.Target
			if visited[neighbor] {
				continue
			}
			if !tracker.EdgeTraversable(g, edge) {
				continue
			}
			if !g.Node(neighbor).IsStartAtZero() && !g.CanEnter(neighbor) {
				continue
			}

			priorityN := current.priorityN
			if g.Node(neighbor).IsPriority() {
				priorityN++
			}
			candidate := bestKey{turns: current.turns + edge.Duration, priorityN: priorityN}

			if existing, seen := best[neighbor]; !seen || better(candidate, existing) {
				best[neighbor] = candidate
				parents[neighbor] = current.handle
				hasParent[neighbor] = true
				sequence++
				heap.Push(pq, &searchNode{
					handle:    neighbor,
					turns:     candidate.turns,
					priorityN: candidate.priorityN,
					sequence:  sequence,
				})
			}
		}
	}

	return nil
}

func reconstruct(parents map[teg.NodeHandle]teg.NodeHandle, hasParent map[teg.NodeHandle]bool, end teg.NodeHandle) []teg.NodeHandle {
	var path []teg.NodeHandle
	current := end
	for {
		path = append(path, current)
		if !hasParent[current] {
			break
		}
		current = parents[current]
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
