// Package teg builds and holds the time-expanded graph (TEG): a directed
// graph whose vertices are (hub, turn) pairs and whose edges encode both
// movement and waiting.
package teg

import "github.com/Edugs94/fly-in/internal/topology"

// NodeHandle is an index into Graph.nodes. TimeNodes are never referenced
// by pointer across the owning slice's growth — only by handle — per
// spec.md §9's design note.
type NodeHandle int

// EdgeKind is derived from a TimeEdge's endpoints, never stored directly.
type EdgeKind int

const (
	KindMove EdgeKind = iota
	KindWait
)

// TimeNode is one (hub, turn) vertex of the TEG.
type TimeNode struct {
	Hub       *topology.Hub
	Turn      int
	Occupancy int
}

// IsPriority reports whether the node's hub is a PRIORITY zone.
func (n *TimeNode) IsPriority() bool { return n.Hub.Zone == topology.ZonePriority }

// IsTerminal reports whether the node's hub is the END hub.
func (n *TimeNode) IsTerminal() bool { return n.Hub.Category == topology.CategoryEnd }

// IsStartAtZero reports whether this node is the START hub at turn 0 — the
// single capacity-exempt node in the whole TEG.
func (n *TimeNode) IsStartAtZero() bool {
	return n.Hub.Category == topology.CategoryStart && n.Turn == 0
}

// TimeEdge is a directed transition between two TimeNodes.
type TimeEdge struct {
	Source, Target NodeHandle
	Duration       int
	MaxCapacity    int
}

// Kind classifies an edge as move or wait by comparing its endpoints' hubs.
func (g *Graph) Kind(e *TimeEdge) EdgeKind {
	if g.nodes[e.Source].Hub.Name == g.nodes[e.Target].Hub.Name {
		return KindWait
	}
	return KindMove
}

type nodeKey struct {
	hub  string
	turn int
}

// Graph is the fully materialized TEG: nodes, edges, and adjacency, built
// once from a frozen Topology and horizon and held structurally immutable
// thereafter. Only TimeNode.Occupancy mutates, and only via EnterNode.
type Graph struct {
	Horizon   int
	nodes     []TimeNode
	index     map[nodeKey]NodeHandle
	edges     []TimeEdge
	adjacency [][]int // node handle -> indices into edges
}

// Build materializes the TEG for every non-blocked hub and every turn in
// [0, horizon], per spec.md §4.2.
func Build(topo *topology.Topology, horizon int) *Graph {
	g := &Graph{
		Horizon: horizon,
		index:   make(map[nodeKey]NodeHandle),
	}

	hubs := topo.NonBlockedHubs()

	for t := 0; t <= horizon; t++ {
		for _, hub := range hubs {
			g.addNode(hub, t, topo.NbDrones)
		}
	}

	for t := 0; t < horizon; t++ {
		for _, hub := range hubs {
			for _, conn := range topo.Neighbors(hub.Name) {
				targetName, _ := conn.Other(hub.Name)
				targetHub, ok := topo.Hub(targetName)
				if !ok || targetHub.Zone == topology.ZoneBlocked {
					continue
				}
				arrival := t + targetHub.Zone.TravelTurns()
				if arrival > horizon {
					continue
				}
				source, sok := g.lookup(hub.Name, t)
				target, tok := g.lookup(targetHub.Name, arrival)
				if sok && tok {
					g.addEdge(source, target, conn.MaxLinkCapacity)
				}
			}
		}

		for _, hub := range hubs {
			source, sok := g.lookup(hub.Name, t)
			target, tok := g.lookup(hub.Name, t+1)
			if sok && tok {
				g.addEdge(source, target, hub.MaxDrones)
			}
		}
	}

	g.buildAdjacency()
	return g
}

func (g *Graph) addNode(hub *topology.Hub, turn int, nbDrones int) {
	key := nodeKey{hub: hub.Name, turn: turn}
	if _, exists := g.index[key]; exists {
		return
	}
	occupancy := 0
	if hub.Category == topology.CategoryStart && turn == 0 {
		occupancy = nbDrones
	}
	handle := NodeHandle(len(g.nodes))
	g.nodes = append(g.nodes, TimeNode{Hub: hub, Turn: turn, Occupancy: occupancy})
	g.index[key] = handle
}

func (g *Graph) addEdge(source, target NodeHandle, capacity int) {
	g.edges = append(g.edges, TimeEdge{
		Source:      source,
		Target:      target,
		Duration:    g.nodes[target].Turn - g.nodes[source].Turn,
		MaxCapacity: capacity,
	})
}

func (g *Graph) buildAdjacency() {
	g.adjacency = make([][]int, len(g.nodes))
	for i, e := range g.edges {
		g.adjacency[e.Source] = append(g.adjacency[e.Source], i)
	}
}

func (g *Graph) lookup(hubName string, turn int) (NodeHandle, bool) {
	h, ok := g.index[nodeKey{hub: hubName, turn: turn}]
	return h, ok
}

// Lookup returns the handle for (hubName, turn), if materialized.
func (g *Graph) Lookup(hubName string, turn int) (NodeHandle, bool) {
	return g.lookup(hubName, turn)
}

// Node returns a pointer to the TimeNode for handle. The pointer is only
// valid until the next call that grows g.nodes; Graph is built once and
// never grows after Build returns, so callers may hold it for the whole
// routing phase.
func (g *Graph) Node(h NodeHandle) *TimeNode {
	return &g.nodes[h]
}

// Edges returns the outgoing TimeEdges of a node, in adjacency (insertion)
// order, per spec.md §5's determinism requirement.
func (g *Graph) Edges(h NodeHandle) []*TimeEdge {
	idxs := g.adjacency[h]
	out := make([]*TimeEdge, len(idxs))
	for i, idx := range idxs {
		out[i] = &g.edges[idx]
	}
	return out
}

// NumNodes returns the total number of materialized TimeNodes.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// EdgeBetween locates the TEG edge from source to target by node identity,
// as spec.md §4.5 requires when reserving a committed route.
func (g *Graph) EdgeBetween(source, target NodeHandle) *TimeEdge {
	for _, idx := range g.adjacency[source] {
		if g.edges[idx].Target == target {
			return &g.edges[idx]
		}
	}
	return nil
}

// CanEnter reports whether a drone may enter node h, honoring the single
// START@0 capacity exemption spec.md §3/§9 document in exactly one place.
func (g *Graph) CanEnter(h NodeHandle) bool {
	node := &g.nodes[h]
	if node.IsStartAtZero() {
		return true
	}
	return node.Occupancy < node.Hub.MaxDrones
}

// EnterNode increments a node's committed occupancy. Callers must have
// already checked CanEnter (except for the exempt START@0 node).
func (g *Graph) EnterNode(h NodeHandle) {
	g.nodes[h].Occupancy++
}

