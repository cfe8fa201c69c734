package topology

import (
	"fmt"
	"sort"
)

// Topology is the frozen input to the routing engine: the set of hubs,
// the connections between them, and how many drones must be routed.
//
// HubOrder preserves the order hubs were added (parse order), which the
// rest of the engine relies on for deterministic iteration per spec §5.
type Topology struct {
	NbDrones    int
	Hubs        map[string]*Hub
	HubOrder    []string
	Connections []Connection
}

// New creates an empty Topology ready for incremental construction.
func New(nbDrones int) *Topology {
	return &Topology{
		NbDrones: nbDrones,
		Hubs:     make(map[string]*Hub),
	}
}

// AddHub registers a hub, preserving insertion order.
func (t *Topology) AddHub(h *Hub) {
	if _, exists := t.Hubs[h.Name]; !exists {
		t.HubOrder = append(t.HubOrder, h.Name)
	}
	t.Hubs[h.Name] = h
}

// AddConnection registers an undirected connection between two existing hubs.
func (t *Topology) AddConnection(c Connection) {
	t.Connections = append(t.Connections, c)
}

// Hub looks up a hub by name.
func (t *Topology) Hub(name string) (*Hub, bool) {
	h, ok := t.Hubs[name]
	return h, ok
}

// StartHub returns the unique START hub, if any.
func (t *Topology) StartHub() (*Hub, bool) {
	for _, name := range t.HubOrder {
		h := t.Hubs[name]
		if h.Category == CategoryStart {
			return h, true
		}
	}
	return nil, false
}

// EndHub returns the unique END hub, if any.
func (t *Topology) EndHub() (*Hub, bool) {
	for _, name := range t.HubOrder {
		h := t.Hubs[name]
		if h.Category == CategoryEnd {
			return h, true
		}
	}
	return nil, false
}

// NonBlockedHubs returns hubs, in insertion order, excluding BLOCKED zones.
func (t *Topology) NonBlockedHubs() []*Hub {
	hubs := make([]*Hub, 0, len(t.HubOrder))
	for _, name := range t.HubOrder {
		h := t.Hubs[name]
		if h.Zone != ZoneBlocked {
			hubs = append(hubs, h)
		}
	}
	return hubs
}

// Neighbors returns the connections touching name whose other endpoint is
// not BLOCKED, in the order the connections were added.
func (t *Topology) Neighbors(name string) []Connection {
	var out []Connection
	for _, c := range t.Connections {
		other, ok := c.Other(name)
		if !ok {
			continue
		}
		if h, exists := t.Hubs[other]; exists && h.Zone != ZoneBlocked {
			out = append(out, c)
		}
	}
	return out
}

// ValidationError names the specific topology invariant that failed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid topology: %s", e.Reason)
}

// Validate checks every invariant spec.md §3 places on the Topology input.
// It is the parsing/validation collaborator's responsibility (spec.md §7's
// MissingEndpoint taxonomy member), not the routing engine's.
func (t *Topology) Validate() error {
	if t.NbDrones <= 0 {
		return &ValidationError{Reason: "nb_drones must be positive"}
	}

	start, hasStart := t.StartHub()
	end, hasEnd := t.EndHub()
	if !hasStart {
		return &ValidationError{Reason: "no START hub"}
	}
	if !hasEnd {
		return &ValidationError{Reason: "no END hub"}
	}

	startCount, endCount := 0, 0
	seenCoords := make(map[Coord]string)
	for _, name := range t.HubOrder {
		h := t.Hubs[name]
		if h.Category == CategoryStart {
			startCount++
		}
		if h.Category == CategoryEnd {
			endCount++
		}
		if h.MaxDrones < 1 {
			return &ValidationError{Reason: fmt.Sprintf("hub %q: max_drones must be >= 1", h.Name)}
		}
		if prev, exists := seenCoords[h.Pos]; exists {
			return &ValidationError{Reason: fmt.Sprintf("hubs %q and %q share coordinates", prev, h.Name)}
		}
		seenCoords[h.Pos] = h.Name
	}
	if startCount != 1 {
		return &ValidationError{Reason: fmt.Sprintf("expected exactly one START hub, found %d", startCount)}
	}
	if endCount != 1 {
		return &ValidationError{Reason: fmt.Sprintf("expected exactly one END hub, found %d", endCount)}
	}

	if start.Zone == ZoneBlocked || end.Zone == ZoneBlocked {
		return &ValidationError{Reason: "START and END hubs must not be BLOCKED"}
	}
	if start.MaxDrones < t.NbDrones {
		return &ValidationError{Reason: fmt.Sprintf("START hub max_drones (%d) < nb_drones (%d)", start.MaxDrones, t.NbDrones)}
	}
	if end.MaxDrones < t.NbDrones {
		return &ValidationError{Reason: fmt.Sprintf("END hub max_drones (%d) < nb_drones (%d)", end.MaxDrones, t.NbDrones)}
	}

	seenPairs := make(map[string]bool)
	for _, c := range t.Connections {
		if c.A == c.B {
			return &ValidationError{Reason: fmt.Sprintf("connection %q-%q: endpoints must differ", c.A, c.B)}
		}
		if _, ok := t.Hubs[c.A]; !ok {
			return &ValidationError{Reason: fmt.Sprintf("connection references unknown hub %q", c.A)}
		}
		if _, ok := t.Hubs[c.B]; !ok {
			return &ValidationError{Reason: fmt.Sprintf("connection references unknown hub %q", c.B)}
		}
		if c.MaxLinkCapacity < 1 {
			return &ValidationError{Reason: fmt.Sprintf("connection %q-%q: max_link_capacity must be >= 1", c.A, c.B)}
		}
		key := canonicalPairKey(c.A, c.B)
		if seenPairs[key] {
			return &ValidationError{Reason: fmt.Sprintf("duplicate connection %q-%q", c.A, c.B)}
		}
		seenPairs[key] = true
	}

	if !t.hasPathIgnoringCapacity(start.Name, end.Name) {
		return &ValidationError{Reason: fmt.Sprintf("no non-blocked path from %q to %q", start.Name, end.Name)}
	}

	return nil
}

// hasPathIgnoringCapacity is a weight-agnostic BFS used only for input
// validation; the engine's own reachability verdict lives in estimator.HasPath.
func (t *Topology) hasPathIgnoringCapacity(from, to string) bool {
	if from == to {
		return true
	}
	visited := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, c := range t.Neighbors(current) {
			next, _ := c.Other(current)
			if visited[next] {
				continue
			}
			if next == to {
				return true
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return false
}

func canonicalPairKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return pair[0] + "\x00" + pair[1]
}
