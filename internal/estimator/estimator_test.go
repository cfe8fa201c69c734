package estimator

import (
	"testing"

	"github.com/Edugs94/fly-in/internal/topology"
)

func linearTopology(nbDrones int) *topology.Topology {
	topo := topology.New(nbDrones)
	topo.AddHub(&topology.Hub{Name: "start", Category: topology.CategoryStart, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 0}, MaxDrones: nbDrones})
	topo.AddHub(&topology.Hub{Name: "w1", Category: topology.CategoryIntermediate, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 1}, MaxDrones: 1})
	topo.AddHub(&topology.Hub{Name: "w2", Category: topology.CategoryIntermediate, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 2}, MaxDrones: 1})
	topo.AddHub(&topology.Hub{Name: "goal", Category: topology.CategoryEnd, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 3}, MaxDrones: nbDrones})
	topo.AddConnection(topology.Connection{A: "start", B: "w1", MaxLinkCapacity: 1})
	topo.AddConnection(topology.Connection{A: "w1", B: "w2", MaxLinkCapacity: 1})
	topo.AddConnection(topology.Connection{A: "w2", B: "goal", MaxLinkCapacity: 1})
	return topo
}

func TestHorizonLinearTwoDrones(t *testing.T) {
	topo := linearTopology(2)
	if !HasPath(topo) {
		t.Fatal("expected HasPath to be true")
	}
	if got := MinPathCost(topo); got != 3 {
		t.Fatalf("MinPathCost = %d, want 3", got)
	}
	if got := Horizon(topo); got != 4 {
		t.Fatalf("Horizon = %d, want 3 + (2-1) = 4", got)
	}
}

func TestHorizonSingleDrone(t *testing.T) {
	topo := linearTopology(1)
	if got := Horizon(topo); got != 3 {
		t.Fatalf("Horizon = %d, want 3", got)
	}
}

func TestRestrictedZoneCostsTwoTurns(t *testing.T) {
	topo := topology.New(1)
	topo.AddHub(&topology.Hub{Name: "start", Category: topology.CategoryStart, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 0}, MaxDrones: 1})
	topo.AddHub(&topology.Hub{Name: "r", Category: topology.CategoryIntermediate, Zone: topology.ZoneRestricted, Pos: topology.Coord{X: 1}, MaxDrones: 1})
	topo.AddHub(&topology.Hub{Name: "goal", Category: topology.CategoryEnd, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 2}, MaxDrones: 1})
	topo.AddConnection(topology.Connection{A: "start", B: "r", MaxLinkCapacity: 1})
	topo.AddConnection(topology.Connection{A: "r", B: "goal", MaxLinkCapacity: 1})

	if got := MinPathCost(topo); got != 3 {
		t.Fatalf("MinPathCost = %d, want 2 (into r) + 1 (into goal) = 3", got)
	}
}

func TestUnreachableTopologyReportsNegativeHorizon(t *testing.T) {
	topo := topology.New(1)
	topo.AddHub(&topology.Hub{Name: "start", Category: topology.CategoryStart, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 0}, MaxDrones: 1})
	topo.AddHub(&topology.Hub{Name: "goal", Category: topology.CategoryEnd, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 10}, MaxDrones: 1})

	if HasPath(topo) {
		t.Fatal("expected HasPath to be false for disconnected hubs")
	}
	if got := Horizon(topo); got != -1 {
		t.Fatalf("Horizon = %d, want -1", got)
	}
}
