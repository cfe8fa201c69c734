package route

import (
	"testing"

	"github.com/Edugs94/fly-in/internal/estimator"
	"github.com/Edugs94/fly-in/internal/reservation"
	"github.com/Edugs94/fly-in/internal/teg"
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

func TestAssignLinearTwoDronesMatchesHorizon(t *testing.T) {
	topo := linearTopology(2)
	horizon := estimator.Horizon(topo)
	if horizon != 4 {
		t.Fatalf("expected horizon 4, got %d", horizon)
	}

	g := teg.Build(topo, horizon)
	tracker := reservation.New()

	schedule, stats, err := Assign(topo, g, tracker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schedule.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(schedule.Routes))
	}
	if stats.LastArrivalTurn != 4 {
		t.Fatalf("expected last arrival turn 4, got %d", stats.LastArrivalTurn)
	}
	if stats.RouteLengths[1] == 0 || stats.RouteLengths[2] == 0 {
		t.Fatal("expected non-empty route lengths for both drones")
	}
}

func TestAssignResolvesSingleLinkContentionWithinHorizon(t *testing.T) {
	// Two drones share a single capacity-1 link from START to END. START
	// and END hold both drones, so the horizon formula leaves room for the
	// second drone to wait one turn and cross after the first.
	topo := topology.New(2)
	topo.AddHub(&topology.Hub{Name: "start", Category: topology.CategoryStart, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 0}, MaxDrones: 2})
	topo.AddHub(&topology.Hub{Name: "goal", Category: topology.CategoryEnd, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 1}, MaxDrones: 2})
	topo.AddConnection(topology.Connection{A: "start", B: "goal", MaxLinkCapacity: 1})

	horizon := estimator.Horizon(topo)
	g := teg.Build(topo, horizon)
	tracker := reservation.New()

	_, _, err := Assign(topo, g, tracker)
	if err != nil {
		t.Fatalf("unexpected error with a single shared-capacity link: %v", err)
	}

	// Now route both drones through an intermediate hub that holds one
	// drone per turn; link capacity is per turn, so the second drone
	// follows one turn behind the first and still arrives by the horizon.
	topo2 := topology.New(2)
	topo2.AddHub(&topology.Hub{Name: "start", Category: topology.CategoryStart, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 0}, MaxDrones: 2})
	topo2.AddHub(&topology.Hub{Name: "m", Category: topology.CategoryIntermediate, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 1}, MaxDrones: 1})
	topo2.AddHub(&topology.Hub{Name: "goal", Category: topology.CategoryEnd, Zone: topology.ZoneNormal, Pos: topology.Coord{X: 2}, MaxDrones: 2})
	topo2.AddConnection(topology.Connection{A: "start", B: "m", MaxLinkCapacity: 1})
	topo2.AddConnection(topology.Connection{A: "m", B: "goal", MaxLinkCapacity: 1})

	horizon2 := estimator.Horizon(topo2)
	g2 := teg.Build(topo2, horizon2)
	tracker2 := reservation.New()

	_, _, err2 := Assign(topo2, g2, tracker2)
	if err2 != nil {
		t.Fatalf("S4-style contention should resolve within horizon, got error: %v", err2)
	}
}
