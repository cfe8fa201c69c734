package topology

import "testing"

// linearTopology builds start-w1-w2-goal, all capacities 1, matching S1.
func linearTopology(nbDrones int) *Topology {
	topo := New(nbDrones)
	topo.AddHub(&Hub{Name: "start", Category: CategoryStart, Zone: ZoneNormal, Pos: Coord{0, 0}, MaxDrones: nbDrones})
	topo.AddHub(&Hub{Name: "w1", Category: CategoryIntermediate, Zone: ZoneNormal, Pos: Coord{1, 0}, MaxDrones: 1})
	topo.AddHub(&Hub{Name: "w2", Category: CategoryIntermediate, Zone: ZoneNormal, Pos: Coord{2, 0}, MaxDrones: 1})
	topo.AddHub(&Hub{Name: "goal", Category: CategoryEnd, Zone: ZoneNormal, Pos: Coord{3, 0}, MaxDrones: nbDrones})
	topo.AddConnection(Connection{A: "start", B: "w1", MaxLinkCapacity: 1})
	topo.AddConnection(Connection{A: "w1", B: "w2", MaxLinkCapacity: 1})
	topo.AddConnection(Connection{A: "w2", B: "goal", MaxLinkCapacity: 1})
	return topo
}

func TestValidateAcceptsLinearTopology(t *testing.T) {
	topo := linearTopology(2)
	if err := topo.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsInsufficientStartCapacity(t *testing.T) {
	topo := linearTopology(3)
	topo.Hubs["start"].MaxDrones = 2
	if err := topo.Validate(); err == nil {
		t.Fatal("expected validation error for START capacity below nb_drones")
	}
}

func TestValidateRejectsDuplicateConnection(t *testing.T) {
	topo := linearTopology(1)
	topo.AddConnection(Connection{A: "w1", B: "start", MaxLinkCapacity: 1})
	if err := topo.Validate(); err == nil {
		t.Fatal("expected validation error for duplicate connection")
	}
}

func TestValidateRejectsMissingEnd(t *testing.T) {
	topo := New(1)
	topo.AddHub(&Hub{Name: "start", Category: CategoryStart, Zone: ZoneNormal, Pos: Coord{0, 0}, MaxDrones: 1})
	if err := topo.Validate(); err == nil {
		t.Fatal("expected validation error for missing END hub")
	}
}

func TestValidateRejectsUnreachableEnd(t *testing.T) {
	topo := New(1)
	topo.AddHub(&Hub{Name: "start", Category: CategoryStart, Zone: ZoneNormal, Pos: Coord{0, 0}, MaxDrones: 1})
	topo.AddHub(&Hub{Name: "goal", Category: CategoryEnd, Zone: ZoneNormal, Pos: Coord{1, 1}, MaxDrones: 1})
	if err := topo.Validate(); err == nil {
		t.Fatal("expected validation error for disconnected START/END")
	}
}

func TestValidateExcludesBlockedHubFromPath(t *testing.T) {
	topo := New(1)
	topo.AddHub(&Hub{Name: "start", Category: CategoryStart, Zone: ZoneNormal, Pos: Coord{0, 0}, MaxDrones: 1})
	topo.AddHub(&Hub{Name: "b", Category: CategoryIntermediate, Zone: ZoneBlocked, Pos: Coord{1, 0}, MaxDrones: 1})
	topo.AddHub(&Hub{Name: "goal", Category: CategoryEnd, Zone: ZoneNormal, Pos: Coord{2, 0}, MaxDrones: 1})
	topo.AddConnection(Connection{A: "start", B: "b", MaxLinkCapacity: 1})
	topo.AddConnection(Connection{A: "b", B: "goal", MaxLinkCapacity: 1})

	if err := topo.Validate(); err == nil {
		t.Fatal("expected validation error: only path runs through a BLOCKED hub")
	}

	neighbors := topo.Neighbors("start")
	if len(neighbors) != 0 {
		t.Fatalf("expected BLOCKED neighbor to be excluded, got %d neighbors", len(neighbors))
	}
}
