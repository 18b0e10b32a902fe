package kst

import (
	"errors"
	"testing"
)

func TestNewPrerequisiteGraphRejectsSelfLoop(t *testing.T) {
	d := diamondDomain(t)
	_, err := NewPrerequisiteGraph(d, []Edge{{From: "a", To: "a"}})
	var cyc *CyclicPrerequisitesError
	if !errors.As(err, &cyc) {
		t.Errorf("NewPrerequisiteGraph() error = %v, want *CyclicPrerequisitesError", err)
	}
}

func TestNewPrerequisiteGraphRejectsCycle(t *testing.T) {
	d := diamondDomain(t)
	_, err := NewPrerequisiteGraph(d, []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "c", To: "a"}})
	if !errors.Is(err, ErrCyclicPrerequisites) {
		t.Errorf("NewPrerequisiteGraph() error = %v, want ErrCyclicPrerequisites", err)
	}
}

func TestNewPrerequisiteGraphRejectsUnknownItem(t *testing.T) {
	d := diamondDomain(t)
	_, err := NewPrerequisiteGraph(d, []Edge{{From: "a", To: "z"}})
	var unknown *UnknownItemError
	if !errors.As(err, &unknown) {
		t.Errorf("NewPrerequisiteGraph() error = %v, want *UnknownItemError", err)
	}
}

func diamondGraph(t *testing.T) PrerequisiteGraph {
	t.Helper()
	d := diamondDomain(t)
	g, err := NewPrerequisiteGraph(d, []Edge{
		{From: "a", To: "c"}, {From: "b", To: "c"}, {From: "c", To: "d"},
	})
	if err != nil {
		t.Fatalf("NewPrerequisiteGraph() error = %v", err)
	}
	return g
}

func TestPrerequisiteGraphDirectEdges(t *testing.T) {
	g := diamondGraph(t)
	if got := g.DirectPrerequisites("c"); len(got) != 2 {
		t.Errorf("DirectPrerequisites(c) = %v, want 2 entries", got)
	}
	if got := g.DirectDependents("c"); len(got) != 1 || got[0] != "d" {
		t.Errorf("DirectDependents(c) = %v, want [d]", got)
	}
}

func TestPrerequisiteGraphTopologicalOrders(t *testing.T) {
	g := diamondGraph(t)
	orders := g.TopologicalOrders()
	if len(orders) == 0 {
		t.Fatal("TopologicalOrders() returned no orders")
	}
	for _, order := range orders {
		pos := make(map[string]int, len(order))
		for i, id := range order {
			pos[id] = i
		}
		if pos["a"] >= pos["c"] || pos["b"] >= pos["c"] || pos["c"] >= pos["d"] {
			t.Errorf("order %v violates prerequisite constraints", order)
		}
	}
}

func TestPrerequisiteGraphToSurmiseRelationClosure(t *testing.T) {
	g := diamondGraph(t)
	rel, err := g.ToSurmiseRelation()
	if err != nil {
		t.Fatalf("ToSurmiseRelation() error = %v", err)
	}
	if got := rel.PrerequisitesOf("d"); len(got) != 3 {
		t.Errorf("PrerequisitesOf(d) = %v, want [a b c] (transitive closure)", got)
	}
}

func TestPrerequisiteGraphTransitiveReduction(t *testing.T) {
	d := diamondDomain(t)
	g, err := NewPrerequisiteGraph(d, []Edge{
		{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "a", To: "c"}, // a->c is redundant
	})
	if err != nil {
		t.Fatalf("NewPrerequisiteGraph() error = %v", err)
	}
	reduced, err := g.TransitiveReduction()
	if err != nil {
		t.Fatalf("TransitiveReduction() error = %v", err)
	}
	if len(reduced.Edges()) != 2 {
		t.Errorf("TransitiveReduction() has %d edges, want 2", len(reduced.Edges()))
	}
}

func TestPrerequisiteGraphLongestPath(t *testing.T) {
	g := diamondGraph(t)
	path, length := g.LongestPath()
	if length != 2 {
		t.Errorf("LongestPath() length = %d, want 2", length)
	}
	if len(path) != 3 || path[len(path)-1].ID != "d" {
		t.Errorf("LongestPath() = %v, want a path ending at d", path)
	}
}

func TestPrerequisiteGraphLongestPathIsolatedItem(t *testing.T) {
	d, err := NewDomain(MustNewItem("a", ""))
	if err != nil {
		t.Fatalf("NewDomain() error = %v", err)
	}
	g, err := NewPrerequisiteGraph(d, nil)
	if err != nil {
		t.Fatalf("NewPrerequisiteGraph() error = %v", err)
	}
	_, length := g.LongestPath()
	if length != 0 {
		t.Errorf("LongestPath() length = %d, want 0 for an isolated item", length)
	}
}
