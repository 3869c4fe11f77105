package algorithms

import (
	"testing"

	"github.com/dd0wney/communitybench/pkg/graph"
)

// twoTriangles builds two disjoint triangles {1,2,3} and {4,5,6}
func twoTriangles() *graph.MemoryGraph {
	g := graph.NewMemoryGraph()
	g.AddEdge(1, 2)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)
	g.AddEdge(4, 5)
	g.AddEdge(4, 6)
	g.AddEdge(5, 6)
	return g
}

// barbell builds two triangles joined by a single bridge edge 3-4
func barbell() *graph.MemoryGraph {
	g := twoTriangles()
	g.AddEdge(3, 4)
	return g
}

// TestLocalExpansion_TwoTriangles tests convergence to exactly one triangle
func TestLocalExpansion_TwoTriangles(t *testing.T) {
	g := twoTriangles()

	result, err := LocalExpansion(g, 1, DefaultExpansionOptions())
	if err != nil {
		t.Fatalf("LocalExpansion failed: %v", err)
	}

	if !result.Converged {
		t.Error("Expected convergence")
	}

	community := result.Community()
	expected := []graph.NodeID{1, 2, 3}
	if len(community) != len(expected) {
		t.Fatalf("Expected community %v, got %v", expected, community)
	}
	for i, id := range expected {
		if community[i] != id {
			t.Fatalf("Expected community %v, got %v", expected, community)
		}
	}

	if result.Conductance != 0.0 {
		t.Errorf("Expected conductance 0 for a detached triangle, got %f", result.Conductance)
	}
	if result.Significance != 1.0 {
		t.Errorf("Expected significance 1, got %f", result.Significance)
	}
}

// TestLocalExpansion_IsolatedSeed tests immediate convergence for a degree-0 seed
func TestLocalExpansion_IsolatedSeed(t *testing.T) {
	g := twoTriangles()
	g.AddNode(7)

	result, err := LocalExpansion(g, 7, DefaultExpansionOptions())
	if err != nil {
		t.Fatalf("LocalExpansion failed: %v", err)
	}

	if !result.Converged {
		t.Error("Expected immediate convergence")
	}
	if result.Size() != 1 || !result.Members.Contains(7) {
		t.Errorf("Expected community {7}, got %v", result.Community())
	}
	if result.Cycles != 1 {
		t.Errorf("Expected a single no-op cycle, got %d", result.Cycles)
	}
}

// TestLocalExpansion_InvalidSeed tests the error for a seed absent from the graph
func TestLocalExpansion_InvalidSeed(t *testing.T) {
	g := twoTriangles()

	_, err := LocalExpansion(g, 99, DefaultExpansionOptions())
	if err == nil {
		t.Fatal("Expected error for missing seed")
	}
	if !IsInvalidSeed(err) {
		t.Errorf("Expected ErrInvalidSeed, got %v", err)
	}
}

// TestLocalExpansion_NilGraph tests the error for a nil graph
func TestLocalExpansion_NilGraph(t *testing.T) {
	_, err := LocalExpansion(nil, 1, DefaultExpansionOptions())
	if err == nil {
		t.Fatal("Expected error for nil graph")
	}
	if IsInvalidSeed(err) {
		t.Error("Nil graph should not report an invalid seed")
	}
}

// TestLocalExpansion_ContainsSeed tests that the seed is always a member
func TestLocalExpansion_ContainsSeed(t *testing.T) {
	g := barbell()

	for _, seed := range g.Nodes() {
		result, err := LocalExpansion(g, seed, DefaultExpansionOptions())
		if err != nil {
			t.Fatalf("LocalExpansion(%d) failed: %v", seed, err)
		}
		if !result.Members.Contains(seed) {
			t.Errorf("Community from seed %d does not contain it: %v", seed, result.Community())
		}
	}
}

// TestLocalExpansion_Deterministic tests that repeated runs agree
func TestLocalExpansion_Deterministic(t *testing.T) {
	g := barbell()

	first, err := LocalExpansion(g, 3, DefaultExpansionOptions())
	if err != nil {
		t.Fatalf("LocalExpansion failed: %v", err)
	}
	second, err := LocalExpansion(g, 3, DefaultExpansionOptions())
	if err != nil {
		t.Fatalf("LocalExpansion failed: %v", err)
	}

	a, b := first.Community(), second.Community()
	if len(a) != len(b) {
		t.Fatalf("Runs disagree: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Runs disagree: %v vs %v", a, b)
		}
	}
	if first.Significance != second.Significance {
		t.Errorf("Significance disagrees: %f vs %f", first.Significance, second.Significance)
	}
}

// TestLocalExpansion_BridgeStaysOut tests that a bridged triangle stays local
func TestLocalExpansion_BridgeStaysOut(t *testing.T) {
	g := barbell()

	result, err := LocalExpansion(g, 1, DefaultExpansionOptions())
	if err != nil {
		t.Fatalf("LocalExpansion failed: %v", err)
	}

	if !result.Members.Contains(1) || !result.Members.Contains(2) || !result.Members.Contains(3) {
		t.Errorf("Expected the seed triangle inside the community, got %v", result.Community())
	}
	if result.Members.Contains(5) && result.Members.Contains(6) && result.Size() == g.NodeCount() {
		t.Errorf("Expected a local community, got the whole graph %v", result.Community())
	}
}

// TestLocalExpansion_MaxCycles tests the work cap
func TestLocalExpansion_MaxCycles(t *testing.T) {
	g := barbell()

	result, err := LocalExpansion(g, 1, ExpansionOptions{MaxCycles: 1})
	if err != nil {
		t.Fatalf("LocalExpansion failed: %v", err)
	}
	if result.Cycles != 1 {
		t.Errorf("Expected exactly 1 cycle, got %d", result.Cycles)
	}
}

// TestCommunityState_Incremental tests the incremental cut/volume bookkeeping
func TestCommunityState_Incremental(t *testing.T) {
	g := barbell()

	state := newCommunityState(g, 1)
	if state.cut != 2 || state.volume != 2 {
		t.Fatalf("Expected cut=2 volume=2 for {1}, got cut=%d volume=%d", state.cut, state.volume)
	}

	state.add(2)
	if state.cut != 2 || state.volume != 4 {
		t.Errorf("Expected cut=2 volume=4 for {1,2}, got cut=%d volume=%d", state.cut, state.volume)
	}

	state.add(3)
	// {1,2,3}: only the bridge 3-4 crosses the boundary
	if state.cut != 1 || state.volume != 7 {
		t.Errorf("Expected cut=1 volume=7 for {1,2,3}, got cut=%d volume=%d", state.cut, state.volume)
	}

	state.remove(3)
	if state.cut != 2 || state.volume != 4 {
		t.Errorf("Expected cut=2 volume=4 after removing 3, got cut=%d volume=%d", state.cut, state.volume)
	}
}

// TestCommunityState_Frontier tests boundary computation
func TestCommunityState_Frontier(t *testing.T) {
	g := barbell()

	state := newCommunityState(g, 1)
	state.add(2)
	state.add(3)

	boundary := state.frontier()
	if len(boundary) != 1 || !boundary.Contains(4) {
		t.Errorf("Expected frontier {4}, got %v", boundary.Sorted())
	}
}

// TestConductance_Degenerate tests the degenerate denominator cases
func TestConductance_Degenerate(t *testing.T) {
	if c := conductance(0, 0, 12); c != 1.0 {
		t.Errorf("Expected conductance 1 for zero volume, got %f", c)
	}
	if c := conductance(0, 12, 12); c != 1.0 {
		t.Errorf("Expected conductance 1 for the whole graph, got %f", c)
	}
	if c := conductance(2, 4, 12); c != 0.5 {
		t.Errorf("Expected conductance 0.5, got %f", c)
	}
}
