package graph

import "sort"

// NodeID identifies a node in a graph. Benchmark edge lists use integer
// identifiers, and an ordered type gives the algorithms a stable tie-break.
type NodeID int64

// NodeSet is a set of node identifiers with O(1) membership tests.
type NodeSet map[NodeID]struct{}

// NewNodeSet builds a set from the given identifiers.
func NewNodeSet(ids ...NodeID) NodeSet {
	s := make(NodeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is a member of the set.
func (s NodeSet) Contains(id NodeID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s NodeSet) Sorted() []NodeID {
	ids := make([]NodeID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Min returns the smallest member, or (0, false) if the set is empty.
func (s NodeSet) Min() (NodeID, bool) {
	found := false
	var min NodeID
	for id := range s {
		if !found || id < min {
			min = id
			found = true
		}
	}
	return min, found
}

// Graph is read-only access to an undirected, unweighted simple graph.
// The expansion engine and the seed sampler depend only on this interface,
// so any adjacency structure that can answer these queries works.
type Graph interface {
	// Nodes returns all node identifiers in ascending order.
	Nodes() []NodeID
	// Neighbors returns the adjacent nodes of id in ascending order.
	// An unknown id yields an empty slice.
	Neighbors(id NodeID) []NodeID
	// Degree returns the number of edges incident to id.
	Degree(id NodeID) int
	// HasNode reports whether id is present in the graph.
	HasNode(id NodeID) bool
	// NodeCount returns the number of nodes.
	NodeCount() int
	// EdgeCount returns the number of undirected edges.
	EdgeCount() int
}

// MemoryGraph is an adjacency-map implementation of Graph.
// Self-loops and duplicate edges are dropped at insertion so that degree
// counts are meaningful to the expansion objective.
//
// MemoryGraph is not safe for concurrent mutation. Reads are safe to share
// across goroutines once mutation has stopped and the cached views have been
// built; any call to Nodes or Neighbors builds them.
type MemoryGraph struct {
	adj       map[NodeID]NodeSet
	sorted    map[NodeID][]NodeID // lazily rebuilt neighbor slices
	nodes     []NodeID            // lazily rebuilt sorted node list
	edgeCount int
	dirty     bool
}

// NewMemoryGraph creates an empty graph.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		adj:    make(map[NodeID]NodeSet),
		sorted: make(map[NodeID][]NodeID),
	}
}

// AddNode ensures id is present, with or without incident edges.
func (g *MemoryGraph) AddNode(id NodeID) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(NodeSet)
		g.dirty = true
	}
}

// AddEdge inserts the undirected edge (u, v). Self-loops and edges already
// present are ignored. Both endpoints are created if missing.
func (g *MemoryGraph) AddEdge(u, v NodeID) {
	if u == v {
		return
	}
	g.AddNode(u)
	g.AddNode(v)
	if g.adj[u].Contains(v) {
		return
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.edgeCount++
	g.dirty = true
}

// Nodes returns all node identifiers in ascending order.
func (g *MemoryGraph) Nodes() []NodeID {
	g.rebuild()
	return g.nodes
}

// Neighbors returns the adjacent nodes of id in ascending order.
func (g *MemoryGraph) Neighbors(id NodeID) []NodeID {
	g.rebuild()
	return g.sorted[id]
}

// Degree returns the number of edges incident to id.
func (g *MemoryGraph) Degree(id NodeID) int {
	return len(g.adj[id])
}

// HasNode reports whether id is present in the graph.
func (g *MemoryGraph) HasNode(id NodeID) bool {
	_, ok := g.adj[id]
	return ok
}

// NodeCount returns the number of nodes.
func (g *MemoryGraph) NodeCount() int {
	return len(g.adj)
}

// EdgeCount returns the number of undirected edges.
func (g *MemoryGraph) EdgeCount() int {
	return g.edgeCount
}

// Volume returns the sum of all node degrees (2 * EdgeCount).
func (g *MemoryGraph) Volume() int {
	return 2 * g.edgeCount
}

// rebuild refreshes the cached sorted views after mutations.
func (g *MemoryGraph) rebuild() {
	if !g.dirty {
		return
	}
	g.nodes = make([]NodeID, 0, len(g.adj))
	for id := range g.adj {
		g.nodes = append(g.nodes, id)
	}
	sort.Slice(g.nodes, func(i, j int) bool { return g.nodes[i] < g.nodes[j] })

	g.sorted = make(map[NodeID][]NodeID, len(g.adj))
	for id, neighbors := range g.adj {
		g.sorted[id] = neighbors.Sorted()
	}
	g.dirty = false
}
