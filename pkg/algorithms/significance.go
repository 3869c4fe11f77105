package algorithms

import (
	"github.com/dd0wney/communitybench/pkg/graph"
)

// communityState tracks one candidate community together with the quantities
// needed to score membership moves in O(deg) time: the cut (edges with
// exactly one endpoint inside) and the volume (sum of member degrees).
type communityState struct {
	g           graph.Graph
	members     graph.NodeSet
	cut         int
	volume      int
	totalVolume int
}

// newCommunityState starts a community containing only the seed.
func newCommunityState(g graph.Graph, seed graph.NodeID) *communityState {
	return &communityState{
		g:           g,
		members:     graph.NewNodeSet(seed),
		cut:         g.Degree(seed),
		volume:      g.Degree(seed),
		totalVolume: 2 * g.EdgeCount(),
	}
}

// size returns the number of members.
func (s *communityState) size() int {
	return len(s.members)
}

// internalDegree counts edges from v into the current community. When v is a
// member, its own membership does not count (self-loops are excluded by the
// graph layer).
func (s *communityState) internalDegree(v graph.NodeID) int {
	kin := 0
	for _, w := range s.g.Neighbors(v) {
		if s.members.Contains(w) {
			kin++
		}
	}
	return kin
}

// conductance is cut(S) / min(vol(S), vol(V\S)); a degenerate denominator
// (single isolated member, or the whole graph) scores as 1.
func conductance(cut, volume, totalVolume int) float64 {
	denom := volume
	if rest := totalVolume - volume; rest < denom {
		denom = rest
	}
	if denom <= 0 {
		return 1.0
	}
	return float64(cut) / float64(denom)
}

// significance is the aggregate objective the engine greedily improves:
// 1 - conductance, so that better-separated communities score higher.
func (s *communityState) significance() float64 {
	return 1.0 - conductance(s.cut, s.volume, s.totalVolume)
}

// significanceAfterAdd scores the community as if v were added, without
// mutating the state.
func (s *communityState) significanceAfterAdd(v graph.NodeID) float64 {
	kin := s.internalDegree(v)
	deg := s.g.Degree(v)
	return 1.0 - conductance(s.cut+deg-2*kin, s.volume+deg, s.totalVolume)
}

// significanceAfterRemove scores the community as if member u were removed,
// without mutating the state.
func (s *communityState) significanceAfterRemove(u graph.NodeID) float64 {
	kin := s.internalDegree(u)
	deg := s.g.Degree(u)
	return 1.0 - conductance(s.cut-deg+2*kin, s.volume-deg, s.totalVolume)
}

// add inserts v and updates cut and volume incrementally.
func (s *communityState) add(v graph.NodeID) {
	kin := s.internalDegree(v)
	deg := s.g.Degree(v)
	s.cut += deg - 2*kin
	s.volume += deg
	s.members[v] = struct{}{}
}

// remove deletes member u and updates cut and volume incrementally.
func (s *communityState) remove(u graph.NodeID) {
	delete(s.members, u)
	kin := s.internalDegree(u)
	deg := s.g.Degree(u)
	s.cut -= deg - 2*kin
	s.volume -= deg
}

// frontier returns the boundary: nodes adjacent to the community but not in it.
func (s *communityState) frontier() graph.NodeSet {
	boundary := make(graph.NodeSet)
	for member := range s.members {
		for _, neighbor := range s.g.Neighbors(member) {
			if !s.members.Contains(neighbor) {
				boundary[neighbor] = struct{}{}
			}
		}
	}
	return boundary
}
