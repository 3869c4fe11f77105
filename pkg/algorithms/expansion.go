package algorithms

import (
	"github.com/dd0wney/communitybench/pkg/graph"
)

// ExpansionOptions configures the local expansion engine
type ExpansionOptions struct {
	// MaxCycles caps the number of grow+prune cycles. The loop always
	// terminates on its own because every accepted move strictly improves
	// the significance score; the cap exists for callers that want to
	// bound work on very large graphs. Zero means no cap.
	MaxCycles int
}

// DefaultExpansionOptions returns default expansion configuration
func DefaultExpansionOptions() ExpansionOptions {
	return ExpansionOptions{
		MaxCycles: 0,
	}
}

// ExpansionResult contains the converged community for one seed
type ExpansionResult struct {
	Seed         graph.NodeID
	Members      graph.NodeSet // The detected community, always containing the seed
	Significance float64       // Final objective value (1 - conductance)
	Conductance  float64
	Cycles       int // Completed grow+prune cycles
	Additions    int // Nodes accepted during growth phases
	Removals     int // Nodes retracted during pruning phases
	Converged    bool
}

// Community returns the detected members in ascending order.
func (r *ExpansionResult) Community() []graph.NodeID {
	return r.Members.Sorted()
}

// Size returns the number of detected members.
func (r *ExpansionResult) Size() int {
	return len(r.Members)
}

// LocalExpansion grows a community around a single seed by alternating
// growth and pruning phases until a full cycle changes nothing.
//
// Growth adds the boundary node whose admission maximally improves the
// significance score, as long as the improvement is strictly positive.
// Pruning retracts the member (never the seed) whose removal maximally
// improves the score, under the same strictness rule. Ties break toward
// the lowest node identifier so runs are reproducible.
func LocalExpansion(g graph.Graph, seed graph.NodeID, opts ExpansionOptions) (*ExpansionResult, error) {
	if g == nil {
		return nil, &ExpansionError{Op: "expand", Seed: seed, Cause: ErrNilGraph}
	}
	if !g.HasNode(seed) {
		return nil, invalidSeedError("expand", seed)
	}

	state := newCommunityState(g, seed)
	result := &ExpansionResult{Seed: seed}

	for opts.MaxCycles <= 0 || result.Cycles < opts.MaxCycles {
		changed := false

		// Growth phase: admit boundary nodes while one strictly improves
		// the objective. The frontier is maintained incrementally here.
		boundary := state.frontier()
		for len(boundary) > 0 {
			candidate, gain := bestAddition(state, boundary)
			if gain <= 0 {
				break
			}
			state.add(candidate)
			delete(boundary, candidate)
			for _, neighbor := range g.Neighbors(candidate) {
				if !state.members.Contains(neighbor) {
					boundary[neighbor] = struct{}{}
				}
			}
			result.Additions++
			changed = true
		}

		// Pruning phase: retract the weakest member while doing so strictly
		// improves the objective. The seed is never removed.
		for state.size() > 1 {
			victim, gain := bestRemoval(state, seed)
			if gain <= 0 {
				break
			}
			state.remove(victim)
			result.Removals++
			changed = true
		}

		result.Cycles++
		if !changed {
			result.Converged = true
			break
		}
	}

	result.Members = state.members
	result.Significance = state.significance()
	result.Conductance = conductance(state.cut, state.volume, state.totalVolume)
	return result, nil
}

// bestAddition finds the boundary node whose admission yields the highest
// significance gain, breaking ties by lowest node identifier.
func bestAddition(state *communityState, boundary graph.NodeSet) (graph.NodeID, float64) {
	current := state.significance()
	var best graph.NodeID
	bestGain := 0.0
	found := false

	for _, v := range boundary.Sorted() {
		gain := state.significanceAfterAdd(v) - current
		if !found || gain > bestGain {
			best = v
			bestGain = gain
			found = true
		}
	}
	return best, bestGain
}

// bestRemoval finds the member (excluding the seed) whose removal yields the
// highest significance gain, breaking ties by lowest node identifier.
func bestRemoval(state *communityState, seed graph.NodeID) (graph.NodeID, float64) {
	current := state.significance()
	var best graph.NodeID
	bestGain := 0.0
	found := false

	for _, u := range state.members.Sorted() {
		if u == seed {
			continue
		}
		gain := state.significanceAfterRemove(u) - current
		if !found || gain > bestGain {
			best = u
			bestGain = gain
			found = true
		}
	}
	return best, bestGain
}
