package sampling

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/dd0wney/communitybench/pkg/graph"
)

// ErrInvalidConfiguration marks configuration problems that are fatal to an
// evaluation run: an unknown strategy or a seed count the graph cannot supply.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// DefaultRandomSeed keeps unseeded runs reproducible across invocations.
const DefaultRandomSeed int64 = 42

// Strategy selects how seed nodes are drawn from a graph
type Strategy string

const (
	// StrategyRandom draws seeds uniformly without replacement
	StrategyRandom Strategy = "random"
	// StrategyMaxDegree picks the k highest-degree nodes deterministically
	StrategyMaxDegree Strategy = "maxdeg"
)

// ParseStrategy converts a string to a Strategy.
// Unknown values fail with ErrInvalidConfiguration.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyRandom:
		return StrategyRandom, nil
	case StrategyMaxDegree:
		return StrategyMaxDegree, nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfiguration, s)
	}
}

// Sampler draws seed nodes from a graph. Randomness comes from an explicit
// source so evaluation runs can be reproduced.
type Sampler struct {
	g   graph.Graph
	rng *rand.Rand
}

// NewSampler creates a sampler over g. A nil rng falls back to a source
// seeded with DefaultRandomSeed.
func NewSampler(g graph.Graph, rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(DefaultRandomSeed))
	}
	return &Sampler{g: g, rng: rng}
}

// Sample returns k distinct seed nodes drawn with the given strategy.
// It fails with ErrInvalidConfiguration when k < 1, when k exceeds the
// number of nodes, or when the strategy is unknown.
func (s *Sampler) Sample(k int, strategy Strategy) ([]graph.NodeID, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: seed count %d must be at least 1", ErrInvalidConfiguration, k)
	}
	if n := s.g.NodeCount(); k > n {
		return nil, fmt.Errorf("%w: seed count %d exceeds %d available nodes", ErrInvalidConfiguration, k, n)
	}

	switch strategy {
	case StrategyRandom:
		return s.sampleRandom(k), nil
	case StrategyMaxDegree:
		return s.sampleMaxDegree(k), nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfiguration, strategy)
	}
}

// sampleRandom draws k nodes uniformly without replacement.
func (s *Sampler) sampleRandom(k int) []graph.NodeID {
	nodes := s.g.Nodes()
	perm := s.rng.Perm(len(nodes))

	seeds := make([]graph.NodeID, k)
	for i := 0; i < k; i++ {
		seeds[i] = nodes[perm[i]]
	}
	return seeds
}

// sampleMaxDegree returns the k highest-degree nodes, breaking degree ties
// by ascending node identifier so repeated calls return the same sequence.
func (s *Sampler) sampleMaxDegree(k int) []graph.NodeID {
	nodes := append([]graph.NodeID(nil), s.g.Nodes()...)
	sort.SliceStable(nodes, func(i, j int) bool {
		di, dj := s.g.Degree(nodes[i]), s.g.Degree(nodes[j])
		if di != dj {
			return di > dj
		}
		return nodes[i] < nodes[j]
	})
	return nodes[:k]
}
