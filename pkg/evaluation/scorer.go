package evaluation

import (
	"github.com/dd0wney/communitybench/pkg/graph"
)

// Metrics holds the set-overlap scores of one detected community against a
// ground-truth community.
type Metrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Jaccard   float64 `json:"jaccard"`
}

// MetricNames lists the metric keys in report order.
var MetricNames = []string{"precision", "recall", "f1", "jaccard"}

// ByName returns the metric value for one of MetricNames.
func (m Metrics) ByName(name string) float64 {
	switch name {
	case "precision":
		return m.Precision
	case "recall":
		return m.Recall
	case "f1":
		return m.F1
	case "jaccard":
		return m.Jaccard
	default:
		return 0
	}
}

// scoreOverlap computes the overlap metrics between a detected community and
// one ground-truth community. Empty inputs yield all-zero metrics.
func scoreOverlap(detected, truth graph.NodeSet) Metrics {
	if len(detected) == 0 || len(truth) == 0 {
		return Metrics{}
	}

	intersection := 0
	for id := range detected {
		if truth.Contains(id) {
			intersection++
		}
	}

	precision := float64(intersection) / float64(len(detected))
	recall := float64(intersection) / float64(len(truth))

	f1 := 0.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	union := len(detected) + len(truth) - intersection
	jaccard := float64(intersection) / float64(union)

	return Metrics{
		Precision: precision,
		Recall:    recall,
		F1:        f1,
		Jaccard:   jaccard,
	}
}

// ScoreAgainstGroundTruth scores a detected community against its
// best-matching ground-truth community and returns that community's index.
//
// The best match maximizes F1; ties break toward the smaller ground-truth
// community, then toward the one with the smallest member identifier, so
// the selection is deterministic. An empty detected community or an empty
// (or all-empty) labeling yields zero metrics and index -1.
func ScoreAgainstGroundTruth(detected graph.NodeSet, truth []graph.NodeSet) (Metrics, int) {
	best := Metrics{}
	bestIdx := -1
	bestSize := 0
	var bestMin graph.NodeID

	if len(detected) == 0 {
		return best, bestIdx
	}

	for i, community := range truth {
		if len(community) == 0 {
			continue
		}
		candidate := scoreOverlap(detected, community)
		min, _ := community.Min()

		switch {
		case bestIdx == -1:
		case candidate.F1 > best.F1:
		case candidate.F1 == best.F1 && len(community) < bestSize:
		case candidate.F1 == best.F1 && len(community) == bestSize && min < bestMin:
		default:
			continue
		}

		best = candidate
		bestIdx = i
		bestSize = len(community)
		bestMin = min
	}

	return best, bestIdx
}
