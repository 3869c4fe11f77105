package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordTrial tests trial counters and histograms
func TestRecordTrial(t *testing.T) {
	r := NewRegistry()

	r.RecordTrial("random", TrialStatusOK, 10*time.Millisecond, 3, 25)
	r.RecordTrial("random", TrialStatusOK, 20*time.Millisecond, 2, 10)
	r.RecordTrial("random", TrialStatusInvalidSeed, 0, 0, 0)

	ok := testutil.ToFloat64(r.TrialsTotal.WithLabelValues("random", TrialStatusOK))
	if ok != 2 {
		t.Errorf("Expected 2 ok trials, got %f", ok)
	}

	failed := testutil.ToFloat64(r.TrialsTotal.WithLabelValues("random", TrialStatusInvalidSeed))
	if failed != 1 {
		t.Errorf("Expected 1 failed trial, got %f", failed)
	}

	// Failed trials must not pollute the expansion histograms
	count, err := testutil.GatherAndCount(r.Gatherer(), "communitybench_expansion_duration_seconds")
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 histogram family, got %d", count)
	}
}

// TestSetGraphSize tests the graph gauges
func TestSetGraphSize(t *testing.T) {
	r := NewRegistry()

	r.SetGraphSize(6, 7)

	if v := testutil.ToFloat64(r.GraphNodesTotal); v != 6 {
		t.Errorf("Expected 6 nodes, got %f", v)
	}
	if v := testutil.ToFloat64(r.GraphEdgesTotal); v != 7 {
		t.Errorf("Expected 7 edges, got %f", v)
	}
}

// TestRecordEvaluation tests the run counter
func TestRecordEvaluation(t *testing.T) {
	r := NewRegistry()

	r.RecordEvaluation(time.Second)
	r.RecordEvaluation(2 * time.Second)

	if v := testutil.ToFloat64(r.EvaluationsTotal); v != 2 {
		t.Errorf("Expected 2 evaluations, got %f", v)
	}
}

// TestExposition tests that metrics render under their expected names
func TestExposition(t *testing.T) {
	r := NewRegistry()
	r.SetGraphSize(10, 20)

	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := false
	for _, family := range families {
		if strings.HasPrefix(family.GetName(), "communitybench_graph_nodes") {
			found = true
		}
	}
	if !found {
		t.Error("Expected communitybench_graph_nodes_total in exposition")
	}
}
