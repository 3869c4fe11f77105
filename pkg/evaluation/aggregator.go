package evaluation

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/communitybench/pkg/algorithms"
	"github.com/dd0wney/communitybench/pkg/graph"
	"github.com/dd0wney/communitybench/pkg/logging"
	"github.com/dd0wney/communitybench/pkg/metrics"
	"github.com/dd0wney/communitybench/pkg/parallel"
	"github.com/dd0wney/communitybench/pkg/sampling"
	"github.com/dd0wney/communitybench/pkg/validation"
)

// Config configures one evaluation run
type Config struct {
	// SeedCount is the number of seed nodes to sample
	SeedCount int
	// Strategy selects how seeds are drawn
	Strategy sampling.Strategy
	// Workers sets how many trials run concurrently; 0 or 1 is sequential.
	// Trials share only read-only inputs, and records are ordered by
	// seed-selection order afterwards, so parallelism never changes results.
	Workers int
	// RandomSeed feeds the sampler's random source
	RandomSeed int64
	// MaxCycles caps expansion work per trial (0 = uncapped)
	MaxCycles int
	// KeepCommunities includes full member lists in the score records
	KeepCommunities bool
}

// DefaultConfig returns the default evaluation configuration
func DefaultConfig() Config {
	return Config{
		SeedCount:  20,
		Strategy:   sampling.StrategyRandom,
		Workers:    1,
		RandomSeed: sampling.DefaultRandomSeed,
	}
}

// ScoreRecord holds the outcome of one seed's trial
type ScoreRecord struct {
	Seed          graph.NodeID   `json:"seed"`
	CommunitySize int            `json:"community_size"`
	Community     []graph.NodeID `json:"community,omitempty"`
	Significance  float64        `json:"significance"`
	Cycles        int            `json:"cycles"`
	BestMatch     int            `json:"best_match"` // ground-truth index, -1 when unmatched
	Metrics       Metrics        `json:"metrics"`
}

// SummaryReport is the final output artifact of an evaluation run
type SummaryReport struct {
	RunID      string                   `json:"run_id"`
	Strategy   string                   `json:"strategy"`
	SeedCount  int                      `json:"seed_count"`
	Evaluated  int                      `json:"evaluated"`
	Failures   int                      `json:"failures"`
	GraphNodes int                      `json:"graph_nodes"`
	GraphEdges int                      `json:"graph_edges"`
	PerSeed    []ScoreRecord            `json:"per_seed"`
	Aggregate  map[string]MetricSummary `json:"aggregate"`
	DurationMS float64                  `json:"duration_ms"`
}

// Evaluator runs the expansion engine over sampled seeds and scores each
// result against the ground-truth labeling. Graph and labeling are treated
// as immutable, shared-read resources for the duration of a run.
type Evaluator struct {
	graph   graph.Graph
	truth   []graph.NodeSet
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewEvaluator creates an evaluator over a graph and its ground-truth labeling.
func NewEvaluator(g graph.Graph, truth []graph.NodeSet) *Evaluator {
	return &Evaluator{
		graph:  g,
		truth:  truth,
		logger: logging.NewNopLogger(),
	}
}

// WithLogger sets the logger used during runs.
func (e *Evaluator) WithLogger(logger logging.Logger) *Evaluator {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// WithMetrics sets the metrics registry updated during runs.
func (e *Evaluator) WithMetrics(registry *metrics.Registry) *Evaluator {
	e.metrics = registry
	return e
}

// Run validates the configuration, samples seeds, and evaluates them.
// Configuration errors are fatal and reported before any trial executes.
func (e *Evaluator) Run(cfg Config) (*SummaryReport, error) {
	if err := validation.ValidateRunRequest(&validation.RunRequest{
		SeedCount: cfg.SeedCount,
		Strategy:  string(cfg.Strategy),
		Workers:   cfg.Workers,
		MaxCycles: cfg.MaxCycles,
	}); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.RandomSeed))
	sampler := sampling.NewSampler(e.graph, rng)
	seeds, err := sampler.Sample(cfg.SeedCount, cfg.Strategy)
	if err != nil {
		return nil, err
	}

	return e.RunWithSeeds(cfg, seeds)
}

// RunWithSeeds evaluates the given seeds in order. Seeds absent from the
// graph are skipped and counted as failures; any other trial error aborts
// the run.
func (e *Evaluator) RunWithSeeds(cfg Config, seeds []graph.NodeID) (*SummaryReport, error) {
	start := time.Now()

	// Build the graph's cached views up front: trials afterwards only read.
	e.graph.Nodes()

	records := make([]*ScoreRecord, len(seeds))
	trialErrs := make([]error, len(seeds))

	trial := func(i int) {
		records[i], trialErrs[i] = e.runTrial(cfg, seeds[i])
	}

	if cfg.Workers > 1 {
		pool := parallel.NewWorkerPool(cfg.Workers)
		for i := range seeds {
			i := i
			pool.Submit(func() { trial(i) })
		}
		if err := pool.Wait(); err != nil {
			return nil, fmt.Errorf("evaluation trials: %w", err)
		}
	} else {
		for i := range seeds {
			trial(i)
		}
	}

	report := &SummaryReport{
		RunID:      uuid.New().String(),
		Strategy:   string(cfg.Strategy),
		SeedCount:  len(seeds),
		GraphNodes: e.graph.NodeCount(),
		GraphEdges: e.graph.EdgeCount(),
		PerSeed:    make([]ScoreRecord, 0, len(seeds)),
	}

	// Collect in seed-selection order so parallel scheduling never changes
	// the reported statistics.
	for i, seed := range seeds {
		if err := trialErrs[i]; err != nil {
			if algorithms.IsInvalidSeed(err) {
				report.Failures++
				e.logger.Warn("skipping trial", logging.Int64("seed", int64(seed)), logging.Err(err))
				continue
			}
			return nil, err
		}
		report.PerSeed = append(report.PerSeed, *records[i])
	}
	report.Evaluated = len(report.PerSeed)

	report.Aggregate = aggregate(report.PerSeed)

	elapsed := time.Since(start)
	report.DurationMS = float64(elapsed.Microseconds()) / 1000.0
	if e.metrics != nil {
		e.metrics.SetGraphSize(report.GraphNodes, report.GraphEdges)
		e.metrics.RecordEvaluation(elapsed)
	}

	e.logger.Info("evaluation finished",
		logging.String("run_id", report.RunID),
		logging.String("strategy", report.Strategy),
		logging.Int("evaluated", report.Evaluated),
		logging.Int("failures", report.Failures),
		logging.Float64("mean_f1", report.Aggregate["f1"].Mean),
		logging.Latency(elapsed),
	)

	return report, nil
}

// runTrial expands one seed and scores the detected community.
func (e *Evaluator) runTrial(cfg Config, seed graph.NodeID) (*ScoreRecord, error) {
	trialStart := time.Now()

	result, err := algorithms.LocalExpansion(e.graph, seed, algorithms.ExpansionOptions{
		MaxCycles: cfg.MaxCycles,
	})
	if err != nil {
		if e.metrics != nil && algorithms.IsInvalidSeed(err) {
			e.metrics.RecordTrial(string(cfg.Strategy), metrics.TrialStatusInvalidSeed, 0, 0, 0)
		}
		return nil, err
	}

	m, bestIdx := ScoreAgainstGroundTruth(result.Members, e.truth)

	record := &ScoreRecord{
		Seed:          seed,
		CommunitySize: result.Size(),
		Significance:  result.Significance,
		Cycles:        result.Cycles,
		BestMatch:     bestIdx,
		Metrics:       m,
	}
	if cfg.KeepCommunities {
		record.Community = result.Community()
	}

	if e.metrics != nil {
		e.metrics.RecordTrial(string(cfg.Strategy), metrics.TrialStatusOK,
			time.Since(trialStart), result.Cycles, result.Size())
		e.metrics.RecordScore(m.F1)
	}

	e.logger.Debug("trial finished",
		logging.Int64("seed", int64(seed)),
		logging.Int("community_size", record.CommunitySize),
		logging.Float64("f1", m.F1),
		logging.Bool("converged", result.Converged),
	)

	return record, nil
}

// aggregate reduces per-seed metrics to summary statistics per metric name.
func aggregate(records []ScoreRecord) map[string]MetricSummary {
	series := make(map[string][]float64, len(MetricNames))
	for _, record := range records {
		for _, name := range MetricNames {
			series[name] = append(series[name], record.Metrics.ByName(name))
		}
	}

	summary := make(map[string]MetricSummary, len(MetricNames))
	for _, name := range MetricNames {
		summary[name] = summarize(series[name])
	}
	return summary
}
