package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/communitybench/pkg/config"
	"github.com/dd0wney/communitybench/pkg/evaluation"
	"github.com/dd0wney/communitybench/pkg/loader"
	"github.com/dd0wney/communitybench/pkg/logging"
	"github.com/dd0wney/communitybench/pkg/metrics"
	"github.com/dd0wney/communitybench/pkg/sampling"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	graphPath := flag.String("graph", "", "Path to the edge list file")
	labelsPath := flag.String("labels", "", "Path to the ground-truth community file")
	compression := flag.String("compression", "", "Input compression: auto, none, gzip or snappy")
	seedCount := flag.Int("seeds", 0, "Number of seed nodes to sample")
	strategy := flag.String("strategy", "", "Seed selection: random or maxdeg")
	workers := flag.Int("workers", 0, "Concurrent seed trials (1 = sequential)")
	randomSeed := flag.Int64("rand-seed", 0, "Random source seed for reproducible sampling")
	maxCycles := flag.Int("max-cycles", 0, "Cap on grow+prune cycles per trial (0 = uncapped)")
	keepCommunities := flag.Bool("keep-communities", false, "Include detected member lists in the report")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error")
	metricsAddr := flag.String("metrics-addr", "", "Expose prometheus metrics on this address during the run")
	jsonOutput := flag.Bool("json", false, "Print the report as JSON instead of text")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	// Explicit flags beat the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "graph":
			cfg.GraphPath = *graphPath
		case "labels":
			cfg.LabelsPath = *labelsPath
		case "compression":
			cfg.Compression = *compression
		case "seeds":
			cfg.SeedCount = *seedCount
		case "strategy":
			cfg.Strategy = *strategy
		case "workers":
			cfg.Workers = *workers
		case "rand-seed":
			cfg.RandomSeed = *randomSeed
		case "max-cycles":
			cfg.MaxCycles = *maxCycles
		case "keep-communities":
			cfg.KeepCommunities = *keepCommunities
		case "log-level":
			cfg.LogLevel = *logLevel
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		case "json":
			if *jsonOutput {
				cfg.Output = "json"
			}
		}
	})

	if cfg.GraphPath == "" || cfg.LabelsPath == "" {
		fmt.Fprintln(os.Stderr, "Both -graph and -labels are required (or set them in -config)")
		flag.Usage()
		os.Exit(2)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	compressionMode, err := loader.ParseCompression(cfg.Compression)
	if err != nil {
		log.Fatalf("Invalid compression: %v", err)
	}

	registry := metrics.NewRegistry()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, registry.Handler()); err != nil {
				logger.Error("metrics endpoint failed", logging.Err(err))
			}
		}()
		logger.Info("metrics endpoint started", logging.String("addr", cfg.MetricsAddr))
	}

	fmt.Printf("📂 Loading graph from %s...\n", cfg.GraphPath)
	timer := logging.StartTimer(logger, "graph loaded", logging.String("path", cfg.GraphPath))
	g, err := loader.LoadEdgeList(cfg.GraphPath, compressionMode)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	timer.End()
	fmt.Printf("  Nodes: %d, Edges: %d\n", g.NodeCount(), g.EdgeCount())

	fmt.Printf("📂 Loading ground-truth communities from %s...\n", cfg.LabelsPath)
	truth, err := loader.LoadLabels(cfg.LabelsPath, compressionMode)
	if err != nil {
		log.Fatalf("Failed to load labels: %v", err)
	}
	fmt.Printf("  Communities: %d\n\n", len(truth))

	runCfg := evaluation.Config{
		SeedCount:       cfg.SeedCount,
		Strategy:        sampling.Strategy(cfg.Strategy),
		Workers:         cfg.Workers,
		RandomSeed:      cfg.RandomSeed,
		MaxCycles:       cfg.MaxCycles,
		KeepCommunities: cfg.KeepCommunities,
	}

	evaluator := evaluation.NewEvaluator(g, truth).
		WithLogger(logger).
		WithMetrics(registry)

	fmt.Printf("📊 Evaluating %d seeds (%s)...\n\n", cfg.SeedCount, cfg.Strategy)
	report, err := evaluator.Run(runCfg)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	if cfg.Output == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	printReport(report)
}

// printReport renders the summary report for terminals.
func printReport(report *evaluation.SummaryReport) {
	fmt.Println(titleStyle.Render("=== RESULTS ==="))
	fmt.Printf("%s %s\n", labelStyle.Render("Run:      "), valueStyle.Render(report.RunID))
	fmt.Printf("%s %s\n", labelStyle.Render("Seeds:    "),
		valueStyle.Render(fmt.Sprintf("%d (%s)", report.SeedCount, report.Strategy)))
	fmt.Printf("%s %s\n", labelStyle.Render("Evaluated:"),
		valueStyle.Render(fmt.Sprintf("%d (%d skipped)", report.Evaluated, report.Failures)))
	fmt.Printf("%s %s\n\n", labelStyle.Render("Duration: "),
		valueStyle.Render(fmt.Sprintf("%.1fms", report.DurationMS)))

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-10s %8s %8s %8s", "metric", "mean", "std", "median")))
	for _, name := range evaluation.MetricNames {
		summary := report.Aggregate[name]
		fmt.Printf("%-10s %8.3f %8.3f %8.3f\n", name, summary.Mean, summary.Std, summary.Median)
	}

	fmt.Printf("\n✅ Done\n")
}
