// Command simulator builds a trust-domain-partitioned overlay topology
// from a scenario file and runs its scripted actions, printing the
// resulting domain tree and run stats.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/config"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/ctxutil"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/engine"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/logger"
	loggerzap "github.com/mikkelsvartveit/gdp-multicast-simulator/internal/logger/zap"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/scenario"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/telemetry"

	"github.com/google/uuid"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to simulator config")
	scenarioPath := flag.String("scenario", "", "path to scenario file (overrides config.scenario.file)")
	flag.Parse()

	if err := run(*configPath, *scenarioPath); err != nil {
		log.Fatalf("simulator: %v", err)
	}
}

func run(configPath, scenarioOverride string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnvOverrides()
	if scenarioOverride != "" {
		cfg.Scenario.File = scenarioOverride
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	log := buildLogger(cfg.Logger)

	runID := uuid.NewString()
	shutdown := telemetry.InitTracer(cfg.Telemetry, "multicast-simulator", runID)
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("simulator: tracer shutdown failed", logger.F("error", err.Error()))
		}
	}()

	sc, err := scenario.Load(cfg.Scenario.File)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}

	eng, err := scenario.Build(sc, engine.WithLogger(log.Named("engine")))
	if err != nil {
		return fmt.Errorf("build topology: %w", err)
	}

	ctx, cancel := ctxutil.NewContext(ctxutil.WithTrace(runID), ctxutil.WithHops())
	defer cancel()

	if err := scenario.Run(ctx, eng, sc); err != nil {
		return fmt.Errorf("run scenario: %w", err)
	}

	printDomainTree(eng)
	printStats(eng)
	return nil
}

func buildLogger(cfg config.LoggerConfig) logger.Logger {
	if !cfg.Active {
		return &logger.NopLogger{}
	}
	zl, err := loggerzap.New(cfg)
	if err != nil {
		log.Printf("simulator: falling back to discard logger: %v", err)
		return &logger.NopLogger{}
	}
	return loggerzap.NewZapAdapter(zl)
}

func printDomainTree(eng *engine.Engine) {
	fmt.Fprintln(os.Stdout, "domain tree:")
	for _, entry := range eng.Registry().DomainTree() {
		parent := entry.Parent
		if parent == "" {
			parent = "-"
		}
		fmt.Fprintf(os.Stdout, "  %*s%s (%s, parent=%s)\n", entry.Depth*2, "", entry.Name, entry.Role, parent)
	}
}

func printStats(eng *engine.Engine) {
	s := eng.Stats
	fmt.Fprintln(os.Stdout, "stats:")
	fmt.Fprintf(os.Stdout, "  links added:               %d\n", s.LinksAdded)
	fmt.Fprintf(os.Stdout, "  total edge weight:         %d\n", s.TotalEdgeWeight)
	fmt.Fprintf(os.Stdout, "  multicast messages delivered: %d\n", s.MulticastMessagesDelivered)
	fmt.Fprintf(os.Stdout, "  multicast hops forwarded:  %d\n", s.MulticastHopsForwarded)
}
