package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/welltris/config"
	"github.com/plus3/welltris/engine"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The longest the soak should run for.")
	maxTicks := flag.Uint64("ticks", 0, "Stop after this many ticks. 0 runs until the duration elapses.")
	seed := flag.Uint64("seed", 1, "Seed for the piece generator and the bot.")
	actionRate := flag.Float64("action-rate", 0.2, "Chance per tick that the bot sends an action.")
	configPath := flag.String("config", "", "Path to a YAML config file.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	devLog := flag.Bool("dev-log", false, "Log game events with the development logger.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	logger := zap.NewNop()
	if *devLog {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		logger = l
	}

	game, err := engine.NewGame(cfg.Rules(), engine.WithSeed(*seed), engine.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	log.Printf("Running soak for up to %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		ActionRate:     *actionRate,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	bot := NewBot(*seed, *actionRate)
	if err := Soak(ctx, game, bot, *maxTicks, report); err != nil {
		log.Fatalf("Soak failed: %v", err)
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
