package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/welltris/app"
	"github.com/plus3/welltris/bindings"
	"github.com/plus3/welltris/config"
	"github.com/plus3/welltris/debugui"
	"github.com/plus3/welltris/engine"
	"github.com/plus3/welltris/remote"
	"github.com/plus3/welltris/store"
	"github.com/plus3/welltris/story"
	"go.uber.org/zap"
)

const (
	ScreenWidth  = 960
	ScreenHeight = 720
	windowTitle  = "Welltris"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Defaults are used when empty.")
	dbPath := flag.String("db", "", "Override the storage path from the config.")
	seed := flag.Uint64("seed", 0, "Piece generator seed. 0 picks one at random unless the config sets one.")
	debug := flag.Bool("debug", false, "Show the ImGui inspector windows.")
	remoteAddr := flag.String("remote", "", "Serve the remote controller on this address, e.g. :28090.")
	devLog := flag.Bool("dev-log", false, "Use the human readable development logger.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	if *remoteAddr != "" {
		cfg.Remote.Enabled = true
		cfg.Remote.ListenAddress = *remoteAddr
	}
	if *devLog {
		cfg.Log.Development = true
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, *debug, logger); err != nil {
		logger.Fatal("welltris exited", zap.Error(err))
	}
}

func run(cfg *config.Config, debug bool, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	game, err := engine.NewGame(cfg.Rules(), engine.WithSeed(cfg.Seed), engine.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("game ready", zap.Uint64("seed", cfg.Seed), zap.Duration("tick", cfg.TickInterval()))

	table := bindings.Load(ctx, st, logger)
	machine := app.New(ctx, game, table, st, story.NewCampaign(cfg.Story), logger)

	host := &Host{
		ctx:            ctx,
		machine:        machine,
		broadcastEvery: uint64(cfg.Remote.BroadcastEvery),
		logger:         logger,
	}

	if cfg.Remote.Enabled {
		host.remote = remote.New(cfg.Remote.PublicURL, logger)
		go func() {
			if err := host.remote.ListenAndServe(ctx, cfg.Remote.ListenAddress); err != nil {
				logger.Error("remote controller stopped", zap.Error(err))
			}
		}()
		logger.Info("remote controller pairing", zap.String("token", host.remote.Token()))
	}

	if debug {
		host.overlay = debugui.NewOverlay(game, windowTitle, ScreenWidth, ScreenHeight)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
		ebiten.SetWindowTitle(windowTitle)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ticksPerSecond(cfg.TickInterval()))

	if err := ebiten.RunGame(host); err != nil && err != ebiten.Termination {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func ticksPerSecond(interval time.Duration) int {
	tps := int(time.Second / interval)
	if tps < 1 {
		return 1
	}
	return tps
}
