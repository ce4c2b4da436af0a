package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"skirmish-server/internal/config"
	"skirmish-server/internal/engine"
	"skirmish-server/internal/infrastructure/storage"
	"skirmish-server/internal/matchmaking"
	"skirmish-server/internal/network"
	"skirmish-server/internal/server"
	"skirmish-server/internal/session"
	"skirmish-server/internal/version"
	"skirmish-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Флаги
	var (
		configPath string
		seed       int64
		replayPath string
	)
	flag.StringVar(&configPath, "config", "", "Path to TOML config (optional)")
	flag.Int64Var(&seed, "seed", session.DefaultSandboxSeed, "Seed of the sandbox match")
	flag.StringVar(&replayPath, "replay", "", "Path to .skrp replay file to simulate")
	flag.Parse()

	info := version.Info()
	logger.Log.WithFields(info.Fields()).Info("Starting skirmish server")

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		if err := runReplay(replayPath, cfg.EngineConfig()); err != nil {
			logger.Log.WithError(err).Fatal("Replay failed")
		}
		return
	}

	if err := run(cfg, seed); err != nil {
		logger.Log.WithError(err).Fatal("Server stopped with error")
	}
	logger.Log.Info("Done.")
}

func run(cfg *config.Config, seed int64) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Сборка сервисов
	hub := network.NewBroadcaster()
	sessions := session.NewManager(hub, cfg.EngineConfig(), session.WithSandboxSeed(seed))
	feed := matchmaking.NewFeed(cfg.Matchmaking.Buffer)
	srv := server.New(cfg, sessions, hub, feed)

	logger.Log.WithFields(logrus.Fields{
		"port":         cfg.Server.Port,
		"sandbox_seed": seed,
		"max_rounds":   cfg.Engine.MaxRounds,
		"replays":      cfg.Replay.Enabled,
	}).Info("Configuration loaded")

	// 3. HTTP-сервер и разбор ленты матчей живут в одной группе
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		return sessions.Run(gctx, feed.Events())
	})

	err := g.Wait()
	feed.Close()
	logger.Log.Info("Shutting down...")

	if cfg.Replay.Enabled {
		saveReplays(cfg.Replay.Dir, sessions)
	}
	return err
}

// saveReplays пишет записи всех матчей, где были ходы
func saveReplays(dir string, sessions *session.Manager) {
	svc, err := storage.NewReplayService(dir)
	if err != nil {
		logger.Log.WithError(err).Error("Replays not saved")
		return
	}

	replays := sessions.Replays()
	for i := range replays {
		path, err := svc.Save(&replays[i])
		if err != nil {
			logger.Log.WithError(err).WithField("match_id", replays[i].MatchID).Error("Failed to save replay")
			continue
		}
		logger.Log.WithFields(logrus.Fields{
			"match_id": replays[i].MatchID,
			"actions":  len(replays[i].Actions),
			"path":     path,
		}).Info("Replay saved")
	}
}

// runReplay прогоняет файл записи через движок и печатает итог
func runReplay(path string, cfg engine.Config) error {
	logger.Log.WithField("path", path).Info("Mode: Replay Simulation")

	rs, err := storage.LoadFile(path)
	if err != nil {
		return err
	}

	state, err := engine.Replay(*rs, cfg)
	if err != nil {
		return err
	}

	outcome := engine.ResolveOutcome(state)
	logger.Log.WithFields(logrus.Fields{
		"match_id": rs.MatchID,
		"mode":     rs.Mode,
		"seed":     rs.Seed.Seed,
		"actions":  len(rs.Actions),
		"round":    state.Round,
		"finished": outcome.Finished,
		"winners":  outcome.Winners,
	}).Info("Replay finished")

	for _, e := range state.OrderedEntities() {
		logger.Log.WithFields(logrus.Fields{
			"entity": e.ID,
			"name":   e.Name,
			"health": e.Stats.Health,
			"ce":     e.CE.Current,
		}).Info("Final entity state")
	}
	return nil
}
