// Package main runs the Imperium HTTP server over the storage backend named
// in the config.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Ostwick/RPG-Imperium/internal/config"
	"github.com/Ostwick/RPG-Imperium/internal/frontend/web"
	"github.com/Ostwick/RPG-Imperium/internal/game/dice"
	"github.com/Ostwick/RPG-Imperium/internal/game/ruleset"
	"github.com/Ostwick/RPG-Imperium/internal/game/stats"
	"github.com/Ostwick/RPG-Imperium/internal/gameserver"
	"github.com/Ostwick/RPG-Imperium/internal/observability"
	"github.com/Ostwick/RPG-Imperium/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	envFile := flag.String("env", ".env", "dotenv file applied before the config is read")
	healthEvery := flag.Duration("health-interval", 30*time.Second, "storage health check interval")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("no dotenv file loaded from %s", *envFile)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting imperium server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("backend", cfg.Storage.Backend),
	)

	ctx := context.Background()

	catalog, err := ruleset.LoadCatalog(cfg.Content.SkillTreesDir)
	if err != nil {
		logger.Fatal("loading skill trees", zap.Error(err))
	}
	logger.Info("skill trees loaded",
		zap.String("dir", cfg.Content.SkillTreesDir),
		zap.Int("custom", catalog.Len()),
	)

	storeStart := time.Now()
	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("opening storage", zap.Error(err))
	}
	defer st.close()
	logger.Info("storage ready",
		zap.String("backend", cfg.Storage.Backend),
		zap.Duration("elapsed", time.Since(storeStart)),
	)

	calc := stats.NewCalculator(catalog)
	src := dice.NewCryptoSource()
	handler := web.NewHandler(web.Services{
		Campaigns:  gameserver.NewCampaignService(st.campaigns, st.characters, logger),
		Characters: gameserver.NewCharacterService(st.characters, catalog, calc, logger),
		Combat:     gameserver.NewCombatService(st.campaigns, st.characters, st.templates, calc, src, logger),
		Checks:     gameserver.NewCheckService(dice.NewRoller(src, logger)),
		Health:     st.health,
	}, logger)
	router := web.NewRouter(handler, web.NewAuthenticator(cfg.Auth), logger)

	httpSvc := server.NewHTTPService(router, server.HTTPOptions{
		Addr:            cfg.Server.Addr(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger)
	if err := httpSvc.Listen(); err != nil {
		logger.Fatal("binding http listener", zap.String("addr", cfg.Server.Addr()), zap.Error(err))
	}

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("http", httpSvc)
	lifecycle.Add("storage-health", &server.TickerService{
		Name:     "storage health",
		Interval: *healthEvery,
		Fn:       st.health,
		Logger:   logger,
	})

	logger.Info("imperium server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("addr", httpSvc.Addr()),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
