// Package main loads enemy template YAML files into the configured store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ostwick/RPG-Imperium/internal/config"
	"github.com/Ostwick/RPG-Imperium/internal/game/npc"
	"github.com/Ostwick/RPG-Imperium/internal/storage/postgres"
	"github.com/Ostwick/RPG-Imperium/internal/storage/redisstore"
)

type upserter interface {
	Upsert(ctx context.Context, t *npc.Template) error
}

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	dir := flag.String("dir", "", "bestiary directory (default: content.bestiary_dir)")
	dryRun := flag.Bool("dry-run", false, "validate the files without writing")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *dir == "" {
		*dir = cfg.Content.BestiaryDir
	}

	start := time.Now()
	templates, err := npc.LoadTemplates(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *dryRun {
		fmt.Printf("%d templates valid in %s\n", len(templates), *dir)
		return
	}

	ctx := context.Background()
	store, closeFn, err := openTemplates(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeFn()

	for _, t := range templates {
		if err := store.Upsert(ctx, t); err != nil {
			fmt.Fprintf(os.Stderr, "error: importing %s: %v\n", t.ID, err)
			os.Exit(1)
		}
		fmt.Printf("  %-20s %s\n", t.ID, t.Name)
	}
	fmt.Printf("imported %d templates in %s\n", len(templates), time.Since(start).Round(time.Millisecond))
}

func openTemplates(ctx context.Context, cfg config.Config) (upserter, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		return postgres.NewTemplateRepository(pool.DB()), pool.Close, nil
	case config.BackendRedis:
		client, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return redisstore.NewTemplateRepository(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("backend %q does not persist templates; the memory backend reads content.bestiary_dir at startup", cfg.Storage.Backend)
}
