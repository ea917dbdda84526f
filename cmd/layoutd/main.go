// Package main provides the layout daemon binary: an HTTP service exposing
// the stage layout generator to editor and preview tooling.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/emberline/stagegen/internal/config"
	"github.com/emberline/stagegen/internal/layoutserver"
	"github.com/emberline/stagegen/internal/observability"
	"github.com/emberline/stagegen/internal/server"
	"github.com/emberline/stagegen/internal/stage/generate"
	"github.com/emberline/stagegen/internal/stage/schema"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting layout daemon",
		zap.String("addr", cfg.Server.Addr()),
	)

	catalog, err := loadCatalog(cfg.Content)
	if err != nil {
		logger.Fatal("loading catalogs", zap.Error(err))
	}
	logger.Info("catalogs loaded",
		zap.Int("archetypes", catalog.ArchetypeCount()),
		zap.Int("templates", catalog.TemplateCount()),
		zap.Int("stages", catalog.StageCount()),
		zap.Duration("elapsed", time.Since(start)),
	)

	var genOpts []generate.Option
	if cfg.Generation.TraceDraws {
		genOpts = append(genOpts, generate.WithDrawTracing())
	}
	gen := generate.NewGenerator(catalog, logger, genOpts...)
	srv := layoutserver.NewServer(cfg, catalog, gen, logger)

	runner := server.NewRunner(logger)
	runner.Register("layout-server", srv)

	if err := runner.Run(ctx); err != nil {
		logger.Fatal("daemon failed", zap.Error(err))
	}
}

// loadCatalog loads and cross-validates the three content catalogs.
func loadCatalog(content config.ContentConfig) (*schema.Catalog, error) {
	archetypes, err := schema.LoadArchetypesFromDir(content.ArchetypesDir)
	if err != nil {
		return nil, err
	}
	templates, err := schema.LoadTemplatesFromDir(content.TemplatesDir)
	if err != nil {
		return nil, err
	}
	stages, err := schema.LoadStagesFromDir(content.StagesDir)
	if err != nil {
		return nil, err
	}
	catalog, err := schema.NewCatalog(archetypes, templates, stages)
	if err != nil {
		return nil, err
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}
