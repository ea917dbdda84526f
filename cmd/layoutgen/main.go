// Package main provides the one-shot layout generation tool: it loads the
// content catalogs, generates a layout for a stage and seed, prints an ASCII
// floor plan, and exits non-zero when validation fails.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/emberline/stagegen/internal/config"
	"github.com/emberline/stagegen/internal/observability"
	"github.com/emberline/stagegen/internal/stage/generate"
	"github.com/emberline/stagegen/internal/stage/preview"
	"github.com/emberline/stagegen/internal/stage/schema"
	"github.com/emberline/stagegen/internal/stage/validate"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	stageID := flag.String("stage", "", "stage definition id to generate")
	seed := flag.String("seed", "", "seed string; empty uses the configured default")
	outPath := flag.String("out", "", "write the generated layout JSON to this file")
	noColor := flag.Bool("no-color", false, "disable ANSI colors in the floor plan")
	flag.Parse()

	if *stageID == "" {
		log.Fatal("-stage is required")
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

	catalog, err := loadCatalog(cfg.Content)
	if err != nil {
		logger.Fatal("loading catalogs", zap.Error(err))
	}

	if *seed == "" {
		*seed = cfg.Generation.DefaultSeed
	}

	var genOpts []generate.Option
	if cfg.Generation.TraceDraws {
		genOpts = append(genOpts, generate.WithDrawTracing())
	}
	gen := generate.NewGenerator(catalog, logger, genOpts...)
	l, err := gen.GenerateByID(*stageID, *seed)
	if err != nil {
		logger.Fatal("generating layout",
			zap.String("stage", *stageID),
			zap.String("seed", *seed),
			zap.Error(err),
		)
	}
	report := validate.Layout(l)

	r := &preview.Renderer{Colored: !*noColor}
	fmt.Print(r.Render(l))
	fmt.Print(preview.Summary(l))
	fmt.Print(r.RenderLegend())

	if *outPath != "" {
		if err := writeLayout(*outPath, l, report); err != nil {
			logger.Fatal("writing layout", zap.String("path", *outPath), zap.Error(err))
		}
		fmt.Printf("layout written to %s\n", *outPath)
	}

	if !report.Valid {
		fmt.Println("validation failed:")
		for _, e := range report.Errors {
			fmt.Printf("  - %s\n", e)
		}
		os.Exit(1)
	}
	fmt.Println("validation passed")
}

// writeLayout writes the layout and its validation report as one JSON
// document.
func writeLayout(path string, l any, report validate.Report) error {
	doc := struct {
		Layout any             `json:"layout"`
		Report validate.Report `json:"report"`
	}{Layout: l, Report: report}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
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
