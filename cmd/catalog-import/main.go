package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/macrolens/mealscore/config"
	"github.com/macrolens/mealscore/internal/infrastructure/catalog"
	"github.com/macrolens/mealscore/internal/infrastructure/usda"
	"github.com/macrolens/mealscore/internal/usecase"
)

var (
	manifestPath = flag.String("manifest", "import.yaml", "Manifest of foods to import (YAML or JSON)")
	outPath      = flag.String("out", "catalog.json", "Catalog JSON to write")
	basePath     = flag.String("base", "", "Catalog file to merge into (defaults to the built-in catalog)")
	strict       = flag.Bool("strict", false, "Fail if any manifest entry cannot be imported")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateUSDA(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	specs, err := catalog.ReadManifest(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to read manifest: %v", err)
	}

	base, err := baseDocument(*basePath)
	if err != nil {
		log.Fatalf("Failed to read base catalog: %v", err)
	}

	usdaClient := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL)
	usdaClient.SetRateLimit(cfg.RateLimit.USDA)
	if cfg.Server.Environment == "development" {
		usdaClient.SetDebug(true)
	}

	importer := usecase.NewCatalogImporter(usdaClient, usecase.NewFoodMatcher(usecase.MatchConfig{
		EnableFuzzyMatching: true,
		EnableDebugLogging:  cfg.Analysis.Debug,
	}))

	log.Printf("Importing %d foods from %s", len(specs), cfg.USDA.BaseURL)
	entries, importErr := importer.Import(ctx, specs)
	if importErr != nil {
		log.Printf("Some foods were not imported: %v", importErr)
		if *strict || len(entries) == 0 {
			os.Exit(1)
		}
	}

	merged, err := catalog.New(base.WithFoods(entries))
	if err != nil {
		log.Fatalf("Imported catalog is invalid: %v", err)
	}

	if err := catalog.WriteFile(*outPath, merged.Document()); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}
	log.Printf("Wrote %d foods (%d imported) to %s", merged.Len(), len(entries), *outPath)
}

func baseDocument(path string) (catalog.Document, error) {
	if path == "" {
		return catalog.EmbeddedDocument()
	}
	return catalog.ReadDocument(path)
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stdout)
}
