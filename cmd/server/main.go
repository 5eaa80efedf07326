package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/macrolens/mealscore/config"
	httpDelivery "github.com/macrolens/mealscore/internal/delivery/http"
	"github.com/macrolens/mealscore/internal/domain"
	"github.com/macrolens/mealscore/internal/infrastructure/cache"
	"github.com/macrolens/mealscore/internal/infrastructure/catalog"
	"github.com/macrolens/mealscore/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting MealScore v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog Source: %s", cfg.Catalog.Source)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	foods, closeCatalog, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	defer closeCatalog()
	log.Printf("Catalog loaded: %d foods, %d age groups", foods.Len(), len(foods.References()))

	var resultCache domain.CacheRepository
	if cfg.Cache.Type == "memory" {
		memoryCache := cache.NewMemoryCacheWithCleanup(cfg.Cache.TTL)
		defer memoryCache.Close()
		resultCache = memoryCache
		log.Printf("Cache TTL: %s", cfg.Cache.TTL)
	} else {
		resultCache = cache.NoopCache{}
	}

	// Initialize usecase layer
	analysisService := usecase.NewAnalysisService(foods, resultCache, usecase.AnalysisServiceConfig{
		CacheTTL: cfg.Cache.TTL,
		Debug:    cfg.Analysis.Debug || cfg.Server.Environment == "development",
	})
	foodService := usecase.NewFoodService(foods, nil)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analysisService, foodService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Received shutdown signal")
	case err := <-errCh:
		log.Printf("Server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

// loadCatalog builds the catalog from the configured source. The returned
// func releases any database handle.
func loadCatalog(ctx context.Context, cfg config.CatalogConfig) (*catalog.Catalog, func(), error) {
	noop := func() {}

	switch cfg.Source {
	case config.SourceFile:
		c, err := catalog.LoadFile(cfg.Path)
		return c, noop, err

	case config.SourceSQLite:
		store, err := catalog.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		closeStore := func() { store.Close() }
		if err := seedIfEmpty(ctx, cfg.Seed, store); err != nil {
			closeStore()
			return nil, noop, err
		}
		c, err := store.Load(ctx)
		if err != nil {
			closeStore()
			return nil, noop, err
		}
		return c, closeStore, nil

	case config.SourcePostgres:
		store, err := catalog.ConnectPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, noop, err
		}
		if err := seedIfEmpty(ctx, cfg.Seed, store); err != nil {
			store.Close()
			return nil, noop, err
		}
		c, err := store.Load(ctx)
		if err != nil {
			store.Close()
			return nil, noop, err
		}
		return c, store.Close, nil

	default:
		c, err := catalog.LoadEmbedded()
		return c, noop, err
	}
}

type seedableStore interface {
	IsEmpty(ctx context.Context) (bool, error)
	Seed(ctx context.Context, doc catalog.Document) error
}

func seedIfEmpty(ctx context.Context, enabled bool, store seedableStore) error {
	if !enabled {
		return nil
	}
	empty, err := store.IsEmpty(ctx)
	if err != nil || !empty {
		return err
	}
	doc, err := catalog.EmbeddedDocument()
	if err != nil {
		return err
	}
	log.Printf("Catalog database is empty, seeding %d foods", len(doc.Foods))
	return store.Seed(ctx, doc)
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
