package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/macrolens/mealscore/internal/domain"
	"github.com/macrolens/mealscore/internal/infrastructure/usda"
)

// CatalogImporter builds catalog entries from USDA FoodData Central records
type CatalogImporter struct {
	usdaClient domain.USDAClient
	matcher    *FoodMatcher
}

// NewCatalogImporter creates an importer. A nil matcher gets the default one.
func NewCatalogImporter(usdaClient domain.USDAClient, matcher *FoodMatcher) *CatalogImporter {
	if matcher == nil {
		matcher = NewFoodMatcher(MatchConfig{EnableFuzzyMatching: true})
	}
	return &CatalogImporter{usdaClient: usdaClient, matcher: matcher}
}

// Import fetches every manifest entry in order. Entries that fail are skipped and their
// errors joined into the returned error; successful entries are still returned.
func (i *CatalogImporter) Import(ctx context.Context, specs []domain.ImportSpec) ([]domain.FoodEntry, error) {
	var (
		entries []domain.FoodEntry
		errs    []error
		seen    = make(map[string]bool)
	)

	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return entries, err
		}

		if seen[spec.ID] {
			errs = append(errs, fmt.Errorf("%w: duplicate id %q", domain.ErrInvalidInput, spec.ID))
			continue
		}

		entry, err := i.importOne(ctx, spec)
		if err != nil {
			log.Printf("[IMPORT] %s: %v", spec.ID, err)
			errs = append(errs, fmt.Errorf("%s: %w", spec.ID, err))
			continue
		}
		seen[spec.ID] = true
		entries = append(entries, entry)
	}

	return entries, errors.Join(errs...)
}

func (i *CatalogImporter) importOne(ctx context.Context, spec domain.ImportSpec) (domain.FoodEntry, error) {
	if err := validateImportSpec(spec); err != nil {
		return domain.FoodEntry{}, err
	}

	food, err := i.fetch(ctx, spec)
	if err != nil {
		return domain.FoodEntry{}, err
	}

	entry := usda.MapToFoodEntry(food, spec)
	if entry.Energy == 0 {
		log.Printf("[IMPORT] %s: USDA record %d has no energy value", spec.ID, food.FdcID)
	}
	if entry.Micronutrients.IsZero() {
		log.Printf("[IMPORT] %s: USDA record %d has no micronutrient data", spec.ID, food.FdcID)
	}
	return entry, nil
}

// fetch loads the USDA record by FDC id, or searches and keeps the best match
func (i *CatalogImporter) fetch(ctx context.Context, spec domain.ImportSpec) (*domain.USDAFood, error) {
	if spec.FdcID > 0 {
		return i.usdaClient.GetFoodDetails(ctx, spec.FdcID)
	}

	searchResult, err := i.usdaClient.SearchFoods(ctx, spec.Query)
	if err != nil {
		return nil, err
	}

	best, match, err := i.matcher.BestUSDAMatch(ctx, spec.Query, searchResult.Foods)
	if err != nil {
		if errors.Is(err, domain.ErrLowConfidence) && best != nil {
			return nil, fmt.Errorf("%w: best hit %q scored %.1f", err, best.Description, match.Score)
		}
		return nil, err
	}
	log.Printf("[IMPORT] %s: %q matched %q (fdc %d, score %.1f)", spec.ID, spec.Query, best.Description, best.FdcID, match.Score)

	// Search hits carry an abridged nutrient list; fetch the full record
	return i.usdaClient.GetFoodDetails(ctx, best.FdcID)
}

func validateImportSpec(spec domain.ImportSpec) error {
	switch {
	case strings.TrimSpace(spec.ID) == "":
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	case spec.FdcID <= 0 && strings.TrimSpace(spec.Query) == "":
		return fmt.Errorf("%w: fdcId or query is required", domain.ErrInvalidInput)
	case !spec.ProcessingLevel.Valid():
		return fmt.Errorf("%w: processing level must be 1-4, got %d", domain.ErrInvalidInput, int(spec.ProcessingLevel))
	case !spec.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, spec.Category)
	case !spec.CostTier.Valid():
		return fmt.Errorf("%w: unknown cost tier %q", domain.ErrInvalidInput, spec.CostTier)
	}
	return nil
}
