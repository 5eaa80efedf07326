package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/macrolens/mealscore/internal/domain"
)

// AnalysisServiceConfig holds configuration for the analysis service
type AnalysisServiceConfig struct {
	CacheTTL time.Duration
	Debug    bool
}

// AnalysisService resolves catalog ids into selected items and runs the meal
// analyzer, caching results per normalized request
type AnalysisService struct {
	catalog  domain.FoodCatalog
	analyzer *MealAnalyzer
	cache    domain.CacheRepository
	cacheTTL time.Duration
	debug    bool
}

// NewAnalysisService creates a new analysis service with dependencies.
// cache may be nil to disable caching.
func NewAnalysisService(
	catalog domain.FoodCatalog,
	cache domain.CacheRepository,
	config AnalysisServiceConfig,
) *AnalysisService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &AnalysisService{
		catalog:  catalog,
		analyzer: NewMealAnalyzer(catalog.References()),
		cache:    cache,
		cacheTTL: cacheTTL,
		debug:    config.Debug,
	}
}

// AnalyzeMeal analyzes a meal given by catalog ids.
// Flow: validate -> resolve foods -> check cache -> analyze -> cache -> return
func (s *AnalysisService) AnalyzeMeal(
	ctx context.Context,
	request *domain.MealAnalysisRequest,
) (*domain.AnalysisResult, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: empty request", domain.ErrInvalidInput)
	}

	ageGroup, err := domain.ParseAgeGroup(request.AgeGroup)
	if err != nil {
		return nil, err
	}

	items, err := s.resolveItems(request.Items)
	if err != nil {
		return nil, err
	}

	cacheKey := generateCacheKey(ageGroup, request.Items)

	if cached, ok := s.getFromCache(ctx, cacheKey); ok {
		if s.debug {
			log.Printf("[ANALYSIS] cache hit %s", cacheKey)
		}
		return cached, nil
	}

	result, err := s.analyzer.Analyze(items, ageGroup)
	if err != nil {
		return nil, err
	}

	if s.debug {
		log.Printf("[ANALYSIS] %s | items=%d score=%d risk=%s warnings=%d",
			ageGroup, len(items), result.SafetyScore, result.RiskLevel, len(result.Warnings))
	}

	s.setInCache(ctx, cacheKey, result)

	return result, nil
}

// resolveItems looks up every referenced food. Unknown ids fail the whole
// request with domain.ErrFoodNotFound.
func (s *AnalysisService) resolveItems(requested []domain.MealItemRequest) ([]domain.SelectedItem, error) {
	items := make([]domain.SelectedItem, 0, len(requested))
	for _, r := range requested {
		food, ok := s.catalog.Food(r.FoodID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrFoodNotFound, r.FoodID)
		}
		items = append(items, domain.SelectedItem{Food: food, Quantity: r.Quantity})
	}
	return items, nil
}

// generateCacheKey builds an order-independent key for a request.
// Format: "analysis:{ageGroup}:{foodId}={quantity};..."
func generateCacheKey(ageGroup domain.AgeGroup, items []domain.MealItemRequest) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.FoodID + "=" + strconv.FormatFloat(item.Quantity, 'g', -1, 64)
	}
	slices.Sort(parts)
	return fmt.Sprintf("analysis:%s:%s", ageGroup, strings.Join(parts, ";"))
}

func (s *AnalysisService) getFromCache(ctx context.Context, key string) (*domain.AnalysisResult, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Printf("[ANALYSIS] dropping unreadable cache entry %s: %v", key, err)
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return &result, true
}

// setInCache stores a result; failures are logged and never surface to callers
func (s *AnalysisService) setInCache(ctx context.Context, key string, result *domain.AnalysisResult) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("[ANALYSIS] failed to encode result for cache: %v", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		log.Printf("[ANALYSIS] failed to cache %s: %v", key, err)
	}
}
