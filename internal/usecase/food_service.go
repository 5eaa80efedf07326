package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/macrolens/mealscore/internal/domain"
)

// FoodFilter narrows a catalog listing. Zero values match everything.
type FoodFilter struct {
	Query           string
	Category        domain.FoodCategory
	ProcessingLevel domain.ProcessingLevel
}

// FoodService exposes read access to the catalog
type FoodService struct {
	catalog domain.FoodCatalog
	matcher *FoodMatcher
}

// NewFoodService creates a food service. A nil matcher gets a default fuzzy one.
func NewFoodService(catalog domain.FoodCatalog, matcher *FoodMatcher) *FoodService {
	if matcher == nil {
		matcher = NewFoodMatcher(MatchConfig{EnableFuzzyMatching: true})
	}
	return &FoodService{catalog: catalog, matcher: matcher}
}

// ListFoods returns catalog foods matching filter. With a query the result is
// ranked by match score, otherwise it is ordered by id.
func (s *FoodService) ListFoods(filter FoodFilter) ([]domain.FoodEntry, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, filter.Category)
	}
	if filter.ProcessingLevel != 0 && !filter.ProcessingLevel.Valid() {
		return nil, fmt.Errorf("%w: processing level must be 1-4, got %d", domain.ErrInvalidInput, int(filter.ProcessingLevel))
	}

	foods := make([]domain.FoodEntry, 0)
	for _, food := range s.catalog.Foods() {
		if filter.Category != "" && food.Category != filter.Category {
			continue
		}
		if filter.ProcessingLevel != 0 && food.ProcessingLevel != filter.ProcessingLevel {
			continue
		}
		foods = append(foods, food)
	}

	sort.Slice(foods, func(i, j int) bool { return foods[i].ID < foods[j].ID })

	if strings.TrimSpace(filter.Query) == "" {
		return foods, nil
	}
	return s.matcher.RankFoods(filter.Query, foods), nil
}

// GetFood returns one catalog food by id
func (s *FoodService) GetFood(id string) (domain.FoodEntry, error) {
	food, ok := s.catalog.Food(id)
	if !ok {
		return domain.FoodEntry{}, fmt.Errorf("%w: %q", domain.ErrFoodNotFound, id)
	}
	return food, nil
}

// AgeGroupReferences returns the reference intakes ordered youngest first
func (s *FoodService) AgeGroupReferences() []domain.AgeGroupReference {
	refs := s.catalog.References()
	out := make([]domain.AgeGroupReference, 0, len(refs))
	for _, group := range domain.AgeGroups {
		if ref, ok := refs[group]; ok {
			out = append(out, ref)
		}
	}
	return out
}
