package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/mealscore/internal/domain"
)

func newTestFoodService() *FoodService {
	chicken := completeFood("p1", domain.Unprocessed)
	chicken.Name = "Grilled Chicken Breast"

	nuggets := completeFood("s3", domain.UltraProcessed)
	nuggets.Name = "Chicken Nuggets"

	rice := emptyFood("c1", domain.Unprocessed)
	rice.Name = "White Rice"
	rice.Category = domain.CategoryCarb

	return NewFoodService(newMockCatalog(rice, nuggets, chicken), nil)
}

func TestFoodService_ListFoods(t *testing.T) {
	svc := newTestFoodService()

	ids := func(foods []domain.FoodEntry) []string {
		out := make([]string, len(foods))
		for i, f := range foods {
			out[i] = f.ID
		}
		return out
	}

	tests := []struct {
		name   string
		filter FoodFilter
		want   []string
	}{
		{"no filter orders by id", FoodFilter{}, []string{"c1", "p1", "s3"}},
		{"by category", FoodFilter{Category: domain.CategoryCarb}, []string{"c1"}},
		{"by processing level", FoodFilter{ProcessingLevel: domain.UltraProcessed}, []string{"s3"}},
		{"query ranks matches", FoodFilter{Query: "chicken"}, []string{"s3", "p1"}},
		{"query with level", FoodFilter{Query: "chicken", ProcessingLevel: domain.Unprocessed}, []string{"p1"}},
		{"no matches", FoodFilter{Query: "pizza"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			foods, err := svc.ListFoods(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(foods))
		})
	}
}

func TestFoodService_ListFoods_InvalidFilter(t *testing.T) {
	svc := newTestFoodService()

	_, err := svc.ListFoods(FoodFilter{Category: "dessert"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.ListFoods(FoodFilter{ProcessingLevel: 7})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFoodService_GetFood(t *testing.T) {
	svc := newTestFoodService()

	food, err := svc.GetFood("p1")
	require.NoError(t, err)
	assert.Equal(t, "Grilled Chicken Breast", food.Name)

	_, err = svc.GetFood("missing")
	assert.ErrorIs(t, err, domain.ErrFoodNotFound)
}

func TestFoodService_AgeGroupReferences(t *testing.T) {
	svc := newTestFoodService()

	refs := svc.AgeGroupReferences()

	require.Len(t, refs, len(domain.AgeGroups))
	for i, g := range domain.AgeGroups {
		assert.Equal(t, g, refs[i].AgeGroup)
	}
}
