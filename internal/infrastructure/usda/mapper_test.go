package usda

import (
	"testing"

	"github.com/macrolens/mealscore/internal/domain"
)

func TestMapToFoodEntry(t *testing.T) {
	spec := domain.ImportSpec{
		ID:              "d1",
		FdcID:           746782,
		ProcessingLevel: domain.Unprocessed,
		Category:        domain.CategoryDairy,
		CostTier:        domain.CostLow,
	}

	tests := []struct {
		name     string
		usdaFood *domain.USDAFood
		spec     domain.ImportSpec
		want     domain.FoodEntry
	}{
		{
			name: "complete food data",
			usdaFood: &domain.USDAFood{
				FdcID:       746782,
				Description: "Milk, whole, 3.25% milkfat",
				DataType:    "Foundation",
				Nutrients: []domain.USDANutrient{
					{NutrientID: NutrientIDEnergy, Value: 61.0},
					{NutrientID: NutrientIDProtein, Value: 3.3},
					{NutrientID: NutrientIDCarbohydrate, Value: 4.6},
					{NutrientID: NutrientIDTotalFat, Value: 3.2},
					{NutrientID: NutrientIDCalcium, Value: 123},
					{NutrientID: NutrientIDIodine, Value: 39},
					{NutrientID: NutrientIDVitaminB12, Value: 0.54},
					{NutrientID: NutrientIDVitaminD, Value: 1.1},
				},
			},
			spec: spec,
			want: domain.FoodEntry{
				ID:           "d1",
				Name:         "Milk, whole, 3.25% milkfat",
				PortionGrams: 100,
				Energy:       61.0,
				Protein:      3.3,
				Carbohydrate: 4.6,
				Fat:          3.2,
				Micronutrients: domain.Micronutrients{
					Calcium:    123,
					Iodine:     39,
					VitaminB12: 0.54,
					VitaminD:   1.1,
				},
				Category:        domain.CategoryDairy,
				CostTier:        domain.CostLow,
				ProcessingLevel: domain.Unprocessed,
			},
		},
		{
			name: "atwater energy fallback and manifest name",
			usdaFood: &domain.USDAFood{
				FdcID:       2346404,
				Description: "Lentils, dry",
				Nutrients: []domain.USDANutrient{
					{NutrientID: NutrientIDEnergyAtwater, Value: 360},
					{NutrientID: NutrientIDFiber, Value: 10.7},
					{NutrientID: NutrientIDIron, Value: 6.5},
					{NutrientID: NutrientIDFolate, Value: 479},
				},
			},
			spec: domain.ImportSpec{
				ID:              "c9",
				Name:            "Red Lentils",
				ProcessingLevel: domain.Unprocessed,
				Category:        domain.CategoryCarb,
				CostTier:        domain.CostLow,
			},
			want: domain.FoodEntry{
				ID:           "c9",
				Name:         "Red Lentils",
				PortionGrams: 100,
				Energy:       360,
				Fiber:        10.7,
				Micronutrients: domain.Micronutrients{
					Iron:   6.5,
					Folate: 479,
				},
				Category:        domain.CategoryCarb,
				CostTier:        domain.CostLow,
				ProcessingLevel: domain.Unprocessed,
			},
		},
		{
			name: "no nutrients",
			usdaFood: &domain.USDAFood{
				FdcID:       11111,
				Description: "Unknown Food",
				Nutrients:   []domain.USDANutrient{},
			},
			spec: spec,
			want: domain.FoodEntry{
				ID:              "d1",
				Name:            "Unknown Food",
				PortionGrams:    100,
				Category:        domain.CategoryDairy,
				CostTier:        domain.CostLow,
				ProcessingLevel: domain.Unprocessed,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapToFoodEntry(tt.usdaFood, tt.spec)
			if got != tt.want {
				t.Errorf("MapToFoodEntry() =\n%+v\nwant\n%+v", got, tt.want)
			}
		})
	}
}

func TestMapToFoodEntry_NoMicronutrientsIsZero(t *testing.T) {
	got := MapToFoodEntry(&domain.USDAFood{
		Description: "Cola",
		Nutrients:   []domain.USDANutrient{{NutrientID: NutrientIDEnergy, Value: 42}},
	}, domain.ImportSpec{ID: "s1"})

	if !got.Micronutrients.IsZero() {
		t.Errorf("Micronutrients = %+v, want all zero", got.Micronutrients)
	}
}

func TestFindNutrientValue(t *testing.T) {
	nutrients := []domain.USDANutrient{
		{NutrientID: NutrientIDEnergy, Value: 100.0},
		{NutrientID: NutrientIDProtein, Value: 5.0},
		{NutrientID: NutrientIDCarbohydrate, Value: 20.0},
	}

	tests := []struct {
		name       string
		nutrients  []domain.USDANutrient
		nutrientID int
		want       float64
	}{
		{
			name:       "find existing nutrient",
			nutrients:  nutrients,
			nutrientID: NutrientIDProtein,
			want:       5.0,
		},
		{
			name:       "nutrient not found",
			nutrients:  nutrients,
			nutrientID: NutrientIDTotalFat,
			want:       0.0,
		},
		{
			name:       "empty nutrient list",
			nutrients:  []domain.USDANutrient{},
			nutrientID: NutrientIDEnergy,
			want:       0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindNutrientValue(tt.nutrients, tt.nutrientID)
			if got != tt.want {
				t.Errorf("FindNutrientValue() = %v, want %v", got, tt.want)
			}
		})
	}
}
