package usda

import (
	"github.com/macrolens/mealscore/internal/domain"
)

// USDA Nutrient IDs. FoodData Central reports values per 100 g.
const (
	NutrientIDEnergy        = 1008 // kcal
	NutrientIDEnergyAtwater = 2047 // kcal, Foundation foods general factors
	NutrientIDProtein       = 1003 // g
	NutrientIDCarbohydrate  = 1005 // g
	NutrientIDTotalFat      = 1004 // g
	NutrientIDFiber         = 1079 // g
	NutrientIDIron          = 1089 // mg
	NutrientIDCalcium       = 1087 // mg
	NutrientIDZinc          = 1095 // mg
	NutrientIDIodine        = 1100 // µg
	NutrientIDVitaminA      = 1106 // µg RAE
	NutrientIDVitaminD      = 1114 // µg
	NutrientIDVitaminC      = 1162 // mg
	NutrientIDVitaminB12    = 1178 // µg
	NutrientIDFolate        = 1190 // µg DFE
)

// referencePortionGrams is the portion every USDA value refers to
const referencePortionGrams = 100.0

// MapToFoodEntry converts a USDA record into a catalog entry described by spec.
// The entry's reference portion is 100 g.
func MapToFoodEntry(usdaFood *domain.USDAFood, spec domain.ImportSpec) domain.FoodEntry {
	n := usdaFood.Nutrients

	energy := FindNutrientValue(n, NutrientIDEnergy)
	if energy == 0 {
		energy = FindNutrientValue(n, NutrientIDEnergyAtwater)
	}

	name := spec.Name
	if name == "" {
		name = usdaFood.Description
	}

	return domain.FoodEntry{
		ID:              spec.ID,
		Name:            name,
		PortionGrams:    referencePortionGrams,
		Energy:          energy,
		Protein:         FindNutrientValue(n, NutrientIDProtein),
		Carbohydrate:    FindNutrientValue(n, NutrientIDCarbohydrate),
		Fat:             FindNutrientValue(n, NutrientIDTotalFat),
		Fiber:           FindNutrientValue(n, NutrientIDFiber),
		Micronutrients:  extractMicronutrients(n),
		Category:        spec.Category,
		CostTier:        spec.CostTier,
		ProcessingLevel: spec.ProcessingLevel,
	}
}

func extractMicronutrients(usdaNutrients []domain.USDANutrient) domain.Micronutrients {
	m := domain.Micronutrients{}

	for _, nutrient := range usdaNutrients {
		switch nutrient.NutrientID {
		case NutrientIDIron:
			m.Iron = nutrient.Value
		case NutrientIDCalcium:
			m.Calcium = nutrient.Value
		case NutrientIDZinc:
			m.Zinc = nutrient.Value
		case NutrientIDIodine:
			m.Iodine = nutrient.Value
		case NutrientIDVitaminA:
			m.VitaminA = nutrient.Value
		case NutrientIDVitaminD:
			m.VitaminD = nutrient.Value
		case NutrientIDVitaminC:
			m.VitaminC = nutrient.Value
		case NutrientIDVitaminB12:
			m.VitaminB12 = nutrient.Value
		case NutrientIDFolate:
			m.Folate = nutrient.Value
		}
	}

	return m
}

// FindNutrientValue finds a specific nutrient value by ID
func FindNutrientValue(nutrients []domain.USDANutrient, nutrientID int) float64 {
	for _, nutrient := range nutrients {
		if nutrient.NutrientID == nutrientID {
			return nutrient.Value
		}
	}
	return 0.0
}
