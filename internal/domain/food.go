package domain

import (
	"fmt"
	"strings"
)

// ProcessingLevel is the NOVA processing classification of a food, ordered from
// least to most processed
type ProcessingLevel int

const (
	Unprocessed        ProcessingLevel = 1 // unprocessed or minimally processed
	CulinaryIngredient ProcessingLevel = 2 // processed culinary ingredients
	Processed          ProcessingLevel = 3 // processed foods
	UltraProcessed     ProcessingLevel = 4 // ultra-processed foods
)

// ProcessingLevels lists every level in ascending order
var ProcessingLevels = []ProcessingLevel{Unprocessed, CulinaryIngredient, Processed, UltraProcessed}

// Valid reports whether l is one of the four NOVA levels
func (l ProcessingLevel) Valid() bool {
	return l >= Unprocessed && l <= UltraProcessed
}

func (l ProcessingLevel) String() string {
	switch l {
	case Unprocessed:
		return "unprocessed"
	case CulinaryIngredient:
		return "culinary_ingredient"
	case Processed:
		return "processed"
	case UltraProcessed:
		return "ultra_processed"
	}
	return fmt.Sprintf("ProcessingLevel(%d)", int(l))
}

// FoodCategory is the catalog food group
type FoodCategory string

const (
	CategoryProtein   FoodCategory = "protein"
	CategoryCarb      FoodCategory = "carb"
	CategoryVegetable FoodCategory = "vegetable"
	CategoryFruit     FoodCategory = "fruit"
	CategoryDairy     FoodCategory = "dairy"
	CategoryFat       FoodCategory = "fat"
	CategoryMixed     FoodCategory = "mixed"
)

// Valid reports whether c is a known category
func (c FoodCategory) Valid() bool {
	switch c {
	case CategoryProtein, CategoryCarb, CategoryVegetable, CategoryFruit,
		CategoryDairy, CategoryFat, CategoryMixed:
		return true
	}
	return false
}

// CostTier is the relative budget tier of a catalog food
type CostTier string

const (
	CostLow      CostTier = "low"
	CostModerate CostTier = "moderate"
	CostHigh     CostTier = "high"
)

// Valid reports whether t is a known tier
func (t CostTier) Valid() bool {
	return t == CostLow || t == CostModerate || t == CostHigh
}

// FoodEntry is an immutable catalog food. Nutrient values are stated for one
// reference portion of PortionGrams.
type FoodEntry struct {
	ID              string          `json:"id" mapstructure:"id"`
	Name            string          `json:"name" mapstructure:"name"`
	NameAr          string          `json:"nameAr,omitempty" mapstructure:"nameAr"`
	PortionGrams    float64         `json:"portionGrams" mapstructure:"portionGrams"`
	Energy          float64         `json:"energy" mapstructure:"energy"`
	Protein         float64         `json:"protein" mapstructure:"protein"`
	Carbohydrate    float64         `json:"carbohydrate" mapstructure:"carbohydrate"`
	Fat             float64         `json:"fat" mapstructure:"fat"`
	Fiber           float64         `json:"fiber" mapstructure:"fiber"`
	Micronutrients  Micronutrients  `json:"micronutrients" mapstructure:"micronutrients"`
	Category        FoodCategory    `json:"category" mapstructure:"category"`
	CostTier        CostTier        `json:"costTier" mapstructure:"costTier"`
	ProcessingLevel ProcessingLevel `json:"processingLevel" mapstructure:"processingLevel"`
}

// SelectedItem is one catalog food chosen for a meal with a quantity in grams
type SelectedItem struct {
	Food     FoodEntry `json:"food"`
	Quantity float64   `json:"quantity"`
}

// AgeGroup is the closed set of pediatric reference buckets
type AgeGroup string

const (
	AgeGroupInfant     AgeGroup = "infant"     // 6-12 months
	AgeGroupToddler    AgeGroup = "toddler"    // 1-3 years
	AgeGroupPreschool  AgeGroup = "preschool"  // 4-6 years
	AgeGroupSchoolAge  AgeGroup = "school_age" // 7-12 years
	AgeGroupAdolescent AgeGroup = "adolescent" // 13-18 years
)

// AgeGroups lists every age group from youngest to oldest
var AgeGroups = []AgeGroup{
	AgeGroupInfant,
	AgeGroupToddler,
	AgeGroupPreschool,
	AgeGroupSchoolAge,
	AgeGroupAdolescent,
}

// ageGroupAliases accepts the bucket labels used by the reference tables
var ageGroupAliases = map[string]AgeGroup{
	"6-12m":       AgeGroupInfant,
	"1-3y":        AgeGroupToddler,
	"4-6y":        AgeGroupPreschool,
	"7-12y":       AgeGroupSchoolAge,
	"adolescents": AgeGroupAdolescent,
	"school-age":  AgeGroupSchoolAge,
}

// Valid reports whether g is one of AgeGroups
func (g AgeGroup) Valid() bool {
	for _, known := range AgeGroups {
		if g == known {
			return true
		}
	}
	return false
}

// ParseAgeGroup resolves an age group key or one of its bucket labels
func ParseAgeGroup(s string) (AgeGroup, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if g := AgeGroup(key); g.Valid() {
		return g, nil
	}
	if g, ok := ageGroupAliases[key]; ok {
		return g, nil
	}
	return "", fmt.Errorf("%w: unknown age group %q", ErrInvalidInput, s)
}

// EnergyRange is a daily energy reference in kcal
type EnergyRange struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

// AgeGroupReference holds the daily reference intakes for one age group
type AgeGroupReference struct {
	AgeGroup       AgeGroup       `json:"ageGroup" mapstructure:"ageGroup"`
	Energy         EnergyRange    `json:"energy" mapstructure:"energy"`
	Protein        float64        `json:"protein" mapstructure:"protein"`
	Fiber          float64        `json:"fiber" mapstructure:"fiber"`
	Micronutrients Micronutrients `json:"micronutrients" mapstructure:"micronutrients"`
}

// Target returns the adequacy denominator for a tracked nutrient. Energy uses the
// upper bound of the range.
func (r AgeGroupReference) Target(n Nutrient) (float64, bool) {
	switch n {
	case NutrientEnergy:
		return r.Energy.Max, true
	case NutrientProtein:
		return r.Protein, true
	case NutrientFiber:
		return r.Fiber, true
	}
	return r.Micronutrients.Get(n)
}

// ReferenceTable maps each age group to its reference intakes
type ReferenceTable map[AgeGroup]AgeGroupReference
