package usecase

import (
	"fmt"
	"maps"
	"math"

	"github.com/macrolens/mealscore/internal/domain"
)

// MealAnalyzer runs the full nutrient and processing-safety analysis against an
// injected reference table. It holds no mutable state and is safe for
// concurrent use.
type MealAnalyzer struct {
	references domain.ReferenceTable
}

// NewMealAnalyzer creates an analyzer over a private copy of references
func NewMealAnalyzer(references domain.ReferenceTable) *MealAnalyzer {
	return &MealAnalyzer{references: maps.Clone(references)}
}

// Analyze evaluates a meal for an age group. Invalid items or an unknown age
// group reject the whole request with domain.ErrInvalidInput; missing or zero
// reference values fail with domain.ErrConfiguration.
func (a *MealAnalyzer) Analyze(items []domain.SelectedItem, ageGroup domain.AgeGroup) (*domain.AnalysisResult, error) {
	if !ageGroup.Valid() {
		return nil, fmt.Errorf("%w: unknown age group %q", domain.ErrInvalidInput, ageGroup)
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	ref, ok := a.references[ageGroup]
	if !ok {
		return nil, fmt.Errorf("%w: no reference intakes for age group %q", domain.ErrConfiguration, ageGroup)
	}

	total := AggregateNutrients(items)
	if err := checkFinite(items, total); err != nil {
		return nil, err
	}

	adequacy, err := CalculateAdequacy(total, ref)
	if err != nil {
		return nil, err
	}

	distribution := ClassifyProcessing(items)
	score, breakdown := ScoreMeal(adequacy, distribution, items)
	warnings, recommendations := GenerateAdvisories(adequacy, distribution, breakdown)

	return &domain.AnalysisResult{
		AgeGroup:               ageGroup,
		TotalNutrients:         total,
		Adequacy:               adequacy,
		SafetyScore:            score,
		ScoreBreakdown:         breakdown,
		ProcessingDistribution: distribution,
		UltraProcessedDominant: IsUltraProcessedDominant(distribution),
		RiskLevel:              ClassifyRisk(score, adequacy),
		Warnings:               warnings,
		Recommendations:        recommendations,
	}, nil
}

func validateItems(items []domain.SelectedItem) error {
	for i, item := range items {
		if !(item.Quantity > 0) || math.IsInf(item.Quantity, 1) {
			return fmt.Errorf("%w: item %d (%s) quantity must be positive and finite, got %v",
				domain.ErrInvalidInput, i, item.Food.ID, item.Quantity)
		}
		if !(item.Food.PortionGrams > 0) {
			return fmt.Errorf("%w: item %d (%s) reference portion must be positive, got %v",
				domain.ErrInvalidInput, i, item.Food.ID, item.Food.PortionGrams)
		}
		if !item.Food.ProcessingLevel.Valid() {
			return fmt.Errorf("%w: item %d (%s) has invalid processing level %d",
				domain.ErrInvalidInput, i, item.Food.ID, int(item.Food.ProcessingLevel))
		}
	}
	return nil
}

// checkFinite rejects meals whose combined mass or scaled nutrients overflow
// float64, which would otherwise turn the distribution into NaN.
func checkFinite(items []domain.SelectedItem, total domain.AggregateNutrients) error {
	var grams float64
	for _, item := range items {
		grams += item.Quantity
	}
	if math.IsInf(grams, 0) {
		return fmt.Errorf("%w: total meal mass is too large", domain.ErrInvalidInput)
	}

	values := []float64{total.Carbohydrate, total.Fat}
	for _, n := range domain.TrackedNutrients {
		v, _ := total.Get(n)
		values = append(values, v)
	}
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%w: nutrient totals overflow", domain.ErrInvalidInput)
		}
	}
	return nil
}
