package usecase

import (
	"maps"
	"math"
	"slices"

	"github.com/macrolens/mealscore/internal/domain"
)

// Composite score policy. These values are part of the observable contract.
const (
	adequacyMaxPoints = 50.0 // adequacy layer range 0-50
	adequacyCap       = 100.0

	ultraProcessedPenaltyThreshold = 15.0 // % of mass
	ultraProcessedPenaltyRate      = 0.5  // points per % above threshold
	ultraProcessedPenaltyCap       = 15.0

	// sodiumSugarPenalty approximates sodium and added sugar load, which the
	// catalog does not record, from processing level and cost tier.
	sodiumSugarPenalty = 5.0
	missingDataPenalty = 5.0

	maxRawScore = 100.0

	// RealismMultiplier keeps every meal below a perfect score
	RealismMultiplier = 0.95
)

// processingWeight is the points awarded per percent of mass at a level.
// A meal that is 100% unprocessed earns the full 50 points.
func processingWeight(level domain.ProcessingLevel) float64 {
	switch level {
	case domain.Unprocessed:
		return 0.5
	case domain.CulinaryIngredient:
		return 0.4
	case domain.Processed:
		return 0.2
	case domain.UltraProcessed:
		return 0
	}
	return 0
}

// ScoreMeal folds adequacy and processing distribution into the composite
// safety score and returns it with the full breakdown
func ScoreMeal(
	adequacy domain.AdequacyMap,
	distribution domain.ProcessingDistribution,
	items []domain.SelectedItem,
) (int, domain.ScoreBreakdown) {
	breakdown := domain.ScoreBreakdown{
		AdequacyScore:     adequacySubScore(adequacy),
		ProcessingScore:   processingSubScore(distribution),
		RealismMultiplier: RealismMultiplier,
	}
	breakdown.BaseScore = breakdown.AdequacyScore + breakdown.ProcessingScore

	breakdown.UltraProcessedPenalty = ultraProcessedPenalty(distribution.UltraProcessed)
	if hasSodiumSugarRisk(items) {
		breakdown.SodiumSugarPenalty = sodiumSugarPenalty
	}
	if hasMissingMicronutrients(items) {
		breakdown.MissingDataPenalty = missingDataPenalty
	}

	breakdown.RawScore = clamp(breakdown.BaseScore-breakdown.TotalPenalty(), 0, maxRawScore)

	score := int(math.Floor(breakdown.RawScore * RealismMultiplier))
	return score, breakdown
}

// adequacySubScore averages adequacy percentages capped at 100 and scales the
// average to 0-50. Keys are summed in sorted order so the result is stable.
func adequacySubScore(adequacy domain.AdequacyMap) float64 {
	if len(adequacy) == 0 {
		return 0
	}

	var sum float64
	for _, nutrient := range slices.Sorted(maps.Keys(adequacy)) {
		sum += math.Min(adequacy[nutrient], adequacyCap)
	}

	average := sum / float64(len(adequacy))
	return average / adequacyCap * adequacyMaxPoints
}

func processingSubScore(distribution domain.ProcessingDistribution) float64 {
	var score float64
	for _, level := range domain.ProcessingLevels {
		score += distribution.Share(level) * processingWeight(level)
	}
	return score
}

func ultraProcessedPenalty(ultraShare float64) float64 {
	if ultraShare <= ultraProcessedPenaltyThreshold {
		return 0
	}
	return math.Min(ultraProcessedPenaltyCap, (ultraShare-ultraProcessedPenaltyThreshold)*ultraProcessedPenaltyRate)
}

// hasSodiumSugarRisk is a coarse proxy: any ultra-processed item, or a mixed dish
// in the high cost tier, is assumed to carry undisclosed sodium or sugar.
// TODO: replace with measured sodium and added sugar once the catalog records them.
func hasSodiumSugarRisk(items []domain.SelectedItem) bool {
	for _, item := range items {
		if item.Food.ProcessingLevel == domain.UltraProcessed {
			return true
		}
		if item.Food.Category == domain.CategoryMixed && item.Food.CostTier == domain.CostHigh {
			return true
		}
	}
	return false
}

func hasMissingMicronutrients(items []domain.SelectedItem) bool {
	for _, item := range items {
		if item.Food.Micronutrients.IsZero() {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
