package usecase

import "github.com/macrolens/mealscore/internal/domain"

// Advisory and risk thresholds, in percent of reference intake
const (
	lowIntakeThreshold = 70.0

	highRiskScore        = 60
	highRiskAdequacy     = 50.0
	moderateRiskScore    = 85
	moderateRiskAdequacy = 80.0
)

// GenerateAdvisories inspects adequacy, processing distribution and penalties and
// returns warnings and recommendations in evaluation order: micronutrient gaps
// (in MicronutrientKeys order), ultra-processed share, sodium/sugar proxy,
// missing micronutrient data.
func GenerateAdvisories(
	adequacy domain.AdequacyMap,
	distribution domain.ProcessingDistribution,
	breakdown domain.ScoreBreakdown,
) (warnings, recommendations []domain.Advisory) {
	warnings = []domain.Advisory{}
	recommendations = []domain.Advisory{}

	for _, nutrient := range domain.MicronutrientKeys {
		pct, ok := adequacy[nutrient]
		if !ok || pct >= lowIntakeThreshold {
			continue
		}
		warnings = append(warnings, domain.Advisory{
			Code:      domain.WarningLowMicronutrient,
			Nutrient:  nutrient,
			Value:     pct,
			Threshold: lowIntakeThreshold,
		})
		recommendations = append(recommendations, domain.Advisory{
			Code:     domain.RecommendNutrientSource,
			Nutrient: nutrient,
		})
	}

	if IsUltraProcessedDominant(distribution) {
		warnings = append(warnings, domain.Advisory{
			Code:      domain.WarningUltraProcessed,
			Value:     distribution.UltraProcessed,
			Threshold: UltraProcessedDominantThreshold,
		})
		recommendations = append(recommendations, domain.Advisory{
			Code: domain.RecommendReplaceUltraProcessed,
		})
	}

	if breakdown.SodiumSugarPenalty > 0 {
		warnings = append(warnings, domain.Advisory{
			Code:  domain.WarningSodiumSugarProxy,
			Value: breakdown.SodiumSugarPenalty,
		})
	}

	if breakdown.MissingDataPenalty > 0 {
		warnings = append(warnings, domain.Advisory{
			Code:  domain.WarningMissingMicronutrients,
			Value: breakdown.MissingDataPenalty,
		})
	}

	return warnings, recommendations
}

// ClassifyRisk derives the risk level; the first matching rule wins
func ClassifyRisk(score int, adequacy domain.AdequacyMap) domain.RiskLevel {
	if score < highRiskScore || anyBelow(adequacy, highRiskAdequacy) {
		return domain.RiskHigh
	}
	if score < moderateRiskScore || anyBelow(adequacy, moderateRiskAdequacy) {
		return domain.RiskModerate
	}
	return domain.RiskLow
}

func anyBelow(adequacy domain.AdequacyMap, threshold float64) bool {
	for _, pct := range adequacy {
		if pct < threshold {
			return true
		}
	}
	return false
}
