package usecase

import "github.com/macrolens/mealscore/internal/domain"

// UltraProcessedDominantThreshold is the ultra-processed share of meal mass, in
// percent, above which the meal is flagged for advisories
const UltraProcessedDominantThreshold = 10.0

// ClassifyProcessing returns the percentage of total meal mass at each processing
// level. A meal without mass yields all-zero shares.
func ClassifyProcessing(items []domain.SelectedItem) domain.ProcessingDistribution {
	var (
		totalGrams float64
		grams      domain.ProcessingDistribution
	)

	for _, item := range items {
		totalGrams += item.Quantity
		level := item.Food.ProcessingLevel
		grams = grams.WithShare(level, grams.Share(level)+item.Quantity)
	}

	if totalGrams <= 0 {
		return domain.ProcessingDistribution{}
	}

	var distribution domain.ProcessingDistribution
	for _, level := range domain.ProcessingLevels {
		distribution = distribution.WithShare(level, grams.Share(level)/totalGrams*100)
	}
	return distribution
}

// IsUltraProcessedDominant reports whether the ultra-processed share exceeds
// UltraProcessedDominantThreshold
func IsUltraProcessedDominant(distribution domain.ProcessingDistribution) bool {
	return distribution.UltraProcessed > UltraProcessedDominantThreshold
}
