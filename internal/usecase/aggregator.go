package usecase

import "github.com/macrolens/mealscore/internal/domain"

// AggregateNutrients scales each item's nutrient profile by quantity over its
// reference portion and sums the results. Items must already be validated; a
// non-positive reference portion is not guarded here.
func AggregateNutrients(items []domain.SelectedItem) domain.AggregateNutrients {
	var total domain.AggregateNutrients

	for _, item := range items {
		factor := item.Quantity / item.Food.PortionGrams

		total.Energy += item.Food.Energy * factor
		total.Protein += item.Food.Protein * factor
		total.Carbohydrate += item.Food.Carbohydrate * factor
		total.Fat += item.Food.Fat * factor
		total.Fiber += item.Food.Fiber * factor
		total.Micronutrients = total.Micronutrients.Plus(item.Food.Micronutrients.Scaled(factor))
	}

	return total
}
