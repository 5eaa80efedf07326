package usecase

import (
	"fmt"

	"github.com/macrolens/mealscore/internal/domain"
)

// CalculateAdequacy expresses every tracked nutrient as a percentage of the
// reference intake. Energy is measured against the upper bound of the energy
// range, so sufficiency is under- rather than over-estimated. Results are not
// clamped.
func CalculateAdequacy(total domain.AggregateNutrients, ref domain.AgeGroupReference) (domain.AdequacyMap, error) {
	adequacy := make(domain.AdequacyMap, len(domain.TrackedNutrients))

	for _, nutrient := range domain.TrackedNutrients {
		target, ok := ref.Target(nutrient)
		if !ok || target <= 0 {
			return nil, fmt.Errorf("%w: %s reference for age group %q must be positive, got %v",
				domain.ErrConfiguration, nutrient, ref.AgeGroup, target)
		}

		amount, _ := total.Get(nutrient)
		adequacy[nutrient] = amount / target * 100
	}

	return adequacy, nil
}
