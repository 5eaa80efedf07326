package catalog

import (
	"fmt"
	"strings"

	"github.com/macrolens/mealscore/internal/domain"
)

// Both SQL sources share one table layout. Placeholders differ between
// drivers, so statements are built per dialect from these column lists.

const foodColumns = `id, name, name_ar, portion_grams, energy, protein, carbohydrate, fat, fiber,
	iron, calcium, zinc, iodine, vitamin_a, vitamin_d, vitamin_c, vitamin_b12, folate,
	category, cost_tier, processing_level`

const referenceColumns = `age_group, energy_min, energy_max, protein, fiber,
	iron, calcium, zinc, iodine, vitamin_a, vitamin_d, vitamin_c, vitamin_b12, folate`

const (
	foodColumnCount      = 21
	referenceColumnCount = 14
)

// rowScanner is satisfied by *sql.Rows and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (domain.FoodEntry, error) {
	var f domain.FoodEntry
	var level int
	m := &f.Micronutrients
	err := row.Scan(
		&f.ID, &f.Name, &f.NameAr, &f.PortionGrams, &f.Energy, &f.Protein, &f.Carbohydrate, &f.Fat, &f.Fiber,
		&m.Iron, &m.Calcium, &m.Zinc, &m.Iodine, &m.VitaminA, &m.VitaminD, &m.VitaminC, &m.VitaminB12, &m.Folate,
		&f.Category, &f.CostTier, &level,
	)
	f.ProcessingLevel = domain.ProcessingLevel(level)
	return f, err
}

func foodArgs(f domain.FoodEntry) []any {
	m := f.Micronutrients
	return []any{
		f.ID, f.Name, f.NameAr, f.PortionGrams, f.Energy, f.Protein, f.Carbohydrate, f.Fat, f.Fiber,
		m.Iron, m.Calcium, m.Zinc, m.Iodine, m.VitaminA, m.VitaminD, m.VitaminC, m.VitaminB12, m.Folate,
		string(f.Category), string(f.CostTier), int(f.ProcessingLevel),
	}
}

func scanReference(row rowScanner) (domain.AgeGroupReference, error) {
	var r domain.AgeGroupReference
	m := &r.Micronutrients
	err := row.Scan(
		&r.AgeGroup, &r.Energy.Min, &r.Energy.Max, &r.Protein, &r.Fiber,
		&m.Iron, &m.Calcium, &m.Zinc, &m.Iodine, &m.VitaminA, &m.VitaminD, &m.VitaminC, &m.VitaminB12, &m.Folate,
	)
	return r, err
}

func referenceArgs(r domain.AgeGroupReference) []any {
	m := r.Micronutrients
	return []any{
		string(r.AgeGroup), r.Energy.Min, r.Energy.Max, r.Protein, r.Fiber,
		m.Iron, m.Calcium, m.Zinc, m.Iodine, m.VitaminA, m.VitaminD, m.VitaminC, m.VitaminB12, m.Folate,
	}
}

func placeholders(n int, numbered bool) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(", ")
		}
		if numbered {
			fmt.Fprintf(&b, "$%d", i)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
