// Package catalog loads the food catalog and pediatric reference table from the
// embedded document, a JSON/YAML file, SQLite or Postgres, and serves them
// read-only through domain.FoodCatalog.
package catalog

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/macrolens/mealscore/internal/domain"
)

// Document is the serialized form shared by every catalog source
type Document struct {
	Foods      []domain.FoodEntry         `json:"foods" mapstructure:"foods"`
	References []domain.AgeGroupReference `json:"references" mapstructure:"references"`
}

// Catalog is an immutable, validated food catalog. It is safe for concurrent use.
type Catalog struct {
	foods map[string]domain.FoodEntry
	ids   []string
	refs  domain.ReferenceTable
}

// New validates doc and builds a catalog from it
func New(doc Document) (*Catalog, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	c := &Catalog{
		foods: make(map[string]domain.FoodEntry, len(doc.Foods)),
		ids:   make([]string, 0, len(doc.Foods)),
		refs:  make(domain.ReferenceTable, len(doc.References)),
	}
	for _, food := range doc.Foods {
		c.foods[food.ID] = food
		c.ids = append(c.ids, food.ID)
	}
	sort.Strings(c.ids)

	for _, ref := range doc.References {
		c.refs[ref.AgeGroup] = ref
	}

	return c, nil
}

// Validate checks the invariants every source must satisfy: unique non-empty
// food ids, positive reference portions, NOVA levels 1-4, known categories and
// cost tiers, and a positive reference for every tracked nutrient of every age
// group.
func Validate(doc Document) error {
	var problems []string

	seen := make(map[string]bool, len(doc.Foods))
	for i, food := range doc.Foods {
		id := food.ID
		switch {
		case strings.TrimSpace(id) == "":
			problems = append(problems, fmt.Sprintf("food %d: missing id", i))
			continue
		case seen[id]:
			problems = append(problems, fmt.Sprintf("food %s: duplicate id", id))
		}
		seen[id] = true

		if !(food.PortionGrams > 0) {
			problems = append(problems, fmt.Sprintf("food %s: portionGrams must be positive", id))
		}
		if !food.ProcessingLevel.Valid() {
			problems = append(problems, fmt.Sprintf("food %s: processingLevel %d not in 1-4", id, int(food.ProcessingLevel)))
		}
		if !food.Category.Valid() {
			problems = append(problems, fmt.Sprintf("food %s: unknown category %q", id, food.Category))
		}
		if !food.CostTier.Valid() {
			problems = append(problems, fmt.Sprintf("food %s: unknown costTier %q", id, food.CostTier))
		}
		if hasNegativeNutrient(food) {
			problems = append(problems, fmt.Sprintf("food %s: nutrient values must not be negative", id))
		}
	}

	refs := make(map[domain.AgeGroup]bool, len(doc.References))
	for _, ref := range doc.References {
		if !ref.AgeGroup.Valid() {
			problems = append(problems, fmt.Sprintf("reference: unknown age group %q", ref.AgeGroup))
			continue
		}
		if refs[ref.AgeGroup] {
			problems = append(problems, fmt.Sprintf("reference %s: duplicate age group", ref.AgeGroup))
		}
		refs[ref.AgeGroup] = true

		for _, n := range domain.TrackedNutrients {
			if target, _ := ref.Target(n); !(target > 0) {
				problems = append(problems, fmt.Sprintf("reference %s: %s must be positive", ref.AgeGroup, n))
			}
		}
		if ref.Energy.Min > ref.Energy.Max {
			problems = append(problems, fmt.Sprintf("reference %s: energy min exceeds max", ref.AgeGroup))
		}
	}
	for _, g := range domain.AgeGroups {
		if !refs[g] {
			problems = append(problems, fmt.Sprintf("reference %s: missing", g))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

func hasNegativeNutrient(food domain.FoodEntry) bool {
	if food.Energy < 0 || food.Protein < 0 || food.Carbohydrate < 0 || food.Fat < 0 || food.Fiber < 0 {
		return true
	}
	for _, n := range domain.MicronutrientKeys {
		if v, _ := food.Micronutrients.Get(n); v < 0 {
			return true
		}
	}
	return false
}

// Food returns the entry for id
func (c *Catalog) Food(id string) (domain.FoodEntry, bool) {
	food, ok := c.foods[id]
	return food, ok
}

// Foods returns every entry ordered by id
func (c *Catalog) Foods() []domain.FoodEntry {
	out := make([]domain.FoodEntry, len(c.ids))
	for i, id := range c.ids {
		out[i] = c.foods[id]
	}
	return out
}

// References returns a copy of the reference table
func (c *Catalog) References() domain.ReferenceTable {
	return maps.Clone(c.refs)
}

// Len returns the number of foods
func (c *Catalog) Len() int {
	return len(c.ids)
}

// Document returns the catalog in serializable form, foods by id and
// references youngest first
func (c *Catalog) Document() Document {
	doc := Document{Foods: c.Foods()}
	for _, g := range domain.AgeGroups {
		doc.References = append(doc.References, c.refs[g])
	}
	return doc
}

// WithFoods returns a copy of d where foods replace entries with the same id
// and are appended otherwise
func (d Document) WithFoods(foods []domain.FoodEntry) Document {
	out := Document{
		Foods:      make([]domain.FoodEntry, 0, len(d.Foods)+len(foods)),
		References: append([]domain.AgeGroupReference(nil), d.References...),
	}

	replacement := make(map[string]domain.FoodEntry, len(foods))
	for _, f := range foods {
		replacement[f.ID] = f
	}
	for _, f := range d.Foods {
		if r, ok := replacement[f.ID]; ok {
			f = r
			delete(replacement, f.ID)
		}
		out.Foods = append(out.Foods, f)
	}
	for _, f := range foods {
		if _, pending := replacement[f.ID]; pending {
			out.Foods = append(out.Foods, f)
			delete(replacement, f.ID)
		}
	}
	return out
}
