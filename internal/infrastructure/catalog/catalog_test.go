package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/mealscore/internal/domain"
)

func testDocument(t *testing.T) Document {
	t.Helper()
	doc, err := EmbeddedDocument()
	require.NoError(t, err)
	return doc
}

func TestLoadEmbedded(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Greater(t, c.Len(), 50)

	refs := c.References()
	require.Len(t, refs, len(domain.AgeGroups))
	toddler := refs[domain.AgeGroupToddler]
	assert.Equal(t, domain.EnergyRange{Min: 1000, Max: 1400}, toddler.Energy)
	assert.Equal(t, 7.0, toddler.Micronutrients.Iron)
	assert.Equal(t, 700.0, toddler.Micronutrients.Calcium)

	chicken, ok := c.Food("p1")
	require.True(t, ok)
	assert.Equal(t, "Grilled Chicken Breast", chicken.Name)
	assert.Equal(t, 150.0, chicken.PortionGrams)
	assert.Equal(t, domain.Unprocessed, chicken.ProcessingLevel)

	cola, ok := c.Food("s1")
	require.True(t, ok)
	assert.True(t, cola.Micronutrients.IsZero())
	assert.Equal(t, domain.UltraProcessed, cola.ProcessingLevel)
}

func TestEmbeddedCatalog_CoversEveryLevelAndCategory(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	levels := map[domain.ProcessingLevel]bool{}
	categories := map[domain.FoodCategory]bool{}
	for _, f := range c.Foods() {
		levels[f.ProcessingLevel] = true
		categories[f.Category] = true
	}

	for _, l := range domain.ProcessingLevels {
		assert.True(t, levels[l], "no food at level %d", l)
	}
	assert.Len(t, categories, 7)
}

func TestCatalog_FoodsOrderedByID(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	foods := c.Foods()
	for i := 1; i < len(foods); i++ {
		assert.Less(t, foods[i-1].ID, foods[i].ID)
	}
}

func TestCatalog_ReferencesReturnsCopy(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	refs := c.References()
	delete(refs, domain.AgeGroupInfant)

	assert.Len(t, c.References(), len(domain.AgeGroups))
}

func TestCatalog_Document(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	doc := c.Document()

	assert.Len(t, doc.Foods, c.Len())
	require.Len(t, doc.References, len(domain.AgeGroups))
	assert.Equal(t, domain.AgeGroupInfant, doc.References[0].AgeGroup)
	assert.Equal(t, domain.AgeGroupAdolescent, doc.References[4].AgeGroup)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Document)
		wantMsg string
	}{
		{"missing id", func(d *Document) { d.Foods[0].ID = " " }, "missing id"},
		{"duplicate id", func(d *Document) { d.Foods[1].ID = d.Foods[0].ID }, "duplicate id"},
		{"zero portion", func(d *Document) { d.Foods[0].PortionGrams = 0 }, "portionGrams"},
		{"bad level", func(d *Document) { d.Foods[0].ProcessingLevel = 5 }, "processingLevel"},
		{"bad category", func(d *Document) { d.Foods[0].Category = "dessert" }, "category"},
		{"bad cost tier", func(d *Document) { d.Foods[0].CostTier = "premium" }, "costTier"},
		{"negative nutrient", func(d *Document) { d.Foods[0].Micronutrients.Zinc = -1 }, "negative"},
		{"unknown age group", func(d *Document) { d.References[0].AgeGroup = "elderly" }, "unknown age group"},
		{"zero target", func(d *Document) { d.References[1].Micronutrients.Iodine = 0 }, "iodine must be positive"},
		{"inverted energy", func(d *Document) { d.References[2].Energy.Min = 5000 }, "energy min exceeds max"},
		{"missing reference", func(d *Document) { d.References = d.References[:4] }, "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDocument(t)
			tt.mutate(&doc)

			err := Validate(doc)

			assert.ErrorIs(t, err, domain.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.wantMsg)

			_, err = New(doc)
			assert.Error(t, err)
		})
	}
}

func TestValidate_EmbeddedDocument(t *testing.T) {
	assert.NoError(t, Validate(testDocument(t)))
}

func TestDocument_WithFoods(t *testing.T) {
	base := Document{
		Foods: []domain.FoodEntry{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
	}

	merged := base.WithFoods([]domain.FoodEntry{{ID: "b", Name: "B2"}, {ID: "c", Name: "C"}})

	require.Len(t, merged.Foods, 3)
	assert.Equal(t, "A", merged.Foods[0].Name)
	assert.Equal(t, "B2", merged.Foods[1].Name)
	assert.Equal(t, "C", merged.Foods[2].Name)
	assert.Equal(t, "B", base.Foods[1].Name)
}
