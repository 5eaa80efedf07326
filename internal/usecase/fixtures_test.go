package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/macrolens/mealscore/internal/domain"
)

// toddlerReference mirrors the 1-3 year reference intakes
func toddlerReference() domain.AgeGroupReference {
	return domain.AgeGroupReference{
		AgeGroup: domain.AgeGroupToddler,
		Energy:   domain.EnergyRange{Min: 1000, Max: 1400},
		Protein:  13,
		Fiber:    19,
		Micronutrients: domain.Micronutrients{
			Iron: 7, Calcium: 700, Zinc: 3, Iodine: 90,
			VitaminA: 300, VitaminD: 15, VitaminC: 15, VitaminB12: 0.9, Folate: 150,
		},
	}
}

func testReferences() domain.ReferenceTable {
	refs := domain.ReferenceTable{}
	for _, g := range domain.AgeGroups {
		ref := toddlerReference()
		ref.AgeGroup = g
		refs[g] = ref
	}
	return refs
}

// completeFood provides exactly one toddler reference day per 100 g portion
func completeFood(id string, level domain.ProcessingLevel) domain.FoodEntry {
	ref := toddlerReference()
	return domain.FoodEntry{
		ID:              id,
		Name:            "Complete " + id,
		PortionGrams:    100,
		Energy:          ref.Energy.Max,
		Protein:         ref.Protein,
		Fiber:           ref.Fiber,
		Micronutrients:  ref.Micronutrients,
		Category:        domain.CategoryProtein,
		CostTier:        domain.CostModerate,
		ProcessingLevel: level,
	}
}

func emptyFood(id string, level domain.ProcessingLevel) domain.FoodEntry {
	return domain.FoodEntry{
		ID:              id,
		Name:            "Empty " + id,
		PortionGrams:    100,
		Energy:          40,
		Carbohydrate:    10,
		Category:        domain.CategoryFruit,
		CostTier:        domain.CostLow,
		ProcessingLevel: level,
	}
}

func item(food domain.FoodEntry, grams float64) domain.SelectedItem {
	return domain.SelectedItem{Food: food, Quantity: grams}
}

func uniformAdequacy(pct float64) domain.AdequacyMap {
	m := domain.AdequacyMap{}
	for _, n := range domain.TrackedNutrients {
		m[n] = pct
	}
	return m
}

// mockCatalog is an in-memory domain.FoodCatalog
type mockCatalog struct {
	foods map[string]domain.FoodEntry
	refs  domain.ReferenceTable
}

func newMockCatalog(foods ...domain.FoodEntry) *mockCatalog {
	c := &mockCatalog{foods: map[string]domain.FoodEntry{}, refs: testReferences()}
	for _, f := range foods {
		c.foods[f.ID] = f
	}
	return c
}

func (c *mockCatalog) Food(id string) (domain.FoodEntry, bool) {
	f, ok := c.foods[id]
	return f, ok
}

func (c *mockCatalog) Foods() []domain.FoodEntry {
	out := make([]domain.FoodEntry, 0, len(c.foods))
	for _, f := range c.foods {
		out = append(out, f)
	}
	return out
}

func (c *mockCatalog) References() domain.ReferenceTable { return c.refs }

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu       sync.Mutex
	data     map[string][]byte
	getError error
	setError error
	gets     int
	sets     int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// MockUSDAClient is a mock implementation of domain.USDAClient
type MockUSDAClient struct {
	searchResult *domain.USDASearchResponse
	searchError  error
	foods        map[int]*domain.USDAFood
	foodError    error
	detailCalls  []int
}

func NewMockUSDAClient() *MockUSDAClient {
	return &MockUSDAClient{foods: map[int]*domain.USDAFood{}}
}

func (m *MockUSDAClient) SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.searchResult, nil
}

func (m *MockUSDAClient) GetFoodDetails(ctx context.Context, fdcID int) (*domain.USDAFood, error) {
	m.detailCalls = append(m.detailCalls, fdcID)
	if m.foodError != nil {
		return nil, m.foodError
	}
	food, ok := m.foods[fdcID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return food, nil
}
