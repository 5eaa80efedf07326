package domain

// Nutrient identifies a nutrient tracked against age-group reference intakes
type Nutrient string

const (
	NutrientEnergy     Nutrient = "energy"     // kcal
	NutrientProtein    Nutrient = "protein"    // g
	NutrientFiber      Nutrient = "fiber"      // g
	NutrientIron       Nutrient = "iron"       // mg
	NutrientCalcium    Nutrient = "calcium"    // mg
	NutrientZinc       Nutrient = "zinc"       // mg
	NutrientIodine     Nutrient = "iodine"     // mcg
	NutrientVitaminA   Nutrient = "vitaminA"   // mcg RAE
	NutrientVitaminD   Nutrient = "vitaminD"   // mcg
	NutrientVitaminC   Nutrient = "vitaminC"   // mg
	NutrientVitaminB12 Nutrient = "vitaminB12" // mcg
	NutrientFolate     Nutrient = "folate"     // mcg DFE
)

// MicronutrientKeys is the fixed micronutrient set shared by FoodEntry,
// AgeGroupReference and AggregateNutrients. Order is significant for advisories.
var MicronutrientKeys = []Nutrient{
	NutrientIron,
	NutrientCalcium,
	NutrientZinc,
	NutrientIodine,
	NutrientVitaminA,
	NutrientVitaminD,
	NutrientVitaminC,
	NutrientVitaminB12,
	NutrientFolate,
}

// TrackedNutrients lists every nutrient that receives an adequacy percentage
var TrackedNutrients = append([]Nutrient{NutrientEnergy, NutrientProtein, NutrientFiber}, MicronutrientKeys...)

// Micronutrients holds one value per micronutrient key. Units follow the
// Nutrient constants above.
type Micronutrients struct {
	Iron       float64 `json:"iron" mapstructure:"iron"`
	Calcium    float64 `json:"calcium" mapstructure:"calcium"`
	Zinc       float64 `json:"zinc" mapstructure:"zinc"`
	Iodine     float64 `json:"iodine" mapstructure:"iodine"`
	VitaminA   float64 `json:"vitaminA" mapstructure:"vitaminA"`
	VitaminD   float64 `json:"vitaminD" mapstructure:"vitaminD"`
	VitaminC   float64 `json:"vitaminC" mapstructure:"vitaminC"`
	VitaminB12 float64 `json:"vitaminB12" mapstructure:"vitaminB12"`
	Folate     float64 `json:"folate" mapstructure:"folate"`
}

// Get returns the value stored for a micronutrient key
func (m Micronutrients) Get(n Nutrient) (float64, bool) {
	switch n {
	case NutrientIron:
		return m.Iron, true
	case NutrientCalcium:
		return m.Calcium, true
	case NutrientZinc:
		return m.Zinc, true
	case NutrientIodine:
		return m.Iodine, true
	case NutrientVitaminA:
		return m.VitaminA, true
	case NutrientVitaminD:
		return m.VitaminD, true
	case NutrientVitaminC:
		return m.VitaminC, true
	case NutrientVitaminB12:
		return m.VitaminB12, true
	case NutrientFolate:
		return m.Folate, true
	}
	return 0, false
}

// Scaled returns a copy with every value multiplied by factor
func (m Micronutrients) Scaled(factor float64) Micronutrients {
	return Micronutrients{
		Iron:       m.Iron * factor,
		Calcium:    m.Calcium * factor,
		Zinc:       m.Zinc * factor,
		Iodine:     m.Iodine * factor,
		VitaminA:   m.VitaminA * factor,
		VitaminD:   m.VitaminD * factor,
		VitaminC:   m.VitaminC * factor,
		VitaminB12: m.VitaminB12 * factor,
		Folate:     m.Folate * factor,
	}
}

// Plus returns the field-wise sum of m and other
func (m Micronutrients) Plus(other Micronutrients) Micronutrients {
	return Micronutrients{
		Iron:       m.Iron + other.Iron,
		Calcium:    m.Calcium + other.Calcium,
		Zinc:       m.Zinc + other.Zinc,
		Iodine:     m.Iodine + other.Iodine,
		VitaminA:   m.VitaminA + other.VitaminA,
		VitaminD:   m.VitaminD + other.VitaminD,
		VitaminC:   m.VitaminC + other.VitaminC,
		VitaminB12: m.VitaminB12 + other.VitaminB12,
		Folate:     m.Folate + other.Folate,
	}
}

// IsZero reports whether every micronutrient value is zero. A catalog entry in
// this state has no usable micronutrient data.
func (m Micronutrients) IsZero() bool {
	return m == Micronutrients{}
}

// AggregateNutrients is the quantity-scaled sum of every selected item
type AggregateNutrients struct {
	Energy         float64        `json:"energy"`
	Protein        float64        `json:"protein"`
	Carbohydrate   float64        `json:"carbohydrate"`
	Fat            float64        `json:"fat"`
	Fiber          float64        `json:"fiber"`
	Micronutrients Micronutrients `json:"micronutrients"`
}

// Get returns the aggregate amount for a tracked nutrient
func (a AggregateNutrients) Get(n Nutrient) (float64, bool) {
	switch n {
	case NutrientEnergy:
		return a.Energy, true
	case NutrientProtein:
		return a.Protein, true
	case NutrientFiber:
		return a.Fiber, true
	}
	return a.Micronutrients.Get(n)
}

// AdequacyMap maps each tracked nutrient to its percentage of the reference intake.
// Values are not clamped and may exceed 100.
type AdequacyMap map[Nutrient]float64
