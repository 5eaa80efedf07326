package domain

import "fmt"

// ProcessingDistribution is the share of meal mass, in percent, at each
// processing level. The four shares sum to 100 whenever the meal has mass.
type ProcessingDistribution struct {
	Unprocessed        float64 `json:"unprocessed"`
	CulinaryIngredient float64 `json:"culinaryIngredient"`
	Processed          float64 `json:"processed"`
	UltraProcessed     float64 `json:"ultraProcessed"`
}

// Share returns the percentage of mass at level
func (d ProcessingDistribution) Share(level ProcessingLevel) float64 {
	switch level {
	case Unprocessed:
		return d.Unprocessed
	case CulinaryIngredient:
		return d.CulinaryIngredient
	case Processed:
		return d.Processed
	case UltraProcessed:
		return d.UltraProcessed
	}
	return 0
}

// WithShare returns a copy of d with the share for level replaced
func (d ProcessingDistribution) WithShare(level ProcessingLevel, pct float64) ProcessingDistribution {
	switch level {
	case Unprocessed:
		d.Unprocessed = pct
	case CulinaryIngredient:
		d.CulinaryIngredient = pct
	case Processed:
		d.Processed = pct
	case UltraProcessed:
		d.UltraProcessed = pct
	default:
		panic(fmt.Sprintf("domain: invalid processing level %d", int(level)))
	}
	return d
}

// Total returns the sum of all four shares
func (d ProcessingDistribution) Total() float64 {
	return d.Unprocessed + d.CulinaryIngredient + d.Processed + d.UltraProcessed
}

// ScoreBreakdown records every intermediate term of the composite score
type ScoreBreakdown struct {
	AdequacyScore         float64 `json:"adequacyScore"`         // 0-50
	ProcessingScore       float64 `json:"processingScore"`       // 0-50
	BaseScore             float64 `json:"baseScore"`             // 0-100
	UltraProcessedPenalty float64 `json:"ultraProcessedPenalty"` // 0-15
	SodiumSugarPenalty    float64 `json:"sodiumSugarPenalty"`    // 0 or 5, proxy heuristic
	MissingDataPenalty    float64 `json:"missingDataPenalty"`    // 0 or 5
	RawScore              float64 `json:"rawScore"`              // clamped to 0-100
	RealismMultiplier     float64 `json:"realismMultiplier"`
}

// TotalPenalty returns the sum of all penalty terms
func (b ScoreBreakdown) TotalPenalty() float64 {
	return b.UltraProcessedPenalty + b.SodiumSugarPenalty + b.MissingDataPenalty
}

// RiskLevel classifies the overall result
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// AdvisoryCode is a language-neutral identifier for a warning or recommendation.
// Presentation layers attach localized text to these codes.
type AdvisoryCode string

const (
	WarningLowMicronutrient      AdvisoryCode = "low_micronutrient_intake"
	WarningUltraProcessed        AdvisoryCode = "ultra_processed_dominant"
	WarningSodiumSugarProxy      AdvisoryCode = "sodium_sugar_proxy"
	WarningMissingMicronutrients AdvisoryCode = "missing_micronutrient_data"

	RecommendNutrientSource        AdvisoryCode = "add_nutrient_source"
	RecommendReplaceUltraProcessed AdvisoryCode = "replace_ultra_processed"
)

// Advisory is a structured warning or recommendation
type Advisory struct {
	Code      AdvisoryCode `json:"code"`
	Nutrient  Nutrient     `json:"nutrient,omitempty"`
	Value     float64      `json:"value"`     // observed metric, e.g. adequacy %
	Threshold float64      `json:"threshold"` // limit the value was compared against
}

// AnalysisResult is the complete output of one meal analysis
type AnalysisResult struct {
	AgeGroup               AgeGroup               `json:"ageGroup"`
	TotalNutrients         AggregateNutrients     `json:"totalNutrients"`
	Adequacy               AdequacyMap            `json:"adequacy"`
	SafetyScore            int                    `json:"safetyScore"`
	ScoreBreakdown         ScoreBreakdown         `json:"scoreBreakdown"`
	ProcessingDistribution ProcessingDistribution `json:"processingDistribution"`
	UltraProcessedDominant bool                   `json:"ultraProcessedDominant"`
	RiskLevel              RiskLevel              `json:"riskLevel"`
	Warnings               []Advisory             `json:"warnings"`
	Recommendations        []Advisory             `json:"recommendations"`
}

// MealItemRequest references a catalog food by id
type MealItemRequest struct {
	FoodID   string  `json:"foodId" binding:"required"`
	Quantity float64 `json:"quantity"`
}

// MealAnalysisRequest is the inbound request for analyzing a meal by catalog ids
type MealAnalysisRequest struct {
	AgeGroup string            `json:"ageGroup" binding:"required"`
	Items    []MealItemRequest `json:"items"`
}
