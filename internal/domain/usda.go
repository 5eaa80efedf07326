package domain

import "encoding/json"

// USDAFood represents a food item from the USDA FoodData Central API
type USDAFood struct {
	FdcID       int            `json:"fdcId"`
	Description string         `json:"description"`
	DataType    string         `json:"dataType"`
	FoodClass   string         `json:"foodClass,omitempty"`
	Nutrients   []USDANutrient `json:"foodNutrients"`
}

// USDANutrient represents a single nutrient from USDA data
type USDANutrient struct {
	NutrientID     int     `json:"nutrientId"`
	NutrientName   string  `json:"nutrientName"`
	NutrientNumber string  `json:"nutrientNumber,omitempty"`
	UnitName       string  `json:"unitName"`
	Value          float64 `json:"value"`
}

// UnmarshalJSON accepts both nutrient shapes returned by FoodData Central: the
// flat search form and the nested {"nutrient": {...}, "amount": n} details form
func (n *USDANutrient) UnmarshalJSON(data []byte) error {
	var raw struct {
		NutrientID     int      `json:"nutrientId"`
		NutrientName   string   `json:"nutrientName"`
		NutrientNumber string   `json:"nutrientNumber"`
		UnitName       string   `json:"unitName"`
		Value          float64  `json:"value"`
		Amount         *float64 `json:"amount"`
		Nutrient       *struct {
			ID       int    `json:"id"`
			Number   string `json:"number"`
			Name     string `json:"name"`
			UnitName string `json:"unitName"`
		} `json:"nutrient"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*n = USDANutrient{
		NutrientID:     raw.NutrientID,
		NutrientName:   raw.NutrientName,
		NutrientNumber: raw.NutrientNumber,
		UnitName:       raw.UnitName,
		Value:          raw.Value,
	}
	if raw.Nutrient != nil && n.NutrientID == 0 {
		n.NutrientID = raw.Nutrient.ID
		n.NutrientName = raw.Nutrient.Name
		n.NutrientNumber = raw.Nutrient.Number
		n.UnitName = raw.Nutrient.UnitName
	}
	if raw.Amount != nil {
		n.Value = *raw.Amount
	}
	return nil
}

// USDASearchResponse represents the response from USDA search API
type USDASearchResponse struct {
	Foods       []USDAFood `json:"foods"`
	TotalHits   int        `json:"totalHits"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}

// ImportSpec describes one catalog entry to build from USDA data. Either FdcID
// or Query must be set.
type ImportSpec struct {
	ID              string          `json:"id" mapstructure:"id"`
	Name            string          `json:"name" mapstructure:"name"`
	FdcID           int             `json:"fdcId" mapstructure:"fdcId"`
	Query           string          `json:"query" mapstructure:"query"`
	ProcessingLevel ProcessingLevel `json:"processingLevel" mapstructure:"processingLevel"`
	Category        FoodCategory    `json:"category" mapstructure:"category"`
	CostTier        CostTier        `json:"costTier" mapstructure:"costTier"`
}
