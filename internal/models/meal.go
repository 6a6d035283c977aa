package models

import (
	"time"

	"github.com/google/uuid"
)

type MealPlan struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Recipes   []*Recipe `json:"recipes"`
	Nutrition Nutrition `json:"nutrition"`
	CreatedAt time.Time `json:"created_at"`
}

type DietRequirement struct {
	DietType string  `json:"diet_type"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// Minimum returns the required amount for one of the tracked macros.
func (d DietRequirement) Minimum(n Nutrient) float64 {
	switch n {
	case Calories:
		return d.Calories
	case Protein:
		return d.Protein
	case Fat:
		return d.Fat
	case Carbs:
		return d.Carbs
	}
	return 0
}

type DietCheck struct {
	DietType string `json:"diet_type"`
	Met      bool   `json:"met"`
	Reason   string `json:"reason"`
}

type ShoppingList struct {
	Plan      string      `json:"plan"`
	Items     Ingredients `json:"items"`
	TotalCost float64     `json:"total_cost"`
}
