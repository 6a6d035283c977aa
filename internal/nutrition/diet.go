package nutrition

import "recipe-nutrition/internal/models"

// RequirementThreshold is the fraction of a diet minimum a plan must reach.
const RequirementThreshold = 0.9

const (
	reasonInvalidDiet = "Invalid dietary type"
	reasonMet         = "Meets requirements"
)

// Table order is the display order.
var dietRequirements = []models.DietRequirement{
	{DietType: "child", Calories: 1600, Protein: 34, Fat: 50, Carbs: 130},
	{DietType: "teen", Calories: 2200, Protein: 52, Fat: 65, Carbs: 180},
	{DietType: "adult", Calories: 2000, Protein: 50, Fat: 65, Carbs: 130},
	{DietType: "senior", Calories: 1800, Protein: 46, Fat: 60, Carbs: 130},
	{DietType: "diabetic", Calories: 1800, Protein: 50, Fat: 60, Carbs: 100},
	{DietType: "athlete", Calories: 2800, Protein: 140, Fat: 80, Carbs: 350},
}

// DietRequirements returns a copy of the diet table in display order.
func DietRequirements() []models.DietRequirement {
	out := make([]models.DietRequirement, len(dietRequirements))
	copy(out, dietRequirements)
	return out
}

// LookupDiet finds a diet requirement by case-insensitive name.
func LookupDiet(dietType string) (models.DietRequirement, bool) {
	key := normalizeName(dietType)
	for _, req := range dietRequirements {
		if req.DietType == key {
			return req, true
		}
	}
	return models.DietRequirement{}, false
}
