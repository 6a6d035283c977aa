package nutrition

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"recipe-nutrition/internal/models"
)

// NewMealPlan creates a plan whose nutrition is the element-wise sum of its
// recipes.
func NewMealPlan(name string, recipes []*models.Recipe) (*models.MealPlan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrEmptyPlanName
	}

	return &models.MealPlan{
		ID:        uuid.New(),
		Name:      name,
		Recipes:   recipes,
		Nutrition: SumNutrition(recipes),
		CreatedAt: time.Now(),
	}, nil
}

func SumNutrition(recipes []*models.Recipe) models.Nutrition {
	total := models.Nutrition{}
	for _, recipe := range recipes {
		total.Merge(recipe.Nutrition)
	}
	return total
}

// MeetsRequirements reports whether every tracked macro of the plan reaches
// RequirementThreshold of the diet minimum. The first shortfall, in
// calories, protein, fat, carbs order, is the reason. Unknown diets yield a
// negative result rather than an error.
func MeetsRequirements(plan *models.MealPlan, dietType string) (bool, string) {
	req, ok := LookupDiet(dietType)
	if !ok {
		return false, reasonInvalidDiet
	}

	for _, nutrient := range models.Macros {
		if plan.Nutrition.Get(nutrient) < req.Minimum(nutrient)*RequirementThreshold {
			return false, fmt.Sprintf("Insufficient %s", nutrient)
		}
	}

	return true, reasonMet
}

// CheckAllDiets evaluates the plan against every known diet in table order.
func CheckAllDiets(plan *models.MealPlan) []models.DietCheck {
	checks := make([]models.DietCheck, 0, len(dietRequirements))
	for _, req := range dietRequirements {
		met, reason := MeetsRequirements(plan, req.DietType)
		checks = append(checks, models.DietCheck{DietType: req.DietType, Met: met, Reason: reason})
	}
	return checks
}
