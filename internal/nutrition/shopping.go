package nutrition

import "recipe-nutrition/internal/models"

// BuildShoppingList merges ingredient quantities across the plan's recipes in
// first-seen order. The total is the sum of each recipe's own rounded cost,
// not a recomputation over the merged list.
func BuildShoppingList(plan *models.MealPlan) *models.ShoppingList {
	items := models.Ingredients{}
	var total float64

	for _, recipe := range plan.Recipes {
		for _, item := range recipe.Ingredients {
			items.Add(item.Name, item.Quantity)
		}
		total += recipe.Cost()
	}

	return &models.ShoppingList{
		Plan:      plan.Name,
		Items:     items,
		TotalCost: models.RoundCost(total),
	}
}
