package nutrition

import (
	"go.uber.org/zap"

	"recipe-nutrition/internal/models"
)

// Calculator turns ingredient quantities into nutrition totals and cost.
type Calculator struct {
	table  Table
	logger *zap.Logger
}

func NewCalculator(table Table, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{table: table, logger: logger}
}

// Aggregate sums value*quantity/100 for every nutrient of every known
// ingredient, and price*quantity for cost. Unknown ingredients are logged and
// contribute nothing.
func (c *Calculator) Aggregate(ingredients models.Ingredients) (models.Nutrition, float64) {
	total := models.Nutrition{}
	var cost float64

	for _, item := range ingredients {
		data, ok := c.table.Lookup(item.Name)
		if !ok {
			c.logger.Warn("No nutrition data for ingredient",
				zap.String("ingredient", item.Name),
				zap.Error(models.ErrUnknownIngredient))
			continue
		}

		for nutrient, value := range data.Nutrients {
			total.Add(nutrient, value*item.Quantity/100)
		}
		cost += data.PricePerUnit * item.Quantity
	}

	return total, cost
}

// NewRecipe builds a recipe with its nutrition and cost already derived.
func (c *Calculator) NewRecipe(name string, ingredients models.Ingredients) *models.Recipe {
	if ingredients == nil {
		ingredients = models.Ingredients{}
	}
	nutrition, cost := c.Aggregate(ingredients)
	return &models.Recipe{
		Name:        name,
		Ingredients: ingredients,
		Nutrition:   nutrition,
		RawCost:     cost,
	}
}
