package recipes

import "recipe-nutrition/internal/models"

type BuiltinRecipe struct {
	File        string             `json:"file"`
	Name        string             `json:"name"`
	Ingredients models.Ingredients `json:"ingredients"`
}

func (b BuiltinRecipe) Content() string {
	return Format(b.Name, b.Ingredients)
}

var builtins = []BuiltinRecipe{
	{
		File: "chicken_rice.txt",
		Name: "Chicken with Rice",
		Ingredients: models.Ingredients{
			{Name: "chicken breast", Quantity: 200},
			{Name: "brown rice", Quantity: 150},
			{Name: "olive oil", Quantity: 10},
			{Name: "broccoli", Quantity: 100},
		},
	},
	{
		File: "salmon_salad.txt",
		Name: "Salmon Salad",
		Ingredients: models.Ingredients{
			{Name: "salmon", Quantity: 150},
			{Name: "spinach", Quantity: 80},
			{Name: "tomato", Quantity: 100},
			{Name: "olive oil", Quantity: 15},
		},
	},
	{
		File: "breakfast.txt",
		Name: "Healthy Breakfast",
		Ingredients: models.Ingredients{
			{Name: "egg", Quantity: 100},
			{Name: "whole wheat bread", Quantity: 60},
			{Name: "milk", Quantity: 200},
			{Name: "apple", Quantity: 100},
		},
	},
}

// Builtins returns the recipes written into a fresh recipe directory.
func Builtins() []BuiltinRecipe {
	out := make([]BuiltinRecipe, len(builtins))
	for i, b := range builtins {
		b.Ingredients = append(models.Ingredients(nil), b.Ingredients...)
		out[i] = b
	}
	return out
}
