// Package nutrition holds the built-in nutrition and diet tables and the
// aggregation logic for recipes, meal plans and shopping lists.
package nutrition

import (
	"sort"
	"strings"

	"recipe-nutrition/internal/models"
)

// Table resolves an ingredient name to its nutrition record.
type Table interface {
	Lookup(name string) (models.IngredientRecord, bool)
}

// StaticTable is a Table keyed by lowercase ingredient name.
type StaticTable map[string]models.IngredientRecord

func (t StaticTable) Lookup(name string) (models.IngredientRecord, bool) {
	record, ok := t[normalizeName(name)]
	if !ok {
		return models.IngredientRecord{}, false
	}
	record.Nutrients = record.Nutrients.Clone()
	return record, true
}

// Names returns the ingredient names in alphabetical order.
func (t StaticTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DefaultTable returns the built-in nutrition table. Values are per 100 units;
// prices are per single unit.
func DefaultTable() StaticTable {
	return defaultTable
}

func record(name string, price float64, nutrients models.Nutrition) models.IngredientRecord {
	return models.IngredientRecord{Name: name, Nutrients: nutrients, PricePerUnit: price}
}

var defaultTable = StaticTable{
	"chicken breast": record("chicken breast", 0.03, models.Nutrition{
		models.Calories: 165, models.Protein: 31, models.Fat: 3.6, models.Carbs: 0,
		models.VitaminA: 20, models.VitaminB: 0.6, models.VitaminD: 0.1,
	}),
	"brown rice": record("brown rice", 0.02, models.Nutrition{
		models.Calories: 111, models.Protein: 2.6, models.Fat: 0.9, models.Carbs: 23,
		models.VitaminB: 0.1, models.VitaminE: 0.4,
	}),
	"salmon": record("salmon", 0.05, models.Nutrition{
		models.Calories: 208, models.Protein: 20, models.Fat: 13, models.Carbs: 0,
		models.VitaminD: 11, models.VitaminB: 0.8,
	}),
	"broccoli": record("broccoli", 0.01, models.Nutrition{
		models.Calories: 34, models.Protein: 2.8, models.Fat: 0.4, models.Carbs: 6.6,
		models.VitaminA: 31, models.VitaminC: 89, models.VitaminK: 102,
	}),
	"olive oil": record("olive oil", 0.10, models.Nutrition{
		models.Calories: 884, models.Protein: 0, models.Fat: 100, models.Carbs: 0,
		models.VitaminE: 14, models.VitaminK: 60,
	}),
	"egg": record("egg", 0.04, models.Nutrition{
		models.Calories: 143, models.Protein: 13, models.Fat: 10, models.Carbs: 1.1,
		models.VitaminA: 160, models.VitaminD: 2, models.VitaminB: 0.9,
	}),
	"whole wheat bread": record("whole wheat bread", 0.03, models.Nutrition{
		models.Calories: 247, models.Protein: 13, models.Fat: 3.4, models.Carbs: 41,
		models.VitaminB: 0.5,
	}),
	"banana": record("banana", 0.02, models.Nutrition{
		models.Calories: 89, models.Protein: 1.1, models.Fat: 0.3, models.Carbs: 23,
		models.VitaminC: 8.7, models.VitaminB: 0.4,
	}),
	"milk": record("milk", 0.01, models.Nutrition{
		models.Calories: 42, models.Protein: 3.4, models.Fat: 1, models.Carbs: 5,
		models.VitaminA: 14, models.VitaminD: 1.2, models.VitaminB: 0.4,
	}),
	"potato": record("potato", 0.01, models.Nutrition{
		models.Calories: 77, models.Protein: 2, models.Fat: 0.1, models.Carbs: 17,
		models.VitaminC: 19.7, models.VitaminB: 0.3,
	}),
	"tomato": record("tomato", 0.02, models.Nutrition{
		models.Calories: 18, models.Protein: 0.9, models.Fat: 0.2, models.Carbs: 3.9,
		models.VitaminA: 42, models.VitaminC: 13.7,
	}),
	"spinach": record("spinach", 0.02, models.Nutrition{
		models.Calories: 23, models.Protein: 2.9, models.Fat: 0.4, models.Carbs: 3.6,
		models.VitaminA: 188, models.VitaminC: 28, models.VitaminK: 483,
	}),
	"ground beef": record("ground beef", 0.04, models.Nutrition{
		models.Calories: 250, models.Protein: 26, models.Fat: 15, models.Carbs: 0,
		models.VitaminB: 0.8,
	}),
	"cheese": record("cheese", 0.08, models.Nutrition{
		models.Calories: 402, models.Protein: 25, models.Fat: 33, models.Carbs: 1.3,
		models.VitaminA: 100, models.VitaminB: 0.4,
	}),
	"apple": record("apple", 0.02, models.Nutrition{
		models.Calories: 52, models.Protein: 0.3, models.Fat: 0.2, models.Carbs: 14,
		models.VitaminC: 4.6,
	}),
}
