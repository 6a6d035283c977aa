package models

import "strconv"

type Nutrient string

const (
	Calories Nutrient = "calories"
	Protein  Nutrient = "protein"
	Fat      Nutrient = "fat"
	Carbs    Nutrient = "carbs"

	VitaminA Nutrient = "vitamin_a"
	VitaminB Nutrient = "vitamin_b"
	VitaminC Nutrient = "vitamin_c"
	VitaminD Nutrient = "vitamin_d"
	VitaminE Nutrient = "vitamin_e"
	VitaminK Nutrient = "vitamin_k"
)

// Macros are the nutrients checked against diet requirements, in check order.
var Macros = []Nutrient{Calories, Protein, Fat, Carbs}

var Vitamins = []Nutrient{VitaminA, VitaminB, VitaminC, VitaminD, VitaminE, VitaminK}

// Label returns the display name used in reports.
func (n Nutrient) Label() string {
	switch n {
	case Calories:
		return "Calories"
	case Protein:
		return "Protein"
	case Fat:
		return "Fat"
	case Carbs:
		return "Carbohydrates"
	case VitaminA:
		return "Vitamin A"
	case VitaminB:
		return "Vitamin B"
	case VitaminC:
		return "Vitamin C"
	case VitaminD:
		return "Vitamin D"
	case VitaminE:
		return "Vitamin E"
	case VitaminK:
		return "Vitamin K"
	}
	return string(n)
}

func (n Nutrient) Unit() string {
	switch n {
	case Calories:
		return "kcal"
	case Protein, Fat, Carbs:
		return "g"
	}
	return "mcg"
}

// Nutrition maps a nutrient to an accumulated amount. Absent keys read as zero.
type Nutrition map[Nutrient]float64

func (n Nutrition) Get(key Nutrient) float64 {
	if v, ok := n[key]; ok {
		return v
	}
	return 0
}

// Add accumulates value into key, creating the key if needed.
func (n Nutrition) Add(key Nutrient, value float64) {
	n[key] = n.Get(key) + value
}

// Merge adds every entry of other into n.
func (n Nutrition) Merge(other Nutrition) {
	for key, value := range other {
		n.Add(key, value)
	}
}

func (n Nutrition) Has(key Nutrient) bool {
	_, ok := n[key]
	return ok
}

func (n Nutrition) Clone() Nutrition {
	out := make(Nutrition, len(n))
	for k, v := range n {
		out[k] = v
	}
	return out
}

// RoundCost rounds a monetary amount to cents using the exact decimal value
// of v, so exact halves such as 0.125 go to the even cent.
func RoundCost(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
