package models

type IngredientRecord struct {
	Name         string    `json:"name"`
	Nutrients    Nutrition `json:"nutrients"`
	PricePerUnit float64   `json:"price_per_unit"`
}

type IngredientQuantity struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// Ingredients is an ingredient to quantity mapping that keeps first-seen order.
type Ingredients []IngredientQuantity

func (l Ingredients) Get(name string) (float64, bool) {
	for _, item := range l {
		if item.Name == name {
			return item.Quantity, true
		}
	}
	return 0, false
}

// Set replaces the quantity of an existing entry in place, or appends a new one.
func (l *Ingredients) Set(name string, quantity float64) {
	for i := range *l {
		if (*l)[i].Name == name {
			(*l)[i].Quantity = quantity
			return
		}
	}
	*l = append(*l, IngredientQuantity{Name: name, Quantity: quantity})
}

// Add accumulates quantity into name, appending it if it was not seen before.
func (l *Ingredients) Add(name string, quantity float64) {
	current, _ := l.Get(name)
	l.Set(name, current+quantity)
}

func (l Ingredients) Names() []string {
	names := make([]string, 0, len(l))
	for _, item := range l {
		names = append(names, item.Name)
	}
	return names
}

type Recipe struct {
	Name        string      `json:"name"`
	Source      string      `json:"source,omitempty"`
	Ingredients Ingredients `json:"ingredients"`
	Nutrition   Nutrition   `json:"nutrition"`
	RawCost     float64     `json:"-"`
}

// Cost is the recipe cost rounded to cents.
func (r *Recipe) Cost() float64 {
	return RoundCost(r.RawCost)
}
