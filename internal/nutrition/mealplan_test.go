package nutrition

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipe-nutrition/internal/models"
)

func planWith(n models.Nutrition) *models.MealPlan {
	return &models.MealPlan{Name: "test", Nutrition: n}
}

func adultBaseline() models.Nutrition {
	return models.Nutrition{
		models.Calories: 2000,
		models.Protein:  50,
		models.Fat:      65,
		models.Carbs:    130,
	}
}

func TestNewMealPlanSumsRecipes(t *testing.T) {
	calc := NewCalculator(DefaultTable(), zap.NewNop())
	first := calc.NewRecipe("A", models.Ingredients{{Name: "egg", Quantity: 100}, {Name: "milk", Quantity: 200}})
	second := calc.NewRecipe("B", models.Ingredients{{Name: "spinach", Quantity: 50}})
	empty := calc.NewRecipe("C", nil)

	plan, err := NewMealPlan("Day one", []*models.Recipe{first, second, empty})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, plan.ID)
	assert.Equal(t, "Day one", plan.Name)
	assert.Len(t, plan.Recipes, 3)

	keys := map[models.Nutrient]bool{}
	for _, r := range plan.Recipes {
		for k := range r.Nutrition {
			keys[k] = true
		}
	}
	require.Len(t, plan.Nutrition, len(keys))
	for k := range keys {
		want := first.Nutrition.Get(k) + second.Nutrition.Get(k) + empty.Nutrition.Get(k)
		assert.InDelta(t, want, plan.Nutrition.Get(k), 1e-9, "nutrient %s", k)
	}
	// spinach is the only vitamin K source here
	assert.InDelta(t, 483*0.5, plan.Nutrition.Get(models.VitaminK), 1e-9)
}

func TestNewMealPlanRejectsBlankName(t *testing.T) {
	plan, err := NewMealPlan("   ", nil)

	assert.ErrorIs(t, err, models.ErrEmptyPlanName)
	assert.Nil(t, plan)
}

func TestMeetsRequirementsThresholdBoundary(t *testing.T) {
	atThreshold := adultBaseline()
	atThreshold[models.Protein] = 45

	met, reason := MeetsRequirements(planWith(atThreshold), "adult")
	assert.True(t, met)
	assert.Equal(t, "Meets requirements", reason)

	below := adultBaseline()
	below[models.Protein] = 44.9

	met, reason = MeetsRequirements(planWith(below), "adult")
	assert.False(t, met)
	assert.Equal(t, "Insufficient protein", reason)
}

func TestMeetsRequirementsReportsFirstShortfall(t *testing.T) {
	met, reason := MeetsRequirements(planWith(models.Nutrition{models.Protein: 10}), "adult")

	assert.False(t, met)
	assert.Equal(t, "Insufficient calories", reason)

	n := adultBaseline()
	n[models.Fat] = 0
	n[models.Carbs] = 0
	met, reason = MeetsRequirements(planWith(n), "Adult")
	assert.False(t, met)
	assert.Equal(t, "Insufficient fat", reason)
}

func TestMeetsRequirementsUnknownDiet(t *testing.T) {
	met, reason := MeetsRequirements(planWith(adultBaseline()), "martian")

	assert.False(t, met)
	assert.Equal(t, "Invalid dietary type", reason)
}

func TestMeetsRequirementsIgnoresVitamins(t *testing.T) {
	n := adultBaseline()
	n[models.VitaminC] = 0

	met, _ := MeetsRequirements(planWith(n), "ADULT")
	assert.True(t, met)
}

func TestMeetsRequirementsIsMonotonic(t *testing.T) {
	faker := gofakeit.New(7)

	for _, req := range DietRequirements() {
		for i := 0; i < 100; i++ {
			n := models.Nutrition{}
			for _, macro := range models.Macros {
				n[macro] = faker.Float64Range(0, req.Minimum(macro)*1.5)
			}
			before, _ := MeetsRequirements(planWith(n), req.DietType)

			raised := n.Clone()
			raised[models.Macros[faker.IntRange(0, len(models.Macros)-1)]] += faker.Float64Range(0, 500)
			after, _ := MeetsRequirements(planWith(raised), req.DietType)

			if before {
				assert.True(t, after, "raising a macro broke %s for %v", req.DietType, raised)
			}
		}
	}
}

func TestCheckAllDietsFollowsTableOrder(t *testing.T) {
	checks := CheckAllDiets(planWith(models.Nutrition{
		models.Calories: 2000, models.Protein: 50, models.Fat: 65, models.Carbs: 130,
	}))

	require.Len(t, checks, 6)
	order := make([]string, 0, len(checks))
	for _, c := range checks {
		order = append(order, c.DietType)
	}
	assert.Equal(t, []string{"child", "teen", "adult", "senior", "diabetic", "athlete"}, order)
	assert.True(t, checks[2].Met)
	assert.False(t, checks[5].Met)
	assert.Equal(t, "Insufficient calories", checks[5].Reason)
}

func TestLookupDiet(t *testing.T) {
	req, ok := LookupDiet(" Senior ")
	require.True(t, ok)
	assert.Equal(t, 46.0, req.Protein)

	_, ok = LookupDiet("martian")
	assert.False(t, ok)
}
