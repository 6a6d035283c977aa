package server

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"recipe-nutrition/internal/models"
	"recipe-nutrition/internal/nutrition"
)

type AnalyzeRecipeParams struct {
	File string `json:"file" description:"Recipe file name inside the recipe directory"`
}

type CreateMealPlanParams struct {
	Name  string   `json:"name" description:"Unique name for the meal plan"`
	Files []string `json:"files" description:"Recipe file names to include, in order"`
}

type PlanParams struct {
	Plan string `json:"plan" description:"Meal plan name"`
}

type CheckMealPlanParams struct {
	Plan string `json:"plan" description:"Meal plan name"`
	Diet string `json:"diet,omitempty" description:"Diet type to check (all diets when empty)"`
}

type recipeReport struct {
	Name        string             `json:"name"`
	Source      string             `json:"source,omitempty"`
	Ingredients models.Ingredients `json:"ingredients"`
	Nutrition   models.Nutrition   `json:"nutrition"`
	Cost        float64            `json:"cost"`
}

type mealPlanReport struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Recipes   []string           `json:"recipes"`
	Nutrition models.Nutrition   `json:"nutrition"`
	Diets     []models.DietCheck `json:"diets"`
}

type builtinReport struct {
	File    string `json:"file"`
	Content string `json:"content"`
}

// extractParams converts the request arguments into a params struct
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal parameters: %w", err)
	}

	return nil
}

// displayNutrition rounds every amount to one decimal place.
func displayNutrition(n models.Nutrition) models.Nutrition {
	out := make(models.Nutrition, len(n))
	for k, v := range n {
		out[k] = math.Round(v*10) / 10
	}
	return out
}

func newRecipeReport(r *models.Recipe) recipeReport {
	return recipeReport{
		Name:        r.Name,
		Source:      r.Source,
		Ingredients: r.Ingredients,
		Nutrition:   displayNutrition(r.Nutrition),
		Cost:        r.Cost(),
	}
}

func newMealPlanReport(plan *models.MealPlan, checks []models.DietCheck) mealPlanReport {
	recipeNames := make([]string, 0, len(plan.Recipes))
	for _, r := range plan.Recipes {
		recipeNames = append(recipeNames, r.Name)
	}
	return mealPlanReport{
		ID:        plan.ID.String(),
		Name:      plan.Name,
		Recipes:   recipeNames,
		Nutrition: displayNutrition(plan.Nutrition),
		Diets:     checks,
	}
}

func (s *RecipeToolServer) handleListRecipes(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	files, err := s.service.ListRecipes()
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []string{}
	}
	return s.createJSONResponse(files)
}

func (s *RecipeToolServer) handleAnalyzeRecipe(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params AnalyzeRecipeParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if params.File == "" {
		return nil, fmt.Errorf("recipe file is required")
	}

	recipe, err := s.service.AnalyzeRecipe(params.File)
	if err != nil {
		return nil, err
	}

	return s.createJSONResponse(newRecipeReport(recipe))
}

func (s *RecipeToolServer) handleCreateMealPlan(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params CreateMealPlanParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if len(params.Files) == 0 {
		return nil, fmt.Errorf("at least one recipe file is required")
	}

	plan, err := s.service.CreateMealPlan(params.Name, params.Files)
	if err != nil {
		return nil, err
	}

	checks, err := s.service.CheckDiets(plan.Name)
	if err != nil {
		return nil, err
	}

	return s.createJSONResponse(newMealPlanReport(plan, checks))
}

func (s *RecipeToolServer) handleGetMealPlan(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params PlanParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	plan, err := s.service.MealPlan(params.Plan)
	if err != nil {
		return nil, err
	}

	return s.createJSONResponse(newMealPlanReport(plan, nutrition.CheckAllDiets(plan)))
}

func (s *RecipeToolServer) handleListMealPlans(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	names, err := s.service.MealPlanNames()
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return s.createJSONResponse(names)
}

func (s *RecipeToolServer) handleCheckMealPlan(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params CheckMealPlanParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if params.Diet == "" {
		checks, err := s.service.CheckDiets(params.Plan)
		if err != nil {
			return nil, err
		}
		return s.createJSONResponse(checks)
	}

	check, err := s.service.CheckDiet(params.Plan, params.Diet)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(check)
}

func (s *RecipeToolServer) handleShoppingList(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params PlanParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	list, err := s.service.ShoppingList(params.Plan)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(list)
}

func (s *RecipeToolServer) handleDietRequirements(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return s.createJSONResponse(s.service.DietRequirements())
}

func (s *RecipeToolServer) handleBuiltinRecipes(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	builtins := s.service.BuiltinRecipes()
	out := make([]builtinReport, 0, len(builtins))
	for _, b := range builtins {
		out = append(out, builtinReport{File: b.File, Content: b.Content()})
	}
	return s.createJSONResponse(out)
}

func (s *RecipeToolServer) handleServerInfo(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return s.createJSONResponse(map[string]interface{}{
		"server": s.Info(),
		"tools":  s.ToolNames(),
	})
}

// ToolNames lists the registered tools alphabetically.
func (s *RecipeToolServer) ToolNames() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *RecipeToolServer) registerTools() error {
	s.handlers = map[string]toolHandler{
		"list_recipes":      s.handleListRecipes,
		"analyze_recipe":    s.handleAnalyzeRecipe,
		"create_meal_plan":  s.handleCreateMealPlan,
		"list_meal_plans":   s.handleListMealPlans,
		"get_meal_plan":     s.handleGetMealPlan,
		"check_meal_plan":   s.handleCheckMealPlan,
		"shopping_list":     s.handleShoppingList,
		"diet_requirements": s.handleDietRequirements,
		"builtin_recipes":   s.handleBuiltinRecipes,
		"server_info":       s.handleServerInfo,
	}

	if s.service == nil {
		return fmt.Errorf("planner service is required")
	}
	return nil
}
