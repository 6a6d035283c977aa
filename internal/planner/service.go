// Package planner ties the recipe library, the nutrition calculations and the
// session store together. Both the interactive shell and the tool server
// drive the application through it.
package planner

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"recipe-nutrition/internal/models"
	"recipe-nutrition/internal/nutrition"
	"recipe-nutrition/internal/recipes"
)

type Library interface {
	List() ([]string, error)
	Load(name string) (*models.Recipe, error)
}

type PlanStore interface {
	SavePlan(plan *models.MealPlan) error
	PlanNames() ([]string, error)
	GetPlan(name string) (*models.MealPlan, error)
}

type Service struct {
	library Library
	store   PlanStore
	logger  *zap.Logger
}

func NewService(library Library, store PlanStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{library: library, store: store, logger: logger}
}

func (s *Service) ListRecipes() ([]string, error) {
	return s.library.List()
}

func (s *Service) AnalyzeRecipe(file string) (*models.Recipe, error) {
	return s.library.Load(file)
}

// CreateMealPlan loads the given recipe files and stores them as a new plan.
// Files that fail to load are skipped with a warning.
func (s *Service) CreateMealPlan(name string, files []string) (*models.MealPlan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrEmptyPlanName
	}

	existing, err := s.store.PlanNames()
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	for _, n := range existing {
		if n == name {
			return nil, fmt.Errorf("%w: %s", models.ErrDuplicatePlan, name)
		}
	}

	var loaded []*models.Recipe
	for _, file := range files {
		recipe, err := s.library.Load(file)
		if err != nil {
			s.logger.Warn("Skipping recipe", zap.String("file", file), zap.Error(err))
			continue
		}
		loaded = append(loaded, recipe)
	}
	if len(loaded) == 0 {
		return nil, models.ErrNoRecipesLoaded
	}

	plan, err := nutrition.NewMealPlan(name, loaded)
	if err != nil {
		return nil, err
	}

	if err := s.store.SavePlan(plan); err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}

	s.logger.Debug("Created meal plan",
		zap.String("plan", plan.Name),
		zap.Stringer("id", plan.ID),
		zap.Int("recipes", len(plan.Recipes)))
	return plan, nil
}

// MealPlanNames lists the session's plans in creation order.
func (s *Service) MealPlanNames() ([]string, error) {
	return s.store.PlanNames()
}

func (s *Service) MealPlan(name string) (*models.MealPlan, error) {
	return s.store.GetPlan(name)
}

func (s *Service) ShoppingList(planName string) (*models.ShoppingList, error) {
	plan, err := s.store.GetPlan(planName)
	if err != nil {
		return nil, err
	}
	return nutrition.BuildShoppingList(plan), nil
}

// CheckDiets evaluates a stored plan against every diet.
func (s *Service) CheckDiets(planName string) ([]models.DietCheck, error) {
	plan, err := s.store.GetPlan(planName)
	if err != nil {
		return nil, err
	}
	return nutrition.CheckAllDiets(plan), nil
}

// CheckDiet evaluates a stored plan against one diet. Unknown diets are a
// negative result, not an error.
func (s *Service) CheckDiet(planName, dietType string) (models.DietCheck, error) {
	plan, err := s.store.GetPlan(planName)
	if err != nil {
		return models.DietCheck{}, err
	}
	met, reason := nutrition.MeetsRequirements(plan, dietType)
	return models.DietCheck{DietType: dietType, Met: met, Reason: reason}, nil
}

func (s *Service) DietRequirements() []models.DietRequirement {
	return nutrition.DietRequirements()
}

func (s *Service) BuiltinRecipes() []recipes.BuiltinRecipe {
	return recipes.Builtins()
}
