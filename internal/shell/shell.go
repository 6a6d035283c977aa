// Package shell implements the numbered text menu.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"recipe-nutrition/internal/models"
	"recipe-nutrition/internal/planner"
)

const rule = "========================================"

type Shell struct {
	service *planner.Service
	in      *bufio.Scanner
	out     io.Writer
	logger  *zap.Logger
	title   cases.Caser
}

func New(svc *planner.Service, in io.Reader, out io.Writer, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{
		service: svc,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
		title:   cases.Title(language.English),
	}
}

// Run shows the menu until the user exits or input ends.
func (sh *Shell) Run() error {
	for {
		sh.header("Recipe Nutrition Calculator")
		sh.println("1. Analyze a recipe")
		sh.println("2. Create a meal plan")
		sh.println("3. Generate shopping list")
		sh.println("4. View dietary requirements")
		sh.println("5. View built-in recipes")
		sh.println("6. Exit")

		choice, ok := sh.prompt("\nEnter your choice (1-6): ")
		if !ok {
			sh.println("\nExiting program. Goodbye!")
			return sh.in.Err()
		}

		switch choice {
		case "1":
			sh.analyzeRecipe()
		case "2":
			sh.createMealPlan()
		case "3":
			sh.generateShoppingList()
		case "4":
			sh.viewDietaryRequirements()
		case "5":
			sh.viewBuiltinRecipes()
		case "6":
			sh.println("\nExiting program. Goodbye!")
			return nil
		default:
			sh.println("\nInvalid choice. Please enter a number between 1 and 6.")
		}
	}
}

func (sh *Shell) analyzeRecipe() {
	sh.header("Recipe Analysis")

	files, ok := sh.listRecipes()
	if !ok {
		return
	}

	input, ok := sh.prompt("\nEnter recipe number to analyze: ")
	if !ok {
		return
	}
	idx, err := parseSelection(input, len(files))
	if err != nil {
		sh.reportSelection(err)
		return
	}

	recipe, err := sh.service.AnalyzeRecipe(files[idx-1])
	if err != nil {
		sh.reportLoad(files[idx-1], err)
		return
	}
	sh.displayRecipe(recipe)
}

func (sh *Shell) displayRecipe(recipe *models.Recipe) {
	sh.header("Nutrition Analysis: " + recipe.Name)
	sh.println("")
	sh.displayMacros(recipe.Nutrition)

	sh.println("\nVitamins:")
	for _, vitamin := range models.Vitamins {
		if recipe.Nutrition.Has(vitamin) {
			sh.printf("  %s: %.1f %s\n", vitamin.Label(), recipe.Nutrition.Get(vitamin), vitamin.Unit())
		}
	}

	sh.printf("\nEstimated Cost: $%.2f\n", recipe.Cost())
}

func (sh *Shell) displayMacros(n models.Nutrition) {
	for _, macro := range models.Macros {
		sh.printf("%s: %.1f %s\n", macro.Label(), n.Get(macro), macro.Unit())
	}
}

func (sh *Shell) createMealPlan() {
	sh.header("Create Meal Plan")

	files, ok := sh.listRecipes()
	if !ok {
		return
	}

	sh.println("\nEnter the numbers of recipes to include (comma separated)")
	sh.println("Example: 1,3,5")
	input, ok := sh.prompt("Your selection: ")
	if !ok {
		return
	}

	selected, ignored, err := parseSelections(input, len(files))
	for _, idx := range ignored {
		sh.printf("\nWarning: Ignoring invalid selection %d\n", idx)
	}
	if err != nil {
		sh.reportSelection(err)
		return
	}

	name, ok := sh.prompt("\nEnter a name for this meal plan: ")
	if !ok {
		return
	}

	chosen := make([]string, 0, len(selected))
	for _, idx := range selected {
		chosen = append(chosen, files[idx-1])
	}

	plan, err := sh.service.CreateMealPlan(name, chosen)
	switch {
	case errors.Is(err, models.ErrEmptyPlanName):
		sh.println("\nMeal plan name cannot be empty.")
		return
	case errors.Is(err, models.ErrDuplicatePlan):
		sh.printf("\nA meal plan named '%s' already exists.\n", strings.TrimSpace(name))
		return
	case errors.Is(err, models.ErrNoRecipesLoaded):
		sh.println("\nNo valid recipes could be loaded.")
		return
	case err != nil:
		sh.printf("\nError: %v\n", err)
		return
	}

	sh.printf("\nSuccessfully created meal plan: %s\n", plan.Name)
	sh.println("\nTotal Nutrition:")
	sh.displayMacros(plan.Nutrition)

	checks, err := sh.service.CheckDiets(plan.Name)
	if err != nil {
		sh.printf("\nError: %v\n", err)
		return
	}
	sh.println("\nDietary Requirements Check:")
	for _, check := range checks {
		mark := "✗"
		if check.Met {
			mark = "✓"
		}
		sh.printf("%s: %s %s\n", sh.title.String(check.DietType), mark, check.Reason)
	}
}

func (sh *Shell) generateShoppingList() {
	sh.header("Generate Shopping List")

	plans, err := sh.service.MealPlanNames()
	if err != nil {
		sh.printf("\nError: %v\n", err)
		return
	}
	if len(plans) == 0 {
		sh.println("\nNo meal plans have been created yet.")
		return
	}

	sh.println("\nAvailable Meal Plans:")
	for i, name := range plans {
		sh.printf("%d. %s\n", i+1, name)
	}

	input, ok := sh.prompt("\nEnter meal plan number: ")
	if !ok {
		return
	}
	idx, err := parseSelection(input, len(plans))
	if err != nil {
		sh.reportSelection(err)
		return
	}

	list, err := sh.service.ShoppingList(plans[idx-1])
	if err != nil {
		sh.printf("\nError: %v\n", err)
		return
	}

	sh.printf("\nShopping List for: %s\n", list.Plan)
	sh.println(rule)
	sh.println("\nIngredient\t\tAmount (g)")
	sh.println(strings.Repeat("-", 30))
	for _, item := range list.Items {
		sh.printf("%-20s\t%.1f\n", item.Name, item.Quantity)
	}
	sh.printf("\nEstimated Total Cost: $%.2f\n", list.TotalCost)
}

func (sh *Shell) viewDietaryRequirements() {
	sh.header("Dietary Requirements Reference")

	for _, req := range sh.service.DietRequirements() {
		sh.printf("\n%s:\n", sh.title.String(req.DietType))
		for _, macro := range models.Macros {
			unit := "g"
			if macro == models.Calories {
				unit = "kcal"
			}
			sh.printf("  %s: %s %s\n", sh.title.String(string(macro)), strconv.FormatFloat(req.Minimum(macro), 'f', -1, 64), unit)
		}
	}
}

func (sh *Shell) viewBuiltinRecipes() {
	sh.header("Built-in Recipes")

	for _, b := range sh.service.BuiltinRecipes() {
		sh.printf("\n%s:\n", b.File)
		sh.println(strings.Repeat("-", 30))
		sh.println(b.Content())
	}
}

// listRecipes prints the numbered recipe files and reports whether any exist.
func (sh *Shell) listRecipes() ([]string, bool) {
	files, err := sh.service.ListRecipes()
	if err != nil {
		sh.printf("\nError: %v\n", err)
		return nil, false
	}
	if len(files) == 0 {
		sh.println("\nNo recipe files found.")
		return nil, false
	}

	sh.println("\nAvailable recipes:")
	for i, f := range files {
		sh.printf("%d. %s\n", i+1, f)
	}
	return files, true
}

func (sh *Shell) reportSelection(err error) {
	var selErr *SelectionError
	if errors.As(err, &selErr) {
		sh.printf("\n%s\n", selErr.Message)
		return
	}
	sh.printf("\nError: %v\n", err)
}

func (sh *Shell) reportLoad(file string, err error) {
	switch {
	case errors.Is(err, models.ErrEmptySource):
		sh.printf("\nError: Recipe file '%s' is empty.\n", file)
	case errors.Is(err, models.ErrSourceNotFound):
		sh.printf("\nError: Recipe file '%s' not found.\n", file)
	default:
		sh.printf("\nError: %v\n", err)
	}
}

func (sh *Shell) header(title string) {
	sh.printf("\n%s\n%s\n%s\n", rule, title, rule)
}

func (sh *Shell) prompt(msg string) (string, bool) {
	sh.printf("%s", msg)
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

func (sh *Shell) println(s string) {
	fmt.Fprintln(sh.out, s)
}

func (sh *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(sh.out, format, args...)
}
