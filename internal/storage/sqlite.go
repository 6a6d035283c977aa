package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"recipe-nutrition/internal/models"
	"recipe-nutrition/internal/nutrition"
)

// MemoryDSN keeps the session store in process memory.
const MemoryDSN = ":memory:"

// SQLiteStorage holds the meal plans created during a session.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dsn string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS meal_plans (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        id TEXT NOT NULL UNIQUE,
        name TEXT NOT NULL UNIQUE,
        created_at TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS plan_recipes (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        plan_id TEXT NOT NULL,
        position INTEGER NOT NULL,
        name TEXT NOT NULL,
        source TEXT NOT NULL,
        raw_cost REAL NOT NULL,
        FOREIGN KEY (plan_id) REFERENCES meal_plans(id) ON DELETE CASCADE
    );

    CREATE TABLE IF NOT EXISTS recipe_ingredients (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        recipe_id INTEGER NOT NULL,
        name TEXT NOT NULL,
        quantity REAL NOT NULL,
        FOREIGN KEY (recipe_id) REFERENCES plan_recipes(id) ON DELETE CASCADE
    );

    CREATE TABLE IF NOT EXISTS recipe_nutrients (
        recipe_id INTEGER NOT NULL,
        nutrient TEXT NOT NULL,
        amount REAL NOT NULL,
        PRIMARY KEY (recipe_id, nutrient),
        FOREIGN KEY (recipe_id) REFERENCES plan_recipes(id) ON DELETE CASCADE
    );

    CREATE INDEX IF NOT EXISTS idx_plan_recipes_plan_id ON plan_recipes(plan_id);
    CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe_id ON recipe_ingredients(recipe_id);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SavePlan stores a plan and its recipes. Plan names are unique.
func (s *SQLiteStorage) SavePlan(plan *models.MealPlan) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM meal_plans WHERE name = ?`, plan.Name).Scan(&existing); err != nil {
		return fmt.Errorf("failed to check meal plan name: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("%w: %s", models.ErrDuplicatePlan, plan.Name)
	}

	_, err = tx.Exec(`INSERT INTO meal_plans (id, name, created_at) VALUES (?, ?, ?)`,
		plan.ID.String(), plan.Name, plan.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert meal plan: %w", err)
	}

	for position, recipe := range plan.Recipes {
		res, err := tx.Exec(`
            INSERT INTO plan_recipes (plan_id, position, name, source, raw_cost)
            VALUES (?, ?, ?, ?, ?)
        `, plan.ID.String(), position, recipe.Name, recipe.Source, recipe.RawCost)
		if err != nil {
			return fmt.Errorf("failed to insert recipe: %w", err)
		}
		recipeID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read recipe id: %w", err)
		}

		for _, item := range recipe.Ingredients {
			if _, err := tx.Exec(`INSERT INTO recipe_ingredients (recipe_id, name, quantity) VALUES (?, ?, ?)`,
				recipeID, item.Name, item.Quantity); err != nil {
				return fmt.Errorf("failed to insert ingredient: %w", err)
			}
		}

		for nutrient, amount := range recipe.Nutrition {
			if _, err := tx.Exec(`INSERT INTO recipe_nutrients (recipe_id, nutrient, amount) VALUES (?, ?, ?)`,
				recipeID, string(nutrient), amount); err != nil {
				return fmt.Errorf("failed to insert nutrient: %w", err)
			}
		}
	}

	return tx.Commit()
}

// PlanNames lists plan names in creation order.
func (s *SQLiteStorage) PlanNames() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM meal_plans ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal plans: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetPlan restores a plan exactly as saved.
func (s *SQLiteStorage) GetPlan(name string) (*models.MealPlan, error) {
	var idStr, createdAtStr string
	err := s.db.QueryRow(`SELECT id, name, created_at FROM meal_plans WHERE name = ?`, name).
		Scan(&idStr, &name, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrPlanNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query meal plan: %w", err)
	}

	plan := &models.MealPlan{Name: name}
	if plan.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("failed to parse meal plan id: %w", err)
	}
	if plan.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	recipes, ids, err := s.loadRecipes(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes for meal plan %s: %w", name, err)
	}

	// the store runs on a single connection, so child rows are loaded only
	// after the parent cursor is closed
	for i, recipe := range recipes {
		if err := s.loadIngredients(ids[i], recipe); err != nil {
			return nil, err
		}
		if err := s.loadNutrients(ids[i], recipe); err != nil {
			return nil, err
		}
	}

	plan.Recipes = recipes
	plan.Nutrition = nutrition.SumNutrition(recipes)
	return plan, nil
}

func (s *SQLiteStorage) loadRecipes(planID string) ([]*models.Recipe, []int64, error) {
	rows, err := s.db.Query(`
        SELECT id, name, source, raw_cost
        FROM plan_recipes
        WHERE plan_id = ?
        ORDER BY position
    `, planID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var (
		recipes []*models.Recipe
		ids     []int64
	)
	for rows.Next() {
		var id int64
		recipe := &models.Recipe{Ingredients: models.Ingredients{}, Nutrition: models.Nutrition{}}
		if err := rows.Scan(&id, &recipe.Name, &recipe.Source, &recipe.RawCost); err != nil {
			return nil, nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
		ids = append(ids, id)
	}
	return recipes, ids, rows.Err()
}

func (s *SQLiteStorage) loadIngredients(recipeID int64, recipe *models.Recipe) error {
	rows, err := s.db.Query(`
        SELECT name, quantity
        FROM recipe_ingredients
        WHERE recipe_id = ?
        ORDER BY id
    `, recipeID)
	if err != nil {
		return fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.IngredientQuantity
		if err := rows.Scan(&item.Name, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan ingredient: %w", err)
		}
		recipe.Ingredients = append(recipe.Ingredients, item)
	}
	return rows.Err()
}

func (s *SQLiteStorage) loadNutrients(recipeID int64, recipe *models.Recipe) error {
	rows, err := s.db.Query(`SELECT nutrient, amount FROM recipe_nutrients WHERE recipe_id = ?`, recipeID)
	if err != nil {
		return fmt.Errorf("failed to query nutrients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			nutrient string
			amount   float64
		)
		if err := rows.Scan(&nutrient, &amount); err != nil {
			return fmt.Errorf("failed to scan nutrient: %w", err)
		}
		recipe.Nutrition[models.Nutrient(nutrient)] = amount
	}
	return rows.Err()
}
