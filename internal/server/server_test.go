package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipe-nutrition/internal/models"
	"recipe-nutrition/internal/nutrition"
	"recipe-nutrition/internal/planner"
	"recipe-nutrition/internal/recipes"
	"recipe-nutrition/internal/storage"
)

func newTestServer(t *testing.T) *RecipeToolServer {
	t.Helper()
	logger := zap.NewNop()
	parser := recipes.NewParser(nutrition.NewCalculator(nutrition.DefaultTable(), logger), logger)
	library := recipes.NewLibrary(filepath.Join(t.TempDir(), "recipes"), ".txt", parser, logger)
	_, err := library.Init()
	require.NoError(t, err)

	store, err := storage.NewSQLiteStorage(storage.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv, err := NewRecipeToolServer(planner.NewService(library, store, logger), &Config{Name: "recipe-calc", Version: "test"}, logger)
	require.NoError(t, err)
	return srv
}

func call(t *testing.T, srv *RecipeToolServer, name string, args map[string]interface{}, target interface{}) {
	t.Helper()
	result := srv.HandleRequest(&protocol.CallToolRequest{Name: name, Arguments: args})
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(protocol.TextContent)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(text.Text), target))
}

func TestAnalyzeRecipeTool(t *testing.T) {
	srv := newTestServer(t)

	var report struct {
		Name      string             `json:"name"`
		Nutrition map[string]float64 `json:"nutrition"`
		Cost      float64            `json:"cost"`
	}
	call(t, srv, "analyze_recipe", map[string]interface{}{"file": "chicken_rice.txt"}, &report)

	assert.Equal(t, "Chicken with Rice", report.Name)
	assert.Equal(t, 618.9, report.Nutrition["calories"])
	assert.Equal(t, 11.0, report.Cost)
}

func TestMealPlanTools(t *testing.T) {
	srv := newTestServer(t)

	var plan struct {
		Name    string             `json:"name"`
		Recipes []string           `json:"recipes"`
		Diets   []models.DietCheck `json:"diets"`
	}
	call(t, srv, "create_meal_plan", map[string]interface{}{
		"name":  "Day",
		"files": []string{"breakfast.txt", "salmon_salad.txt"},
	}, &plan)
	assert.Equal(t, "Day", plan.Name)
	assert.Equal(t, []string{"Healthy Breakfast", "Salmon Salad"}, plan.Recipes)
	assert.Len(t, plan.Diets, 6)

	var stored struct {
		ID        string             `json:"id"`
		Nutrition map[string]float64 `json:"nutrition"`
	}
	call(t, srv, "get_meal_plan", map[string]interface{}{"plan": "Day"}, &stored)
	assert.NotEmpty(t, stored.ID)
	assert.Greater(t, stored.Nutrition["calories"], 0.0)

	var names []string
	call(t, srv, "list_meal_plans", nil, &names)
	assert.Equal(t, []string{"Day"}, names)

	var list models.ShoppingList
	call(t, srv, "shopping_list", map[string]interface{}{"plan": "Day"}, &list)
	assert.Len(t, list.Items, 8)

	var check models.DietCheck
	call(t, srv, "check_meal_plan", map[string]interface{}{"plan": "Day", "diet": "martian"}, &check)
	assert.False(t, check.Met)
	assert.Equal(t, "Invalid dietary type", check.Reason)

	var failure map[string]string
	call(t, srv, "create_meal_plan", map[string]interface{}{"name": "Day", "files": []string{"breakfast.txt"}}, &failure)
	assert.Contains(t, failure["error"], models.ErrDuplicatePlan.Error())
}

func TestUnknownToolReturnsError(t *testing.T) {
	srv := newTestServer(t)

	var failure map[string]string
	call(t, srv, "launch_rocket", nil, &failure)

	assert.Equal(t, "unknown tool: launch_rocket", failure["error"])
}

func TestReferenceTools(t *testing.T) {
	srv := newTestServer(t)

	var diets []models.DietRequirement
	call(t, srv, "diet_requirements", nil, &diets)
	require.Len(t, diets, 6)
	assert.Equal(t, "child", diets[0].DietType)

	var builtins []builtinReport
	call(t, srv, "builtin_recipes", nil, &builtins)
	require.Len(t, builtins, 3)
	assert.True(t, strings.HasPrefix(builtins[0].Content, "Chicken with Rice\n"))

	var info struct {
		Server protocol.Implementation `json:"server"`
		Tools  []string                `json:"tools"`
	}
	call(t, srv, "server_info", nil, &info)
	assert.Equal(t, "recipe-calc", info.Server.Name)
	assert.Contains(t, info.Tools, "shopping_list")
}

func TestServeProcessesEachLine(t *testing.T) {
	srv := newTestServer(t)
	input := strings.Join([]string{
		`{"name":"list_recipes","arguments":{}}`,
		``,
		`not json`,
		`{"name":"analyze_recipe","arguments":{"file":"ghost.txt"}}`,
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, srv.Serve(context.Background(), strings.NewReader(input), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)

	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		var result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &result))
		require.Len(t, result.Content, 1)
		assert.Equal(t, "text", result.Content[0].Type)
		texts = append(texts, result.Content[0].Text)
	}

	assert.JSONEq(t, `["breakfast.txt","chicken_rice.txt","salmon_salad.txt"]`, texts[0])
	assert.Contains(t, texts[1], "invalid JSON")
	assert.Contains(t, texts[2], models.ErrSourceNotFound.Error())
}

func TestServeStopsOnCancelledContext(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := srv.Serve(ctx, strings.NewReader(`{"name":"list_recipes"}`), &out)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len())
}

func TestServeReturnsOnCancelWhileWaitingForInput(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	t.Cleanup(func() {
		inW.Close()
		outR.Close()
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, inR, outW) }()

	_, err := io.WriteString(inW, `{"name":"list_recipes","arguments":{}}`+"\n")
	require.NoError(t, err)
	reply, err := bufio.NewReader(outR).ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, reply, "chicken_rice.txt")

	// input stays open, so only cancellation can end Serve
	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
