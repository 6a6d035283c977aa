// Package recipes reads recipe sources: one plain-text file per recipe whose
// first non-blank line is the recipe name, followed by "ingredient: quantity"
// lines.
package recipes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"recipe-nutrition/internal/models"
	"recipe-nutrition/internal/nutrition"
)

const separator = ":"

type Parser struct {
	calc   *nutrition.Calculator
	logger *zap.Logger
}

func NewParser(calc *nutrition.Calculator, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{calc: calc, logger: logger}
}

// ParseFile opens, parses and closes the recipe source at path.
func (p *Parser) ParseFile(path string) (*models.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrSourceNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("failed to open recipe source %s: %w", path, err)
	}
	defer f.Close()

	recipe, err := p.Parse(filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	recipe.Source = filepath.Base(path)
	return recipe, nil
}

// Parse reads a recipe source. Malformed lines and invalid quantities are
// logged and skipped; only a source with no content at all fails.
func (p *Parser) Parse(source string, r io.Reader) (*models.Recipe, error) {
	log := p.logger.With(zap.String("file", source))

	var (
		name        string
		ingredients = models.Ingredients{}
		lineNo      int
	)

	// no line length limit
	reader := bufio.NewReader(r)
	for eof := false; !eof; {
		raw, readErr := reader.ReadString('\n')
		switch {
		case errors.Is(readErr, io.EOF):
			eof = true
			if raw == "" {
				continue
			}
		case readErr != nil:
			return nil, fmt.Errorf("failed to read recipe source %s: %w", source, readErr)
		}

		lineNo++
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if name == "" {
			name = line
			continue
		}

		ingredient, quantity, err := parseIngredientLine(line)
		switch {
		case errors.Is(err, models.ErrUnparsableLine):
			log.Warn("Skipping unparsable line", zap.Int("line", lineNo), zap.String("text", line))
			continue
		case err != nil:
			log.Warn("Invalid amount for ingredient",
				zap.Int("line", lineNo),
				zap.String("ingredient", ingredient),
				zap.Error(err))
			continue
		}

		ingredients.Set(ingredient, quantity)
	}

	if name == "" {
		return nil, fmt.Errorf("%w: %s", models.ErrEmptySource, source)
	}

	return p.calc.NewRecipe(name, ingredients), nil
}

func parseIngredientLine(line string) (string, float64, error) {
	parts := strings.Split(line, separator)
	if len(parts) != 2 {
		return "", 0, models.ErrUnparsableLine
	}

	ingredient := strings.TrimSpace(parts[0])
	if ingredient == "" {
		return "", 0, models.ErrUnparsableLine
	}

	raw := strings.TrimSpace(parts[1])
	quantity, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity < 0 {
		return ingredient, 0, fmt.Errorf("%w: %q", models.ErrInvalidQuantity, raw)
	}

	return ingredient, quantity, nil
}

// Format renders a recipe source that Parse reads back to the same name and
// ingredients.
func Format(name string, ingredients models.Ingredients) string {
	var b strings.Builder
	b.WriteString(name)
	for _, item := range ingredients {
		fmt.Fprintf(&b, "\n%s%s %s", item.Name, separator, strconv.FormatFloat(item.Quantity, 'f', -1, 64))
	}
	return b.String()
}
