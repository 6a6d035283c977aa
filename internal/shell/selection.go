package shell

import (
	"strconv"
	"strings"

	"recipe-nutrition/internal/models"
)

// SelectionError is an InvalidSelection with the message shown to the user.
type SelectionError struct {
	Input   string
	Message string
}

func (e *SelectionError) Error() string {
	return models.ErrInvalidSelection.Error() + ": " + e.Message
}

func (e *SelectionError) Unwrap() error {
	return models.ErrInvalidSelection
}

// parseSelection reads a 1-based menu index no greater than max.
func parseSelection(input string, max int) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, &SelectionError{Input: input, Message: "Please enter a valid number."}
	}
	if idx < 1 || idx > max {
		return 0, &SelectionError{Input: input, Message: "Invalid selection."}
	}
	return idx, nil
}

// parseSelections reads a comma separated list of 1-based indexes. Tokens
// that are not plain digits are dropped; numbers outside 1..max are returned
// as ignored.
func parseSelections(input string, max int) (selected, ignored []int, err error) {
	var numbers []int
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if !isDigits(token) {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}

	if len(numbers) == 0 {
		return nil, nil, &SelectionError{Input: input, Message: "No valid selections made."}
	}

	for _, n := range numbers {
		if n >= 1 && n <= max {
			selected = append(selected, n)
		} else {
			ignored = append(ignored, n)
		}
	}

	if len(selected) == 0 {
		return nil, ignored, &SelectionError{Input: input, Message: "No valid recipes selected."}
	}
	return selected, ignored, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
