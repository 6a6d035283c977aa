package models

import "errors"

var (
	// Recipe source errors
	ErrSourceNotFound    = errors.New("recipe source not found")
	ErrEmptySource       = errors.New("recipe source is empty")
	ErrUnparsableLine    = errors.New("unparsable ingredient line")
	ErrInvalidQuantity   = errors.New("invalid ingredient quantity")
	ErrUnknownIngredient = errors.New("no nutrition data for ingredient")

	// Session errors
	ErrInvalidSelection = errors.New("invalid selection")
	ErrEmptyPlanName    = errors.New("meal plan name cannot be empty")
	ErrDuplicatePlan    = errors.New("meal plan already exists")
	ErrPlanNotFound     = errors.New("meal plan not found")
	ErrNoRecipesLoaded  = errors.New("no valid recipes could be loaded")
)
