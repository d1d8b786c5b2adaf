package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Input errors
	ErrMsgInvalidInput    = "invalid input"
	ErrMsgUserIDRequired  = "user ID is required"
	ErrMsgInvalidSkill    = "invalid skill level"
	ErrMsgRecipeNotFound  = "recipe not found"
	ErrMsgFavoriteMissing = "favorite not found"

	// Collaborator errors
	ErrMsgGenerationFailed = "failed to generate recipes"

	// Storage errors
	ErrMsgStoreUnavailable = "store unavailable"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidInput     = errors.New(ErrMsgInvalidInput)
	ErrUserIDRequired   = errors.New(ErrMsgUserIDRequired)
	ErrInvalidSkill     = errors.New(ErrMsgInvalidSkill)
	ErrRecipeNotFound   = errors.New(ErrMsgRecipeNotFound)
	ErrFavoriteNotFound = errors.New(ErrMsgFavoriteMissing)

	ErrGenerationFailed = errors.New(ErrMsgGenerationFailed)

	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)
)
