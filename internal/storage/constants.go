package storage

// Persisted value names, one per user. They match the keys the mobile client writes.
const (
	KeyRecipeHistory     = "recipeHistory"
	KeyUserMetrics       = "userMetrics"
	KeyHistoricalMetrics = "historicalMetrics"
	KeyCompletedRecipes  = "completedRecipes"
)

// UsersPrefix namespaces every per-user key
const UsersPrefix = "users"

// Error Messages
const (
	ErrMsgLoadFailed   = "failed to load %s: %w"
	ErrMsgEncodeFailed = "failed to encode %s: %w"
	ErrMsgSaveFailed   = "failed to save usage state: %w"
	ErrMsgListFailed   = "failed to list users: %w"
)

// Log Messages
const (
	LogMsgCorruptValue = "Discarding unreadable stored value"
	LogMsgUsageSaved   = "Usage state saved"
)
