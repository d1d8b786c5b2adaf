package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query and path parameter error messages
	ErrMsgInvalidIndex    = "Invalid history index"
	ErrMsgMissingUserID   = "Missing " + HeaderUserID + " header"
	ErrMsgUnknownCategory = "Unknown ingredient category"

	// Operation error messages
	ErrMsgGenerateFailed      = "Failed to generate recipes"
	ErrMsgCompleteFailed      = "Failed to record completion"
	ErrMsgGetHistoryFailed    = "Failed to retrieve history"
	ErrMsgDeleteHistoryFailed = "Failed to delete history entry"
	ErrMsgClearHistoryFailed  = "Failed to clear history"
	ErrMsgGetMetricsFailed    = "Failed to retrieve metrics"
	ErrMsgResetMetricsFailed  = "Failed to reset metrics"
	ErrMsgFavoritesFailed     = "Failed to access favorites"
)

// Success messages for API responses
const (
	MsgHistoryEntryRemoved = "History entry removed"
	MsgHistoryCleared      = "History cleared"
	MsgFavoriteRemoved     = "Favorite removed"
	MsgAlreadyCompleted    = "Recipe was already completed"
	MsgCompletionRecorded  = "Completion recorded"
)

// Log messages
const (
	LogMsgDecodeFailed       = "Failed to decode request"
	LogMsgRequestDecoded     = "Request decoded"
	LogMsgServiceError       = "Service call failed"
	LogMsgMetricsAfterAppend = "Recipes stored but generation count was not recorded"
	LogMsgReadinessFailed    = "Readiness check failed"
	LogMsgEncodeFailed       = "Failed to encode JSON response"
	LogMsgWriteFailed        = "Failed to write response buffer"
)

// HeaderUserID carries the opaque user partition key
const HeaderUserID = "X-User-ID"

// Health status values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgStoreFailed    = "store connection failed"
)
