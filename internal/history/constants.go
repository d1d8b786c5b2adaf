package history

// DefaultCap is the maximum number of entries kept in a history log
const DefaultCap = 100

// Error Messages
const (
	ErrMsgLoadHistoryFailed = "failed to load history: %w"
	ErrMsgSaveHistoryFailed = "failed to save history: %w"
)

// Log Messages
const (
	LogMsgAppended            = "Recipes appended to history"
	LogMsgTrimmed             = "History trimmed to cap"
	LogMsgIndexOutOfRange     = "History index out of range, ignoring removal"
	LogMsgEntryNotFound       = "History entry not found, ignoring removal"
	LogMsgEntryRemoved        = "History entry removed"
	LogMsgCleared             = "History cleared"
	LogMsgBackfilledWeekIDs   = "Backfilled week ids on read"
	LogMsgFailedToLoadHistory = "Failed to load history"
	LogMsgFailedToSaveHistory = "Failed to save history"
)
