package stats

// DefaultArchiveCap is the number of archived weekly snapshots kept per user
const DefaultArchiveCap = 12

// Error messages
const (
	ErrMsgNegativeCount       = "generation count must not be negative"
	ErrMsgLoadMetricsFailed   = "failed to load metrics: %w"
	ErrMsgLoadCompletedFailed = "failed to load completed recipes: %w"
	ErrMsgLoadHistoryFailed   = "failed to load history: %w"
	ErrMsgSaveMetricsFailed   = "failed to save metrics: %w"
)

// Log messages
const (
	LogMsgInitializedMetrics   = "Initialized metrics snapshot"
	LogMsgRolledOver           = "Weekly metrics rolled over"
	LogMsgRecordedGeneration   = "Recorded recipe generation"
	LogMsgRecordedCompletion   = "Recorded recipe completion"
	LogMsgDuplicateCompletion  = "Recipe already completed, ignoring"
	LogMsgSyntheticEntry       = "Completed recipe not in history, adding entry"
	LogMsgMetricsReset         = "Metrics reset"
	LogMsgFailedToLoadMetrics  = "Failed to load metrics"
	LogMsgFailedToSaveMetrics  = "Failed to save metrics"
	LogMsgFailedToLoadHistory  = "Failed to load history"
	LogMsgFailedToLoadComplete = "Failed to load completed recipes"
)

// Metric operation labels
const (
	opLoadMetrics   = "load_metrics"
	opLoadCompleted = "load_completed"
	opLoadHistory   = "load_history"
	opSaveMetrics   = "save_metrics"

	skillLabelUnknown = "unknown"
)
