package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameRateLimited          = "http_requests_rate_limited_total"
)

// Business metric names
const (
	MetricNameRecipesGenerated     = "recipes_generated_total"
	MetricNameRecipesCompleted     = "recipes_completed_total"
	MetricNameDuplicateCompletions = "duplicate_completions_total"
	MetricNameMetricsRollovers     = "metrics_rollovers_total"
	MetricNameHistoryTrimmed       = "history_entries_trimmed_total"
	MetricNameGenerationFailures   = "generation_failures_total"
	MetricNameGenerationDuration   = "generation_duration_seconds"
)

// Infrastructure metric names
const (
	MetricNameStoreErrors   = "store_errors_total"
	MetricNameJobsProcessed = "worker_jobs_processed_total"
	MetricNameActiveUsers   = "active_users"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextRateLimited          = "Total number of requests rejected by the rate limiter"
)

// Business metric help text
const (
	HelpTextRecipesGenerated     = "Total number of recipes generated"
	HelpTextRecipesCompleted     = "Total number of first-time recipe completions"
	HelpTextDuplicateCompletions = "Total number of completions ignored because the recipe was already completed"
	HelpTextMetricsRollovers     = "Total number of weekly metrics rollovers"
	HelpTextHistoryTrimmed       = "Total number of history entries dropped by the history cap"
	HelpTextGenerationFailures   = "Total number of failed recipe generation calls"
	HelpTextGenerationDuration   = "Recipe generation latency in seconds"
)

// Infrastructure metric help text
const (
	HelpTextStoreErrors   = "Total number of failed store operations"
	HelpTextJobsProcessed = "Total number of background jobs processed"
	HelpTextActiveUsers   = "Number of users seen recently by the API"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelSkill     = "skill"
	LabelArchived  = "archived"
	LabelOperation = "operation"
	LabelJob       = "job"
)

// Label values
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// GenerationLatencyBuckets cover the multi-second AI provider calls
var GenerationLatencyBuckets = []float64{0.5, 1, 2, 5, 10, 20, 30, 60}
