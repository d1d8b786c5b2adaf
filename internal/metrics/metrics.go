package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRateLimited,
			Help: HelpTextRateLimited,
		},
	)
)

// Business Metrics
var (
	RecipesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecipesGenerated,
			Help: HelpTextRecipesGenerated,
		},
	)

	RecipesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipesCompleted,
			Help: HelpTextRecipesCompleted,
		},
		[]string{LabelSkill},
	)

	DuplicateCompletions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDuplicateCompletions,
			Help: HelpTextDuplicateCompletions,
		},
	)

	MetricsRollovers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMetricsRollovers,
			Help: HelpTextMetricsRollovers,
		},
		[]string{LabelArchived},
	)

	HistoryEntriesTrimmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameHistoryTrimmed,
			Help: HelpTextHistoryTrimmed,
		},
	)

	GenerationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGenerationFailures,
			Help: HelpTextGenerationFailures,
		},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameGenerationDuration,
			Help:    HelpTextGenerationDuration,
			Buckets: GenerationLatencyBuckets,
		},
	)
)

// Infrastructure Metrics
var (
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStoreErrors,
			Help: HelpTextStoreErrors,
		},
		[]string{LabelOperation},
	)

	JobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobsProcessed,
			Help: HelpTextJobsProcessed,
		},
		[]string{LabelJob, LabelStatus},
	)

	ActiveUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveUsers,
			Help: HelpTextActiveUsers,
		},
	)
)
