package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Planner metric names
const (
	MetricNamePlansTotal          = "plans_computed_total"
	MetricNamePlanDuration        = "plan_duration_seconds"
	MetricNamePlanCacheHits       = "plan_cache_hits_total"
	MetricNamePlanCacheMisses     = "plan_cache_misses_total"
	MetricNamePlanItemsResolved   = "plan_items_resolved"
	MetricNameBooksSaved          = "recipe_books_saved_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Planner metric help text
const (
	HelpTextPlansTotal        = "Total number of plan resolutions by outcome"
	HelpTextPlanDuration      = "Plan resolution latency in seconds"
	HelpTextPlanCacheHits     = "Total number of plan cache hits"
	HelpTextPlanCacheMisses   = "Total number of plan cache misses"
	HelpTextPlanItemsResolved = "Number of distinct items touched per plan"
	HelpTextBooksSaved        = "Total number of recipe books saved"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelOutcome = "outcome"
)

// Plan outcome label values
const (
	OutcomeOK              = "ok"
	OutcomeCycle           = "cycle"
	OutcomeInvalidQuantity = "invalid_quantity"
	OutcomeInvalidInput    = "invalid_input"
)

// HTTPLatencyBuckets are the histogram buckets for HTTP request latency.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// PlanLatencyBuckets are the histogram buckets for plan resolution latency.
// Resolution is linear in graph size and books are human-authored, so the
// buckets skew small.
var PlanLatencyBuckets = []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05, 0.1}
