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
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Planner Metrics
var (
	PlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlansTotal,
			Help: HelpTextPlansTotal,
		},
		[]string{LabelOutcome},
	)

	PlanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePlanDuration,
			Help:    HelpTextPlanDuration,
			Buckets: PlanLatencyBuckets,
		},
	)

	PlanCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlanCacheHits,
			Help: HelpTextPlanCacheHits,
		},
	)

	PlanCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlanCacheMisses,
			Help: HelpTextPlanCacheMisses,
		},
	)

	PlanItemsResolved = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePlanItemsResolved,
			Help:    HelpTextPlanItemsResolved,
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)
)

// Business Metrics
var (
	BooksSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBooksSaved,
			Help: HelpTextBooksSaved,
		},
	)
)
