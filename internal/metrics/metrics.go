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

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRateLimited,
			Help: HelpTextHTTPRateLimited,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Lifecycle Metrics
var (
	BoxesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBoxesCreated,
			Help: HelpTextBoxesCreated,
		},
	)

	BoxesRevealed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBoxesRevealed,
			Help: HelpTextBoxesRevealed,
		},
		[]string{LabelTier, LabelExpired},
	)

	BoxesClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBoxesClosed,
			Help: HelpTextBoxesClosed,
		},
		[]string{LabelTier},
	)

	RandomnessNotReady = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRandomnessNotReady,
			Help: HelpTextRandomnessNotReady,
		},
	)
)

// Ledger Metrics
var (
	SalesVolume = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSalesVolume,
			Help: HelpTextSalesVolume,
		},
	)

	CommissionCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCommissionCollected,
			Help: HelpTextCommissionCollected,
		},
	)

	PaidOut = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePaidOut,
			Help: HelpTextPaidOut,
		},
		[]string{LabelTier},
	)

	Withdrawn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWithdrawn,
			Help: HelpTextWithdrawn,
		},
		[]string{LabelSource},
	)
)
