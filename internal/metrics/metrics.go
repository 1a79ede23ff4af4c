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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	CandyGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCandyGranted,
			Help: HelpTextCandyGranted,
		},
		[]string{LabelTier},
	)

	CandyConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCandyConsumed,
			Help: HelpTextCandyConsumed,
		},
	)

	DrawsPerformed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDrawsPerformed,
			Help: HelpTextDrawsPerformed,
		},
		[]string{LabelTier},
	)

	JackpotsWon = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJackpotsWon,
			Help: HelpTextJackpotsWon,
		},
	)

	PityTriggered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePityTriggered,
			Help: HelpTextPityTriggered,
		},
	)

	ExchangesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExchanges,
			Help: HelpTextExchanges,
		},
		[]string{LabelItem},
	)

	ItemsExchanged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsExchanged,
			Help: HelpTextItemsExchanged,
		},
		[]string{LabelItem},
	)

	GrantRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGrantRejections,
			Help: HelpTextGrantRejections,
		},
		[]string{LabelReason},
	)
)
