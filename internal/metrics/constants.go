package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// RouteLabelUnmatched is the shared path label for requests that hit no route.
const RouteLabelUnmatched = "unmatched"

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameCandyGranted    = "candy_granted_total"
	MetricNameCandyConsumed   = "candy_consumed_total"
	MetricNameDrawsPerformed  = "draws_performed_total"
	MetricNameJackpotsWon     = "jackpots_won_total"
	MetricNamePityTriggered   = "pity_triggered_total"
	MetricNameExchanges       = "exchanges_completed_total"
	MetricNameItemsExchanged  = "items_exchanged_total"
	MetricNameGrantRejections = "grant_rejections_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextCandyGranted    = "Total number of candy units granted"
	HelpTextCandyConsumed   = "Total number of candy units consumed by draws"
	HelpTextDrawsPerformed  = "Total number of gacha draws"
	HelpTextJackpotsWon     = "Total number of jackpots won"
	HelpTextPityTriggered   = "Total number of draws decided by the pity counter"
	HelpTextExchanges       = "Total number of completed exchanges"
	HelpTextItemsExchanged  = "Total number of item instances spent in exchanges"
	HelpTextGrantRejections = "Total number of rejected grant attempts"
)

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelTier   = "tier"
	LabelItem   = "item"
	LabelReason = "reason"
)

// Grant rejection reasons
const (
	RejectionReasonSelfGrant  = "self_grant"
	RejectionReasonDuplicate  = "duplicate"
	RejectionReasonDailyCap   = "daily_cap"
	RejectionReasonMonthlyCap = "monthly_cap"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
