package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameHTTPRateLimited      = "http_rate_limited_total"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Lifecycle metric names
const (
	MetricNameBoxesCreated       = "boxes_created_total"
	MetricNameBoxesRevealed      = "boxes_revealed_total"
	MetricNameBoxesClosed        = "boxes_closed_total"
	MetricNameRandomnessNotReady = "randomness_not_ready_total"
)

// Ledger metric names
const (
	MetricNameSalesVolume         = "box_sales_volume_total"
	MetricNameCommissionCollected = "commission_collected_total"
	MetricNamePaidOut             = "paid_out_total"
	MetricNameWithdrawn           = "withdrawn_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextHTTPRateLimited      = "Requests rejected by the per-client rate limit"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Lifecycle metric help text
const (
	HelpTextBoxesCreated       = "Total number of boxes purchased"
	HelpTextBoxesRevealed      = "Total number of boxes revealed, by tier"
	HelpTextBoxesClosed        = "Total number of boxes settled or refunded, by tier"
	HelpTextRandomnessNotReady = "Total number of reveal attempts made before randomness was final"
)

// Ledger metric help text
const (
	HelpTextSalesVolume         = "Total purchase value of all boxes"
	HelpTextCommissionCollected = "Total commission paid to the treasury"
	HelpTextPaidOut             = "Total paid from vaults to box owners, by tier"
	HelpTextWithdrawn           = "Total withdrawn, by source account kind"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelTier    = "tier"
	LabelExpired = "expired"
	LabelSource  = "source"
)

// Withdrawal source label values
const (
	SourceVault    = "vault"
	SourceTreasury = "treasury"
)

// UnmatchedRoute labels requests that did not match a route
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Unexpected event payload type"
)
