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

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameRewardsGranted       = "rewards_granted_total"
	MetricNameRewardsReplayed      = "rewards_replayed_total"
	MetricNameXPGranted            = "xp_granted_total"
	MetricNameCoinsCredited        = "coins_credited_total"
	MetricNameCoinsDebited         = "coins_debited_total"
	MetricNameLevelUps             = "level_ups_total"
	MetricNameItemsEquipped        = "items_equipped_total"
	MetricNameItemsAcquired        = "items_acquired_total"
	MetricNameSelectionsPerformed  = "selections_performed_total"
	MetricNameConservationFailures = "ledger_conservation_failures_total"
	MetricNameTxRetries            = "store_tx_retries_total"
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

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextRewardsGranted       = "Total number of reward grants applied"
	HelpTextRewardsReplayed      = "Total number of grant requests replayed from a stored result"
	HelpTextXPGranted            = "Total experience points granted"
	HelpTextCoinsCredited        = "Total coins credited to ledger accounts"
	HelpTextCoinsDebited         = "Total coins debited from ledger accounts"
	HelpTextLevelUps             = "Total number of character level-ups"
	HelpTextItemsEquipped        = "Total number of items equipped"
	HelpTextItemsAcquired        = "Total number of items acquired"
	HelpTextSelectionsPerformed  = "Total number of random student selections"
	HelpTextConservationFailures = "Total number of ledger conservation check failures"
	HelpTextTxRetries            = "Total number of transaction retries after a transient store error"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelReason = "reason"
	LabelSlot   = "slot"
	LabelItem   = "item"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
