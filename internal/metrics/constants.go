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
	MetricNamePointsApplied     = "points_applied_total"
	MetricNameRankChanges       = "rank_changes_total"
	MetricNameSettlements       = "settlements_total"
	MetricNamePayouts           = "payouts_total"
	MetricNamePayoutAmount      = "payout_amount_total"
	MetricNameRewardPoolBalance = "reward_pool_balance"
	MetricNamePoolDeposits      = "pool_deposits_total"
	MetricNameRewardsPaid       = "rewards_paid_total"
	MetricNameCurrentPeriod     = "current_period"
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
	HelpTextPointsApplied     = "Total points applied to player scores"
	HelpTextRankChanges       = "Total number of leaderboard position changes"
	HelpTextSettlements       = "Total number of settled periods"
	HelpTextPayouts           = "Total number of non-zero payouts credited"
	HelpTextPayoutAmount      = "Total value paid out of the reward pool"
	HelpTextRewardPoolBalance = "Current reward pool balance"
	HelpTextPoolDeposits      = "Total value deposited into the reward pool"
	HelpTextRewardsPaid       = "Total quest and battle rewards paid"
	HelpTextCurrentPeriod     = "Index of the last period the season rolled over to"
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
	LabelResult = "result"
	LabelSource = "source"
	LabelKind   = "kind"
)

// Label values
const (
	ResultScheduled = "scheduled"
	ResultForced    = "forced"

	KindQuest  = "quest"
	KindBattle = "battle"

	// PathUnmatched labels requests that matched no route
	PathUnmatched = "unmatched"
)

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
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded for metrics"
	LogMsgMetricsRecorded         = "Metrics recorded for event"
)
