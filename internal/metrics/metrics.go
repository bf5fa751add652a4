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
	PointsApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsApplied,
			Help: HelpTextPointsApplied,
		},
	)

	RankChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRankChanges,
			Help: HelpTextRankChanges,
		},
	)

	SettlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSettlements,
			Help: HelpTextSettlements,
		},
		[]string{LabelResult},
	)

	PayoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePayouts,
			Help: HelpTextPayouts,
		},
	)

	PayoutAmountTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePayoutAmount,
			Help: HelpTextPayoutAmount,
		},
	)

	RewardPoolBalance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameRewardPoolBalance,
			Help: HelpTextRewardPoolBalance,
		},
	)

	PoolDeposits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePoolDeposits,
			Help: HelpTextPoolDeposits,
		},
		[]string{LabelSource},
	)

	RewardsPaid = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsPaid,
			Help: HelpTextRewardsPaid,
		},
		[]string{LabelKind},
	)

	CurrentPeriod = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCurrentPeriod,
			Help: HelpTextCurrentPeriod,
		},
	)
)
