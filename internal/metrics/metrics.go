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
	RewardsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsGranted,
			Help: HelpTextRewardsGranted,
		},
		[]string{LabelReason},
	)

	RewardsReplayed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRewardsReplayed,
			Help: HelpTextRewardsReplayed,
		},
	)

	XPGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameXPGranted,
			Help: HelpTextXPGranted,
		},
	)

	CoinsCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsCredited,
			Help: HelpTextCoinsCredited,
		},
	)

	CoinsDebited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsDebited,
			Help: HelpTextCoinsDebited,
		},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	ItemsEquipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsEquipped,
			Help: HelpTextItemsEquipped,
		},
		[]string{LabelSlot},
	)

	ItemsAcquired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsAcquired,
			Help: HelpTextItemsAcquired,
		},
		[]string{LabelItem},
	)

	SelectionsPerformed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSelectionsPerformed,
			Help: HelpTextSelectionsPerformed,
		},
	)

	ConservationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameConservationFailures,
			Help: HelpTextConservationFailures,
		},
	)

	TxRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTxRetries,
			Help: HelpTextTxRetries,
		},
	)
)
