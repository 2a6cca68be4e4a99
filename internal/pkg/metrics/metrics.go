// Package metrics declares the prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courierhub_orders_created_total",
		Help: "Total number of orders created, by creation path.",
	},
		[]string{"path"},
	)

	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courierhub_order_transitions_total",
		Help: "Total number of order status changes, by target status.",
	},
		[]string{"status"},
	)

	NotificationsPersistedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courierhub_notifications_persisted_total",
		Help: "Total number of notification records written.",
	})

	PushDeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courierhub_push_deliveries_total",
		Help: "Total number of push attempts, by outcome.",
	},
		[]string{"outcome"},
	)

	RealtimeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "courierhub_realtime_connections",
		Help: "Current number of live websocket connections.",
	})

	RealtimeEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courierhub_realtime_events_total",
		Help: "Total number of realtime events published, by kind.",
	},
		[]string{"kind"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courierhub_operation_errors_total",
		Help: "Total number of errors swallowed after a successful commit, by operation.",
	},
		[]string{"operation"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "courierhub_http_request_duration_seconds",
		Help:    "Duration of HTTP requests, by route and status code.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "route", "code"},
	)

	JobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courierhub_job_runs_total",
		Help: "Total number of scheduled job runs, by job and outcome.",
	},
		[]string{"job", "outcome"},
	)
)
