package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total number of orders created",
		},
	)

	statusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "orders",
			Name:      "status_transitions_total",
			Help:      "Total number of order status transitions by target status",
		},
		[]string{"status"},
	)

	couponsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "coupons",
			Name:      "apply_total",
			Help:      "Total number of coupon apply attempts by result",
		},
		[]string{"result"},
	)
)

var (
	eventsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "kafka_consumer",
			Name:      "events_processed_total",
			Help:      "Total number of successfully processed checkout events",
		},
	)

	eventsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "kafka_consumer",
			Name:      "events_failed_total",
			Help:      "Total number of failed checkout event processing attempts",
		},
	)

	eventsDLQ = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "kafka_consumer",
			Name:      "events_dlq_total",
			Help:      "Total number of checkout events written to DLQ",
		},
	)

	commitErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	eventProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "kafka_consumer",
			Name:      "event_processing_duration_seconds",
			Help:      "Histogram of checkout event processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
