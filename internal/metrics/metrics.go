package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "competition_registrations_total",
			Help: "Competition registrations by kind",
		},
		[]string{"kind"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notifications stored, by outcome",
		},
		[]string{"outcome"},
	)

	StreamConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notification_stream_connections",
			Help: "Open notification websocket connections",
		},
	)

	SeatsAssigned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seat_allocation_assigned_teams",
			Help:    "Teams seated per allocator run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache lookups by result",
		},
		[]string{"result"},
	)
)
