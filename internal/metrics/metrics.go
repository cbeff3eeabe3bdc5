// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Authentication metrics.
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_login_attempts_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"}, // "success", "failure", "locked_out"
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_users_registered_total",
			Help: "Total number of registered accounts",
		},
	)

	// Domain metrics.
	LikesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_likes_total",
			Help: "Total number of likes recorded",
		},
	)

	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_notifications_created_total",
			Help: "Total number of notifications created",
		},
		[]string{"verb"},
	)

	AuthzDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_authz_denials_total",
			Help: "Total number of authorization denials",
		},
		[]string{"object", "action"},
	)
)

// RecordAPIRequest records one completed request.
func RecordAPIRequest(method, endpoint string, status int, started time.Time) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(started).Seconds())
}
