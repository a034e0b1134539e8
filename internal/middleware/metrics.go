package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	leadStageMoves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_stage_moves_total",
			Help: "Total number of lead stage transitions",
		},
		[]string{"stage"},
	)

	followupSearches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_searches_total",
			Help: "Total number of lead search requests",
		},
	)
)

// Metrics records request counts and latency per route.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			httpRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// RecordStageMove counts a completed move into the given pipeline stage.
func RecordStageMove(stage string) {
	leadStageMoves.WithLabelValues(stage).Inc()
}

// RecordSearch counts a lead search request.
func RecordSearch() {
	followupSearches.Inc()
}
