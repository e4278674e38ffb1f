// Package metrics exposes Prometheus counters for the dashboard service.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	glucoseReadingsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "glucose_readings_added_total",
			Help: "Total number of glucose readings entered by patients",
		},
	)

	glucoseReadingsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "glucose_readings_discarded_total",
			Help: "Total number of non-numeric glucose entries that were dropped",
		},
	)

	weekNavigations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glucose_week_navigations_total",
			Help: "Total number of chart week navigations",
		},
		[]string{"direction", "moved"},
	)

	medicationsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medications_added_total",
			Help: "Total number of medications added",
		},
		[]string{"category"},
	)

	validationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Total number of rejected form submissions",
		},
		[]string{"form"},
	)
)

// Middleware records request count and latency per route.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		path := c.Path()
		if path == "" {
			path = "unknown"
		}
		status := strconv.Itoa(c.Response().Status)
		httpRequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
		return nil
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

func RecordReadingAdded() {
	glucoseReadingsAdded.Inc()
}

func RecordReadingDiscarded() {
	glucoseReadingsDiscarded.Inc()
}

func RecordWeekNavigation(direction string, moved bool) {
	weekNavigations.WithLabelValues(direction, strconv.FormatBool(moved)).Inc()
}

func RecordMedicationAdded(category string) {
	medicationsAdded.WithLabelValues(category).Inc()
}

func RecordValidationFailure(form string) {
	validationFailures.WithLabelValues(form).Inc()
}
