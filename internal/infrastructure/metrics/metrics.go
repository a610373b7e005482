package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Imagine-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "imagine_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram; jobs run for minutes, not milliseconds
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "imagine_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"method", "endpoint"},
	)

	// Interactions sent to the Discord REST API
	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "imagine_api",
			Name:      "interactions_total",
			Help:      "Total Midjourney interactions sent",
		},
		[]string{"action", "status"},
	)

	// End-to-end job duration, interaction to finished message
	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "imagine_api",
			Name:      "job_duration_seconds",
			Help:      "Midjourney job duration in seconds",
			Buckets:   []float64{5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"action", "outcome"},
	)

	// Jobs currently waiting for a result
	JobsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jan",
			Subsystem: "imagine_api",
			Name:      "jobs_in_flight",
			Help:      "Midjourney jobs waiting for completion",
		},
	)

	// Gateway dispatch events
	GatewayEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "imagine_api",
			Name:      "gateway_events_total",
			Help:      "Discord gateway dispatch events received",
		},
		[]string{"event"},
	)

	// Gateway connection state
	GatewayConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jan",
			Subsystem: "imagine_api",
			Name:      "gateway_connected",
			Help:      "1 when the Discord gateway session is ready",
		},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordInteraction records an interaction POST
func RecordInteraction(action, status string) {
	InteractionsTotal.WithLabelValues(action, status).Inc()
}

// RecordJob records a finished job
func RecordJob(action, outcome string, durationSec float64) {
	JobDuration.WithLabelValues(action, outcome).Observe(durationSec)
}

// RecordGatewayEvent records a gateway dispatch
func RecordGatewayEvent(event string) {
	GatewayEventsTotal.WithLabelValues(event).Inc()
}

// SetGatewayConnected flips the gateway gauge
func SetGatewayConnected(connected bool) {
	if connected {
		GatewayConnected.Set(1)
		return
	}
	GatewayConnected.Set(0)
}
