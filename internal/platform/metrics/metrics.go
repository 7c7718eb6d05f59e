package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "manager_request_events_total",
			Help: "Request events received from the backend, by source",
		},
		[]string{"source"},
	)

	RequestEventsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "manager_request_events_rejected_total",
			Help: "Request events that could not be decoded, by source",
		},
		[]string{"source"},
	)

	AcknowledgementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "manager_acknowledgements_total",
			Help: "Acknowledgement calls forwarded to the backend, by outcome",
		},
		[]string{"outcome"},
	)

	ZoneAssignmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "manager_zone_assignments_total",
			Help: "Waiter zone reassignments forwarded to the backend, by outcome",
		},
		[]string{"outcome"},
	)

	ActiveRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "manager_active_requests",
			Help: "Unhandled requests currently on the board",
		},
	)

	DashboardClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "manager_dashboard_clients",
			Help: "Browsers connected to the live dashboard stream",
		},
	)

	UpstreamConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "manager_upstream_connected",
			Help: "1 while the backend request-events socket is connected",
		},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "manager_backend_request_duration_seconds",
			Help:    "Duration of REST calls to the backend",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Init registers all collectors with the default registry.
func Init() {
	prometheus.MustRegister(
		RequestEventsTotal,
		RequestEventsRejectedTotal,
		AcknowledgementsTotal,
		ZoneAssignmentsTotal,
		ActiveRequests,
		DashboardClients,
		UpstreamConnected,
		BackendRequestDuration,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Outcome labels a call result.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
