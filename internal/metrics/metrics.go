package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/taskforge/todo-service/internal/health"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "todo",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "todo",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Domain metrics

	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todo",
		Name:      "registrations_total",
		Help:      "Total successful user registrations.",
	})

	LoginsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todo",
		Name:      "logins_total",
		Help:      "Total successful logins.",
	})

	TodosCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todo",
		Name:      "todos_created_total",
		Help:      "Total todos created.",
	})

	TodosDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todo",
		Name:      "todos_deleted_total",
		Help:      "Total todos deleted.",
	})

	// Digest metrics

	DigestEmailsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "todo",
		Name:      "digest_emails_total",
		Help:      "Total digest emails, by outcome.",
	}, []string{"outcome"})

	DigestCycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "todo",
		Name:      "digest_cycle_duration_seconds",
		Help:      "Time taken for one digest sweep.",
		Buckets:   prometheus.DefBuckets,
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		RegistrationsTotal,
		LoginsTotal,
		TodosCreatedTotal,
		TodosDeletedTotal,
		DigestEmailsTotal,
		DigestCycleDuration,
	)
}

// NewServer serves prometheus metrics plus the liveness/readiness probes on
// a separate port from the API.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.Result) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}
