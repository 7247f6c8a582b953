// Package metrics exposes Prometheus collectors for the tracker.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the tracker.
type Metrics struct {
	ComputeDur   prometheus.Histogram
	BundlesTotal prometheus.Counter
	FetchErrors  *prometheus.CounterVec // labels: symbol
	SignalsTotal *prometheus.CounterVec // labels: kind
	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
	ReportsSent  prometheus.Counter
}

// New creates the metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ComputeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracker_indicator_compute_duration_seconds",
			Help:    "Time spent computing one indicator bundle",
			Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		BundlesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_bundles_total",
			Help: "Indicator bundles computed",
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_fetch_errors_total",
			Help: "Bar fetch failures",
		}, []string{"symbol"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_signals_total",
			Help: "Overall signals produced",
		}, []string{"kind"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_bar_cache_hits_total",
			Help: "Bar cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_bar_cache_misses_total",
			Help: "Bar cache misses",
		}),
		ReportsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_reports_sent_total",
			Help: "Telegram reports delivered",
		}),
	}
	reg.MustRegister(
		m.ComputeDur, m.BundlesTotal, m.FetchErrors, m.SignalsTotal,
		m.CacheHits, m.CacheMisses, m.ReportsSent,
	)
	return m
}

// Serve exposes g on /metrics at addr in a background goroutine.
func Serve(addr string, g prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
