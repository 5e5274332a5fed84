package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"routeviz/internal/model"
)

var (
	// Registry is the dedicated Prometheus registry for the viewer
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	Nodes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "routeviz_nodes", Help: "Resolved route nodes per vehicle."},
		[]string{"vehicle"},
	)
	Edges = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "routeviz_edges", Help: "Drawn route edges per vehicle."},
		[]string{"vehicle"},
	)
	// DroppedNodes counts route positions whose key did not resolve
	DroppedNodes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "routeviz_dropped_nodes", Help: "Unresolved route positions per vehicle."},
		[]string{"vehicle"},
	)
	// FigureCache counts figure cache lookups by result (hit, miss, error)
	FigureCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "routeviz_figure_cache_total", Help: "Figure cache lookups by result."},
		[]string{"result"},
	)
	PlaybackSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "routeviz_playback_sessions", Help: "Open playback websocket sessions."},
	)
)

// RegisterDefault registers collectors to the dedicated registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Nodes)
		Registry.MustRegister(Edges)
		Registry.MustRegister(DroppedNodes)
		Registry.MustRegister(FigureCache)
		Registry.MustRegister(PlaybackSessions)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once

// ObserveDataset publishes per-vehicle geometry counts.
func ObserveDataset(summary []model.VehicleSummary) {
	for _, s := range summary {
		Nodes.WithLabelValues(s.Vehicle).Set(float64(s.Resolved))
		Edges.WithLabelValues(s.Vehicle).Set(float64(s.Edges))
		DroppedNodes.WithLabelValues(s.Vehicle).Set(float64(s.Dropped))
	}
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
