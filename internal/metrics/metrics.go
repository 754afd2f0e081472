package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the bootstrap metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	phaseDuration *prometheus.HistogramVec
	runs          *prometheus.CounterVec
	registrations prometheus.Gauge
	modules       *prometheus.CounterVec
	regions       prometheus.Gauge
}

// New creates a recorder with a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		phaseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bootkit_bootstrap_phase_duration_seconds",
				Help:    "Duration of each bootstrap phase in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"phase", "status"},
		),
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bootkit_bootstrap_runs_total",
				Help: "Total number of bootstrap runs by result",
			},
			[]string{"result"},
		),
		registrations: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bootkit_container_registrations",
				Help: "Number of registrations in the container after bootstrap",
			},
		),
		modules: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bootkit_modules_loaded_total",
				Help: "Total number of module initializations by result",
			},
			[]string{"result"},
		),
		regions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bootkit_regions",
				Help: "Number of regions registered with the region manager",
			},
		),
	}
}

// ObservePhase records the duration of one bootstrap phase.
func (r *Recorder) ObservePhase(phase, status string, d time.Duration) {
	r.phaseDuration.WithLabelValues(phase, status).Observe(d.Seconds())
}

// RunFinished counts a bootstrap run.
func (r *Recorder) RunFinished(err error) {
	r.runs.WithLabelValues(result(err)).Inc()
}

// SetRegistrations records the container size.
func (r *Recorder) SetRegistrations(n int) {
	r.registrations.Set(float64(n))
}

// ModuleLoaded counts a module initialization.
func (r *Recorder) ModuleLoaded(err error) {
	r.modules.WithLabelValues(result(err)).Inc()
}

// SetRegions records the number of regions.
func (r *Recorder) SetRegions(n int) {
	r.regions.Set(float64(n))
}

// Registry returns the registry the metrics live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's metrics in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
