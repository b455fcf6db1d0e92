// Package metrics counts the document store activity with Prometheus
// collectors, and writes them in the node exporter textfile format.
package metrics

import (
	"time"

	"github.com/etnz/gplocal"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gplocal"

// Recorder implements gplocal.Recorder with Prometheus collectors held in
// its own registry.
type Recorder struct {
	registry *prometheus.Registry

	loads       *prometheus.CounterVec
	loadSeconds prometheus.Histogram
	saves       *prometheus.CounterVec
	saveSeconds prometheus.Histogram
	imports     *prometheus.CounterVec
}

var _ gplocal.Recorder = (*Recorder)(nil)

// New returns a Recorder with all its collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_loads_total",
			Help:      "Number of document loads, by result (ok, absent, corrupt, error).",
		}, []string{"result"}),
		loadSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_load_seconds",
			Help:      "Duration of document loads.",
			Buckets:   prometheus.DefBuckets,
		}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_saves_total",
			Help:      "Number of document saves, by outcome (ok, error).",
		}, []string{"outcome"}),
		saveSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_save_seconds",
			Help:      "Duration of document saves.",
			Buckets:   prometheus.DefBuckets,
		}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Number of document imports, by outcome (ok, error).",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(r.loads, r.loadSeconds, r.saves, r.saveSeconds, r.imports)
	return r
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) DocumentLoaded(result gplocal.LoadResult, elapsed time.Duration) {
	r.loads.WithLabelValues(string(result)).Inc()
	r.loadSeconds.Observe(elapsed.Seconds())
}

func (r *Recorder) DocumentSaved(err error, elapsed time.Duration) {
	r.saves.WithLabelValues(outcome(err)).Inc()
	r.saveSeconds.Observe(elapsed.Seconds())
}

func (r *Recorder) DocumentImported(err error) {
	r.imports.WithLabelValues(outcome(err)).Inc()
}

// WriteTextfile writes the current values to path, in the text format read by
// the node exporter textfile collector. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
