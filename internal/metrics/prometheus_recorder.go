package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg            *prom.Registry
	pages          *prom.CounterVec
	manifestLoad   prom.Histogram
	buildDuration  *prom.HistogramVec
	autotocRecords prom.Counter
}

// NewPrometheusRecorder constructs the metrics and registers them on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		pages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "booktoc",
			Name:      "pages_total",
			Help:      "Pages passed through the navigation hook, by result",
		}, []string{"result"}),
		manifestLoad: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "booktoc",
			Name:      "manifest_load_duration_seconds",
			Help:      "Time spent reading and parsing the TOC manifest",
			Buckets:   prom.DefBuckets,
		}),
		buildDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "booktoc",
			Name:      "build_duration_seconds",
			Help:      "Total build duration by outcome",
			Buckets:   prom.DefBuckets,
		}, []string{"outcome"}),
		autotocRecords: prom.NewCounter(prom.CounterOpts{
			Namespace: "booktoc",
			Name:      "autotoc_records_total",
			Help:      "Records emitted into drafted manifests",
		}),
	}
	reg.MustRegister(pr.pages, pr.manifestLoad, pr.buildDuration, pr.autotocRecords)
	return pr
}

func (p *PrometheusRecorder) IncPage(result PageResult) {
	if p == nil {
		return
	}
	p.pages.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveManifestLoad(d time.Duration) {
	if p == nil {
		return
	}
	p.manifestLoad.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuild(d time.Duration, outcome BuildOutcome) {
	if p == nil {
		return
	}
	p.buildDuration.WithLabelValues(string(outcome)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddAutotocRecords(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.autotocRecords.Add(float64(n))
}

// Registry exposes the registry the metrics live on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// WriteTextfile writes the current metrics in text exposition format,
// suitable for the node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
