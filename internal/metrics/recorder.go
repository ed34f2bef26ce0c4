// Package metrics records parse activity for the stats endpoint and Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/dgallion1/annoview/internal/webanno"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is safe for concurrent use. A nil *Recorder ignores all calls.
type Recorder struct {
	stats    *ParseStats
	registry *prometheus.Registry

	parses      *prometheus.CounterVec
	duration    prometheus.Histogram
	sections    prometheus.Counter
	annotations prometheus.Counter
	cache       *prometheus.CounterVec
}

func NewRecorder(window time.Duration) *Recorder {
	r := &Recorder{
		stats:    NewParseStats(window),
		registry: prometheus.NewRegistry(),
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "annoview",
			Name:      "parses_total",
			Help:      "Documents parsed, by source and result.",
		}, []string{"source", "result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "annoview",
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing a document.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		sections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "annoview",
			Name:      "sections_total",
			Help:      "Sections produced by successful parses.",
		}),
		annotations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "annoview",
			Name:      "annotations_total",
			Help:      "Annotations produced by successful parses.",
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "annoview",
			Name:      "library_cache_lookups_total",
			Help:      "Library cache lookups, by outcome.",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(r.parses, r.duration, r.sections, r.annotations, r.cache, r.stats.Collector())
	return r
}

// ObserveParse records one parse of a document from source ("upload" or "library").
func (r *Recorder) ObserveParse(source string, d time.Duration, doc *webanno.Document, err error) {
	if r == nil {
		return
	}
	var sections, annotations int
	if doc != nil {
		sections, annotations = len(doc.Sections), doc.AnnotationCount()
	}
	r.stats.Record(source, d, sections, annotations, err != nil)
	r.duration.Observe(d.Seconds())
	if err != nil {
		r.parses.WithLabelValues(source, "error").Inc()
		return
	}
	r.parses.WithLabelValues(source, "ok").Inc()
	r.sections.Add(float64(sections))
	r.annotations.Add(float64(annotations))
}

// ObserveCache records a library cache lookup.
func (r *Recorder) ObserveCache(hit bool) {
	if r == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cache.WithLabelValues(outcome).Inc()
}

// Snapshot returns per-source parse statistics.
func (r *Recorder) Snapshot() StatsSnapshot {
	if r == nil {
		return StatsSnapshot{}
	}
	return r.stats.Snapshot()
}

// Handler serves the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
