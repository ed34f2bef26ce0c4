package metrics

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

var latencyObjectives = map[float64]float64{0.5: 0.05, 0.95: 0.01, 0.99: 0.001}

// SourceSnapshot aggregates parses from one source ("upload" or "library").
// Quantiles cover the rolling window only; everything else is a lifetime total.
type SourceSnapshot struct {
	Parses      int       `json:"parses"`
	Failures    int       `json:"failures"`
	Sections    int       `json:"sections"`
	Annotations int       `json:"annotations"`
	AvgSections float64   `json:"avg_sections"`
	MinUs       int64     `json:"min_us"`
	MaxUs       int64     `json:"max_us"`
	AvgUs       float64   `json:"avg_us"`
	P50Us       float64   `json:"p50_us"`
	P95Us       float64   `json:"p95_us"`
	P99Us       float64   `json:"p99_us"`
	LastParse   time.Time `json:"last_parse"`
}

// StatsSnapshot is a point-in-time view of parse activity.
type StatsSnapshot struct {
	WindowSeconds float64                   `json:"window_seconds"`
	Parses        int                       `json:"parses"`
	Failures      int                       `json:"failures"`
	Sources       map[string]SourceSnapshot `json:"sources"`
}

type sourceTotals struct {
	parses      int
	failures    int
	sections    int
	annotations int
	minUs       int64
	maxUs       int64
	sumUs       int64
	last        time.Time
}

// ParseStats tracks parse activity per source. Latency quantiles come from a
// Prometheus summary whose MaxAge is the stats window.
type ParseStats struct {
	window  time.Duration
	latency *prometheus.SummaryVec

	mu      sync.Mutex
	sources map[string]*sourceTotals
}

func NewParseStats(window time.Duration) *ParseStats {
	if window <= 0 {
		window = time.Hour
	}
	return &ParseStats{
		window: window,
		latency: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace:  "annoview",
			Name:       "parse_latency_seconds",
			Help:       "Parse latency quantiles over the stats window, by source.",
			Objectives: latencyObjectives,
			MaxAge:     window,
		}, []string{"source"}),
		sources: make(map[string]*sourceTotals),
	}
}

// Collector exposes the latency summary for registration.
func (s *ParseStats) Collector() prometheus.Collector {
	return s.latency
}

// Record adds one parse. sections and annotations are ignored for failed parses.
func (s *ParseStats) Record(source string, d time.Duration, sections, annotations int, failed bool) {
	us := d.Microseconds()
	if us < 0 {
		us = 0
	}
	s.latency.WithLabelValues(source).Observe(float64(us) / 1e6)

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.sources[source]
	if !ok {
		t = &sourceTotals{minUs: us, maxUs: us}
		s.sources[source] = t
	}
	t.parses++
	t.sumUs += us
	t.minUs = min(t.minUs, us)
	t.maxUs = max(t.maxUs, us)
	t.last = time.Now()
	if failed {
		t.failures++
		return
	}
	t.sections += sections
	t.annotations += annotations
}

func (s *ParseStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	names := make([]string, 0, len(s.sources))
	totals := make(map[string]sourceTotals, len(s.sources))
	for name, t := range s.sources {
		names = append(names, name)
		totals[name] = *t
	}
	s.mu.Unlock()
	sort.Strings(names)

	snap := StatsSnapshot{
		WindowSeconds: s.window.Seconds(),
		Sources:       make(map[string]SourceSnapshot, len(names)),
	}
	for _, name := range names {
		t := totals[name]
		src := SourceSnapshot{
			Parses:      t.parses,
			Failures:    t.failures,
			Sections:    t.sections,
			Annotations: t.annotations,
			MinUs:       t.minUs,
			MaxUs:       t.maxUs,
			AvgUs:       float64(t.sumUs) / float64(t.parses),
			LastParse:   t.last,
		}
		if ok := t.parses - t.failures; ok > 0 {
			src.AvgSections = float64(t.sections) / float64(ok)
		}
		q := s.quantiles(name)
		src.P50Us, src.P95Us, src.P99Us = q[0.5], q[0.95], q[0.99]

		snap.Parses += t.parses
		snap.Failures += t.failures
		snap.Sources[name] = src
	}
	return snap
}

// quantiles reads the windowed summary for source, in microseconds.
// Quantiles with no samples in the window read as 0.
func (s *ParseStats) quantiles(source string) map[float64]float64 {
	out := make(map[float64]float64, len(latencyObjectives))
	m, ok := s.latency.WithLabelValues(source).(prometheus.Metric)
	if !ok {
		return out
	}
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		return out
	}
	for _, q := range pb.GetSummary().GetQuantile() {
		v := q.GetValue()
		if math.IsNaN(v) {
			v = 0
		}
		out[q.GetQuantile()] = v * 1e6
	}
	return out
}
