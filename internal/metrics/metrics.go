// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics provides Prometheus metrics for the search engine.
package metrics

import (
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sitesearch"

// Recorder counts engine events on its own registry. It satisfies
// search.Observer.
type Recorder struct {
	registry *prometheus.Registry

	keystrokes   prometheus.Counter
	commits      prometheus.Counter
	cacheLookups *prometheus.CounterVec
	evictions    prometheus.Counter
	resultCount  prometheus.Histogram
}

// NewRecorder returns a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		keystrokes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keystrokes_total",
			Help:      "Total number of query keystrokes received",
		}),
		commits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_committed_total",
			Help:      "Total number of queries committed after the debounce interval",
		}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Total number of result cache lookups",
		}, []string{"result"}),
		evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Total number of result cache evictions",
		}),
		resultCount: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "result_count",
			Help:      "Distribution of result list sizes for committed queries",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
		}),
	}
}

// Registry returns the registry the metrics are registered on.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Keystroke records one SetQuery call.
func (r *Recorder) Keystroke() { r.keystrokes.Inc() }

// Committed records a committed query and its result count.
func (r *Recorder) Committed(results int) {
	r.commits.Inc()
	r.resultCount.Observe(float64(results))
}

// CacheLookup records a cache hit or miss.
func (r *Recorder) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// CacheEvicted records one cache eviction.
func (r *Recorder) CacheEvicted() { r.evictions.Inc() }

// Sample is one gathered metric value.
type Sample struct {
	Name  string
	Label string
	Value float64
}

// Snapshot gathers the current values in name order. Histograms report
// their sample count and sum as two samples.
func (r *Recorder) Snapshot() ([]Sample, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}

	var samples []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var label string
			for _, lp := range m.GetLabel() {
				label = lp.GetName() + "=" + lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				samples = append(samples, Sample{Name: mf.GetName(), Label: label, Value: m.GetCounter().GetValue()})
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				samples = append(samples,
					Sample{Name: mf.GetName() + "_count", Label: label, Value: float64(h.GetSampleCount())},
					Sample{Name: mf.GetName() + "_sum", Label: label, Value: h.GetSampleSum()},
				)
			}
		}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return samples[i].Label < samples[j].Label
	})
	return samples, nil
}

// Value returns the sample named name with label (empty for unlabeled
// metrics), or zero when it has not been recorded.
func (r *Recorder) Value(name, label string) float64 {
	samples, err := r.Snapshot()
	if err != nil {
		return 0
	}
	for _, s := range samples {
		if s.Name == name && s.Label == label {
			return s.Value
		}
	}
	return 0
}
