// Package metrics provides Prometheus instrumentation for listing streams.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// StreamMetrics holds Prometheus collectors for listing-stream instrumentation.
// All series carry a bucket label so several streams can share one registry.
type StreamMetrics struct {
	reg         *prometheus.Registry
	pages       *prometheus.CounterVec
	objects     *prometheus.CounterVec
	prefixes    *prometheus.CounterVec
	pauses      *prometheus.CounterVec
	resumes     *prometheus.CounterVec
	failures    *prometheus.CounterVec
	pageObjects *prometheus.HistogramVec
}

// NewStreamMetrics registers stream metrics on the provided registry.
func NewStreamMetrics(reg *prometheus.Registry) *StreamMetrics {
	pages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "liststream",
		Subsystem: "stream",
		Name:      "pages_total",
		Help:      "Total number of listing pages fetched.",
	}, []string{"bucket"})
	objects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "liststream",
		Subsystem: "stream",
		Name:      "objects_total",
		Help:      "Total number of objects received in listing pages.",
	}, []string{"bucket"})
	prefixes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "liststream",
		Subsystem: "stream",
		Name:      "common_prefixes_total",
		Help:      "Total number of common-prefix groupings discovered.",
	}, []string{"bucket"})
	pauses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "liststream",
		Subsystem: "stream",
		Name:      "pauses_total",
		Help:      "Total number of backpressure pauses.",
	}, []string{"bucket"})
	resumes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "liststream",
		Subsystem: "stream",
		Name:      "resumes_total",
		Help:      "Total number of production loop starts.",
	}, []string{"bucket"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "liststream",
		Subsystem: "stream",
		Name:      "failures_total",
		Help:      "Total number of terminal stream failures.",
	}, []string{"bucket"})
	pageObjects := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "liststream",
		Subsystem: "stream",
		Name:      "page_objects",
		Help:      "Histogram of objects received per listing page.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
	}, []string{"bucket"})

	_ = reg.Register(pages)
	_ = reg.Register(objects)
	_ = reg.Register(prefixes)
	_ = reg.Register(pauses)
	_ = reg.Register(resumes)
	_ = reg.Register(failures)
	_ = reg.Register(pageObjects)

	return &StreamMetrics{
		reg:         reg,
		pages:       pages,
		objects:     objects,
		prefixes:    prefixes,
		pauses:      pauses,
		resumes:     resumes,
		failures:    failures,
		pageObjects: pageObjects,
	}
}

// Handler returns an http.Handler that serves Prometheus metrics using the
// underlying registry.
func (m *StreamMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry for advanced usage.
func (m *StreamMetrics) Registry() *prometheus.Registry {
	return m.reg
}

// ForBucket returns a stream observer recording into this instance's
// collectors under the given bucket label. Attach it to a stream with the
// WithObserver option.
func (m *StreamMetrics) ForBucket(bucket string) *BucketObserver {
	return &BucketObserver{
		metrics: m,
		bucket:  bucket,
	}
}

// BucketObserver records one bucket's stream events into shared collectors.
type BucketObserver struct {
	metrics *StreamMetrics
	bucket  string
}

// PageReceived records one fetched page and its object count.
func (o *BucketObserver) PageReceived(_ listtypes.ListRequest, page *listtypes.Page) {
	o.metrics.pages.WithLabelValues(o.bucket).Inc()
	o.metrics.objects.WithLabelValues(o.bucket).Add(float64(len(page.Objects)))
	o.metrics.pageObjects.WithLabelValues(o.bucket).Observe(float64(len(page.Objects)))
}

// PrefixDiscovered records one common-prefix grouping.
func (o *BucketObserver) PrefixDiscovered(_ string) {
	o.metrics.prefixes.WithLabelValues(o.bucket).Inc()
}

// Paused records a backpressure pause.
func (o *BucketObserver) Paused() {
	o.metrics.pauses.WithLabelValues(o.bucket).Inc()
}

// Resumed records a production loop start.
func (o *BucketObserver) Resumed() {
	o.metrics.resumes.WithLabelValues(o.bucket).Inc()
}

// Error records the stream's terminal failure.
func (o *BucketObserver) Error(_ error) {
	o.metrics.failures.WithLabelValues(o.bucket).Inc()
}

// Compile-time interface check.
var _ listtypes.Observer = (*BucketObserver)(nil)
