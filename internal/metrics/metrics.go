package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the dashboard's Prometheus collectors. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	FetchTotal      *prometheus.CounterVec
	FetchDuration   *prometheus.HistogramVec
	ComputeDuration prometheus.Histogram
	AnalysesTotal   *prometheus.CounterVec
	PageViews       *prometheus.CounterVec
	ReferenceMisses *prometheus.CounterVec
	SnapshotsTotal  *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "banklens_fetch_total",
			Help: "Market data fetches by source and outcome",
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "banklens_fetch_duration_seconds",
			Help:    "Market data fetch latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "banklens_indicator_compute_duration_seconds",
			Help:    "Indicator engine latency per analysis",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05},
		}),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "banklens_analyses_total",
			Help: "Completed analyses by ticker",
		}, []string{"ticker"}),
		PageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "banklens_page_views_total",
			Help: "Dashboard page renders by page",
		}, []string{"page"}),
		ReferenceMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "banklens_reference_misses_total",
			Help: "Lookups of tickers absent from a reference file",
		}, []string{"file"}),
		SnapshotsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "banklens_snapshots_total",
			Help: "Scheduled snapshot runs by outcome",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(
			r.FetchTotal,
			r.FetchDuration,
			r.ComputeDuration,
			r.AnalysesTotal,
			r.PageViews,
			r.ReferenceMisses,
			r.SnapshotsTotal,
		)
	}
	return r
}

// RecordFetch records one market data fetch.
func (r *Recorder) RecordFetch(source string, err error, d time.Duration) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.FetchTotal.WithLabelValues(source, outcome).Inc()
	r.FetchDuration.WithLabelValues(source).Observe(d.Seconds())
}

// RecordCompute records one indicator engine pass.
func (r *Recorder) RecordCompute(ticker string, d time.Duration) {
	if r == nil {
		return
	}
	r.ComputeDuration.Observe(d.Seconds())
	r.AnalysesTotal.WithLabelValues(ticker).Inc()
}

// RecordPageView records one dashboard page render.
func (r *Recorder) RecordPageView(page string) {
	if r == nil {
		return
	}
	r.PageViews.WithLabelValues(page).Inc()
}

// RecordReferenceMiss records a ticker missing from a reference file.
func (r *Recorder) RecordReferenceMiss(file string) {
	if r == nil {
		return
	}
	r.ReferenceMisses.WithLabelValues(file).Inc()
}

// RecordSnapshot records one scheduled snapshot run.
func (r *Recorder) RecordSnapshot(err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.SnapshotsTotal.WithLabelValues(outcome).Inc()
}

// Timer is a helper for measuring latency.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed duration.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
