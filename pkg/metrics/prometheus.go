package metrics

import (
	"sync"

	domrepo "DealSense/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "dealsense"
	subsystem = "engine"
)

// Recorder implements the domain Metrics interface on Prometheus.
type Recorder struct {
	dealsScored     *prometheus.CounterVec
	alertsPublished *prometheus.CounterVec
	errors          *prometheus.CounterVec
	lastScore       *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
}

var _ domrepo.Metrics = (*Recorder)(nil)

var newRecorderOnce sync.Once
var sharedRecorder *Recorder

// NewRecorder registers and returns the process-wide metrics recorder.
func NewRecorder() *Recorder {
	newRecorderOnce.Do(func() {
		sharedRecorder = &Recorder{
			dealsScored: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "deals_scored_total",
				Help:      "Deals scored, labelled by quality tier",
			}, []string{"tier"}),
			alertsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "alerts_published_total",
				Help:      "Alerts published, labelled by urgency level",
			}, []string{"urgency"}),
			errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "errors_total",
				Help:      "Engine errors by kind",
			}, []string{"kind"}),
			lastScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "last_deal_score",
				Help:      "Most recent deal score per product",
			}, []string{"asin"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "operation_duration_seconds",
				Help:      "Engine operation latency",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			}, []string{"op"}),
		}
		prometheus.MustRegister(
			sharedRecorder.dealsScored,
			sharedRecorder.alertsPublished,
			sharedRecorder.errors,
			sharedRecorder.lastScore,
			sharedRecorder.latency,
		)
	})
	return sharedRecorder
}

func (r *Recorder) RecordDealScored(tier string) {
	r.dealsScored.WithLabelValues(tier).Inc()
}

func (r *Recorder) RecordAlertPublished(urgency string) {
	r.alertsPublished.WithLabelValues(urgency).Inc()
}

func (r *Recorder) RecordError(kind string) {
	r.errors.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordLastScore(asin string, score float64) {
	r.lastScore.WithLabelValues(asin).Set(score)
}

func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
