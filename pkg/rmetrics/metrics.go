package rmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

var (
	QueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "syzygo_queue_depth",
			Help: "Number of batches currently queued for dispatch.",
		},
	)

	BatchesDequeued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "syzygo_batches_dequeued_total",
			Help: "Total batches popped off the effect queue.",
		},
	)

	EffectsRun = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "syzygo_effects_run_total",
			Help: "Total individual effects executed.",
		},
	)

	TasksSpawned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "syzygo_tasks_spawned_total",
			Help: "Total tasks handed to a spawner, by family.",
		},
		[]string{"family"},
	)

	EventsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "syzygo_events_emitted_total",
			Help: "Total events published to the bus, by concrete type.",
		},
		[]string{"event_type"},
	)

	BatchDrainDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "syzygo_batch_drain_duration_seconds",
			Help:    "Wall time to run every effect in one dequeued batch.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		QueueDepth,
		BatchesDequeued,
		EffectsRun,
		TasksSpawned,
		EventsEmitted,
		BatchDrainDuration,
	)
}

// Handler returns the HTTP handler to mount at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Observer implements runtime.RuntimeObserver against the metrics above.
type Observer struct{}

// NewObserver returns a ready-to-use Observer.
func NewObserver() Observer { return Observer{} }

func (Observer) BatchDequeued(effectCount int) {
	BatchesDequeued.Inc()
}

func (Observer) EffectRun() {
	EffectsRun.Inc()
}

func (Observer) TaskSpawned(family string) {
	TasksSpawned.WithLabelValues(family).Inc()
}

func (Observer) EventEmitted(typeName string) {
	EventsEmitted.WithLabelValues(typeName).Inc()
}

func (Observer) QueueDepth(n int) {
	QueueDepth.Set(float64(n))
}

func (Observer) BatchDrained(d time.Duration) {
	BatchDrainDuration.Observe(d.Seconds())
}
