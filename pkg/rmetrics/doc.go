/*
Package rmetrics provides Prometheus metrics collection and exposition for
a runtime: effect throughput, task spawn counts by family, and events
emitted by type. Task completions and subscriber counts are not recorded.

# Architecture

	┌──────────────────── METRICS SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │          Prometheus Registry                │          │
	│  │  - Global DefaultRegistry                   │          │
	│  │  - MustRegister at package init             │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │              Metric Categories               │          │
	│  │                                              │          │
	│  │  Queue: depth, batches dequeued, effects run │          │
	│  │  Tasks: spawned by family                    │          │
	│  │  Events: emitted count by type               │          │
	│  │  Drain loop: batch processing duration       │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │          HTTP Metrics Endpoint               │          │
	│  │  - Path: /metrics                            │          │
	│  │  - Handler: promhttp.Handler()               │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Metrics Catalog

syzygo_queue_depth:
  - Type: Gauge
  - Description: Number of batches currently queued for dispatch.

syzygo_batches_dequeued_total:
  - Type: Counter
  - Description: Total batches popped off the effect queue.

syzygo_effects_run_total:
  - Type: Counter
  - Description: Total individual effects executed.

syzygo_tasks_spawned_total{family}:
  - Type: Counter
  - Labels: family ("thread" or "async")
  - Description: Total tasks handed to a spawner.

syzygo_events_emitted_total{event_type}:
  - Type: Counter
  - Labels: event_type
  - Description: Total events published to the bus, by concrete type.

syzygo_batch_drain_duration_seconds:
  - Type: Histogram
  - Description: Wall time to run every effect in one dequeued batch.

# Usage

	observer := rmetrics.NewObserver()
	rt := runtime.New(model, runtime.WithObserver[MyModel](observer))
	http.Handle("/metrics", rmetrics.Handler())
*/
package rmetrics
