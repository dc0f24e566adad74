/*
Package runtime implements syzygo's dispatch core: the effect queue and
drain loop, the blocking/async task abstractions, the capability-projected
Context family, and the Runtime that owns the Model and ties everything
together.

These pieces live in one package, not one per concern, because they are
mutually recursive: an Effect closes over *Runtime[M], a Task's Perform
produces an Effect, and a Context is itself partly defined by which
capabilities the Runtime grants it. Splitting them across importable Go
packages would require either duplicating the Runtime type behind
interfaces in every package or introducing an import cycle; keeping the
split at the file level (effect.go, task.go, context.go, runtime.go,
queue.go, deferred.go) avoids both without losing the separation between
concerns.

# Architecture

	┌────────────────────────── RUNTIME ───────────────────────────┐
	│                                                                 │
	│  ┌──────────┐   dispatch    ┌────────────────────────────┐   │
	│  │ Context  │──────────────▶│       Effect Queue          │   │
	│  │ (Thread, │                │  (MPSC, unbounded, FIFO)    │   │
	│  │  Async,  │◀──callback─────│                              │   │
	│  │  Event)  │   effects      └──────────────┬───────────────┘   │
	│  └──────────┘                               │ HandleEffects      │
	│                                              ▼                   │
	│                               ┌────────────────────────────┐    │
	│                               │   exclusive Model access    │    │
	│                               │   (drain loop, one batch    │    │
	│                               │    at a time, follow-ups    │    │
	│                               │    appended to the tail)    │    │
	│                               └────────────────────────────┘    │
	└─────────────────────────────────────────────────────────────────┘

# Core Types

  - [Runtime]: owns the Model, Resources, effect queue, and event bus.
  - [Effect], [Batch]: a one-shot closure with exclusive Runtime access,
    and the ordered sequence of effects a dispatch enqueues atomically.
  - [ThreadTask], [AsyncTask]: deferred work, composed with AndThen and
    terminated with Perform/Done.
  - [ThreadContext], [AsyncContext], [EventContext]: capability-narrowed
    projections handed to background goroutines and event handlers.
*/
package runtime
