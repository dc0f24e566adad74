package runtime

import (
	stdctx "context"
	"sync/atomic"
	"time"

	"github.com/cuemby/syzygo/pkg/event"
	"github.com/cuemby/syzygo/pkg/model"
	"github.com/cuemby/syzygo/pkg/pool"
	"github.com/cuemby/syzygo/pkg/resource"
)

// Runtime owns the Model, the Resources bag, the effect queue, and the
// event bus. Exactly one goroutine — the one calling HandleEffects, whether
// directly or via Run — ever touches the Model directly; every other
// goroutine reaches it only through Dispatch, DispatchSync, or a snapshot
// taken on that goroutine's behalf.
type Runtime[M model.Model[M]] struct {
	model M

	resources resource.Resources
	events    *event.Bus[EventContext[M]]
	queue     *batchQueue[M]

	threadSpawner pool.Spawner
	asyncSpawner  pool.Spawner

	shutdownCtx stdctx.Context
	cancel      stdctx.CancelFunc
	stop        chan struct{}
	draining    atomic.Bool

	metrics RuntimeObserver
}

// RuntimeObserver receives lifecycle notifications from a Runtime; it is
// the seam rmetrics hooks into without this package importing prometheus
// directly. A nil-safe no-op implementation is used when none is
// supplied.
type RuntimeObserver interface {
	BatchDequeued(effectCount int)
	EffectRun()
	TaskSpawned(family string)
	EventEmitted(typeName string)
	QueueDepth(n int)
	BatchDrained(d time.Duration)
}

type noopObserver struct{}

func (noopObserver) BatchDequeued(int)          {}
func (noopObserver) EffectRun()                 {}
func (noopObserver) TaskSpawned(string)          {}
func (noopObserver) EventEmitted(string)         {}
func (noopObserver) QueueDepth(int)              {}
func (noopObserver) BatchDrained(time.Duration)  {}

// New constructs a Runtime over the given initial model, applying opts in
// order.
func New[M model.Model[M]](initial M, opts ...Option[M]) *Runtime[M] {
	ctx, cancel := stdctx.WithCancel(stdctx.Background())
	rt := &Runtime[M]{
		model:         initial,
		resources:     resource.New(),
		events:        event.New[EventContext[M]](),
		queue:         newBatchQueue[M](),
		threadSpawner: pool.NewThreadPool(8),
		asyncSpawner:  pool.Direct{},
		shutdownCtx:   ctx,
		cancel:        cancel,
		stop:          make(chan struct{}),
		metrics:       noopObserver{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Model implements ModelAccess. Only valid to call from the goroutine
// running HandleEffects.
func (rt *Runtime[M]) Model() M { return rt.model }

// ModelMut implements ModelModify. Only valid to call from the goroutine
// running HandleEffects.
func (rt *Runtime[M]) ModelMut() *M { return &rt.model }

// CreateSnapshot implements ModelSnapshotCreate.
func (rt *Runtime[M]) CreateSnapshot() M { return rt.model.Snapshot() }

// Resources implements ResourceAccess.
func (rt *Runtime[M]) Resources() resource.Resources { return rt.resources }

// Resource extracts the registered value of type T, panicking if absent.
func Resource[T any, M model.Model[M]](rt *Runtime[M]) T {
	return resource.Get[T](rt.resources)
}

// TryResource extracts the registered value of type T without panicking.
func TryResource[T any, M model.Model[M]](rt *Runtime[M]) (T, bool) {
	return resource.TryGet[T](rt.resources)
}

// Dispatch implements DispatchEffect: it enqueues b atomically at the tail
// of the queue. Safe to call from any goroutine.
func (rt *Runtime[M]) Dispatch(b Batch[M]) {
	if len(b) == 0 {
		return
	}
	rt.queue.push(b)
	rt.metrics.QueueDepth(rt.queue.len())
}

// Trigger dispatches a single ad-hoc effect built from f, for call sites
// that want full Runtime access without constructing an Effect value by
// hand.
func (rt *Runtime[M]) Trigger(f func(rt *Runtime[M])) {
	rt.Dispatch(Of[M](func(rt *Runtime[M]) Batch[M] {
		f(rt)
		return nil
	}))
}

// DispatchSync enqueues e and returns a channel that is closed once e has
// run (but not necessarily once any follow-up batch it returns has
// drained — those are independent dispatches). Useful for a caller that
// needs a handshake without blocking the Runtime goroutine itself.
func (rt *Runtime[M]) DispatchSync(e Effect[M]) <-chan struct{} {
	done := make(chan struct{})
	rt.Dispatch(Of[M](func(rt *Runtime[M]) Batch[M] {
		defer close(done)
		return e(rt)
	}))
	return done
}

// Emit implements EmitEvent.
func (rt *Runtime[M]) Emit(e event.Event) {
	rt.events.Emit(e)
	rt.metrics.EventEmitted(event.TypeOf(e).Name())
}

func (rt *Runtime[M]) eventBus() *event.Bus[EventContext[M]] { return rt.events }

// SpawnThread implements SpawnCapability.
func (rt *Runtime[M]) SpawnThread(task func()) {
	rt.metrics.TaskSpawned("thread")
	rt.threadSpawner.Spawn(task)
}

// SpawnAsync implements SpawnCapability.
func (rt *Runtime[M]) SpawnAsync(task func()) {
	rt.metrics.TaskSpawned("async")
	rt.asyncSpawner.Spawn(task)
}

// SpawnParallel implements SpawnCapability, running every task on the
// thread spawner.
func (rt *Runtime[M]) SpawnParallel(tasks ...func()) {
	for _, t := range tasks {
		rt.SpawnThread(t)
	}
}

// HandleEffects drains the effect queue to quiescence and returns: it pops
// the next batch, runs each effect on the calling goroutine, appends any
// follow-up batch to the tail, and repeats until no batch is ready, at
// which point it returns. Draining an empty queue is a no-op. Once Stop has
// been called it returns before popping the next batch.
func (rt *Runtime[M]) HandleEffects() {
	rt.draining.Store(true)
	defer rt.draining.Store(false)
	for {
		select {
		case <-rt.stop:
			return
		default:
		}
		b, ok := rt.queue.tryPop()
		if !ok {
			return
		}

		rt.metrics.QueueDepth(rt.queue.len())
		rt.metrics.BatchDequeued(len(b))
		start := time.Now()
		for _, eff := range b {
			rt.metrics.EffectRun()
			followUp := eff(rt)
			if len(followUp) > 0 {
				rt.queue.push(followUp)
			}
		}
		rt.metrics.BatchDrained(time.Since(start))
	}
}

// Run drives the Runtime indefinitely: it calls HandleEffects whenever a
// batch arrives, blocking between arrivals, until Stop is called. Callers
// that want a long-running driver goroutine use this instead of looping on
// HandleEffects themselves.
func (rt *Runtime[M]) Run() {
	for {
		select {
		case <-rt.stop:
			return
		default:
		}
		rt.HandleEffects()
		rt.queue.wait(rt.stop)
	}
}

// PumpEvents dequeues and handles up to max queued events (max <= 0 means
// drain the whole queue), invoking their registered handlers with an
// EventContext. Call this from the same goroutine as HandleEffects — most
// commonly interleaved between batches, or on a separate schedule if event
// handling should not block effect draining.
func (rt *Runtime[M]) PumpEvents(max int) int {
	cx := newEventContext(rt)
	n := 0
	for max <= 0 || n < max {
		typ, e, ok := rt.events.Pop()
		if !ok {
			break
		}
		_ = rt.events.Handle(cx, typ, e)
		n++
	}
	return n
}

// Stop signals HandleEffects to return after its current batch and cancels
// the context handed to in-flight async tasks.
func (rt *Runtime[M]) Stop() {
	rt.cancel()
	close(rt.stop)
}

// IsDraining reports whether HandleEffects is currently running.
func (rt *Runtime[M]) IsDraining() bool { return rt.draining.Load() }

// QueueLen reports the number of batches currently queued.
func (rt *Runtime[M]) QueueLen() int { return rt.queue.len() }

// SubscriberCount reports the number of event subscriptions currently
// registered.
func (rt *Runtime[M]) SubscriberCount() int { return rt.events.SubscriberCount() }

// Execute runs f against the Runtime itself, which satisfies every
// capability interface this package defines. It exists mainly so code
// written generically against a capability interface can also be called
// with the full Runtime at the call site where an Effect body has it.
func Execute[M model.Model[M], R any](rt *Runtime[M], f func(*Runtime[M]) R) R {
	return f(rt)
}
