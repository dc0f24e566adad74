package runtime

import "github.com/cuemby/syzygo/pkg/model"

// Effect is a one-shot operation granted exclusive access to the Runtime.
// It runs on the Runtime's own goroutine during HandleEffects and may
// return a follow-up Batch, which is appended to the tail of the queue
// currently being drained rather than run inline.
type Effect[M model.Model[M]] func(rt *Runtime[M]) Batch[M]

// Batch is an ordered sequence of effects, enqueued atomically by Dispatch.
// The zero value is an empty batch.
type Batch[M model.Model[M]] []Effect[M]

// NewBatch returns an empty Batch, the starting point for building one up
// with Effect.
func NewBatch[M model.Model[M]]() Batch[M] { return nil }

// None is an empty Batch, used as the return value of an Effect that makes
// no follow-up dispatch.
func None[M model.Model[M]]() Batch[M] { return nil }

// Of builds a single-effect Batch.
func Of[M model.Model[M]](e Effect[M]) Batch[M] { return Batch[M]{e} }

// Effect appends e to the batch and returns the result, so calls can be
// chained: NewBatch[M]().Effect(a).Effect(b).
func (b Batch[M]) Effect(e Effect[M]) Batch[M] {
	return append(b, e)
}

// Spawn appends the effect produced by handing task off to the Runtime's
// thread spawner, with perform consuming its result once complete.
//
// Batch.Spawn cannot itself carry task's output type parameter (Go methods
// may not introduce additional type parameters), so it is a package-level
// function; O is inferred from task's type at the call site.
func Spawn[M model.Model[M], O any](b Batch[M], task ThreadTask[M, O], perform PerformFn[M, O]) Batch[M] {
	return b.Effect(task.Perform(perform))
}

// Task begins an async dispatch: fn runs on the Runtime's async spawner and
// its result must be consumed with Perform, or discarded with Done, before
// the resulting Batch is usable.
func Task[M model.Model[M], O any](b Batch[M], fn AsyncFn[M, O]) UnfinishedBatch[M, O] {
	return UnfinishedBatch[M, O]{items: b, task: NewAsyncTask(fn)}
}

// UnfinishedBatch is a Batch with one pending async dispatch that has not
// yet been told what to do with its result.
type UnfinishedBatch[M model.Model[M], O any] struct {
	items Batch[M]
	task  AsyncTask[M, O]
}

// Perform appends the async task's effect, routing its output through f.
func (u UnfinishedBatch[M, O]) Perform(f PerformFn[M, O]) Batch[M] {
	return append(u.items, u.task.Perform(f))
}

// Done appends the async task's effect, discarding its output once it
// completes.
func (u UnfinishedBatch[M, O]) Done() Batch[M] {
	return append(u.items, u.task.Done())
}

// PerformFn consumes the output of a completed task and produces the
// follow-up batch to dispatch with it.
type PerformFn[M model.Model[M], O any] func(O) Batch[M]
