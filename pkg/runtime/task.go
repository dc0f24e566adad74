package runtime

import (
	stdctx "context"

	"github.com/cuemby/syzygo/pkg/model"
)

// ThreadFn is the body of a blocking task: it runs on the Runtime's thread
// spawner (bounded pool by default) and has no cancellation signal, since
// blocking work is assumed to run to completion.
type ThreadFn[M model.Model[M], O any] func(cx ThreadContext[M]) O

// AsyncFn is the body of an async task: it runs on the Runtime's async
// spawner (unbounded by default) and receives a stdlib context.Context so
// it can observe cancellation from the Runtime's shutdown.
type AsyncFn[M model.Model[M], O any] func(ctx stdctx.Context, cx AsyncContext[M]) O

// ThreadTask is deferred blocking work that has not yet been told what to
// do with its result.
type ThreadTask[M model.Model[M], O any] struct {
	fn ThreadFn[M, O]
}

// NewThreadTask wraps fn as a ThreadTask.
func NewThreadTask[M model.Model[M], O any](fn ThreadFn[M, O]) ThreadTask[M, O] {
	return ThreadTask[M, O]{fn: fn}
}

// Perform returns an Effect that spawns the task on the Runtime's thread
// spawner and, once it completes, dispatches the batch perform produces
// from its output.
func (t ThreadTask[M, O]) Perform(perform PerformFn[M, O]) Effect[M] {
	return func(rt *Runtime[M]) Batch[M] {
		cx := newThreadContext(rt)
		rt.SpawnThread(func() {
			out := t.fn(cx)
			rt.Dispatch(perform(out))
		})
		return nil
	}
}

// AndThenThread composes a ThreadTask with a pure transformation of its
// output, without touching the Runtime. It is a package-level function,
// not a method, because Go methods cannot introduce the additional type
// parameter T that the transformed output needs.
func AndThenThread[M model.Model[M], O, T any](t ThreadTask[M, O], f func(O) T) ThreadTask[M, T] {
	inner := t.fn
	return ThreadTask[M, T]{fn: func(cx ThreadContext[M]) T {
		return f(inner(cx))
	}}
}

// AsyncTask is deferred async work that has not yet been told what to do
// with its result (Perform) or whether its result matters at all (Done).
type AsyncTask[M model.Model[M], O any] struct {
	fn AsyncFn[M, O]
}

// NewAsyncTask wraps fn as an AsyncTask.
func NewAsyncTask[M model.Model[M], O any](fn AsyncFn[M, O]) AsyncTask[M, O] {
	return AsyncTask[M, O]{fn: fn}
}

// Perform returns an Effect that spawns the task on the Runtime's async
// spawner and, once it completes, dispatches the batch perform produces
// from its output.
func (t AsyncTask[M, O]) Perform(perform PerformFn[M, O]) Effect[M] {
	return func(rt *Runtime[M]) Batch[M] {
		cx := newAsyncContext(rt)
		rt.SpawnAsync(func() {
			out := t.fn(rt.shutdownCtx, cx)
			rt.Dispatch(perform(out))
		})
		return nil
	}
}

// Done returns an Effect that spawns the task on the Runtime's async
// spawner and discards its output once complete; useful for fire-and-forget
// work such as writing to an external sink.
func (t AsyncTask[M, O]) Done() Effect[M] {
	return func(rt *Runtime[M]) Batch[M] {
		cx := newAsyncContext(rt)
		rt.SpawnAsync(func() {
			t.fn(rt.shutdownCtx, cx)
		})
		return nil
	}
}

// AndThenAsync composes an AsyncTask with a pure transformation of its
// output. See AndThenThread for why this is a function, not a method.
func AndThenAsync[M model.Model[M], O, T any](t AsyncTask[M, O], f func(O) T) AsyncTask[M, T] {
	inner := t.fn
	return AsyncTask[M, T]{fn: func(ctx stdctx.Context, cx AsyncContext[M]) T {
		return f(inner(ctx, cx))
	}}
}
