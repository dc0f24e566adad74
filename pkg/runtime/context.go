package runtime

import (
	"github.com/cuemby/syzygo/pkg/event"
	"github.com/cuemby/syzygo/pkg/model"
	"github.com/cuemby/syzygo/pkg/resource"
)

// Capability interfaces. Each names exactly one thing a Context may be
// allowed to do; which concrete context types satisfy which interfaces is
// how capability projection happens in Go — an Effect body takes
// *Runtime[M] and so gets everything, a goroutine spawned from a Task
// takes ThreadContext/AsyncContext and only gets what those types
// implement, an event handler takes EventContext and only gets what that
// implements. Calling code that assigns or passes a context where a
// narrower capability interface is expected fails to compile if the
// context doesn't implement it.

// ModelAccess grants read access to the current Model value.
type ModelAccess[M model.Model[M]] interface {
	Model() M
}

// ModelModify grants exclusive mutable access to the Model. Only the
// Runtime itself (handed to an Effect body) implements this; background
// goroutines must route mutation through Dispatch instead.
type ModelModify[M model.Model[M]] interface {
	ModelMut() *M
}

// ModelSnapshotCreate grants the ability to produce an immutable snapshot
// of the current Model, safe to read from any goroutine.
type ModelSnapshotCreate[M model.Model[M]] interface {
	CreateSnapshot() M
}

// ResourceAccess grants read access to the Resources bag.
type ResourceAccess interface {
	Resources() resource.Resources
}

// DispatchEffect grants the ability to enqueue follow-up work against the
// owning Runtime.
type DispatchEffect[M model.Model[M]] interface {
	Dispatch(b Batch[M])
	Trigger(f func(rt *Runtime[M]))
	DispatchSync(e Effect[M]) <-chan struct{}
}

// EmitEvent grants the ability to publish an event onto the event bus.
type EmitEvent interface {
	Emit(e event.Event)
}

// SpawnCapability grants the ability to run background work on the
// Runtime's thread or async spawners directly, outside the effect-return
// pipeline (e.g. fire-and-forget telemetry from inside a handler).
type SpawnCapability interface {
	SpawnThread(task func())
	SpawnAsync(task func())
	SpawnParallel(tasks ...func())
}

// ThreadContext is handed to a ThreadTask's body. It has no direct Model
// access: blocking tasks run off the Runtime goroutine, so mutation must
// flow back through a dispatched Effect.
type ThreadContext[M model.Model[M]] struct {
	rt *Runtime[M]
}

func newThreadContext[M model.Model[M]](rt *Runtime[M]) ThreadContext[M] {
	return ThreadContext[M]{rt: rt}
}

func (c ThreadContext[M]) Resources() resource.Resources        { return c.rt.resources }
func (c ThreadContext[M]) Dispatch(b Batch[M])                  { c.rt.Dispatch(b) }
func (c ThreadContext[M]) Trigger(f func(rt *Runtime[M]))        { c.rt.Trigger(f) }
func (c ThreadContext[M]) DispatchSync(e Effect[M]) <-chan struct{} { return c.rt.DispatchSync(e) }
func (c ThreadContext[M]) Emit(e event.Event)                    { c.rt.Emit(e) }
func (c ThreadContext[M]) SpawnThread(task func())               { c.rt.SpawnThread(task) }
func (c ThreadContext[M]) SpawnAsync(task func())                 { c.rt.SpawnAsync(task) }
func (c ThreadContext[M]) SpawnParallel(tasks ...func()) {
	for _, t := range tasks {
		c.rt.SpawnThread(t)
	}
}
func (c ThreadContext[M]) eventBus() *event.Bus[EventContext[M]] { return c.rt.events }

// AsyncContext is handed to an AsyncTask's body. Same capability set as
// ThreadContext; the distinction between the two families is which
// spawner runs the work and whether the body takes a cancellation signal,
// not what the context can do once running.
type AsyncContext[M model.Model[M]] struct {
	rt *Runtime[M]
}

func newAsyncContext[M model.Model[M]](rt *Runtime[M]) AsyncContext[M] {
	return AsyncContext[M]{rt: rt}
}

func (c AsyncContext[M]) Resources() resource.Resources        { return c.rt.resources }
func (c AsyncContext[M]) Dispatch(b Batch[M])                  { c.rt.Dispatch(b) }
func (c AsyncContext[M]) Trigger(f func(rt *Runtime[M]))        { c.rt.Trigger(f) }
func (c AsyncContext[M]) DispatchSync(e Effect[M]) <-chan struct{} { return c.rt.DispatchSync(e) }
func (c AsyncContext[M]) Emit(e event.Event)                    { c.rt.Emit(e) }
func (c AsyncContext[M]) SpawnThread(task func())               { c.rt.SpawnThread(task) }
func (c AsyncContext[M]) SpawnAsync(task func())                 { c.rt.SpawnAsync(task) }
func (c AsyncContext[M]) SpawnParallel(tasks ...func()) {
	for _, t := range tasks {
		c.rt.SpawnAsync(t)
	}
}
func (c AsyncContext[M]) eventBus() *event.Bus[EventContext[M]] { return c.rt.events }

// EventContext is handed to event handlers invoked from PumpEvents, which
// runs on the Runtime's own goroutine. It gets snapshot access (cheap and
// safe in-goroutine) but not direct mutable access, so handlers stay
// observationally consistent with effect-driven mutation.
type EventContext[M model.Model[M]] struct {
	rt *Runtime[M]
}

func newEventContext[M model.Model[M]](rt *Runtime[M]) EventContext[M] {
	return EventContext[M]{rt: rt}
}

func (c EventContext[M]) CreateSnapshot() M                     { return c.rt.CreateSnapshot() }
func (c EventContext[M]) Resources() resource.Resources        { return c.rt.resources }
func (c EventContext[M]) Dispatch(b Batch[M])                  { c.rt.Dispatch(b) }
func (c EventContext[M]) Trigger(f func(rt *Runtime[M]))        { c.rt.Trigger(f) }
func (c EventContext[M]) DispatchSync(e Effect[M]) <-chan struct{} { return c.rt.DispatchSync(e) }
func (c EventContext[M]) Emit(e event.Event)                    { c.rt.Emit(e) }
func (c EventContext[M]) eventBus() *event.Bus[EventContext[M]] { return c.rt.events }

type subscribeCap[M model.Model[M]] interface {
	eventBus() *event.Bus[EventContext[M]]
}

// Subscribe registers fn under name (or a type-derived name if name is
// empty) for events of type E, on whatever context cx's capabilities
// allow. Returns event.ErrAlreadyExists if the name collides with an
// existing subscription anywhere on the bus.
func Subscribe[E any, M model.Model[M]](cx subscribeCap[M], name string, fn func(cx EventContext[M], e E)) error {
	return event.Subscribe[E](cx.eventBus(), name, fn)
}

// Unsubscribe removes the subscription registered under name.
func Unsubscribe[M model.Model[M]](cx subscribeCap[M], name string) error {
	return cx.eventBus().Unsubscribe(name)
}

// Extractor is a capability-checked accessor: it takes a context type C
// and pulls out a T, with C's generic constraint enforcing which
// capability interface C must satisfy. ModelOf, SnapshotOf and ResourceOf
// below are the three extractors the runtime ships with; composing a function with an
// extractor that needs a capability the caller's context doesn't have is
// a compile error, not a panic.
type Extractor[C any, T any] func(cx C) T

// ModelOf extracts the current Model value from any context with
// ModelAccess.
func ModelOf[M model.Model[M], C ModelAccess[M]](cx C) M { return cx.Model() }

// SnapshotOf extracts a fresh Model snapshot from any context with
// ModelSnapshotCreate.
func SnapshotOf[M model.Model[M], C ModelSnapshotCreate[M]](cx C) M { return cx.CreateSnapshot() }

// ResourceOf extracts the registered value of type T from any context with
// ResourceAccess.
func ResourceOf[T any, C ResourceAccess](cx C) T {
	return resource.Get[T](cx.Resources())
}

// Execute0 runs f with no extracted arguments; it exists for symmetry with
// Execute1..Execute4 so call sites can grow or shrink their extractor list
// without switching helper names.
func Execute0[R any](f func() R) R { return f() }

// Execute1 extracts one argument via extractA and calls f with it.
func Execute1[C any, A, R any](cx C, extractA func(C) A, f func(A) R) R {
	return f(extractA(cx))
}

// Execute2 extracts two arguments and calls f with them.
func Execute2[C any, A, B, R any](cx C, extractA func(C) A, extractB func(C) B, f func(A, B) R) R {
	return f(extractA(cx), extractB(cx))
}

// Execute3 extracts three arguments and calls f with them.
func Execute3[C any, A, B, D, R any](cx C, extractA func(C) A, extractB func(C) B, extractD func(C) D, f func(A, B, D) R) R {
	return f(extractA(cx), extractB(cx), extractD(cx))
}

// Execute4 extracts four arguments and calls f with them. Four is the
// ceiling this package ships: a construct with a real Rust macro family
// behind it (generating Execute0..ExecuteN for arbitrary N) has no
// equivalent in Go without code generation, so the arity is bounded at
// four. Callers needing more should extract a struct instead of adding
// parameters.
func Execute4[C any, A, B, D, E, R any](cx C, extractA func(C) A, extractB func(C) B, extractD func(C) D, extractE func(C) E, f func(A, B, D, E) R) R {
	return f(extractA(cx), extractB(cx), extractD(cx), extractE(cx))
}
