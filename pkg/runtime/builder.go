package runtime

import (
	"github.com/cuemby/syzygo/pkg/model"
	"github.com/cuemby/syzygo/pkg/pool"
	"github.com/cuemby/syzygo/pkg/resource"
)

// Option configures a Runtime at construction time, applied in New.
type Option[M model.Model[M]] func(rt *Runtime[M])

// WithThreadPoolSize bounds the thread spawner to size concurrent
// goroutines. The default is 8.
func WithThreadPoolSize[M model.Model[M]](size int) Option[M] {
	return func(rt *Runtime[M]) {
		rt.threadSpawner = pool.NewThreadPool(size)
	}
}

// WithThreadSpawner overrides the thread spawner entirely.
func WithThreadSpawner[M model.Model[M]](s pool.Spawner) Option[M] {
	return func(rt *Runtime[M]) { rt.threadSpawner = s }
}

// WithAsyncSpawner overrides the async spawner entirely. The default is
// pool.Direct, which spawns one goroutine per task with no bound.
func WithAsyncSpawner[M model.Model[M]](s pool.Spawner) Option[M] {
	return func(rt *Runtime[M]) { rt.asyncSpawner = s }
}

// WithResource registers value of type T into the Runtime's Resources bag
// at build time. Panics if a value of that type is already registered,
// since that can only happen from a construction-time ordering bug.
func WithResource[T any, M model.Model[M]](value T) Option[M] {
	return func(rt *Runtime[M]) {
		if err := resource.Set(rt.resources, value); err != nil {
			panic(err)
		}
	}
}

// WithObserver wires an external metrics/logging sink into the Runtime's
// lifecycle notifications.
func WithObserver[M model.Model[M]](obs RuntimeObserver) Option[M] {
	return func(rt *Runtime[M]) {
		if obs != nil {
			rt.metrics = obs
		}
	}
}
