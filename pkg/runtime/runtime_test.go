package runtime_test

import (
	stdctx "context"
	"sync"
	"testing"
	"time"

	"github.com/cuemby/syzygo/pkg/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	N int
}

func (c counter) Snapshot() counter { return c }

func TestBasicMutationViaEffect(t *testing.T) {
	rt := runtime.New(counter{})
	rt.Dispatch(runtime.Of[counter](func(rt *runtime.Runtime[counter]) runtime.Batch[counter] {
		*rt.ModelMut() = counter{N: rt.Model().N + 1}
		return nil
	}))
	rt.HandleEffects()
	assert.Equal(t, 1, rt.Model().N)
}

func TestHandleEffectsReturnsOnEmptyQueue(t *testing.T) {
	rt := runtime.New(counter{})
	done := make(chan struct{})
	go func() {
		rt.HandleEffects()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("HandleEffects did not return on an empty queue")
	}
}

func TestFollowUpAppendedToTail(t *testing.T) {
	rt := runtime.New(counter{})
	var order []int
	var mu sync.Mutex
	var record func(n int) runtime.Effect[counter]
	record = func(n int) runtime.Effect[counter] {
		return func(rt *runtime.Runtime[counter]) runtime.Batch[counter] {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
			if n == 1 {
				return runtime.Of[counter](record(3))
			}
			return nil
		}
	}
	rt.Dispatch(runtime.NewBatch[counter]().Effect(record(1)).Effect(record(2)))
	rt.HandleEffects()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 3)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestThreadTaskRoundTrip(t *testing.T) {
	rt := runtime.New(counter{})
	task := runtime.NewThreadTask(func(cx runtime.ThreadContext[counter]) int {
		return 41
	})
	rt.Dispatch(runtime.Of[counter](func(rt *runtime.Runtime[counter]) runtime.Batch[counter] {
		return runtime.Spawn(nil, task, func(out int) runtime.Batch[counter] {
			return runtime.Of[counter](func(rt *runtime.Runtime[counter]) runtime.Batch[counter] {
				*rt.ModelMut() = counter{N: out + 1}
				return nil
			})
		})
	}))
	rt.HandleEffects()

	// The thread task's result is dispatched from the pool goroutine, not
	// this one, so the follow-up batch lands on the queue asynchronously.
	require.Eventually(t, func() bool { return rt.QueueLen() > 0 }, time.Second, time.Millisecond)
	rt.HandleEffects()

	assert.Equal(t, 42, rt.Model().N)
}

func TestAsyncTaskRoundTrip(t *testing.T) {
	rt := runtime.New(counter{})
	task := runtime.NewAsyncTask(func(ctx stdctx.Context, cx runtime.AsyncContext[counter]) string {
		return "done"
	})
	rt.Dispatch(runtime.Of[counter](task.Perform(func(out string) runtime.Batch[counter] {
		return runtime.Of[counter](func(rt *runtime.Runtime[counter]) runtime.Batch[counter] {
			if out == "done" {
				*rt.ModelMut() = counter{N: 100}
			}
			return nil
		})
	})))
	rt.HandleEffects()

	require.Eventually(t, func() bool { return rt.QueueLen() > 0 }, time.Second, time.Millisecond)
	rt.HandleEffects()

	assert.Equal(t, 100, rt.Model().N)
}

func TestEventDeliveryAndDuplicateNameRejected(t *testing.T) {
	rt := runtime.New(counter{})
	type tick struct{ N int }

	received := make(chan int, 1)
	err := runtime.Subscribe[tick, counter](rt, "tick-handler", func(cx runtime.EventContext[counter], e tick) {
		received <- e.N
	})
	require.NoError(t, err)

	err = runtime.Subscribe[tick, counter](rt, "tick-handler", func(cx runtime.EventContext[counter], e tick) {})
	assert.Error(t, err)

	rt.Emit(tick{N: 7})
	n := rt.PumpEvents(0)
	assert.Equal(t, 1, n)

	select {
	case got := <-received:
		assert.Equal(t, 7, got)
	default:
		t.Fatal("expected handler to have run")
	}
}

func TestDispatchSyncHandshake(t *testing.T) {
	rt := runtime.New(counter{})
	ran := make(chan struct{})
	done := rt.DispatchSync(func(rt *runtime.Runtime[counter]) runtime.Batch[counter] {
		close(ran)
		return nil
	})

	rt.HandleEffects()

	select {
	case <-done:
	default:
		t.Fatal("DispatchSync handshake channel never closed")
	}
	select {
	case <-ran:
	default:
		t.Fatal("effect did not run before handshake closed")
	}
}

func TestRunStopsOnStop(t *testing.T) {
	rt := runtime.New(counter{})
	done := make(chan struct{})
	go func() {
		rt.Run()
		close(done)
	}()

	mutated := make(chan struct{})
	rt.Dispatch(runtime.Of[counter](func(rt *runtime.Runtime[counter]) runtime.Batch[counter] {
		*rt.ModelMut() = counter{N: 1}
		close(mutated)
		return nil
	}))

	select {
	case <-mutated:
	case <-time.After(time.Second):
		t.Fatal("Run never processed the dispatched effect")
	}

	rt.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
