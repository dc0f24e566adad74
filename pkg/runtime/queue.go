package runtime

import (
	"sync"

	"github.com/cuemby/syzygo/pkg/model"
)

// batchQueue is the unbounded, multi-producer, single-consumer queue that
// backs effect dispatch. Producers never block: push always succeeds by
// growing the backing slice. HandleEffects drains with tryPop and returns
// once empty; a long-running driver (Run) blocks on notify between
// arrivals instead of spinning.
type batchQueue[M model.Model[M]] struct {
	mu     sync.Mutex
	items  []Batch[M]
	notify chan struct{}
}

func newBatchQueue[M model.Model[M]]() *batchQueue[M] {
	return &batchQueue[M]{notify: make(chan struct{}, 1)}
}

// push enqueues b at the tail and wakes a waiting consumer.
func (q *batchQueue[M]) push(b Batch[M]) {
	if len(b) == 0 {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, b)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// tryPop removes and returns the batch at the head, or false if empty.
func (q *batchQueue[M]) tryPop() (Batch[M], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	b := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return b, true
}

// len reports the number of batches currently queued (not the number of
// effects within them).
func (q *batchQueue[M]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// wait blocks until push signals activity or stop is closed.
func (q *batchQueue[M]) wait(stop <-chan struct{}) {
	select {
	case <-q.notify:
	case <-stop:
	}
}
