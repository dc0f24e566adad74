package pool_test

import (
	"sync/atomic"
	"testing"

	"github.com/cuemby/syzygo/pkg/pool"
	"github.com/stretchr/testify/assert"
)

func TestThreadPoolRunsAllTasks(t *testing.T) {
	p := pool.NewThreadPool(2)
	var n atomic.Int32
	for i := 0; i < 10; i++ {
		p.Spawn(func() { n.Add(1) })
	}
	p.Wait()
	assert.Equal(t, int32(10), n.Load())
}

func TestDirectSpawnsImmediately(t *testing.T) {
	d := pool.Direct{}
	done := make(chan struct{})
	d.Spawn(func() { close(done) })
	<-done
}
