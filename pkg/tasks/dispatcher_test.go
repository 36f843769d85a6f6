package tasks_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"orderhub/pkg/tasks"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherRunsAllSubmittedTasks(t *testing.T) {
	d := tasks.NewDispatcher(4, 64)

	var counter int64
	for i := 0; i < 50; i++ {
		d.Submit(func() { atomic.AddInt64(&counter, 1) })
	}
	d.Close()

	assert.Equal(t, int64(50), atomic.LoadInt64(&counter))
}

func TestDispatcherSubmitNeverBlocksOnFullQueue(t *testing.T) {
	d := tasks.NewDispatcher(1, 1)

	// Park the single worker so the queue cannot drain.
	release := make(chan struct{})
	started := make(chan struct{})
	d.Submit(func() {
		close(started)
		<-release
	})
	<-started

	// Fill the queue, then overflow it. The overflow Submit must return
	// immediately and its task is dropped.
	var queued, dropped int32
	d.Submit(func() { atomic.StoreInt32(&queued, 1) })

	returned := make(chan struct{})
	go func() {
		d.Submit(func() { atomic.StoreInt32(&dropped, 1) })
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}

	close(release)
	d.Close()

	assert.Equal(t, int32(1), atomic.LoadInt32(&queued))
	assert.Equal(t, int32(0), atomic.LoadInt32(&dropped))
}

func TestDispatcherCloseWaitsForInFlightTasks(t *testing.T) {
	d := tasks.NewDispatcher(1, 1)

	started := make(chan struct{})
	var done int32
	d.Submit(func() {
		close(started)
		atomic.StoreInt32(&done, 1)
	})

	<-started
	d.Close()

	assert.Equal(t, int32(1), atomic.LoadInt32(&done))
}

func TestDispatcherDropsTasksAfterClose(t *testing.T) {
	d := tasks.NewDispatcher(1, 4)
	d.Close()

	var ran int32
	// Must not panic on the closed queue.
	d.Submit(func() { atomic.StoreInt32(&ran, 1) })

	assert.Equal(t, int32(0), atomic.LoadInt32(&ran))
}

func TestDispatcherRecoversFromPanickingTask(t *testing.T) {
	d := tasks.NewDispatcher(1, 4)

	var wg sync.WaitGroup
	wg.Add(1)
	d.Submit(func() {
		defer wg.Done()
		panic("exploding task")
	})
	wg.Wait()

	// The worker survived the panic and keeps processing.
	var ran int32
	d.Submit(func() { atomic.StoreInt32(&ran, 1) })
	d.Close()

	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	d := tasks.NewDispatcher(2, 4)
	d.Close()
	assert.NotPanics(t, func() { d.Close() })
}
