package tasks

import (
	"log"
	"sync"
)

// Dispatcher runs submitted tasks on a bounded pool of workers. It exists
// so that fire-and-forget side effects (cart clearing, event fan-out) do
// not spawn an unbounded goroutine per call and can be drained in tests.
type Dispatcher struct {
	queue chan func()
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewDispatcher starts workers goroutines consuming a queue of the given
// size. Submit never blocks; tasks that find the queue full are dropped.
func NewDispatcher(workers, queueSize int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &Dispatcher{
		queue: make(chan func(), queueSize),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.queue {
		d.run(task)
	}
}

func (d *Dispatcher) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("tasks: recovered panic in background task: %v", r)
		}
	}()
	task()
}

// Submit enqueues a task for background execution without blocking the
// caller. Tasks are dropped with a log line when the queue is full or the
// dispatcher is closed.
func (d *Dispatcher) Submit(task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		log.Printf("tasks: dispatcher closed, dropping task")
		return
	}
	select {
	case d.queue <- task:
	default:
		log.Printf("tasks: queue full, dropping task")
	}
}

// Close stops accepting tasks and waits for in-flight tasks to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	d.wg.Wait()
}
