package internal

import (
	"context"
	"sync"
)

// Mailbox carries continuations from background goroutines back to the goroutine owning the runtime.
// It is the only part of a runtime touched by other goroutines.
type Mailbox struct {
	mu sync.Mutex

	tasks []func()

	// work started with Go whose continuation has not been taken yet
	inflight int

	wake chan struct{}
}

func NewMailbox() *Mailbox {
	return &Mailbox{
		wake: make(chan struct{}, 1),
	}
}

func (m *Mailbox) start() {
	m.mu.Lock()
	m.inflight++
	m.mu.Unlock()
}

// post delivers the continuation of a started task, nil when there is nothing left to apply
func (m *Mailbox) post(task func()) {
	m.mu.Lock()
	m.tasks = append(m.tasks, task)
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *Mailbox) take() []func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := m.tasks
	m.tasks = nil
	m.inflight -= len(tasks)

	return tasks
}

func (m *Mailbox) idle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.inflight == 0 && len(m.tasks) == 0
}

// Go runs work on its own goroutine. The function work returns, if any, is applied
// on the owning goroutine by the next Poll or Settle.
func (r *Runtime) Go(work func() func()) {
	r.mailbox.start()

	go func() {
		var next func()
		defer func() { r.mailbox.post(next) }()

		next = work()
	}()
}

// Poll applies the continuations delivered so far inside a single batch.
// It returns the number of finished tasks it took.
func (r *Runtime) Poll() int {
	tasks := r.mailbox.take()
	if len(tasks) == 0 {
		return 0
	}

	r.NewBatch(func() {
		for _, task := range tasks {
			if task != nil {
				task()
			}
		}
	})

	return len(tasks)
}

// Settle polls until no background work is left, or ctx is done.
func (r *Runtime) Settle(ctx context.Context) error {
	for {
		r.Poll()

		if r.mailbox.idle() {
			return nil
		}

		select {
		case <-r.mailbox.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Pending reports how many background tasks have not been applied yet.
func (r *Runtime) Pending() int {
	r.mailbox.mu.Lock()
	defer r.mailbox.mu.Unlock()

	return r.mailbox.inflight
}
