package store

import (
	"sync"

	"github.com/golang/glog"
)

// WriteBehind queues writes to a slow backend and applies them in order on a
// background goroutine. Reads of a key with a queued write are answered from the
// queue, so a reader always sees its own writes.
type WriteBehind struct {
	backend Store

	mu   sync.Mutex
	cond *sync.Cond

	queue   []writeOp
	pending map[string]writeOp // latest queued write per key

	// queued plus in progress
	outstanding int
	seq         uint64
	closed      bool
	err         error

	done chan struct{}
}

var _ Store = (*WriteBehind)(nil)

type writeOp struct {
	seq    uint64
	key    string
	value  string
	remove bool
}

func NewWriteBehind(backend Store) *WriteBehind {
	w := &WriteBehind{
		backend: backend,
		pending: make(map[string]writeOp),
		done:    make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)

	go w.run()

	return w
}

func (w *WriteBehind) Get(key string) (string, bool, error) {
	w.mu.Lock()
	op, ok := w.pending[key]
	w.mu.Unlock()

	if ok {
		return op.value, !op.remove, nil
	}

	return w.backend.Get(key)
}

func (w *WriteBehind) Set(key, value string) error {
	return w.enqueue(writeOp{key: key, value: value})
}

func (w *WriteBehind) Remove(key string) error {
	return w.enqueue(writeOp{key: key, remove: true})
}

func (w *WriteBehind) enqueue(op writeOp) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	w.seq++
	op.seq = w.seq

	w.queue = append(w.queue, op)
	w.pending[op.key] = op
	w.outstanding++
	w.cond.Broadcast()

	return nil
}

func (w *WriteBehind) run() {
	defer close(w.done)

	for {
		w.mu.Lock()
		for len(w.queue) == 0 && !w.closed {
			w.cond.Wait()
		}
		if len(w.queue) == 0 {
			w.mu.Unlock()
			return
		}

		op := w.queue[0]
		w.queue = w.queue[1:]
		w.mu.Unlock()

		var err error
		if op.remove {
			err = w.backend.Remove(op.key)
		} else {
			err = w.backend.Set(op.key, op.value)
		}
		if err != nil {
			glog.Errorf("store: write-behind %q: %v", op.key, err)
		}

		w.mu.Lock()
		if latest, ok := w.pending[op.key]; ok && latest.seq == op.seq {
			delete(w.pending, op.key)
		}
		if err != nil && w.err == nil {
			w.err = err
		}
		w.outstanding--
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}

// Flush blocks until every queued write reached the backend and returns the first write error seen so far.
func (w *WriteBehind) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for w.outstanding > 0 {
		w.cond.Wait()
	}

	return w.err
}

// Close flushes the queue and stops the background goroutine. Writes after Close fail with ErrClosed.
func (w *WriteBehind) Close() error {
	w.mu.Lock()
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()

	<-w.done

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
