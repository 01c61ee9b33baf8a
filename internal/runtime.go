package internal

type Runtime struct {
	heap         *PriorityHeap
	tracker      *Tracker
	batcher      *Batcher
	scheduler    *Scheduler
	nodeQueue    *NodeQueue
	effectQueue  *EffectQueue
	settledQueue *SettledQueue
	mailbox      *Mailbox
}

func NewRuntime() *Runtime {
	return &Runtime{
		heap:         NewHeap(),
		tracker:      NewTracker(),
		batcher:      NewBatcher(),
		scheduler:    NewScheduler(),
		nodeQueue:    NewNodeQueue(),
		effectQueue:  NewEffectQueue(),
		settledQueue: NewSettledQueue(),
		mailbox:      NewMailbox(),
	}
}

func (r *Runtime) Schedule() {
	r.scheduler.Schedule()

	if !r.batcher.IsBatching() {
		r.Flush()
	}
}

// Flush commits pending values and runs everything depending on them.
// A no-op when nothing is scheduled or when a flush is already running.
func (r *Runtime) Flush() {
	ran := r.scheduler.Run(func() {
		for _, cell := range r.nodeQueue.Commit() {
			r.heap.InsertAll(cell.Subs())
			cell.notify()
		}

		r.heap.Drain(func(c *Computed) { c.fn() })

		r.effectQueue.RunEffects(EffectRender)
		r.effectQueue.RunEffects(EffectUser)
	})

	if ran {
		r.settledQueue.Run()
	}
}

func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.CurrentOwner()
}

func (r *Runtime) CurrentComputation() *Computed {
	return r.tracker.CurrentComputation()
}

func (r *Runtime) OnCleanup(fn func()) {
	if owner := r.CurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}

// OnSettled runs fn once, after the current flush or the next one completes.
func (r *Runtime) OnSettled(fn func()) {
	r.settledQueue.Enqueue(fn)
}

func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}

func (r *Runtime) recompute(c *Computed) {
	if c.HasFlag(FlagDisposed) {
		return
	}

	oldValue := c.value

	c.Reset()
	c.ClearDeps()

	r.tracker.RunWithComputation(c, c.run)

	if !c.initialized {
		c.initialized = true
		return
	}

	if !c.equal(oldValue, c.value) {
		r.heap.InsertAll(c.Subs())
		c.notify()
	}
}
