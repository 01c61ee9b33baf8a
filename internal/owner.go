package internal

import (
	"iter"
)

type Owner struct {
	r *Runtime

	// cleanup functions, run once on the next reset or disposal
	cleanups []func()

	// disposal functions, run once when the owner is disposed
	disposers []func()

	// panic error handlers
	catchers []func(any)

	// the context values of this owner
	context map[any]any

	disposed bool

	parent       *Owner
	prevSibling  *Owner
	nextSibling  *Owner
	childrenHead *Owner
}

// NewOwner creates an owner attached as a child of the current owner, if any.
func (r *Runtime) NewOwner() *Owner {
	o := &Owner{
		r:       r,
		context: make(map[any]any),
	}

	if parent := r.CurrentOwner(); parent != nil {
		parent.AddChild(o)
	}

	return o
}

func (o *Owner) Run(fn func()) {
	o.r.tracker.RunWithOwner(o, fn)
}

func (parent *Owner) AddChild(child *Owner) {
	child.parent = parent
	child.prevSibling = nil
	child.nextSibling = parent.childrenHead

	if parent.childrenHead != nil {
		parent.childrenHead.prevSibling = child
	}

	parent.childrenHead = child
}

func (parent *Owner) RemoveChild(child *Owner) {
	if child.parent != parent {
		return
	}

	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		parent.childrenHead = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	}

	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

func (o *Owner) Children() iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		for child := o.childrenHead; child != nil; child = child.nextSibling {
			if !yield(child) {
				return
			}
		}
	}
}

// Reset disposes the children and runs pending cleanups, leaving the owner usable.
// Children go first, most recent first.
func (o *Owner) Reset() {
	child := o.childrenHead
	o.childrenHead = nil

	for child != nil {
		next := child.nextSibling
		child.parent = nil
		child.prevSibling = nil
		child.nextSibling = nil
		child.Dispose()
		child = next
	}

	cleanups := o.cleanups
	o.cleanups = nil
	for _, cleanup := range cleanups {
		cleanup()
	}
}

// Dispose resets the owner, runs its disposal functions and detaches it from its parent.
// Disposing twice is a no-op.
func (o *Owner) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true

	o.Reset()

	disposers := o.disposers
	o.disposers = nil
	for _, dispose := range disposers {
		dispose()
	}

	if o.parent != nil {
		o.parent.RemoveChild(o)
	}
}

func (o *Owner) IsDisposed() bool {
	return o.disposed
}

func (o *Owner) OnCleanup(fn func()) {
	if o.disposed {
		fn()
		return
	}

	o.cleanups = append(o.cleanups, fn)
}

func (o *Owner) OnDispose(fn func()) {
	if o.disposed {
		fn()
		return
	}

	o.disposers = append(o.disposers, fn)
}

func (o *Owner) OnError(fn func(any)) {
	o.catchers = append(o.catchers, fn)
}

// Lookup finds a context value on this owner or the closest ancestor holding one.
func (o *Owner) Lookup(key any) (any, bool) {
	for owner := o; owner != nil; owner = owner.parent {
		if v, ok := owner.context[key]; ok {
			return v, true
		}
	}

	return nil, false
}

func (o *Owner) Provide(key, value any) {
	o.context[key] = value
}

// recover must be deferred directly
func (o *Owner) recover() {
	if v := recover(); v != nil {
		o.handle(v)
	}
}

// handle hands a panic to the closest owner with error listeners, or panics again.
func (o *Owner) handle(v any) {
	for owner := o; owner != nil; owner = owner.parent {
		if len(owner.catchers) == 0 {
			continue
		}

		for _, catcher := range owner.catchers {
			catcher(v)
		}
		return
	}

	panic(v)
}
