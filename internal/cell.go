package internal

import (
	"reflect"
	"slices"
)

// EqualFunc reports whether two values are the same for change detection.
type EqualFunc func(a, b any) bool

type Cell struct {
	*ReactiveNode

	r *Runtime

	value        any
	pendingValue *any // nil if no pending value

	equal EqualFunc

	listeners []*listener
}

type listener struct {
	fn    func(any) // nil once unsubscribed
	owner *Owner
}

func (r *Runtime) NewCell(initial any, equal EqualFunc) *Cell {
	if equal == nil {
		equal = IsEqual
	}

	return &Cell{
		ReactiveNode: &ReactiveNode{},
		r:            r,
		value:        initial,
		equal:        equal,
	}
}

// Read returns the committed value and tracks the cell if a computation is running.
func (c *Cell) Read() any {
	c.r.tracker.Track(c)
	return c.value
}

// Value returns the committed value without tracking.
func (c *Cell) Value() any {
	return c.value
}

// Latest returns the last scheduled value, which is the committed one outside of a batch.
func (c *Cell) Latest() any {
	if c.pendingValue != nil {
		return *c.pendingValue
	}

	return c.value
}

// Write schedules v. It becomes the committed value at the next flush.
func (c *Cell) Write(v any) {
	if c.equal(c.Latest(), v) {
		return
	}

	if c.pendingValue == nil {
		c.r.nodeQueue.Enqueue(c)
	}
	c.pendingValue = &v

	c.r.Schedule()
}

// Update schedules fn applied to the last scheduled value, so calls within a batch compose.
func (c *Cell) Update(fn func(any) any) {
	c.Write(fn(c.Latest()))
}

// Commit applies the pending value and reports whether the committed value changed.
func (c *Cell) Commit() bool {
	if c.pendingValue == nil {
		return false
	}

	next := *c.pendingValue
	c.pendingValue = nil

	if c.equal(c.value, next) {
		return false
	}

	c.value = next
	return true
}

// Listen registers fn to be called with the committed value after each change.
// The returned function unregisters it, and so does disposing the current owner.
func (c *Cell) Listen(fn func(any)) func() {
	l := &listener{fn: fn, owner: c.r.CurrentOwner()}
	c.listeners = append(c.listeners, l)

	unlisten := func() {
		if l.fn == nil {
			return
		}
		l.fn = nil
		c.listeners = slices.DeleteFunc(c.listeners, func(other *listener) bool { return other == l })
	}

	c.r.OnCleanup(unlisten)

	return unlisten
}

// notify queues the listeners in the render phase of the current flush pass
func (c *Cell) notify() {
	if len(c.listeners) == 0 {
		return
	}

	value := c.value
	listeners := slices.Clone(c.listeners)

	c.r.effectQueue.Enqueue(EffectRender, func() {
		for _, l := range listeners {
			if l.fn == nil {
				continue
			}

			if l.owner != nil {
				fn := l.fn
				l.owner.Run(func() { fn(value) })
			} else {
				l.fn(value)
			}
		}
	})
}

// IsEqual compares with == when both dynamic values are comparable.
// Anything else (slices, maps, funcs) is always considered changed.
func IsEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}

	return a == b
}
