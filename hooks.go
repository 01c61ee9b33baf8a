package hooks

import (
	"context"

	"github.com/AnatoleLucet/hooks/internal"
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Reader is anything holding a value that can be read reactively.
type Reader[T any] interface {
	Read() T
}

type Cell[T any] struct {
	cell *internal.Cell
}

type CellOption[T any] func(*cellConfig[T])

type cellConfig[T any] struct {
	equal func(a, b T) bool
}

// WithEqual replaces the change detection of a cell. Writing a value equal to the
// last scheduled one is a no-op, and so is a flush ending on a value equal to the committed one.
func WithEqual[T any](equal func(a, b T) bool) CellOption[T] {
	return func(c *cellConfig[T]) { c.equal = equal }
}

// NewCell creates your typical read/write reactive cell.
//
// By default values are compared with == when their type allows it. Slices, maps
// and funcs are never equal, so writing one always counts as a change.
func NewCell[T any](initial T, opts ...CellOption[T]) *Cell[T] {
	var cfg cellConfig[T]
	for _, opt := range opts {
		opt(&cfg)
	}

	var equal internal.EqualFunc
	if cfg.equal != nil {
		equal = func(a, b any) bool { return cfg.equal(as[T](a), as[T](b)) }
	}

	return &Cell[T]{
		internal.GetRuntime().NewCell(initial, equal),
	}
}

// Read the committed value of the cell, tracking the dependency if within a reactive context.
func (c *Cell[T]) Read() T {
	return as[T](c.cell.Read())
}

// Peek reads the committed value without tracking.
func (c *Cell[T]) Peek() T {
	return as[T](c.cell.Value())
}

// Write schedules a new value. It is committed, and dependents updated, right away
// or when the enclosing batch ends.
func (c *Cell[T]) Write(v T) {
	c.cell.Write(v)
}

// Update schedules fn applied to the latest scheduled value.
// Several updates within one batch compose instead of overwriting each other.
func (c *Cell[T]) Update(fn func(T) T) {
	c.cell.Update(func(v any) any { return fn(as[T](v)) })
}

// Subscribe calls fn with the committed value after every change, until the returned
// function is called or the current owner is disposed.
func (c *Cell[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return c.cell.Listen(func(v any) { fn(as[T](v)) })
}

type Computed[T any] struct {
	computed *internal.Computed
}

// NewComputed creates a computed cell that derives its value from other cells (its a memo).
func NewComputed[T any](compute func() T) *Computed[T] {
	return &Computed[T]{
		internal.GetRuntime().NewComputed(func() any {
			return compute()
		}),
	}
}

// Read the current value of the computed cell, tracking the dependency if within a reactive context.
func (c *Computed[T]) Read() T {
	return as[T](c.computed.Cell.Read())
}

// Subscribe calls fn with the new value every time it changes.
func (c *Computed[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return c.computed.Cell.Listen(func(v any) { fn(as[T](v)) })
}

// Dispose stops recomputing and releases the dependencies.
func (c *Computed[T]) Dispose() {
	c.computed.Dispose()
}

// NewBatch batches multiple cell writes into a single update cycle,
// instead of triggering updates after each write.
func NewBatch(fn func()) {
	internal.GetRuntime().NewBatch(fn)
}

// NewEffect creates a reactive effect that runs the given function
// whenever its dependencies change.
func NewEffect(fn func()) {
	internal.GetRuntime().NewEffect(internal.EffectUser, fn)
}

// Untrack runs the given function without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Untrack(func() { result = fn() })
	return result
}

// OnCleanup registers a function to be called when the current owner is disposed,
// or before the current effect runs again.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}

// OnSettled registers a function to be called once the current (or next) update cycle
// is done, effects included.
func OnSettled(fn func()) {
	internal.GetRuntime().OnSettled(fn)
}

// Poll applies the results of asynchronous work (fetch responses) that arrived so far
// and returns how many it applied. It never blocks.
func Poll() int {
	return internal.GetRuntime().Poll()
}

// Settle applies results of asynchronous work until none is in flight, or ctx is done.
func Settle(ctx context.Context) error {
	return internal.GetRuntime().Settle(ctx)
}

type Context[T any] struct {
	ctx *internal.Context
}

// NewContext creates a new reactive context with an initial value.
func NewContext[T any](initial T) *Context[T] {
	return &Context[T]{
		internal.NewContext(initial),
	}
}

// Value retrieves the current value of the context,
// inheriting from parent owners if not set in the current owner.
func (c *Context[T]) Value() T {
	return as[T](c.ctx.Value(internal.GetRuntime()))
}

// Set a new value for the context in the current owner.
func (c *Context[T]) Set(value T) {
	c.ctx.Set(internal.GetRuntime(), value)
}

type Owner struct {
	owner *internal.Owner
}

// NewOwner creates a new reactive owner, child of the current one.
// An owner manages the lifecycle of reactive nodes created within its context.
func NewOwner() *Owner {
	return &Owner{
		internal.GetRuntime().NewOwner(),
	}
}

// Run a function within the context of this owner.
// Each reactive node created within the function will be a child of this owner,
// and will be disposed when owner.Dispose() is called on this owner.
func (o *Owner) Run(fn func() error) error {
	var err error
	o.owner.Run(func() { err = fn() })
	return err
}

// Dispose this owner and all its children.
func (o *Owner) Dispose() { o.owner.Dispose() }

// Add a cleanup function to be called ONCE when the owner is disposed.
func (o *Owner) OnCleanup(fn func()) { o.owner.OnCleanup(fn) }

// Add a function to be called when the owner is disposed, after its children and cleanups.
func (o *Owner) OnDispose(fn func()) { o.owner.OnDispose(fn) }

// Add a function to be called when a panic occurs within this owner.
// If no error listener is registered, the panic will propagate as usual.
func (o *Owner) OnError(fn func(any)) { o.owner.OnError(fn) }
