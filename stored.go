package hooks

import (
	"fmt"
	"reflect"

	"github.com/golang/glog"

	"github.com/AnatoleLucet/hooks/codec"
	"github.com/AnatoleLucet/hooks/store"
)

type entry[T any] struct {
	value   T
	present bool
}

type StoredOption[T any] func(*storedConfig[T])

type storedConfig[T any] struct {
	codec  codec.Codec
	absent func(T) bool
}

// WithCodec picks how values are serialized in the store. JSON by default.
func WithCodec[T any](c codec.Codec) StoredOption[T] {
	return func(cfg *storedConfig[T]) { cfg.codec = c }
}

// WithAbsent decides which values mean "no value". Writing one of them removes the key.
// By default only nil pointers, maps, slices, interfaces, funcs and chans do.
func WithAbsent[T any](absent func(T) bool) StoredOption[T] {
	return func(cfg *storedConfig[T]) { cfg.absent = absent }
}

func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// Stored is a cell kept in sync with a key of a store.
// It is loaded once when created; after that every committed change is written back.
type Stored[T any] struct {
	key   string
	store store.Store
	codec codec.Codec

	absent func(T) bool

	cell *Cell[entry[T]]
	err  *Cell[error]
}

// NewStored loads key from s, falling back to initial when the store has nothing.
// The fallback is not written to the store. A value the codec cannot decode is an error.
func NewStored[T any](s store.Store, key string, initial T, opts ...StoredOption[T]) (*Stored[T], error) {
	return NewStoredFunc(s, key, func() T { return initial }, opts...)
}

// NewStoredFunc is like NewStored, produce is only called when the store has nothing for key.
func NewStoredFunc[T any](s store.Store, key string, produce func() T, opts ...StoredOption[T]) (*Stored[T], error) {
	cfg := storedConfig[T]{
		codec:  codec.JSON{},
		absent: isNil[T],
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	st := &Stored[T]{
		key:    key,
		store:  s,
		codec:  cfg.codec,
		absent: cfg.absent,
	}

	initial, err := st.load(produce)
	if err != nil {
		return nil, err
	}

	st.cell = NewCell(initial)
	st.err = NewCell[error](nil)
	st.cell.Subscribe(st.sync)

	return st, nil
}

func (st *Stored[T]) load(produce func() T) (entry[T], error) {
	raw, ok, err := st.store.Get(st.key)
	if err != nil {
		return entry[T]{}, fmt.Errorf("read %q: %w", st.key, err)
	}

	if !ok {
		return st.entry(produce()), nil
	}

	var v T
	if err := st.codec.Unmarshal([]byte(raw), &v); err != nil {
		return entry[T]{}, fmt.Errorf("decode %q: %w", st.key, err)
	}

	return st.entry(v), nil
}

func (st *Stored[T]) entry(v T) entry[T] {
	return entry[T]{value: v, present: !st.absent(v)}
}

func (st *Stored[T]) sync(e entry[T]) {
	err := st.save(e)
	if err != nil {
		glog.Errorf("hooks: sync %q: %v", st.key, err)
	}
	st.err.Write(err)
}

func (st *Stored[T]) save(e entry[T]) error {
	if !e.present {
		if err := st.store.Remove(st.key); err != nil {
			return fmt.Errorf("remove: %w", err)
		}
		return nil
	}

	data, err := st.codec.Marshal(e.value)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := st.store.Set(st.key, string(data)); err != nil {
		return fmt.Errorf("set: %w", err)
	}
	return nil
}

// Key returns the store key the cell is bound to.
func (st *Stored[T]) Key() string {
	return st.key
}

// Read the committed value, tracking the dependency if within a reactive context.
// The zero value is returned while the key is absent.
func (st *Stored[T]) Read() T {
	return st.cell.Read().value
}

// Peek reads the committed value without tracking.
func (st *Stored[T]) Peek() T {
	return st.cell.Peek().value
}

// Lookup reads the committed value and whether the key holds one.
func (st *Stored[T]) Lookup() (T, bool) {
	e := st.cell.Read()
	return e.value, e.present
}

func (st *Stored[T]) Write(v T) {
	st.cell.Write(st.entry(v))
}

// Update schedules fn applied to the latest scheduled value.
func (st *Stored[T]) Update(fn func(T) T) {
	st.cell.Update(func(e entry[T]) entry[T] {
		return st.entry(fn(e.value))
	})
}

// Delete removes the key from the store.
func (st *Stored[T]) Delete() {
	st.cell.Write(entry[T]{})
}

// Subscribe calls fn with the committed value after every change.
func (st *Stored[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return st.cell.Subscribe(func(e entry[T]) { fn(e.value) })
}

// Err returns the error of the last write to the store, nil if it succeeded.
func (st *Stored[T]) Err() error {
	return st.err.Read()
}
