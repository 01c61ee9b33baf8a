package hooks

import (
	"slices"
)

// sameSlice reports whether a and b are the same slice value, not just equal content.
func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// List is a reactive slice. Every operation publishes a new slice and never
// modifies one that was already published, so readers can hold on to what they read.
type List[T any] struct {
	cell    *Cell[[]T]
	initial []T
}

// NewList creates a list holding initial. Reset goes back to this exact slice.
func NewList[T any](initial []T) *List[T] {
	return &List[T]{
		cell:    NewCell(initial, WithEqual(sameSlice[T])),
		initial: initial,
	}
}

// Read the committed slice, tracking the dependency if within a reactive context.
// The returned slice must not be modified.
func (l *List[T]) Read() []T {
	return l.cell.Read()
}

// Peek reads the committed slice without tracking.
func (l *List[T]) Peek() []T {
	return l.cell.Peek()
}

func (l *List[T]) Len() int {
	return len(l.cell.Read())
}

// At returns the item at index i of the committed slice.
func (l *List[T]) At(i int) (T, bool) {
	items := l.cell.Read()
	if i < 0 || i >= len(items) {
		var zero T
		return zero, false
	}
	return items[i], true
}

// Subscribe calls fn with the committed slice after every change.
func (l *List[T]) Subscribe(fn func([]T)) (unsubscribe func()) {
	return l.cell.Subscribe(fn)
}

// Set replaces the whole content.
func (l *List[T]) Set(items []T) {
	l.cell.Write(items)
}

// Push appends item at the end.
func (l *List[T]) Push(item T) {
	l.cell.Update(func(items []T) []T {
		return append(slices.Clip(items), item)
	})
}

// Pop drops the last item. Nothing happens on an empty list.
func (l *List[T]) Pop() {
	l.cell.Update(func(items []T) []T {
		if len(items) == 0 {
			return items
		}
		return slices.Clone(items[:len(items)-1])
	})
}

// Shift drops the first item. Nothing happens on an empty list.
func (l *List[T]) Shift() {
	l.cell.Update(func(items []T) []T {
		if len(items) == 0 {
			return items
		}
		return slices.Clone(items[1:])
	})
}

// Unshift inserts item at the front.
func (l *List[T]) Unshift(item T) {
	l.cell.Update(func(items []T) []T {
		return slices.Concat([]T{item}, items)
	})
}

// Replace puts item at index. An index outside the list is ignored.
func (l *List[T]) Replace(index int, item T) {
	l.cell.Update(func(items []T) []T {
		if index < 0 || index >= len(items) {
			return items
		}

		next := slices.Clone(items)
		next[index] = item
		return next
	})
}

// Remove drops the item at index. An index outside the list is ignored.
func (l *List[T]) Remove(index int) {
	l.cell.Update(func(items []T) []T {
		if index < 0 || index >= len(items) {
			return items
		}
		return slices.Delete(slices.Clone(items), index, index+1)
	})
}

// Filter keeps the items for which keep returns true, in order.
func (l *List[T]) Filter(keep func(T) bool) {
	l.cell.Update(func(items []T) []T {
		next := make([]T, 0, len(items))
		for _, item := range items {
			if keep(item) {
				next = append(next, item)
			}
		}

		if len(next) == len(items) {
			return items
		}
		return next
	})
}

// Clear empties the list.
func (l *List[T]) Clear() {
	l.cell.Update(func(items []T) []T {
		if len(items) == 0 {
			return items
		}
		return []T{}
	})
}

// Reset restores the slice the list was created with.
func (l *List[T]) Reset() {
	l.cell.Write(l.initial)
}
