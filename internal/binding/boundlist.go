// Package binding adapts observable values to UI-side consumers.
//
// Consumers own their bindings: every adapter keeps the handles it creates
// and releases them in Close. Close must be called when the widget that
// owns the adapter goes away.
package binding

import "github.com/nibzard/taskmanager-go/internal/observable"

// BoundList mirrors an observable.List as a plain slice of values.
//
// A structural change on the list re-reads and re-binds every cell, then
// calls onSize. A value change on a cell refreshes that slot, then calls
// onItem with its index.
type BoundList[T any] struct {
	name   string
	list   *observable.List[T]
	values []T

	onSize func()
	onItem func(index int)

	listUnbind  observable.Unbind
	cellUnbinds []observable.Unbind
	closed      bool
}

// NewBoundList binds list and takes an initial snapshot.
// onSize and onItem may be nil. The initial snapshot does not call onSize.
func NewBoundList[T any](name string, list *observable.List[T], onSize func(), onItem func(index int)) *BoundList[T] {
	b := &BoundList[T]{
		name:   name,
		list:   list,
		onSize: onSize,
		onItem: onItem,
	}
	b.listUnbind = list.BindList(b.refresh)
	b.rebind()
	return b
}

// Name returns the name given at construction.
func (b *BoundList[T]) Name() string {
	return b.name
}

// Len returns the number of mirrored values.
func (b *BoundList[T]) Len() int {
	return len(b.values)
}

// At returns the mirrored value at index i.
func (b *BoundList[T]) At(i int) T {
	return b.values[i]
}

// Values returns a copy of the mirrored values.
func (b *BoundList[T]) Values() []T {
	out := make([]T, len(b.values))
	copy(out, b.values)
	return out
}

// Set writes value through to the cell at index i.
func (b *BoundList[T]) Set(i int, value T) {
	b.list.Set(i, value)
}

// Update forwards values to the bound list.
func (b *BoundList[T]) Update(values []T) {
	b.list.Update(values)
}

// Close releases the list binding and every cell binding.
// Calling Close more than once is a no-op.
func (b *BoundList[T]) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.releaseCells()
	b.listUnbind()
}

func (b *BoundList[T]) refresh() {
	if b.closed {
		return
	}
	b.rebind()
	if b.onSize != nil {
		b.onSize()
	}
}

func (b *BoundList[T]) rebind() {
	b.releaseCells()
	b.values = make([]T, 0, b.list.Len())
	for i, cell := range b.list.All() {
		b.cellUnbinds = append(b.cellUnbinds, cell.BindProperty(func() { b.refreshItem(i) }))
		b.values = append(b.values, cell.Get())
	}
}

func (b *BoundList[T]) refreshItem(i int) {
	if b.closed {
		return
	}
	if i >= 0 && i < len(b.values) && i < b.list.Len() {
		b.values[i] = b.list.Get(i)
	}
	if b.onItem != nil {
		b.onItem(i)
	}
}

func (b *BoundList[T]) releaseCells() {
	for _, unbind := range b.cellUnbinds {
		unbind()
	}
	b.cellUnbinds = nil
}
