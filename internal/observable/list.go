package observable

import (
	"fmt"
	"iter"
	"strings"

	"github.com/charmbracelet/log"
)

// List is an ordered sequence of Property cells.
//
// The list notifies its own observers for structural changes made through
// Update; each cell notifies its observers for value changes.
type List[T any] struct {
	Observable

	cells  []*Property[T]
	equal  func(a, b T) bool
	binder binder
}

// NewList wraps every value in a fresh cell, compared with ==.
// No notification fires during construction.
func NewList[T comparable](values []T) *List[T] {
	return NewListFunc(values, equalComparable[T])
}

// NewListFunc is NewList with an explicit equality function.
func NewListFunc[T any](values []T, equal func(a, b T) bool) *List[T] {
	if equal == nil {
		panic("observable: nil equality function")
	}
	l := &List[T]{
		cells: make([]*Property[T], 0, len(values)),
		equal: equal,
	}
	for _, value := range values {
		l.Append(value)
	}
	return l
}

// SetLogger sets the fault logger of the list and of every cell it holds.
func (l *List[T]) SetLogger(logger *log.Logger) {
	l.Observable.SetLogger(logger)
	for _, cell := range l.cells {
		cell.SetLogger(logger)
	}
}

// Len returns the number of cells.
func (l *List[T]) Len() int {
	return len(l.cells)
}

// At returns the cell at index i. It panics if i is out of range.
func (l *List[T]) At(i int) *Property[T] {
	return l.cells[i]
}

// Get returns the value of the cell at index i.
func (l *List[T]) Get(i int) T {
	return l.cells[i].Get()
}

// Set sets the value of the cell at index i and reports whether it changed.
func (l *List[T]) Set(i int, value T) bool {
	return l.cells[i].Set(value)
}

// Values returns a copy of the current values.
func (l *List[T]) Values() []T {
	values := make([]T, len(l.cells))
	for i, cell := range l.cells {
		values[i] = cell.Get()
	}
	return values
}

// Cells returns a copy of the cell slice.
func (l *List[T]) Cells() []*Property[T] {
	cells := make([]*Property[T], len(l.cells))
	copy(cells, l.cells)
	return cells
}

// All iterates over index and cell pairs.
func (l *List[T]) All() iter.Seq2[int, *Property[T]] {
	return func(yield func(int, *Property[T]) bool) {
		for i, cell := range l.cells {
			if !yield(i, cell) {
				return
			}
		}
	}
}

// Append wraps value in a new cell and adds it at the end. It does not notify.
func (l *List[T]) Append(value T) {
	l.AppendCell(l.newCell(value))
}

// AppendCell adds an existing cell at the end, keeping its identity.
func (l *List[T]) AppendCell(cell *Property[T]) {
	l.cells = append(l.cells, cell)
}

// Insert wraps value in a new cell placed at index i. It does not notify.
func (l *List[T]) Insert(i int, value T) {
	l.InsertCell(i, l.newCell(value))
}

// InsertCell places an existing cell at index i, keeping its identity.
// It panics if i is outside [0, Len()].
func (l *List[T]) InsertCell(i int, cell *Property[T]) {
	if i < 0 || i > len(l.cells) {
		panic(fmt.Sprintf("observable: insert index %d out of range [0:%d]", i, len(l.cells)))
	}
	l.cells = append(l.cells, nil)
	copy(l.cells[i+1:], l.cells[i:])
	l.cells[i] = cell
}

// Delete removes the cell at index i and drops its subscriptions.
// It does not notify.
func (l *List[T]) Delete(i int) {
	cell := l.cells[i]
	l.cells = append(l.cells[:i], l.cells[i+1:]...)
	cell.detach()
}

// Update reconciles the list with values.
//
// When the lengths match, every cell is Set in place: changed cells notify
// their own observers and the list observers are not called. Otherwise the
// minimal edit script between the current values and values is applied one
// deletion or insertion at a time, untouched cells keep their identity and
// subscriptions, and the list observers are notified exactly once.
//
// Update returns the applied edits, or nil for the in-place path.
func (l *List[T]) Update(values []T) []Edit[T] {
	if len(values) == len(l.cells) {
		cells := l.Cells()
		for i, value := range values {
			cells[i].Set(value)
		}
		return nil
	}

	edits := Diff(l.Values(), values, l.equal)
	for _, edit := range edits {
		switch edit.Op {
		case OpDelete:
			l.Delete(edit.Index)
		case OpInsert:
			l.Insert(edit.Index, edit.Value)
		}
	}
	l.NotifyObservers()
	return edits
}

// BindList subscribes fn to structural changes and returns its own handle.
func (l *List[T]) BindList(fn func()) Unbind {
	return l.binder.bind(&l.Observable, fn)
}

// UnbindList releases the most recent BindList subscription that is still
// active. It is a no-op when none is left.
func (l *List[T]) UnbindList() {
	l.binder.releaseLast(&l.Observable)
}

// String formats the current values like a slice.
func (l *List[T]) String() string {
	parts := make([]string, len(l.cells))
	for i, cell := range l.cells {
		parts[i] = cell.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (l *List[T]) newCell(value T) *Property[T] {
	cell := NewPropertyFunc(value, l.equal)
	cell.logger = l.logger
	return cell
}
