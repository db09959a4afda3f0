package observable

import "fmt"

// Property is a single observable value cell.
// Set notifies observers only when the new value differs from the current one.
type Property[T any] struct {
	Observable

	value  T
	equal  func(a, b T) bool
	binder binder
}

// NewProperty returns a cell holding value, compared with ==.
func NewProperty[T comparable](value T) *Property[T] {
	return NewPropertyFunc(value, equalComparable[T])
}

// NewPropertyFunc returns a cell holding value, compared with equal.
// Use it for values that are not comparable with ==, such as slices.
func NewPropertyFunc[T any](value T, equal func(a, b T) bool) *Property[T] {
	if equal == nil {
		panic("observable: nil equality function")
	}
	return &Property[T]{value: value, equal: equal}
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	return p.value
}

// Set stores value and notifies observers if it differs from the current
// value. It reports whether the value changed.
func (p *Property[T]) Set(value T) bool {
	if p.equal(p.value, value) {
		return false
	}
	p.value = value
	p.NotifyObservers()
	return true
}

// BindProperty subscribes fn to value changes and returns its own handle.
func (p *Property[T]) BindProperty(fn func()) Unbind {
	return p.binder.bind(&p.Observable, fn)
}

// UnbindProperty releases the most recent BindProperty subscription that is
// still active. It is a no-op when none is left.
func (p *Property[T]) UnbindProperty() {
	p.binder.releaseLast(&p.Observable)
}

// String formats the current value.
func (p *Property[T]) String() string {
	return fmt.Sprint(p.value)
}

// detach drops every subscription; the cell no longer belongs to a list.
func (p *Property[T]) detach() {
	p.clear()
	p.binder.reset()
}

func equalComparable[T comparable](a, b T) bool {
	return a == b
}
