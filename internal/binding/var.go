package binding

import "github.com/nibzard/taskmanager-go/internal/observable"

// Var binds a widget-side value to an observable.Property in both directions.
//
// Set writes the widget value to the property when they differ. A property
// change refreshes the widget value when they differ and calls onChange.
type Var[T comparable] struct {
	name     string
	prop     *observable.Property[T]
	value    T
	onChange func(T)
	unbind   observable.Unbind
	closed   bool
}

// NewVar binds prop and initialises the widget value from it.
// onChange may be nil; it is not called for the initial value.
func NewVar[T comparable](name string, prop *observable.Property[T], onChange func(T)) *Var[T] {
	v := &Var[T]{
		name:     name,
		prop:     prop,
		value:    prop.Get(),
		onChange: onChange,
	}
	v.unbind = prop.BindProperty(v.pull)
	return v
}

// Name returns the name given at construction.
func (v *Var[T]) Name() string {
	return v.name
}

// Get returns the widget-side value.
func (v *Var[T]) Get() T {
	return v.value
}

// Set stores the widget-side value and pushes it to the property.
func (v *Var[T]) Set(value T) {
	v.value = value
	if v.closed {
		return
	}
	if v.prop.Get() != value {
		v.prop.Set(value)
	}
}

// Close releases the property binding. Calling it more than once is a no-op.
func (v *Var[T]) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.unbind()
}

func (v *Var[T]) pull() {
	current := v.prop.Get()
	if current == v.value {
		return
	}
	v.value = current
	if v.onChange != nil {
		v.onChange(current)
	}
}
