package observable

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Observer receives notifications from an Observable.
// Implementations must be comparable; registration and removal use ==.
type Observer interface {
	Notify(payload ...any)
}

// funcObserver adapts a function to Observer. Pointer identity keeps it comparable.
type funcObserver struct {
	fn func(payload ...any)
}

func (f *funcObserver) Notify(payload ...any) {
	f.fn(payload...)
}

// Func wraps fn into an Observer. Every call returns a distinct observer,
// so wrapping the same function twice yields two subscriptions.
func Func(fn func(payload ...any)) Observer {
	return &funcObserver{fn: fn}
}

// Unbind removes the subscription it was returned for.
// Calling it more than once is a no-op.
type Unbind func()

// Observable is an ordered set of observers. The zero value is ready to use.
type Observable struct {
	observers []Observer
	logger    *log.Logger
}

// SetLogger sets the logger used to report observer faults.
// A nil logger restores the default logger.
func (o *Observable) SetLogger(logger *log.Logger) {
	o.logger = logger
}

func (o *Observable) log() *log.Logger {
	if o.logger == nil {
		return log.Default()
	}
	return o.logger
}

// AddObserver registers obs. An observer that is already registered is ignored.
func (o *Observable) AddObserver(obs Observer) {
	if obs == nil || o.indexOf(obs) >= 0 {
		return
	}
	o.observers = append(o.observers, obs)
}

// RemoveObserver unregisters obs. Removing an absent observer is a no-op.
func (o *Observable) RemoveObserver(obs Observer) {
	index := o.indexOf(obs)
	if index < 0 {
		return
	}
	o.observers = append(o.observers[:index], o.observers[index+1:]...)
}

// HasObserver reports whether obs is registered.
func (o *Observable) HasObserver(obs Observer) bool {
	return o.indexOf(obs) >= 0
}

// Observers returns the number of registered observers.
func (o *Observable) Observers() int {
	return len(o.observers)
}

// NotifyObservers calls every registered observer in registration order.
// Observers removed by an earlier observer during the same round are skipped;
// observers added during the round are first called on the next round.
func (o *Observable) NotifyObservers(payload ...any) {
	if len(o.observers) == 0 {
		return
	}
	round := make([]Observer, len(o.observers))
	copy(round, o.observers)
	for _, obs := range round {
		if o.indexOf(obs) < 0 {
			continue
		}
		o.deliver(obs, payload)
	}
}

// Bind registers obs and returns the handle that removes it.
func (o *Observable) Bind(obs Observer) Unbind {
	o.AddObserver(obs)
	released := false
	return func() {
		if released {
			return
		}
		released = true
		o.RemoveObserver(obs)
	}
}

func (o *Observable) deliver(obs Observer, payload []any) {
	defer func() {
		if r := recover(); r != nil {
			o.log().Error("observer panicked",
				"observer", fmt.Sprintf("%T", obs),
				"panic", r,
			)
		}
	}()
	obs.Notify(payload...)
}

func (o *Observable) indexOf(obs Observer) int {
	for i, registered := range o.observers {
		if registered == obs {
			return i
		}
	}
	return -1
}

// clear drops every observer. Used when a cell leaves its list.
func (o *Observable) clear() {
	o.observers = nil
}

// binder tracks the convenience bindings made through BindProperty and
// BindList so that UnbindProperty and UnbindList can release them.
type binder struct {
	active []Observer
}

func (b *binder) bind(o *Observable, fn func()) Unbind {
	obs := Func(func(...any) { fn() })
	o.AddObserver(obs)
	b.active = append(b.active, obs)
	released := false
	return func() {
		if released {
			return
		}
		released = true
		b.release(o, obs)
	}
}

func (b *binder) release(o *Observable, obs Observer) {
	o.RemoveObserver(obs)
	for i, active := range b.active {
		if active == obs {
			b.active = append(b.active[:i], b.active[i+1:]...)
			return
		}
	}
}

// releaseLast releases the most recent binding that is still active.
func (b *binder) releaseLast(o *Observable) {
	if len(b.active) == 0 {
		return
	}
	b.release(o, b.active[len(b.active)-1])
}

func (b *binder) reset() {
	b.active = nil
}
