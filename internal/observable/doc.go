// Package observable implements change-notifying values and lists.
//
// An Observable keeps an ordered set of observers and notifies them
// synchronously. A Property is a single value cell that notifies only when
// a Set supplies a different value. A List is an ordered sequence of
// Property cells; List.Update reconciles the list against a new sequence
// of values with a minimal edit script so that unchanged cells keep their
// identity and their subscriptions.
//
// # Notifications
//
// Notifications carry no value: observers call Get to read the current
// state. Delivery happens in registration order on the calling goroutine.
// An observer that panics is recovered and logged; the remaining observers
// still run.
//
// # Lifecycle
//
// Every Bind call returns an Unbind handle. Consumers must release their
// handles before the observable or the consumer is discarded. Releasing a
// handle twice is a no-op.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use. Callers that receive
// events on other goroutines (file watchers, timers) must marshal them onto
// the goroutine that owns the observables before calling Set or Update.
// Observers may call back into Set or Update; such nested notifications are
// delivered like any reentrant function call, so consumers that both listen
// and write guard their refresh with a flag.
package observable
