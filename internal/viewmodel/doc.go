// Package viewmodel exposes tasks as observable state for four views.
//
// Each view-model registers itself with the task store through its own
// controller. A store notification, caused by any view or by an external
// file change, makes every view-model re-read the tasks and reconcile its
// observable lists with List.Update. A view-model ignores notifications
// that arrive while it is already refreshing.
//
// View-models are not safe for concurrent use; they run on the goroutine
// that owns the store.
package viewmodel
