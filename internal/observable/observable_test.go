package observable

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

type counter struct {
	calls    int
	payloads [][]any
}

func (c *counter) Notify(payload ...any) {
	c.calls++
	c.payloads = append(c.payloads, payload)
}

func TestAddObserverIgnoresDuplicates(t *testing.T) {
	var o Observable
	c := &counter{}
	o.AddObserver(c)
	o.AddObserver(c)

	if got := o.Observers(); got != 1 {
		t.Fatalf("Observers: got %d, want 1", got)
	}
	o.NotifyObservers()
	if c.calls != 1 {
		t.Errorf("calls: got %d, want 1", c.calls)
	}
}

func TestRemoveObserverAbsentIsNoop(t *testing.T) {
	var o Observable
	c := &counter{}
	o.RemoveObserver(c)
	o.AddObserver(c)
	o.RemoveObserver(c)
	o.RemoveObserver(c)

	if o.HasObserver(c) {
		t.Error("expected observer to be removed")
	}
}

func TestNotifyObserversOrderAndPayload(t *testing.T) {
	var o Observable
	var order []string
	o.AddObserver(Func(func(payload ...any) {
		order = append(order, "first:"+payload[0].(string))
	}))
	o.AddObserver(Func(func(payload ...any) {
		order = append(order, "second:"+payload[0].(string))
	}))

	o.NotifyObservers("changed")

	want := []string{"first:changed", "second:changed"}
	if len(order) != len(want) {
		t.Fatalf("order: got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d]: got %q, want %q", i, order[i], want[i])
		}
	}
}

func TestNotifyObserversIsolatesPanics(t *testing.T) {
	var buf bytes.Buffer
	var o Observable
	o.SetLogger(log.New(&buf))

	after := &counter{}
	o.AddObserver(Func(func(...any) { panic("boom") }))
	o.AddObserver(after)

	o.NotifyObservers()

	if after.calls != 1 {
		t.Errorf("observer after the faulty one: got %d calls, want 1", after.calls)
	}
	if !strings.Contains(buf.String(), "observer panicked") {
		t.Errorf("expected fault to be logged, got %q", buf.String())
	}
	if o.Observers() != 2 {
		t.Errorf("Observers: got %d, want 2", o.Observers())
	}
}

func TestNotifyObserversSkipsObserverRemovedDuringRound(t *testing.T) {
	var o Observable
	second := &counter{}
	o.AddObserver(Func(func(...any) { o.RemoveObserver(second) }))
	o.AddObserver(second)

	o.NotifyObservers()

	if second.calls != 0 {
		t.Errorf("removed observer: got %d calls, want 0", second.calls)
	}
}

func TestNotifyObserversDefersObserverAddedDuringRound(t *testing.T) {
	var o Observable
	late := &counter{}
	o.AddObserver(Func(func(...any) { o.AddObserver(late) }))

	o.NotifyObservers()
	if late.calls != 0 {
		t.Errorf("first round: got %d calls, want 0", late.calls)
	}
	o.NotifyObservers()
	if late.calls != 1 {
		t.Errorf("second round: got %d calls, want 1", late.calls)
	}
}

func TestBindSymmetry(t *testing.T) {
	var o Observable
	c := &counter{}
	other := &counter{}

	unbind := o.Bind(c)
	o.AddObserver(other)
	unbind()
	unbind()

	if o.HasObserver(c) {
		t.Error("expected bound observer to be removed")
	}
	if !o.HasObserver(other) {
		t.Error("second unbind removed an unrelated observer")
	}
}

func TestBindDoesNotRemoveRebinding(t *testing.T) {
	var o Observable
	c := &counter{}

	first := o.Bind(c)
	first()
	second := o.Bind(c)
	first()

	if !o.HasObserver(c) {
		t.Error("stale handle removed a newer binding")
	}
	second()
	if o.HasObserver(c) {
		t.Error("expected observer to be removed")
	}
}

func TestFuncObserversAreDistinct(t *testing.T) {
	var o Observable
	calls := 0
	fn := func(...any) { calls++ }
	o.AddObserver(Func(fn))
	o.AddObserver(Func(fn))

	o.NotifyObservers()
	if calls != 2 {
		t.Errorf("calls: got %d, want 2", calls)
	}
}
