package viewmodel

import (
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmanager-go/internal/observable"
	"github.com/nibzard/taskmanager-go/internal/task"
)

// TwoRows shows titles and priorities as two parallel editable lists.
type TwoRows struct {
	base

	Labels *observable.List[string]
	Values *observable.List[string]

	// Entry fields of the new task form.
	Label *observable.Property[string]
	Value *observable.Property[string]
}

// NewTwoRows registers a TwoRows with store.
func NewTwoRows(store task.Store, logger *log.Logger) *TwoRows {
	vm := &TwoRows{
		Label: observable.NewProperty(LabelInit),
		Value: observable.NewProperty(ValueInit),
	}
	vm.init("rows", store, vm, logger)
	vm.Labels = observable.NewList(vm.labels())
	vm.Values = observable.NewList(vm.values())
	vm.Labels.SetLogger(vm.logger)
	vm.Values.SetLogger(vm.logger)
	return vm
}

func (vm *TwoRows) labels() []string {
	out := make([]string, len(vm.rows))
	for i, r := range vm.rows {
		out[i] = r.Title
	}
	return out
}

func (vm *TwoRows) values() []string {
	out := make([]string, len(vm.rows))
	for i, r := range vm.rows {
		out[i] = r.Priority
	}
	return out
}

// Add creates a task from the entry fields, then resets them.
// An empty title only resets the fields.
func (vm *TwoRows) Add() error {
	label, value := vm.Label.Get(), vm.Value.Get()
	var err error
	if label != "" {
		err = vm.controller.CreateTask(label, value)
	}
	vm.Label.Set(LabelInit)
	vm.Value.Set(ValueInit)
	return err
}

// OnLabelReturn renames task i, or deletes it when label is empty.
func (vm *TwoRows) OnLabelReturn(label string, i int) error {
	row, ok := vm.row(i)
	if !ok {
		return nil
	}
	if label == "" {
		return vm.controller.DeleteTask(row)
	}
	return vm.controller.UpdateTask(row, label, row.Priority)
}

// OnModifiedValue changes the priority of task i.
func (vm *TwoRows) OnModifiedValue(value string, i int) error {
	row, ok := vm.row(i)
	if !ok {
		return nil
	}
	return vm.controller.UpdateTask(row, row.Title, value)
}

// Refresh re-reads the tasks and reconciles both lists.
func (vm *TwoRows) Refresh() {
	vm.guarded(func() {
		if vm.read() {
			vm.Labels.Update(vm.labels())
			vm.Values.Update(vm.values())
		}
	})
}

// Notify implements observable.Observer.
func (vm *TwoRows) Notify(...any) {
	vm.Refresh()
}
