package viewmodel

import (
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmanager-go/internal/observable"
	"github.com/nibzard/taskmanager-go/internal/task"
)

// Left button captions of TwoColumns.
const (
	ButtonAdd    = "Add"
	ButtonUpdate = "Update"
)

// TwoColumns shows a (title, priority) table with entry fields that add a
// task, or update and delete the selected one.
type TwoColumns struct {
	base

	Rows *observable.List[Pair]

	Label *observable.Property[string]
	Value *observable.Property[string]

	LeftButton    *observable.Property[string]
	DeleteEnabled *observable.Property[bool]

	selected int
}

// NewTwoColumns registers a TwoColumns with store.
func NewTwoColumns(store task.Store, logger *log.Logger) *TwoColumns {
	vm := &TwoColumns{
		Label:         observable.NewProperty(LabelInit),
		Value:         observable.NewProperty(ValueInit),
		LeftButton:    observable.NewProperty(ButtonAdd),
		DeleteEnabled: observable.NewProperty(false),
		selected:      -1,
	}
	vm.init("columns", store, vm, logger)
	vm.Rows = observable.NewList(pairs(vm.rows))
	vm.Rows.SetLogger(vm.logger)
	return vm
}

// Selected returns the selected row index, or -1.
func (vm *TwoColumns) Selected() int {
	return vm.selected
}

// Select selects row i and copies it into the entry fields.
// An index outside the rows clears the selection.
func (vm *TwoColumns) Select(i int) {
	row, ok := vm.row(i)
	if !ok {
		vm.ClearSelection()
		return
	}
	vm.selected = i
	vm.Label.Set(row.Title)
	vm.Value.Set(row.Priority)
	vm.LeftButton.Set(ButtonUpdate)
	vm.DeleteEnabled.Set(true)
}

// ClearSelection resets the entry fields.
func (vm *TwoColumns) ClearSelection() {
	vm.selected = -1
	vm.Label.Set(LabelInit)
	vm.Value.Set(ValueInit)
	vm.LeftButton.Set(ButtonAdd)
	vm.DeleteEnabled.Set(false)
}

// AddOrUpdate updates the selected task from the entry fields, or adds a
// task when nothing is selected. An empty title is ignored.
func (vm *TwoColumns) AddOrUpdate() error {
	if vm.Label.Get() == "" {
		return nil
	}
	if row, ok := vm.row(vm.selected); ok {
		return vm.controller.UpdateTask(row, vm.Label.Get(), vm.Value.Get())
	}
	return vm.controller.CreateTask(vm.Label.Get(), vm.Value.Get())
}

// Delete removes the selected task.
func (vm *TwoColumns) Delete() error {
	row, ok := vm.row(vm.selected)
	if !ok {
		return nil
	}
	return vm.controller.DeleteTask(row)
}

// Refresh re-reads the tasks, reconciles Rows and clears the selection.
func (vm *TwoColumns) Refresh() {
	vm.guarded(func() {
		if vm.read() {
			vm.Rows.Update(pairs(vm.rows))
		}
		vm.ClearSelection()
	})
}

// Notify implements observable.Observer.
func (vm *TwoColumns) Notify(...any) {
	vm.Refresh()
}
