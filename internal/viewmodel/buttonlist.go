package viewmodel

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmanager-go/internal/observable"
	"github.com/nibzard/taskmanager-go/internal/task"
)

// Popup actions of ButtonList.
const (
	ActionNone   = ""
	ActionAdd    = "Add"
	ActionUpdate = "Update"
	ActionDelete = "Delete"
)

// Mode is the editability of the popup entry fields.
type Mode int

const (
	ModeNormal Mode = iota
	ModeReadonly
)

// ButtonList shows one line per task with edit and delete buttons, and a
// popup to add, update or delete a task.
type ButtonList struct {
	base

	// Items holds "<title>, Priority: <priority>" per task.
	Items *observable.List[string]

	Label *observable.Property[string]
	Value *observable.Property[string]

	Action string
	Mode   Mode

	confirm func() error
}

// NewButtonList registers a ButtonList with store.
func NewButtonList(store task.Store, logger *log.Logger) *ButtonList {
	vm := &ButtonList{
		Label: observable.NewProperty(LabelInit),
		Value: observable.NewProperty(ValueInit),
	}
	vm.init("buttons", store, vm, logger)
	vm.Items = observable.NewList(vm.format())
	vm.Items.SetLogger(vm.logger)
	return vm
}

func (vm *ButtonList) format() []string {
	items := make([]string, len(vm.rows))
	for i, r := range vm.rows {
		items[i] = fmt.Sprintf("%s, %s %s", r.Title, ValueName, r.Priority)
	}
	return items
}

// PopupOpen reports whether an action is waiting for Confirm or Cancel.
func (vm *ButtonList) PopupOpen() bool {
	return vm.Action != ActionNone
}

// InitAdd opens the popup with the initial field values.
func (vm *ButtonList) InitAdd() {
	vm.Label.Set(LabelInit)
	vm.Value.Set(ValueInit)
	vm.open(ActionAdd, ModeNormal, func() error {
		if vm.Label.Get() == "" {
			return nil
		}
		return vm.controller.CreateTask(vm.Label.Get(), vm.Value.Get())
	})
}

// InitUpdate opens the popup on task i with editable fields. Confirm
// addresses the task as it was when the popup opened.
// It reports false when i does not address a displayed task.
func (vm *ButtonList) InitUpdate(i int) bool {
	row, ok := vm.row(i)
	if !ok {
		return false
	}
	vm.Label.Set(row.Title)
	vm.Value.Set(row.Priority)
	vm.open(ActionUpdate, ModeNormal, func() error {
		if vm.Label.Get() == "" {
			return nil
		}
		return vm.controller.UpdateTask(row, vm.Label.Get(), vm.Value.Get())
	})
	return true
}

// InitDelete opens the popup on task i with read-only fields.
// It reports false when i does not address a displayed task.
func (vm *ButtonList) InitDelete(i int) bool {
	row, ok := vm.row(i)
	if !ok {
		return false
	}
	vm.Label.Set(row.Title)
	vm.Value.Set(row.Priority)
	vm.open(ActionDelete, ModeReadonly, func() error {
		return vm.controller.DeleteTask(row)
	})
	return true
}

func (vm *ButtonList) open(action string, mode Mode, confirm func() error) {
	vm.Action = action
	vm.Mode = mode
	vm.confirm = confirm
}

func (vm *ButtonList) closePopup() {
	vm.Action = ActionNone
	vm.Mode = ModeNormal
	vm.confirm = nil
}

// Confirm runs the pending popup action and closes the popup.
func (vm *ButtonList) Confirm() error {
	confirm := vm.confirm
	vm.closePopup()
	if confirm == nil {
		return nil
	}
	return confirm()
}

// Cancel closes the popup and refreshes.
func (vm *ButtonList) Cancel() {
	vm.closePopup()
	vm.Notify()
}

// Refresh re-reads the tasks and reconciles Items.
func (vm *ButtonList) Refresh() {
	vm.guarded(func() {
		if vm.read() {
			vm.Items.Update(vm.format())
		}
	})
}

// Notify implements observable.Observer.
func (vm *ButtonList) Notify(...any) {
	vm.Refresh()
}
