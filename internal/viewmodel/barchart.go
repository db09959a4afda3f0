package viewmodel

import (
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmanager-go/internal/observable"
	"github.com/nibzard/taskmanager-go/internal/task"
)

// NoItemMessage is shown by an empty chart.
const NoItemMessage = "No task to display"

// BarChart shows one bar per task, sized by priority.
type BarChart struct {
	base

	Bars *observable.List[Pair]

	ValueName    string
	ValueOptions []int
	// Reversed draws the lowest value as the tallest bar, as priority 1
	// is the most urgent.
	Reversed      bool
	NoItemMessage string
}

// NewBarChart registers a BarChart with store.
func NewBarChart(store task.Store, logger *log.Logger) *BarChart {
	vm := &BarChart{
		ValueName:     ChartValue,
		Reversed:      true,
		NoItemMessage: NoItemMessage,
	}
	for p := task.MinPriority; p <= task.MaxPriority; p++ {
		vm.ValueOptions = append(vm.ValueOptions, p)
	}
	vm.init("chart", store, vm, logger)
	vm.Bars = observable.NewList(pairs(vm.rows))
	vm.Bars.SetLogger(vm.logger)
	return vm
}

// Height returns the bar height of value on a scale of ValueOptions, or 0
// for a value outside the options.
func (vm *BarChart) Height(value int) int {
	for i, opt := range vm.ValueOptions {
		if opt != value {
			continue
		}
		if vm.Reversed {
			return len(vm.ValueOptions) - i
		}
		return i + 1
	}
	return 0
}

// Refresh re-reads the tasks and reconciles Bars.
func (vm *BarChart) Refresh() {
	vm.guarded(func() {
		if vm.read() {
			vm.Bars.Update(pairs(vm.rows))
		}
	})
}

// Notify implements observable.Observer.
func (vm *BarChart) Notify(...any) {
	vm.Refresh()
}
