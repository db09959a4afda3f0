package viewmodel

import (
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmanager-go/internal/controller"
	"github.com/nibzard/taskmanager-go/internal/observable"
	"github.com/nibzard/taskmanager-go/internal/task"
)

// Shared labels of the input fields.
const (
	LabelName  = "Title:"
	ValueName  = "Priority:"
	LabelInit  = "Enter a new task here"
	ValueInit  = "5"
	ChartValue = "Priority"
)

// Pair is a (label, value) row of a two-column view.
type Pair struct {
	Label string
	Value string
}

// ValueOptions returns the selectable priorities as text.
func ValueOptions() []string {
	opts := make([]string, 0, task.MaxPriority-task.MinPriority+1)
	for p := task.MinPriority; p <= task.MaxPriority; p++ {
		opts = append(opts, strconv.Itoa(p))
	}
	return opts
}

// base holds what every view-model shares: its controller, the last rows
// read through it and the refresh guard.
type base struct {
	name       string
	controller *controller.Controller
	logger     *log.Logger
	rows       []controller.Row
	refreshing bool
}

func (b *base) init(name string, store task.Store, self observable.Observer, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	b.name = name
	b.logger = logger.WithPrefix(name)
	b.controller = controller.New(store, self, b.logger)
	b.read()
}

// read refreshes rows from the store and reports success.
// On failure the previous rows are kept.
func (b *base) read() bool {
	rows, err := b.controller.ReadTasks()
	if err != nil {
		b.logger.Error("read tasks", "err", err)
		return false
	}
	b.rows = rows
	return true
}

// guarded runs refresh unless a refresh is in progress.
func (b *base) guarded(refresh func()) {
	if b.refreshing {
		b.logger.Debug("notification ignored during refresh")
		return
	}
	b.refreshing = true
	defer func() { b.refreshing = false }()
	refresh()
}

func (b *base) row(i int) (controller.Row, bool) {
	if i < 0 || i >= len(b.rows) {
		return controller.Row{}, false
	}
	return b.rows[i], true
}

// TaskRows returns a copy of the rows last read from the store.
func (b *base) TaskRows() []controller.Row {
	return append([]controller.Row(nil), b.rows...)
}

// Close releases the store registration.
func (b *base) Close() {
	b.controller.Close()
}

func pairs(rows []controller.Row) []Pair {
	out := make([]Pair, len(rows))
	for i, r := range rows {
		out[i] = Pair{Label: r.Title, Value: r.Priority}
	}
	return out
}
