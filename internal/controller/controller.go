// Package controller mediates between views and a task store.
//
// Views exchange tasks as rows of display strings. The controller converts
// them, and locates a selected row in the store by value so that a view
// holding a stale row never touches the wrong task.
package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmanager-go/internal/observable"
	"github.com/nibzard/taskmanager-go/internal/task"
)

// Row is a task formatted for display.
type Row struct {
	Title      string
	Priority   string
	ModifiedOn string
}

// RowOf formats t as a Row.
func RowOf(t task.Task) Row {
	return Row{
		Title:      t.Title,
		Priority:   strconv.Itoa(t.Priority),
		ModifiedOn: task.FormatTime(t.ModifiedOn),
	}
}

// Controller registers one observer with a store for its lifetime.
type Controller struct {
	store    task.Store
	observer observable.Observer
	logger   *log.Logger
	closed   bool
}

// New registers observer with store. A nil logger uses the default logger.
func New(store task.Store, observer observable.Observer, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	store.AddObserver(observer)
	return &Controller{
		store:    store,
		observer: observer,
		logger:   logger,
	}
}

// Close removes the observer from the store. It is safe to call more than once.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.store.RemoveObserver(c.observer)
}

// ReadTasks returns every stored task as a Row.
func (c *Controller) ReadTasks() ([]Row, error) {
	tasks, err := c.store.Read()
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		rows[i] = RowOf(t)
	}
	return rows, nil
}

// CreateTask appends a task. priority is parsed as a decimal integer.
func (c *Controller) CreateTask(title, priority string) error {
	p, err := parsePriority(priority)
	if err != nil {
		return err
	}
	return c.store.Create(title, p)
}

// UpdateTask replaces the stored task equal to selected.
// A row that no longer matches a stored task is ignored.
func (c *Controller) UpdateTask(selected Row, title, priority string) error {
	p, err := parsePriority(priority)
	if err != nil {
		return err
	}
	index, ok, err := c.indexOf(selected)
	if err != nil || !ok {
		return err
	}
	return c.store.Update(index, title, p)
}

// DeleteTask removes the stored task equal to selected.
// A row that no longer matches a stored task is ignored.
func (c *Controller) DeleteTask(selected Row) error {
	index, ok, err := c.indexOf(selected)
	if err != nil || !ok {
		return err
	}
	return c.store.Delete(index)
}

func (c *Controller) indexOf(selected Row) (int, bool, error) {
	rows, err := c.ReadTasks()
	if err != nil {
		return 0, false, err
	}
	for i, row := range rows {
		if row == selected {
			return i, true, nil
		}
	}
	c.logger.Debug("selected row not found in store", "title", selected.Title, "modified_on", selected.ModifiedOn)
	return 0, false, nil
}

func parsePriority(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &task.ValidationError{
			Path: "priority",
			Err:  fmt.Errorf("not a number: %q", s),
		}
	}
	return p, nil
}
