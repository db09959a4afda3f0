// Package ui renders the task views in the terminal.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmanager-go/internal/task"
	"github.com/nibzard/taskmanager-go/internal/watch"
)

// Options configures Run.
type Options struct {
	Store  task.Store
	Logger *log.Logger
	// View names the pane shown first: buttons, columns, rows or chart.
	View string
	// WatchPath enables refreshing on external changes to that file.
	WatchPath  string
	WatchDelay time.Duration
}

// externalChangeMsg reports that the data file changed on disk.
type externalChangeMsg struct{}

// Run starts the terminal UI and blocks until the user quits or ctx is done.
// All view-models and bindings are released before Run returns.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return errors.New("ui: nil store")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	m := newModel(opts.Store, opts.View, logger)
	defer m.close()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if opts.WatchPath != "" {
		wopts := []watch.Option{watch.WithLogger(logger)}
		if opts.WatchDelay > 0 {
			wopts = append(wopts, watch.WithDelay(opts.WatchDelay))
		}
		w, err := watch.New(opts.WatchPath, func() { program.Send(externalChangeMsg{}) }, wopts...)
		if err != nil {
			return fmt.Errorf("watching %s: %w", opts.WatchPath, err)
		}
		defer w.Close()

		wctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := w.Run(wctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("watcher stopped", "err", err)
			}
		}()
	}

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type model struct {
	store  task.Store
	logger *log.Logger

	panes  []pane
	active int
	width  int

	status   string
	err      error
	showHelp bool
	closed   bool
}

func newModel(store task.Store, view string, logger *log.Logger) *model {
	m := &model{
		store:  store,
		logger: logger,
		width:  80,
		panes: []pane{
			newButtonsPane(store, logger),
			newColumnsPane(store, logger),
			newRowsPane(store, logger),
			newChartPane(store, logger),
		},
	}
	for i, p := range m.panes {
		if p.name() == view {
			m.active = i
		}
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case externalChangeMsg:
		m.checkExternal()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	m.err = nil
	m.status = ""
	p := m.panes[m.active]
	if p.editing() {
		m.report(p.handleKey(msg))
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.active = (m.active + 1) % len(m.panes)
	case "shift+tab":
		m.active = (m.active + len(m.panes) - 1) % len(m.panes)
	case "r", "f5":
		for _, p := range m.panes {
			p.refresh()
		}
		m.status = "refreshed"
	case "h", "?":
		m.showHelp = !m.showHelp
	default:
		m.report(p.handleKey(msg))
	}
	return m, nil
}

// checkExternal lets the store notify the panes about an external change.
func (m *model) checkExternal() {
	changed, err := m.store.CheckExternal()
	if err != nil {
		m.report(fmt.Errorf("reloading %s: %w", m.store.Path(), err))
		return
	}
	if changed {
		m.logger.Info("data file changed on disk", "path", m.store.Path())
		m.status = "reloaded external changes"
	}
}

func (m *model) report(err error) {
	if err == nil {
		return
	}
	m.logger.Warn("action failed", "err", err)
	m.err = err
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Manager") + "  " + mutedStyle.Render(m.store.Path()) + "\n")
	b.WriteString(m.tabs() + "\n\n")

	if m.showHelp {
		writeHelp(&b)
	} else {
		b.WriteString(m.panes[m.active].render(m.width))
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(mutedStyle.Render("tab switch view | a add | e edit | d delete | r refresh | h help | q quit") + "\n")
	return b.String()
}

func (m *model) tabs() string {
	tabs := make([]string, len(m.panes))
	for i, p := range m.panes {
		if i == m.active {
			tabs[i] = activeTabStyle.Render(p.name())
		} else {
			tabs[i] = tabStyle.Render(p.name())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// close releases every binding and view-model. It is safe to call twice.
func (m *model) close() {
	if m.closed {
		return
	}
	m.closed = true
	for _, p := range m.panes {
		p.close()
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  tab, shift+tab  Switch view\n")
	b.WriteString("  up/down, k/j    Move selection\n")
	b.WriteString("  a               Add a task\n")
	b.WriteString("  e, enter        Edit the selected task\n")
	b.WriteString("  d               Delete the selected task\n")
	b.WriteString("  enter / esc     Confirm or cancel an edit\n")
	b.WriteString("  r, F5           Refresh from the data file\n")
	b.WriteString("  h, ?            Toggle this help screen\n")
	b.WriteString("  q, ctrl+c       Quit\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
