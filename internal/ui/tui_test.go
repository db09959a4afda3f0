package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmanager-go/internal/task"
)

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{})
}

func newMemoryStore(t *testing.T, seed ...task.Task) task.Store {
	t.Helper()
	s, err := task.Open(task.BackendMemory, "", task.WithTasks(seed), task.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends each key in order and returns the last command.
func press(m *model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func typeText(m *model, text string) {
	for _, r := range text {
		press(m, string(r))
	}
}

func readTasks(t *testing.T, s task.Store) []task.Task {
	t.Helper()
	tasks, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return tasks
}

func TestNewModelStartsOnView(t *testing.T) {
	tests := []struct {
		view string
		want int
	}{
		{"buttons", 0},
		{"columns", 1},
		{"rows", 2},
		{"chart", 3},
		{"", 0},
		{"unknown", 0},
	}

	for _, tt := range tests {
		t.Run(tt.view, func(t *testing.T) {
			m := newModel(newMemoryStore(t), tt.view, quietLogger())
			defer m.close()
			if m.active != tt.want {
				t.Errorf("active: got %d, want %d", m.active, tt.want)
			}
		})
	}
}

func TestTabCyclesPanes(t *testing.T) {
	m := newModel(newMemoryStore(t), "buttons", quietLogger())
	defer m.close()

	press(m, "tab", "tab")
	if m.active != 2 {
		t.Errorf("after two tabs: got %d, want 2", m.active)
	}
	press(m, "tab", "tab")
	if m.active != 0 {
		t.Errorf("after wrap: got %d, want 0", m.active)
	}
	press(m, "shift+tab")
	if m.active != 3 {
		t.Errorf("after shift+tab: got %d, want 3", m.active)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newModel(newMemoryStore(t), "buttons", quietLogger())
	defer m.close()

	for _, k := range []string{"q", "ctrl+c"} {
		cmd := press(m, k)
		if cmd == nil {
			t.Fatalf("%s: got nil command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command did not quit", k)
		}
	}
}

func TestQuitKeyTypesWhileEditing(t *testing.T) {
	m := newModel(newMemoryStore(t), "buttons", quietLogger())
	defer m.close()

	press(m, "a")
	if cmd := press(m, "q"); cmd != nil {
		t.Error("q quit while editing")
	}
	press(m, "enter")

	tasks := readTasks(t, m.store)
	if len(tasks) != 1 || tasks[0].Title != "q" {
		t.Errorf("tasks: got %+v, want one task titled q", tasks)
	}
}

func TestButtonsAddFlow(t *testing.T) {
	store := newMemoryStore(t, task.Task{Title: "Write", Priority: 2})
	m := newModel(store, "buttons", quietLogger())
	defer m.close()

	press(m, "a")
	if !strings.Contains(m.View(), "Enter a new task here") {
		t.Errorf("popup missing placeholder:\n%s", m.View())
	}
	typeText(m, "Ship it")
	press(m, "tab")
	typeText(m, "1")
	press(m, "enter")

	tasks := readTasks(t, store)
	if len(tasks) != 2 || tasks[1].Title != "Ship it" || tasks[1].Priority != 1 {
		t.Fatalf("tasks: got %+v", tasks)
	}
	if m.panes[0].editing() {
		t.Error("popup still open after confirm")
	}
	if view := m.View(); !strings.Contains(view, "Ship it, Priority: 1") {
		t.Errorf("view missing new item:\n%s", view)
	}
}

func TestButtonsEditAndDelete(t *testing.T) {
	store := newMemoryStore(t, task.Task{Title: "Write", Priority: 2}, task.Task{Title: "Read", Priority: 5})
	m := newModel(store, "buttons", quietLogger())
	defer m.close()

	press(m, "down", "e", "ctrl+u")
	typeText(m, "Study")
	press(m, "enter")

	tasks := readTasks(t, store)
	if tasks[1].Title != "Study" || tasks[1].Priority != 5 {
		t.Fatalf("after edit: got %+v", tasks[1])
	}

	press(m, "d")
	typeText(m, "ignored")
	press(m, "enter")

	tasks = readTasks(t, store)
	if len(tasks) != 1 || tasks[0].Title != "Write" {
		t.Errorf("after delete: got %+v", tasks)
	}
}

func TestEscCancelsEdit(t *testing.T) {
	store := newMemoryStore(t, task.Task{Title: "Write", Priority: 2})
	m := newModel(store, "buttons", quietLogger())
	defer m.close()

	press(m, "a")
	typeText(m, "Draft")
	press(m, "esc")

	if m.panes[0].editing() {
		t.Error("popup still open after esc")
	}
	if tasks := readTasks(t, store); len(tasks) != 1 {
		t.Errorf("tasks: got %d, want 1", len(tasks))
	}
}

func TestInvalidPriorityIsReported(t *testing.T) {
	store := newMemoryStore(t)
	m := newModel(store, "buttons", quietLogger())
	defer m.close()

	press(m, "a")
	typeText(m, "Urgent")
	press(m, "tab")
	typeText(m, "9")
	press(m, "enter")

	if m.err == nil {
		t.Fatal("expected an error for priority 9")
	}
	if view := m.View(); !strings.Contains(view, "Error:") {
		t.Errorf("view missing error line:\n%s", view)
	}
	if tasks := readTasks(t, store); len(tasks) != 0 {
		t.Errorf("tasks: got %+v, want none", tasks)
	}

	press(m, "down")
	if m.err != nil {
		t.Error("error not cleared by the next key")
	}
}

func TestColumnsUpdateAndDelete(t *testing.T) {
	store := newMemoryStore(t, task.Task{Title: "Write", Priority: 2}, task.Task{Title: "Read", Priority: 5})
	m := newModel(store, "columns", quietLogger())
	defer m.close()

	press(m, "e")
	if view := m.View(); !strings.Contains(view, "Update") {
		t.Errorf("editor missing Update action:\n%s", view)
	}
	press(m, "tab", "backspace")
	typeText(m, "3")
	press(m, "enter")

	tasks := readTasks(t, store)
	if tasks[0].Title != "Write" || tasks[0].Priority != 3 {
		t.Fatalf("after update: got %+v", tasks[0])
	}

	press(m, "down", "d")
	tasks = readTasks(t, store)
	if len(tasks) != 1 || tasks[0].Title != "Write" {
		t.Errorf("after delete: got %+v", tasks)
	}
}

func TestColumnsAdd(t *testing.T) {
	store := newMemoryStore(t)
	m := newModel(store, "columns", quietLogger())
	defer m.close()

	press(m, "a")
	typeText(m, "New")
	press(m, "enter")

	tasks := readTasks(t, store)
	if len(tasks) != 1 || tasks[0].Title != "New" || tasks[0].Priority != 5 {
		t.Errorf("tasks: got %+v, want New with default priority", tasks)
	}
}

func TestRowsEditInPlace(t *testing.T) {
	store := newMemoryStore(t, task.Task{Title: "Write", Priority: 2}, task.Task{Title: "Read", Priority: 5})
	m := newModel(store, "rows", quietLogger())
	defer m.close()

	press(m, "e", "ctrl+u")
	typeText(m, "Draft")
	press(m, "tab", "ctrl+u")
	typeText(m, "1")
	press(m, "enter")

	tasks := readTasks(t, store)
	if tasks[0].Title != "Draft" || tasks[0].Priority != 1 {
		t.Fatalf("after edit: got %+v", tasks[0])
	}

	// An empty title deletes the row.
	press(m, "down", "e", "ctrl+u", "enter")
	tasks = readTasks(t, store)
	if len(tasks) != 1 || tasks[0].Title != "Draft" {
		t.Errorf("after clearing title: got %+v", tasks)
	}
}

func TestRowsEditAfterStoreChange(t *testing.T) {
	tests := []struct {
		name   string
		remove int
		want   []string
	}{
		{name: "edited row moved up", remove: 0, want: []string{"Review"}},
		{name: "edited row removed", remove: 1, want: []string{"Write"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore(t, task.Task{Title: "Write", Priority: 2}, task.Task{Title: "Read", Priority: 5})
			m := newModel(store, "rows", quietLogger())
			defer m.close()

			press(m, "down", "e")
			if err := store.Delete(tt.remove); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			press(m, "ctrl+u")
			typeText(m, "Review")
			press(m, "enter")

			var got []string
			for _, tk := range readTasks(t, store) {
				got = append(got, tk.Title)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("titles: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRowsAddAndDelete(t *testing.T) {
	store := newMemoryStore(t, task.Task{Title: "Write", Priority: 2})
	m := newModel(store, "rows", quietLogger())
	defer m.close()

	press(m, "a")
	typeText(m, "Plan")
	press(m, "enter")
	if tasks := readTasks(t, store); len(tasks) != 2 || tasks[1].Title != "Plan" {
		t.Fatalf("after add: got %+v", tasks)
	}

	press(m, "d")
	if tasks := readTasks(t, store); len(tasks) != 1 || tasks[0].Title != "Plan" {
		t.Errorf("after delete: got %+v", tasks)
	}
}

func TestChartView(t *testing.T) {
	store := newMemoryStore(t)
	m := newModel(store, "chart", quietLogger())
	defer m.close()

	if view := m.View(); !strings.Contains(view, "No task to display") {
		t.Errorf("empty chart:\n%s", view)
	}

	if err := store.Create("Deploy", 1); err != nil {
		t.Fatalf("Create: %v", err)
	}
	view := m.View()
	for _, want := range []string{"Deploy", "Priority"} {
		if !strings.Contains(view, want) {
			t.Errorf("chart missing %q:\n%s", want, view)
		}
	}
}

func TestPanesStayInSync(t *testing.T) {
	store := newMemoryStore(t)
	m := newModel(store, "buttons", quietLogger())
	defer m.close()

	press(m, "a")
	typeText(m, "Shared")
	press(m, "enter")

	for i := range m.panes {
		m.active = i
		if view := m.View(); !strings.Contains(view, "Shared") {
			t.Errorf("pane %s missing new task:\n%s", m.panes[i].name(), view)
		}
	}
}

func TestExternalChangeRefreshes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store, err := task.Open(task.BackendJSON, path, task.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	m := newModel(store, "buttons", quietLogger())
	defer m.close()

	other, err := task.Open(task.BackendJSON, path, task.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Open second store: %v", err)
	}
	defer other.Close()
	if err := other.Create("From elsewhere", 4); err != nil {
		t.Fatalf("Create: %v", err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	if strings.Contains(m.View(), "From elsewhere") {
		t.Fatal("view refreshed before the change was reported")
	}
	m.Update(externalChangeMsg{})

	if view := m.View(); !strings.Contains(view, "From elsewhere, Priority: 4") {
		t.Errorf("view not refreshed:\n%s", view)
	}
	if m.status != "reloaded external changes" {
		t.Errorf("status: got %q", m.status)
	}
}

func TestCloseUnregistersFromStore(t *testing.T) {
	store := newMemoryStore(t)
	m := newModel(store, "buttons", quietLogger())

	counter, ok := store.(interface{ Observers() int })
	if !ok {
		t.Skip("store does not expose its observer count")
	}
	if got := counter.Observers(); got != 4 {
		t.Errorf("Observers before close: got %d, want 4", got)
	}
	m.close()
	m.close()
	if got := counter.Observers(); got != 0 {
		t.Errorf("Observers after close: got %d, want 0", got)
	}
}

func TestWindowSizeInvalidatesRendering(t *testing.T) {
	store := newMemoryStore(t, task.Task{Title: "A fairly long task title for narrow screens", Priority: 3})
	m := newModel(store, "columns", quietLogger())
	defer m.close()

	wide := m.View()
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 20})
	if narrow := m.View(); narrow == wide {
		t.Error("view did not change with the window width")
	}
}

func TestEditor(t *testing.T) {
	e := newEditor("Add", "placeholder", "5", true)
	e.handle(key("x"))
	e.handle(key("y"))
	if e.title() != "xy" {
		t.Errorf("title: got %q, want xy", e.title())
	}
	e.handle(key("tab"))
	e.handle(key("2"))
	if e.priority() != "2" {
		t.Errorf("priority: got %q, want 2", e.priority())
	}
	e.handle(key("backspace"))
	if e.priority() != "" {
		t.Errorf("priority after backspace: got %q, want empty", e.priority())
	}
	if e.handle(key("enter")) {
		t.Error("editor consumed enter")
	}

	ro := newEditor("Delete", "Keep", "1", false)
	ro.readonly = true
	ro.handle(key("z"))
	ro.handle(key("backspace"))
	if ro.title() != "Keep" {
		t.Errorf("read-only title: got %q, want Keep", ro.title())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated text", 8, "trunc..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d): got %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
