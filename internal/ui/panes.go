package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmanager-go/internal/binding"
	"github.com/nibzard/taskmanager-go/internal/task"
	"github.com/nibzard/taskmanager-go/internal/viewmodel"
)

// pane is one tab of the terminal UI. A pane reads its view-model only
// through binding adapters and re-renders when they report a change.
type pane interface {
	name() string
	editing() bool
	handleKey(msg tea.KeyMsg) error
	render(width int) string
	refresh()
	close()
}

// cache holds the last rendering of a pane until it is invalidated.
type cache struct {
	dirty bool
	width int
	text  string
}

func (c *cache) invalidate() { c.dirty = true }

func (c *cache) get(width int, draw func() string) string {
	if c.dirty || c.width != width || c.text == "" {
		c.text = draw()
		c.width = width
		c.dirty = false
	}
	return c.text
}

// cursor is a row cursor kept within [0, n).
type cursor struct {
	pos int
}

func (c *cursor) move(delta, n int) {
	c.pos += delta
	c.clamp(n)
}

func (c *cursor) clamp(n int) {
	if c.pos >= n {
		c.pos = n - 1
	}
	if c.pos < 0 {
		c.pos = 0
	}
}

func renderRow(text string, selected bool) string {
	if selected {
		return cursorStyle.Render("> "+text) + "\n"
	}
	return "  " + text + "\n"
}

func isKey(msg tea.KeyMsg, keys ...string) bool {
	s := msg.String()
	for _, k := range keys {
		if s == k {
			return true
		}
	}
	return false
}

// buttonsPane renders a ButtonList: one line per task and a popup for the
// pending action.
type buttonsPane struct {
	cache
	cursor

	vm    *viewmodel.ButtonList
	items *binding.BoundList[string]
	label *binding.Var[string]
	value *binding.Var[string]
	edit  *editor
}

func newButtonsPane(store task.Store, logger *log.Logger) *buttonsPane {
	p := &buttonsPane{vm: viewmodel.NewButtonList(store, logger)}
	p.items = binding.NewBoundList("buttons.items", p.vm.Items, p.onSize, p.onItem)
	p.label = binding.NewVar("buttons.label", p.vm.Label, p.onField)
	p.value = binding.NewVar("buttons.value", p.vm.Value, p.onField)
	p.invalidate()
	return p
}

func (p *buttonsPane) onSize() {
	p.clamp(p.items.Len())
	p.invalidate()
}

func (p *buttonsPane) onItem(int) { p.invalidate() }
func (p *buttonsPane) onField(string) { p.invalidate() }
func (p *buttonsPane) name() string { return "buttons" }
func (p *buttonsPane) editing() bool { return p.edit != nil }
func (p *buttonsPane) refresh() { p.vm.Refresh() }

func (p *buttonsPane) handleKey(msg tea.KeyMsg) error {
	defer p.invalidate()

	if p.edit != nil {
		switch {
		case isKey(msg, "enter"):
			p.label.Set(p.edit.title())
			p.value.Set(p.edit.priority())
			p.edit = nil
			return p.vm.Confirm()
		case isKey(msg, "esc"):
			p.edit = nil
			p.vm.Cancel()
			return nil
		}
		p.edit.handle(msg)
		return nil
	}

	switch {
	case isKey(msg, "up", "k"):
		p.move(-1, p.items.Len())
	case isKey(msg, "down", "j"):
		p.move(1, p.items.Len())
	case isKey(msg, "a"):
		p.vm.InitAdd()
		p.open(true)
	case isKey(msg, "e", "enter"):
		if p.vm.InitUpdate(p.pos) {
			p.open(false)
		}
	case isKey(msg, "d"):
		if p.vm.InitDelete(p.pos) {
			p.open(false)
		}
	}
	return nil
}

// open starts the popup on the fields prepared by the view-model.
func (p *buttonsPane) open(placeholder bool) {
	p.edit = newEditor(p.vm.Action, p.label.Get(), p.value.Get(), placeholder)
	p.edit.readonly = p.vm.Mode == viewmodel.ModeReadonly
}

func (p *buttonsPane) render(width int) string {
	return p.get(width, func() string {
		var b strings.Builder
		if p.items.Len() == 0 {
			b.WriteString(mutedStyle.Render("  No tasks. Press a to add one.") + "\n")
		}
		for i, item := range p.items.Values() {
			b.WriteString(renderRow(item+"  "+mutedStyle.Render("[edit] [delete]"), i == p.pos))
		}
		b.WriteString("\n" + buttonStyle.Render("Add task") + "\n")
		if p.edit != nil {
			b.WriteString(p.edit.view() + "\n")
		}
		return b.String()
	})
}

func (p *buttonsPane) close() {
	p.items.Close()
	p.label.Close()
	p.value.Close()
	p.vm.Close()
}

// columnsPane renders a TwoColumns: a title and priority table above
// entry fields that act on the selected row.
type columnsPane struct {
	cache
	cursor

	vm            *viewmodel.TwoColumns
	rows          *binding.BoundList[viewmodel.Pair]
	label         *binding.Var[string]
	value         *binding.Var[string]
	leftButton    *binding.Var[string]
	deleteEnabled *binding.Var[bool]
	edit          *editor
}

func newColumnsPane(store task.Store, logger *log.Logger) *columnsPane {
	p := &columnsPane{vm: viewmodel.NewTwoColumns(store, logger)}
	p.rows = binding.NewBoundList("columns.rows", p.vm.Rows, p.onSize, p.onItem)
	p.label = binding.NewVar("columns.label", p.vm.Label, p.onField)
	p.value = binding.NewVar("columns.value", p.vm.Value, p.onField)
	p.leftButton = binding.NewVar("columns.left", p.vm.LeftButton, p.onField)
	p.deleteEnabled = binding.NewVar("columns.delete", p.vm.DeleteEnabled, func(bool) { p.invalidate() })
	p.invalidate()
	return p
}

func (p *columnsPane) onSize() {
	p.clamp(p.rows.Len())
	p.invalidate()
}

func (p *columnsPane) onItem(int) { p.invalidate() }
func (p *columnsPane) onField(string) { p.invalidate() }
func (p *columnsPane) name() string { return "columns" }
func (p *columnsPane) editing() bool { return p.edit != nil }

func (p *columnsPane) refresh() {
	p.edit = nil
	p.vm.Refresh()
}

func (p *columnsPane) handleKey(msg tea.KeyMsg) error {
	defer p.invalidate()

	if p.edit != nil {
		switch {
		case isKey(msg, "enter"):
			p.label.Set(p.edit.title())
			p.value.Set(p.edit.priority())
			p.edit = nil
			err := p.vm.AddOrUpdate()
			p.vm.ClearSelection()
			return err
		case isKey(msg, "esc"):
			p.edit = nil
			p.vm.ClearSelection()
			return nil
		}
		p.edit.handle(msg)
		return nil
	}

	switch {
	case isKey(msg, "up", "k"):
		p.move(-1, p.rows.Len())
	case isKey(msg, "down", "j"):
		p.move(1, p.rows.Len())
	case isKey(msg, "a"):
		p.vm.ClearSelection()
		p.edit = newEditor(p.leftButton.Get(), p.label.Get(), p.value.Get(), true)
	case isKey(msg, "e", "enter"):
		if p.rows.Len() == 0 {
			return nil
		}
		p.vm.Select(p.pos)
		p.edit = newEditor(p.leftButton.Get(), p.label.Get(), p.value.Get(), false)
	case isKey(msg, "d"):
		if p.rows.Len() == 0 {
			return nil
		}
		p.vm.Select(p.pos)
		if p.deleteEnabled.Get() {
			return p.vm.Delete()
		}
	}
	return nil
}

func (p *columnsPane) render(width int) string {
	return p.get(width, func() string {
		titleWidth := max(width-16, 12)
		var b strings.Builder
		b.WriteString(titleStyle.Render(fmt.Sprintf("  %-*s %s", titleWidth, viewmodel.LabelName, viewmodel.ValueName)) + "\n")
		if p.rows.Len() == 0 {
			b.WriteString(mutedStyle.Render("  No tasks. Press a to add one.") + "\n")
		}
		for i, row := range p.rows.Values() {
			b.WriteString(renderRow(fmt.Sprintf("%-*s %s", titleWidth, truncate(row.Label, titleWidth), row.Value), i == p.pos))
		}
		b.WriteString("\n")
		if p.edit != nil {
			b.WriteString(p.edit.view() + "\n")
		} else {
			b.WriteString(fmt.Sprintf("%s %s\n", viewmodel.LabelName, p.label.Get()))
			b.WriteString(fmt.Sprintf("%s %s\n", viewmodel.ValueName, p.value.Get()))
		}
		remove := mutedStyle.Render(buttonStyle.Render("Delete"))
		if p.deleteEnabled.Get() {
			remove = buttonStyle.Render("Delete")
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttonStyle.Render(p.leftButton.Get()), " ", remove) + "\n")
		return b.String()
	})
}

func (p *columnsPane) close() {
	p.rows.Close()
	p.label.Close()
	p.value.Close()
	p.leftButton.Close()
	p.deleteEnabled.Close()
	p.vm.Close()
}

// rowsPane renders a TwoRows: parallel title and priority lists that are
// edited in place, plus a form for a new task.
type rowsPane struct {
	cache
	cursor

	vm     *viewmodel.TwoRows
	labels *binding.BoundList[string]
	values *binding.BoundList[string]
	label  *binding.Var[string]
	value  *binding.Var[string]

	edit     *editor
	editRow  int
	editFrom [2]string
}

func newRowsPane(store task.Store, logger *log.Logger) *rowsPane {
	p := &rowsPane{vm: viewmodel.NewTwoRows(store, logger), editRow: -1}
	p.labels = binding.NewBoundList("rows.labels", p.vm.Labels, p.onSize, p.onItem)
	p.values = binding.NewBoundList("rows.values", p.vm.Values, p.onSize, p.onItem)
	p.label = binding.NewVar("rows.label", p.vm.Label, p.onField)
	p.value = binding.NewVar("rows.value", p.vm.Value, p.onField)
	p.invalidate()
	return p
}

func (p *rowsPane) onSize() {
	p.clamp(p.labels.Len())
	p.invalidate()
}

func (p *rowsPane) onItem(int) { p.invalidate() }
func (p *rowsPane) onField(string) { p.invalidate() }
func (p *rowsPane) name() string { return "rows" }
func (p *rowsPane) editing() bool { return p.edit != nil }
func (p *rowsPane) refresh() { p.vm.Refresh() }

func (p *rowsPane) handleKey(msg tea.KeyMsg) error {
	defer p.invalidate()

	if p.edit != nil {
		switch {
		case isKey(msg, "enter"):
			edit, row, from := p.edit, p.editRow, p.editFrom
			p.edit, p.editRow = nil, -1
			if row < 0 {
				p.label.Set(edit.title())
				p.value.Set(edit.priority())
				return p.vm.Add()
			}
			return p.apply(p.locate(row, from), from, edit.title(), edit.priority())
		case isKey(msg, "esc"):
			p.edit, p.editRow = nil, -1
			return nil
		}
		p.edit.handle(msg)
		return nil
	}

	switch {
	case isKey(msg, "up", "k"):
		p.move(-1, p.labels.Len())
	case isKey(msg, "down", "j"):
		p.move(1, p.labels.Len())
	case isKey(msg, "a"):
		p.edit = newEditor("Add", p.label.Get(), p.value.Get(), true)
	case isKey(msg, "e", "enter"):
		if p.pos >= p.labels.Len() || p.pos >= p.values.Len() {
			return nil
		}
		p.editRow = p.pos
		p.editFrom = [2]string{p.labels.At(p.pos), p.values.At(p.pos)}
		p.edit = newEditor("Update", p.editFrom[0], p.editFrom[1], false)
	case isKey(msg, "d"):
		if p.pos >= p.labels.Len() {
			return nil
		}
		return p.vm.OnLabelReturn("", p.pos)
	}
	return nil
}

// apply commits an in-place edit of row i. An empty title deletes the row.
// locate finds the row still showing from, preferring hint. The rows may
// have moved while the edit was open. It returns -1 when the row is gone.
func (p *rowsPane) locate(hint int, from [2]string) int {
	n := min(p.labels.Len(), p.values.Len())
	shows := func(i int) bool { return p.labels.At(i) == from[0] && p.values.At(i) == from[1] }
	if hint >= 0 && hint < n && shows(hint) {
		return hint
	}
	for i := 0; i < n; i++ {
		if shows(i) {
			return i
		}
	}
	return -1
}

func (p *rowsPane) apply(i int, from [2]string, title, priority string) error {
	if i < 0 {
		return nil
	}
	oldTitle, oldPriority := from[0], from[1]
	if title != oldTitle || title == "" {
		if err := p.vm.OnLabelReturn(title, i); err != nil || title == "" {
			return err
		}
	}
	if priority != oldPriority {
		return p.vm.OnModifiedValue(priority, i)
	}
	return nil
}

func (p *rowsPane) render(width int) string {
	return p.get(width, func() string {
		var b strings.Builder
		n := min(p.labels.Len(), p.values.Len())
		if n == 0 {
			b.WriteString(mutedStyle.Render("  No tasks. Press a to add one.") + "\n")
		}
		titleWidth := max(width-8, 12)
		for i := 0; i < n; i++ {
			b.WriteString(renderRow(fmt.Sprintf("%-*s %s", titleWidth, truncate(p.labels.At(i), titleWidth), p.values.At(i)), i == p.pos))
		}
		b.WriteString("\n")
		if p.edit != nil {
			b.WriteString(p.edit.view() + "\n")
		} else {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("%s %s  %s %s", viewmodel.LabelName, p.label.Get(), viewmodel.ValueName, p.value.Get())) + "\n")
		}
		return b.String()
	})
}

func (p *rowsPane) close() {
	p.labels.Close()
	p.values.Close()
	p.label.Close()
	p.value.Close()
	p.vm.Close()
}

// chartPane renders a BarChart as vertical bars, one per task.
type chartPane struct {
	cache

	vm   *viewmodel.BarChart
	bars *binding.BoundList[viewmodel.Pair]
}

func newChartPane(store task.Store, logger *log.Logger) *chartPane {
	p := &chartPane{vm: viewmodel.NewBarChart(store, logger)}
	p.bars = binding.NewBoundList("chart.bars", p.vm.Bars, p.invalidate, func(int) { p.invalidate() })
	p.invalidate()
	return p
}

func (p *chartPane) name() string { return "chart" }
func (p *chartPane) editing() bool { return false }
func (p *chartPane) handleKey(tea.KeyMsg) error { return nil }
func (p *chartPane) refresh() { p.vm.Refresh() }

func (p *chartPane) render(width int) string {
	return p.get(width, func() string {
		if p.bars.Len() == 0 {
			return mutedStyle.Render("  "+p.vm.NoItemMessage) + "\n"
		}
		maxHeight := len(p.vm.ValueOptions)
		barWidth := max(min(width/max(p.bars.Len(), 1)-1, 10), 3)

		blocks := make([]string, 0, p.bars.Len()*2)
		for _, bar := range p.bars.Values() {
			value, err := strconv.Atoi(bar.Value)
			height := 0
			if err == nil {
				height = p.vm.Height(value)
			}
			column := ""
			if height > 0 {
				column = barStyle.Width(barWidth).Height(height).Render("")
			}
			column = lipgloss.PlaceVertical(maxHeight, lipgloss.Bottom, column)
			block := lipgloss.JoinVertical(lipgloss.Center,
				column,
				lipgloss.PlaceHorizontal(barWidth, lipgloss.Center, bar.Value),
				lipgloss.PlaceHorizontal(barWidth, lipgloss.Center, truncate(bar.Label, barWidth)),
			)
			blocks = append(blocks, block, " ")
		}
		chart := lipgloss.JoinHorizontal(lipgloss.Bottom, blocks...)
		return chart + "\n" + mutedStyle.Render(p.vm.ValueName) + "\n"
	})
}

func (p *chartPane) close() {
	p.bars.Close()
	p.vm.Close()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
