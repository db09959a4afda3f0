package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// editor is a two-field line editor for a task title and priority.
type editor struct {
	action   string
	names    [2]string
	fields   [2][]rune
	pristine [2]bool
	focus    int
	readonly bool
}

// newEditor starts an editor on title and priority. A placeholder editor
// replaces a field's initial text on the first keystroke in it.
func newEditor(action, title, priority string, placeholder bool) *editor {
	return &editor{
		action:   action,
		names:    [2]string{"Title", "Priority"},
		fields:   [2][]rune{[]rune(title), []rune(priority)},
		pristine: [2]bool{placeholder, placeholder},
	}
}

func (e *editor) title() string { return string(e.fields[0]) }
func (e *editor) priority() string { return string(e.fields[1]) }

// handle applies an editing key. It reports false for keys it does not
// consume, such as enter and esc.
func (e *editor) handle(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		e.focus = 1 - e.focus
		return true
	case tea.KeyBackspace:
		if e.readonly {
			return true
		}
		e.pristine[e.focus] = false
		if f := e.fields[e.focus]; len(f) > 0 {
			e.fields[e.focus] = f[:len(f)-1]
		}
		return true
	case tea.KeyCtrlU:
		if !e.readonly {
			e.fields[e.focus] = nil
		}
		return true
	case tea.KeySpace:
		e.insert([]rune{' '})
		return true
	case tea.KeyRunes:
		e.insert(msg.Runes)
		return true
	}
	return false
}

func (e *editor) insert(r []rune) {
	if e.readonly {
		return
	}
	if e.pristine[e.focus] {
		e.fields[e.focus] = nil
		e.pristine[e.focus] = false
	}
	e.fields[e.focus] = append(e.fields[e.focus], r...)
}

func (e *editor) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(e.action) + "\n")
	for i, name := range e.names {
		value := string(e.fields[i])
		if i == e.focus && !e.readonly {
			value += "_"
		}
		line := fmt.Sprintf("%-9s %s", name+":", value)
		if i == e.focus {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if e.readonly {
		b.WriteString(mutedStyle.Render("enter to confirm, esc to cancel"))
	} else {
		b.WriteString(mutedStyle.Render("tab to switch field, enter to confirm, esc to cancel"))
	}
	return popupStyle.Render(b.String())
}
