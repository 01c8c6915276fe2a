package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nzaccagnino/studydesk/internal/i18n"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
)

type choice struct {
	value string
	label string
}

type formField struct {
	key     string
	label   string
	kind    fieldKind
	input   textinput.Model
	choices []choice
	picked  int
}

// form is a modal dialog of text inputs and option pickers. submit receives
// the form and returns an error to keep it open, or a command to run.
type form struct {
	title  string
	hint   string
	fields []formField
	focus  int
	submit func(f *form) (tea.Cmd, error)
	// busy is set by a submit that keeps the form open while its command
	// runs. status is shown under the fields.
	busy   bool
	status string
}

func newForm(title string, submit func(f *form) (tea.Cmd, error)) *form {
	return &form{title: title, submit: submit}
}

func (f *form) text(key, label, value string) *form {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 40
	ti.SetValue(value)
	f.fields = append(f.fields, formField{key: key, label: label, kind: fieldText, input: ti})
	f.focusField(f.focus)
	return f
}

// pick adds an option picker with value preselected when present.
func (f *form) pick(key, label string, choices []choice, value string) *form {
	picked := 0
	for i, c := range choices {
		if c.value == value {
			picked = i
			break
		}
	}
	f.fields = append(f.fields, formField{key: key, label: label, kind: fieldChoice, choices: choices, picked: picked})
	f.focusField(f.focus)
	return f
}

func (f *form) withHint(hint string) *form {
	f.hint = hint
	return f
}

func (f *form) field(key string) *formField {
	for i := range f.fields {
		if f.fields[i].key == key {
			return &f.fields[i]
		}
	}
	return nil
}

// value returns the trimmed text, or the picked option's value.
func (f *form) value(key string) string {
	fl := f.field(key)
	if fl == nil {
		return ""
	}
	if fl.kind == fieldChoice {
		if len(fl.choices) == 0 {
			return ""
		}
		return fl.choices[fl.picked].value
	}
	return strings.TrimSpace(fl.input.Value())
}

func (f *form) focusField(i int) {
	if len(f.fields) == 0 {
		return
	}
	i = (i + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		f.fields[j].input.Blur()
	}
	f.focus = i
	if f.fields[i].kind == fieldText {
		f.fields[i].input.Focus()
	}
}

func (f *form) cycle(delta int) {
	fl := &f.fields[f.focus]
	if n := len(fl.choices); n > 0 {
		fl.picked = (fl.picked + delta + n) % n
	}
}

// update handles a key while the form is open. done reports that the form
// was submitted successfully and should close.
func (f *form) update(msg tea.KeyMsg, keys KeyMap) (cmd tea.Cmd, done bool, err error) {
	if len(f.fields) == 0 {
		return nil, false, nil
	}
	current := &f.fields[f.focus]

	switch {
	case key.Matches(msg, keys.Enter):
		f.status = ""
		cmd, err = f.submit(f)
		return cmd, err == nil && !f.busy, err

	case key.Matches(msg, keys.Tab), msg.Type == tea.KeyDown:
		f.focusField(f.focus + 1)

	case key.Matches(msg, keys.ShiftTab), msg.Type == tea.KeyUp:
		f.focusField(f.focus - 1)

	case current.kind == fieldChoice && (msg.Type == tea.KeyLeft || msg.Type == tea.KeyRight || key.Matches(msg, keys.Toggle)):
		if msg.Type == tea.KeyLeft {
			f.cycle(-1)
		} else {
			f.cycle(1)
		}

	case current.kind == fieldText:
		current.input, cmd = current.input.Update(msg)
	}
	return cmd, false, nil
}

func (f *form) view(width int) string {
	t := i18n.T()

	lines := []string{TitleStyle.Render(f.title)}
	for i, fl := range f.fields {
		label := MutedStyle.Render(fl.label)
		if i == f.focus {
			label = LabelStyle.Render(fl.label)
		}
		lines = append(lines, label)

		if fl.kind == fieldChoice {
			value := t.None
			if len(fl.choices) > 0 {
				value = fl.choices[fl.picked].label
			}
			if i == f.focus {
				value = SelectedStyle.Render("‹ " + value + " ›")
			} else {
				value = "  " + value
			}
			lines = append(lines, value, "")
			continue
		}
		lines = append(lines, fl.input.View(), "")
	}
	if f.hint != "" {
		lines = append(lines, MutedStyle.Render(f.hint))
	}
	switch {
	case f.busy:
		lines = append(lines, SelectedStyle.Render(t.Generating))
	case f.status != "":
		lines = append(lines, ErrorStyle.Render(f.status))
	}
	lines = append(lines, MutedStyle.Render(t.FormHint))

	return DialogStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
