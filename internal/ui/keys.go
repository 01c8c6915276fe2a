package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/nzaccagnino/studydesk/internal/i18n"
)

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Escape    key.Binding
	New       key.Binding
	NewFolder key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Toggle    key.Binding
	Grade     key.Binding
	Review    key.Binding
	Generate  key.Binding
	Status    key.Binding
	Today     key.Binding
	Tab       key.Binding
	ShiftTab  key.Binding
	Save      key.Binding
	Quit      key.Binding
	Help      key.Binding
	Yes       key.Binding
	No        key.Binding
}

func NewKeyMap() KeyMap {
	t := i18n.T()
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", t.KeyUp),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", t.KeyDown),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", t.KeyLeft),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", t.KeyRight),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", t.KeyEnter),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", t.KeyEscape),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", t.KeyNew),
		),
		NewFolder: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", t.KeyFolder),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", t.KeyEdit),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", t.KeyDelete),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", t.KeyToggle),
		),
		Grade: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", t.KeyGrade),
		),
		Review: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", t.KeyReview),
		),
		Generate: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", t.KeyGenerate),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", t.KeyStatus),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", t.KeyToday),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", t.KeyTab),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", t.KeyShiftTab),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", t.KeySave),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("Ctrl+Q", t.KeyQuit),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", t.KeyHelp),
		),
		Yes: key.NewBinding(key.WithKeys("y", "Y")),
		No:  key.NewBinding(key.WithKeys("n", "N", "esc")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.New, k.Edit, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Enter, k.Escape, k.Tab, k.ShiftTab},
		{k.New, k.NewFolder, k.Edit, k.Delete, k.Toggle, k.Grade, k.Review, k.Generate, k.Status, k.Today},
		{k.Save, k.Help, k.Quit},
	}
}
