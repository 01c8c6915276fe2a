package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nzaccagnino/studydesk/internal/domain"
	"github.com/nzaccagnino/studydesk/internal/views"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning   = lipgloss.AdaptiveColor{Light: "#C99A06", Dark: "#F2C94C"}
	danger    = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5C6C"}
	text      = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#fafafa"}
	muted     = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(highlight).
				Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(text).
			MarginBottom(1)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(special)

	MutedStyle = lipgloss.NewStyle().
			Foreground(muted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight)

	TagStyle = lipgloss.NewStyle().
			Foreground(special).
			Padding(0, 1).
			Background(lipgloss.Color("#1a1a2e")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(danger).
			Bold(true)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1, 3)

	TabStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(highlight).
			Bold(true).
			Padding(0, 1)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(highlight).
				Foreground(lipgloss.Color("#000000"))

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(highlight).
			Padding(2, 4).
			Align(lipgloss.Center)

	KeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight)

	KeyHintStyle = lipgloss.NewStyle().
			Foreground(muted)
)

const (
	FolderIcon = "📁"
	NoteIcon   = "📝"
	DeckIcon   = "🗂"
	TaskTodo   = "☐"
	TaskDone   = "☑"
)

var courseColors = map[domain.ThemeColor]lipgloss.AdaptiveColor{
	domain.ColorBlue:   {Light: "#2563EB", Dark: "#60A5FA"},
	domain.ColorRed:    {Light: "#DC2626", Dark: "#F87171"},
	domain.ColorGreen:  {Light: "#16A34A", Dark: "#4ADE80"},
	domain.ColorYellow: {Light: "#CA8A04", Dark: "#FACC15"},
	domain.ColorPurple: {Light: "#9333EA", Dark: "#C084FC"},
	domain.ColorIndigo: {Light: "#4F46E5", Dark: "#818CF8"},
	domain.ColorPink:   {Light: "#DB2777", Dark: "#F472B6"},
}

// CourseStyle renders text in the course's theme color.
func CourseStyle(c domain.ThemeColor) lipgloss.Style {
	color, ok := courseColors[c]
	if !ok {
		color = highlight
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

func BandStyle(b views.Band) lipgloss.Style {
	switch b {
	case views.BandGood:
		return lipgloss.NewStyle().Foreground(special)
	case views.BandFair:
		return lipgloss.NewStyle().Foreground(warning)
	default:
		return lipgloss.NewStyle().Foreground(danger)
	}
}

func StatusStyle(s domain.CardStatus) lipgloss.Style {
	switch s {
	case domain.CardMastered:
		return lipgloss.NewStyle().Foreground(special)
	case domain.CardLearning:
		return lipgloss.NewStyle().Foreground(warning)
	default:
		return lipgloss.NewStyle().Foreground(danger)
	}
}
