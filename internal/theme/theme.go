package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Desktop *lipgloss.Style

	Body         *lipgloss.Style
	BorderActive *lipgloss.Style
	Border       *lipgloss.Style
	TitleActive  *lipgloss.Style
	Title        *lipgloss.Style
	Button       *lipgloss.Style
	Dimmed       *lipgloss.Style
	DimmedBody   *lipgloss.Style
	Minimized    *lipgloss.Style
	Dialog       *lipgloss.Style
	Mode         *lipgloss.Style

	SwitcherBorder *lipgloss.Style
	SwitcherItem   *lipgloss.Style
	SwitcherActive *lipgloss.Style
	SwitcherHeader *lipgloss.Style

	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Footer            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
}

var defaultStyles = Styles{
	Desktop: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Body: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235")),
	),
	BorderActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("235")),
	),
	Border: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Background(lipgloss.Color("235")),
	),
	TitleActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Bold(true),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("238")),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("238")),
	),
	Dimmed: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("234")),
	),
	DimmedBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("233")),
	),
	Minimized: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("237")).Italic(true),
	),
	Dialog: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Background(lipgloss.Color("235")),
	),
	Mode: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Bold(true),
	),
	SwitcherBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("236")),
	),
	SwitcherItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("236")),
	),
	SwitcherActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Bold(true),
	),
	SwitcherHeader: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
