package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/t4go/internal/config"
	"github.com/gubarz/t4go/internal/template"
)

// StyleManager encapsulates all TUI styles
type StyleManager struct {
	// Segment styles
	Text      lipgloss.Style
	Code      lipgloss.Style
	Expr      lipgloss.Style
	Directive lipgloss.Style

	// Chrome styles
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Divider   lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Text:      lipgloss.NewStyle(),
		Code:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Expr:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Directive: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Title:     lipgloss.NewStyle().Bold(true),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("241")),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Background(lipgloss.Color("236")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Divider:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// LoadFromConfig updates segment styles from configuration
func (s *StyleManager) LoadFromConfig() {
	s.Text = lipgloss.NewStyle().Foreground(parseANSIColor(config.GetColorText()))
	s.Code = lipgloss.NewStyle().Foreground(parseANSIColor(config.GetColorCode()))
	s.Expr = lipgloss.NewStyle().Foreground(parseANSIColor(config.GetColorExpr()))
	s.Directive = lipgloss.NewStyle().Foreground(parseANSIColor(config.GetColorDirective()))
	s.Error = s.Error.Foreground(parseANSIColor(config.GetColorError()))
}

// ForKind returns the style used for a segment kind
func (s *StyleManager) ForKind(k template.Kind) lipgloss.Style {
	switch k {
	case template.KindCode:
		return s.Code
	case template.KindExpr:
		return s.Expr
	case template.KindDirective:
		return s.Directive
	default:
		return s.Text
	}
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
