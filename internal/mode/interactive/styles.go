// ABOUTME: Lipgloss styles for the buffer view, mode line, and echo area
// ABOUTME: Built once on first use and shared by every render

package interactive

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ThemeStyles holds the styles the interactive view renders with.
type ThemeStyles struct {
	Cursor    lipgloss.Style
	Region    lipgloss.Style
	ModeLine  lipgloss.Style
	ModeName  lipgloss.Style
	Echo      lipgloss.Style
	Beep      lipgloss.Style
	Error     lipgloss.Style
	Prompt    lipgloss.Style
	Dim       lipgloss.Style
	PaneTitle lipgloss.Style
}

// Styles returns the shared style palette.
var Styles = sync.OnceValue(func() ThemeStyles {
	return ThemeStyles{
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Region:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		ModeLine:  lipgloss.NewStyle().Reverse(true),
		ModeName:  lipgloss.NewStyle().Reverse(true).Bold(true),
		Echo:      lipgloss.NewStyle(),
		Beep:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Dim:       lipgloss.NewStyle().Faint(true),
		PaneTitle: lipgloss.NewStyle().Bold(true).Underline(true),
	}
})
