// ABOUTME: Fixes the lipgloss background guess before Bubble Tea initialises
// ABOUTME: Blank-import it in main ahead of anything that imports bubbletea

package termfix

import "github.com/charmbracelet/lipgloss"

// Answering the background question up front keeps lipgloss from querying
// the terminal with OSC 11, whose late reply would arrive as key input.
// This package must not import bubbletea so its init runs first.
func init() {
	lipgloss.SetHasDarkBackground(true)
}
