// ABOUTME: Entry point for the Bubble Tea interactive editor
// ABOUTME: Runs the program and forwards settings file changes into it as messages

package interactive

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive editor and blocks until the user exits or ctx
// is cancelled.
func Run(ctx context.Context, deps Deps) error {
	m := New(deps)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if deps.Watcher != nil {
		wctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go deps.Watcher.Run(wctx, func(changed []string) {
			p.Send(reloadMsg{changed: changed})
		})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
