package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/s0up4200/pokedex/store"
)

// Run starts the browser and blocks until the user quits or ctx is done
func Run(ctx context.Context, st *store.Store, logger zerolog.Logger, cfg Config, opts ...tea.ProgramOption) error {
	changes, unsubscribe := st.Subscribe()
	defer unsubscribe()

	m := New(ctx, st, logger, cfg)
	m.changes = changes

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
