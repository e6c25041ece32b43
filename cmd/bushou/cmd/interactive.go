package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/bushou/internal/logging"
	"github.com/f3rmion/bushou/internal/tui"
	"github.com/f3rmion/bushou/internal/tui/bigchar"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch the interactive terminal UI.

Views:
  1 Search     pick radicals, toggle elements, switch AND/OR and sort
  2 Detail     big glyph, strokes, radicals, element; favorite and copy
  3 Favorites  saved characters

Press ? inside the TUI for all key bindings.`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	e, err := setup(true)
	if err != nil {
		return err
	}
	defer logging.Close()

	store, err := e.openFavorites()
	if err != nil {
		logging.Error("Favorites unavailable", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := tui.NewApp(ctx, tui.Options{
		Session:   e.session(),
		Corpus:    e.loader,
		Oracle:    e.oracle,
		Favorites: store,
		Renderer:  bigchar.New(e.cfg.Font),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
