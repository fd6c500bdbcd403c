package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/roach88/cfakit/internal/tui"
)

// NewTUICommand creates the tui command.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Full-screen calculator",
		Long: `Start the terminal user interface.

Navigation:
  ↑/↓ or 1-6  - choose a tool
  Enter       - select / submit an answer
  Esc         - back to the tool list
  q, Ctrl+C   - quit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			p := tea.NewProgram(
				tui.NewModel(e.dispatcher),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			if _, err := p.Run(); err != nil {
				return WrapExitError(ExitCommandError, "running TUI", err)
			}
			return nil
		},
	}

	return cmd
}
