package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// NewMenuCommand creates the menu command.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Interactive chapter menu",
		Long: `Start the interactive CFA level 1 menu.

Pick a chapter, then a tool, then answer its prompts. Invalid input and
failed calculations print a message and return to the menu. Enter 0 to go
back; end of input exits.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			session := e.dispatcher.NewSession(cmd.InOrStdin(), cmd.OutOrStdout())
			err = session.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				// Interrupted at a prompt; leave the terminal on a fresh line.
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "menu session ended", err)
			}
			return nil
		},
	}

	return cmd
}
