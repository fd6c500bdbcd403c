package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	LogLevel   string // overrides log.level from the config file when set
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cfakit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cfakit",
		Short: "cfakit - CFA level 1 return calculator",
		Long: `Investment-return calculations for CFA level 1 practice problems.

Each calculation is available as a subcommand; "cfakit menu" starts the
interactive chapter menu and "cfakit tui" the full-screen interface.
Values starting with "-" must follow "--", e.g. cfakit irr -- -100,110`,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints errors that were not already reported
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	// Add subcommands
	cmd.AddCommand(NewMeanCommand(opts))
	cmd.AddCommand(NewGeoMeanCommand(opts))
	cmd.AddCommand(NewIRRCommand(opts))
	cmd.AddCommand(NewAnnualizeCommand(opts))
	cmd.AddCommand(NewCCRCommand(opts))
	cmd.AddCommand(NewAnnuityCommand(opts))
	cmd.AddCommand(NewMenuCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
