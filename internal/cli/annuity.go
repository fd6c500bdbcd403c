package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/cfakit/internal/dispatch"
)

// AnnuityOptions holds flags for the annuity command.
type AnnuityOptions struct {
	*RootOptions
	Periods string
	Rate    string
	Payment string
	Timing  string
	Due     bool
}

// NewAnnuityCommand creates the annuity command.
func NewAnnuityCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnnuityOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "annuity",
		Short: "Present value of a level annuity",
		Long: `Present value of a level annuity.

Payments fall at the end of each period unless --due (or --timing due)
moves them to the start. A zero rate sums the payments.

Example:
  cfakit annuity --periods 10 --rate 0.05 --payment 100 --due`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			timing := opts.Timing
			if opts.Due {
				timing = "due"
			}
			return runCalc(opts.RootOptions, dispatch.OpPVAnnuity,
				[]string{opts.Periods, opts.Rate, opts.Payment, timing}, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Periods, "periods", "n", "", "number of periods (positive integer)")
	cmd.Flags().StringVarP(&opts.Rate, "rate", "r", "", "periodic rate as a decimal, e.g. 0.05")
	cmd.Flags().StringVarP(&opts.Payment, "payment", "p", "", "payment per period")
	cmd.Flags().StringVar(&opts.Timing, "timing", "ordinary", "payment timing (ordinary|due)")
	cmd.Flags().BoolVar(&opts.Due, "due", false, "payments at the start of each period")
	_ = cmd.MarkFlagRequired("periods")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("payment")

	return cmd
}
