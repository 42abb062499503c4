package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ojavier0506-ui/golf-carts/internal/report"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Out string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the fleet summary PDF",
		Long: `Render the fleet summary PDF from the current snapshot.

Example:
  golf-carts report --out fleet-status.pdf`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts.RootOptions)
			if err != nil {
				return err
			}
			defer a.close()

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}

			out, err := os.Create(opts.Out)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to create output file", err)
			}
			defer out.Close()

			if err := report.Render(out, report.Build(l, time.Now())); err != nil {
				return WrapExitError(ExitFailure, "failed to render report", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.Out)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "fleet-status.pdf", "output PDF path")
	return cmd
}
