package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print per-status cart counts",
		Long: `Print the number of carts in each status.

Example:
  golf-carts status
  golf-carts status --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.close()

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			counts := l.CountsByStatus()

			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return f.Print(map[string]any{"counts": counts, "total": l.Registry().Len()}, func(w io.Writer) error {
				for _, s := range l.Statuses().Values() {
					if _, err := fmt.Fprintf(w, "%-25s %d\n", s, counts[s]); err != nil {
						return err
					}
				}
				_, err := fmt.Fprintf(w, "%-25s %d\n", "total", l.Registry().Len())
				return err
			})
		},
	}
	return cmd
}
