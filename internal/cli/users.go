package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ojavier0506-ui/golf-carts/internal/auth"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts for the login gate",
	}

	cmd.AddCommand(newUsersAddCommand(rootOpts))
	cmd.AddCommand(newUsersRemoveCommand(rootOpts))
	cmd.AddCommand(newUsersListCommand(rootOpts))
	cmd.AddCommand(newUsersPasswdCommand(rootOpts))
	cmd.AddCommand(newUsersRoleCommand(rootOpts))

	return cmd
}

// openUsers wires the account manager over the configured backend.
func openUsers(rootOpts *RootOptions) (*auth.Manager, func() error, error) {
	a, err := openApp(rootOpts)
	if err != nil {
		return nil, nil, err
	}
	return auth.NewManager(a.users), a.close, nil
}

// usersExitError maps account-manager failures onto exit codes: invariant
// violations are operation failures, everything else is a command error.
func usersExitError(message string, err error) error {
	if errors.Is(err, auth.ErrLastAdmin) || errors.Is(err, auth.ErrUserExists) || errors.Is(err, auth.ErrUnknownUser) {
		return WrapExitError(ExitFailure, message, err)
	}
	return WrapExitError(ExitCommandError, message, err)
}

func newUsersAddCommand(rootOpts *RootOptions) *cobra.Command {
	var role, password string

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an account",
		Long: `Create an account.

Example:
  golf-carts users add alice --role admin --password s3cret`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeStore, err := openUsers(rootOpts)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := m.Add(cmd.Context(), args[0], password, auth.Role(role)); err != nil {
				return usersExitError("failed to add user", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", args[0], role)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(auth.RoleUser), "account role (admin|user)")
	cmd.Flags().StringVar(&password, "password", "", "account password (required)")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "remove <username>",
		Short:         "Delete an account",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeStore, err := openUsers(rootOpts)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := m.Remove(cmd.Context(), args[0]); err != nil {
				return usersExitError("failed to remove user", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
	return cmd
}

func newUsersListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List accounts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeStore, err := openUsers(rootOpts)
			if err != nil {
				return err
			}
			defer closeStore()

			accounts, err := m.List(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list users", err)
			}

			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return f.Print(map[string]any{"users": accounts}, func(w io.Writer) error {
				for _, acc := range accounts {
					if _, err := fmt.Fprintf(w, "%-20s %s\n", acc.Username, acc.Role); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	return cmd
}

func newUsersPasswdCommand(rootOpts *RootOptions) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:           "passwd <username>",
		Short:         "Change an account password",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeStore, err := openUsers(rootOpts)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := m.SetPassword(cmd.Context(), args[0], password); err != nil {
				return usersExitError("failed to set password", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "new password (required)")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersRoleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "role <username> <admin|user>",
		Short:         "Change an account role",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeStore, err := openUsers(rootOpts)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := m.SetRole(cmd.Context(), args[0], auth.Role(args[1])); err != nil {
				return usersExitError("failed to set role", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "role updated for %s\n", args[0])
			return nil
		},
	}
	return cmd
}
